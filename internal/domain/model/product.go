package model

import (
	"time"
)

type Category uint8

const (
	CategoryTops Category = iota
	CategoryBottoms
	CategoryFootwear
	CategoryAccessories
)

func (c Category) Valid() bool {
	return c <= CategoryAccessories
}

func (c Category) String() string {
	switch c {
	case CategoryTops:
		return "Tops"
	case CategoryBottoms:
		return "Bottoms"
	case CategoryFootwear:
		return "Footwear"
	case CategoryAccessories:
		return "Accessories"
	default:
		return "Unknown"
	}
}

// 商品ID從1開始遞增，0保留給"不存在"
// 金額一律使用最小貨幣單位的整數
type Product struct {
	ID            uint64    `json:"id"`
	Name          string    `json:"name"`
	Description   string    `json:"description"`
	Category      Category  `json:"category"`
	UnitPrice     uint64    `json:"unit_price"`
	StockQuantity uint64    `json:"stock_quantity"`
	ImageURI      string    `json:"image_uri"`
	Seller        string    `json:"seller"`
	IsActive      bool      `json:"is_active"`
	TotalSold     uint64    `json:"total_sold"`
	CreatedAt     time.Time `json:"created_at"`
}
