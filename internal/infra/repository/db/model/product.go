package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// 金額欄位用numeric(38,0)儲存，最小貨幣單位的整數可能超過int64範圍
type Product struct {
	ProductID     uint64          `gorm:"primaryKey;autoIncrement:false" json:"product_id"`
	Name          string          `gorm:"not null;type:varchar(100)" json:"name"`
	Description   string          `gorm:"not null;type:text" json:"description"`
	Category      uint8           `gorm:"not null" json:"category"`
	UnitPrice     decimal.Decimal `gorm:"not null;type:numeric(38,0)" json:"unit_price"`
	StockQuantity uint64          `gorm:"not null" json:"stock_quantity"`
	ImageURI      string          `gorm:"not null;type:text" json:"image_uri"`
	Seller        string          `gorm:"not null;type:varchar(64);index" json:"seller"`
	IsActive      bool            `gorm:"not null;default:true" json:"is_active"`
	TotalSold     uint64          `gorm:"not null;default:0" json:"total_sold"`
	CreatedAt     time.Time       `gorm:"not null" json:"created_at"`
}
