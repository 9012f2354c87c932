package model

import (
	"time"

	"github.com/shopspring/decimal"
)

type Order struct {
	OrderID         uint64          `gorm:"primaryKey;autoIncrement:false" json:"order_id"`
	Customer        string          `gorm:"not null;type:varchar(64);index" json:"customer"`
	ProductID       uint64          `gorm:"not null;index" json:"product_id"`
	Quantity        uint64          `gorm:"not null" json:"quantity"`
	ItemTotal       decimal.Decimal `gorm:"not null;type:numeric(38,0)" json:"item_total"`
	PlatformFee     decimal.Decimal `gorm:"not null;type:numeric(38,0)" json:"platform_fee"`
	Status          uint8           `gorm:"not null;default:0" json:"status"`
	PlacedAt        time.Time       `gorm:"not null" json:"placed_at"`
	// 狀態變更時間由引擎決定，不讓gorm自動蓋掉
	UpdatedAt       time.Time `gorm:"not null;autoUpdateTime:false" json:"updated_at"`
	DeliveryAddress string    `gorm:"not null;type:text" json:"delivery_address"`
	TrackingNumber  string    `gorm:"not null;default:''" json:"tracking_number"`
}
