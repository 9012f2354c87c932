package model

import (
	"github.com/shopspring/decimal"
)

const LedgerStateID uint32 = 1

// 整個帳本只有一列，部署時建立
type LedgerState struct {
	ID           uint32          `gorm:"primaryKey" json:"id"`
	Owner        string          `gorm:"not null;type:varchar(64)" json:"owner"`
	FeePercent   uint64          `gorm:"not null;default:0" json:"fee_percent"`
	Balance      decimal.Decimal `gorm:"not null;type:numeric(38,0)" json:"balance"`
	EscrowHeld   decimal.Decimal `gorm:"not null;type:numeric(38,0)" json:"escrow_held"`
	ProductCount uint64          `gorm:"not null;default:0" json:"product_count"`
	OrderCount   uint64          `gorm:"not null;default:0" json:"order_count"`
}
