package model

import "time"

// owner不在名單內，owner的權限由ledger_states.owner判斷
type Seller struct {
	Account   string    `gorm:"primaryKey;type:varchar(64)" json:"account"`
	GrantedAt time.Time `gorm:"not null" json:"granted_at"`
}
