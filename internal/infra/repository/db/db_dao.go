package db

import (
	db_model "github.com/Dominion116/StyleHub/internal/infra/repository/db/model"
	"gorm.io/gorm"
)

type DbDao struct {
	*gorm.DB
}

func NewDbDao(conn *gorm.DB) *DbDao {
	return &DbDao{
		DB: conn,
	}
}

// 初始化db schema
// 冪等性
func (d *DbDao) InitMigrate() error {
	return d.AutoMigrate(
		&db_model.LedgerState{},
		&db_model.Product{},
		&db_model.Order{},
		&db_model.Seller{},
	)
}
