package db

import (
	"context"
	"errors"
	"fmt"
	"math/big"
	"time"

	"github.com/Dominion116/StyleHub/internal/domain/model"
	db_model "github.com/Dominion116/StyleHub/internal/infra/repository/db/model"
	"github.com/Dominion116/StyleHub/internal/service"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// MarketDB 市集帳本的postgres存取層
// Transaction 包裝gorm事務，回傳error時整筆回滾
type MarketDB struct {
	dao *DbDao
}

func NewMarketDB(dao *DbDao) *MarketDB {
	return &MarketDB{dao: dao}
}

// 建立帳本初始狀態，已存在時不動
// 冪等性
func (m *MarketDB) InitState(ctx context.Context, owner string, feePercent uint64) error {
	state := db_model.LedgerState{
		ID:         db_model.LedgerStateID,
		Owner:      owner,
		FeePercent: feePercent,
		Balance:    decimal.Zero,
		EscrowHeld: decimal.Zero,
	}
	return m.dao.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&state).Error
}

func (m *MarketDB) Transaction(ctx context.Context, fn func(tx service.TxStore) error) error {
	return m.dao.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&MarketDB{dao: NewDbDao(tx)})
	})
}

func (m *MarketDB) GetState(ctx context.Context) (*model.LedgerState, error) {
	var state db_model.LedgerState
	err := m.dao.WithContext(ctx).First(&state, "id = ?", db_model.LedgerStateID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("ledger state not initialized")
		}
		return nil, err
	}
	return stateToDomain(&state), nil
}

func (m *MarketDB) SaveState(ctx context.Context, state *model.LedgerState) error {
	return m.dao.WithContext(ctx).Save(stateFromDomain(state)).Error
}

func (m *MarketDB) GetProduct(ctx context.Context, productID uint64) (*model.Product, error) {
	var product db_model.Product
	err := m.dao.WithContext(ctx).First(&product, "product_id = ?", productID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return productToDomain(&product), nil
}

func (m *MarketDB) SaveProduct(ctx context.Context, product *model.Product) error {
	return m.dao.WithContext(ctx).Save(productFromDomain(product)).Error
}

func (m *MarketDB) GetAllProducts(ctx context.Context) ([]model.Product, error) {
	var rows []db_model.Product
	err := m.dao.WithContext(ctx).Order("product_id").Find(&rows).Error
	if err != nil {
		return nil, err
	}
	products := make([]model.Product, len(rows))
	for i := range rows {
		products[i] = *productToDomain(&rows[i])
	}
	return products, nil
}

func (m *MarketDB) GetOrder(ctx context.Context, orderID uint64) (*model.Order, error) {
	var order db_model.Order
	err := m.dao.WithContext(ctx).First(&order, "order_id = ?", orderID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return orderToDomain(&order), nil
}

func (m *MarketDB) SaveOrder(ctx context.Context, order *model.Order) error {
	return m.dao.WithContext(ctx).Save(orderFromDomain(order)).Error
}

func (m *MarketDB) GetAllOrders(ctx context.Context) ([]model.Order, error) {
	var rows []db_model.Order
	err := m.dao.WithContext(ctx).Order("order_id").Find(&rows).Error
	if err != nil {
		return nil, err
	}
	orders := make([]model.Order, len(rows))
	for i := range rows {
		orders[i] = *orderToDomain(&rows[i])
	}
	return orders, nil
}

func (m *MarketDB) GetCustomerOrders(ctx context.Context, customer string) ([]uint64, error) {
	var ids []uint64
	err := m.dao.WithContext(ctx).
		Model(&db_model.Order{}).
		Where("customer = ?", customer).
		Order("order_id").
		Pluck("order_id", &ids).Error
	return ids, err
}

func (m *MarketDB) IsSeller(ctx context.Context, account string) (bool, error) {
	var count int64
	err := m.dao.WithContext(ctx).
		Model(&db_model.Seller{}).
		Where("account = ?", account).
		Count(&count).Error
	return count > 0, err
}

// 重複授權是no-op
func (m *MarketDB) AddSeller(ctx context.Context, account string) error {
	seller := db_model.Seller{
		Account:   account,
		GrantedAt: time.Now().UTC(),
	}
	return m.dao.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&seller).Error
}

func (m *MarketDB) RemoveSeller(ctx context.Context, account string) error {
	return m.dao.WithContext(ctx).
		Where("account = ?", account).
		Delete(&db_model.Seller{}).Error
}

func amountToDecimal(v uint64) decimal.Decimal {
	return decimal.NewFromBigInt(new(big.Int).SetUint64(v), 0)
}

func decimalToAmount(d decimal.Decimal) uint64 {
	return d.BigInt().Uint64()
}

func stateToDomain(s *db_model.LedgerState) *model.LedgerState {
	return &model.LedgerState{
		Owner:        s.Owner,
		FeePercent:   s.FeePercent,
		Balance:      decimalToAmount(s.Balance),
		EscrowHeld:   decimalToAmount(s.EscrowHeld),
		ProductCount: s.ProductCount,
		OrderCount:   s.OrderCount,
	}
}

func stateFromDomain(s *model.LedgerState) *db_model.LedgerState {
	return &db_model.LedgerState{
		ID:           db_model.LedgerStateID,
		Owner:        s.Owner,
		FeePercent:   s.FeePercent,
		Balance:      amountToDecimal(s.Balance),
		EscrowHeld:   amountToDecimal(s.EscrowHeld),
		ProductCount: s.ProductCount,
		OrderCount:   s.OrderCount,
	}
}

func productToDomain(p *db_model.Product) *model.Product {
	return &model.Product{
		ID:            p.ProductID,
		Name:          p.Name,
		Description:   p.Description,
		Category:      model.Category(p.Category),
		UnitPrice:     decimalToAmount(p.UnitPrice),
		StockQuantity: p.StockQuantity,
		ImageURI:      p.ImageURI,
		Seller:        p.Seller,
		IsActive:      p.IsActive,
		TotalSold:     p.TotalSold,
		CreatedAt:     p.CreatedAt,
	}
}

func productFromDomain(p *model.Product) *db_model.Product {
	return &db_model.Product{
		ProductID:     p.ID,
		Name:          p.Name,
		Description:   p.Description,
		Category:      uint8(p.Category),
		UnitPrice:     amountToDecimal(p.UnitPrice),
		StockQuantity: p.StockQuantity,
		ImageURI:      p.ImageURI,
		Seller:        p.Seller,
		IsActive:      p.IsActive,
		TotalSold:     p.TotalSold,
		CreatedAt:     p.CreatedAt,
	}
}

func orderToDomain(o *db_model.Order) *model.Order {
	return &model.Order{
		ID:              o.OrderID,
		Customer:        o.Customer,
		ProductID:       o.ProductID,
		Quantity:        o.Quantity,
		ItemTotal:       decimalToAmount(o.ItemTotal),
		PlatformFee:     decimalToAmount(o.PlatformFee),
		Status:          model.OrderStatus(o.Status),
		PlacedAt:        o.PlacedAt,
		UpdatedAt:       o.UpdatedAt,
		DeliveryAddress: o.DeliveryAddress,
		TrackingNumber:  o.TrackingNumber,
	}
}

func orderFromDomain(o *model.Order) *db_model.Order {
	return &db_model.Order{
		OrderID:         o.ID,
		Customer:        o.Customer,
		ProductID:       o.ProductID,
		Quantity:        o.Quantity,
		ItemTotal:       amountToDecimal(o.ItemTotal),
		PlatformFee:     amountToDecimal(o.PlatformFee),
		Status:          uint8(o.Status),
		PlacedAt:        o.PlacedAt,
		UpdatedAt:       o.UpdatedAt,
		DeliveryAddress: o.DeliveryAddress,
		TrackingNumber:  o.TrackingNumber,
	}
}

var _ service.MarketStore = (*MarketDB)(nil)
