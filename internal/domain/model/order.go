package model

import (
	"time"
)

type OrderStatus uint8

const (
	OrderStatusPlaced    OrderStatus = 0 // 已下單
	OrderStatusConfirmed OrderStatus = 1 // 已確認
	OrderStatusShipped   OrderStatus = 2 // 已出貨
	OrderStatusDelivered OrderStatus = 3 // 已送達
	OrderStatusCancelled OrderStatus = 4 // 已取消
	OrderStatusRefunded  OrderStatus = 5 // 已退款
)

func (s OrderStatus) String() string {
	switch s {
	case OrderStatusPlaced:
		return "Placed"
	case OrderStatusConfirmed:
		return "Confirmed"
	case OrderStatusShipped:
		return "Shipped"
	case OrderStatusDelivered:
		return "Delivered"
	case OrderStatusCancelled:
		return "Cancelled"
	case OrderStatusRefunded:
		return "Refunded"
	default:
		return "Unknown"
	}
}

// 只有出貨前可以取消
func (s OrderStatus) Cancellable() bool {
	return s == OrderStatusPlaced || s == OrderStatusConfirmed
}

// 出貨後貨物退回才走退款
func (s OrderStatus) Refundable() bool {
	return s == OrderStatusShipped || s == OrderStatusDelivered
}

// 訂單階段 ItemTotal/PlatformFee 不會變動
// 只有 Status, UpdatedAt, TrackingNumber 會變動
type Order struct {
	ID              uint64      `json:"id"`
	Customer        string      `json:"customer"`
	ProductID       uint64      `json:"product_id"`
	Quantity        uint64      `json:"quantity"`
	ItemTotal       uint64      `json:"item_total"`
	PlatformFee     uint64      `json:"platform_fee"`
	Status          OrderStatus `json:"status"`
	PlacedAt        time.Time   `json:"placed_at"`
	UpdatedAt       time.Time   `json:"updated_at"`
	DeliveryAddress string      `json:"delivery_address"`
	TrackingNumber  string      `json:"tracking_number"`
}

// 下單時附帶的總額，建立後不再改變
func (o *Order) Total() uint64 {
	return o.ItemTotal + o.PlatformFee
}
