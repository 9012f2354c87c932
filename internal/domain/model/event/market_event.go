package event

import (
	"strconv"
)

// 市集帳本對外發佈的事件
// 事件只做觀測用途，不參與狀態回放

type ProductListedEvent struct {
	BaseEvent
	ProductID uint64 `json:"product_id"`
	Name      string `json:"name"`
	Category  uint8  `json:"category"`
	UnitPrice uint64 `json:"unit_price"`
	Seller    string `json:"seller"`
}

func (e *ProductListedEvent) Type() EventType {
	return ProductListedEventName
}

func NewProductListedEvent(productID uint64, name string, category uint8, unitPrice uint64, seller string) *ProductListedEvent {
	return &ProductListedEvent{
		BaseEvent: NewBaseEvent(strconv.FormatUint(productID, 10), ProductListedEventName),
		ProductID: productID,
		Name:      name,
		Category:  category,
		UnitPrice: unitPrice,
		Seller:    seller,
	}
}

type ProductModifiedEvent struct {
	BaseEvent
	ProductID uint64 `json:"product_id"`
	NewPrice  uint64 `json:"new_price"`
	NewStock  uint64 `json:"new_stock"`
	IsActive  bool   `json:"is_active"`
}

func (e *ProductModifiedEvent) Type() EventType {
	return ProductModifiedEventName
}

func NewProductModifiedEvent(productID, newPrice, newStock uint64, isActive bool) *ProductModifiedEvent {
	return &ProductModifiedEvent{
		BaseEvent: NewBaseEvent(strconv.FormatUint(productID, 10), ProductModifiedEventName),
		ProductID: productID,
		NewPrice:  newPrice,
		NewStock:  newStock,
		IsActive:  isActive,
	}
}

type OrderCreatedEvent struct {
	BaseEvent
	OrderID     uint64 `json:"order_id"`
	Customer    string `json:"customer"`
	ProductID   uint64 `json:"product_id"`
	Quantity    uint64 `json:"quantity"`
	TotalAmount uint64 `json:"total_amount"`
}

func (e *OrderCreatedEvent) Type() EventType {
	return OrderCreatedEventName
}

func NewOrderCreatedEvent(orderID uint64, customer string, productID, quantity, totalAmount uint64) *OrderCreatedEvent {
	return &OrderCreatedEvent{
		BaseEvent:   NewBaseEvent(strconv.FormatUint(orderID, 10), OrderCreatedEventName),
		OrderID:     orderID,
		Customer:    customer,
		ProductID:   productID,
		Quantity:    quantity,
		TotalAmount: totalAmount,
	}
}

type OrderStatusChangedEvent struct {
	BaseEvent
	OrderID        uint64 `json:"order_id"`
	PreviousStatus uint8  `json:"previous_status"`
	NewStatus      uint8  `json:"new_status"`
}

func (e *OrderStatusChangedEvent) Type() EventType {
	return OrderStatusChangedEventName
}

func NewOrderStatusChangedEvent(orderID uint64, previousStatus, newStatus uint8) *OrderStatusChangedEvent {
	return &OrderStatusChangedEvent{
		BaseEvent:      NewBaseEvent(strconv.FormatUint(orderID, 10), OrderStatusChangedEventName),
		OrderID:        orderID,
		PreviousStatus: previousStatus,
		NewStatus:      newStatus,
	}
}

type SellerAuthorizedEvent struct {
	BaseEvent
	Seller string `json:"seller"`
}

func (e *SellerAuthorizedEvent) Type() EventType {
	return SellerAuthorizedEventName
}

func NewSellerAuthorizedEvent(seller string) *SellerAuthorizedEvent {
	return &SellerAuthorizedEvent{
		BaseEvent: NewBaseEvent(seller, SellerAuthorizedEventName),
		Seller:    seller,
	}
}

type SellerRevokedEvent struct {
	BaseEvent
	Seller string `json:"seller"`
}

func (e *SellerRevokedEvent) Type() EventType {
	return SellerRevokedEventName
}

func NewSellerRevokedEvent(seller string) *SellerRevokedEvent {
	return &SellerRevokedEvent{
		BaseEvent: NewBaseEvent(seller, SellerRevokedEventName),
		Seller:    seller,
	}
}

type FundsWithdrawnEvent struct {
	BaseEvent
	Recipient string `json:"recipient"`
	Amount    uint64 `json:"amount"`
}

func (e *FundsWithdrawnEvent) Type() EventType {
	return FundsWithdrawnEventName
}

func NewFundsWithdrawnEvent(recipient string, amount uint64) *FundsWithdrawnEvent {
	return &FundsWithdrawnEvent{
		BaseEvent: NewBaseEvent(recipient, FundsWithdrawnEventName),
		Recipient: recipient,
		Amount:    amount,
	}
}
