package event

import (
	"time"

	"github.com/google/uuid"
)

type BaseEvent struct {
	EventID     string    `json:"eventId"`
	AggregateID string    `json:"aggregateId"`
	CreatedAt   time.Time `json:"createdAt"`
	EventType   EventType `json:"eventType"`
}

func (e *BaseEvent) GetID() string {
	return e.EventID
}

func (e *BaseEvent) GetAggregateID() string {
	return e.AggregateID
}

func NewBaseEvent(aggregateID string, eventType EventType) BaseEvent {
	return BaseEvent{
		EventID:     uuid.New().String(),
		AggregateID: aggregateID,
		CreatedAt:   time.Now().UTC(),
		EventType:   eventType,
	}
}

type EventType string

const (
	ProductListedEventName      EventType = "ProductListed"
	ProductModifiedEventName    EventType = "ProductModified"
	OrderCreatedEventName       EventType = "OrderCreated"
	OrderStatusChangedEventName EventType = "OrderStatusChanged"
	SellerAuthorizedEventName   EventType = "SellerAuthorized"
	SellerRevokedEventName      EventType = "SellerRevoked"
	FundsWithdrawnEventName     EventType = "FundsWithdrawn"
)

type Event interface {
	Type() EventType
	GetID() string
	GetAggregateID() string
}
