package shipstation

import (
	"time"

	"github.com/commerce/shipstation/internal/domain/shared"
	"github.com/google/uuid"
)

// Aggregate type constant
const AggregateTypeOrder = "Order"

// Event type constants
const (
	EventTypeOrderExported = "shipstation.order_exported"
	EventTypeOrderShipped  = "shipstation.order_shipped"
)

// OrderExportedEvent is published after an order was written to the export feed
type OrderExportedEvent struct {
	shared.BaseDomainEvent
	OrderID     uuid.UUID `json:"order_id"`
	OrderNumber string    `json:"order_number"`
	Page        int       `json:"page"`
}

// NewOrderExportedEvent creates a new OrderExportedEvent
func NewOrderExportedEvent(orderID uuid.UUID, orderNumber string, page int) *OrderExportedEvent {
	return &OrderExportedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeOrderExported, AggregateTypeOrder, orderID),
		OrderID:         orderID,
		OrderNumber:     orderNumber,
		Page:            page,
	}
}

// OrderShippedEvent is published when ShipStation reported a shipped package
type OrderShippedEvent struct {
	shared.BaseDomainEvent
	OrderID        uuid.UUID `json:"order_id"`
	OrderNumber    string    `json:"order_number"`
	ShipmentID     uuid.UUID `json:"shipment_id"`
	TrackingNumber string    `json:"tracking_number"`
	Carrier        string    `json:"carrier"`
	Service        string    `json:"service"`
	ShippedAt      time.Time `json:"shipped_at"`
}

// NewOrderShippedEvent creates a new OrderShippedEvent
func NewOrderShippedEvent(orderID, shipmentID uuid.UUID, orderNumber, tracking, carrier, service string, shippedAt time.Time) *OrderShippedEvent {
	return &OrderShippedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeOrderShipped, AggregateTypeOrder, orderID),
		OrderID:         orderID,
		OrderNumber:     orderNumber,
		ShipmentID:      shipmentID,
		TrackingNumber:  tracking,
		Carrier:         carrier,
		Service:         service,
		ShippedAt:       shippedAt,
	}
}
