package commerce

import (
	"time"

	"github.com/commerce/shipstation/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ShippingMethod is a configured way of shipping a package
type ShippingMethod struct {
	ID    uuid.UUID
	Name  string
	Label string
}

// ShipmentItem references an order item packed into a shipment
type ShipmentItem struct {
	OrderItemID uuid.UUID
	Title       string
	Quantity    decimal.Decimal
	Weight      *valueobject.Weight
}

// Shipment is a package sent to a shipping profile
type Shipment struct {
	ID              uuid.UUID
	OrderID         uuid.UUID
	ShippingProfile *Profile
	ShippingMethod  *ShippingMethod
	ShippingService string
	Amount          valueobject.Money
	TrackingCode    string
	ShippedAt       *time.Time
	Items           []ShipmentItem
}

// HasItems reports whether anything was packed into the shipment
func (s *Shipment) HasItems() bool {
	return len(s.Items) > 0
}

// MethodName returns the shipping method machine name, or "" when unset
func (s *Shipment) MethodName() string {
	if s.ShippingMethod == nil {
		return ""
	}
	return s.ShippingMethod.Name
}

// ServiceLabel returns the label ShipStation shows for the shipping service.
// Falls back to the method label, then the method name.
func (s *Shipment) ServiceLabel() string {
	if s.ShippingService != "" {
		return s.ShippingService
	}
	if s.ShippingMethod == nil {
		return ""
	}
	if s.ShippingMethod.Label != "" {
		return s.ShippingMethod.Label
	}
	return s.ShippingMethod.Name
}

// RecordTracking sets the tracking code and shipped time reported by the carrier
func (s *Shipment) RecordTracking(code string, shippedAt time.Time) {
	s.TrackingCode = code
	t := shippedAt.UTC()
	s.ShippedAt = &t
}
