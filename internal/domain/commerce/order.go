package commerce

import (
	"strings"
	"time"

	"github.com/commerce/shipstation/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// OrderState is the workflow state id of an order
type OrderState string

const (
	OrderStateDraft       OrderState = "draft"
	OrderStatePending     OrderState = "pending"
	OrderStateValidation  OrderState = "validation"
	OrderStateFulfillment OrderState = "fulfillment"
	OrderStateCompleted   OrderState = "completed"
	OrderStateCanceled    OrderState = "canceled"
)

var stateLabels = map[OrderState]string{
	OrderStateDraft:       "Draft",
	OrderStatePending:     "Pending",
	OrderStateValidation:  "Validation",
	OrderStateFulfillment: "Fulfillment",
	OrderStateCompleted:   "Completed",
	OrderStateCanceled:    "Canceled",
}

var labelCaser = cases.Title(language.English)

// Label returns the human readable state label. Custom workflow states are
// title-cased from their id ("awaiting_pickup" -> "Awaiting Pickup").
func (s OrderState) Label() string {
	if label, ok := stateLabels[s]; ok {
		return label
	}
	return labelCaser.String(strings.ReplaceAll(string(s), "_", " "))
}

// String returns the state id
func (s OrderState) String() string {
	return string(s)
}

// KnownOrderStates lists the states of the default order workflow
func KnownOrderStates() []OrderState {
	return []OrderState{
		OrderStateDraft,
		OrderStatePending,
		OrderStateValidation,
		OrderStateFulfillment,
		OrderStateCompleted,
		OrderStateCanceled,
	}
}

// OrderItem is a purchased line on an order
type OrderItem struct {
	ID              uuid.UUID
	Title           string
	Quantity        decimal.Decimal
	UnitPrice       valueobject.Money
	PurchasedEntity *ProductVariation
	Adjustments     []Adjustment
}

// Order is the aggregate exported to ShipStation
type Order struct {
	ID             uuid.UUID
	OrderNumber    string
	State          OrderState
	Email          string
	PlacedAt       time.Time
	ChangedAt      time.Time
	BillingProfile *Profile
	Total          valueobject.Money
	Adjustments    []Adjustment
	Items          []OrderItem
	Shipments      []Shipment
	Fields         FieldValues
}

// CollectAdjustments returns the order-level adjustments followed by the
// adjustments of every order item, in item order.
func (o *Order) CollectAdjustments() []Adjustment {
	out := make([]Adjustment, 0, len(o.Adjustments))
	out = append(out, o.Adjustments...)
	for _, item := range o.Items {
		out = append(out, item.Adjustments...)
	}
	return out
}

// FirstShipment returns the first shipment referenced by the order
func (o *Order) FirstShipment() (*Shipment, bool) {
	if len(o.Shipments) == 0 {
		return nil, false
	}
	return &o.Shipments[0], true
}

// FindItem returns the order item with the given id
func (o *Order) FindItem(id uuid.UUID) (*OrderItem, bool) {
	for i := range o.Items {
		if o.Items[i].ID == id {
			return &o.Items[i], true
		}
	}
	return nil, false
}
