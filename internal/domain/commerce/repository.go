package commerce

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// ExportCriteria selects orders for a feed page
type ExportCriteria struct {
	States []OrderState
	// ChangedFrom and ChangedTo bound the changed timestamp inclusively.
	// Nil leaves the bound open.
	ChangedFrom *time.Time
	ChangedTo   *time.Time
	Offset      int
	Limit       int
}

// OrderRepository loads orders with their full entity graph
type OrderRepository interface {
	// FindForExport returns matching orders ordered by changed time then id
	FindForExport(ctx context.Context, criteria ExportCriteria) ([]Order, error)

	// CountForExport counts matching orders ignoring Offset and Limit
	CountForExport(ctx context.Context, criteria ExportCriteria) (int64, error)

	// FindByOrderNumber finds an order by its customer-facing number
	FindByOrderNumber(ctx context.Context, orderNumber string) (*Order, error)
}

// ShipmentRepository reads and updates shipments
type ShipmentRepository interface {
	// FindByID finds a shipment by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*Shipment, error)

	// SaveTracking persists the tracking code and shipped time of a shipment
	SaveTracking(ctx context.Context, shipment *Shipment) error
}

// ShippingMethodRepository lists configured shipping methods
type ShippingMethodRepository interface {
	FindAll(ctx context.Context) ([]ShippingMethod, error)
}
