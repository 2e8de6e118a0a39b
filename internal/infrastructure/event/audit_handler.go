package event

import (
	"context"

	"github.com/commerce/shipstation/internal/domain/shared"
	"github.com/commerce/shipstation/internal/domain/shipstation"
	"go.uber.org/zap"
)

// ShipStationAuditHandler writes an audit log line for every feed export
// and ship notification.
type ShipStationAuditHandler struct {
	logger *zap.Logger
}

// NewShipStationAuditHandler creates a new ShipStationAuditHandler
func NewShipStationAuditHandler(logger *zap.Logger) *ShipStationAuditHandler {
	return &ShipStationAuditHandler{logger: logger.Named("shipstation.audit")}
}

// EventTypes returns the ShipStation event types
func (h *ShipStationAuditHandler) EventTypes() []string {
	return []string{shipstation.EventTypeOrderExported, shipstation.EventTypeOrderShipped}
}

// Handle logs the event
func (h *ShipStationAuditHandler) Handle(ctx context.Context, event shared.DomainEvent) error {
	switch e := event.(type) {
	case *shipstation.OrderExportedEvent:
		h.logger.Debug("order exported",
			zap.String("order_number", e.OrderNumber),
			zap.Int("page", e.Page))
	case *shipstation.OrderShippedEvent:
		h.logger.Info("order shipped",
			zap.String("order_number", e.OrderNumber),
			zap.String("shipment_id", e.ShipmentID.String()),
			zap.String("tracking_number", e.TrackingNumber),
			zap.String("carrier", e.Carrier),
			zap.String("service", e.Service),
			zap.Time("shipped_at", e.ShippedAt))
	default:
		h.logger.Debug("unhandled event", zap.String("event_type", event.EventType()))
	}
	return nil
}
