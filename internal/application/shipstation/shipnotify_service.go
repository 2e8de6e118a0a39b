package shipstation

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/commerce/shipstation/internal/domain/commerce"
	"github.com/commerce/shipstation/internal/domain/shared"
	"github.com/commerce/shipstation/internal/domain/shipstation"
	"github.com/commerce/shipstation/internal/infrastructure/telemetry"
	"go.uber.org/zap"
)

// ShipNotifyService records shipments reported by ShipStation
type ShipNotifyService struct {
	orderRepo      commerce.OrderRepository
	shipmentRepo   commerce.ShipmentRepository
	eventPublisher shared.EventPublisher
	logger         *zap.Logger
	now            func() time.Time
}

// NewShipNotifyService creates a new ShipNotifyService
func NewShipNotifyService(
	orderRepo commerce.OrderRepository,
	shipmentRepo commerce.ShipmentRepository,
	eventPublisher shared.EventPublisher,
	logger *zap.Logger,
) *ShipNotifyService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ShipNotifyService{
		orderRepo:      orderRepo,
		shipmentRepo:   shipmentRepo,
		eventPublisher: eventPublisher,
		logger:         logger,
		now:            time.Now,
	}
}

// ShipNotify stores the tracking number and ship time on the first
// shipment of the order.
func (s *ShipNotifyService) ShipNotify(ctx context.Context, req ShipNotifyRequest) (*ShipNotifyResult, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "shipstation_notify", "ship_notify",
		telemetry.AttrOrderNumber.String(req.OrderNumber),
		telemetry.AttrCarrier.String(req.Carrier),
	)
	defer span.End()

	if req.OrderNumber == "" || req.Carrier == "" {
		s.logger.Error("ShipStation shipnotify call is missing order info",
			zap.Bool("has_order_number", req.OrderNumber != ""),
			zap.Bool("has_carrier", req.Carrier != ""))
		return nil, shipstation.ErrMissingOrderInfo
	}

	order, err := s.orderRepo.FindByOrderNumber(ctx, req.OrderNumber)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, s.notFound(req.OrderNumber)
		}
		telemetry.RecordError(span, err)
		return nil, fmt.Errorf("failed to load order %s: %w", req.OrderNumber, err)
	}

	ref, ok := order.FirstShipment()
	if !ok {
		return nil, s.notFound(req.OrderNumber)
	}
	shipment, err := s.shipmentRepo.FindByID(ctx, ref.ID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, s.notFound(req.OrderNumber)
		}
		telemetry.RecordError(span, err)
		return nil, fmt.Errorf("failed to load shipment %s: %w", ref.ID, err)
	}

	shipment.RecordTracking(req.TrackingNumber, s.shipTime(req))
	if err := s.shipmentRepo.SaveTracking(ctx, shipment); err != nil {
		telemetry.RecordError(span, err)
		s.logger.Error("Unable to save tracking information",
			zap.String("order_number", req.OrderNumber),
			zap.String("shipment_id", shipment.ID.String()),
			zap.Error(err))
		return nil, shipstation.NewShipmentPersistError(req.OrderNumber)
	}

	if s.eventPublisher != nil {
		event := shipstation.NewOrderShippedEvent(order.ID, shipment.ID, order.OrderNumber,
			req.TrackingNumber, req.Carrier, req.Service, *shipment.ShippedAt)
		if err := s.eventPublisher.Publish(ctx, event); err != nil {
			s.logger.Error("Failed to publish order shipped event",
				zap.String("order_number", order.OrderNumber),
				zap.Error(err))
		}
	}

	s.logger.Info("Tracking number updated",
		zap.String("order_id", order.ID.String()),
		zap.String("order_number", order.OrderNumber),
		zap.String("carrier", req.Carrier),
		zap.String("service", req.Service))

	return &ShipNotifyResult{
		Message:    fmt.Sprintf("Tracking number updated for order %s.", order.ID),
		OrderID:    order.ID,
		ShipmentID: shipment.ID,
	}, nil
}

func (s *ShipNotifyService) notFound(orderNumber string) error {
	err := shipstation.NewShipNotifyNotFoundError(orderNumber)
	s.logger.Error(err.Message, zap.String("order_number", orderNumber))
	return err
}

// shipTime prefers ship_date, then label_create_date, then the current time.
func (s *ShipNotifyService) shipTime(req ShipNotifyRequest) time.Time {
	for _, v := range []string{req.ShipDate, req.LabelCreateDate} {
		if t, ok := ParseTimestamp(v); ok {
			return t
		}
	}
	s.logger.Warn("No usable ship date in shipnotify call, using current time",
		zap.String("ship_date", req.ShipDate),
		zap.String("label_create_date", req.LabelCreateDate))
	return s.now().UTC()
}
