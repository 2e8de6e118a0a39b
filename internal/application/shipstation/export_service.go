package shipstation

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/beevik/etree"
	"github.com/commerce/shipstation/internal/domain/commerce"
	"github.com/commerce/shipstation/internal/domain/shared"
	"github.com/commerce/shipstation/internal/domain/shipstation"
	"github.com/commerce/shipstation/internal/infrastructure/telemetry"
	"github.com/commerce/shipstation/internal/infrastructure/xmlfeed"
	"go.uber.org/zap"
)

// ExportService renders pages of the ShipStation order feed
type ExportService struct {
	settings       SettingsSource
	orderRepo      commerce.OrderRepository
	images         shipstation.ImageURLBuilder
	plugins        *PluginRegistry
	eventPublisher shared.EventPublisher
	logger         *zap.Logger
}

// ExportServiceConfig holds the collaborators of the export service
type ExportServiceConfig struct {
	Settings       SettingsSource
	OrderRepo      commerce.OrderRepository
	Images         shipstation.ImageURLBuilder
	Plugins        *PluginRegistry
	EventPublisher shared.EventPublisher
	Logger         *zap.Logger
}

// NewExportService creates a new ExportService
func NewExportService(cfg ExportServiceConfig) *ExportService {
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	plugins := cfg.Plugins
	if plugins == nil {
		plugins = NewPluginRegistry(logger)
	}
	return &ExportService{
		settings:       cfg.Settings,
		orderRepo:      cfg.OrderRepo,
		images:         cfg.Images,
		plugins:        plugins,
		eventPublisher: cfg.EventPublisher,
		logger:         logger,
	}
}

// ExportOrders renders one page of orders in the configured states.
// Orders that do not qualify are left out without error.
func (s *ExportService) ExportOrders(ctx context.Context, req ExportRequest) (*ExportResult, error) {
	snap := s.settings.Current()
	pageSize := snap.Settings.PageSize()
	page := req.Page
	if page < 1 {
		page = 1
	}

	ctx, span := telemetry.StartServiceSpan(ctx, "shipstation_export", "export_orders",
		telemetry.AttrPage.Int(page),
		telemetry.AttrPageSize.Int(pageSize),
	)
	defer span.End()

	criteria := commerce.ExportCriteria{
		States: snap.Settings.ExportStates,
		Offset: (page - 1) * pageSize,
		Limit:  pageSize,
	}
	exportCtx := ExportContext{Page: page, PageSize: pageSize}

	if start, ok := ParseTimestamp(req.StartDate); ok {
		exportCtx.StartDate = &start
	} else if req.StartDate != "" {
		s.logger.Warn("Ignoring unparseable start_date", zap.String("start_date", req.StartDate))
	}
	if end, ok := ParseTimestamp(req.EndDate); ok {
		exportCtx.EndDate = &end
	} else if req.EndDate != "" {
		s.logger.Warn("Ignoring unparseable end_date", zap.String("end_date", req.EndDate))
	}
	if !snap.Settings.Reload {
		criteria.ChangedFrom = exportCtx.StartDate
		criteria.ChangedTo = exportCtx.EndDate
	}

	var (
		total  int64
		orders []commerce.Order
	)
	if len(criteria.States) > 0 {
		var err error
		total, err = s.orderRepo.CountForExport(ctx, criteria)
		if err != nil {
			telemetry.RecordError(span, err)
			return nil, fmt.Errorf("failed to count orders for export: %w", err)
		}
		orders, err = s.orderRepo.FindForExport(ctx, criteria)
		if err != nil {
			telemetry.RecordError(span, err)
			return nil, fmt.Errorf("failed to load orders for export: %w", err)
		}
	}

	if snap.Settings.Logging {
		s.logger.Info("ShipStation export",
			zap.Int("orders", len(orders)),
			zap.Int64("total", total),
			zap.Int("page", page),
			zap.Timep("since", exportCtx.StartDate),
			zap.Timep("to", exportCtx.EndDate),
		)
	}

	orders = s.plugins.AlterOrders(ctx, orders, exportCtx)

	pages := pageCount(total, pageSize)
	doc, root := xmlfeed.NewDocument("Orders")
	root.CreateAttr("pages", strconv.Itoa(pages))

	mapper := &orderMapper{snap: snap, images: s.images, plugins: s.plugins, logger: s.logger}
	exported := 0
	for i := range orders {
		if s.exportOrder(ctx, mapper, root, &orders[i], page) {
			exported++
		}
	}

	out, err := xmlfeed.Render(doc)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}

	span.SetAttributes(
		telemetry.AttrTotal.Int64(total),
		telemetry.AttrExported.Int(exported),
	)

	return &ExportResult{XML: out, Pages: pages, Total: total, Exported: exported}, nil
}

// exportOrder maps and appends one order. Mapping failures and panics
// only drop the order.
func (s *ExportService) exportOrder(ctx context.Context, mapper *orderMapper, root *etree.Element, order *commerce.Order, page int) (ok bool) {
	defer func() {
		if rec := recover(); rec != nil {
			s.logger.Error("Panic while exporting order",
				zap.String("order_id", order.ID.String()),
				zap.Any("panic", rec))
			ok = false
		}
	}()

	el, err := mapper.mapOrder(ctx, order)
	if err != nil {
		if errors.Is(err, errSkipOrder) {
			s.logger.Debug("Order excluded from export",
				zap.String("order_id", order.ID.String()),
				zap.String("reason", err.Error()))
		} else {
			s.logger.Warn("Failed to map order for export",
				zap.String("order_id", order.ID.String()),
				zap.Error(err))
		}
		return false
	}

	s.plugins.AlterOrderXML(ctx, el, order)
	root.AddChild(el)

	if s.eventPublisher != nil {
		event := shipstation.NewOrderExportedEvent(order.ID, order.OrderNumber, page)
		if err := s.eventPublisher.Publish(ctx, event); err != nil {
			s.logger.Error("Failed to publish order exported event",
				zap.String("order_id", order.ID.String()),
				zap.Error(err))
		}
	}
	return true
}

func pageCount(total int64, pageSize int) int {
	if total <= 0 || pageSize <= 0 {
		return 0
	}
	size := int64(pageSize)
	return int((total + size - 1) / size)
}
