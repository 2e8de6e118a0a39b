package persistence

import (
	"context"
	"errors"

	"github.com/commerce/shipstation/internal/domain/commerce"
	"github.com/commerce/shipstation/internal/domain/shared"
	"github.com/commerce/shipstation/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormOrderRepository implements commerce.OrderRepository using GORM
type GormOrderRepository struct {
	db *gorm.DB
}

// NewGormOrderRepository creates a new GormOrderRepository
func NewGormOrderRepository(db *gorm.DB) *GormOrderRepository {
	return &GormOrderRepository{db: db}
}

// FindForExport returns one page of orders in the export window, ordered by
// changed time then id so consecutive pages never overlap.
func (r *GormOrderRepository) FindForExport(ctx context.Context, criteria commerce.ExportCriteria) ([]commerce.Order, error) {
	if len(criteria.States) == 0 {
		return []commerce.Order{}, nil
	}

	query := withOrderGraph(r.exportScope(ctx, criteria)).
		Order("changed_at ASC").
		Order("id ASC")
	if criteria.Offset > 0 {
		query = query.Offset(criteria.Offset)
	}
	if criteria.Limit > 0 {
		query = query.Limit(criteria.Limit)
	}

	var rows []models.OrderModel
	if err := query.Find(&rows).Error; err != nil {
		return nil, err
	}

	orders := make([]commerce.Order, len(rows))
	for i := range rows {
		orders[i] = *rows[i].ToDomain()
	}
	return orders, nil
}

// CountForExport counts the orders in the export window
func (r *GormOrderRepository) CountForExport(ctx context.Context, criteria commerce.ExportCriteria) (int64, error) {
	if len(criteria.States) == 0 {
		return 0, nil
	}

	var count int64
	if err := r.exportScope(ctx, criteria).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// FindByOrderNumber finds an order by its customer-facing number
func (r *GormOrderRepository) FindByOrderNumber(ctx context.Context, orderNumber string) (*commerce.Order, error) {
	var row models.OrderModel
	if err := withOrderGraph(r.db.WithContext(ctx)).
		Where("order_number = ?", orderNumber).
		First(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return row.ToDomain(), nil
}

// Save creates or replaces an order together with its items and shipments
func (r *GormOrderRepository) Save(ctx context.Context, order *commerce.Order) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("order_id = ?", order.ID).Delete(&models.ShipmentModel{}).Error; err != nil {
			return err
		}
		if err := tx.Where("order_id = ?", order.ID).Delete(&models.OrderItemModel{}).Error; err != nil {
			return err
		}
		if err := tx.Where("id = ?", order.ID).Delete(&models.OrderModel{}).Error; err != nil {
			return err
		}
		m := models.OrderModelFromDomain(order)
		if err := tx.Session(&gorm.Session{FullSaveAssociations: true}).Create(m).Error; err != nil {
			return err
		}
		order.ID = m.ID
		return nil
	})
}

func (r *GormOrderRepository) exportScope(ctx context.Context, criteria commerce.ExportCriteria) *gorm.DB {
	states := make([]string, len(criteria.States))
	for i, s := range criteria.States {
		states[i] = string(s)
	}

	query := r.db.WithContext(ctx).Model(&models.OrderModel{}).Where("state IN ?", states)
	if criteria.ChangedFrom != nil {
		query = query.Where("changed_at >= ?", criteria.ChangedFrom.UTC())
	}
	if criteria.ChangedTo != nil {
		query = query.Where("changed_at <= ?", criteria.ChangedTo.UTC())
	}
	return query
}

// withOrderGraph preloads everything the feed mapper reads
func withOrderGraph(db *gorm.DB) *gorm.DB {
	return db.
		Preload("BillingProfile").
		Preload("Items", func(db *gorm.DB) *gorm.DB {
			return db.Order("position ASC")
		}).
		Preload("Items.PurchasedEntity.Product").
		Preload("Shipments", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at ASC").Order("id ASC")
		}).
		Preload("Shipments.ShippingProfile").
		Preload("Shipments.ShippingMethod")
}

var _ commerce.OrderRepository = (*GormOrderRepository)(nil)
