package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/commerce/shipstation/internal/domain/commerce"
	"github.com/commerce/shipstation/internal/domain/shared"
	"github.com/commerce/shipstation/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormShipmentRepository implements commerce.ShipmentRepository using GORM
type GormShipmentRepository struct {
	db *gorm.DB
}

// NewGormShipmentRepository creates a new GormShipmentRepository
func NewGormShipmentRepository(db *gorm.DB) *GormShipmentRepository {
	return &GormShipmentRepository{db: db}
}

// FindByID finds a shipment by its ID
func (r *GormShipmentRepository) FindByID(ctx context.Context, id uuid.UUID) (*commerce.Shipment, error) {
	var row models.ShipmentModel
	if err := r.db.WithContext(ctx).
		Preload("ShippingProfile").
		Preload("ShippingMethod").
		First(&row, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return row.ToDomain(), nil
}

// SaveTracking writes only the tracking code and shipped time so concurrent
// edits to the rest of the shipment are kept
func (r *GormShipmentRepository) SaveTracking(ctx context.Context, shipment *commerce.Shipment) error {
	result := r.db.WithContext(ctx).
		Model(&models.ShipmentModel{}).
		Where("id = ?", shipment.ID).
		Updates(map[string]any{
			"tracking_code": shipment.TrackingCode,
			"shipped_at":    shipment.ShippedAt,
			"updated_at":    time.Now().UTC(),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

var _ commerce.ShipmentRepository = (*GormShipmentRepository)(nil)
