package persistence

import (
	"context"

	"github.com/commerce/shipstation/internal/domain/commerce"
	"github.com/commerce/shipstation/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormShippingMethodRepository implements commerce.ShippingMethodRepository using GORM
type GormShippingMethodRepository struct {
	db *gorm.DB
}

// NewGormShippingMethodRepository creates a new GormShippingMethodRepository
func NewGormShippingMethodRepository(db *gorm.DB) *GormShippingMethodRepository {
	return &GormShippingMethodRepository{db: db}
}

// FindAll lists shipping methods by name
func (r *GormShippingMethodRepository) FindAll(ctx context.Context) ([]commerce.ShippingMethod, error) {
	var rows []models.ShippingMethodModel
	if err := r.db.WithContext(ctx).Order("name ASC").Find(&rows).Error; err != nil {
		return nil, err
	}
	methods := make([]commerce.ShippingMethod, len(rows))
	for i := range rows {
		methods[i] = *rows[i].ToDomain()
	}
	return methods, nil
}

// Save creates or updates a shipping method
func (r *GormShippingMethodRepository) Save(ctx context.Context, method *commerce.ShippingMethod) error {
	m := &models.ShippingMethodModel{Name: method.Name, Label: method.Label}
	m.ID = method.ID
	if err := r.db.WithContext(ctx).Save(m).Error; err != nil {
		return err
	}
	method.ID = m.ID
	return nil
}

var _ commerce.ShippingMethodRepository = (*GormShippingMethodRepository)(nil)
