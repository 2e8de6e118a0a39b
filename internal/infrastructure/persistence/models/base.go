package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// BaseModel provides common persistence fields for all models
type BaseModel struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key"`
	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

// BeforeCreate assigns an ID to new rows
func (m *BaseModel) BeforeCreate(tx *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return nil
}

// All returns every model for auto-migration, parents first
func All() []any {
	return []any{
		&ProductModel{},
		&ProductVariationModel{},
		&ProfileModel{},
		&ShippingMethodModel{},
		&OrderModel{},
		&OrderItemModel{},
		&ShipmentModel{},
	}
}
