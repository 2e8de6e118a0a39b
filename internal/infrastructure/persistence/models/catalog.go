package models

import (
	"github.com/commerce/shipstation/internal/domain/commerce"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ProductModel is the persistence model for commerce.Product
type ProductModel struct {
	BaseModel
	Title  string                   `gorm:"type:varchar(255);not null"`
	Fields map[string]string        `gorm:"type:jsonb;serializer:json"`
	Images map[string][]ImageRecord `gorm:"type:jsonb;serializer:json"`
}

// TableName returns the table name for GORM
func (ProductModel) TableName() string {
	return "commerce_products"
}

// ToDomain converts the persistence model to a domain Product
func (m *ProductModel) ToDomain() *commerce.Product {
	return &commerce.Product{
		ID:     m.ID,
		Title:  m.Title,
		Fields: commerce.FieldValues(m.Fields),
		Images: toImages(m.Images),
	}
}

// FromDomain populates the persistence model from a domain Product
func (m *ProductModel) FromDomain(p *commerce.Product) {
	m.ID = p.ID
	m.Title = p.Title
	m.Fields = p.Fields
	m.Images = imageRecords(p.Images)
}

// ProductVariationModel is the persistence model for commerce.ProductVariation
type ProductVariationModel struct {
	BaseModel
	ProductID *uuid.UUID                `gorm:"type:uuid;index"`
	Product   *ProductModel             `gorm:"foreignKey:ProductID"`
	SKU       string                    `gorm:"type:varchar(100);not null;index"`
	Title     string                    `gorm:"type:varchar(255);not null"`
	Price     decimal.Decimal           `gorm:"type:decimal(18,4);not null;default:0"`
	Currency  string                    `gorm:"type:varchar(3);not null;default:'USD'"`
	Fields    map[string]string         `gorm:"type:jsonb;serializer:json"`
	Images    map[string][]ImageRecord  `gorm:"type:jsonb;serializer:json"`
	Bundles   map[string][]BundleRecord `gorm:"type:jsonb;serializer:json"`
}

// TableName returns the table name for GORM
func (ProductVariationModel) TableName() string {
	return "commerce_product_variations"
}

// ToDomain converts the persistence model to a domain ProductVariation
func (m *ProductVariationModel) ToDomain() *commerce.ProductVariation {
	v := &commerce.ProductVariation{
		ID:      m.ID,
		SKU:     m.SKU,
		Title:   m.Title,
		Price:   toMoney(m.Price, m.Currency),
		Fields:  commerce.FieldValues(m.Fields),
		Images:  toImages(m.Images),
		Bundles: make(map[string][]commerce.BundleComponent, len(m.Bundles)),
	}
	if m.Product != nil {
		v.Product = m.Product.ToDomain()
	}
	for name, records := range m.Bundles {
		components := make([]commerce.BundleComponent, len(records))
		for i, r := range records {
			components[i] = commerce.BundleComponent{SKU: r.SKU, Title: r.Title, Weight: r.Weight.toDomain()}
		}
		v.Bundles[name] = components
	}
	return v
}

// FromDomain populates the persistence model from a domain ProductVariation
func (m *ProductVariationModel) FromDomain(v *commerce.ProductVariation) {
	m.ID = v.ID
	m.SKU = v.SKU
	m.Title = v.Title
	m.Price = v.Price.Amount()
	m.Currency = string(v.Price.Currency())
	m.Fields = v.Fields
	m.Images = imageRecords(v.Images)
	m.Bundles = make(map[string][]BundleRecord, len(v.Bundles))
	for name, components := range v.Bundles {
		records := make([]BundleRecord, len(components))
		for i, c := range components {
			records[i] = BundleRecord{SKU: c.SKU, Title: c.Title, Weight: weightRecord(c.Weight)}
		}
		m.Bundles[name] = records
	}
	if v.Product != nil {
		m.ProductID = &v.Product.ID
	}
}
