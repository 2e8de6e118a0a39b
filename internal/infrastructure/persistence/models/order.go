package models

import (
	"time"

	"github.com/commerce/shipstation/internal/domain/commerce"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ProfileModel is the persistence model for commerce.Profile
type ProfileModel struct {
	BaseModel
	Address *AddressRecord    `gorm:"type:jsonb;serializer:json"`
	Fields  map[string]string `gorm:"type:jsonb;serializer:json"`
}

// TableName returns the table name for GORM
func (ProfileModel) TableName() string {
	return "commerce_profiles"
}

// ToDomain converts the persistence model to a domain Profile
func (m *ProfileModel) ToDomain() *commerce.Profile {
	p := &commerce.Profile{ID: m.ID, Fields: commerce.FieldValues(m.Fields)}
	if m.Address != nil {
		a := commerce.Address(*m.Address)
		p.Address = &a
	}
	return p
}

// ProfileModelFromDomain creates a persistence model from a domain Profile
func ProfileModelFromDomain(p *commerce.Profile) *ProfileModel {
	if p == nil {
		return nil
	}
	m := &ProfileModel{Fields: p.Fields}
	m.ID = p.ID
	if p.Address != nil {
		a := AddressRecord(*p.Address)
		m.Address = &a
	}
	return m
}

// ShippingMethodModel is the persistence model for commerce.ShippingMethod
type ShippingMethodModel struct {
	BaseModel
	Name  string `gorm:"type:varchar(100);not null;uniqueIndex"`
	Label string `gorm:"type:varchar(255)"`
}

// TableName returns the table name for GORM
func (ShippingMethodModel) TableName() string {
	return "commerce_shipping_methods"
}

// ToDomain converts the persistence model to a domain ShippingMethod
func (m *ShippingMethodModel) ToDomain() *commerce.ShippingMethod {
	return &commerce.ShippingMethod{ID: m.ID, Name: m.Name, Label: m.Label}
}

// OrderModel is the persistence model for commerce.Order
type OrderModel struct {
	BaseModel
	OrderNumber      string             `gorm:"type:varchar(64);not null;uniqueIndex"`
	State            string             `gorm:"type:varchar(50);not null;index:idx_order_export,priority:1"`
	Email            string             `gorm:"type:varchar(255)"`
	PlacedAt         time.Time          `gorm:"not null"`
	ChangedAt        time.Time          `gorm:"not null;index:idx_order_export,priority:2"`
	BillingProfileID *uuid.UUID         `gorm:"type:uuid"`
	BillingProfile   *ProfileModel      `gorm:"foreignKey:BillingProfileID"`
	TotalAmount      decimal.Decimal    `gorm:"type:decimal(18,4);not null;default:0"`
	Currency         string             `gorm:"type:varchar(3);not null;default:'USD'"`
	Adjustments      []AdjustmentRecord `gorm:"type:jsonb;serializer:json"`
	Fields           map[string]string  `gorm:"type:jsonb;serializer:json"`
	Items            []OrderItemModel   `gorm:"foreignKey:OrderID"`
	Shipments        []ShipmentModel    `gorm:"foreignKey:OrderID"`
}

// TableName returns the table name for GORM
func (OrderModel) TableName() string {
	return "commerce_orders"
}

// ToDomain converts the persistence model and its loaded associations to a
// domain Order
func (m *OrderModel) ToDomain() *commerce.Order {
	o := &commerce.Order{
		ID:          m.ID,
		OrderNumber: m.OrderNumber,
		State:       commerce.OrderState(m.State),
		Email:       m.Email,
		PlacedAt:    m.PlacedAt,
		ChangedAt:   m.ChangedAt,
		Total:       toMoney(m.TotalAmount, m.Currency),
		Adjustments: toAdjustments(m.Adjustments),
		Fields:      commerce.FieldValues(m.Fields),
		Items:       make([]commerce.OrderItem, len(m.Items)),
		Shipments:   make([]commerce.Shipment, len(m.Shipments)),
	}
	if m.BillingProfile != nil {
		o.BillingProfile = m.BillingProfile.ToDomain()
	}
	for i := range m.Items {
		o.Items[i] = *m.Items[i].ToDomain()
	}
	for i := range m.Shipments {
		o.Shipments[i] = *m.Shipments[i].ToDomain()
	}
	return o
}

// OrderModelFromDomain creates a persistence model from a domain Order.
// Items and shipments reference variations and shipping methods by ID only.
func OrderModelFromDomain(o *commerce.Order) *OrderModel {
	m := &OrderModel{
		OrderNumber:    o.OrderNumber,
		State:          string(o.State),
		Email:          o.Email,
		PlacedAt:       o.PlacedAt,
		ChangedAt:      o.ChangedAt,
		BillingProfile: ProfileModelFromDomain(o.BillingProfile),
		TotalAmount:    o.Total.Amount(),
		Currency:       string(o.Total.Currency()),
		Adjustments:    adjustmentRecords(o.Adjustments),
		Fields:         o.Fields,
		Items:          make([]OrderItemModel, len(o.Items)),
		Shipments:      make([]ShipmentModel, len(o.Shipments)),
	}
	m.ID = o.ID
	if o.BillingProfile != nil {
		m.BillingProfileID = &o.BillingProfile.ID
	}
	for i := range o.Items {
		m.Items[i] = *OrderItemModelFromDomain(o.ID, i, &o.Items[i])
	}
	for i := range o.Shipments {
		m.Shipments[i] = *ShipmentModelFromDomain(&o.Shipments[i])
		m.Shipments[i].OrderID = o.ID
	}
	return m
}

// OrderItemModel is the persistence model for commerce.OrderItem
type OrderItemModel struct {
	BaseModel
	OrderID           uuid.UUID              `gorm:"type:uuid;not null;index"`
	Position          int                    `gorm:"not null;default:0"`
	Title             string                 `gorm:"type:varchar(255);not null"`
	Quantity          decimal.Decimal        `gorm:"type:decimal(18,4);not null;default:1"`
	UnitPrice         decimal.Decimal        `gorm:"type:decimal(18,4);not null;default:0"`
	Currency          string                 `gorm:"type:varchar(3);not null;default:'USD'"`
	PurchasedEntityID *uuid.UUID             `gorm:"type:uuid;index"`
	PurchasedEntity   *ProductVariationModel `gorm:"foreignKey:PurchasedEntityID"`
	Adjustments       []AdjustmentRecord     `gorm:"type:jsonb;serializer:json"`
}

// TableName returns the table name for GORM
func (OrderItemModel) TableName() string {
	return "commerce_order_items"
}

// ToDomain converts the persistence model to a domain OrderItem
func (m *OrderItemModel) ToDomain() *commerce.OrderItem {
	item := &commerce.OrderItem{
		ID:          m.ID,
		Title:       m.Title,
		Quantity:    m.Quantity,
		UnitPrice:   toMoney(m.UnitPrice, m.Currency),
		Adjustments: toAdjustments(m.Adjustments),
	}
	if m.PurchasedEntity != nil {
		item.PurchasedEntity = m.PurchasedEntity.ToDomain()
	}
	return item
}

// OrderItemModelFromDomain creates a persistence model from a domain OrderItem
func OrderItemModelFromDomain(orderID uuid.UUID, position int, item *commerce.OrderItem) *OrderItemModel {
	m := &OrderItemModel{
		OrderID:     orderID,
		Position:    position,
		Title:       item.Title,
		Quantity:    item.Quantity,
		UnitPrice:   item.UnitPrice.Amount(),
		Currency:    string(item.UnitPrice.Currency()),
		Adjustments: adjustmentRecords(item.Adjustments),
	}
	m.ID = item.ID
	if item.PurchasedEntity != nil {
		m.PurchasedEntityID = &item.PurchasedEntity.ID
	}
	return m
}

// ShipmentModel is the persistence model for commerce.Shipment
type ShipmentModel struct {
	BaseModel
	OrderID           uuid.UUID            `gorm:"type:uuid;not null;index"`
	ShippingProfileID *uuid.UUID           `gorm:"type:uuid"`
	ShippingProfile   *ProfileModel        `gorm:"foreignKey:ShippingProfileID"`
	ShippingMethodID  *uuid.UUID           `gorm:"type:uuid;index"`
	ShippingMethod    *ShippingMethodModel `gorm:"foreignKey:ShippingMethodID"`
	ShippingService   string               `gorm:"type:varchar(255)"`
	Amount            decimal.Decimal      `gorm:"type:decimal(18,4);not null;default:0"`
	Currency          string               `gorm:"type:varchar(3);not null;default:'USD'"`
	TrackingCode      string               `gorm:"type:varchar(255)"`
	ShippedAt         *time.Time
	Items             []ShipmentItemRecord `gorm:"type:jsonb;serializer:json"`
}

// TableName returns the table name for GORM
func (ShipmentModel) TableName() string {
	return "commerce_shipments"
}

// ToDomain converts the persistence model to a domain Shipment
func (m *ShipmentModel) ToDomain() *commerce.Shipment {
	s := &commerce.Shipment{
		ID:              m.ID,
		OrderID:         m.OrderID,
		ShippingService: m.ShippingService,
		Amount:          toMoney(m.Amount, m.Currency),
		TrackingCode:    m.TrackingCode,
		ShippedAt:       m.ShippedAt,
		Items:           make([]commerce.ShipmentItem, len(m.Items)),
	}
	if m.ShippingProfile != nil {
		s.ShippingProfile = m.ShippingProfile.ToDomain()
	}
	if m.ShippingMethod != nil {
		s.ShippingMethod = m.ShippingMethod.ToDomain()
	}
	for i, r := range m.Items {
		s.Items[i] = commerce.ShipmentItem{
			OrderItemID: r.OrderItemID,
			Title:       r.Title,
			Quantity:    r.Quantity,
			Weight:      r.Weight.toDomain(),
		}
	}
	return s
}

// ShipmentModelFromDomain creates a persistence model from a domain Shipment
func ShipmentModelFromDomain(s *commerce.Shipment) *ShipmentModel {
	m := &ShipmentModel{
		OrderID:         s.OrderID,
		ShippingProfile: ProfileModelFromDomain(s.ShippingProfile),
		ShippingService: s.ShippingService,
		Amount:          s.Amount.Amount(),
		Currency:        string(s.Amount.Currency()),
		TrackingCode:    s.TrackingCode,
		ShippedAt:       s.ShippedAt,
		Items:           make([]ShipmentItemRecord, len(s.Items)),
	}
	m.ID = s.ID
	if s.ShippingProfile != nil {
		m.ShippingProfileID = &s.ShippingProfile.ID
	}
	if s.ShippingMethod != nil {
		m.ShippingMethodID = &s.ShippingMethod.ID
	}
	for i, item := range s.Items {
		m.Items[i] = ShipmentItemRecord{
			OrderItemID: item.OrderItemID,
			Title:       item.Title,
			Quantity:    item.Quantity,
			Weight:      weightRecord(item.Weight),
		}
	}
	return m
}
