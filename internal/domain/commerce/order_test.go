package commerce

import (
	"testing"
	"time"

	"github.com/commerce/shipstation/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOrderState_Label(t *testing.T) {
	t.Run("known workflow states", func(t *testing.T) {
		assert.Equal(t, "Fulfillment", OrderStateFulfillment.Label())
		assert.Equal(t, "Canceled", OrderStateCanceled.Label())
	})

	t.Run("custom states are title-cased", func(t *testing.T) {
		assert.Equal(t, "Awaiting Pickup", OrderState("awaiting_pickup").Label())
	})

	t.Run("known states list is complete", func(t *testing.T) {
		assert.Len(t, KnownOrderStates(), 6)
	})
}

func TestOrder_CollectAdjustments(t *testing.T) {
	tax := Adjustment{Type: AdjustmentTypeTax, Label: "VAT", Amount: valueobject.MustMoney("1.00", valueobject.USD)}
	promo := Adjustment{Type: AdjustmentTypePromotion, Label: "10% off", Amount: valueobject.MustMoney("-5.00", valueobject.USD)}
	ship := Adjustment{Type: AdjustmentTypeShipping, Label: "Shipping", Amount: valueobject.MustMoney("9.99", valueobject.USD)}

	order := Order{
		Adjustments: []Adjustment{ship},
		Items: []OrderItem{
			{ID: uuid.New(), Adjustments: []Adjustment{tax}},
			{ID: uuid.New(), Adjustments: []Adjustment{promo}},
		},
	}

	adjustments := order.CollectAdjustments()
	require.Len(t, adjustments, 3)
	assert.True(t, adjustments[0].IsShipping())
	assert.Equal(t, AdjustmentTypeTax, adjustments[1].Type)
	assert.Equal(t, AdjustmentTypePromotion, adjustments[2].Type)
	assert.Len(t, order.Adjustments, 1, "order adjustments must not be modified")
}

func TestOrder_FirstShipment(t *testing.T) {
	t.Run("no shipments", func(t *testing.T) {
		order := Order{}
		_, ok := order.FirstShipment()
		assert.False(t, ok)
	})

	t.Run("returns pointer into the order", func(t *testing.T) {
		first := uuid.New()
		order := Order{Shipments: []Shipment{{ID: first}, {ID: uuid.New()}}}
		shipment, ok := order.FirstShipment()
		require.True(t, ok)
		assert.Equal(t, first, shipment.ID)

		shipment.TrackingCode = "1Z"
		assert.Equal(t, "1Z", order.Shipments[0].TrackingCode)
	})
}

func TestOrder_FindItem(t *testing.T) {
	id := uuid.New()
	order := Order{Items: []OrderItem{{ID: uuid.New()}, {ID: id, Title: "Mug"}}}

	item, ok := order.FindItem(id)
	require.True(t, ok)
	assert.Equal(t, "Mug", item.Title)

	_, ok = order.FindItem(uuid.New())
	assert.False(t, ok)
}

func TestShipment(t *testing.T) {
	t.Run("service label falls back to method", func(t *testing.T) {
		s := Shipment{ShippingMethod: &ShippingMethod{Name: "flat_rate", Label: "Flat rate"}}
		assert.Equal(t, "Flat rate", s.ServiceLabel())
		assert.Equal(t, "flat_rate", s.MethodName())

		s.ShippingService = "Ground"
		assert.Equal(t, "Ground", s.ServiceLabel())

		s.ShippingMethod.Label = ""
		s.ShippingService = ""
		assert.Equal(t, "flat_rate", s.ServiceLabel())
	})

	t.Run("missing method", func(t *testing.T) {
		s := Shipment{}
		assert.Empty(t, s.MethodName())
		assert.Empty(t, s.ServiceLabel())
		assert.False(t, s.HasItems())
	})

	t.Run("records tracking in UTC", func(t *testing.T) {
		loc := time.FixedZone("EST", -5*3600)
		s := Shipment{}
		s.RecordTracking("1Z999", time.Date(2024, 3, 1, 10, 0, 0, 0, loc))

		assert.Equal(t, "1Z999", s.TrackingCode)
		require.NotNil(t, s.ShippedAt)
		assert.Equal(t, time.UTC, s.ShippedAt.Location())
		assert.Equal(t, 15, s.ShippedAt.Hour())
	})
}

func TestFieldValues_Get(t *testing.T) {
	var empty FieldValues
	_, ok := empty.Get("field_phone")
	assert.False(t, ok)

	fields := FieldValues{"field_phone": "555-0100", "field_blank": ""}
	v, ok := fields.Get("field_phone")
	assert.True(t, ok)
	assert.Equal(t, "555-0100", v)

	_, ok = fields.Get("field_blank")
	assert.False(t, ok)
}

func TestProfileAndProductAccessors(t *testing.T) {
	var profile *Profile
	assert.Nil(t, profile.GetAddress())

	addr := &Address{GivenName: "Ada", FamilyName: "Lovelace"}
	assert.Equal(t, "Ada Lovelace", (&Profile{Address: addr}).GetAddress().FullName())
	assert.Equal(t, "Ada", Address{GivenName: "Ada"}.FullName())

	var variation *ProductVariation
	assert.Nil(t, variation.ImageField("field_images"))
	assert.Nil(t, variation.BundleField("field_bundle"))

	var product *Product
	assert.Nil(t, product.ImageField("field_images"))

	variation = &ProductVariation{Images: map[string][]ImageFile{"field_images": {{URI: "public://a.jpg"}}}}
	assert.Len(t, variation.ImageField("field_images"), 1)
}
