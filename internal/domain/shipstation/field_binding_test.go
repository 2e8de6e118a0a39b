package shipstation

import (
	"testing"

	"github.com/commerce/shipstation/internal/domain/commerce"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFieldSelector(t *testing.T) {
	tests := []struct {
		name   string
		raw    string
		want   FieldSelector
		isNone bool
	}{
		{"none", "none", FieldSelector{}, true},
		{"none upper case", "NONE", FieldSelector{}, true},
		{"empty", "", FieldSelector{}, true},
		{"entity and field", "profile.field_phone", FieldSelector{Entity: "profile", Field: "field_phone"}, false},
		{"last segment wins", "commerce_order.default.field_notes", FieldSelector{Entity: "commerce_order", Field: "field_notes"}, false},
		{"bare field", "field_phone", FieldSelector{Field: "field_phone"}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sel, err := ParseFieldSelector(tt.raw)
			require.NoError(t, err)
			assert.Equal(t, tt.want, sel)
			assert.Equal(t, tt.isNone, sel.IsNone())
		})
	}

	t.Run("rejects empty segments", func(t *testing.T) {
		_, err := ParseFieldSelector("profile.")
		assert.Error(t, err)
		_, err = ParseFieldSelector(".field_phone")
		assert.Error(t, err)
	})

	t.Run("string round trip", func(t *testing.T) {
		sel, _ := ParseFieldSelector("profile.field_phone")
		assert.Equal(t, "profile.field_phone", sel.String())
		assert.Equal(t, "none", FieldSelector{}.String())
	})
}

func TestFieldBindings(t *testing.T) {
	settings := DefaultSettings()
	settings.BillingPhoneField = "profile.field_phone"
	settings.ShippingPhoneField = "profile.field_ship_phone"
	settings.OrderNotesField = "commerce_order.field_notes"
	settings.CustomerNotesField = "profile.field_instructions"

	bindings, err := NewFieldBindings(settings)
	require.NoError(t, err)

	order := &commerce.Order{
		Fields:         commerce.FieldValues{"field_notes": "fragile", "field_phone": "order-level"},
		BillingProfile: &commerce.Profile{Fields: commerce.FieldValues{"field_phone": "555-0100"}},
	}
	shipment := &commerce.Shipment{
		ShippingProfile: &commerce.Profile{Fields: commerce.FieldValues{
			"field_ship_phone":   "555-0199",
			"field_instructions": "leave at door",
		}},
	}

	t.Run("each binding reads its own entity", func(t *testing.T) {
		v, ok := bindings.BillingPhone.Read(order, shipment)
		require.True(t, ok)
		assert.Equal(t, "555-0100", v)

		v, ok = bindings.ShippingPhone.Read(order, shipment)
		require.True(t, ok)
		assert.Equal(t, "555-0199", v)

		v, ok = bindings.OrderNotes.Read(order, shipment)
		require.True(t, ok)
		assert.Equal(t, "fragile", v)

		v, ok = bindings.CustomerNotes.Read(order, shipment)
		require.True(t, ok)
		assert.Equal(t, "leave at door", v)
	})

	t.Run("missing profile reads nothing", func(t *testing.T) {
		_, ok := bindings.BillingPhone.Read(&commerce.Order{}, shipment)
		assert.False(t, ok)
		_, ok = bindings.ShippingPhone.Read(order, &commerce.Shipment{})
		assert.False(t, ok)
	})

	t.Run("disabled bindings", func(t *testing.T) {
		none, err := NewFieldBindings(DefaultSettings())
		require.NoError(t, err)
		assert.False(t, none.BillingPhone.Enabled())
		assert.False(t, none.ProductImages.Enabled())
		assert.False(t, none.Bundle.Enabled())
		_, ok := none.OrderNotes.Read(order, shipment)
		assert.False(t, ok)
	})

	t.Run("invalid selector", func(t *testing.T) {
		bad := DefaultSettings()
		bad.BundleField = "commerce_product_variation."
		_, err := NewFieldBindings(bad)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "bundle")
	})
}

func TestImageBinding(t *testing.T) {
	variation := &commerce.ProductVariation{
		Images: map[string][]commerce.ImageFile{"field_images": {{URI: "public://variation.jpg"}, {URI: "public://second.jpg"}}},
		Product: &commerce.Product{
			Images: map[string][]commerce.ImageFile{"field_images": {{URI: "public://product.jpg"}}},
		},
	}

	t.Run("variation prefix reads the variation", func(t *testing.T) {
		s := DefaultSettings()
		s.ProductImagesField = "commerce_product_variation.field_images"
		b, err := NewFieldBindings(s)
		require.NoError(t, err)

		img, ok := b.ProductImages.First(variation)
		require.True(t, ok)
		assert.Equal(t, "public://variation.jpg", img.URI)
	})

	t.Run("other prefixes read the product", func(t *testing.T) {
		s := DefaultSettings()
		s.ProductImagesField = "commerce_product.field_images"
		b, err := NewFieldBindings(s)
		require.NoError(t, err)

		img, ok := b.ProductImages.First(variation)
		require.True(t, ok)
		assert.Equal(t, "public://product.jpg", img.URI)
	})

	t.Run("empty field", func(t *testing.T) {
		s := DefaultSettings()
		s.ProductImagesField = "commerce_product.field_gallery"
		b, err := NewFieldBindings(s)
		require.NoError(t, err)

		_, ok := b.ProductImages.First(variation)
		assert.False(t, ok)
		_, ok = b.ProductImages.First(&commerce.ProductVariation{})
		assert.False(t, ok)
	})
}

func TestBundleBinding(t *testing.T) {
	s := DefaultSettings()
	s.BundleField = "commerce_product_variation.field_bundle"
	b, err := NewFieldBindings(s)
	require.NoError(t, err)

	variation := &commerce.ProductVariation{
		Bundles: map[string][]commerce.BundleComponent{"field_bundle": {{SKU: "A"}, {SKU: "B"}}},
	}
	assert.Len(t, b.Bundle.Components(variation), 2)
	assert.Empty(t, b.Bundle.Components(nil))
}
