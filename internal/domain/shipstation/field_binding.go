package shipstation

import (
	"fmt"
	"strings"

	"github.com/commerce/shipstation/internal/domain/commerce"
)

// SelectorNone disables a field selector
const SelectorNone = "none"

// Entity type prefixes used in field selectors
const (
	EntityOrder            = "commerce_order"
	EntityProfile          = "profile"
	EntityProduct          = "commerce_product"
	EntityProductVariation = "commerce_product_variation"
)

// FieldSelector is a parsed "entity.field" reference. Only the last path
// segment names the field that is read; the first segment names the entity.
type FieldSelector struct {
	Entity string
	Field  string
}

// ParseFieldSelector parses a selector string. An empty string or "none"
// (any case) yields the zero selector.
func ParseFieldSelector(raw string) (FieldSelector, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" || strings.EqualFold(raw, SelectorNone) {
		return FieldSelector{}, nil
	}

	parts := strings.Split(raw, ".")
	for _, p := range parts {
		if p == "" {
			return FieldSelector{}, fmt.Errorf("invalid field selector %q", raw)
		}
	}
	sel := FieldSelector{Field: parts[len(parts)-1]}
	if len(parts) > 1 {
		sel.Entity = parts[0]
	}
	return sel, nil
}

// IsNone reports whether the selector is disabled
func (s FieldSelector) IsNone() bool {
	return s.Field == ""
}

// String renders the selector in its configuration form
func (s FieldSelector) String() string {
	if s.IsNone() {
		return SelectorNone
	}
	if s.Entity == "" {
		return s.Field
	}
	return s.Entity + "." + s.Field
}

// TextSource names the entity a text binding reads from
type TextSource int

const (
	SourceOrder TextSource = iota
	SourceBillingProfile
	SourceShippingProfile
)

// TextBinding reads a single text field from an order, its billing profile
// or the shipping profile of its shipment.
type TextBinding struct {
	field  string
	source TextSource
}

// Enabled reports whether the binding reads anything
func (b TextBinding) Enabled() bool {
	return b.field != ""
}

// Read returns the bound value. A disabled binding or empty value yields false.
func (b TextBinding) Read(order *commerce.Order, shipment *commerce.Shipment) (string, bool) {
	if !b.Enabled() {
		return "", false
	}
	switch b.source {
	case SourceOrder:
		if order == nil {
			return "", false
		}
		return order.Fields.Get(b.field)
	case SourceBillingProfile:
		if order == nil || order.BillingProfile == nil {
			return "", false
		}
		return order.BillingProfile.Fields.Get(b.field)
	case SourceShippingProfile:
		if shipment == nil || shipment.ShippingProfile == nil {
			return "", false
		}
		return shipment.ShippingProfile.Fields.Get(b.field)
	}
	return "", false
}

// ImageBinding selects the image field of a variation or of its product
type ImageBinding struct {
	field       string
	onVariation bool
}

// Enabled reports whether the binding reads anything
func (b ImageBinding) Enabled() bool {
	return b.field != ""
}

// First returns the first image of the bound field
func (b ImageBinding) First(variation *commerce.ProductVariation) (commerce.ImageFile, bool) {
	if !b.Enabled() || variation == nil {
		return commerce.ImageFile{}, false
	}
	var images []commerce.ImageFile
	if b.onVariation {
		images = variation.ImageField(b.field)
	} else {
		images = variation.Product.ImageField(b.field)
	}
	if len(images) == 0 || images[0].URI == "" {
		return commerce.ImageFile{}, false
	}
	return images[0], true
}

// BundleBinding selects the variation field that lists bundled products
type BundleBinding struct {
	field string
}

// Enabled reports whether the binding reads anything
func (b BundleBinding) Enabled() bool {
	return b.field != ""
}

// Components returns the bundled products of a variation
func (b BundleBinding) Components(variation *commerce.ProductVariation) []commerce.BundleComponent {
	if !b.Enabled() {
		return nil
	}
	return variation.BundleField(b.field)
}

// FieldBindings is the resolved form of the selector settings
type FieldBindings struct {
	BillingPhone  TextBinding
	ShippingPhone TextBinding
	OrderNotes    TextBinding
	CustomerNotes TextBinding
	ProductImages ImageBinding
	Bundle        BundleBinding
}

// NewFieldBindings parses every selector of the settings
func NewFieldBindings(s Settings) (FieldBindings, error) {
	var b FieldBindings

	text := []struct {
		raw    string
		name   string
		source TextSource
		dst    *TextBinding
	}{
		{s.BillingPhoneField, "billing phone", SourceBillingProfile, &b.BillingPhone},
		{s.ShippingPhoneField, "shipping phone", SourceShippingProfile, &b.ShippingPhone},
		{s.OrderNotesField, "order notes", SourceOrder, &b.OrderNotes},
		{s.CustomerNotesField, "customer notes", SourceShippingProfile, &b.CustomerNotes},
	}
	for _, t := range text {
		sel, err := ParseFieldSelector(t.raw)
		if err != nil {
			return FieldBindings{}, fmt.Errorf("%s: %w", t.name, err)
		}
		*t.dst = TextBinding{field: sel.Field, source: t.source}
	}

	images, err := ParseFieldSelector(s.ProductImagesField)
	if err != nil {
		return FieldBindings{}, fmt.Errorf("product images: %w", err)
	}
	b.ProductImages = ImageBinding{field: images.Field, onVariation: images.Entity == EntityProductVariation}

	bundle, err := ParseFieldSelector(s.BundleField)
	if err != nil {
		return FieldBindings{}, fmt.Errorf("bundle: %w", err)
	}
	b.Bundle = BundleBinding{field: bundle.Field}

	return b, nil
}
