package shipstation

import (
	"context"
	"fmt"
	"slices"

	"github.com/commerce/shipstation/internal/domain/commerce"
)

// PageSizes are the export page sizes ShipStation can be configured with
var PageSizes = []int{20, 50, 75, 100, 150}

// DefaultPageSize is used when no page size was configured
const DefaultPageSize = 100

const redactedSecret = "********"

// Settings is the module configuration
type Settings struct {
	Username               string
	Password               string
	Logging                bool
	Reload                 bool
	AlternateAuth          string
	ExportPaging           int
	ExportStates           []commerce.OrderState
	ExposedShippingMethods []string
	BillingPhoneField      string
	ShippingPhoneField     string
	OrderNotesField        string
	CustomerNotesField     string
	ProductImagesField     string
	BundleField            string
}

// DefaultSettings returns the configuration of a fresh install
func DefaultSettings() Settings {
	return Settings{
		ExportPaging:       DefaultPageSize,
		ExportStates:       []commerce.OrderState{commerce.OrderStateFulfillment},
		BillingPhoneField:  SelectorNone,
		ShippingPhoneField: SelectorNone,
		OrderNotesField:    SelectorNone,
		CustomerNotesField: SelectorNone,
		ProductImagesField: SelectorNone,
		BundleField:        SelectorNone,
	}
}

// Validate checks the page size and every field selector
func (s Settings) Validate() error {
	if !slices.Contains(PageSizes, s.ExportPaging) {
		return NewInvalidSettingsError(fmt.Sprintf("export paging must be one of %v", PageSizes))
	}
	if _, err := NewFieldBindings(s); err != nil {
		return NewInvalidSettingsError(err.Error())
	}
	return nil
}

// PageSize returns the export page size, falling back to the default
func (s Settings) PageSize() int {
	if s.ExportPaging <= 0 {
		return DefaultPageSize
	}
	return s.ExportPaging
}

// ExportsState reports whether orders in the state are exported
func (s Settings) ExportsState(state commerce.OrderState) bool {
	return slices.Contains(s.ExportStates, state)
}

// ExposesMethod reports whether shipments using the method are exported
func (s Settings) ExposesMethod(name string) bool {
	return name != "" && slices.Contains(s.ExposedShippingMethods, name)
}

// Redacted returns a copy safe to show or log, with secrets masked
func (s Settings) Redacted() Settings {
	out := s.Clone()
	if out.Password != "" {
		out.Password = redactedSecret
	}
	if out.AlternateAuth != "" {
		out.AlternateAuth = redactedSecret
	}
	return out
}

// IsRedactedSecret reports whether v is the placeholder Redacted writes
func IsRedactedSecret(v string) bool {
	return v == redactedSecret
}

// Clone returns a deep copy
func (s Settings) Clone() Settings {
	out := s
	out.ExportStates = slices.Clone(s.ExportStates)
	out.ExposedShippingMethods = slices.Clone(s.ExposedShippingMethods)
	return out
}

// SettingsStore persists the module configuration
type SettingsStore interface {
	Load(ctx context.Context) (Settings, error)
	Save(ctx context.Context, settings Settings) error
}

// ImageURLBuilder turns a stored image URI into an absolute URL of its
// thumbnail derivative.
type ImageURLBuilder interface {
	ThumbnailURL(ctx context.Context, uri string) (string, error)
}
