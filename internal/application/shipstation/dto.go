package shipstation

import (
	"github.com/commerce/shipstation/internal/domain/shipstation"
	"github.com/google/uuid"
)

// Credentials carries whatever the request presented for authentication
type Credentials struct {
	AuthKey  string
	Username string
	Password string
}

// ExportRequest represents an action=export call
type ExportRequest struct {
	StartDate string
	EndDate   string
	Page      int
}

// ExportResult is the rendered feed page
type ExportResult struct {
	XML      string
	Pages    int
	Total    int64
	Exported int
}

// ShipNotifyRequest represents an action=shipnotify call
type ShipNotifyRequest struct {
	OrderNumber     string
	TrackingNumber  string
	Carrier         string
	Service         string
	ShipDate        string
	LabelCreateDate string
}

// ShipNotifyResult reports the updated shipment
type ShipNotifyResult struct {
	Message    string
	OrderID    uuid.UUID
	ShipmentID uuid.UUID
}

// SettingsResponse is the admin view of the configuration, secrets masked
type SettingsResponse struct {
	Username               string   `json:"username"`
	Password               string   `json:"password"`
	Logging                bool     `json:"logging"`
	Reload                 bool     `json:"reload"`
	AlternateAuth          string   `json:"alternate_auth"`
	ExportPaging           int      `json:"export_paging"`
	ExportStates           []string `json:"export_states"`
	ExposedShippingMethods []string `json:"exposed_shipping_methods"`
	BillingPhoneField      string   `json:"billing_phone_field"`
	ShippingPhoneField     string   `json:"shipping_phone_field"`
	OrderNotesField        string   `json:"order_notes_field"`
	CustomerNotesField     string   `json:"customer_notes_field"`
	ProductImagesField     string   `json:"product_images_field"`
	BundleField            string   `json:"bundle_field"`
}

// UpdateSettingsRequest replaces the configuration. An empty or masked
// password keeps the stored one; a masked token keeps the stored token.
type UpdateSettingsRequest struct {
	Username               string   `json:"username" binding:"max=255"`
	Password               string   `json:"password" binding:"max=255"`
	Logging                bool     `json:"logging"`
	Reload                 bool     `json:"reload"`
	AlternateAuth          string   `json:"alternate_auth" binding:"max=255"`
	ExportPaging           int      `json:"export_paging" binding:"required,oneof=20 50 75 100 150"`
	ExportStates           []string `json:"export_states" binding:"dive,required"`
	ExposedShippingMethods []string `json:"exposed_shipping_methods" binding:"dive,required"`
	BillingPhoneField      string   `json:"billing_phone_field" binding:"required"`
	ShippingPhoneField     string   `json:"shipping_phone_field" binding:"required"`
	OrderNotesField        string   `json:"order_notes_field" binding:"required"`
	CustomerNotesField     string   `json:"customer_notes_field" binding:"required"`
	ProductImagesField     string   `json:"product_images_field" binding:"required"`
	BundleField            string   `json:"bundle_field" binding:"required"`
}

// Option is a selectable value of the settings form
type Option struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

// SettingsOptionsResponse lists the values each setting accepts
type SettingsOptionsResponse struct {
	PageSizes       []int    `json:"page_sizes"`
	OrderStates     []Option `json:"order_states"`
	ShippingMethods []Option `json:"shipping_methods"`
	ProfileFields   []Option `json:"profile_fields"`
	OrderFields     []Option `json:"order_fields"`
	ImageFields     []Option `json:"image_fields"`
	BundleFields    []Option `json:"bundle_fields"`
}

// ToSettingsResponse converts settings to their masked admin view
func ToSettingsResponse(s shipstation.Settings) SettingsResponse {
	r := s.Redacted()
	states := make([]string, len(r.ExportStates))
	for i, st := range r.ExportStates {
		states[i] = st.String()
	}
	methods := r.ExposedShippingMethods
	if methods == nil {
		methods = []string{}
	}
	return SettingsResponse{
		Username:               r.Username,
		Password:               r.Password,
		Logging:                r.Logging,
		Reload:                 r.Reload,
		AlternateAuth:          r.AlternateAuth,
		ExportPaging:           r.ExportPaging,
		ExportStates:           states,
		ExposedShippingMethods: methods,
		BillingPhoneField:      r.BillingPhoneField,
		ShippingPhoneField:     r.ShippingPhoneField,
		OrderNotesField:        r.OrderNotesField,
		CustomerNotesField:     r.CustomerNotesField,
		ProductImagesField:     r.ProductImagesField,
		BundleField:            r.BundleField,
	}
}
