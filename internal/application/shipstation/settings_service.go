package shipstation

import (
	"context"
	"fmt"
	"sort"

	"github.com/commerce/shipstation/internal/domain/commerce"
	"github.com/commerce/shipstation/internal/domain/shipstation"
)

// FieldCatalog lists the custom field names available per entity type,
// e.g. {"profile": ["field_phone"], "commerce_order": ["field_notes"]}.
type FieldCatalog map[string][]string

// SettingsService backs the admin API
type SettingsService struct {
	provider   *SettingsProvider
	methodRepo commerce.ShippingMethodRepository
	fields     FieldCatalog
}

// NewSettingsService creates a new SettingsService
func NewSettingsService(provider *SettingsProvider, methodRepo commerce.ShippingMethodRepository, fields FieldCatalog) *SettingsService {
	return &SettingsService{provider: provider, methodRepo: methodRepo, fields: fields}
}

// Get returns the active settings with secrets masked
func (s *SettingsService) Get(ctx context.Context) SettingsResponse {
	return ToSettingsResponse(s.provider.Current().Settings)
}

// Update replaces the settings
func (s *SettingsService) Update(ctx context.Context, req UpdateSettingsRequest) (*SettingsResponse, error) {
	current := s.provider.Current().Settings

	password := req.Password
	if password == "" || shipstation.IsRedactedSecret(password) {
		password = current.Password
	}
	token := req.AlternateAuth
	if shipstation.IsRedactedSecret(token) {
		token = current.AlternateAuth
	}

	states := make([]commerce.OrderState, len(req.ExportStates))
	for i, st := range req.ExportStates {
		states[i] = commerce.OrderState(st)
	}

	next := shipstation.Settings{
		Username:               req.Username,
		Password:               password,
		Logging:                req.Logging,
		Reload:                 req.Reload,
		AlternateAuth:          token,
		ExportPaging:           req.ExportPaging,
		ExportStates:           states,
		ExposedShippingMethods: req.ExposedShippingMethods,
		BillingPhoneField:      req.BillingPhoneField,
		ShippingPhoneField:     req.ShippingPhoneField,
		OrderNotesField:        req.OrderNotesField,
		CustomerNotesField:     req.CustomerNotesField,
		ProductImagesField:     req.ProductImagesField,
		BundleField:            req.BundleField,
	}

	snap, err := s.provider.Update(ctx, next)
	if err != nil {
		return nil, err
	}
	resp := ToSettingsResponse(snap.Settings)
	return &resp, nil
}

// Options lists the values the settings accept
func (s *SettingsService) Options(ctx context.Context) (*SettingsOptionsResponse, error) {
	methods, err := s.methodRepo.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list shipping methods: %w", err)
	}

	resp := &SettingsOptionsResponse{
		PageSizes:     append([]int(nil), shipstation.PageSizes...),
		ProfileFields: s.fieldOptions(shipstation.EntityProfile),
		OrderFields:   s.fieldOptions(shipstation.EntityOrder),
		ImageFields:   s.fieldOptions(shipstation.EntityProduct, shipstation.EntityProductVariation),
		BundleFields:  s.fieldOptions(shipstation.EntityProductVariation),
	}
	for _, st := range commerce.KnownOrderStates() {
		resp.OrderStates = append(resp.OrderStates, Option{Value: st.String(), Label: st.Label()})
	}
	resp.ShippingMethods = make([]Option, 0, len(methods))
	for _, m := range methods {
		label := m.Label
		if label == "" {
			label = m.Name
		}
		resp.ShippingMethods = append(resp.ShippingMethods, Option{Value: m.Name, Label: label})
	}
	return resp, nil
}

// fieldOptions returns "none" followed by entity.field options sorted by label
func (s *SettingsService) fieldOptions(entities ...string) []Option {
	var opts []Option
	for _, entity := range entities {
		for _, field := range s.fields[entity] {
			opts = append(opts, Option{Value: entity + "." + field, Label: entity + ": " + field})
		}
	}
	sort.Slice(opts, func(i, j int) bool { return opts[i].Label < opts[j].Label })
	return append([]Option{{Value: shipstation.SelectorNone, Label: "None"}}, opts...)
}
