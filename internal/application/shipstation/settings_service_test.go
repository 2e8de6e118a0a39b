package shipstation

import (
	"context"
	"errors"
	"testing"

	"github.com/commerce/shipstation/internal/domain/commerce"
	"github.com/commerce/shipstation/internal/domain/shared"
	"github.com/commerce/shipstation/internal/domain/shipstation"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newSettingsFixture(t *testing.T) (*SettingsService, *fakeSettingsStore, *MockShippingMethodRepository, *SettingsProvider) {
	t.Helper()
	initial := shipstation.DefaultSettings()
	initial.Username = "shipstation"
	initial.Password = "old-password"
	initial.AlternateAuth = "old-token"

	store := &fakeSettingsStore{settings: initial}
	provider, err := NewSettingsProvider(context.Background(), store, nil)
	require.NoError(t, err)

	methods := new(MockShippingMethodRepository)
	catalog := FieldCatalog{
		shipstation.EntityProfile:          {"field_phone", "field_instructions"},
		shipstation.EntityOrder:            {"field_notes"},
		shipstation.EntityProduct:          {"field_images"},
		shipstation.EntityProductVariation: {"field_images", "field_bundle"},
	}
	return NewSettingsService(provider, methods, catalog), store, methods, provider
}

func validUpdate() UpdateSettingsRequest {
	return UpdateSettingsRequest{
		Username:               "shipstation",
		ExportPaging:           50,
		ExportStates:           []string{"fulfillment", "completed"},
		ExposedShippingMethods: []string{"ups_ground"},
		BillingPhoneField:      "profile.field_phone",
		ShippingPhoneField:     "none",
		OrderNotesField:        "commerce_order.field_notes",
		CustomerNotesField:     "none",
		ProductImagesField:     "commerce_product_variation.field_images",
		BundleField:            "none",
	}
}

func TestSettingsService_Get_RedactsSecrets(t *testing.T) {
	svc, _, _, _ := newSettingsFixture(t)

	resp := svc.Get(context.Background())
	assert.Equal(t, "shipstation", resp.Username)
	assert.NotEqual(t, "old-password", resp.Password)
	assert.NotEqual(t, "old-token", resp.AlternateAuth)
	assert.NotNil(t, resp.ExposedShippingMethods)
}

func TestSettingsService_Update(t *testing.T) {
	t.Run("masked secrets keep stored values", func(t *testing.T) {
		svc, store, _, provider := newSettingsFixture(t)
		req := validUpdate()
		req.Password = ""
		req.AlternateAuth = svc.Get(context.Background()).AlternateAuth

		resp, err := svc.Update(context.Background(), req)
		require.NoError(t, err)
		assert.Equal(t, 50, resp.ExportPaging)

		current := provider.Current()
		assert.Equal(t, "old-password", current.Settings.Password)
		assert.Equal(t, "old-token", current.Settings.AlternateAuth)
		assert.True(t, current.Settings.ExportsState(commerce.OrderStateCompleted))
		assert.True(t, current.Bindings.BillingPhone.Enabled())
		assert.True(t, current.Bindings.ProductImages.Enabled())
		assert.Equal(t, 1, store.saves)
	})

	t.Run("new secrets replace stored values", func(t *testing.T) {
		svc, store, _, _ := newSettingsFixture(t)
		req := validUpdate()
		req.Password = "new-password"
		req.AlternateAuth = ""

		_, err := svc.Update(context.Background(), req)
		require.NoError(t, err)
		assert.Equal(t, "new-password", store.settings.Password)
		assert.Empty(t, store.settings.AlternateAuth)
	})

	t.Run("invalid selector is rejected and nothing changes", func(t *testing.T) {
		svc, store, _, provider := newSettingsFixture(t)
		req := validUpdate()
		req.BundleField = "commerce_product_variation."

		_, err := svc.Update(context.Background(), req)
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, shipstation.CodeInvalidSettings, domainErr.Code)
		assert.Equal(t, 0, store.saves)
		assert.Equal(t, shipstation.DefaultPageSize, provider.Current().Settings.ExportPaging)
	})

	t.Run("store failure keeps previous snapshot", func(t *testing.T) {
		svc, store, _, provider := newSettingsFixture(t)
		store.saveErr = errors.New("read-only filesystem")

		_, err := svc.Update(context.Background(), validUpdate())
		require.Error(t, err)
		assert.Equal(t, shipstation.DefaultPageSize, provider.Current().Settings.ExportPaging)
	})
}

func TestSettingsService_Options(t *testing.T) {
	svc, _, methods, _ := newSettingsFixture(t)
	methods.On("FindAll", mock.Anything).Return([]commerce.ShippingMethod{
		{Name: "ups_ground", Label: "UPS Ground"},
		{Name: "pickup"},
	}, nil)

	opts, err := svc.Options(context.Background())
	require.NoError(t, err)

	assert.Equal(t, []int{20, 50, 75, 100, 150}, opts.PageSizes)
	assert.Len(t, opts.OrderStates, len(commerce.KnownOrderStates()))
	assert.Equal(t, []Option{{Value: "ups_ground", Label: "UPS Ground"}, {Value: "pickup", Label: "pickup"}}, opts.ShippingMethods)

	require.Len(t, opts.ProfileFields, 3)
	assert.Equal(t, "none", opts.ProfileFields[0].Value)
	assert.Equal(t, "profile.field_instructions", opts.ProfileFields[1].Value)

	require.Len(t, opts.ImageFields, 3)
	assert.Equal(t, "commerce_product.field_images", opts.ImageFields[1].Value)
	assert.Equal(t, "commerce_product_variation.field_images", opts.ImageFields[2].Value)
	assert.Len(t, opts.BundleFields, 3)
}

func TestSettingsService_Options_RepositoryError(t *testing.T) {
	svc, _, methods, _ := newSettingsFixture(t)
	methods.On("FindAll", mock.Anything).Return(nil, errors.New("timeout"))

	_, err := svc.Options(context.Background())
	assert.Error(t, err)
}
