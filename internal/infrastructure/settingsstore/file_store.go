// Package settingsstore persists the ShipStation module settings.
package settingsstore

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/commerce/shipstation/internal/domain/commerce"
	"github.com/commerce/shipstation/internal/domain/shipstation"
	"github.com/spf13/viper"
)

// Setting keys as written to the settings file
const (
	keyUsername               = "username"
	keyPassword               = "password"
	keyLogging                = "logging"
	keyReload                 = "reload"
	keyAlternateAuth          = "alternate_auth"
	keyExportPaging           = "export_paging"
	keyExportStatus           = "export_status"
	keyExposedShippingMethods = "exposed_shipping_methods"
	keyBillingPhoneField      = "billing_phone_number_field"
	keyShippingPhoneField     = "shipping_phone_number_field"
	keyOrderNotesField        = "order_notes_field"
	keyCustomerNotesField     = "customer_notes_field"
	keyProductImagesField     = "product_images_field"
	keyBundleField            = "bundle_field"
)

// FileStore keeps the settings in a JSON, TOML or YAML file.
// The format follows the file extension.
type FileStore struct {
	path string
	mu   sync.Mutex
}

// NewFileStore creates a store backed by the file at path
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// Load reads the settings file. A missing file yields the defaults of a
// fresh install; keys missing from the file keep their default value.
func (s *FileStore) Load(ctx context.Context) (shipstation.Settings, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	v := viper.New()
	setDefaults(v, shipstation.DefaultSettings())

	if _, err := os.Stat(s.path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return shipstation.DefaultSettings(), nil
		}
		return shipstation.Settings{}, fmt.Errorf("failed to stat settings file: %w", err)
	}

	v.SetConfigFile(s.path)
	if err := v.ReadInConfig(); err != nil {
		return shipstation.Settings{}, fmt.Errorf("failed to read settings file %s: %w", s.path, err)
	}
	return fromViper(v), nil
}

// Save writes the settings through a temporary file so readers never see a
// partially written file
func (s *FileStore) Save(ctx context.Context, settings shipstation.Settings) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	v := viper.New()
	v.SetConfigPermissions(0o600)
	toViper(v, settings)

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create settings directory: %w", err)
	}
	ext := filepath.Ext(s.path)
	tmp := filepath.Join(dir, "."+filepath.Base(s.path)+".tmp"+ext)
	if err := v.WriteConfigAs(tmp); err != nil {
		return fmt.Errorf("failed to write settings file: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("failed to replace settings file: %w", err)
	}
	return nil
}

func setDefaults(v *viper.Viper, d shipstation.Settings) {
	v.SetDefault(keyExportPaging, d.ExportPaging)
	v.SetDefault(keyExportStatus, statesToStrings(d.ExportStates))
	v.SetDefault(keyBillingPhoneField, d.BillingPhoneField)
	v.SetDefault(keyShippingPhoneField, d.ShippingPhoneField)
	v.SetDefault(keyOrderNotesField, d.OrderNotesField)
	v.SetDefault(keyCustomerNotesField, d.CustomerNotesField)
	v.SetDefault(keyProductImagesField, d.ProductImagesField)
	v.SetDefault(keyBundleField, d.BundleField)
}

func fromViper(v *viper.Viper) shipstation.Settings {
	states := v.GetStringSlice(keyExportStatus)
	exportStates := make([]commerce.OrderState, len(states))
	for i, st := range states {
		exportStates[i] = commerce.OrderState(st)
	}
	return shipstation.Settings{
		Username:               v.GetString(keyUsername),
		Password:               v.GetString(keyPassword),
		Logging:                v.GetBool(keyLogging),
		Reload:                 v.GetBool(keyReload),
		AlternateAuth:          v.GetString(keyAlternateAuth),
		ExportPaging:           v.GetInt(keyExportPaging),
		ExportStates:           exportStates,
		ExposedShippingMethods: v.GetStringSlice(keyExposedShippingMethods),
		BillingPhoneField:      v.GetString(keyBillingPhoneField),
		ShippingPhoneField:     v.GetString(keyShippingPhoneField),
		OrderNotesField:        v.GetString(keyOrderNotesField),
		CustomerNotesField:     v.GetString(keyCustomerNotesField),
		ProductImagesField:     v.GetString(keyProductImagesField),
		BundleField:            v.GetString(keyBundleField),
	}
}

func toViper(v *viper.Viper, s shipstation.Settings) {
	methods := s.ExposedShippingMethods
	if methods == nil {
		methods = []string{}
	}
	v.Set(keyUsername, s.Username)
	v.Set(keyPassword, s.Password)
	v.Set(keyLogging, s.Logging)
	v.Set(keyReload, s.Reload)
	v.Set(keyAlternateAuth, s.AlternateAuth)
	v.Set(keyExportPaging, s.ExportPaging)
	v.Set(keyExportStatus, statesToStrings(s.ExportStates))
	v.Set(keyExposedShippingMethods, methods)
	v.Set(keyBillingPhoneField, s.BillingPhoneField)
	v.Set(keyShippingPhoneField, s.ShippingPhoneField)
	v.Set(keyOrderNotesField, s.OrderNotesField)
	v.Set(keyCustomerNotesField, s.CustomerNotesField)
	v.Set(keyProductImagesField, s.ProductImagesField)
	v.Set(keyBundleField, s.BundleField)
}

func statesToStrings(states []commerce.OrderState) []string {
	out := make([]string, len(states))
	for i, st := range states {
		out[i] = string(st)
	}
	return out
}

var _ shipstation.SettingsStore = (*FileStore)(nil)
