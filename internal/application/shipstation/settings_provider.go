package shipstation

import (
	"context"
	"fmt"
	"sync"

	"github.com/commerce/shipstation/internal/domain/shipstation"
	"go.uber.org/zap"
)

// Snapshot is an immutable view of the settings with their resolved bindings
type Snapshot struct {
	Settings shipstation.Settings
	Bindings shipstation.FieldBindings
}

// SettingsSource hands out the current settings snapshot
type SettingsSource interface {
	Current() Snapshot
}

// SettingsProvider keeps the active settings in memory and swaps them
// atomically when an update was persisted.
type SettingsProvider struct {
	store  shipstation.SettingsStore
	logger *zap.Logger

	mu      sync.RWMutex
	current Snapshot
}

// NewSettingsProvider loads the settings from the store
func NewSettingsProvider(ctx context.Context, store shipstation.SettingsStore, logger *zap.Logger) (*SettingsProvider, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	settings, err := store.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load shipstation settings: %w", err)
	}
	snap, err := newSnapshot(settings)
	if err != nil {
		return nil, err
	}
	return &SettingsProvider{store: store, logger: logger, current: snap}, nil
}

// StaticSettings returns a source serving fixed settings
func StaticSettings(settings shipstation.Settings) (SettingsSource, error) {
	snap, err := newSnapshot(settings)
	if err != nil {
		return nil, err
	}
	return staticSource(snap), nil
}

type staticSource Snapshot

func (s staticSource) Current() Snapshot {
	return Snapshot(s)
}

func newSnapshot(settings shipstation.Settings) (Snapshot, error) {
	if err := settings.Validate(); err != nil {
		return Snapshot{}, err
	}
	bindings, err := shipstation.NewFieldBindings(settings)
	if err != nil {
		return Snapshot{}, err
	}
	return Snapshot{Settings: settings.Clone(), Bindings: bindings}, nil
}

// Current returns the active snapshot
func (p *SettingsProvider) Current() Snapshot {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.current
}

// Update validates and persists the settings, then makes them active
func (p *SettingsProvider) Update(ctx context.Context, settings shipstation.Settings) (Snapshot, error) {
	snap, err := newSnapshot(settings)
	if err != nil {
		return Snapshot{}, err
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	if err := p.store.Save(ctx, snap.Settings); err != nil {
		return Snapshot{}, fmt.Errorf("failed to save shipstation settings: %w", err)
	}
	p.current = snap

	p.logger.Info("ShipStation settings updated",
		zap.Int("export_paging", snap.Settings.ExportPaging),
		zap.Int("export_states", len(snap.Settings.ExportStates)),
		zap.Int("exposed_shipping_methods", len(snap.Settings.ExposedShippingMethods)),
		zap.Bool("reload", snap.Settings.Reload),
	)
	return snap, nil
}
