package settingsstore

import (
	"context"
	"sync"

	"github.com/commerce/shipstation/internal/domain/shipstation"
)

// MemoryStore keeps the settings in process memory
type MemoryStore struct {
	mu       sync.RWMutex
	settings shipstation.Settings
}

// NewMemoryStore creates a store holding the given settings
func NewMemoryStore(initial shipstation.Settings) *MemoryStore {
	return &MemoryStore{settings: initial.Clone()}
}

// Load returns a copy of the stored settings
func (s *MemoryStore) Load(ctx context.Context) (shipstation.Settings, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.settings.Clone(), nil
}

// Save replaces the stored settings
func (s *MemoryStore) Save(ctx context.Context, settings shipstation.Settings) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.settings = settings.Clone()
	return nil
}

var _ shipstation.SettingsStore = (*MemoryStore)(nil)
