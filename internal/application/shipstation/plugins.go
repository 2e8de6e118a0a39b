package shipstation

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/beevik/etree"
	"github.com/commerce/shipstation/internal/domain/commerce"
	"github.com/commerce/shipstation/internal/domain/shared"
	"go.uber.org/zap"
)

// ExportContext describes the feed page being built
type ExportContext struct {
	StartDate *time.Time
	EndDate   *time.Time
	Page      int
	PageSize  int
}

// Plugin is an extension of the export feed. A plugin implements one or
// more of OrdersAlterer, OrderXMLAlterer and ItemXMLAlterer.
type Plugin interface {
	Name() string
}

// OrdersAlterer may replace the loaded batch before any order is mapped
type OrdersAlterer interface {
	Plugin
	AlterOrders(ctx context.Context, orders []commerce.Order, export ExportContext) ([]commerce.Order, error)
}

// OrderXMLAlterer may change an <Order> element after it was built
type OrderXMLAlterer interface {
	Plugin
	AlterOrderXML(ctx context.Context, el *etree.Element, order *commerce.Order) error
}

// ItemXMLAlterer may change an <Item> element built from an order item
type ItemXMLAlterer interface {
	Plugin
	AlterItemXML(ctx context.Context, el *etree.Element, item *commerce.OrderItem, order *commerce.Order) error
}

// PluginRegistry runs plugins in registration order. A failing or
// panicking plugin is logged and skipped.
type PluginRegistry struct {
	mu      sync.RWMutex
	plugins []Plugin
	logger  *zap.Logger
}

// NewPluginRegistry creates an empty registry
func NewPluginRegistry(logger *zap.Logger) *PluginRegistry {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &PluginRegistry{logger: logger}
}

// Register appends a plugin
func (r *PluginRegistry) Register(p Plugin) error {
	if p == nil {
		return fmt.Errorf("%w: plugin cannot be nil", shared.ErrInvalidInput)
	}
	name := p.Name()
	if name == "" {
		return fmt.Errorf("%w: plugin name cannot be empty", shared.ErrInvalidInput)
	}

	_, alterOrders := p.(OrdersAlterer)
	_, alterOrderXML := p.(OrderXMLAlterer)
	_, alterItemXML := p.(ItemXMLAlterer)
	if !alterOrders && !alterOrderXML && !alterItemXML {
		return fmt.Errorf("%w: plugin '%s' implements no extension point", shared.ErrInvalidInput, name)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	for _, existing := range r.plugins {
		if existing.Name() == name {
			return fmt.Errorf("%w: plugin '%s' already registered", shared.ErrAlreadyExists, name)
		}
	}
	r.plugins = append(r.plugins, p)
	return nil
}

// Unregister removes a plugin by name
func (r *PluginRegistry) Unregister(name string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i, p := range r.plugins {
		if p.Name() == name {
			r.plugins = append(r.plugins[:i:i], r.plugins[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("%w: plugin '%s' not found", shared.ErrNotFound, name)
}

// Names returns plugin names in registration order
func (r *PluginRegistry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, len(r.plugins))
	for i, p := range r.plugins {
		names[i] = p.Name()
	}
	return names
}

// Count returns the number of registered plugins
func (r *PluginRegistry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.plugins)
}

func (r *PluginRegistry) snapshot() []Plugin {
	if r == nil {
		return nil
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Plugin, len(r.plugins))
	copy(out, r.plugins)
	return out
}

// AlterOrders passes the batch through every OrdersAlterer. A failing
// plugin leaves the batch as it was before that plugin ran.
func (r *PluginRegistry) AlterOrders(ctx context.Context, orders []commerce.Order, export ExportContext) []commerce.Order {
	for _, p := range r.snapshot() {
		alterer, ok := p.(OrdersAlterer)
		if !ok {
			continue
		}
		var altered []commerce.Order
		err := r.call(p.Name(), func() error {
			var err error
			altered, err = alterer.AlterOrders(ctx, orders, export)
			return err
		})
		if err == nil {
			orders = altered
		}
	}
	return orders
}

// AlterOrderXML runs every OrderXMLAlterer on an order element
func (r *PluginRegistry) AlterOrderXML(ctx context.Context, el *etree.Element, order *commerce.Order) {
	for _, p := range r.snapshot() {
		if alterer, ok := p.(OrderXMLAlterer); ok {
			_ = r.call(p.Name(), func() error { return alterer.AlterOrderXML(ctx, el, order) })
		}
	}
}

// AlterItemXML runs every ItemXMLAlterer on an item element
func (r *PluginRegistry) AlterItemXML(ctx context.Context, el *etree.Element, item *commerce.OrderItem, order *commerce.Order) {
	for _, p := range r.snapshot() {
		if alterer, ok := p.(ItemXMLAlterer); ok {
			_ = r.call(p.Name(), func() error { return alterer.AlterItemXML(ctx, el, item, order) })
		}
	}
}

func (r *PluginRegistry) call(name string, fn func() error) (err error) {
	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("plugin panicked: %v", rec)
			r.logger.Error("ShipStation plugin panicked",
				zap.String("plugin", name),
				zap.Any("panic", rec),
				zap.Stack("stack"))
		}
	}()

	if err = fn(); err != nil {
		r.logger.Warn("ShipStation plugin failed",
			zap.String("plugin", name),
			zap.Error(err))
	}
	return err
}
