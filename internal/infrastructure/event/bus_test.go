package event

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/commerce/shipstation/internal/domain/shared"
	"github.com/commerce/shipstation/internal/domain/shipstation"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

type testHandler struct {
	mu         sync.Mutex
	eventTypes []string
	handled    []shared.DomainEvent
	err        error
	panicMsg   string
}

func newTestHandler(eventTypes ...string) *testHandler {
	return &testHandler{eventTypes: eventTypes}
}

func (h *testHandler) Handle(ctx context.Context, event shared.DomainEvent) error {
	h.mu.Lock()
	h.handled = append(h.handled, event)
	err, msg := h.err, h.panicMsg
	h.mu.Unlock()
	if msg != "" {
		panic(msg)
	}
	return err
}

func (h *testHandler) EventTypes() []string {
	return h.eventTypes
}

func (h *testHandler) getHandled() []shared.DomainEvent {
	h.mu.Lock()
	defer h.mu.Unlock()
	return append([]shared.DomainEvent(nil), h.handled...)
}

func exportedEvent(number string) shared.DomainEvent {
	return shipstation.NewOrderExportedEvent(uuid.New(), number, 1)
}

func shippedEvent(number string) shared.DomainEvent {
	return shipstation.NewOrderShippedEvent(uuid.New(), uuid.New(), number, "1Z999", "UPS", "Ground", time.Now())
}

func TestInMemoryEventBus_Publish(t *testing.T) {
	bus := NewInMemoryEventBus(zap.NewNop())

	handler := newTestHandler(shipstation.EventTypeOrderExported)
	bus.Subscribe(handler)

	event := exportedEvent("1001")
	err := bus.Publish(context.Background(), event)

	require.NoError(t, err)
	require.Len(t, handler.getHandled(), 1)
	assert.Equal(t, event, handler.getHandled()[0])
}

func TestInMemoryEventBus_Publish_MultipleEvents(t *testing.T) {
	bus := NewInMemoryEventBus(zap.NewNop())

	handler := newTestHandler(shipstation.EventTypeOrderExported)
	bus.Subscribe(handler)

	err := bus.Publish(context.Background(), exportedEvent("1001"), exportedEvent("1002"))

	require.NoError(t, err)
	assert.Len(t, handler.getHandled(), 2)
}

func TestInMemoryEventBus_Publish_ExplicitTypesOverrideHandler(t *testing.T) {
	bus := NewInMemoryEventBus(zap.NewNop())

	handler := newTestHandler(shipstation.EventTypeOrderExported)
	bus.Subscribe(handler, shipstation.EventTypeOrderShipped)

	_ = bus.Publish(context.Background(), exportedEvent("1001"), shippedEvent("1001"))

	require.Len(t, handler.getHandled(), 1)
	assert.Equal(t, shipstation.EventTypeOrderShipped, handler.getHandled()[0].EventType())
}

func TestInMemoryEventBus_Publish_WildcardHandler(t *testing.T) {
	bus := NewInMemoryEventBus(zap.NewNop())

	wildcard := newTestHandler()
	bus.Subscribe(wildcard)

	err := bus.Publish(context.Background(), exportedEvent("1001"), shippedEvent("1001"))

	require.NoError(t, err)
	assert.Len(t, wildcard.getHandled(), 2)
}

func TestInMemoryEventBus_Publish_HandlerError(t *testing.T) {
	core, logs := observer.New(zap.ErrorLevel)
	bus := NewInMemoryEventBus(zap.New(core))

	failing := newTestHandler(shipstation.EventTypeOrderShipped)
	failing.err = errors.New("handler error")
	healthy := newTestHandler(shipstation.EventTypeOrderShipped)
	bus.Subscribe(failing)
	bus.Subscribe(healthy)

	err := bus.Publish(context.Background(), shippedEvent("1001"))

	require.NoError(t, err)
	assert.Len(t, failing.getHandled(), 1)
	assert.Len(t, healthy.getHandled(), 1)
	assert.Equal(t, 1, logs.FilterMessage("handler failed to process event").Len())
}

func TestInMemoryEventBus_Publish_HandlerPanic(t *testing.T) {
	bus := NewInMemoryEventBus(zap.NewNop())

	panicking := newTestHandler(shipstation.EventTypeOrderShipped)
	panicking.panicMsg = "boom"
	healthy := newTestHandler(shipstation.EventTypeOrderShipped)
	bus.Subscribe(panicking)
	bus.Subscribe(healthy)

	assert.NotPanics(t, func() {
		err := bus.Publish(context.Background(), shippedEvent("1001"))
		require.NoError(t, err)
	})
	assert.Len(t, healthy.getHandled(), 1)
}

func TestInMemoryEventBus_Publish_NoMatchingHandlers(t *testing.T) {
	bus := NewInMemoryEventBus(nil)

	handler := newTestHandler(shipstation.EventTypeOrderShipped)
	bus.Subscribe(handler)

	err := bus.Publish(context.Background(), exportedEvent("1001"))

	require.NoError(t, err)
	assert.Empty(t, handler.getHandled())
}

func TestInMemoryEventBus_Unsubscribe(t *testing.T) {
	bus := NewInMemoryEventBus(zap.NewNop())

	handler := newTestHandler(shipstation.EventTypeOrderExported)
	wildcard := newTestHandler()
	bus.Subscribe(handler)
	bus.Subscribe(wildcard)

	_ = bus.Publish(context.Background(), exportedEvent("1001"))
	assert.Len(t, handler.getHandled(), 1)

	bus.Unsubscribe(handler)
	bus.Unsubscribe(wildcard)

	_ = bus.Publish(context.Background(), exportedEvent("1002"))
	assert.Len(t, handler.getHandled(), 1)
	assert.Len(t, wildcard.getHandled(), 1)
}

func TestInMemoryEventBus_HandlersFor_SubscriptionOrder(t *testing.T) {
	bus := NewInMemoryEventBus(zap.NewNop())

	wildcard := newTestHandler()
	typed := newTestHandler(shipstation.EventTypeOrderShipped)
	bus.Subscribe(wildcard)
	bus.Subscribe(typed)

	handlers := bus.handlersFor(shipstation.EventTypeOrderShipped)
	require.Len(t, handlers, 2)
	assert.Same(t, wildcard, handlers[0])
	assert.Same(t, typed, handlers[1])

	assert.Len(t, bus.handlersFor(shipstation.EventTypeOrderExported), 1)

	bus.Unsubscribe(typed)
	assert.Len(t, bus.handlersFor(shipstation.EventTypeOrderShipped), 1)
}

func TestShipStationAuditHandler(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	bus := NewInMemoryEventBus(zap.NewNop())
	bus.Subscribe(NewShipStationAuditHandler(zap.New(core)))

	err := bus.Publish(context.Background(), exportedEvent("1001"), shippedEvent("1002"))
	require.NoError(t, err)

	exported := logs.FilterMessage("order exported").All()
	require.Len(t, exported, 1)
	assert.Equal(t, "1001", exported[0].ContextMap()["order_number"])

	shipped := logs.FilterMessage("order shipped").All()
	require.Len(t, shipped, 1)
	assert.Equal(t, "UPS", shipped[0].ContextMap()["carrier"])
	assert.Equal(t, "1Z999", shipped[0].ContextMap()["tracking_number"])
}
