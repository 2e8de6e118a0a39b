package shipstation

import (
	"context"
	"sync"

	"github.com/commerce/shipstation/internal/domain/commerce"
	"github.com/commerce/shipstation/internal/domain/shared"
	"github.com/commerce/shipstation/internal/domain/shipstation"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

// MockOrderRepository is a mock implementation of OrderRepository
type MockOrderRepository struct {
	mock.Mock
}

func (m *MockOrderRepository) FindForExport(ctx context.Context, criteria commerce.ExportCriteria) ([]commerce.Order, error) {
	args := m.Called(ctx, criteria)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]commerce.Order), args.Error(1)
}

func (m *MockOrderRepository) CountForExport(ctx context.Context, criteria commerce.ExportCriteria) (int64, error) {
	args := m.Called(ctx, criteria)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockOrderRepository) FindByOrderNumber(ctx context.Context, orderNumber string) (*commerce.Order, error) {
	args := m.Called(ctx, orderNumber)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*commerce.Order), args.Error(1)
}

// MockShipmentRepository is a mock implementation of ShipmentRepository
type MockShipmentRepository struct {
	mock.Mock
}

func (m *MockShipmentRepository) FindByID(ctx context.Context, id uuid.UUID) (*commerce.Shipment, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*commerce.Shipment), args.Error(1)
}

func (m *MockShipmentRepository) SaveTracking(ctx context.Context, shipment *commerce.Shipment) error {
	args := m.Called(ctx, shipment)
	return args.Error(0)
}

// MockShippingMethodRepository is a mock implementation of ShippingMethodRepository
type MockShippingMethodRepository struct {
	mock.Mock
}

func (m *MockShippingMethodRepository) FindAll(ctx context.Context) ([]commerce.ShippingMethod, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]commerce.ShippingMethod), args.Error(1)
}

// MockEventPublisher is a mock implementation of EventPublisher
type MockEventPublisher struct {
	mock.Mock
}

func (m *MockEventPublisher) Publish(ctx context.Context, events ...shared.DomainEvent) error {
	args := m.Called(ctx, events)
	return args.Error(0)
}

// MockImageURLBuilder is a mock implementation of ImageURLBuilder
type MockImageURLBuilder struct {
	mock.Mock
}

func (m *MockImageURLBuilder) ThumbnailURL(ctx context.Context, uri string) (string, error) {
	args := m.Called(ctx, uri)
	return args.String(0), args.Error(1)
}

// fakeSettingsStore keeps settings in memory
type fakeSettingsStore struct {
	mu       sync.Mutex
	settings shipstation.Settings
	saveErr  error
	saves    int
}

func (s *fakeSettingsStore) Load(ctx context.Context) (shipstation.Settings, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.settings.Clone(), nil
}

func (s *fakeSettingsStore) Save(ctx context.Context, settings shipstation.Settings) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.saveErr != nil {
		return s.saveErr
	}
	s.saves++
	s.settings = settings.Clone()
	return nil
}
