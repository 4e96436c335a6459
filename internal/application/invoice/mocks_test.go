package invoice

import (
	"context"
	"time"

	"github.com/ecommerce/backend/internal/domain/invoice"
	"github.com/ecommerce/backend/internal/domain/shared"
	"github.com/stretchr/testify/mock"
)

// MockInvoiceRepository is a mock implementation of invoice.Repository
type MockInvoiceRepository struct {
	mock.Mock
}

func (m *MockInvoiceRepository) FindByID(ctx context.Context, id invoice.ID) (*invoice.Invoice, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*invoice.Invoice), args.Error(1)
}

func (m *MockInvoiceRepository) FindByOrder(ctx context.Context, orderID shared.OrderID) (*invoice.Invoice, error) {
	args := m.Called(ctx, orderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*invoice.Invoice), args.Error(1)
}

func (m *MockInvoiceRepository) FindByOrderAndSeller(ctx context.Context, orderID shared.OrderID, sellerID shared.SellerID) (*invoice.Invoice, error) {
	args := m.Called(ctx, orderID, sellerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*invoice.Invoice), args.Error(1)
}

func (m *MockInvoiceRepository) Save(ctx context.Context, inv *invoice.Invoice) error {
	args := m.Called(ctx, inv)
	return args.Error(0)
}

func (m *MockInvoiceRepository) SaveWithLock(ctx context.Context, inv *invoice.Invoice) error {
	args := m.Called(ctx, inv)
	return args.Error(0)
}

// MockProjectionRepository is a mock implementation of invoice.ProjectionRepository
type MockProjectionRepository struct {
	mock.Mock
}

func (m *MockProjectionRepository) Find(ctx context.Context, orderID shared.OrderID) (*invoice.OrderProjection, error) {
	args := m.Called(ctx, orderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*invoice.OrderProjection), args.Error(1)
}

func (m *MockProjectionRepository) Save(ctx context.Context, p *invoice.OrderProjection) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

// MockFileStorage is a mock implementation of FileStorage
type MockFileStorage struct {
	mock.Mock
}

func (m *MockFileStorage) UploadFile(ctx context.Context, content []byte, fileName string) (string, error) {
	args := m.Called(ctx, content, fileName)
	return args.String(0), args.Error(1)
}

// MockDownloadLinker is a mock implementation of DownloadLinker
type MockDownloadLinker struct {
	mock.Mock
}

func (m *MockDownloadLinker) DownloadURL(ctx context.Context, location string) (string, time.Time, error) {
	args := m.Called(ctx, location)
	return args.String(0), args.Get(1).(time.Time), args.Error(2)
}

// MockEventPublisher is a mock implementation of shared.EventPublisher
type MockEventPublisher struct {
	mock.Mock
}

func (m *MockEventPublisher) Publish(ctx context.Context, events ...shared.DomainEvent) error {
	args := m.Called(ctx, events)
	return args.Error(0)
}

// MockCommandDispatcher is a mock implementation of shared.CommandDispatcher
type MockCommandDispatcher struct {
	mock.Mock
}

func (m *MockCommandDispatcher) Dispatch(ctx context.Context, cmd shared.Command) error {
	args := m.Called(ctx, cmd)
	return args.Error(0)
}
