package handler

import (
	"context"

	invoiceapp "github.com/ecommerce/backend/internal/application/invoice"
	orderapp "github.com/ecommerce/backend/internal/application/order"
	"github.com/ecommerce/backend/internal/domain/shared"
	"github.com/stretchr/testify/mock"
)

type mockDispatcher struct {
	mock.Mock
}

func (m *mockDispatcher) Dispatch(ctx context.Context, cmd shared.Command) error {
	return m.Called(ctx, cmd).Error(0)
}

type mockOrderQueries struct {
	mock.Mock
}

func (m *mockOrderQueries) GetOrderDetails(ctx context.Context, orderID, sellerID string) (*orderapp.OrderResponse, error) {
	args := m.Called(ctx, orderID, sellerID)
	if resp := args.Get(0); resp != nil {
		return resp.(*orderapp.OrderResponse), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockOrderQueries) GetOrders(ctx context.Context, sellerID string) ([]orderapp.OrderResponse, error) {
	args := m.Called(ctx, sellerID)
	if resp := args.Get(0); resp != nil {
		return resp.([]orderapp.OrderResponse), args.Error(1)
	}
	return nil, args.Error(1)
}

type mockInvoiceQueries struct {
	mock.Mock
}

func (m *mockInvoiceQueries) GetInvoice(ctx context.Context, orderID, sellerID string) (*invoiceapp.InvoiceResponse, error) {
	args := m.Called(ctx, orderID, sellerID)
	if resp := args.Get(0); resp != nil {
		return resp.(*invoiceapp.InvoiceResponse), args.Error(1)
	}
	return nil, args.Error(1)
}

type mockPinger struct {
	mock.Mock
}

func (m *mockPinger) Ping(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}
