package invoice

import (
	"context"
	"errors"
	"regexp"
	"testing"

	"github.com/ecommerce/backend/internal/domain/invoice"
	"github.com/ecommerce/backend/internal/domain/order"
	"github.com/ecommerce/backend/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const (
	testOrderID   = "550e8400-e29b-41d4-a716-446655440000"
	testSellerID  = "9b2e6c1a-3f4d-4e8b-9a7c-1d2e3f4a5b6c"
	otherSellerID = "7c9e6679-7425-40de-944b-e07fc1f90ae7"
	testInvoiceID = "3f2504e0-4f89-41d3-9a0c-0305e82c3301"
)

var pdfContent = []byte("%PDF-1.4\n%test invoice\n")

type uploadFixture struct {
	repo        *MockInvoiceRepository
	projections *MockProjectionRepository
	storage     *MockFileStorage
	publisher   *MockEventPublisher
	handler     *UploadInvoiceHandler
}

func newUploadFixture() *uploadFixture {
	f := &uploadFixture{
		repo:        new(MockInvoiceRepository),
		projections: new(MockProjectionRepository),
		storage:     new(MockFileStorage),
		publisher:   new(MockEventPublisher),
	}
	f.handler = NewUploadInvoiceHandler(f.repo, f.projections, f.storage, f.publisher, zap.NewNop())
	return f
}

func uploadCommand() UploadInvoiceCommand {
	return UploadInvoiceCommand{
		OrderID:     testOrderID,
		SellerID:    testSellerID,
		FileContent: pdfContent,
		MimeType:    "application/pdf",
	}
}

func newStoredInvoice(t *testing.T) *invoice.Invoice {
	t.Helper()
	return invoice.Reconstitute(
		shared.NewBaseAggregateRoot(),
		invoice.IDFromPrimitive(testInvoiceID),
		shared.OrderIDFromPrimitive(testOrderID),
		shared.SellerIDFromPrimitive(testSellerID),
		invoice.FilePathFromPrimitive("/uploads/invoice.pdf"),
		nil,
	)
}

func TestUploadInvoiceHandler_Handle(t *testing.T) {
	ctx := context.Background()
	orderID := shared.OrderIDFromPrimitive(testOrderID)
	sellerID := shared.SellerIDFromPrimitive(testSellerID)
	fileNamePattern := regexp.MustCompile(`^invoice-[0-9a-f-]{36}-order-` + testOrderID + `\.pdf$`)

	t.Run("uploads and publishes InvoiceUploaded", func(t *testing.T) {
		f := newUploadFixture()
		f.repo.On("FindByOrderAndSeller", ctx, orderID, sellerID).Return(nil, shared.ErrNotFound)
		f.projections.On("Find", ctx, orderID).Return(invoice.NewOrderProjection(orderID, sellerID), nil)
		f.storage.On("UploadFile", ctx, pdfContent, mock.MatchedBy(fileNamePattern.MatchString)).
			Return("/uploads/invoice-x.pdf", nil)
		f.repo.On("Save", ctx, mock.MatchedBy(func(inv *invoice.Invoice) bool {
			return inv.FilePath().String() == "/uploads/invoice-x.pdf" && !inv.IsSent()
		})).Return(nil)
		f.publisher.On("Publish", ctx, mock.MatchedBy(func(events []shared.DomainEvent) bool {
			return len(events) == 1 && events[0].EventType() == invoice.EventTypeInvoiceUploaded
		})).Return(nil)

		require.NoError(t, f.handler.Handle(ctx, uploadCommand()))

		f.storage.AssertExpectations(t)
		f.repo.AssertExpectations(t)
		f.publisher.AssertExpectations(t)
	})

	t.Run("no projection means order not found", func(t *testing.T) {
		f := newUploadFixture()
		f.repo.On("FindByOrderAndSeller", ctx, orderID, sellerID).Return(nil, shared.ErrNotFound)
		f.projections.On("Find", ctx, orderID).Return(nil, shared.ErrNotFound)

		err := f.handler.Handle(ctx, uploadCommand())

		require.Error(t, err)
		assert.True(t, errors.Is(err, order.ErrOrderNotFound))
		f.storage.AssertNotCalled(t, "UploadFile", mock.Anything, mock.Anything, mock.Anything)
		f.repo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})

	t.Run("projection of another seller means order not found", func(t *testing.T) {
		f := newUploadFixture()
		f.repo.On("FindByOrderAndSeller", ctx, orderID, sellerID).Return(nil, shared.ErrNotFound)
		f.projections.On("Find", ctx, orderID).
			Return(invoice.NewOrderProjection(orderID, shared.SellerIDFromPrimitive(otherSellerID)), nil)

		err := f.handler.Handle(ctx, uploadCommand())

		assert.True(t, errors.Is(err, order.ErrOrderNotFound))
		f.storage.AssertNotCalled(t, "UploadFile", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("second upload for the same order and seller", func(t *testing.T) {
		f := newUploadFixture()
		f.repo.On("FindByOrderAndSeller", ctx, orderID, sellerID).Return(newStoredInvoice(t), nil)

		err := f.handler.Handle(ctx, uploadCommand())

		require.Error(t, err)
		assert.True(t, errors.Is(err, invoice.ErrInvoiceAlreadyExists))
		assert.Equal(t, "Invoice of order with ID: "+testOrderID+" already exists.", err.Error())
		f.storage.AssertNotCalled(t, "UploadFile", mock.Anything, mock.Anything, mock.Anything)
		f.projections.AssertNotCalled(t, "Find", mock.Anything, mock.Anything)
	})

	t.Run("file checks run before storage", func(t *testing.T) {
		tests := []struct {
			name    string
			content []byte
			mime    string
			wantErr string
		}{
			{"empty content", nil, "application/pdf", "Invoice file content cannot be empty"},
			{"not a pdf", pdfContent, "image/png", "Invoice files must be PDF. Received: image/png"},
		}
		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				f := newUploadFixture()
				f.repo.On("FindByOrderAndSeller", ctx, orderID, sellerID).Return(nil, shared.ErrNotFound)
				f.projections.On("Find", ctx, orderID).Return(invoice.NewOrderProjection(orderID, sellerID), nil)
				cmd := uploadCommand()
				cmd.FileContent = tt.content
				cmd.MimeType = tt.mime

				err := f.handler.Handle(ctx, cmd)

				require.Error(t, err)
				assert.Equal(t, tt.wantErr, err.Error())
				f.storage.AssertNotCalled(t, "UploadFile", mock.Anything, mock.Anything, mock.Anything)
			})
		}
	})

	t.Run("storage failure", func(t *testing.T) {
		f := newUploadFixture()
		f.repo.On("FindByOrderAndSeller", ctx, orderID, sellerID).Return(nil, shared.ErrNotFound)
		f.projections.On("Find", ctx, orderID).Return(invoice.NewOrderProjection(orderID, sellerID), nil)
		f.storage.On("UploadFile", ctx, pdfContent, mock.Anything).Return("", errors.New("bucket unavailable"))

		err := f.handler.Handle(ctx, uploadCommand())

		require.Error(t, err)
		assert.Contains(t, err.Error(), "bucket unavailable")
		f.repo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})

	t.Run("invalid seller id", func(t *testing.T) {
		f := newUploadFixture()
		cmd := uploadCommand()
		cmd.SellerID = "seller-1"

		err := f.handler.Handle(ctx, cmd)

		assert.True(t, errors.Is(err, shared.ErrInvalidUUID))
		f.repo.AssertNotCalled(t, "FindByOrderAndSeller", mock.Anything, mock.Anything, mock.Anything)
	})
}
