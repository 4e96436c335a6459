package invoice

import (
	"context"
	"errors"
	"fmt"

	"github.com/ecommerce/backend/internal/domain/invoice"
	"github.com/ecommerce/backend/internal/domain/order"
	"github.com/ecommerce/backend/internal/domain/shared"
	"github.com/ecommerce/backend/internal/infrastructure/telemetry"
	"go.uber.org/zap"
)

// UploadInvoiceHandler handles UploadInvoiceCommand
type UploadInvoiceHandler struct {
	repo        invoice.Repository
	projections invoice.ProjectionRepository
	storage     FileStorage
	validator   *invoice.FileValidator
	publisher   shared.EventPublisher
	logger      *zap.Logger
}

// NewUploadInvoiceHandler creates a new UploadInvoiceHandler
func NewUploadInvoiceHandler(
	repo invoice.Repository,
	projections invoice.ProjectionRepository,
	storage FileStorage,
	publisher shared.EventPublisher,
	logger *zap.Logger,
) *UploadInvoiceHandler {
	return &UploadInvoiceHandler{
		repo:        repo,
		projections: projections,
		storage:     storage,
		validator:   invoice.NewFileValidator(),
		publisher:   publisher,
		logger:      logger,
	}
}

// Handle validates the upload, stores the document, then persists the invoice.
// Every check runs before the storage call so rejected uploads leave no file behind.
func (h *UploadInvoiceHandler) Handle(ctx context.Context, cmd UploadInvoiceCommand) error {
	orderID, err := shared.ParseOrderID(cmd.OrderID)
	if err != nil {
		return err
	}
	sellerID, err := shared.ParseSellerID(cmd.SellerID)
	if err != nil {
		return err
	}

	if _, err := h.repo.FindByOrderAndSeller(ctx, orderID, sellerID); err == nil {
		return invoice.NewInvoiceAlreadyExistsError(orderID)
	} else if !errors.Is(err, shared.ErrNotFound) {
		return fmt.Errorf("failed to check existing invoice: %w", err)
	}

	projection, err := h.projections.Find(ctx, orderID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return order.NewOrderNotFoundError(orderID)
		}
		return fmt.Errorf("failed to load order projection: %w", err)
	}
	if !projection.BelongsTo(sellerID) {
		return order.NewOrderNotFoundError(orderID)
	}

	if err := h.validator.ValidateContent(cmd.FileContent); err != nil {
		return err
	}
	if err := h.validator.ValidateMimeType(cmd.MimeType); err != nil {
		return err
	}

	id := invoice.GenerateID()
	telemetry.Annotate(ctx,
		telemetry.AttrInvoiceID.String(id.String()),
		telemetry.AttrOrderID.String(orderID.String()),
		telemetry.AttrSellerID.String(sellerID.String()),
	)
	fileName := fmt.Sprintf("invoice-%s-order-%s.pdf", id, orderID)

	location, err := h.storage.UploadFile(ctx, cmd.FileContent, fileName)
	if err != nil {
		h.logger.Error("failed to upload invoice file",
			zap.String("order_id", orderID.String()),
			zap.String("file_name", fileName),
			zap.Error(err),
		)
		return fmt.Errorf("failed to upload invoice file: %w", err)
	}

	filePath, err := invoice.NewFilePath(location)
	if err != nil {
		return err
	}

	inv := invoice.UploadInvoice(id, orderID, sellerID, filePath)
	if err := h.repo.Save(ctx, inv); err != nil {
		if errors.Is(err, shared.ErrAlreadyExists) {
			return invoice.NewInvoiceAlreadyExistsError(orderID)
		}
		return err
	}

	h.logger.Info("invoice uploaded",
		zap.String("invoice_id", id.String()),
		zap.String("order_id", orderID.String()),
		zap.String("file_path", filePath.String()),
		zap.Int("size", len(cmd.FileContent)),
	)

	return h.publisher.Publish(ctx, inv.ReleaseEvents()...)
}
