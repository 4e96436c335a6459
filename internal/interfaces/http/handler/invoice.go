package handler

import (
	"context"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"

	invoiceapp "github.com/ecommerce/backend/internal/application/invoice"
	"github.com/ecommerce/backend/internal/domain/shared"
	"github.com/ecommerce/backend/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
)

// InvoiceQueries is the read side used by InvoiceHandler
type InvoiceQueries interface {
	GetInvoice(ctx context.Context, orderID, sellerID string) (*invoiceapp.InvoiceResponse, error)
}

// InvoiceHandler serves the /invoices endpoints
type InvoiceHandler struct {
	BaseHandler
	commands      shared.CommandDispatcher
	queries       InvoiceQueries
	maxUploadSize int64
}

// NewInvoiceHandler creates a new InvoiceHandler. Uploaded files larger than
// maxUploadSize bytes are rejected with 413.
func NewInvoiceHandler(commands shared.CommandDispatcher, queries InvoiceQueries, maxUploadSize int64) *InvoiceHandler {
	return &InvoiceHandler{
		commands:      commands,
		queries:       queries,
		maxUploadSize: maxUploadSize,
	}
}

// UploadInvoiceRequest is the multipart form of POST /invoices/:orderId/upload
type UploadInvoiceRequest struct {
	SellerID string `form:"sellerId" binding:"required"`
}

// UploadInvoice handles POST /invoices/:orderId/upload.
// The MIME type is sniffed from the content, never taken from the client.
func (h *InvoiceHandler) UploadInvoice(c *gin.Context) {
	var req UploadInvoiceRequest
	if err := c.ShouldBind(&req); err != nil {
		h.HandleBindError(c, err)
		return
	}
	scopeToSeller(c, req.SellerID)

	fileHeader, err := c.FormFile("file")
	if err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			h.HandleBindError(c, err)
			return
		}
		h.HandleError(c, errFileRequired)
		return
	}
	if fileHeader.Size > h.maxUploadSize {
		h.Error(c, http.StatusRequestEntityTooLarge, dto.ErrCodeRequestTooLarge,
			"Invoice file exceeds maximum allowed size")
		return
	}

	content, err := readUpload(fileHeader)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	err = h.commands.Dispatch(c.Request.Context(), invoiceapp.UploadInvoiceCommand{
		OrderID:     c.Param("orderId"),
		SellerID:    req.SellerID,
		FileContent: content,
		MimeType:    http.DetectContentType(content),
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, dto.MessageData{Message: "Invoice uploaded successfully"})
}

// GetInvoice handles GET /invoices/:orderId?sellerId=
func (h *InvoiceHandler) GetInvoice(c *gin.Context) {
	sellerID := sellerFromRequest(c)
	scopeToSeller(c, sellerID)

	resp, err := h.queries.GetInvoice(c.Request.Context(), c.Param("orderId"), sellerID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}

var errFileRequired = shared.NewDomainError("EMPTY_FILE", "Valid file is required")

func readUpload(fh *multipart.FileHeader) ([]byte, error) {
	f, err := fh.Open()
	if err != nil {
		return nil, fmt.Errorf("failed to open uploaded file: %w", err)
	}
	defer f.Close()
	return io.ReadAll(f)
}
