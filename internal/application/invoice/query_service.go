package invoice

import (
	"context"
	"errors"
	"fmt"

	"github.com/ecommerce/backend/internal/domain/invoice"
	"github.com/ecommerce/backend/internal/domain/shared"
)

// QueryService answers read requests for invoices
type QueryService struct {
	repo   invoice.Repository
	linker DownloadLinker
}

// QueryOption configures a QueryService
type QueryOption func(*QueryService)

// WithDownloadLinker attaches a presigned download link to every invoice read
func WithDownloadLinker(linker DownloadLinker) QueryOption {
	return func(s *QueryService) { s.linker = linker }
}

// NewQueryService creates a new QueryService
func NewQueryService(repo invoice.Repository, opts ...QueryOption) *QueryService {
	s := &QueryService{repo: repo}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// GetInvoice returns the invoice a seller uploaded for an order
func (s *QueryService) GetInvoice(ctx context.Context, orderID, sellerID string) (*InvoiceResponse, error) {
	oid, err := shared.ParseOrderID(orderID)
	if err != nil {
		return nil, err
	}
	sid, err := shared.ParseSellerID(sellerID)
	if err != nil {
		return nil, err
	}

	inv, err := s.repo.FindByOrderAndSeller(ctx, oid, sid)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, invoice.NewInvoiceNotFoundError(oid)
		}
		return nil, err
	}

	resp := ToInvoiceResponse(inv)
	if s.linker != nil {
		link, expiresAt, err := s.linker.DownloadURL(ctx, resp.FilePath)
		if err != nil {
			return nil, fmt.Errorf("failed to issue download link: %w", err)
		}
		resp.DownloadURL = link
		resp.DownloadExpiresAt = &expiresAt
	}
	return &resp, nil
}
