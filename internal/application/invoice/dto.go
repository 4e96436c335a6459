package invoice

import (
	"time"

	"github.com/ecommerce/backend/internal/domain/invoice"
)

// InvoiceResponse is the read model returned by invoice queries.
// DownloadURL is set only when storage issues presigned links.
type InvoiceResponse struct {
	ID                string     `json:"id"`
	OrderID           string     `json:"orderId"`
	SellerID          string     `json:"sellerId"`
	FilePath          string     `json:"filePath"`
	SentAt            *time.Time `json:"sentAt"`
	Version           int        `json:"version"`
	DownloadURL       string     `json:"downloadUrl,omitempty"`
	DownloadExpiresAt *time.Time `json:"downloadExpiresAt,omitempty"`
}

// ToInvoiceResponse converts a domain invoice to its response form
func ToInvoiceResponse(inv *invoice.Invoice) InvoiceResponse {
	resp := InvoiceResponse{
		ID:       inv.ID().String(),
		OrderID:  inv.OrderID().String(),
		SellerID: inv.SellerID().String(),
		FilePath: inv.FilePath().String(),
		Version:  inv.GetVersion(),
	}
	if s := inv.SentAt(); s != nil {
		t := s.Time()
		resp.SentAt = &t
	}
	return resp
}
