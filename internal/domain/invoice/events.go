package invoice

import (
	"time"

	"github.com/ecommerce/backend/internal/domain/shared"
)

// Aggregate type constant
const AggregateTypeInvoice = "Invoice"

// Event type constants
const (
	EventTypeInvoiceUploaded = "invoice.uploaded"
	EventTypeInvoiceSent     = "invoice.sent"
)

// InvoiceUploadedEvent is raised when a seller attaches an invoice to an order
type InvoiceUploadedEvent struct {
	shared.BaseDomainEvent
	InvoiceID string `json:"invoiceId"`
	OrderID   string `json:"orderId"`
	SellerID  string `json:"sellerId"`
	FilePath  string `json:"filePath"`
}

// NewInvoiceUploadedEvent creates a new InvoiceUploadedEvent
func NewInvoiceUploadedEvent(inv *Invoice) *InvoiceUploadedEvent {
	return &InvoiceUploadedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeInvoiceUploaded, AggregateTypeInvoice, inv.id.String()),
		InvoiceID:       inv.id.String(),
		OrderID:         inv.orderID.String(),
		SellerID:        inv.sellerID.String(),
		FilePath:        inv.filePath.String(),
	}
}

// Payload returns the event body
func (e *InvoiceUploadedEvent) Payload() map[string]any {
	return map[string]any{
		"invoiceId": e.InvoiceID,
		"orderId":   e.OrderID,
		"sellerId":  e.SellerID,
		"filePath":  e.FilePath,
	}
}

// InvoiceSentEvent is raised when an invoice is sent to the customer
type InvoiceSentEvent struct {
	shared.BaseDomainEvent
	InvoiceID string    `json:"invoiceId"`
	OrderID   string    `json:"orderId"`
	SentAt    time.Time `json:"sentAt"`
}

// NewInvoiceSentEvent creates a new InvoiceSentEvent
func NewInvoiceSentEvent(inv *Invoice) *InvoiceSentEvent {
	return &InvoiceSentEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeInvoiceSent, AggregateTypeInvoice, inv.id.String()),
		InvoiceID:       inv.id.String(),
		OrderID:         inv.orderID.String(),
		SentAt:          inv.sentAt.Time(),
	}
}

// Payload returns the event body
func (e *InvoiceSentEvent) Payload() map[string]any {
	return map[string]any{
		"invoiceId": e.InvoiceID,
		"orderId":   e.OrderID,
		"sentAt":    e.SentAt.Format(time.RFC3339),
	}
}
