package invoice

import (
	"fmt"
	"time"

	"github.com/ecommerce/backend/internal/domain/shared"
)

type invoiceKind struct{}

// ID identifies an invoice
type ID = shared.Identifier[invoiceKind]

// GenerateID creates a new random invoice identifier
func GenerateID() ID { return shared.GenerateIdentifier[invoiceKind]() }

// ParseID parses an invoice identifier
func ParseID(s string) (ID, error) { return shared.ParseIdentifier[invoiceKind](s) }

// IDFromPrimitive rehydrates a stored invoice identifier
func IDFromPrimitive(s string) ID { return shared.IdentifierFromPrimitive[invoiceKind](s) }

// Error codes raised by the invoice context
var (
	ErrInvoiceNotFound      = shared.NewDomainError("INVOICE_NOT_FOUND", "Invoice not found")
	ErrInvoiceAlreadyExists = shared.NewDomainError("INVOICE_ALREADY_EXISTS", "Invoice already exists")
)

// NewInvoiceNotFoundError reports that no invoice exists for an order
func NewInvoiceNotFoundError(orderID shared.OrderID) error {
	return shared.NewDomainError(ErrInvoiceNotFound.Code, fmt.Sprintf("Invoice with order ID: %s not found.", orderID))
}

// NewInvoiceAlreadyExistsError reports a second upload for the same order and seller
func NewInvoiceAlreadyExistsError(orderID shared.OrderID) error {
	return shared.NewDomainError(ErrInvoiceAlreadyExists.Code, fmt.Sprintf("Invoice of order with ID: %s already exists.", orderID))
}

// Invoice is the aggregate root for the document a seller issues for an order.
// At most one invoice exists per order and seller; the storage layer enforces it.
type Invoice struct {
	shared.BaseAggregateRoot
	id       ID
	orderID  shared.OrderID
	sellerID shared.SellerID
	filePath FilePath
	sentAt   *SentAt
}

// UploadInvoice creates an unsent invoice and records InvoiceUploaded
func UploadInvoice(id ID, orderID shared.OrderID, sellerID shared.SellerID, filePath FilePath) *Invoice {
	inv := &Invoice{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		id:                id,
		orderID:           orderID,
		sellerID:          sellerID,
		filePath:          filePath,
	}
	inv.RecordEvent(NewInvoiceUploadedEvent(inv))
	return inv
}

// Reconstitute rebuilds an invoice from persisted state without recording events
func Reconstitute(
	base shared.BaseAggregateRoot,
	id ID,
	orderID shared.OrderID,
	sellerID shared.SellerID,
	filePath FilePath,
	sentAt *SentAt,
) *Invoice {
	return &Invoice{
		BaseAggregateRoot: base,
		id:                id,
		orderID:           orderID,
		sellerID:          sellerID,
		filePath:          filePath,
		sentAt:            sentAt,
	}
}

// Send marks the invoice as sent at date and records InvoiceSent.
// An invoice that was already sent keeps its original date and records nothing.
func (i *Invoice) Send(date time.Time) error {
	if i.IsSent() {
		return nil
	}
	sentAt, err := NewSentAt(date)
	if err != nil {
		return err
	}
	i.sentAt = &sentAt
	i.Touch()
	i.RecordEvent(NewInvoiceSentEvent(i))
	return nil
}

// IsSent reports whether the invoice has been sent
func (i *Invoice) IsSent() bool { return i.sentAt != nil }

// ID returns the invoice identifier
func (i *Invoice) ID() ID { return i.id }

// OrderID returns the invoiced order
func (i *Invoice) OrderID() shared.OrderID { return i.orderID }

// SellerID returns the issuing seller
func (i *Invoice) SellerID() shared.SellerID { return i.sellerID }

// FilePath returns the stored document reference
func (i *Invoice) FilePath() FilePath { return i.filePath }

// SentAt returns the send date, nil while unsent
func (i *Invoice) SentAt() *SentAt { return i.sentAt }

// ToPrimitives returns the invoice as a flat map
func (i *Invoice) ToPrimitives() map[string]any {
	var sentAt any
	if i.sentAt != nil {
		sentAt = i.sentAt.Time().Format(time.RFC3339)
	}
	return map[string]any{
		"id":       i.id.String(),
		"orderId":  i.orderID.String(),
		"sellerId": i.sellerID.String(),
		"filePath": i.filePath.String(),
		"sentAt":   sentAt,
	}
}
