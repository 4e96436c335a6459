package invoice

import "time"

// Command names routed by the command bus
const (
	CommandNameUploadInvoice = "invoice.upload"
	CommandNameSendInvoice   = "invoice.send"
)

// UploadInvoiceCommand attaches a document to an order on behalf of its seller
type UploadInvoiceCommand struct {
	OrderID     string
	SellerID    string
	FileContent []byte
	MimeType    string
}

// CommandName implements shared.Command
func (UploadInvoiceCommand) CommandName() string { return CommandNameUploadInvoice }

// SendInvoiceCommand sends the invoice of an order to its customer at Date
type SendInvoiceCommand struct {
	OrderID string
	Date    time.Time
}

// CommandName implements shared.Command
func (SendInvoiceCommand) CommandName() string { return CommandNameSendInvoice }
