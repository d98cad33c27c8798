package billing

import (
	"context"

	"github.com/nivaanlabs/gstbill-api/internal/domain/entity"
	"github.com/nivaanlabs/gstbill-api/internal/domain/repository"
)

// BillingTxRunner runs a callback inside a transaction with the invoice and
// product repositories bound to that transaction.
type BillingTxRunner interface {
	RunBilling(ctx context.Context, fn func(
		invoiceRepo repository.InvoiceRepository,
		productRepo repository.ProductRepository,
	) error) error
}

// InvoiceItemForPDF is an invoice line enriched with catalog data needed
// by the document layout.
type InvoiceItemForPDF struct {
	entity.InvoiceItem
	ProductName string
	HSNCode     string
	UnitAbbrev  string
}

// InvoicePDFGenerator renders the printable invoice document.
type InvoicePDFGenerator interface {
	GenerateInvoicePDF(
		ctx context.Context,
		invoice *entity.Invoice,
		business *entity.Business,
		customer *entity.Customer,
		items []InvoiceItemForPDF,
	) ([]byte, error)
}
