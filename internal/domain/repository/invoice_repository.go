package repository

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/nivaanlabs/gstbill-api/internal/domain/entity"
)

// SaleEvent is an invoice line joined to its parent invoice's date and
// number, as consumed by the stock ledger reconstructor.
type SaleEvent struct {
	InvoiceID     string
	InvoiceNumber string
	Date          time.Time
	Quantity      decimal.Decimal
}

// InvoiceRepository defines the persistence port for invoices and items.
type InvoiceRepository interface {
	Create(invoice *entity.Invoice, items []*entity.InvoiceItem) error
	GetByID(id string) (*entity.Invoice, error)
	GetItemsByInvoiceID(invoiceID string) ([]*entity.InvoiceItem, error)
	ListByBusiness(businessID string, limit, offset int) ([]*entity.Invoice, error)
	// NextNumber returns the next sequential invoice number for the
	// business+prefix pair. Only valid inside a tx (locks the sequence).
	NextNumber(businessID, prefix string) (int64, error)
	// ListSalesByProduct joins invoice items to their parent invoice to
	// obtain the sale date and invoice number, full history for the ledger.
	ListSalesByProduct(productID string) ([]SaleEvent, error)
	Delete(id string) error
}
