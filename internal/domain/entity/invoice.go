package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Invoice represents a GST sales invoice header. Totals are sums of the
// per-item values; tax is split evenly into CGST and SGST (intra-state).
type Invoice struct {
	ID         string
	BusinessID string
	CustomerID string
	Prefix     string
	Number     string // sequential within business+prefix
	Date       time.Time
	Subtotal   decimal.Decimal // sum of taxable amounts
	CGSTTotal  decimal.Decimal
	SGSTTotal  decimal.Decimal
	GrandTotal decimal.Decimal
	Notes      string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// InvoiceItem is one line of an invoice. Its sale effect on the product's
// stock is debited when the invoice is saved and credited back on deletion.
type InvoiceItem struct {
	ID            string
	InvoiceID     string
	ProductID     string
	Quantity      decimal.Decimal // positive
	UnitPrice     decimal.Decimal // pre-tax
	GSTRate       decimal.Decimal // fraction
	TaxableAmount decimal.Decimal
	CGST          decimal.Decimal
	SGST          decimal.Decimal
	LineTotal     decimal.Decimal
}
