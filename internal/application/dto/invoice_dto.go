package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateInvoiceItemRequest one line of a new invoice. Exactly one of
// UnitPrice (pre-tax) or InclusiveRate (tax-inclusive, as entered on the
// billing screen) should be set; when both are zero the product's sale
// price is used as the pre-tax unit price.
type CreateInvoiceItemRequest struct {
	ProductID     string          `json:"product_id" validate:"required"`
	Quantity      decimal.Decimal `json:"quantity" validate:"required"`
	UnitPrice     decimal.Decimal `json:"unit_price"`
	InclusiveRate decimal.Decimal `json:"inclusive_rate"`
}

// CreateInvoiceRequest input to create an invoice.
type CreateInvoiceRequest struct {
	CustomerID string                     `json:"customer_id" validate:"required"`
	Date       time.Time                  `json:"date"`
	Prefix     string                     `json:"prefix"`
	Notes      string                     `json:"notes"`
	Items      []CreateInvoiceItemRequest `json:"items" validate:"required,min=1"`
}

// InvoiceItemResponse one computed invoice line.
type InvoiceItemResponse struct {
	ID            string          `json:"id"`
	ProductID     string          `json:"product_id"`
	Quantity      decimal.Decimal `json:"quantity"`
	UnitPrice     decimal.Decimal `json:"unit_price"`
	GSTRate       decimal.Decimal `json:"gst_rate"`
	TaxableAmount decimal.Decimal `json:"taxable_amount"`
	CGST          decimal.Decimal `json:"cgst"`
	SGST          decimal.Decimal `json:"sgst"`
	LineTotal     decimal.Decimal `json:"line_total"`
}

// InvoiceResponse output for an invoice header, optionally with items.
type InvoiceResponse struct {
	ID         string                `json:"id"`
	BusinessID string                `json:"business_id"`
	CustomerID string                `json:"customer_id"`
	Number     string                `json:"number"` // prefix + sequence
	Date       time.Time             `json:"date"`
	Subtotal   decimal.Decimal       `json:"subtotal"`
	CGSTTotal  decimal.Decimal       `json:"cgst_total"`
	SGSTTotal  decimal.Decimal       `json:"sgst_total"`
	GrandTotal decimal.Decimal       `json:"grand_total"`
	Notes      string                `json:"notes,omitempty"`
	Items      []InvoiceItemResponse `json:"items,omitempty"`
	CreatedAt  time.Time             `json:"created_at"`
}

// InvoiceListResponse paginated invoice list.
type InvoiceListResponse struct {
	Items []InvoiceResponse `json:"items"`
	Page  PageResponse      `json:"page"`
}

// WhatsAppShareResponse share link for an invoice.
type WhatsAppShareResponse struct {
	Link string `json:"link"`
}
