package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// StockLedgerRequest query parameters for the stock ledger report.
type StockLedgerRequest struct {
	ProductID   string `query:"product_id" validate:"required"`
	From        string `query:"from"`        // YYYY-MM-DD, inclusive; empty = unbounded
	To          string `query:"to"`          // YYYY-MM-DD, inclusive; empty = unbounded
	Granularity string `query:"granularity"` // "event" (default) | "day"
	Limit       int    `query:"limit"`
	Offset      int    `query:"offset"`
}

// StockLedgerRow one movement row of the report.
type StockLedgerRow struct {
	Date       time.Time       `json:"date"`
	References []string        `json:"references,omitempty"`
	Opening    decimal.Decimal `json:"opening_stock"`
	Purchased  decimal.Decimal `json:"purchased"`
	Sold       decimal.Decimal `json:"sold"`
	Closing    decimal.Decimal `json:"closing_stock"`
}

// StockLedgerResponse the reconstructed ledger. InitialStock is the implied
// stock before any recorded event; a value that disagrees with the known
// opening stock points at drift between the snapshot and the event log.
type StockLedgerResponse struct {
	ProductID    string           `json:"product_id"`
	ProductName  string           `json:"product_name"`
	Unit         string           `json:"unit,omitempty"`
	InitialStock decimal.Decimal  `json:"initial_stock"`
	Opening      decimal.Decimal  `json:"opening_stock"`
	Current      decimal.Decimal  `json:"current_stock"`
	Rows         []StockLedgerRow `json:"rows"`
	Page         PageResponse     `json:"page"`
}

// DashboardResponse headline figures for the current month.
type DashboardResponse struct {
	InvoiceCount  int               `json:"invoice_count"`
	SalesSubtotal decimal.Decimal   `json:"sales_subtotal"`
	SalesTax      decimal.Decimal   `json:"sales_tax"`
	SalesTotal    decimal.Decimal   `json:"sales_total"`
	ProductCount  int               `json:"product_count"`
	CustomerCount int               `json:"customer_count"`
	LowStock      []ProductResponse `json:"low_stock"`
}
