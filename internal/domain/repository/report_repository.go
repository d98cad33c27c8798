package repository

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/nivaanlabs/gstbill-api/internal/domain/entity"
)

// SalesSummary aggregates invoices over a period.
type SalesSummary struct {
	InvoiceCount int
	Subtotal     decimal.Decimal
	Tax          decimal.Decimal
	GrandTotal   decimal.Decimal
}

// ReportRepository defines read-only aggregate queries for the dashboard.
type ReportRepository interface {
	SalesSummary(businessID string, from, to time.Time) (*SalesSummary, error)
	// LowStockProducts returns products whose on-hand quantity is at or
	// below their low-stock threshold.
	LowStockProducts(businessID string, limit int) ([]*entity.Product, error)
	CustomerCount(businessID string) (int, error)
	ProductCount(businessID string) (int, error)
}
