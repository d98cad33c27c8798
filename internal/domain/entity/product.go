package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product represents a product or SKU of the catalog.
// Quantity is the authoritative on-hand snapshot: it equals the initial stock
// plus all purchase quantities minus all sale quantities over the product's
// entire history. It is only mutated inside the same transaction that records
// the purchase or invoice causing the change.
type Product struct {
	ID            string
	BusinessID    string
	SKU           string // unique per business
	Name          string
	Description   string
	HSNCode       string
	CategoryID    string // empty = uncategorized
	UnitID        string
	SalePrice     decimal.Decimal // pre-tax unit price
	GSTRate       decimal.Decimal // fraction: 0, 0.05, 0.12, 0.18, 0.28
	Quantity      decimal.Decimal // current on-hand stock
	LowStockLevel decimal.Decimal // dashboard warning threshold
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// AllowedGSTRates are the GST slabs a product may carry, as fractions.
func AllowedGSTRates() []decimal.Decimal {
	return []decimal.Decimal{
		decimal.Zero,
		decimal.NewFromFloat(0.05),
		decimal.NewFromFloat(0.12),
		decimal.NewFromFloat(0.18),
		decimal.NewFromFloat(0.28),
	}
}

// IsAllowedGSTRate reports whether rate is one of the GST slabs.
func IsAllowedGSTRate(rate decimal.Decimal) bool {
	for _, r := range AllowedGSTRates() {
		if rate.Equal(r) {
			return true
		}
	}
	return false
}
