package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Purchase records a stock-increasing event for a product.
// Creating a purchase credits Product.Quantity in the same transaction;
// deleting one debits it back; editing applies the quantity delta.
type Purchase struct {
	ID         string
	BusinessID string
	ProductID  string
	Date       time.Time
	Quantity   decimal.Decimal // positive
	UnitCost   decimal.Decimal
	Reference  string // free-text label: supplier bill number, PO, etc.
	Notes      string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}
