package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreatePurchaseRequest input to record a purchase (stock in).
type CreatePurchaseRequest struct {
	ProductID string          `json:"product_id" validate:"required"`
	Date      time.Time       `json:"date" validate:"required"`
	Quantity  decimal.Decimal `json:"quantity" validate:"required"`
	UnitCost  decimal.Decimal `json:"unit_cost"`
	Reference string          `json:"reference"`
	Notes     string          `json:"notes"`
}

// UpdatePurchaseRequest input to edit a purchase. A quantity change applies
// the delta to the product's on-hand stock.
type UpdatePurchaseRequest struct {
	Date      *time.Time       `json:"date"`
	Quantity  *decimal.Decimal `json:"quantity"`
	UnitCost  *decimal.Decimal `json:"unit_cost"`
	Reference *string          `json:"reference"`
	Notes     *string          `json:"notes"`
}

// PurchaseResponse output for a purchase.
type PurchaseResponse struct {
	ID        string          `json:"id"`
	ProductID string          `json:"product_id"`
	Date      time.Time       `json:"date"`
	Quantity  decimal.Decimal `json:"quantity"`
	UnitCost  decimal.Decimal `json:"unit_cost"`
	Reference string          `json:"reference,omitempty"`
	Notes     string          `json:"notes,omitempty"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// PurchaseListResponse paginated purchase list.
type PurchaseListResponse struct {
	Items []PurchaseResponse `json:"items"`
	Page  PageResponse       `json:"page"`
}
