package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateProductRequest input to create a product.
type CreateProductRequest struct {
	SKU           string           `json:"sku" validate:"required,min=1,max=100"`
	Name          string           `json:"name" validate:"required,min=1,max=200"`
	Description   string           `json:"description"`
	HSNCode       string           `json:"hsn_code"`
	CategoryID    string           `json:"category_id"`
	UnitID        string           `json:"unit_id"`
	SalePrice     decimal.Decimal  `json:"sale_price"`
	GSTRate       decimal.Decimal  `json:"gst_rate"`
	Quantity      *decimal.Decimal `json:"quantity"` // opening stock; nil = zero
	LowStockLevel decimal.Decimal  `json:"low_stock_level"`
}

// UpdateProductRequest input to update a product. Quantity is absent on
// purpose: stock only moves through purchases and invoices.
type UpdateProductRequest struct {
	Name          *string          `json:"name" validate:"omitempty,min=1,max=200"`
	Description   *string          `json:"description"`
	HSNCode       *string          `json:"hsn_code"`
	CategoryID    *string          `json:"category_id"`
	UnitID        *string          `json:"unit_id"`
	SalePrice     *decimal.Decimal `json:"sale_price"`
	GSTRate       *decimal.Decimal `json:"gst_rate"`
	LowStockLevel *decimal.Decimal `json:"low_stock_level"`
}

// ProductResponse output for a product.
type ProductResponse struct {
	ID            string          `json:"id"`
	BusinessID    string          `json:"business_id"`
	SKU           string          `json:"sku"`
	Name          string          `json:"name"`
	Description   string          `json:"description"`
	HSNCode       string          `json:"hsn_code"`
	CategoryID    string          `json:"category_id,omitempty"`
	UnitID        string          `json:"unit_id,omitempty"`
	SalePrice     decimal.Decimal `json:"sale_price"`
	GSTRate       decimal.Decimal `json:"gst_rate"`
	Quantity      decimal.Decimal `json:"quantity"`
	LowStockLevel decimal.Decimal `json:"low_stock_level"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

// ProductListResponse paginated product list.
type ProductListResponse struct {
	Items []ProductResponse `json:"items"`
	Page  PageResponse      `json:"page"`
}
