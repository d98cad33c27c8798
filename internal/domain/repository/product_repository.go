package repository

import (
	"github.com/shopspring/decimal"

	"github.com/nivaanlabs/gstbill-api/internal/domain/entity"
)

// ProductRepository defines the persistence port for Product.
// Quantity is never set through Update; stock changes go through
// AdjustQuantity inside the purchase/invoice transactions.
type ProductRepository interface {
	Create(product *entity.Product) error
	GetByID(id string) (*entity.Product, error)
	GetBySKU(businessID, sku string) (*entity.Product, error)
	Update(product *entity.Product) error
	// GetForUpdate locks the product row (SELECT ... FOR UPDATE) so
	// concurrent stock mutations serialize. Only valid inside a tx.
	GetForUpdate(id string) (*entity.Product, error)
	// AdjustQuantity adds delta (negative to debit) to the on-hand quantity.
	AdjustQuantity(id string, delta decimal.Decimal) error
	ListByBusiness(businessID string, limit, offset int) ([]*entity.Product, error)
	ListAllByBusiness(businessID string) ([]*entity.Product, error)
	CountByBusiness(businessID string) (int, error)
	Delete(id string) error
}
