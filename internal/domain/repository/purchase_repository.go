package repository

import (
	"time"

	"github.com/nivaanlabs/gstbill-api/internal/domain/entity"
)

// PurchaseFilter narrows purchase listings. Zero values mean "no filter";
// From/To are inclusive day bounds.
type PurchaseFilter struct {
	ProductID string
	From      time.Time
	To        time.Time
}

// PurchaseRepository defines the persistence port for Purchase events.
type PurchaseRepository interface {
	Create(purchase *entity.Purchase) error
	GetByID(id string) (*entity.Purchase, error)
	Update(purchase *entity.Purchase) error
	ListByBusiness(businessID string, f PurchaseFilter, limit, offset int) ([]*entity.Purchase, error)
	// ListByProduct returns the complete purchase history of a product,
	// unpaginated, for ledger reconstruction.
	ListByProduct(productID string) ([]*entity.Purchase, error)
	Delete(id string) error
}
