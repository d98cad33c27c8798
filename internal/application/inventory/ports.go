package inventory

import (
	"context"

	"github.com/nivaanlabs/gstbill-api/internal/domain/repository"
)

// TxRunner runs a callback inside a database transaction with the stock
// repositories bound to that transaction. The implementation commits when
// fn returns nil and rolls back otherwise.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		purchaseRepo repository.PurchaseRepository,
		productRepo repository.ProductRepository,
	) error) error
}
