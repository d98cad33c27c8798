package inventory

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/nivaanlabs/gstbill-api/internal/application/dto"
	"github.com/nivaanlabs/gstbill-api/internal/domain"
	"github.com/nivaanlabs/gstbill-api/internal/domain/entity"
	"github.com/nivaanlabs/gstbill-api/internal/domain/repository"
)

// PurchaseUseCase records, edits and deletes purchase events. Every
// operation that changes a quantity runs in one transaction with the
// product row locked, so the on-hand snapshot and the event log cannot
// drift apart.
type PurchaseUseCase struct {
	txRunner    TxRunner
	productRepo repository.ProductRepository
	repo        repository.PurchaseRepository
}

// NewPurchaseUseCase builds the use case.
func NewPurchaseUseCase(txRunner TxRunner, productRepo repository.ProductRepository, repo repository.PurchaseRepository) *PurchaseUseCase {
	return &PurchaseUseCase{txRunner: txRunner, productRepo: productRepo, repo: repo}
}

// Create records a purchase and credits the product's on-hand quantity in
// the same transaction.
func (uc *PurchaseUseCase) Create(ctx context.Context, businessID string, in dto.CreatePurchaseRequest) (*dto.PurchaseResponse, error) {
	if in.ProductID == "" || !in.Quantity.GreaterThan(decimal.Zero) {
		return nil, domain.ErrInvalidInput
	}
	if in.UnitCost.LessThan(decimal.Zero) {
		return nil, domain.ErrInvalidInput
	}
	if in.Date.IsZero() {
		return nil, domain.ErrInvalidInput
	}
	product, err := uc.productRepo.GetByID(in.ProductID)
	if err != nil || product == nil {
		return nil, domain.ErrNotFound
	}
	if product.BusinessID != businessID {
		return nil, domain.ErrForbidden
	}

	now := time.Now()
	purchase := &entity.Purchase{
		ID:         uuid.New().String(),
		BusinessID: businessID,
		ProductID:  in.ProductID,
		Date:       in.Date,
		Quantity:   in.Quantity,
		UnitCost:   in.UnitCost,
		Reference:  in.Reference,
		Notes:      in.Notes,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	err = uc.txRunner.Run(ctx, func(
		purchaseRepo repository.PurchaseRepository,
		productRepo repository.ProductRepository,
	) error {
		if _, err := productRepo.GetForUpdate(in.ProductID); err != nil {
			return err
		}
		if err := purchaseRepo.Create(purchase); err != nil {
			return err
		}
		return productRepo.AdjustQuantity(in.ProductID, in.Quantity)
	})
	if err != nil {
		return nil, err
	}
	return toPurchaseResponse(purchase), nil
}

// Update edits a purchase. A quantity change applies the delta to the
// product's on-hand stock inside the transaction.
func (uc *PurchaseUseCase) Update(ctx context.Context, businessID, id string, in dto.UpdatePurchaseRequest) (*dto.PurchaseResponse, error) {
	purchase, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if purchase == nil {
		return nil, nil
	}
	if purchase.BusinessID != businessID {
		return nil, domain.ErrForbidden
	}

	delta := decimal.Zero
	if in.Quantity != nil {
		if !in.Quantity.GreaterThan(decimal.Zero) {
			return nil, domain.ErrInvalidInput
		}
		delta = in.Quantity.Sub(purchase.Quantity)
		purchase.Quantity = *in.Quantity
	}
	if in.Date != nil {
		if in.Date.IsZero() {
			return nil, domain.ErrInvalidInput
		}
		purchase.Date = *in.Date
	}
	if in.UnitCost != nil {
		purchase.UnitCost = *in.UnitCost
	}
	if in.Reference != nil {
		purchase.Reference = *in.Reference
	}
	if in.Notes != nil {
		purchase.Notes = *in.Notes
	}
	purchase.UpdatedAt = time.Now()

	err = uc.txRunner.Run(ctx, func(
		purchaseRepo repository.PurchaseRepository,
		productRepo repository.ProductRepository,
	) error {
		product, err := productRepo.GetForUpdate(purchase.ProductID)
		if err != nil {
			return err
		}
		// shrinking the purchase must not push on-hand stock below zero
		if delta.IsNegative() && product.Quantity.Add(delta).IsNegative() {
			return domain.ErrInsufficientStock
		}
		if err := purchaseRepo.Update(purchase); err != nil {
			return err
		}
		if !delta.IsZero() {
			return productRepo.AdjustQuantity(purchase.ProductID, delta)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return toPurchaseResponse(purchase), nil
}

// Delete removes a purchase and debits its quantity back off the product's
// on-hand stock.
func (uc *PurchaseUseCase) Delete(ctx context.Context, businessID, id string) error {
	purchase, err := uc.repo.GetByID(id)
	if err != nil {
		return err
	}
	if purchase == nil {
		return domain.ErrNotFound
	}
	if purchase.BusinessID != businessID {
		return domain.ErrForbidden
	}
	return uc.txRunner.Run(ctx, func(
		purchaseRepo repository.PurchaseRepository,
		productRepo repository.ProductRepository,
	) error {
		product, err := productRepo.GetForUpdate(purchase.ProductID)
		if err != nil {
			return err
		}
		// the credited quantity may already have been sold
		if product.Quantity.LessThan(purchase.Quantity) {
			return domain.ErrInsufficientStock
		}
		if err := purchaseRepo.Delete(id); err != nil {
			return err
		}
		return productRepo.AdjustQuantity(purchase.ProductID, purchase.Quantity.Neg())
	})
}

// GetByID returns a purchase, scoped to the business.
func (uc *PurchaseUseCase) GetByID(businessID, id string) (*dto.PurchaseResponse, error) {
	purchase, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if purchase == nil {
		return nil, nil
	}
	if purchase.BusinessID != businessID {
		return nil, domain.ErrForbidden
	}
	return toPurchaseResponse(purchase), nil
}

// List lists purchases with optional product and date filters.
func (uc *PurchaseUseCase) List(businessID string, f repository.PurchaseFilter, limit, offset int) (*dto.PurchaseListResponse, error) {
	list, err := uc.repo.ListByBusiness(businessID, f, limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.PurchaseResponse, 0, len(list))
	for _, p := range list {
		items = append(items, *toPurchaseResponse(p))
	}
	return &dto.PurchaseListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: limit, Offset: offset},
	}, nil
}

func toPurchaseResponse(p *entity.Purchase) *dto.PurchaseResponse {
	if p == nil {
		return nil
	}
	return &dto.PurchaseResponse{
		ID:        p.ID,
		ProductID: p.ProductID,
		Date:      p.Date,
		Quantity:  p.Quantity,
		UnitCost:  p.UnitCost,
		Reference: p.Reference,
		Notes:     p.Notes,
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}
}
