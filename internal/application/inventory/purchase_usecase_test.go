package inventory

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nivaanlabs/gstbill-api/internal/application/dto"
	"github.com/nivaanlabs/gstbill-api/internal/domain"
	"github.com/nivaanlabs/gstbill-api/internal/domain/entity"
	"github.com/nivaanlabs/gstbill-api/internal/domain/repository"
)

type stockStore struct {
	products  map[string]*entity.Product
	purchases map[string]*entity.Purchase
}

func newStockStore() *stockStore {
	return &stockStore{
		products:  map[string]*entity.Product{},
		purchases: map[string]*entity.Purchase{},
	}
}

type stockProductRepo struct{ s *stockStore }

func (r *stockProductRepo) Create(p *entity.Product) error { r.s.products[p.ID] = p; return nil }
func (r *stockProductRepo) GetByID(id string) (*entity.Product, error) {
	return r.s.products[id], nil
}
func (r *stockProductRepo) GetBySKU(string, string) (*entity.Product, error) { return nil, nil }
func (r *stockProductRepo) Update(*entity.Product) error                     { return nil }
func (r *stockProductRepo) GetForUpdate(id string) (*entity.Product, error) {
	if p := r.s.products[id]; p != nil {
		return p, nil
	}
	return nil, domain.ErrNotFound
}
func (r *stockProductRepo) AdjustQuantity(id string, delta decimal.Decimal) error {
	p := r.s.products[id]
	if p == nil {
		return domain.ErrNotFound
	}
	p.Quantity = p.Quantity.Add(delta)
	return nil
}
func (r *stockProductRepo) ListByBusiness(string, int, int) ([]*entity.Product, error) {
	return nil, nil
}
func (r *stockProductRepo) ListAllByBusiness(string) ([]*entity.Product, error) { return nil, nil }
func (r *stockProductRepo) CountByBusiness(string) (int, error)                 { return 0, nil }
func (r *stockProductRepo) Delete(string) error                                 { return nil }

type stockPurchaseRepo struct{ s *stockStore }

func (r *stockPurchaseRepo) Create(p *entity.Purchase) error { r.s.purchases[p.ID] = p; return nil }
func (r *stockPurchaseRepo) GetByID(id string) (*entity.Purchase, error) {
	p := r.s.purchases[id]
	if p == nil {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}
func (r *stockPurchaseRepo) Update(p *entity.Purchase) error { r.s.purchases[p.ID] = p; return nil }
func (r *stockPurchaseRepo) ListByBusiness(string, repository.PurchaseFilter, int, int) ([]*entity.Purchase, error) {
	return nil, nil
}
func (r *stockPurchaseRepo) ListByProduct(string) ([]*entity.Purchase, error) { return nil, nil }
func (r *stockPurchaseRepo) Delete(id string) error {
	delete(r.s.purchases, id)
	return nil
}

// stockTxRunner snapshots quantities before the callback and restores them
// when it fails, emulating a rollback.
type stockTxRunner struct{ s *stockStore }

func (f *stockTxRunner) Run(_ context.Context, fn func(
	purchaseRepo repository.PurchaseRepository,
	productRepo repository.ProductRepository,
) error) error {
	snapshot := map[string]decimal.Decimal{}
	for id, p := range f.s.products {
		snapshot[id] = p.Quantity
	}
	if err := fn(&stockPurchaseRepo{s: f.s}, &stockProductRepo{s: f.s}); err != nil {
		for id, q := range snapshot {
			f.s.products[id].Quantity = q
		}
		return err
	}
	return nil
}

func setupPurchase() (*stockStore, *PurchaseUseCase) {
	s := newStockStore()
	s.products["p1"] = &entity.Product{
		ID: "p1", BusinessID: "b1", Name: "LED Bulb",
		Quantity: decimal.NewFromInt(10),
	}
	uc := NewPurchaseUseCase(&stockTxRunner{s: s}, &stockProductRepo{s: s}, &stockPurchaseRepo{s: s})
	return s, uc
}

func purchaseDate() time.Time {
	return time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC)
}

func TestCreatePurchase_CreditsStock(t *testing.T) {
	s, uc := setupPurchase()

	out, err := uc.Create(context.Background(), "b1", dto.CreatePurchaseRequest{
		ProductID: "p1",
		Date:      purchaseDate(),
		Quantity:  decimal.NewFromInt(5),
		Reference: "PO-7",
	})
	require.NoError(t, err)
	assert.True(t, out.Quantity.Equal(decimal.NewFromInt(5)))
	assert.True(t, s.products["p1"].Quantity.Equal(decimal.NewFromInt(15)))
}

func TestCreatePurchase_ZeroDateRejected(t *testing.T) {
	_, uc := setupPurchase()

	_, err := uc.Create(context.Background(), "b1", dto.CreatePurchaseRequest{
		ProductID: "p1",
		Quantity:  decimal.NewFromInt(5),
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestUpdatePurchase_ShrinkBelowStockRejected(t *testing.T) {
	s, uc := setupPurchase()
	ctx := context.Background()

	out, err := uc.Create(ctx, "b1", dto.CreatePurchaseRequest{
		ProductID: "p1",
		Date:      purchaseDate(),
		Quantity:  decimal.NewFromInt(20),
	})
	require.NoError(t, err)
	require.True(t, s.products["p1"].Quantity.Equal(decimal.NewFromInt(30)))

	// pretend most of the stock was sold since the purchase
	s.products["p1"].Quantity = decimal.NewFromInt(3)

	one := decimal.NewFromInt(1)
	_, err = uc.Update(ctx, "b1", out.ID, dto.UpdatePurchaseRequest{Quantity: &one})
	require.ErrorIs(t, err, domain.ErrInsufficientStock)
	assert.True(t, s.products["p1"].Quantity.Equal(decimal.NewFromInt(3)), "failed update leaves stock untouched")
	assert.True(t, s.purchases[out.ID].Quantity.Equal(decimal.NewFromInt(20)))
}

func TestUpdatePurchase_GrowAppliesDelta(t *testing.T) {
	s, uc := setupPurchase()
	ctx := context.Background()

	out, err := uc.Create(ctx, "b1", dto.CreatePurchaseRequest{
		ProductID: "p1",
		Date:      purchaseDate(),
		Quantity:  decimal.NewFromInt(5),
	})
	require.NoError(t, err)

	eight := decimal.NewFromInt(8)
	updated, err := uc.Update(ctx, "b1", out.ID, dto.UpdatePurchaseRequest{Quantity: &eight})
	require.NoError(t, err)
	assert.True(t, updated.Quantity.Equal(eight))
	assert.True(t, s.products["p1"].Quantity.Equal(decimal.NewFromInt(18)))
}

func TestUpdatePurchase_ZeroDateRejected(t *testing.T) {
	_, uc := setupPurchase()
	ctx := context.Background()

	out, err := uc.Create(ctx, "b1", dto.CreatePurchaseRequest{
		ProductID: "p1",
		Date:      purchaseDate(),
		Quantity:  decimal.NewFromInt(5),
	})
	require.NoError(t, err)

	var zero time.Time
	_, err = uc.Update(ctx, "b1", out.ID, dto.UpdatePurchaseRequest{Date: &zero})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestDeletePurchase_SoldStockRejected(t *testing.T) {
	s, uc := setupPurchase()
	ctx := context.Background()

	out, err := uc.Create(ctx, "b1", dto.CreatePurchaseRequest{
		ProductID: "p1",
		Date:      purchaseDate(),
		Quantity:  decimal.NewFromInt(20),
	})
	require.NoError(t, err)

	s.products["p1"].Quantity = decimal.NewFromInt(12)

	err = uc.Delete(ctx, "b1", out.ID)
	require.ErrorIs(t, err, domain.ErrInsufficientStock)
	assert.True(t, s.products["p1"].Quantity.Equal(decimal.NewFromInt(12)))
	assert.NotNil(t, s.purchases[out.ID], "failed delete keeps the purchase")
}

func TestDeletePurchase_DebitsStockBack(t *testing.T) {
	s, uc := setupPurchase()
	ctx := context.Background()

	out, err := uc.Create(ctx, "b1", dto.CreatePurchaseRequest{
		ProductID: "p1",
		Date:      purchaseDate(),
		Quantity:  decimal.NewFromInt(5),
	})
	require.NoError(t, err)
	require.True(t, s.products["p1"].Quantity.Equal(decimal.NewFromInt(15)))

	require.NoError(t, uc.Delete(ctx, "b1", out.ID))
	assert.True(t, s.products["p1"].Quantity.Equal(decimal.NewFromInt(10)))
	assert.Nil(t, s.purchases[out.ID])
}
