package billing

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nivaanlabs/gstbill-api/internal/application/dto"
	"github.com/nivaanlabs/gstbill-api/internal/domain"
	"github.com/nivaanlabs/gstbill-api/internal/domain/entity"
	"github.com/nivaanlabs/gstbill-api/internal/domain/repository"
)

// store is the shared in-memory state behind the fake repositories.
type store struct {
	products  map[string]*entity.Product
	customers map[string]*entity.Customer
	invoices  map[string]*entity.Invoice
	items     map[string][]*entity.InvoiceItem
	sequences map[string]int64
}

func newStore() *store {
	return &store{
		products:  map[string]*entity.Product{},
		customers: map[string]*entity.Customer{},
		invoices:  map[string]*entity.Invoice{},
		items:     map[string][]*entity.InvoiceItem{},
		sequences: map[string]int64{},
	}
}

type storeProductRepo struct{ s *store }

func (r *storeProductRepo) Create(p *entity.Product) error { r.s.products[p.ID] = p; return nil }
func (r *storeProductRepo) GetByID(id string) (*entity.Product, error) {
	return r.s.products[id], nil
}
func (r *storeProductRepo) GetBySKU(string, string) (*entity.Product, error) { return nil, nil }
func (r *storeProductRepo) Update(*entity.Product) error                     { return nil }
func (r *storeProductRepo) GetForUpdate(id string) (*entity.Product, error) {
	if p := r.s.products[id]; p != nil {
		return p, nil
	}
	return nil, domain.ErrNotFound
}
func (r *storeProductRepo) AdjustQuantity(id string, delta decimal.Decimal) error {
	p := r.s.products[id]
	if p == nil {
		return domain.ErrNotFound
	}
	p.Quantity = p.Quantity.Add(delta)
	return nil
}
func (r *storeProductRepo) ListByBusiness(string, int, int) ([]*entity.Product, error) {
	return nil, nil
}
func (r *storeProductRepo) ListAllByBusiness(string) ([]*entity.Product, error) { return nil, nil }
func (r *storeProductRepo) CountByBusiness(string) (int, error)                 { return 0, nil }
func (r *storeProductRepo) Delete(string) error                                 { return nil }

type storeCustomerRepo struct{ s *store }

func (r *storeCustomerRepo) Create(c *entity.Customer) error { r.s.customers[c.ID] = c; return nil }
func (r *storeCustomerRepo) GetByID(id string) (*entity.Customer, error) {
	return r.s.customers[id], nil
}
func (r *storeCustomerRepo) GetByBusinessAndPhone(string, string) (*entity.Customer, error) {
	return nil, nil
}
func (r *storeCustomerRepo) Update(*entity.Customer) error { return nil }
func (r *storeCustomerRepo) ListByBusiness(string, int, int) ([]*entity.Customer, error) {
	return nil, nil
}
func (r *storeCustomerRepo) ListAllByBusiness(string) ([]*entity.Customer, error) {
	return nil, nil
}
func (r *storeCustomerRepo) Delete(string) error { return nil }

type storeInvoiceRepo struct{ s *store }

func (r *storeInvoiceRepo) Create(inv *entity.Invoice, items []*entity.InvoiceItem) error {
	r.s.invoices[inv.ID] = inv
	r.s.items[inv.ID] = items
	return nil
}
func (r *storeInvoiceRepo) GetByID(id string) (*entity.Invoice, error) {
	return r.s.invoices[id], nil
}
func (r *storeInvoiceRepo) GetItemsByInvoiceID(id string) ([]*entity.InvoiceItem, error) {
	return r.s.items[id], nil
}
func (r *storeInvoiceRepo) ListByBusiness(string, int, int) ([]*entity.Invoice, error) {
	return nil, nil
}
func (r *storeInvoiceRepo) NextNumber(businessID, prefix string) (int64, error) {
	key := businessID + "/" + prefix
	r.s.sequences[key]++
	return r.s.sequences[key], nil
}
func (r *storeInvoiceRepo) ListSalesByProduct(string) ([]repository.SaleEvent, error) {
	return nil, nil
}
func (r *storeInvoiceRepo) Delete(id string) error {
	delete(r.s.invoices, id)
	delete(r.s.items, id)
	return nil
}

// fakeTxRunner snapshots the store before running the callback and restores
// it when the callback fails, emulating a rollback.
type fakeTxRunner struct{ s *store }

func (f *fakeTxRunner) RunBilling(_ context.Context, fn func(
	invoiceRepo repository.InvoiceRepository,
	productRepo repository.ProductRepository,
) error) error {
	snapshot := map[string]decimal.Decimal{}
	for id, p := range f.s.products {
		snapshot[id] = p.Quantity
	}
	seqs := map[string]int64{}
	for k, v := range f.s.sequences {
		seqs[k] = v
	}
	if err := fn(&storeInvoiceRepo{s: f.s}, &storeProductRepo{s: f.s}); err != nil {
		for id, q := range snapshot {
			f.s.products[id].Quantity = q
		}
		f.s.sequences = seqs
		return err
	}
	return nil
}

func setup() (*store, *InvoiceUseCase) {
	s := newStore()
	s.customers["c1"] = &entity.Customer{ID: "c1", BusinessID: "b1", Name: "Sharma Traders"}
	s.products["p1"] = &entity.Product{
		ID: "p1", BusinessID: "b1", Name: "LED Bulb",
		SalePrice: decimal.NewFromInt(100),
		GSTRate:   decimal.NewFromFloat(0.18),
		Quantity:  decimal.NewFromInt(10),
	}
	uc := NewInvoiceUseCase(
		&fakeTxRunner{s: s},
		&storeCustomerRepo{s: s},
		&storeProductRepo{s: s},
		&storeInvoiceRepo{s: s},
		"INV-",
	)
	return s, uc
}

func TestCreateInvoice_ComputesTotalsAndDebitsStock(t *testing.T) {
	s, uc := setup()

	out, err := uc.Create(context.Background(), "b1", dto.CreateInvoiceRequest{
		CustomerID: "c1",
		Items: []dto.CreateInvoiceItemRequest{
			{ProductID: "p1", Quantity: decimal.NewFromInt(2)},
		},
	})
	require.NoError(t, err)

	assert.Equal(t, "INV-0001", out.Number)
	assert.True(t, out.Subtotal.Equal(decimal.NewFromInt(200)))
	assert.True(t, out.CGSTTotal.Equal(decimal.NewFromInt(18)))
	assert.True(t, out.SGSTTotal.Equal(decimal.NewFromInt(18)))
	assert.True(t, out.GrandTotal.Equal(decimal.NewFromInt(236)))
	require.Len(t, out.Items, 1)
	assert.True(t, out.Items[0].UnitPrice.Equal(decimal.NewFromInt(100)), "falls back to the catalog sale price")

	assert.True(t, s.products["p1"].Quantity.Equal(decimal.NewFromInt(8)), "stock debited by sold quantity")
}

func TestCreateInvoice_SequentialNumbers(t *testing.T) {
	_, uc := setup()

	req := dto.CreateInvoiceRequest{
		CustomerID: "c1",
		Items:      []dto.CreateInvoiceItemRequest{{ProductID: "p1", Quantity: decimal.NewFromInt(1)}},
	}
	first, err := uc.Create(context.Background(), "b1", req)
	require.NoError(t, err)
	second, err := uc.Create(context.Background(), "b1", req)
	require.NoError(t, err)

	assert.Equal(t, "INV-0001", first.Number)
	assert.Equal(t, "INV-0002", second.Number)
}

func TestCreateInvoice_InsufficientStockAbortsWholeInvoice(t *testing.T) {
	s, uc := setup()
	s.products["p2"] = &entity.Product{
		ID: "p2", BusinessID: "b1",
		SalePrice: decimal.NewFromInt(50),
		GSTRate:   decimal.NewFromFloat(0.05),
		Quantity:  decimal.NewFromInt(1),
	}

	_, err := uc.Create(context.Background(), "b1", dto.CreateInvoiceRequest{
		CustomerID: "c1",
		Items: []dto.CreateInvoiceItemRequest{
			{ProductID: "p1", Quantity: decimal.NewFromInt(3)},
			{ProductID: "p2", Quantity: decimal.NewFromInt(5)},
		},
	})
	require.ErrorIs(t, err, domain.ErrInsufficientStock)

	assert.True(t, s.products["p1"].Quantity.Equal(decimal.NewFromInt(10)), "first line's debit rolls back")
	assert.True(t, s.products["p2"].Quantity.Equal(decimal.NewFromInt(1)))
	assert.Empty(t, s.invoices)
}

func TestCreateInvoice_ExplicitUnitPriceWins(t *testing.T) {
	_, uc := setup()

	out, err := uc.Create(context.Background(), "b1", dto.CreateInvoiceRequest{
		CustomerID: "c1",
		Items: []dto.CreateInvoiceItemRequest{
			{ProductID: "p1", Quantity: decimal.NewFromInt(1), UnitPrice: decimal.NewFromInt(90)},
		},
	})
	require.NoError(t, err)

	assert.True(t, out.Subtotal.Equal(decimal.NewFromInt(90)))
}

func TestCreateInvoice_InclusiveRateBacksOutTax(t *testing.T) {
	_, uc := setup()

	// 118 inclusive at 18% GST -> 100 pre-tax
	out, err := uc.Create(context.Background(), "b1", dto.CreateInvoiceRequest{
		CustomerID: "c1",
		Items: []dto.CreateInvoiceItemRequest{
			{ProductID: "p1", Quantity: decimal.NewFromInt(2), InclusiveRate: decimal.NewFromInt(118)},
		},
	})
	require.NoError(t, err)

	assert.True(t, out.Subtotal.Equal(decimal.NewFromInt(200)))
	assert.True(t, out.GrandTotal.Equal(decimal.NewFromInt(236)))
}

func TestCreateInvoice_Validation(t *testing.T) {
	_, uc := setup()
	ctx := context.Background()

	_, err := uc.Create(ctx, "b1", dto.CreateInvoiceRequest{CustomerID: "c1"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "at least one item required")

	_, err = uc.Create(ctx, "b1", dto.CreateInvoiceRequest{
		CustomerID: "c1",
		Items:      []dto.CreateInvoiceItemRequest{{ProductID: "p1", Quantity: decimal.Zero}},
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "quantity must be positive")

	_, err = uc.Create(ctx, "b1", dto.CreateInvoiceRequest{
		CustomerID: "missing",
		Items:      []dto.CreateInvoiceItemRequest{{ProductID: "p1", Quantity: decimal.NewFromInt(1)}},
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = uc.Create(ctx, "other-business", dto.CreateInvoiceRequest{
		CustomerID: "c1",
		Items:      []dto.CreateInvoiceItemRequest{{ProductID: "p1", Quantity: decimal.NewFromInt(1)}},
	})
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestDeleteInvoice_CreditsStockBack(t *testing.T) {
	s, uc := setup()
	ctx := context.Background()

	out, err := uc.Create(ctx, "b1", dto.CreateInvoiceRequest{
		CustomerID: "c1",
		Items:      []dto.CreateInvoiceItemRequest{{ProductID: "p1", Quantity: decimal.NewFromInt(4)}},
	})
	require.NoError(t, err)
	require.True(t, s.products["p1"].Quantity.Equal(decimal.NewFromInt(6)))

	require.NoError(t, uc.Delete(ctx, "b1", out.ID))

	assert.True(t, s.products["p1"].Quantity.Equal(decimal.NewFromInt(10)), "deleting the invoice restores stock")
	assert.Empty(t, s.invoices)
}
