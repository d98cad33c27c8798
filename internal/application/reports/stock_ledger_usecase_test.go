package reports

import (
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

type fakeProductRepo struct {
	product *entity.Product
}

func (f *fakeProductRepo) GetByID(id string) (*entity.Product, error) {
	if f.product != nil && f.product.ID == id {
		return f.product, nil
	}
	return nil, nil
}
func (f *fakeProductRepo) Create(*entity.Product) error                 { return nil }
func (f *fakeProductRepo) GetBySKU(string, string) (*entity.Product, error) {
	return nil, nil
}
func (f *fakeProductRepo) Update(*entity.Product) error                 { return nil }
func (f *fakeProductRepo) GetForUpdate(string) (*entity.Product, error) { return nil, nil }
func (f *fakeProductRepo) AdjustQuantity(string, decimal.Decimal) error { return nil }
func (f *fakeProductRepo) ListByBusiness(string, int, int) ([]*entity.Product, error) {
	return nil, nil
}
func (f *fakeProductRepo) ListAllByBusiness(string) ([]*entity.Product, error) { return nil, nil }
func (f *fakeProductRepo) CountByBusiness(string) (int, error)                 { return 0, nil }
func (f *fakeProductRepo) Delete(string) error                                 { return nil }

type fakePurchaseRepo struct {
	purchases []*entity.Purchase
}

func (f *fakePurchaseRepo) ListByProduct(string) ([]*entity.Purchase, error) {
	return f.purchases, nil
}
func (f *fakePurchaseRepo) Create(*entity.Purchase) error              { return nil }
func (f *fakePurchaseRepo) GetByID(string) (*entity.Purchase, error)   { return nil, nil }
func (f *fakePurchaseRepo) Update(*entity.Purchase) error              { return nil }
func (f *fakePurchaseRepo) ListByBusiness(string, repository.PurchaseFilter, int, int) ([]*entity.Purchase, error) {
	return nil, nil
}
func (f *fakePurchaseRepo) Delete(string) error { return nil }

type fakeInvoiceRepo struct {
	sales []repository.SaleEvent
}

func (f *fakeInvoiceRepo) ListSalesByProduct(string) ([]repository.SaleEvent, error) {
	return f.sales, nil
}
func (f *fakeInvoiceRepo) Create(*entity.Invoice, []*entity.InvoiceItem) error { return nil }
func (f *fakeInvoiceRepo) GetByID(string) (*entity.Invoice, error)             { return nil, nil }
func (f *fakeInvoiceRepo) GetItemsByInvoiceID(string) ([]*entity.InvoiceItem, error) {
	return nil, nil
}
func (f *fakeInvoiceRepo) ListByBusiness(string, int, int) ([]*entity.Invoice, error) {
	return nil, nil
}
func (f *fakeInvoiceRepo) NextNumber(string, string) (int64, error) { return 0, nil }
func (f *fakeInvoiceRepo) Delete(string) error                      { return nil }

type fakeUnitRepo struct {
	unit *entity.Unit
}

func (f *fakeUnitRepo) GetByID(id string) (*entity.Unit, error) {
	if f.unit != nil && f.unit.ID == id {
		return f.unit, nil
	}
	return nil, nil
}
func (f *fakeUnitRepo) Create(*entity.Unit) error { return nil }
func (f *fakeUnitRepo) Update(*entity.Unit) error { return nil }
func (f *fakeUnitRepo) ListByBusiness(string, int, int) ([]*entity.Unit, error) {
	return nil, nil
}
func (f *fakeUnitRepo) Delete(string) error { return nil }

type fakeBusinessRepo struct{}

func (f *fakeBusinessRepo) Create(*entity.Business) error            { return nil }
func (f *fakeBusinessRepo) GetByID(string) (*entity.Business, error) { return nil, nil }
func (f *fakeBusinessRepo) Update(*entity.Business) error            { return nil }

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func buildUseCase(product *entity.Product, purchases []*entity.Purchase, sales []repository.SaleEvent) *StockLedgerUseCase {
	return NewStockLedgerUseCase(
		&fakeBusinessRepo{},
		&fakeProductRepo{product: product},
		&fakePurchaseRepo{purchases: purchases},
		&fakeInvoiceRepo{sales: sales},
		&fakeUnitRepo{unit: &entity.Unit{ID: "u1", Abbreviation: "kg"}},
		nil,
	)
}

func TestLedger_ReconstructsFromHistories(t *testing.T) {
	product := &entity.Product{
		ID: "p1", BusinessID: "b1", Name: "Rice", UnitID: "u1",
		Quantity: decimal.NewFromInt(50),
	}
	purchases := []*entity.Purchase{
		{ProductID: "p1", Date: day(2025, 1, 5), Quantity: decimal.NewFromInt(30), Reference: "PO-7"},
	}
	sales := []repository.SaleEvent{
		{InvoiceNumber: "INV-0001", Date: day(2025, 1, 10), Quantity: decimal.NewFromInt(10)},
	}
	uc := buildUseCase(product, purchases, sales)

	out, err := uc.Ledger("b1", dto.StockLedgerRequest{ProductID: "p1"})
	require.NoError(t, err)

	assert.True(t, out.InitialStock.Equal(decimal.NewFromInt(30)), "initial = 50 - (30 - 10)")
	assert.True(t, out.Current.Equal(decimal.NewFromInt(50)))
	assert.Equal(t, "kg", out.Unit)
	require.Len(t, out.Rows, 2)
	assert.Equal(t, []string{"PO-7"}, out.Rows[0].References)
	assert.True(t, out.Rows[0].Closing.Equal(decimal.NewFromInt(60)))
	assert.Equal(t, []string{"INV-0001"}, out.Rows[1].References)
	assert.True(t, out.Rows[1].Closing.Equal(decimal.NewFromInt(50)))
}

func TestLedger_Pagination(t *testing.T) {
	product := &entity.Product{ID: "p1", BusinessID: "b1", Quantity: decimal.NewFromInt(5)}
	var purchases []*entity.Purchase
	for i := 1; i <= 5; i++ {
		purchases = append(purchases, &entity.Purchase{
			ProductID: "p1", Date: day(2025, 2, i), Quantity: decimal.NewFromInt(1),
		})
	}
	uc := buildUseCase(product, purchases, nil)

	out, err := uc.Ledger("b1", dto.StockLedgerRequest{ProductID: "p1", Limit: 2, Offset: 2})
	require.NoError(t, err)

	assert.Equal(t, 5, out.Page.Total)
	require.Len(t, out.Rows, 2)
	assert.Equal(t, day(2025, 2, 3), out.Rows[0].Date)
	assert.Equal(t, day(2025, 2, 4), out.Rows[1].Date)
}

func TestLedger_WrongBusinessForbidden(t *testing.T) {
	product := &entity.Product{ID: "p1", BusinessID: "b1"}
	uc := buildUseCase(product, nil, nil)

	_, err := uc.Ledger("someone-else", dto.StockLedgerRequest{ProductID: "p1"})
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestLedger_UnknownProduct(t *testing.T) {
	uc := buildUseCase(nil, nil, nil)

	_, err := uc.Ledger("b1", dto.StockLedgerRequest{ProductID: "missing"})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestLedger_InvalidInputs(t *testing.T) {
	product := &entity.Product{ID: "p1", BusinessID: "b1"}
	uc := buildUseCase(product, nil, nil)

	_, err := uc.Ledger("b1", dto.StockLedgerRequest{})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "product_id is mandatory")

	_, err = uc.Ledger("b1", dto.StockLedgerRequest{ProductID: "p1", From: "05-01-2025"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "dates must be YYYY-MM-DD")

	_, err = uc.Ledger("b1", dto.StockLedgerRequest{ProductID: "p1", Granularity: "weekly"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestLedger_PerDayGranularity(t *testing.T) {
	product := &entity.Product{ID: "p1", BusinessID: "b1", Quantity: decimal.NewFromInt(8)}
	purchases := []*entity.Purchase{
		{ProductID: "p1", Date: day(2025, 3, 1).Add(9 * time.Hour), Quantity: decimal.NewFromInt(5), Reference: "PO-1"},
	}
	sales := []repository.SaleEvent{
		{InvoiceNumber: "INV-0002", Date: day(2025, 3, 1).Add(15 * time.Hour), Quantity: decimal.NewFromInt(2)},
	}
	uc := buildUseCase(product, purchases, sales)

	out, err := uc.Ledger("b1", dto.StockLedgerRequest{ProductID: "p1", Granularity: "day"})
	require.NoError(t, err)

	require.Len(t, out.Rows, 1, "same-day events collapse into one row")
	row := out.Rows[0]
	assert.True(t, row.Purchased.Equal(decimal.NewFromInt(5)))
	assert.True(t, row.Sold.Equal(decimal.NewFromInt(2)))
	assert.ElementsMatch(t, []string{"PO-1", "INV-0002"}, row.References)
	assert.True(t, row.Closing.Equal(decimal.NewFromInt(8)))
}
