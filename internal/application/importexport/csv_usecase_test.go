package importexport

import (
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nivaanlabs/gstbill-api/internal/domain/entity"
)

type fakeProductRepo struct {
	bySKU map[string]*entity.Product
}

func newFakeProductRepo() *fakeProductRepo {
	return &fakeProductRepo{bySKU: map[string]*entity.Product{}}
}

func (f *fakeProductRepo) Create(p *entity.Product) error {
	f.bySKU[p.SKU] = p
	return nil
}
func (f *fakeProductRepo) GetByID(string) (*entity.Product, error) { return nil, nil }
func (f *fakeProductRepo) GetBySKU(_, sku string) (*entity.Product, error) {
	return f.bySKU[sku], nil
}
func (f *fakeProductRepo) Update(*entity.Product) error                  { return nil }
func (f *fakeProductRepo) GetForUpdate(string) (*entity.Product, error)  { return nil, nil }
func (f *fakeProductRepo) AdjustQuantity(string, decimal.Decimal) error  { return nil }
func (f *fakeProductRepo) CountByBusiness(string) (int, error)           { return len(f.bySKU), nil }
func (f *fakeProductRepo) Delete(string) error                           { return nil }
func (f *fakeProductRepo) ListByBusiness(string, int, int) ([]*entity.Product, error) {
	return f.ListAllByBusiness("")
}
func (f *fakeProductRepo) ListAllByBusiness(string) ([]*entity.Product, error) {
	var out []*entity.Product
	for _, p := range f.bySKU {
		out = append(out, p)
	}
	return out, nil
}

type fakeCustomerRepo struct {
	byPhone map[string]*entity.Customer
}

func newFakeCustomerRepo() *fakeCustomerRepo {
	return &fakeCustomerRepo{byPhone: map[string]*entity.Customer{}}
}

func (f *fakeCustomerRepo) Create(c *entity.Customer) error {
	f.byPhone[c.Phone] = c
	return nil
}
func (f *fakeCustomerRepo) GetByID(string) (*entity.Customer, error) { return nil, nil }
func (f *fakeCustomerRepo) GetByBusinessAndPhone(_, phone string) (*entity.Customer, error) {
	return f.byPhone[phone], nil
}
func (f *fakeCustomerRepo) Update(*entity.Customer) error { return nil }
func (f *fakeCustomerRepo) Delete(string) error           { return nil }
func (f *fakeCustomerRepo) ListByBusiness(string, int, int) ([]*entity.Customer, error) {
	return f.ListAllByBusiness("")
}
func (f *fakeCustomerRepo) ListAllByBusiness(string) ([]*entity.Customer, error) {
	var out []*entity.Customer
	for _, c := range f.byPhone {
		out = append(out, c)
	}
	return out, nil
}

func TestImportProducts_ValidRows(t *testing.T) {
	products := newFakeProductRepo()
	uc := NewCSVUseCase(products, newFakeCustomerRepo())

	csvData := strings.Join([]string{
		"sku,name,description,hsn_code,sale_price,gst_rate,quantity,low_stock_level",
		"SKU-1,Basmati Rice,Premium grade,1006,120,0.05,50,10",
		"SKU-2,LED Bulb 9W,,8539,85.50,0.18,200,25",
	}, "\n")

	result, err := uc.ImportProducts("biz-1", strings.NewReader(csvData))
	require.NoError(t, err)

	assert.Equal(t, 2, result.Imported)
	assert.Equal(t, 0, result.Skipped)
	assert.Empty(t, result.Errors)

	rice := products.bySKU["SKU-1"]
	require.NotNil(t, rice)
	assert.Equal(t, "Basmati Rice", rice.Name)
	assert.True(t, rice.SalePrice.Equal(decimal.NewFromInt(120)))
	assert.True(t, rice.GSTRate.Equal(decimal.NewFromFloat(0.05)))
	assert.True(t, rice.Quantity.Equal(decimal.NewFromInt(50)))
}

func TestImportProducts_SkipsExistingSKU(t *testing.T) {
	products := newFakeProductRepo()
	products.bySKU["SKU-1"] = &entity.Product{SKU: "SKU-1", Name: "existing"}
	uc := NewCSVUseCase(products, newFakeCustomerRepo())

	csvData := strings.Join([]string{
		"sku,name,description,hsn_code,sale_price,gst_rate,quantity,low_stock_level",
		"SKU-1,Duplicate,,,10,0,1,0",
		"SKU-2,Fresh,,,10,0,1,0",
	}, "\n")

	result, err := uc.ImportProducts("biz-1", strings.NewReader(csvData))
	require.NoError(t, err)

	assert.Equal(t, 1, result.Imported)
	assert.Equal(t, 1, result.Skipped)
	assert.Equal(t, "existing", products.bySKU["SKU-1"].Name, "existing row must not be overwritten")
}

// A bad row is reported with its line number and the rest of the file still
// imports.
func TestImportProducts_BadRowsReportedPerLine(t *testing.T) {
	uc := NewCSVUseCase(newFakeProductRepo(), newFakeCustomerRepo())

	csvData := strings.Join([]string{
		"sku,name,description,hsn_code,sale_price,gst_rate,quantity,low_stock_level",
		",Missing SKU,,,10,0,1,0",
		"SKU-2,Bad rate,,,10,0.17,1,0",
		"SKU-3,Bad price,,,abc,0,1,0",
		"SKU-4,Good,,,10,0.12,1,0",
	}, "\n")

	result, err := uc.ImportProducts("biz-1", strings.NewReader(csvData))
	require.NoError(t, err)

	assert.Equal(t, 1, result.Imported)
	require.Len(t, result.Errors, 3)
	assert.Equal(t, 2, result.Errors[0].Line)
	assert.Equal(t, 3, result.Errors[1].Line)
	assert.Contains(t, result.Errors[1].Message, "gst_rate")
	assert.Equal(t, 4, result.Errors[2].Line)
}

func TestExportProducts_RoundTripsThroughImport(t *testing.T) {
	source := newFakeProductRepo()
	source.bySKU["SKU-9"] = &entity.Product{
		SKU: "SKU-9", Name: "Notebook", HSNCode: "4820",
		SalePrice: decimal.NewFromInt(40), GSTRate: decimal.NewFromFloat(0.12),
		Quantity: decimal.NewFromInt(15), LowStockLevel: decimal.NewFromInt(5),
	}
	uc := NewCSVUseCase(source, newFakeCustomerRepo())

	data, err := uc.ExportProducts("biz-1")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(data), "sku,name,description,hsn_code"))

	target := newFakeProductRepo()
	uc2 := NewCSVUseCase(target, newFakeCustomerRepo())
	result, err := uc2.ImportProducts("biz-2", strings.NewReader(string(data)))
	require.NoError(t, err)

	assert.Equal(t, 1, result.Imported)
	imported := target.bySKU["SKU-9"]
	require.NotNil(t, imported)
	assert.True(t, imported.GSTRate.Equal(decimal.NewFromFloat(0.12)))
	assert.True(t, imported.Quantity.Equal(decimal.NewFromInt(15)))
}

func TestImportCustomers_SkipsExistingPhone(t *testing.T) {
	customers := newFakeCustomerRepo()
	customers.byPhone["9876543210"] = &entity.Customer{Phone: "9876543210", Name: "existing"}
	uc := NewCSVUseCase(newFakeProductRepo(), customers)

	csvData := strings.Join([]string{
		"name,gstin,email,phone,address",
		"Sharma Traders,27AAPFU0939F1ZV,contact@sharma.in,9876543210,Pune",
		"Walk-in,,,,",
		"Kumar Stores,,kumar@stores.in,9123456780,Chennai",
	}, "\n")

	result, err := uc.ImportCustomers("biz-1", strings.NewReader(csvData))
	require.NoError(t, err)

	assert.Equal(t, 2, result.Imported, "no-phone and new-phone rows import")
	assert.Equal(t, 1, result.Skipped)
	assert.Empty(t, result.Errors)
	assert.Equal(t, "Kumar Stores", customers.byPhone["9123456780"].Name)
}

func TestImportCustomers_NameRequired(t *testing.T) {
	uc := NewCSVUseCase(newFakeProductRepo(), newFakeCustomerRepo())

	csvData := "name,gstin,email,phone,address\n,,,\n"
	result, err := uc.ImportCustomers("biz-1", strings.NewReader(csvData))
	require.NoError(t, err)

	assert.Equal(t, 0, result.Imported)
	require.Len(t, result.Errors, 1)
	assert.Equal(t, 2, result.Errors[0].Line)
}
