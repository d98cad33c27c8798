package http

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nivaanlabs/gstbill-api/internal/application/dto"
	"github.com/nivaanlabs/gstbill-api/internal/application/usecase"
	"github.com/nivaanlabs/gstbill-api/internal/domain/entity"
)

const testBusinessID = "00000000-0000-0000-0000-000000000002"

type mapProductRepo struct {
	byID map[string]*entity.Product
}

func (r *mapProductRepo) Create(p *entity.Product) error { r.byID[p.ID] = p; return nil }
func (r *mapProductRepo) GetByID(id string) (*entity.Product, error) {
	return r.byID[id], nil
}
func (r *mapProductRepo) GetBySKU(string, string) (*entity.Product, error) { return nil, nil }
func (r *mapProductRepo) Update(p *entity.Product) error                   { r.byID[p.ID] = p; return nil }
func (r *mapProductRepo) GetForUpdate(id string) (*entity.Product, error) {
	return r.byID[id], nil
}
func (r *mapProductRepo) AdjustQuantity(string, decimal.Decimal) error { return nil }
func (r *mapProductRepo) ListByBusiness(string, int, int) ([]*entity.Product, error) {
	return nil, nil
}
func (r *mapProductRepo) ListAllByBusiness(string) ([]*entity.Product, error) { return nil, nil }
func (r *mapProductRepo) CountByBusiness(string) (int, error)                 { return 0, nil }
func (r *mapProductRepo) Delete(id string) error                              { delete(r.byID, id); return nil }

func buildProductApp(repo *mapProductRepo) *fiber.App {
	app := fiber.New()
	app.Use(func(c *fiber.Ctx) error {
		c.Locals(LocalBusinessID, testBusinessID)
		return c.Next()
	})
	h := NewProductHandler(usecase.NewProductUseCase(repo), nil)
	app.Get("/api/products/:id", h.GetByID)
	app.Put("/api/products/:id", h.Update)
	return app
}

func TestProductGetByID_UnknownIDReturns404(t *testing.T) {
	app := buildProductApp(&mapProductRepo{byID: map[string]*entity.Product{}})

	req := httptest.NewRequest(http.MethodGet, "/api/products/nope", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	var body dto.ErrorResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "NOT_FOUND", body.Code)
}

func TestProductUpdate_UnknownIDReturns404(t *testing.T) {
	app := buildProductApp(&mapProductRepo{byID: map[string]*entity.Product{}})

	payload := []byte(`{"name":"Renamed"}`)
	req := httptest.NewRequest(http.MethodPut, "/api/products/nope", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	var body dto.ErrorResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "NOT_FOUND", body.Code)
}

func TestProductGetByID_KnownIDReturns200(t *testing.T) {
	repo := &mapProductRepo{byID: map[string]*entity.Product{
		"p1": {ID: "p1", BusinessID: testBusinessID, SKU: "SKU-1", Name: "LED Bulb"},
	}}
	app := buildProductApp(repo)

	req := httptest.NewRequest(http.MethodGet, "/api/products/p1", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var body dto.ProductResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "p1", body.ID)
	assert.Equal(t, "SKU-1", body.SKU)
}
