// Package importexport implements CSV bulk import and export of master
// data (products, customers). Stock history is not importable; quantities
// in a product CSV become opening stock on brand-new rows only.
package importexport

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/nivaanlabs/gstbill-api/internal/application/dto"
	"github.com/nivaanlabs/gstbill-api/internal/domain/entity"
	"github.com/nivaanlabs/gstbill-api/internal/domain/repository"
)

var productHeader = []string{"sku", "name", "description", "hsn_code", "sale_price", "gst_rate", "quantity", "low_stock_level"}
var customerHeader = []string{"name", "gstin", "email", "phone", "address"}

// CSVUseCase bulk import/export of products and customers.
type CSVUseCase struct {
	productRepo  repository.ProductRepository
	customerRepo repository.CustomerRepository
}

// NewCSVUseCase builds the use case.
func NewCSVUseCase(productRepo repository.ProductRepository, customerRepo repository.CustomerRepository) *CSVUseCase {
	return &CSVUseCase{productRepo: productRepo, customerRepo: customerRepo}
}

// ExportProducts writes the full product catalog of a business as CSV.
func (uc *CSVUseCase) ExportProducts(businessID string) ([]byte, error) {
	products, err := uc.productRepo.ListAllByBusiness(businessID)
	if err != nil {
		return nil, fmt.Errorf("export products: %w", err)
	}
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write(productHeader); err != nil {
		return nil, err
	}
	for _, p := range products {
		record := []string{
			p.SKU, p.Name, p.Description, p.HSNCode,
			p.SalePrice.String(), p.GSTRate.String(),
			p.Quantity.String(), p.LowStockLevel.String(),
		}
		if err := w.Write(record); err != nil {
			return nil, err
		}
	}
	w.Flush()
	return buf.Bytes(), w.Error()
}

// ImportProducts reads a product CSV (header row required), creating new
// products. Rows whose SKU already exists are skipped; malformed rows are
// reported per line and do not abort the rest of the file.
func (uc *CSVUseCase) ImportProducts(businessID string, r io.Reader) (*dto.ImportResult, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	if _, err := reader.Read(); err != nil {
		return nil, fmt.Errorf("import products: read header: %w", err)
	}

	result := &dto.ImportResult{}
	line := 1
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		line++
		if err != nil {
			result.Errors = append(result.Errors, dto.ImportRowError{Line: line, Message: err.Error()})
			continue
		}
		if len(record) < len(productHeader) {
			result.Errors = append(result.Errors, dto.ImportRowError{Line: line, Message: "too few columns"})
			continue
		}
		sku, name := record[0], record[1]
		if sku == "" || name == "" {
			result.Errors = append(result.Errors, dto.ImportRowError{Line: line, Message: "sku and name are required"})
			continue
		}
		existing, _ := uc.productRepo.GetBySKU(businessID, sku)
		if existing != nil {
			result.Skipped++
			continue
		}
		salePrice, err := parseDecimal(record[4])
		if err != nil {
			result.Errors = append(result.Errors, dto.ImportRowError{Line: line, Message: "invalid sale_price"})
			continue
		}
		gstRate, err := parseDecimal(record[5])
		if err != nil || !entity.IsAllowedGSTRate(gstRate) {
			result.Errors = append(result.Errors, dto.ImportRowError{Line: line, Message: "invalid gst_rate"})
			continue
		}
		quantity, err := parseDecimal(record[6])
		if err != nil {
			result.Errors = append(result.Errors, dto.ImportRowError{Line: line, Message: "invalid quantity"})
			continue
		}
		lowStock, err := parseDecimal(record[7])
		if err != nil {
			result.Errors = append(result.Errors, dto.ImportRowError{Line: line, Message: "invalid low_stock_level"})
			continue
		}
		now := time.Now()
		product := &entity.Product{
			ID:            uuid.New().String(),
			BusinessID:    businessID,
			SKU:           sku,
			Name:          name,
			Description:   record[2],
			HSNCode:       record[3],
			SalePrice:     salePrice,
			GSTRate:       gstRate,
			Quantity:      quantity,
			LowStockLevel: lowStock,
			CreatedAt:     now,
			UpdatedAt:     now,
		}
		if err := uc.productRepo.Create(product); err != nil {
			result.Errors = append(result.Errors, dto.ImportRowError{Line: line, Message: err.Error()})
			continue
		}
		result.Imported++
	}
	return result, nil
}

// ExportCustomers writes the full customer list of a business as CSV.
func (uc *CSVUseCase) ExportCustomers(businessID string) ([]byte, error) {
	customers, err := uc.customerRepo.ListAllByBusiness(businessID)
	if err != nil {
		return nil, fmt.Errorf("export customers: %w", err)
	}
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write(customerHeader); err != nil {
		return nil, err
	}
	for _, c := range customers {
		if err := w.Write([]string{c.Name, c.GSTIN, c.Email, c.Phone, c.Address}); err != nil {
			return nil, err
		}
	}
	w.Flush()
	return buf.Bytes(), w.Error()
}

// ImportCustomers reads a customer CSV (header row required). Rows whose
// phone number already exists for the business are skipped.
func (uc *CSVUseCase) ImportCustomers(businessID string, r io.Reader) (*dto.ImportResult, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	if _, err := reader.Read(); err != nil {
		return nil, fmt.Errorf("import customers: read header: %w", err)
	}

	result := &dto.ImportResult{}
	line := 1
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		line++
		if err != nil {
			result.Errors = append(result.Errors, dto.ImportRowError{Line: line, Message: err.Error()})
			continue
		}
		if len(record) < len(customerHeader) {
			result.Errors = append(result.Errors, dto.ImportRowError{Line: line, Message: "too few columns"})
			continue
		}
		name := record[0]
		if name == "" {
			result.Errors = append(result.Errors, dto.ImportRowError{Line: line, Message: "name is required"})
			continue
		}
		phone := record[3]
		if phone != "" {
			existing, _ := uc.customerRepo.GetByBusinessAndPhone(businessID, phone)
			if existing != nil {
				result.Skipped++
				continue
			}
		}
		now := time.Now()
		customer := &entity.Customer{
			ID:         uuid.New().String(),
			BusinessID: businessID,
			Name:       name,
			GSTIN:      record[1],
			Email:      record[2],
			Phone:      phone,
			Address:    record[4],
			CreatedAt:  now,
			UpdatedAt:  now,
		}
		if err := uc.customerRepo.Create(customer); err != nil {
			result.Errors = append(result.Errors, dto.ImportRowError{Line: line, Message: err.Error()})
			continue
		}
		result.Imported++
	}
	return result, nil
}

func parseDecimal(s string) (decimal.Decimal, error) {
	if s == "" {
		return decimal.Zero, nil
	}
	return decimal.NewFromString(s)
}
