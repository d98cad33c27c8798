package billing

import (
	"context"
	"fmt"
	"strings"

	"github.com/nivaanlabs/gstbill-api/internal/domain"
	"github.com/nivaanlabs/gstbill-api/internal/domain/repository"
)

// PDFUseCase generates the printable invoice document.
type PDFUseCase struct {
	invoiceRepo  repository.InvoiceRepository
	businessRepo repository.BusinessRepository
	customerRepo repository.CustomerRepository
	productRepo  repository.ProductRepository
	unitRepo     repository.UnitRepository
	generator    InvoicePDFGenerator
}

// NewPDFUseCase builds the use case with all its dependencies.
func NewPDFUseCase(
	invoiceRepo repository.InvoiceRepository,
	businessRepo repository.BusinessRepository,
	customerRepo repository.CustomerRepository,
	productRepo repository.ProductRepository,
	unitRepo repository.UnitRepository,
	generator InvoicePDFGenerator,
) *PDFUseCase {
	return &PDFUseCase{
		invoiceRepo:  invoiceRepo,
		businessRepo: businessRepo,
		customerRepo: customerRepo,
		productRepo:  productRepo,
		unitRepo:     unitRepo,
		generator:    generator,
	}
}

// DownloadInvoicePDF loads the invoice with all related records and renders
// the document.
//
// Returns:
//   - (pdfBytes, filename, nil) on success.
//   - domain.ErrNotFound when the invoice does not exist.
//   - domain.ErrForbidden when it belongs to another business.
func (uc *PDFUseCase) DownloadInvoicePDF(ctx context.Context, businessID, invoiceID string) (pdfBytes []byte, filename string, err error) {
	inv, err := uc.invoiceRepo.GetByID(invoiceID)
	if err != nil {
		return nil, "", fmt.Errorf("pdf: load invoice: %w", err)
	}
	if inv == nil {
		return nil, "", domain.ErrNotFound
	}
	if inv.BusinessID != businessID {
		return nil, "", domain.ErrForbidden
	}

	business, err := uc.businessRepo.GetByID(businessID)
	if err != nil || business == nil {
		return nil, "", fmt.Errorf("pdf: load business: %w", err)
	}
	customer, err := uc.customerRepo.GetByID(inv.CustomerID)
	if err != nil || customer == nil {
		return nil, "", fmt.Errorf("pdf: load customer: %w", err)
	}

	rawItems, err := uc.invoiceRepo.GetItemsByInvoiceID(invoiceID)
	if err != nil {
		return nil, "", fmt.Errorf("pdf: load items: %w", err)
	}

	enriched := make([]InvoiceItemForPDF, 0, len(rawItems))
	for _, item := range rawItems {
		row := InvoiceItemForPDF{InvoiceItem: *item, ProductName: "Product " + item.ProductID}
		if product, pErr := uc.productRepo.GetByID(item.ProductID); pErr == nil && product != nil {
			row.ProductName = product.Name
			row.HSNCode = product.HSNCode
			if product.UnitID != "" {
				if unit, uErr := uc.unitRepo.GetByID(product.UnitID); uErr == nil && unit != nil {
					row.UnitAbbrev = unit.Abbreviation
				}
			}
		}
		enriched = append(enriched, row)
	}

	pdfBytes, err = uc.generator.GenerateInvoicePDF(ctx, inv, business, customer, enriched)
	if err != nil {
		return nil, "", fmt.Errorf("pdf: generate: %w", err)
	}

	number := strings.ReplaceAll(inv.Prefix+inv.Number, "/", "-")
	return pdfBytes, fmt.Sprintf("invoice-%s.pdf", number), nil
}
