package billing

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/nivaanlabs/gstbill-api/internal/application/dto"
	"github.com/nivaanlabs/gstbill-api/internal/domain"
	"github.com/nivaanlabs/gstbill-api/internal/domain/entity"
	"github.com/nivaanlabs/gstbill-api/internal/domain/gst"
	"github.com/nivaanlabs/gstbill-api/internal/domain/repository"
)

// InvoiceUseCase creates, reads and deletes invoices. Creating an invoice
// computes GST per line, assigns the next sequential number and debits each
// product's stock in one transaction; deleting credits the stock back.
type InvoiceUseCase struct {
	txRunner      BillingTxRunner
	customerRepo  repository.CustomerRepository
	productRepo   repository.ProductRepository
	invoiceRepo   repository.InvoiceRepository
	defaultPrefix string
}

// NewInvoiceUseCase builds the use case.
func NewInvoiceUseCase(
	txRunner BillingTxRunner,
	customerRepo repository.CustomerRepository,
	productRepo repository.ProductRepository,
	invoiceRepo repository.InvoiceRepository,
	defaultPrefix string,
) *InvoiceUseCase {
	return &InvoiceUseCase{
		txRunner:      txRunner,
		customerRepo:  customerRepo,
		productRepo:   productRepo,
		invoiceRepo:   invoiceRepo,
		defaultPrefix: defaultPrefix,
	}
}

// Create validates the customer and products, computes the GST lines and
// totals, and persists header, items and stock debits atomically.
// Insufficient stock on any line aborts the whole invoice.
func (uc *InvoiceUseCase) Create(ctx context.Context, businessID string, in dto.CreateInvoiceRequest) (*dto.InvoiceResponse, error) {
	if in.CustomerID == "" || len(in.Items) == 0 {
		return nil, domain.ErrInvalidInput
	}

	customer, err := uc.customerRepo.GetByID(in.CustomerID)
	if err != nil || customer == nil {
		return nil, domain.ErrNotFound
	}
	if customer.BusinessID != businessID {
		return nil, domain.ErrForbidden
	}

	// Validate products and resolve unit prices outside the tx (read only).
	productsByID := make(map[string]*entity.Product)
	for _, item := range in.Items {
		if item.ProductID == "" || !item.Quantity.GreaterThan(decimal.Zero) {
			return nil, domain.ErrInvalidInput
		}
		if item.UnitPrice.LessThan(decimal.Zero) || item.InclusiveRate.LessThan(decimal.Zero) {
			return nil, domain.ErrInvalidInput
		}
		product, err := uc.productRepo.GetByID(item.ProductID)
		if err != nil || product == nil {
			return nil, domain.ErrNotFound
		}
		if product.BusinessID != businessID {
			return nil, domain.ErrForbidden
		}
		productsByID[item.ProductID] = product
	}

	date := in.Date
	if date.IsZero() {
		date = time.Now()
	}
	prefix := in.Prefix
	if prefix == "" {
		prefix = uc.defaultPrefix
	}

	now := time.Now()
	invoiceID := uuid.New().String()
	items := make([]*entity.InvoiceItem, 0, len(in.Items))
	lines := make([]gst.Line, 0, len(in.Items))
	for _, item := range in.Items {
		product := productsByID[item.ProductID]
		var line gst.Line
		switch {
		case !item.UnitPrice.IsZero():
			line = gst.ComputeLine(item.Quantity, item.UnitPrice, product.GSTRate)
		case !item.InclusiveRate.IsZero():
			line = gst.ComputeLineInclusive(item.Quantity, item.InclusiveRate, product.GSTRate)
		default:
			line = gst.ComputeLine(item.Quantity, product.SalePrice, product.GSTRate)
		}
		lines = append(lines, line)
		items = append(items, &entity.InvoiceItem{
			ID:            uuid.New().String(),
			InvoiceID:     invoiceID,
			ProductID:     item.ProductID,
			Quantity:      item.Quantity,
			UnitPrice:     line.UnitPrice,
			GSTRate:       product.GSTRate,
			TaxableAmount: line.TaxableAmount,
			CGST:          line.CGST,
			SGST:          line.SGST,
			LineTotal:     line.LineTotal,
		})
	}
	totals := gst.Sum(lines)

	invoice := &entity.Invoice{
		ID:         invoiceID,
		BusinessID: businessID,
		CustomerID: in.CustomerID,
		Prefix:     prefix,
		Date:       date,
		Subtotal:   totals.Subtotal,
		CGSTTotal:  totals.CGST,
		SGSTTotal:  totals.SGST,
		GrandTotal: totals.GrandTotal,
		Notes:      in.Notes,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	err = uc.txRunner.RunBilling(ctx, func(
		invoiceRepo repository.InvoiceRepository,
		productRepo repository.ProductRepository,
	) error {
		seq, err := invoiceRepo.NextNumber(businessID, prefix)
		if err != nil {
			return err
		}
		invoice.Number = fmt.Sprintf("%04d", seq)

		for _, item := range items {
			product, err := productRepo.GetForUpdate(item.ProductID)
			if err != nil {
				return err
			}
			if product.Quantity.LessThan(item.Quantity) {
				return domain.ErrInsufficientStock
			}
			if err := productRepo.AdjustQuantity(item.ProductID, item.Quantity.Neg()); err != nil {
				return err
			}
		}
		return invoiceRepo.Create(invoice, items)
	})
	if err != nil {
		return nil, err
	}
	return toInvoiceResponse(invoice, items), nil
}

// GetByID returns an invoice with its items, scoped to the business.
func (uc *InvoiceUseCase) GetByID(businessID, id string) (*dto.InvoiceResponse, error) {
	invoice, err := uc.invoiceRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if invoice == nil {
		return nil, nil
	}
	if invoice.BusinessID != businessID {
		return nil, domain.ErrForbidden
	}
	items, err := uc.invoiceRepo.GetItemsByInvoiceID(id)
	if err != nil {
		return nil, err
	}
	return toInvoiceResponse(invoice, items), nil
}

// List lists invoices for a business with pagination (headers only).
func (uc *InvoiceUseCase) List(businessID string, limit, offset int) (*dto.InvoiceListResponse, error) {
	list, err := uc.invoiceRepo.ListByBusiness(businessID, limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.InvoiceResponse, 0, len(list))
	for _, inv := range list {
		items = append(items, *toInvoiceResponse(inv, nil))
	}
	return &dto.InvoiceListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: limit, Offset: offset},
	}, nil
}

// Delete removes an invoice and credits every line's quantity back onto its
// product, in one transaction.
func (uc *InvoiceUseCase) Delete(ctx context.Context, businessID, id string) error {
	invoice, err := uc.invoiceRepo.GetByID(id)
	if err != nil {
		return err
	}
	if invoice == nil {
		return domain.ErrNotFound
	}
	if invoice.BusinessID != businessID {
		return domain.ErrForbidden
	}
	items, err := uc.invoiceRepo.GetItemsByInvoiceID(id)
	if err != nil {
		return err
	}
	return uc.txRunner.RunBilling(ctx, func(
		invoiceRepo repository.InvoiceRepository,
		productRepo repository.ProductRepository,
	) error {
		for _, item := range items {
			if _, err := productRepo.GetForUpdate(item.ProductID); err != nil {
				return err
			}
			if err := productRepo.AdjustQuantity(item.ProductID, item.Quantity); err != nil {
				return err
			}
		}
		return invoiceRepo.Delete(id)
	})
}

func toInvoiceResponse(inv *entity.Invoice, items []*entity.InvoiceItem) *dto.InvoiceResponse {
	if inv == nil {
		return nil
	}
	out := &dto.InvoiceResponse{
		ID:         inv.ID,
		BusinessID: inv.BusinessID,
		CustomerID: inv.CustomerID,
		Number:     inv.Prefix + inv.Number,
		Date:       inv.Date,
		Subtotal:   inv.Subtotal,
		CGSTTotal:  inv.CGSTTotal,
		SGSTTotal:  inv.SGSTTotal,
		GrandTotal: inv.GrandTotal,
		Notes:      inv.Notes,
		CreatedAt:  inv.CreatedAt,
	}
	for _, item := range items {
		out.Items = append(out.Items, dto.InvoiceItemResponse{
			ID:            item.ID,
			ProductID:     item.ProductID,
			Quantity:      item.Quantity,
			UnitPrice:     item.UnitPrice,
			GSTRate:       item.GSTRate,
			TaxableAmount: item.TaxableAmount,
			CGST:          item.CGST,
			SGST:          item.SGST,
			LineTotal:     item.LineTotal,
		})
	}
	return out
}
