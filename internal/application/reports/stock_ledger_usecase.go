package reports

import (
	"context"
	"fmt"
	"time"

	"github.com/nivaanlabs/gstbill-api/internal/application/dto"
	"github.com/nivaanlabs/gstbill-api/internal/domain"
	"github.com/nivaanlabs/gstbill-api/internal/domain/entity"
	"github.com/nivaanlabs/gstbill-api/internal/domain/repository"
	"github.com/nivaanlabs/gstbill-api/internal/domain/stockledger"
)

const dateLayout = "2006-01-02"

// LedgerPDFGenerator renders the stock ledger report as a tabular document.
type LedgerPDFGenerator interface {
	GenerateLedgerPDF(
		ctx context.Context,
		business *entity.Business,
		product *entity.Product,
		unitAbbrev string,
		ledger stockledger.Ledger,
		opts stockledger.Options,
	) ([]byte, error)
}

// StockLedgerUseCase drives the stock ledger report: it loads the product
// snapshot, the purchase history and the sale history (invoice items joined
// to their parent invoice's date), and only when all three loaded without
// error hands them to the reconstructor. The reconstruction itself is pure;
// any fetch failure surfaces before it runs.
type StockLedgerUseCase struct {
	businessRepo repository.BusinessRepository
	productRepo  repository.ProductRepository
	purchaseRepo repository.PurchaseRepository
	invoiceRepo  repository.InvoiceRepository
	unitRepo     repository.UnitRepository
	pdf          LedgerPDFGenerator
}

// NewStockLedgerUseCase builds the use case.
func NewStockLedgerUseCase(
	businessRepo repository.BusinessRepository,
	productRepo repository.ProductRepository,
	purchaseRepo repository.PurchaseRepository,
	invoiceRepo repository.InvoiceRepository,
	unitRepo repository.UnitRepository,
	pdf LedgerPDFGenerator,
) *StockLedgerUseCase {
	return &StockLedgerUseCase{
		businessRepo: businessRepo,
		productRepo:  productRepo,
		purchaseRepo: purchaseRepo,
		invoiceRepo:  invoiceRepo,
		unitRepo:     unitRepo,
		pdf:          pdf,
	}
}

// Ledger reconstructs the movement report for one product and returns the
// requested page of rows.
func (uc *StockLedgerUseCase) Ledger(businessID string, req dto.StockLedgerRequest) (*dto.StockLedgerResponse, error) {
	product, opts, err := uc.prepare(businessID, req)
	if err != nil {
		return nil, err
	}
	ledger, err := uc.reconstruct(product, opts)
	if err != nil {
		return nil, err
	}

	limit := req.Limit
	if limit <= 0 {
		limit = 50
	}
	offset := req.Offset
	if offset < 0 {
		offset = 0
	}

	out := &dto.StockLedgerResponse{
		ProductID:    product.ID,
		ProductName:  product.Name,
		InitialStock: ledger.InitialStock,
		Opening:      ledger.Opening,
		Current:      product.Quantity,
		Rows:         make([]dto.StockLedgerRow, 0, limit),
		Page:         dto.PageResponse{Limit: limit, Offset: offset, Total: len(ledger.Rows)},
	}
	out.Unit = uc.unitAbbrev(product)
	for _, row := range ledger.Page(limit, offset) {
		out.Rows = append(out.Rows, dto.StockLedgerRow{
			Date:       row.Date,
			References: row.References,
			Opening:    row.Opening,
			Purchased:  row.Purchased,
			Sold:       row.Sold,
			Closing:    row.Closing,
		})
	}
	return out, nil
}

// LedgerPDF renders the full (unpaginated) reconstructed ledger as a PDF.
func (uc *StockLedgerUseCase) LedgerPDF(ctx context.Context, businessID string, req dto.StockLedgerRequest) ([]byte, string, error) {
	product, opts, err := uc.prepare(businessID, req)
	if err != nil {
		return nil, "", err
	}
	ledger, err := uc.reconstruct(product, opts)
	if err != nil {
		return nil, "", err
	}
	business, err := uc.businessRepo.GetByID(businessID)
	if err != nil || business == nil {
		return nil, "", fmt.Errorf("ledger pdf: load business: %w", err)
	}
	pdfBytes, err := uc.pdf.GenerateLedgerPDF(ctx, business, product, uc.unitAbbrev(product), ledger, opts)
	if err != nil {
		return nil, "", fmt.Errorf("ledger pdf: generate: %w", err)
	}
	return pdfBytes, fmt.Sprintf("stock-ledger-%s.pdf", product.SKU), nil
}

func (uc *StockLedgerUseCase) prepare(businessID string, req dto.StockLedgerRequest) (*entity.Product, stockledger.Options, error) {
	var opts stockledger.Options
	if req.ProductID == "" {
		return nil, opts, domain.ErrInvalidInput
	}
	product, err := uc.productRepo.GetByID(req.ProductID)
	if err != nil {
		return nil, opts, err
	}
	if product == nil {
		return nil, opts, domain.ErrNotFound
	}
	if product.BusinessID != businessID {
		return nil, opts, domain.ErrForbidden
	}

	if req.From != "" {
		t, err := time.Parse(dateLayout, req.From)
		if err != nil {
			return nil, opts, fmt.Errorf("%w: from date", domain.ErrInvalidInput)
		}
		opts.From = t
	}
	if req.To != "" {
		t, err := time.Parse(dateLayout, req.To)
		if err != nil {
			return nil, opts, fmt.Errorf("%w: to date", domain.ErrInvalidInput)
		}
		opts.To = t
	}
	switch req.Granularity {
	case "", "event":
		opts.Granularity = stockledger.PerEvent
	case "day":
		opts.Granularity = stockledger.PerDay
	default:
		return nil, opts, fmt.Errorf("%w: granularity", domain.ErrInvalidInput)
	}
	return product, opts, nil
}

// reconstruct fetches both event histories and replays them. The snapshot
// is trusted to reflect all events; drift shows up in InitialStock and is
// reported, not corrected.
func (uc *StockLedgerUseCase) reconstruct(product *entity.Product, opts stockledger.Options) (stockledger.Ledger, error) {
	purchases, err := uc.purchaseRepo.ListByProduct(product.ID)
	if err != nil {
		return stockledger.Ledger{}, fmt.Errorf("ledger: load purchases: %w", err)
	}
	sales, err := uc.invoiceRepo.ListSalesByProduct(product.ID)
	if err != nil {
		return stockledger.Ledger{}, fmt.Errorf("ledger: load sales: %w", err)
	}

	purchaseEvents := make([]stockledger.Event, 0, len(purchases))
	for _, p := range purchases {
		purchaseEvents = append(purchaseEvents, stockledger.Event{
			Date:      p.Date,
			Quantity:  p.Quantity,
			Reference: p.Reference,
		})
	}
	saleEvents := make([]stockledger.Event, 0, len(sales))
	for _, s := range sales {
		saleEvents = append(saleEvents, stockledger.Event{
			Date:      s.Date,
			Quantity:  s.Quantity,
			Reference: s.InvoiceNumber,
		})
	}
	return stockledger.Reconstruct(product.Quantity, purchaseEvents, saleEvents, opts), nil
}

func (uc *StockLedgerUseCase) unitAbbrev(product *entity.Product) string {
	if product.UnitID == "" {
		return ""
	}
	unit, err := uc.unitRepo.GetByID(product.UnitID)
	if err != nil || unit == nil {
		return ""
	}
	return unit.Abbreviation
}
