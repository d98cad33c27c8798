package reports

import (
	"time"

	"github.com/nivaanlabs/gstbill-api/internal/application/dto"
	"github.com/nivaanlabs/gstbill-api/internal/domain/repository"
)

// DashboardUseCase aggregates the headline figures shown on the back-office
// landing page.
type DashboardUseCase struct {
	repo repository.ReportRepository
}

// NewDashboardUseCase builds the use case.
func NewDashboardUseCase(repo repository.ReportRepository) *DashboardUseCase {
	return &DashboardUseCase{repo: repo}
}

// Dashboard returns sales totals for the current calendar month plus
// catalog counts and low-stock warnings.
func (uc *DashboardUseCase) Dashboard(businessID string) (*dto.DashboardResponse, error) {
	now := time.Now()
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())

	sales, err := uc.repo.SalesSummary(businessID, monthStart, now)
	if err != nil {
		return nil, err
	}
	productCount, err := uc.repo.ProductCount(businessID)
	if err != nil {
		return nil, err
	}
	customerCount, err := uc.repo.CustomerCount(businessID)
	if err != nil {
		return nil, err
	}
	lowStock, err := uc.repo.LowStockProducts(businessID, 10)
	if err != nil {
		return nil, err
	}

	out := &dto.DashboardResponse{
		InvoiceCount:  sales.InvoiceCount,
		SalesSubtotal: sales.Subtotal,
		SalesTax:      sales.Tax,
		SalesTotal:    sales.GrandTotal,
		ProductCount:  productCount,
		CustomerCount: customerCount,
	}
	for _, p := range lowStock {
		out.LowStock = append(out.LowStock, dto.ProductResponse{
			ID:            p.ID,
			BusinessID:    p.BusinessID,
			SKU:           p.SKU,
			Name:          p.Name,
			Quantity:      p.Quantity,
			LowStockLevel: p.LowStockLevel,
			SalePrice:     p.SalePrice,
			GSTRate:       p.GSTRate,
			CreatedAt:     p.CreatedAt,
			UpdatedAt:     p.UpdatedAt,
		})
	}
	return out, nil
}
