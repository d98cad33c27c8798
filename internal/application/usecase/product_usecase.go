package usecase

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/nivaanlabs/gstbill-api/internal/application/dto"
	"github.com/nivaanlabs/gstbill-api/internal/domain"
	"github.com/nivaanlabs/gstbill-api/internal/domain/entity"
	"github.com/nivaanlabs/gstbill-api/internal/domain/repository"
)

// ProductUseCase CRUD use cases for products. On-hand quantity is only set
// here as opening stock at creation; afterwards it moves through purchases
// and invoices.
type ProductUseCase struct {
	repo repository.ProductRepository
}

// NewProductUseCase builds the use case.
func NewProductUseCase(repo repository.ProductRepository) *ProductUseCase {
	return &ProductUseCase{repo: repo}
}

// Create creates a product. The GST rate must be one of the allowed slabs;
// the SKU must be unique within the business.
func (uc *ProductUseCase) Create(businessID string, in dto.CreateProductRequest) (*dto.ProductResponse, error) {
	existing, _ := uc.repo.GetBySKU(businessID, in.SKU)
	if existing != nil {
		return nil, domain.ErrDuplicate
	}
	if !entity.IsAllowedGSTRate(in.GSTRate) {
		return nil, domain.ErrInvalidGSTRate
	}
	opening := decimal.Zero
	if in.Quantity != nil {
		opening = *in.Quantity
	}
	now := time.Now()
	product := &entity.Product{
		ID:            uuid.New().String(),
		BusinessID:    businessID,
		SKU:           in.SKU,
		Name:          in.Name,
		Description:   in.Description,
		HSNCode:       in.HSNCode,
		CategoryID:    in.CategoryID,
		UnitID:        in.UnitID,
		SalePrice:     in.SalePrice,
		GSTRate:       in.GSTRate,
		Quantity:      opening,
		LowStockLevel: in.LowStockLevel,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := uc.repo.Create(product); err != nil {
		return nil, err
	}
	return toProductResponse(product), nil
}

// GetByID returns a product, scoped to the business.
func (uc *ProductUseCase) GetByID(businessID, id string) (*dto.ProductResponse, error) {
	product, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, nil
	}
	if product.BusinessID != businessID {
		return nil, domain.ErrForbidden
	}
	return toProductResponse(product), nil
}

// Update updates a product. Quantity cannot be changed here.
func (uc *ProductUseCase) Update(businessID, id string, in dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	product, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, nil
	}
	if product.BusinessID != businessID {
		return nil, domain.ErrForbidden
	}
	if in.Name != nil {
		product.Name = *in.Name
	}
	if in.Description != nil {
		product.Description = *in.Description
	}
	if in.HSNCode != nil {
		product.HSNCode = *in.HSNCode
	}
	if in.CategoryID != nil {
		product.CategoryID = *in.CategoryID
	}
	if in.UnitID != nil {
		product.UnitID = *in.UnitID
	}
	if in.SalePrice != nil {
		product.SalePrice = *in.SalePrice
	}
	if in.GSTRate != nil {
		if !entity.IsAllowedGSTRate(*in.GSTRate) {
			return nil, domain.ErrInvalidGSTRate
		}
		product.GSTRate = *in.GSTRate
	}
	if in.LowStockLevel != nil {
		product.LowStockLevel = *in.LowStockLevel
	}
	product.UpdatedAt = time.Now()
	if err := uc.repo.Update(product); err != nil {
		return nil, err
	}
	return toProductResponse(product), nil
}

// List lists products for a business with pagination.
func (uc *ProductUseCase) List(businessID string, limit, offset int) (*dto.ProductListResponse, error) {
	list, err := uc.repo.ListByBusiness(businessID, limit, offset)
	if err != nil {
		return nil, err
	}
	total, err := uc.repo.CountByBusiness(businessID)
	if err != nil {
		return nil, err
	}
	items := make([]dto.ProductResponse, 0, len(list))
	for _, p := range list {
		items = append(items, *toProductResponse(p))
	}
	return &dto.ProductListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: limit, Offset: offset, Total: total},
	}, nil
}

// Delete removes a product, scoped to the business.
func (uc *ProductUseCase) Delete(businessID, id string) error {
	product, err := uc.repo.GetByID(id)
	if err != nil {
		return err
	}
	if product == nil {
		return domain.ErrNotFound
	}
	if product.BusinessID != businessID {
		return domain.ErrForbidden
	}
	return uc.repo.Delete(id)
}

func toProductResponse(p *entity.Product) *dto.ProductResponse {
	if p == nil {
		return nil
	}
	return &dto.ProductResponse{
		ID:            p.ID,
		BusinessID:    p.BusinessID,
		SKU:           p.SKU,
		Name:          p.Name,
		Description:   p.Description,
		HSNCode:       p.HSNCode,
		CategoryID:    p.CategoryID,
		UnitID:        p.UnitID,
		SalePrice:     p.SalePrice,
		GSTRate:       p.GSTRate,
		Quantity:      p.Quantity,
		LowStockLevel: p.LowStockLevel,
		CreatedAt:     p.CreatedAt,
		UpdatedAt:     p.UpdatedAt,
	}
}
