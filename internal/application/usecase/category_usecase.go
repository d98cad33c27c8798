package usecase

import (
	"time"

	"github.com/google/uuid"

	"github.com/nivaanlabs/gstbill-api/internal/application/dto"
	"github.com/nivaanlabs/gstbill-api/internal/domain"
	"github.com/nivaanlabs/gstbill-api/internal/domain/entity"
	"github.com/nivaanlabs/gstbill-api/internal/domain/repository"
)

// CategoryUseCase CRUD use cases for categories.
type CategoryUseCase struct {
	repo repository.CategoryRepository
}

// NewCategoryUseCase builds the use case.
func NewCategoryUseCase(repo repository.CategoryRepository) *CategoryUseCase {
	return &CategoryUseCase{repo: repo}
}

// Create creates a category. Code must be unique within the business.
func (uc *CategoryUseCase) Create(businessID string, in dto.CreateCategoryRequest) (*dto.CategoryResponse, error) {
	existing, _ := uc.repo.GetByBusinessAndCode(businessID, in.Code)
	if existing != nil {
		return nil, domain.ErrDuplicate
	}
	now := time.Now()
	category := &entity.Category{
		ID:         uuid.New().String(),
		BusinessID: businessID,
		Name:       in.Name,
		Code:       in.Code,
		Status:     "active",
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := uc.repo.Create(category); err != nil {
		return nil, err
	}
	return toCategoryResponse(category), nil
}

// GetByID returns a category, scoped to the business.
func (uc *CategoryUseCase) GetByID(businessID, id string) (*dto.CategoryResponse, error) {
	category, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if category == nil {
		return nil, nil
	}
	if category.BusinessID != businessID {
		return nil, domain.ErrForbidden
	}
	return toCategoryResponse(category), nil
}

// Update updates a category's name or status.
func (uc *CategoryUseCase) Update(businessID, id string, in dto.UpdateCategoryRequest) (*dto.CategoryResponse, error) {
	category, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if category == nil {
		return nil, nil
	}
	if category.BusinessID != businessID {
		return nil, domain.ErrForbidden
	}
	if in.Name != nil {
		category.Name = *in.Name
	}
	if in.Status != nil {
		category.Status = *in.Status
	}
	category.UpdatedAt = time.Now()
	if err := uc.repo.Update(category); err != nil {
		return nil, err
	}
	return toCategoryResponse(category), nil
}

// List lists categories for a business with pagination.
func (uc *CategoryUseCase) List(businessID string, limit, offset int) (*dto.CategoryListResponse, error) {
	list, err := uc.repo.ListByBusiness(businessID, limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.CategoryResponse, 0, len(list))
	for _, c := range list {
		items = append(items, *toCategoryResponse(c))
	}
	return &dto.CategoryListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: limit, Offset: offset},
	}, nil
}

// Delete removes a category, scoped to the business.
func (uc *CategoryUseCase) Delete(businessID, id string) error {
	category, err := uc.repo.GetByID(id)
	if err != nil {
		return err
	}
	if category == nil {
		return domain.ErrNotFound
	}
	if category.BusinessID != businessID {
		return domain.ErrForbidden
	}
	return uc.repo.Delete(id)
}

func toCategoryResponse(c *entity.Category) *dto.CategoryResponse {
	if c == nil {
		return nil
	}
	return &dto.CategoryResponse{
		ID:         c.ID,
		BusinessID: c.BusinessID,
		Name:       c.Name,
		Code:       c.Code,
		Status:     c.Status,
		CreatedAt:  c.CreatedAt,
		UpdatedAt:  c.UpdatedAt,
	}
}
