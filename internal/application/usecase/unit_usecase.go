package usecase

import (
	"time"

	"github.com/google/uuid"

	"github.com/nivaanlabs/gstbill-api/internal/application/dto"
	"github.com/nivaanlabs/gstbill-api/internal/domain"
	"github.com/nivaanlabs/gstbill-api/internal/domain/entity"
	"github.com/nivaanlabs/gstbill-api/internal/domain/repository"
)

// UnitUseCase CRUD use cases for units of measure.
type UnitUseCase struct {
	repo repository.UnitRepository
}

// NewUnitUseCase builds the use case.
func NewUnitUseCase(repo repository.UnitRepository) *UnitUseCase {
	return &UnitUseCase{repo: repo}
}

// Create creates a unit.
func (uc *UnitUseCase) Create(businessID string, in dto.CreateUnitRequest) (*dto.UnitResponse, error) {
	now := time.Now()
	unit := &entity.Unit{
		ID:           uuid.New().String(),
		BusinessID:   businessID,
		Name:         in.Name,
		Abbreviation: in.Abbreviation,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.repo.Create(unit); err != nil {
		return nil, err
	}
	return toUnitResponse(unit), nil
}

// GetByID returns a unit, scoped to the business.
func (uc *UnitUseCase) GetByID(businessID, id string) (*dto.UnitResponse, error) {
	unit, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if unit == nil {
		return nil, nil
	}
	if unit.BusinessID != businessID {
		return nil, domain.ErrForbidden
	}
	return toUnitResponse(unit), nil
}

// Update updates a unit.
func (uc *UnitUseCase) Update(businessID, id string, in dto.UpdateUnitRequest) (*dto.UnitResponse, error) {
	unit, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if unit == nil {
		return nil, nil
	}
	if unit.BusinessID != businessID {
		return nil, domain.ErrForbidden
	}
	if in.Name != nil {
		unit.Name = *in.Name
	}
	if in.Abbreviation != nil {
		unit.Abbreviation = *in.Abbreviation
	}
	unit.UpdatedAt = time.Now()
	if err := uc.repo.Update(unit); err != nil {
		return nil, err
	}
	return toUnitResponse(unit), nil
}

// List lists units for a business with pagination.
func (uc *UnitUseCase) List(businessID string, limit, offset int) (*dto.UnitListResponse, error) {
	list, err := uc.repo.ListByBusiness(businessID, limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.UnitResponse, 0, len(list))
	for _, u := range list {
		items = append(items, *toUnitResponse(u))
	}
	return &dto.UnitListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: limit, Offset: offset},
	}, nil
}

// Delete removes a unit, scoped to the business.
func (uc *UnitUseCase) Delete(businessID, id string) error {
	unit, err := uc.repo.GetByID(id)
	if err != nil {
		return err
	}
	if unit == nil {
		return domain.ErrNotFound
	}
	if unit.BusinessID != businessID {
		return domain.ErrForbidden
	}
	return uc.repo.Delete(id)
}

func toUnitResponse(u *entity.Unit) *dto.UnitResponse {
	if u == nil {
		return nil
	}
	return &dto.UnitResponse{
		ID:           u.ID,
		BusinessID:   u.BusinessID,
		Name:         u.Name,
		Abbreviation: u.Abbreviation,
		CreatedAt:    u.CreatedAt,
		UpdatedAt:    u.UpdatedAt,
	}
}
