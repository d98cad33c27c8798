package usecase

import (
	"time"

	"github.com/google/uuid"

	"github.com/nivaanlabs/gstbill-api/internal/application/dto"
	"github.com/nivaanlabs/gstbill-api/internal/domain"
	"github.com/nivaanlabs/gstbill-api/internal/domain/entity"
	"github.com/nivaanlabs/gstbill-api/internal/domain/repository"
)

// CustomerUseCase CRUD use cases for customers.
type CustomerUseCase struct {
	repo repository.CustomerRepository
}

// NewCustomerUseCase builds the use case.
func NewCustomerUseCase(repo repository.CustomerRepository) *CustomerUseCase {
	return &CustomerUseCase{repo: repo}
}

// Create creates a customer. Phone must be unique within the business when
// present, since the billing screen looks customers up by phone.
func (uc *CustomerUseCase) Create(businessID string, in dto.CreateCustomerRequest) (*dto.CustomerResponse, error) {
	if in.Phone != "" {
		existing, _ := uc.repo.GetByBusinessAndPhone(businessID, in.Phone)
		if existing != nil {
			return nil, domain.ErrDuplicate
		}
	}
	now := time.Now()
	customer := &entity.Customer{
		ID:         uuid.New().String(),
		BusinessID: businessID,
		Name:       in.Name,
		GSTIN:      in.GSTIN,
		Email:      in.Email,
		Phone:      in.Phone,
		Address:    in.Address,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := uc.repo.Create(customer); err != nil {
		return nil, err
	}
	return toCustomerResponse(customer), nil
}

// GetByID returns a customer, scoped to the business.
func (uc *CustomerUseCase) GetByID(businessID, id string) (*dto.CustomerResponse, error) {
	customer, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, nil
	}
	if customer.BusinessID != businessID {
		return nil, domain.ErrForbidden
	}
	return toCustomerResponse(customer), nil
}

// Update updates a customer.
func (uc *CustomerUseCase) Update(businessID, id string, in dto.UpdateCustomerRequest) (*dto.CustomerResponse, error) {
	customer, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, nil
	}
	if customer.BusinessID != businessID {
		return nil, domain.ErrForbidden
	}
	if in.Name != nil {
		customer.Name = *in.Name
	}
	if in.GSTIN != nil {
		customer.GSTIN = *in.GSTIN
	}
	if in.Email != nil {
		customer.Email = *in.Email
	}
	if in.Phone != nil {
		customer.Phone = *in.Phone
	}
	if in.Address != nil {
		customer.Address = *in.Address
	}
	customer.UpdatedAt = time.Now()
	if err := uc.repo.Update(customer); err != nil {
		return nil, err
	}
	return toCustomerResponse(customer), nil
}

// List lists customers for a business with pagination.
func (uc *CustomerUseCase) List(businessID string, limit, offset int) (*dto.CustomerListResponse, error) {
	list, err := uc.repo.ListByBusiness(businessID, limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.CustomerResponse, 0, len(list))
	for _, c := range list {
		items = append(items, *toCustomerResponse(c))
	}
	return &dto.CustomerListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: limit, Offset: offset},
	}, nil
}

// Delete removes a customer, scoped to the business.
func (uc *CustomerUseCase) Delete(businessID, id string) error {
	customer, err := uc.repo.GetByID(id)
	if err != nil {
		return err
	}
	if customer == nil {
		return domain.ErrNotFound
	}
	if customer.BusinessID != businessID {
		return domain.ErrForbidden
	}
	return uc.repo.Delete(id)
}

func toCustomerResponse(c *entity.Customer) *dto.CustomerResponse {
	if c == nil {
		return nil
	}
	return &dto.CustomerResponse{
		ID:         c.ID,
		BusinessID: c.BusinessID,
		Name:       c.Name,
		GSTIN:      c.GSTIN,
		Email:      c.Email,
		Phone:      c.Phone,
		Address:    c.Address,
		CreatedAt:  c.CreatedAt,
		UpdatedAt:  c.UpdatedAt,
	}
}
