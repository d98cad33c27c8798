package repository

import "github.com/nivaanlabs/gstbill-api/internal/domain/entity"

// CustomerRepository defines the persistence port for Customer.
type CustomerRepository interface {
	Create(customer *entity.Customer) error
	GetByID(id string) (*entity.Customer, error)
	GetByBusinessAndPhone(businessID, phone string) (*entity.Customer, error)
	Update(customer *entity.Customer) error
	ListByBusiness(businessID string, limit, offset int) ([]*entity.Customer, error)
	ListAllByBusiness(businessID string) ([]*entity.Customer, error)
	Delete(id string) error
}
