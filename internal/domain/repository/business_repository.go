package repository

import "github.com/nivaanlabs/gstbill-api/internal/domain/entity"

// BusinessRepository defines the persistence port for Business.
type BusinessRepository interface {
	Create(business *entity.Business) error
	GetByID(id string) (*entity.Business, error)
	Update(business *entity.Business) error
}
