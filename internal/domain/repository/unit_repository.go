package repository

import "github.com/nivaanlabs/gstbill-api/internal/domain/entity"

// UnitRepository defines the persistence port for units of measure.
type UnitRepository interface {
	Create(unit *entity.Unit) error
	GetByID(id string) (*entity.Unit, error)
	Update(unit *entity.Unit) error
	ListByBusiness(businessID string, limit, offset int) ([]*entity.Unit, error)
	Delete(id string) error
}
