package repository

import "github.com/nivaanlabs/gstbill-api/internal/domain/entity"

// CategoryRepository defines the persistence port for Category.
type CategoryRepository interface {
	Create(category *entity.Category) error
	GetByID(id string) (*entity.Category, error)
	GetByBusinessAndCode(businessID, code string) (*entity.Category, error)
	Update(category *entity.Category) error
	ListByBusiness(businessID string, limit, offset int) ([]*entity.Category, error)
	Delete(id string) error
}
