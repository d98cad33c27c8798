package repository

import "github.com/nivaanlabs/gstbill-api/internal/domain/entity"

// UserRepository defines the persistence port for User.
type UserRepository interface {
	Create(user *entity.User) error
	GetByID(id string) (*entity.User, error)
	GetByEmail(email string) (*entity.User, error)
}
