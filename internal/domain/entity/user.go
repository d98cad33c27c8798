package entity

import "time"

// Roles for users of a business.
const (
	RoleAdmin   = "admin"
	RoleBilling = "billing"
	RoleStock   = "stock"
)

// User represents an application user belonging to a business.
type User struct {
	ID           string
	BusinessID   string
	Name         string
	Email        string
	PasswordHash string
	Role         string // admin, billing, stock
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
