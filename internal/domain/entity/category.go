package entity

import "time"

// Category groups products for catalog navigation and reporting.
type Category struct {
	ID         string
	BusinessID string
	Name       string
	Code       string // unique per business
	Status     string // active, inactive
	CreatedAt  time.Time
	UpdatedAt  time.Time
}
