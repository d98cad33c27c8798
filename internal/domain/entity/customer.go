package entity

import "time"

// Customer represents a billing customer of the business.
type Customer struct {
	ID         string
	BusinessID string
	Name       string
	GSTIN      string // optional; unregistered customers have none
	Email      string
	Phone      string
	Address    string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}
