package entity

import "time"

// Unit is a unit of measure for products (e.g. "Kilogram"/"kg", "Piece"/"pc").
type Unit struct {
	ID           string
	BusinessID   string
	Name         string
	Abbreviation string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
