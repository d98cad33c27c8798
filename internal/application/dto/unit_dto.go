package dto

import "time"

// CreateUnitRequest input to create a unit of measure.
type CreateUnitRequest struct {
	Name         string `json:"name" validate:"required,min=1,max=100"`
	Abbreviation string `json:"abbreviation" validate:"required,min=1,max=20"`
}

// UpdateUnitRequest input to update a unit.
type UpdateUnitRequest struct {
	Name         *string `json:"name" validate:"omitempty,min=1,max=100"`
	Abbreviation *string `json:"abbreviation" validate:"omitempty,min=1,max=20"`
}

// UnitResponse output for a unit.
type UnitResponse struct {
	ID           string    `json:"id"`
	BusinessID   string    `json:"business_id"`
	Name         string    `json:"name"`
	Abbreviation string    `json:"abbreviation"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// UnitListResponse paginated unit list.
type UnitListResponse struct {
	Items []UnitResponse `json:"items"`
	Page  PageResponse   `json:"page"`
}
