package dto

import "time"

// CreateCategoryRequest input to create a category.
type CreateCategoryRequest struct {
	Name string `json:"name" validate:"required,min=1,max=100"`
	Code string `json:"code" validate:"required,min=1,max=50"`
}

// UpdateCategoryRequest input to update a category.
type UpdateCategoryRequest struct {
	Name   *string `json:"name" validate:"omitempty,min=1,max=100"`
	Status *string `json:"status" validate:"omitempty,oneof=active inactive"`
}

// CategoryResponse output for a category.
type CategoryResponse struct {
	ID         string    `json:"id"`
	BusinessID string    `json:"business_id"`
	Name       string    `json:"name"`
	Code       string    `json:"code"`
	Status     string    `json:"status"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// CategoryListResponse paginated category list.
type CategoryListResponse struct {
	Items []CategoryResponse `json:"items"`
	Page  PageResponse       `json:"page"`
}
