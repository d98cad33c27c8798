package dto

// RegisterRequest creates a business together with its admin user.
type RegisterRequest struct {
	BusinessName string `json:"business_name" validate:"required,min=1,max=200"`
	GSTIN        string `json:"gstin" validate:"omitempty,len=15"`
	Address      string `json:"address"`
	Phone        string `json:"phone"`
	UPIAddress   string `json:"upi_address"`
	UserName     string `json:"user_name" validate:"required"`
	Email        string `json:"email" validate:"required,email"`
	Password     string `json:"password" validate:"required,min=8"`
}

// LoginRequest credentials login.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// AuthResponse token plus identity info.
type AuthResponse struct {
	Token      string `json:"token"`
	UserID     string `json:"user_id"`
	BusinessID string `json:"business_id"`
	Role       string `json:"role"`
}
