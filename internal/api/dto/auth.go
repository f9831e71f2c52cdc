package dto

import "github.com/paycal/backend/internal/domain/user"

// LoginRequest represents a login request
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// RegisterRequest represents a registration request
type RegisterRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
	Name     string `json:"name" validate:"required,min=2,max=100"`
}

// AuthResponse represents an authentication response
type AuthResponse struct {
	Token string     `json:"token"`
	User  *user.User `json:"user"`
}
