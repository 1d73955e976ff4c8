package auth

import (
	"github.com/google/uuid"

	"github.com/streetside/storefront-backend/pkg/db/models"
)

// LoginRequest carries the credential pair supplied at login.
type LoginRequest struct {
	Email    string
	Password string
}

// UserDTO exposes the non-secret admin user fields returned after login.
type UserDTO struct {
	ID    uuid.UUID `json:"id"`
	Email string    `json:"email"`
	Role  string    `json:"role"`
}

// LoginResponse is the login payload: a bearer token plus the user it names.
type LoginResponse struct {
	Token string  `json:"token"`
	User  UserDTO `json:"user"`
}

// FromModel maps the persisted admin user onto its public DTO.
func FromModel(user *models.AdminUser) UserDTO {
	return UserDTO{
		ID:    user.ID,
		Email: user.Email,
		Role:  string(user.Role),
	}
}
