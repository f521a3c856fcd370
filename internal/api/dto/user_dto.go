package dto

import (
	"time"

	"github.com/spec-kit/supply-portal/internal/domain"
)

// UserRequest payload for creating or replacing an account.
type UserRequest struct {
	Username              string         `json:"username" validate:"required,min=3,max=50"`
	Password              string         `json:"password" validate:"required,min=6"`
	Email                 string         `json:"email" validate:"required,email"`
	IsActive              *bool          `json:"is_active"`
	LastUpdatedDeviceInfo map[string]any `json:"last_updated_device_info"`
}

// UserResponse exposes an account without its password hash.
type UserResponse struct {
	ID                    string         `json:"id"`
	Username              string         `json:"username"`
	Email                 string         `json:"email"`
	IsActive              bool           `json:"is_active"`
	LastUpdatedDeviceInfo map[string]any `json:"last_updated_device_info,omitempty"`
	CreatedAt             time.Time      `json:"created_at"`
	UpdatedAt             time.Time      `json:"updated_at"`
}

// NewUserResponse maps an account.
func NewUserResponse(a *domain.Account) UserResponse {
	return UserResponse{
		ID:                    a.ID,
		Username:              a.Username,
		Email:                 a.Email,
		IsActive:              a.IsActive,
		LastUpdatedDeviceInfo: a.LastUpdatedDeviceInfo,
		CreatedAt:             a.CreatedAt,
		UpdatedAt:             a.UpdatedAt,
	}
}
