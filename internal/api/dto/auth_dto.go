package dto

import (
	"time"

	"github.com/spec-kit/platform-admin/internal/domain"
)

// RegisterRequest payload.
type RegisterRequest struct {
	Name     string `json:"name" validate:"required,min=2,max=120"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8,max=72"`
}

// LoginRequest payload.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// AuthResponse carries the issued token.
type AuthResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}

// UserResponse is the account shape returned to clients.
type UserResponse struct {
	ID         string               `json:"id"`
	Name       string               `json:"name"`
	Email      string               `json:"email"`
	Role       domain.Role          `json:"role"`
	State      domain.WorkflowState `json:"state"`
	StateLabel string               `json:"state_label"`
	StateColor string               `json:"state_color"`
	LastSeenAt *time.Time           `json:"last_seen_at"`
	CreatedAt  time.Time            `json:"created_at"`
}

// NewUserResponse maps a domain user.
func NewUserResponse(user *domain.User) UserResponse {
	return UserResponse{
		ID:         user.ID,
		Name:       user.Name,
		Email:      user.Email,
		Role:       user.Role,
		State:      user.State,
		StateLabel: user.State.Label(),
		StateColor: user.State.Color(),
		LastSeenAt: user.LastSeenAt,
		CreatedAt:  user.CreatedAt,
	}
}
