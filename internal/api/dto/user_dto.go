package dto

import (
	"github.com/spec-kit/platform-admin/internal/domain"
)

// ChangeStateRequest payload for the admin state-transition endpoint.
type ChangeStateRequest struct {
	State domain.WorkflowState `json:"state" validate:"required,oneof=PENDING ACTIVE SUSPENDED ARCHIVED"`
}

// UserListQuery captures admin user-table filters.
type UserListQuery struct {
	States   []domain.WorkflowState
	Role     *domain.Role
	Search   *string
	Page     int
	PageSize int
}
