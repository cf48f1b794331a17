package domain

import (
	"fmt"
	"time"
)

// WorkflowState represents account lifecycle states for a user.
type WorkflowState string

const (
	WorkflowStatePending   WorkflowState = "PENDING"
	WorkflowStateActive    WorkflowState = "ACTIVE"
	WorkflowStateSuspended WorkflowState = "SUSPENDED"
	WorkflowStateArchived  WorkflowState = "ARCHIVED"
)

// workflowTransitions is the allowed-transition table. ARCHIVED is terminal.
var workflowTransitions = map[WorkflowState][]WorkflowState{
	WorkflowStatePending:   {WorkflowStateActive},
	WorkflowStateActive:    {WorkflowStateSuspended, WorkflowStateArchived},
	WorkflowStateSuspended: {WorkflowStateActive, WorkflowStateArchived},
	WorkflowStateArchived:  {},
}

// InvalidTransitionError reports a rejected workflow state change.
type InvalidTransitionError struct {
	From WorkflowState
	To   WorkflowState
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("invalid workflow transition %s -> %s", e.From, e.To)
}

// IsValid reports whether the state is a known workflow state.
func (s WorkflowState) IsValid() bool {
	_, ok := workflowTransitions[s]
	return ok
}

// CanTransitionTo reports whether the move to next is in the allowed set.
func (s WorkflowState) CanTransitionTo(next WorkflowState) bool {
	for _, allowed := range workflowTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// Label returns the display label shown in admin tables.
func (s WorkflowState) Label() string {
	switch s {
	case WorkflowStatePending:
		return "Pending"
	case WorkflowStateActive:
		return "Active"
	case WorkflowStateSuspended:
		return "Suspended"
	case WorkflowStateArchived:
		return "Archived"
	default:
		return "Unknown"
	}
}

// Color returns the UI color tag associated with the state.
func (s WorkflowState) Color() string {
	switch s {
	case WorkflowStatePending:
		return "warning"
	case WorkflowStateActive:
		return "success"
	case WorkflowStateSuspended:
		return "danger"
	case WorkflowStateArchived:
		return "gray"
	default:
		return "gray"
	}
}

// Role differentiates admin operators from customers.
type Role string

const (
	RoleAdmin    Role = "ADMIN"
	RoleCustomer Role = "CUSTOMER"
)

// User is the domain model for platform accounts.
type User struct {
	ID           string
	Name         string
	Email        string
	PasswordHash string
	Role         Role
	State        WorkflowState
	LastSeenAt   *time.Time
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// NewUserState is the state every registration starts in.
func NewUserState() WorkflowState {
	return WorkflowStatePending
}

// TransitionTo mutates the user's workflow state after validating the move.
func (u *User) TransitionTo(next WorkflowState) error {
	if !u.State.CanTransitionTo(next) {
		return &InvalidTransitionError{From: u.State, To: next}
	}
	u.State = next
	return nil
}
