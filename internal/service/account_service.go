package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/platform-admin/internal/domain"
	"github.com/spec-kit/platform-admin/internal/events"
	"github.com/spec-kit/platform-admin/internal/repository"
	apperrors "github.com/spec-kit/platform-admin/pkg/util"
)

// AccountService carries admin operations on user accounts, most importantly
// the workflow state transitions.
type AccountService struct {
	users      repository.UserRepository
	dispatcher events.Dispatcher
}

// NewAccountService constructs the service.
func NewAccountService(users repository.UserRepository, dispatcher events.Dispatcher) *AccountService {
	return &AccountService{users: users, dispatcher: dispatcher}
}

// ListUsers returns accounts matching the admin table filter.
func (s *AccountService) ListUsers(ctx context.Context, filter repository.UserFilter) ([]domain.User, error) {
	return s.users.ListWithFilter(ctx, filter)
}

// GetUser loads one account.
func (s *AccountService) GetUser(ctx context.Context, id string) (*domain.User, error) {
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.NewNotFound("user", map[string]any{"id": id})
		}
		return nil, err
	}
	return user, nil
}

// ChangeState validates and applies a workflow transition, then records the
// change as an event. Disallowed transitions are rejected before any write.
func (s *AccountService) ChangeState(ctx context.Context, actorID, userID string, next domain.WorkflowState) (*domain.User, error) {
	if !next.IsValid() {
		return nil, apperrors.NewValidationError("unknown workflow state", map[string]any{"state": next})
	}

	user, err := s.GetUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	oldState := user.State
	if err := user.TransitionTo(next); err != nil {
		var invalid *domain.InvalidTransitionError
		if errors.As(err, &invalid) {
			return nil, apperrors.NewConflict("workflow transition not allowed", map[string]any{
				"from": invalid.From,
				"to":   invalid.To,
			})
		}
		return nil, err
	}

	if err := s.users.UpdateState(ctx, user.ID, user.State); err != nil {
		return nil, err
	}

	if s.dispatcher != nil {
		_ = s.dispatcher.Publish(ctx, events.Event{
			ID:        uuid.NewString(),
			Type:      events.EventUserStateChanged,
			ActorID:   &actorID,
			Timestamp: time.Now().UTC(),
			Payload: events.UserStateChangedPayload{
				UserID:   user.ID,
				OldState: oldState,
				NewState: user.State,
			},
		})
	}
	return user, nil
}

// StateChangeFunc is the shared signature of the transition shortcuts.
type StateChangeFunc func(ctx context.Context, actorID, userID string) (*domain.User, error)

// Activate moves a pending or suspended account to ACTIVE.
func (s *AccountService) Activate(ctx context.Context, actorID, userID string) (*domain.User, error) {
	return s.ChangeState(ctx, actorID, userID, domain.WorkflowStateActive)
}

// Reinstate returns a suspended account to ACTIVE. Same transition as
// Activate; kept as its own verb for the admin UI.
func (s *AccountService) Reinstate(ctx context.Context, actorID, userID string) (*domain.User, error) {
	return s.ChangeState(ctx, actorID, userID, domain.WorkflowStateActive)
}

// Suspend moves an active account to SUSPENDED.
func (s *AccountService) Suspend(ctx context.Context, actorID, userID string) (*domain.User, error) {
	return s.ChangeState(ctx, actorID, userID, domain.WorkflowStateSuspended)
}

// Archive retires an account permanently.
func (s *AccountService) Archive(ctx context.Context, actorID, userID string) (*domain.User, error) {
	return s.ChangeState(ctx, actorID, userID, domain.WorkflowStateArchived)
}
