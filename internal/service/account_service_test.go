package service

import (
	"context"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/platform-admin/internal/domain"
	"github.com/spec-kit/platform-admin/internal/events"
	"github.com/spec-kit/platform-admin/internal/repository"
	apperrors "github.com/spec-kit/platform-admin/pkg/util"
)

type fakeUserRepo struct {
	users map[string]*domain.User
}

func newFakeUserRepo(users ...*domain.User) *fakeUserRepo {
	repo := &fakeUserRepo{users: make(map[string]*domain.User)}
	for _, user := range users {
		repo.users[user.ID] = user
	}
	return repo
}

func (f *fakeUserRepo) Create(_ context.Context, user *domain.User) error {
	f.users[user.ID] = user
	return nil
}

func (f *fakeUserRepo) Update(_ context.Context, user *domain.User) error {
	if _, ok := f.users[user.ID]; !ok {
		return pgx.ErrNoRows
	}
	f.users[user.ID] = user
	return nil
}

func (f *fakeUserRepo) UpdateState(_ context.Context, id string, state domain.WorkflowState) error {
	user, ok := f.users[id]
	if !ok {
		return pgx.ErrNoRows
	}
	user.State = state
	return nil
}

func (f *fakeUserRepo) GetByID(_ context.Context, id string) (*domain.User, error) {
	user, ok := f.users[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	copied := *user
	return &copied, nil
}

func (f *fakeUserRepo) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	for _, user := range f.users {
		if user.Email == email {
			copied := *user
			return &copied, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (f *fakeUserRepo) ListWithFilter(context.Context, repository.UserFilter) ([]domain.User, error) {
	var result []domain.User
	for _, user := range f.users {
		result = append(result, *user)
	}
	return result, nil
}

func (f *fakeUserRepo) TouchLastSeen(_ context.Context, id string, at time.Time) error {
	if user, ok := f.users[id]; ok {
		user.LastSeenAt = &at
	}
	return nil
}

func TestChangeStateAllowed(t *testing.T) {
	repo := newFakeUserRepo(&domain.User{ID: "u1", State: domain.WorkflowStatePending})
	dispatcher := events.NewInMemoryDispatcher()

	var published []events.Event
	dispatcher.Subscribe(events.EventUserStateChanged, func(_ context.Context, e events.Event) error {
		published = append(published, e)
		return nil
	})

	svc := NewAccountService(repo, dispatcher)
	user, err := svc.Activate(context.Background(), "admin", "u1")
	require.NoError(t, err)
	assert.Equal(t, domain.WorkflowStateActive, user.State)
	assert.Equal(t, domain.WorkflowStateActive, repo.users["u1"].State)

	require.Len(t, published, 1)
	payload, ok := published[0].Payload.(events.UserStateChangedPayload)
	require.True(t, ok)
	assert.Equal(t, domain.WorkflowStatePending, payload.OldState)
	assert.Equal(t, domain.WorkflowStateActive, payload.NewState)
}

func TestChangeStateRejected(t *testing.T) {
	repo := newFakeUserRepo(&domain.User{ID: "u1", State: domain.WorkflowStatePending})
	svc := NewAccountService(repo, nil)

	_, err := svc.Archive(context.Background(), "admin", "u1")
	require.Error(t, err)

	domainErr := apperrors.ToDomainError(err)
	assert.Equal(t, "CONFLICT", domainErr.Code)
	assert.Equal(t, domain.WorkflowStatePending, repo.users["u1"].State, "state must not change")
}

func TestChangeStateUnknownState(t *testing.T) {
	repo := newFakeUserRepo(&domain.User{ID: "u1", State: domain.WorkflowStateActive})
	svc := NewAccountService(repo, nil)

	_, err := svc.ChangeState(context.Background(), "admin", "u1", domain.WorkflowState("BOGUS"))
	require.Error(t, err)
	assert.Equal(t, "VALIDATION_FAILED", apperrors.ToDomainError(err).Code)
}

func TestChangeStateMissingUser(t *testing.T) {
	svc := NewAccountService(newFakeUserRepo(), nil)

	_, err := svc.Suspend(context.Background(), "admin", "missing")
	require.Error(t, err)
	assert.Equal(t, "NOT_FOUND", apperrors.ToDomainError(err).Code)
}
