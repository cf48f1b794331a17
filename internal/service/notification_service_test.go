package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/spec-kit/platform-admin/internal/domain"
	"github.com/spec-kit/platform-admin/internal/events"
)

type memoryNotificationRepo struct {
	rows []domain.Notification
}

func (m *memoryNotificationRepo) Create(_ context.Context, n *domain.Notification) error {
	m.rows = append(m.rows, *n)
	return nil
}

func (m *memoryNotificationRepo) ListByRecipient(_ context.Context, recipientID string, unreadOnly bool, _, _ int) ([]domain.Notification, error) {
	var result []domain.Notification
	for _, row := range m.rows {
		if row.RecipientID != recipientID {
			continue
		}
		if unreadOnly && row.ReadAt != nil {
			continue
		}
		result = append(result, row)
	}
	return result, nil
}

func (m *memoryNotificationRepo) MarkRead(_ context.Context, recipientID, id string, at time.Time) error {
	for i := range m.rows {
		if m.rows[i].ID == id && m.rows[i].RecipientID == recipientID {
			m.rows[i].ReadAt = &at
			return nil
		}
	}
	return nil
}

func (m *memoryNotificationRepo) DeleteReadBefore(context.Context, time.Time) (int64, error) {
	return 0, nil
}

func TestNotificationOnUserStateChanged(t *testing.T) {
	repo := &memoryNotificationRepo{}
	dispatcher := events.NewInMemoryDispatcher()

	svc := NewNotificationService(repo, zap.NewNop())
	svc.RegisterHandlers(dispatcher)

	err := dispatcher.Publish(context.Background(), events.Event{
		Type:      events.EventUserStateChanged,
		Timestamp: time.Now().UTC(),
		Payload: events.UserStateChangedPayload{
			UserID:   "u1",
			OldState: domain.WorkflowStateActive,
			NewState: domain.WorkflowStateSuspended,
		},
	})
	require.NoError(t, err)

	require.Len(t, repo.rows, 1)
	assert.Equal(t, "u1", repo.rows[0].RecipientID)
	assert.Equal(t, domain.NotificationLevelWarning, repo.rows[0].Level)
	assert.Contains(t, repo.rows[0].Body, "Suspended")
}

func TestNotificationOnJobDispatched(t *testing.T) {
	repo := &memoryNotificationRepo{}
	dispatcher := events.NewInMemoryDispatcher()

	svc := NewNotificationService(repo, zap.NewNop())
	svc.RegisterHandlers(dispatcher)

	err := dispatcher.Publish(context.Background(), events.Event{
		Type:      events.EventJobDispatched,
		Timestamp: time.Now().UTC(),
		Payload: events.JobDispatchedPayload{
			JobID:   "j1",
			OwnerID: "u2",
			Title:   "nightly export",
		},
	})
	require.NoError(t, err)

	require.Len(t, repo.rows, 1)
	assert.Equal(t, "u2", repo.rows[0].RecipientID)
	assert.Contains(t, repo.rows[0].Body, "nightly export")
}

func TestNotificationOnDeviceStale(t *testing.T) {
	repo := &memoryNotificationRepo{}
	dispatcher := events.NewInMemoryDispatcher()

	svc := NewNotificationService(repo, zap.NewNop())
	svc.RegisterHandlers(dispatcher)

	lastSeen := time.Date(2026, 8, 20, 10, 0, 0, 0, time.UTC)
	err := dispatcher.Publish(context.Background(), events.Event{
		Type:      events.EventDeviceStale,
		Timestamp: time.Now().UTC(),
		Payload: events.DeviceStalePayload{
			DeviceID: "d1",
			OwnerID:  "u3",
			Name:     "warehouse-pi",
			LastSeen: &lastSeen,
		},
	})
	require.NoError(t, err)

	require.Len(t, repo.rows, 1)
	assert.Equal(t, domain.NotificationLevelWarning, repo.rows[0].Level)
	assert.Contains(t, repo.rows[0].Body, "warehouse-pi")
}

func TestNotificationListUnreadOnly(t *testing.T) {
	readAt := time.Now().UTC()
	repo := &memoryNotificationRepo{rows: []domain.Notification{
		{ID: "n1", RecipientID: "u1"},
		{ID: "n2", RecipientID: "u1", ReadAt: &readAt},
		{ID: "n3", RecipientID: "u2"},
	}}
	svc := NewNotificationService(repo, zap.NewNop())

	unread, err := svc.ListForUser(context.Background(), "u1", true, 50, 0)
	require.NoError(t, err)
	require.Len(t, unread, 1)
	assert.Equal(t, "n1", unread[0].ID)
}
