package service

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/spec-kit/platform-admin/internal/domain"
	"github.com/spec-kit/platform-admin/internal/events"
	"github.com/spec-kit/platform-admin/internal/repository"
	apperrors "github.com/spec-kit/platform-admin/pkg/util"
)

// NotificationService turns domain events into per-user notifications and
// serves the in-app notification feed.
type NotificationService struct {
	notifications repository.NotificationRepository
	logger        *zap.Logger
}

// NewNotificationService constructs the service.
func NewNotificationService(notifications repository.NotificationRepository, logger *zap.Logger) *NotificationService {
	return &NotificationService{notifications: notifications, logger: logger}
}

// RegisterHandlers subscribes the service to the events it materializes as
// notifications.
func (s *NotificationService) RegisterHandlers(dispatcher events.Dispatcher) {
	dispatcher.Subscribe(events.EventUserStateChanged, s.onUserStateChanged)
	dispatcher.Subscribe(events.EventJobDispatched, s.onJobDispatched)
	dispatcher.Subscribe(events.EventDeviceStale, s.onDeviceStale)
}

func (s *NotificationService) onUserStateChanged(ctx context.Context, event events.Event) error {
	payload, ok := event.Payload.(events.UserStateChangedPayload)
	if !ok {
		return fmt.Errorf("unexpected payload type for %s", event.Type)
	}

	level := domain.NotificationLevelInfo
	switch payload.NewState {
	case domain.WorkflowStateActive:
		level = domain.NotificationLevelSuccess
	case domain.WorkflowStateSuspended:
		level = domain.NotificationLevelWarning
	case domain.WorkflowStateArchived:
		level = domain.NotificationLevelError
	}

	return s.persist(ctx, &domain.Notification{
		RecipientID: payload.UserID,
		Level:       level,
		Title:       "Account status updated",
		Body:        fmt.Sprintf("Your account is now %s.", payload.NewState.Label()),
	})
}

func (s *NotificationService) onJobDispatched(ctx context.Context, event events.Event) error {
	payload, ok := event.Payload.(events.JobDispatchedPayload)
	if !ok {
		return fmt.Errorf("unexpected payload type for %s", event.Type)
	}

	return s.persist(ctx, &domain.Notification{
		RecipientID: payload.OwnerID,
		Level:       domain.NotificationLevelInfo,
		Title:       "Job started",
		Body:        fmt.Sprintf("Job %q is now running.", payload.Title),
	})
}

func (s *NotificationService) onDeviceStale(ctx context.Context, event events.Event) error {
	payload, ok := event.Payload.(events.DeviceStalePayload)
	if !ok {
		return fmt.Errorf("unexpected payload type for %s", event.Type)
	}

	body := fmt.Sprintf("Device %q has not checked in recently.", payload.Name)
	if payload.LastSeen != nil {
		body = fmt.Sprintf("Device %q has not checked in since %s.", payload.Name, payload.LastSeen.Format(time.RFC3339))
	}

	return s.persist(ctx, &domain.Notification{
		RecipientID: payload.OwnerID,
		Level:       domain.NotificationLevelWarning,
		Title:       "Device offline",
		Body:        body,
	})
}

func (s *NotificationService) persist(ctx context.Context, n *domain.Notification) error {
	if err := s.notifications.Create(ctx, n); err != nil {
		s.logger.Error("notification insert failed",
			zap.String("recipient_id", n.RecipientID),
			zap.String("title", n.Title),
			zap.Error(err))
		return err
	}
	return nil
}

// ListForUser returns the caller's notification feed.
func (s *NotificationService) ListForUser(ctx context.Context, userID string, unreadOnly bool, limit, offset int) ([]domain.Notification, error) {
	return s.notifications.ListByRecipient(ctx, userID, unreadOnly, limit, offset)
}

// MarkRead marks one of the caller's notifications as read.
func (s *NotificationService) MarkRead(ctx context.Context, userID, id string) error {
	err := s.notifications.MarkRead(ctx, userID, id, time.Now().UTC())
	if err == pgx.ErrNoRows {
		return apperrors.NewNotFound("notification", map[string]any{"id": id})
	}
	return err
}
