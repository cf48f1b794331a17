package dto

import (
	"time"

	"github.com/spec-kit/platform-admin/internal/domain"
)

// NotificationResponse is the feed item shape.
type NotificationResponse struct {
	ID        string                   `json:"id"`
	Level     domain.NotificationLevel `json:"level"`
	Title     string                   `json:"title"`
	Body      string                   `json:"body"`
	ReadAt    *time.Time               `json:"read_at"`
	CreatedAt time.Time                `json:"created_at"`
}

// NewNotificationResponse maps a domain notification.
func NewNotificationResponse(n *domain.Notification) NotificationResponse {
	return NotificationResponse{
		ID:        n.ID,
		Level:     n.Level,
		Title:     n.Title,
		Body:      n.Body,
		ReadAt:    n.ReadAt,
		CreatedAt: n.CreatedAt,
	}
}

// UpsertSettingRequest payload.
type UpsertSettingRequest struct {
	Group string `json:"group" validate:"required,min=1,max=60"`
	Value string `json:"value" validate:"max=4000"`
}

// SettingResponse is the setting shape returned to clients.
type SettingResponse struct {
	Key       string    `json:"key"`
	Group     string    `json:"group"`
	Value     string    `json:"value"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NewSettingResponse maps a domain setting.
func NewSettingResponse(s *domain.Setting) SettingResponse {
	return SettingResponse{Key: s.Key, Group: s.Group, Value: s.Value, UpdatedAt: s.UpdatedAt}
}

// APILogResponse is one request log row.
type APILogResponse struct {
	ID         int64     `json:"id"`
	Method     string    `json:"method"`
	Path       string    `json:"path"`
	StatusCode int       `json:"status_code"`
	LatencyMS  int64     `json:"latency_ms"`
	CallerID   *string   `json:"caller_id"`
	CreatedAt  time.Time `json:"created_at"`
}

// NewAPILogResponse maps a domain log row.
func NewAPILogResponse(l *domain.APILog) APILogResponse {
	return APILogResponse{
		ID:         l.ID,
		Method:     l.Method,
		Path:       l.Path,
		StatusCode: l.StatusCode,
		LatencyMS:  l.LatencyMS,
		CallerID:   l.CallerID,
		CreatedAt:  l.CreatedAt,
	}
}

// TaskResponse describes a schedulable maintenance task and its last run.
type TaskResponse struct {
	Name        string         `json:"name"`
	Description string         `json:"description"`
	LastRun     *LastRunDetail `json:"last_run"`
}

// LastRunDetail mirrors the cached bookkeeping entry.
type LastRunDetail struct {
	Time     time.Time `json:"time"`
	Status   string    `json:"status"`
	Duration string    `json:"duration,omitempty"`
	Detail   string    `json:"detail,omitempty"`
	Error    string    `json:"error,omitempty"`
}
