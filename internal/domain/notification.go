package domain

import "time"

// NotificationLevel controls toast styling on the client.
type NotificationLevel string

const (
	NotificationLevelInfo    NotificationLevel = "INFO"
	NotificationLevelSuccess NotificationLevel = "SUCCESS"
	NotificationLevelWarning NotificationLevel = "WARNING"
	NotificationLevelError   NotificationLevel = "ERROR"
)

// Notification is a per-user message surfaced in the UI.
type Notification struct {
	ID          string
	RecipientID string
	Level       NotificationLevel
	Title       string
	Body        string
	ReadAt      *time.Time
	CreatedAt   time.Time
}
