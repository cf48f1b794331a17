package events

import (
	"time"

	"github.com/spec-kit/platform-admin/internal/domain"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventUserStateChanged EventType = "user_state_changed"
	EventJobDispatched    EventType = "job_dispatched"
	EventDeviceStale      EventType = "device_stale"
	EventTaskRunFinished  EventType = "task_run_finished"
)

// Event represents a domain event emitted by services and tasks.
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	ActorID   *string     `json:"actor_id,omitempty"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload"`
}

// UserStateChangedPayload payload.
type UserStateChangedPayload struct {
	UserID   string               `json:"user_id"`
	OldState domain.WorkflowState `json:"old_state"`
	NewState domain.WorkflowState `json:"new_state"`
}

// JobDispatchedPayload payload.
type JobDispatchedPayload struct {
	JobID    string  `json:"job_id"`
	OwnerID  string  `json:"owner_id"`
	Title    string  `json:"title"`
	DeviceID *string `json:"device_id,omitempty"`
}

// DeviceStalePayload payload.
type DeviceStalePayload struct {
	DeviceID string     `json:"device_id"`
	OwnerID  string     `json:"owner_id"`
	Name     string     `json:"name"`
	LastSeen *time.Time `json:"last_seen,omitempty"`
}

// TaskRunFinishedPayload payload.
type TaskRunFinishedPayload struct {
	Task     string `json:"task"`
	Status   string `json:"status"`
	Duration string `json:"duration"`
	Error    string `json:"error,omitempty"`
}
