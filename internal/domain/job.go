package domain

import "time"

// JobStatus enumerates lifecycle states for marketplace jobs.
type JobStatus string

const (
	JobStatusPending   JobStatus = "PENDING"
	JobStatusRunning   JobStatus = "RUNNING"
	JobStatusCompleted JobStatus = "COMPLETED"
	JobStatusFailed    JobStatus = "FAILED"
	JobStatusCancelled JobStatus = "CANCELLED"
)

// JobStatusOrder fixes the display order used by the status-breakdown widget.
var JobStatusOrder = []JobStatus{
	JobStatusPending,
	JobStatusRunning,
	JobStatusCompleted,
	JobStatusFailed,
	JobStatusCancelled,
}

// Label returns the display label used by chart widgets.
func (s JobStatus) Label() string {
	switch s {
	case JobStatusPending:
		return "Pending"
	case JobStatusRunning:
		return "Running"
	case JobStatusCompleted:
		return "Completed"
	case JobStatusFailed:
		return "Failed"
	case JobStatusCancelled:
		return "Cancelled"
	default:
		return "Unknown"
	}
}

// Job is a unit of customer work dispatched by the scheduler.
type Job struct {
	ID          string
	ExternalKey string
	OwnerID     string
	DeviceID    *string
	FlowID      *string
	Title       string
	Status      JobStatus
	ScheduledAt *time.Time
	StartedAt   *time.Time
	FinishedAt  *time.Time
	LastError   *string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Due reports whether a pending job's schedule time has passed.
func (j *Job) Due(now time.Time) bool {
	if j.Status != JobStatusPending || j.ScheduledAt == nil {
		return false
	}
	return !j.ScheduledAt.After(now)
}
