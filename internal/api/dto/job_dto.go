package dto

import (
	"time"

	"github.com/spec-kit/platform-admin/internal/domain"
)

// CreateJobRequest payload.
type CreateJobRequest struct {
	Title       string     `json:"title" validate:"required,min=1,max=200"`
	DeviceID    *string    `json:"device_id" validate:"omitempty,uuid4"`
	FlowID      *string    `json:"flow_id" validate:"omitempty,uuid4"`
	ScheduledAt *time.Time `json:"scheduled_at"`
}

// FailJobRequest payload.
type FailJobRequest struct {
	Reason string `json:"reason" validate:"required,min=1,max=500"`
}

// JobResponse is the job shape returned to clients.
type JobResponse struct {
	ID          string           `json:"id"`
	ExternalKey string           `json:"external_key"`
	OwnerID     string           `json:"owner_id"`
	DeviceID    *string          `json:"device_id"`
	FlowID      *string          `json:"flow_id"`
	Title       string           `json:"title"`
	Status      domain.JobStatus `json:"status"`
	StatusLabel string           `json:"status_label"`
	ScheduledAt *time.Time       `json:"scheduled_at"`
	StartedAt   *time.Time       `json:"started_at"`
	FinishedAt  *time.Time       `json:"finished_at"`
	LastError   *string          `json:"last_error"`
	CreatedAt   time.Time        `json:"created_at"`
}

// NewJobResponse maps a domain job.
func NewJobResponse(job *domain.Job) JobResponse {
	return JobResponse{
		ID:          job.ID,
		ExternalKey: job.ExternalKey,
		OwnerID:     job.OwnerID,
		DeviceID:    job.DeviceID,
		FlowID:      job.FlowID,
		Title:       job.Title,
		Status:      job.Status,
		StatusLabel: job.Status.Label(),
		ScheduledAt: job.ScheduledAt,
		StartedAt:   job.StartedAt,
		FinishedAt:  job.FinishedAt,
		LastError:   job.LastError,
		CreatedAt:   job.CreatedAt,
	}
}
