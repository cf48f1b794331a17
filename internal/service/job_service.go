package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/platform-admin/internal/domain"
	"github.com/spec-kit/platform-admin/internal/repository"
	apperrors "github.com/spec-kit/platform-admin/pkg/util"
)

// JobService manages customer jobs. Dispatch of due jobs is owned by the
// scheduled task runner; this service covers creation, listing and the
// terminal transitions reachable through the API.
type JobService struct {
	jobs    repository.JobRepository
	devices repository.DeviceRepository
	flows   repository.FlowRepository
}

// NewJobService constructs the service.
func NewJobService(jobs repository.JobRepository, devices repository.DeviceRepository, flows repository.FlowRepository) *JobService {
	return &JobService{jobs: jobs, devices: devices, flows: flows}
}

// CreateJobInput carries the fields accepted when queueing a job.
type CreateJobInput struct {
	OwnerID     string
	Title       string
	DeviceID    *string
	FlowID      *string
	ScheduledAt *time.Time
}

// Create queues a new PENDING job. Referenced devices and flows must exist
// and belong to the owner.
func (s *JobService) Create(ctx context.Context, in CreateJobInput) (*domain.Job, error) {
	if in.DeviceID != nil {
		device, err := s.devices.GetByID(ctx, *in.DeviceID)
		if err != nil {
			if err == pgx.ErrNoRows {
				return nil, apperrors.NewValidationError("device not found", map[string]any{"device_id": *in.DeviceID})
			}
			return nil, err
		}
		if device.OwnerID != in.OwnerID {
			return nil, apperrors.NewForbidden("device belongs to another account")
		}
	}
	if in.FlowID != nil {
		flow, err := s.flows.GetByID(ctx, *in.FlowID)
		if err != nil {
			if err == pgx.ErrNoRows {
				return nil, apperrors.NewValidationError("flow not found", map[string]any{"flow_id": *in.FlowID})
			}
			return nil, err
		}
		if flow.OwnerID != in.OwnerID {
			return nil, apperrors.NewForbidden("flow belongs to another account")
		}
	}

	job := &domain.Job{
		ExternalKey: uuid.NewString(),
		OwnerID:     in.OwnerID,
		DeviceID:    in.DeviceID,
		FlowID:      in.FlowID,
		Title:       in.Title,
		Status:      domain.JobStatusPending,
		ScheduledAt: in.ScheduledAt,
	}
	if err := s.jobs.Create(ctx, job); err != nil {
		return nil, err
	}
	return job, nil
}

// Get loads a job, enforcing ownership unless the caller is an admin.
func (s *JobService) Get(ctx context.Context, principalID string, isAdmin bool, id string) (*domain.Job, error) {
	job, err := s.jobs.GetByID(ctx, id)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.NewNotFound("job", map[string]any{"id": id})
		}
		return nil, err
	}
	if !isAdmin && job.OwnerID != principalID {
		return nil, apperrors.NewForbidden("job belongs to another account")
	}
	return job, nil
}

// List returns jobs matching the filter.
func (s *JobService) List(ctx context.Context, filter repository.JobFilter) ([]domain.Job, error) {
	return s.jobs.ListWithFilter(ctx, filter)
}

// ListForOwner returns the caller's own jobs.
func (s *JobService) ListForOwner(ctx context.Context, ownerID string, limit, offset int) ([]domain.Job, error) {
	return s.jobs.ListWithFilter(ctx, repository.JobFilter{OwnerID: &ownerID, Limit: limit, Offset: offset})
}

// Cancel moves a PENDING job to CANCELLED. Any other starting status is a
// conflict.
func (s *JobService) Cancel(ctx context.Context, principalID string, isAdmin bool, id string) (*domain.Job, error) {
	job, err := s.Get(ctx, principalID, isAdmin, id)
	if err != nil {
		return nil, err
	}
	if job.Status != domain.JobStatusPending {
		return nil, apperrors.NewConflict("only pending jobs can be cancelled", map[string]any{"status": job.Status})
	}

	now := time.Now().UTC()
	job.Status = domain.JobStatusCancelled
	job.FinishedAt = &now
	job.UpdatedAt = now
	if err := s.jobs.Update(ctx, job); err != nil {
		return nil, err
	}
	return job, nil
}

// Complete moves a RUNNING job to COMPLETED.
func (s *JobService) Complete(ctx context.Context, principalID string, isAdmin bool, id string) (*domain.Job, error) {
	return s.finish(ctx, principalID, isAdmin, id, domain.JobStatusCompleted, nil)
}

// Fail moves a RUNNING job to FAILED and records the reported error.
func (s *JobService) Fail(ctx context.Context, principalID string, isAdmin bool, id, reason string) (*domain.Job, error) {
	return s.finish(ctx, principalID, isAdmin, id, domain.JobStatusFailed, &reason)
}

func (s *JobService) finish(ctx context.Context, principalID string, isAdmin bool, id string, status domain.JobStatus, lastError *string) (*domain.Job, error) {
	job, err := s.Get(ctx, principalID, isAdmin, id)
	if err != nil {
		return nil, err
	}
	if job.Status != domain.JobStatusRunning {
		return nil, apperrors.NewConflict("only running jobs can be finished", map[string]any{"status": job.Status})
	}

	now := time.Now().UTC()
	job.Status = status
	job.FinishedAt = &now
	job.LastError = lastError
	job.UpdatedAt = now
	if err := s.jobs.Update(ctx, job); err != nil {
		return nil, err
	}
	return job, nil
}
