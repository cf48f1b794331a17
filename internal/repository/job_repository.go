package repository

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/platform-admin/internal/domain"
)

// JobFilter captures job listing parameters.
type JobFilter struct {
	OwnerID     *string
	DeviceID    *string
	FlowID      *string
	Statuses    []domain.JobStatus
	SearchTerm  *string
	CreatedFrom *time.Time
	CreatedTo   *time.Time
	Limit       int
	Offset      int
}

// JobRepository encapsulates job persistence.
type JobRepository interface {
	Create(ctx context.Context, job *domain.Job) error
	Update(ctx context.Context, job *domain.Job) error
	GetByID(ctx context.Context, id string) (*domain.Job, error)
	GetByExternalKey(ctx context.Context, key string) (*domain.Job, error)
	ListWithFilter(ctx context.Context, filter JobFilter) ([]domain.Job, error)
	// DispatchDue moves due PENDING jobs to RUNNING and returns them.
	DispatchDue(ctx context.Context, now time.Time) ([]domain.Job, error)
}

type jobRepository struct {
	pool *pgxpool.Pool
}

// NewJobRepository instantiates repository.
func NewJobRepository(pool *pgxpool.Pool) JobRepository {
	return &jobRepository{pool: pool}
}

const jobColumns = `id, external_key, owner_user_id, device_id, flow_id, title, status,
               scheduled_at, started_at, finished_at, last_error, created_at, updated_at`

func (r *jobRepository) Create(ctx context.Context, job *domain.Job) error {
	const query = `
        INSERT INTO jobs (external_key, owner_user_id, device_id, flow_id, title, status, scheduled_at)
        VALUES ($1,$2,$3,$4,$5,$6,$7)
        RETURNING id, created_at, updated_at`
	return r.pool.QueryRow(ctx, query,
		job.ExternalKey,
		job.OwnerID,
		job.DeviceID,
		job.FlowID,
		job.Title,
		job.Status,
		job.ScheduledAt,
	).Scan(&job.ID, &job.CreatedAt, &job.UpdatedAt)
}

func (r *jobRepository) Update(ctx context.Context, job *domain.Job) error {
	const query = `
        UPDATE jobs SET device_id=$1, flow_id=$2, title=$3, status=$4, scheduled_at=$5,
            started_at=$6, finished_at=$7, last_error=$8, updated_at=NOW()
        WHERE id=$9`
	cmd, err := r.pool.Exec(ctx, query,
		job.DeviceID,
		job.FlowID,
		job.Title,
		job.Status,
		job.ScheduledAt,
		job.StartedAt,
		job.FinishedAt,
		job.LastError,
		job.ID,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *jobRepository) GetByID(ctx context.Context, id string) (*domain.Job, error) {
	query := fmt.Sprintf(`SELECT %s FROM jobs WHERE id=$1`, jobColumns)
	return r.fetchSingle(ctx, query, id)
}

func (r *jobRepository) GetByExternalKey(ctx context.Context, key string) (*domain.Job, error) {
	query := fmt.Sprintf(`SELECT %s FROM jobs WHERE external_key=$1`, jobColumns)
	return r.fetchSingle(ctx, query, key)
}

func (r *jobRepository) fetchSingle(ctx context.Context, query string, arg any) (*domain.Job, error) {
	var job domain.Job
	if err := r.pool.QueryRow(ctx, query, arg).Scan(
		&job.ID,
		&job.ExternalKey,
		&job.OwnerID,
		&job.DeviceID,
		&job.FlowID,
		&job.Title,
		&job.Status,
		&job.ScheduledAt,
		&job.StartedAt,
		&job.FinishedAt,
		&job.LastError,
		&job.CreatedAt,
		&job.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &job, nil
}

func (r *jobRepository) ListWithFilter(ctx context.Context, filter JobFilter) ([]domain.Job, error) {
	base := fmt.Sprintf(`SELECT %s FROM jobs`, jobColumns)
	clauses := []string{"1=1"}
	args := []any{}

	if filter.OwnerID != nil {
		args = append(args, *filter.OwnerID)
		clauses = append(clauses, fmt.Sprintf("owner_user_id=$%d", len(args)))
	}
	if filter.DeviceID != nil {
		args = append(args, *filter.DeviceID)
		clauses = append(clauses, fmt.Sprintf("device_id=$%d", len(args)))
	}
	if filter.FlowID != nil {
		args = append(args, *filter.FlowID)
		clauses = append(clauses, fmt.Sprintf("flow_id=$%d", len(args)))
	}
	if len(filter.Statuses) > 0 {
		placeholders := make([]string, len(filter.Statuses))
		for i, status := range filter.Statuses {
			args = append(args, status)
			placeholders[i] = fmt.Sprintf("$%d", len(args))
		}
		clauses = append(clauses, fmt.Sprintf("status IN (%s)", strings.Join(placeholders, ",")))
	}
	if filter.CreatedFrom != nil {
		args = append(args, *filter.CreatedFrom)
		clauses = append(clauses, fmt.Sprintf("created_at >= $%d", len(args)))
	}
	if filter.CreatedTo != nil {
		args = append(args, *filter.CreatedTo)
		clauses = append(clauses, fmt.Sprintf("created_at <= $%d", len(args)))
	}
	if filter.SearchTerm != nil && strings.TrimSpace(*filter.SearchTerm) != "" {
		search := "%" + strings.ToLower(strings.TrimSpace(*filter.SearchTerm)) + "%"
		args = append(args, search)
		clauses = append(clauses, fmt.Sprintf("LOWER(title) LIKE $%d", len(args)))
	}

	limit := filter.Limit
	if limit <= 0 {
		limit = 20
	}
	offset := filter.Offset
	if offset < 0 {
		offset = 0
	}

	query := fmt.Sprintf(`%s WHERE %s ORDER BY created_at DESC LIMIT %d OFFSET %d`,
		base, strings.Join(clauses, " AND "), limit, offset)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanJobs(rows)
}

func (r *jobRepository) DispatchDue(ctx context.Context, now time.Time) ([]domain.Job, error) {
	query := fmt.Sprintf(`
        UPDATE jobs SET status='RUNNING', started_at=$1, updated_at=NOW()
        WHERE status='PENDING' AND scheduled_at IS NOT NULL AND scheduled_at <= $1
        RETURNING %s`, jobColumns)

	rows, err := r.pool.Query(ctx, query, now)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanJobs(rows)
}

func scanJobs(rows pgx.Rows) ([]domain.Job, error) {
	var result []domain.Job
	for rows.Next() {
		var job domain.Job
		if err := rows.Scan(
			&job.ID,
			&job.ExternalKey,
			&job.OwnerID,
			&job.DeviceID,
			&job.FlowID,
			&job.Title,
			&job.Status,
			&job.ScheduledAt,
			&job.StartedAt,
			&job.FinishedAt,
			&job.LastError,
			&job.CreatedAt,
			&job.UpdatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, job)
	}
	return result, rows.Err()
}
