package repository

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/platform-admin/internal/domain"
)

// StatsRepository issues the aggregate queries behind dashboard widgets.
// Grouped results come back keyed by bucket (day "2006-01-02", month
// "2006-01"); the dashboard service zero-fills missing buckets.
type StatsRepository interface {
	CountUsersByState(ctx context.Context) (map[domain.WorkflowState]int64, error)
	SignupsPerDay(ctx context.Context, from, to time.Time) (map[string]int64, error)
	CountJobsByStatus(ctx context.Context) (map[domain.JobStatus]int64, error)
	RevenuePerMonth(ctx context.Context, from, to time.Time) (map[string]int64, error)
	CountDevicesByStatus(ctx context.Context) (map[domain.DeviceStatus]int64, error)
	APICallsPerDay(ctx context.Context, from, to time.Time) (map[string]int64, error)
	AvgAPILatencyMS(ctx context.Context, from, to time.Time) (float64, error)
}

type statsRepository struct {
	pool *pgxpool.Pool
}

// NewStatsRepository instantiates repository.
func NewStatsRepository(pool *pgxpool.Pool) StatsRepository {
	return &statsRepository{pool: pool}
}

func (r *statsRepository) CountUsersByState(ctx context.Context) (map[domain.WorkflowState]int64, error) {
	const query = `SELECT state, COUNT(*) FROM users GROUP BY state`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	result := make(map[domain.WorkflowState]int64)
	for rows.Next() {
		var state domain.WorkflowState
		var count int64
		if err := rows.Scan(&state, &count); err != nil {
			return nil, err
		}
		result[state] = count
	}
	return result, rows.Err()
}

func (r *statsRepository) SignupsPerDay(ctx context.Context, from, to time.Time) (map[string]int64, error) {
	const query = `
        SELECT TO_CHAR(created_at AT TIME ZONE 'UTC', 'YYYY-MM-DD') AS day, COUNT(*)
        FROM users
        WHERE created_at >= $1 AND created_at < $2
        GROUP BY day`
	return r.groupedCounts(ctx, query, from, to)
}

func (r *statsRepository) CountJobsByStatus(ctx context.Context) (map[domain.JobStatus]int64, error) {
	const query = `SELECT status, COUNT(*) FROM jobs GROUP BY status`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	result := make(map[domain.JobStatus]int64)
	for rows.Next() {
		var status domain.JobStatus
		var count int64
		if err := rows.Scan(&status, &count); err != nil {
			return nil, err
		}
		result[status] = count
	}
	return result, rows.Err()
}

func (r *statsRepository) RevenuePerMonth(ctx context.Context, from, to time.Time) (map[string]int64, error) {
	const query = `
        SELECT TO_CHAR(paid_at AT TIME ZONE 'UTC', 'YYYY-MM') AS month, COALESCE(SUM(amount), 0)
        FROM transactions
        WHERE status = 'PAID' AND paid_at >= $1 AND paid_at < $2
        GROUP BY month`
	return r.groupedCounts(ctx, query, from, to)
}

func (r *statsRepository) CountDevicesByStatus(ctx context.Context) (map[domain.DeviceStatus]int64, error) {
	const query = `SELECT status, COUNT(*) FROM devices GROUP BY status`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	result := make(map[domain.DeviceStatus]int64)
	for rows.Next() {
		var status domain.DeviceStatus
		var count int64
		if err := rows.Scan(&status, &count); err != nil {
			return nil, err
		}
		result[status] = count
	}
	return result, rows.Err()
}

func (r *statsRepository) APICallsPerDay(ctx context.Context, from, to time.Time) (map[string]int64, error) {
	const query = `
        SELECT TO_CHAR(created_at AT TIME ZONE 'UTC', 'YYYY-MM-DD') AS day, COUNT(*)
        FROM api_logs
        WHERE created_at >= $1 AND created_at < $2
        GROUP BY day`
	return r.groupedCounts(ctx, query, from, to)
}

func (r *statsRepository) AvgAPILatencyMS(ctx context.Context, from, to time.Time) (float64, error) {
	const query = `
        SELECT COALESCE(AVG(latency_ms), 0)
        FROM api_logs
        WHERE created_at >= $1 AND created_at < $2`

	var avg float64
	if err := r.pool.QueryRow(ctx, query, from, to).Scan(&avg); err != nil {
		return 0, err
	}
	return avg, nil
}

func (r *statsRepository) groupedCounts(ctx context.Context, query string, from, to time.Time) (map[string]int64, error) {
	rows, err := r.pool.Query(ctx, query, from, to)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	result := make(map[string]int64)
	for rows.Next() {
		var bucket string
		var value int64
		if err := rows.Scan(&bucket, &value); err != nil {
			return nil, err
		}
		result[bucket] = value
	}
	return result, rows.Err()
}
