package repository

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/platform-admin/internal/domain"
)

// APILogFilter captures log browsing parameters.
type APILogFilter struct {
	Method      *string
	PathPrefix  *string
	MinStatus   *int
	CreatedFrom *time.Time
	CreatedTo   *time.Time
	Limit       int
	Offset      int
}

// APILogRepository encapsulates request log persistence.
type APILogRepository interface {
	Insert(ctx context.Context, log *domain.APILog) error
	ListWithFilter(ctx context.Context, filter APILogFilter) ([]domain.APILog, error)
	// DeleteBefore purges logs older than the cutoff and returns the row count.
	DeleteBefore(ctx context.Context, cutoff time.Time) (int64, error)
}

type apiLogRepository struct {
	pool *pgxpool.Pool
}

// NewAPILogRepository instantiates repository.
func NewAPILogRepository(pool *pgxpool.Pool) APILogRepository {
	return &apiLogRepository{pool: pool}
}

func (r *apiLogRepository) Insert(ctx context.Context, log *domain.APILog) error {
	const query = `
        INSERT INTO api_logs (method, path, status_code, latency_ms, caller_user_id)
        VALUES ($1,$2,$3,$4,$5)
        RETURNING id, created_at`
	return r.pool.QueryRow(ctx, query,
		log.Method,
		log.Path,
		log.StatusCode,
		log.LatencyMS,
		log.CallerID,
	).Scan(&log.ID, &log.CreatedAt)
}

func (r *apiLogRepository) ListWithFilter(ctx context.Context, filter APILogFilter) ([]domain.APILog, error) {
	base := `SELECT id, method, path, status_code, latency_ms, caller_user_id, created_at FROM api_logs`
	clauses := []string{"1=1"}
	args := []any{}

	if filter.Method != nil {
		args = append(args, strings.ToUpper(*filter.Method))
		clauses = append(clauses, fmt.Sprintf("method=$%d", len(args)))
	}
	if filter.PathPrefix != nil && *filter.PathPrefix != "" {
		args = append(args, *filter.PathPrefix+"%")
		clauses = append(clauses, fmt.Sprintf("path LIKE $%d", len(args)))
	}
	if filter.MinStatus != nil {
		args = append(args, *filter.MinStatus)
		clauses = append(clauses, fmt.Sprintf("status_code >= $%d", len(args)))
	}
	if filter.CreatedFrom != nil {
		args = append(args, *filter.CreatedFrom)
		clauses = append(clauses, fmt.Sprintf("created_at >= $%d", len(args)))
	}
	if filter.CreatedTo != nil {
		args = append(args, *filter.CreatedTo)
		clauses = append(clauses, fmt.Sprintf("created_at <= $%d", len(args)))
	}

	limit := filter.Limit
	if limit <= 0 {
		limit = 50
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

	var result []domain.APILog
	for rows.Next() {
		var log domain.APILog
		if err := rows.Scan(&log.ID, &log.Method, &log.Path, &log.StatusCode, &log.LatencyMS, &log.CallerID, &log.CreatedAt); err != nil {
			return nil, err
		}
		result = append(result, log)
	}
	return result, rows.Err()
}

func (r *apiLogRepository) DeleteBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM api_logs WHERE created_at < $1`, cutoff)
	if err != nil {
		return 0, err
	}
	return cmd.RowsAffected(), nil
}
