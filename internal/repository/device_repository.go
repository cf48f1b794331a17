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

// DeviceFilter captures admin device-table search parameters.
type DeviceFilter struct {
	OwnerID    *string
	Statuses   []domain.DeviceStatus
	SearchTerm *string
	Limit      int
	Offset     int
}

// DeviceRepository encapsulates device persistence.
type DeviceRepository interface {
	Create(ctx context.Context, device *domain.Device) error
	Update(ctx context.Context, device *domain.Device) error
	Delete(ctx context.Context, id string) error
	GetByID(ctx context.Context, id string) (*domain.Device, error)
	GetByExternalKey(ctx context.Context, key string) (*domain.Device, error)
	ListWithFilter(ctx context.Context, filter DeviceFilter) ([]domain.Device, error)
	TouchLastSeen(ctx context.Context, id string, at time.Time) error
	// SyncPresence flips status ONLINE/OFFLINE based on last_seen against the
	// cutoff and returns how many rows changed.
	SyncPresence(ctx context.Context, cutoff time.Time) (int64, error)
	// MarkStale flags non-stale devices silent since the cutoff and returns them.
	MarkStale(ctx context.Context, cutoff time.Time) ([]domain.Device, error)
}

type deviceRepository struct {
	pool *pgxpool.Pool
}

// NewDeviceRepository instantiates repository.
func NewDeviceRepository(pool *pgxpool.Pool) DeviceRepository {
	return &deviceRepository{pool: pool}
}

const deviceColumns = `id, external_key, owner_user_id, name, platform, status, last_seen_at, created_at, updated_at`

func (r *deviceRepository) Create(ctx context.Context, device *domain.Device) error {
	const query = `
        INSERT INTO devices (external_key, owner_user_id, name, platform, status, last_seen_at)
        VALUES ($1, $2, $3, $4, $5, $6)
        RETURNING id, created_at, updated_at`
	return r.pool.QueryRow(ctx, query,
		device.ExternalKey,
		device.OwnerID,
		device.Name,
		device.Platform,
		device.Status,
		device.LastSeenAt,
	).Scan(&device.ID, &device.CreatedAt, &device.UpdatedAt)
}

func (r *deviceRepository) Update(ctx context.Context, device *domain.Device) error {
	const query = `
        UPDATE devices SET name=$1, platform=$2, status=$3, last_seen_at=$4, updated_at=NOW()
        WHERE id=$5`
	cmd, err := r.pool.Exec(ctx, query,
		device.Name,
		device.Platform,
		device.Status,
		device.LastSeenAt,
		device.ID,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *deviceRepository) Delete(ctx context.Context, id string) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM devices WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *deviceRepository) GetByID(ctx context.Context, id string) (*domain.Device, error) {
	query := fmt.Sprintf(`SELECT %s FROM devices WHERE id=$1`, deviceColumns)
	return r.fetchSingle(ctx, query, id)
}

func (r *deviceRepository) GetByExternalKey(ctx context.Context, key string) (*domain.Device, error) {
	query := fmt.Sprintf(`SELECT %s FROM devices WHERE external_key=$1`, deviceColumns)
	return r.fetchSingle(ctx, query, key)
}

func (r *deviceRepository) fetchSingle(ctx context.Context, query string, arg any) (*domain.Device, error) {
	var device domain.Device
	if err := r.pool.QueryRow(ctx, query, arg).Scan(
		&device.ID,
		&device.ExternalKey,
		&device.OwnerID,
		&device.Name,
		&device.Platform,
		&device.Status,
		&device.LastSeenAt,
		&device.CreatedAt,
		&device.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &device, nil
}

func (r *deviceRepository) ListWithFilter(ctx context.Context, filter DeviceFilter) ([]domain.Device, error) {
	base := fmt.Sprintf(`SELECT %s FROM devices`, deviceColumns)
	clauses := []string{"1=1"}
	args := []any{}

	if filter.OwnerID != nil {
		args = append(args, *filter.OwnerID)
		clauses = append(clauses, fmt.Sprintf("owner_user_id=$%d", len(args)))
	}
	if len(filter.Statuses) > 0 {
		placeholders := make([]string, len(filter.Statuses))
		for i, status := range filter.Statuses {
			args = append(args, status)
			placeholders[i] = fmt.Sprintf("$%d", len(args))
		}
		clauses = append(clauses, fmt.Sprintf("status IN (%s)", strings.Join(placeholders, ",")))
	}
	if filter.SearchTerm != nil && strings.TrimSpace(*filter.SearchTerm) != "" {
		search := "%" + strings.ToLower(strings.TrimSpace(*filter.SearchTerm)) + "%"
		args = append(args, search)
		placeholder := fmt.Sprintf("$%d", len(args))
		clauses = append(clauses, fmt.Sprintf("(LOWER(name) LIKE %s OR LOWER(external_key) LIKE %s)", placeholder, placeholder))
	}

	limit := filter.Limit
	if limit <= 0 {
		limit = 20
	}
	offset := filter.Offset
	if offset < 0 {
		offset = 0
	}

	query := fmt.Sprintf(`%s WHERE %s ORDER BY updated_at DESC LIMIT %d OFFSET %d`,
		base, strings.Join(clauses, " AND "), limit, offset)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanDevices(rows)
}

func (r *deviceRepository) TouchLastSeen(ctx context.Context, id string, at time.Time) error {
	const query = `UPDATE devices SET last_seen_at=$1, status=$2, updated_at=NOW() WHERE id=$3`
	cmd, err := r.pool.Exec(ctx, query, at, domain.DeviceStatusOnline, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *deviceRepository) SyncPresence(ctx context.Context, cutoff time.Time) (int64, error) {
	const query = `
        UPDATE devices SET
            status = CASE WHEN last_seen_at IS NOT NULL AND last_seen_at >= $1 THEN 'ONLINE' ELSE 'OFFLINE' END,
            updated_at = NOW()
        WHERE status <> 'STALE'
          AND status <> CASE WHEN last_seen_at IS NOT NULL AND last_seen_at >= $1 THEN 'ONLINE' ELSE 'OFFLINE' END`
	cmd, err := r.pool.Exec(ctx, query, cutoff)
	if err != nil {
		return 0, err
	}
	return cmd.RowsAffected(), nil
}

func (r *deviceRepository) MarkStale(ctx context.Context, cutoff time.Time) ([]domain.Device, error) {
	query := fmt.Sprintf(`
        UPDATE devices SET status='STALE', updated_at=NOW()
        WHERE status <> 'STALE' AND (last_seen_at IS NULL OR last_seen_at < $1)
        RETURNING %s`, deviceColumns)

	rows, err := r.pool.Query(ctx, query, cutoff)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanDevices(rows)
}

func scanDevices(rows pgx.Rows) ([]domain.Device, error) {
	var result []domain.Device
	for rows.Next() {
		var device domain.Device
		if err := rows.Scan(
			&device.ID,
			&device.ExternalKey,
			&device.OwnerID,
			&device.Name,
			&device.Platform,
			&device.Status,
			&device.LastSeenAt,
			&device.CreatedAt,
			&device.UpdatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, device)
	}
	return result, rows.Err()
}
