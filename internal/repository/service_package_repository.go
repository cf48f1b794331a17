package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/platform-admin/internal/domain"
)

// ServicePackageRepository encapsulates plan persistence.
type ServicePackageRepository interface {
	Create(ctx context.Context, pkg *domain.ServicePackage) error
	Update(ctx context.Context, pkg *domain.ServicePackage) error
	Delete(ctx context.Context, id string) error
	GetByID(ctx context.Context, id string) (*domain.ServicePackage, error)
	List(ctx context.Context, activeOnly bool) ([]domain.ServicePackage, error)
}

type servicePackageRepository struct {
	pool *pgxpool.Pool
}

// NewServicePackageRepository instantiates repository.
func NewServicePackageRepository(pool *pgxpool.Pool) ServicePackageRepository {
	return &servicePackageRepository{pool: pool}
}

const packageColumns = `id, name, description, price, currency, period, job_quota, device_quota, is_active, created_at, updated_at`

func (r *servicePackageRepository) Create(ctx context.Context, pkg *domain.ServicePackage) error {
	const query = `
        INSERT INTO service_packages (name, description, price, currency, period, job_quota, device_quota, is_active)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
        RETURNING id, created_at, updated_at`
	return r.pool.QueryRow(ctx, query,
		pkg.Name,
		pkg.Description,
		pkg.Price,
		pkg.Currency,
		pkg.Period,
		pkg.JobQuota,
		pkg.DeviceQuota,
		pkg.IsActive,
	).Scan(&pkg.ID, &pkg.CreatedAt, &pkg.UpdatedAt)
}

func (r *servicePackageRepository) Update(ctx context.Context, pkg *domain.ServicePackage) error {
	const query = `
        UPDATE service_packages SET name=$1, description=$2, price=$3, currency=$4, period=$5,
            job_quota=$6, device_quota=$7, is_active=$8, updated_at=NOW()
        WHERE id=$9`
	cmd, err := r.pool.Exec(ctx, query,
		pkg.Name,
		pkg.Description,
		pkg.Price,
		pkg.Currency,
		pkg.Period,
		pkg.JobQuota,
		pkg.DeviceQuota,
		pkg.IsActive,
		pkg.ID,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *servicePackageRepository) Delete(ctx context.Context, id string) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM service_packages WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *servicePackageRepository) GetByID(ctx context.Context, id string) (*domain.ServicePackage, error) {
	query := fmt.Sprintf(`SELECT %s FROM service_packages WHERE id=$1`, packageColumns)

	var pkg domain.ServicePackage
	if err := r.pool.QueryRow(ctx, query, id).Scan(
		&pkg.ID,
		&pkg.Name,
		&pkg.Description,
		&pkg.Price,
		&pkg.Currency,
		&pkg.Period,
		&pkg.JobQuota,
		&pkg.DeviceQuota,
		&pkg.IsActive,
		&pkg.CreatedAt,
		&pkg.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &pkg, nil
}

func (r *servicePackageRepository) List(ctx context.Context, activeOnly bool) ([]domain.ServicePackage, error) {
	query := fmt.Sprintf(`SELECT %s FROM service_packages`, packageColumns)
	if activeOnly {
		query += ` WHERE is_active`
	}
	query += ` ORDER BY price ASC`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.ServicePackage
	for rows.Next() {
		var pkg domain.ServicePackage
		if err := rows.Scan(
			&pkg.ID,
			&pkg.Name,
			&pkg.Description,
			&pkg.Price,
			&pkg.Currency,
			&pkg.Period,
			&pkg.JobQuota,
			&pkg.DeviceQuota,
			&pkg.IsActive,
			&pkg.CreatedAt,
			&pkg.UpdatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, pkg)
	}
	return result, rows.Err()
}
