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

// TransactionFilter captures transaction listing parameters.
type TransactionFilter struct {
	UserID      *string
	PackageID   *string
	Statuses    []domain.TransactionStatus
	CreatedFrom *time.Time
	CreatedTo   *time.Time
	Limit       int
	Offset      int
}

// TransactionRepository encapsulates payment record persistence.
type TransactionRepository interface {
	Create(ctx context.Context, txn *domain.Transaction) error
	GetByID(ctx context.Context, id string) (*domain.Transaction, error)
	ListWithFilter(ctx context.Context, filter TransactionFilter) ([]domain.Transaction, error)
	MarkPaid(ctx context.Context, id string, paidAt time.Time) error
}

type transactionRepository struct {
	pool *pgxpool.Pool
}

// NewTransactionRepository instantiates repository.
func NewTransactionRepository(pool *pgxpool.Pool) TransactionRepository {
	return &transactionRepository{pool: pool}
}

const transactionColumns = `id, external_key, user_id, package_id, amount, currency, status, paid_at, created_at, updated_at`

func (r *transactionRepository) Create(ctx context.Context, txn *domain.Transaction) error {
	const query = `
        INSERT INTO transactions (external_key, user_id, package_id, amount, currency, status, paid_at)
        VALUES ($1,$2,$3,$4,$5,$6,$7)
        RETURNING id, created_at, updated_at`
	return r.pool.QueryRow(ctx, query,
		txn.ExternalKey,
		txn.UserID,
		txn.PackageID,
		txn.Amount,
		txn.Currency,
		txn.Status,
		txn.PaidAt,
	).Scan(&txn.ID, &txn.CreatedAt, &txn.UpdatedAt)
}

func (r *transactionRepository) GetByID(ctx context.Context, id string) (*domain.Transaction, error) {
	query := fmt.Sprintf(`SELECT %s FROM transactions WHERE id=$1`, transactionColumns)

	var txn domain.Transaction
	if err := r.pool.QueryRow(ctx, query, id).Scan(
		&txn.ID,
		&txn.ExternalKey,
		&txn.UserID,
		&txn.PackageID,
		&txn.Amount,
		&txn.Currency,
		&txn.Status,
		&txn.PaidAt,
		&txn.CreatedAt,
		&txn.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &txn, nil
}

func (r *transactionRepository) ListWithFilter(ctx context.Context, filter TransactionFilter) ([]domain.Transaction, error) {
	base := fmt.Sprintf(`SELECT %s FROM transactions`, transactionColumns)
	clauses := []string{"1=1"}
	args := []any{}

	if filter.UserID != nil {
		args = append(args, *filter.UserID)
		clauses = append(clauses, fmt.Sprintf("user_id=$%d", len(args)))
	}
	if filter.PackageID != nil {
		args = append(args, *filter.PackageID)
		clauses = append(clauses, fmt.Sprintf("package_id=$%d", len(args)))
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

	var result []domain.Transaction
	for rows.Next() {
		var txn domain.Transaction
		if err := rows.Scan(
			&txn.ID,
			&txn.ExternalKey,
			&txn.UserID,
			&txn.PackageID,
			&txn.Amount,
			&txn.Currency,
			&txn.Status,
			&txn.PaidAt,
			&txn.CreatedAt,
			&txn.UpdatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, txn)
	}
	return result, rows.Err()
}

func (r *transactionRepository) MarkPaid(ctx context.Context, id string, paidAt time.Time) error {
	const query = `UPDATE transactions SET status='PAID', paid_at=$1, updated_at=NOW() WHERE id=$2 AND status='PENDING'`
	cmd, err := r.pool.Exec(ctx, query, paidAt, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}
