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

// BillingService covers service packages and payment transactions.
type BillingService struct {
	packages     repository.ServicePackageRepository
	transactions repository.TransactionRepository
}

// NewBillingService constructs the service.
func NewBillingService(packages repository.ServicePackageRepository, transactions repository.TransactionRepository) *BillingService {
	return &BillingService{packages: packages, transactions: transactions}
}

// PackageInput carries the editable package fields.
type PackageInput struct {
	Name        string
	Description string
	Price       int64
	Currency    string
	Period      domain.BillingPeriod
	JobQuota    int
	DeviceQuota int
	IsActive    bool
}

// CreatePackage adds a new marketplace plan.
func (s *BillingService) CreatePackage(ctx context.Context, in PackageInput) (*domain.ServicePackage, error) {
	pkg := &domain.ServicePackage{
		Name:        in.Name,
		Description: in.Description,
		Price:       in.Price,
		Currency:    in.Currency,
		Period:      in.Period,
		JobQuota:    in.JobQuota,
		DeviceQuota: in.DeviceQuota,
		IsActive:    in.IsActive,
	}
	if err := s.packages.Create(ctx, pkg); err != nil {
		return nil, err
	}
	return pkg, nil
}

// UpdatePackage replaces the editable fields of an existing plan.
func (s *BillingService) UpdatePackage(ctx context.Context, id string, in PackageInput) (*domain.ServicePackage, error) {
	pkg, err := s.GetPackage(ctx, id)
	if err != nil {
		return nil, err
	}
	pkg.Name = in.Name
	pkg.Description = in.Description
	pkg.Price = in.Price
	pkg.Currency = in.Currency
	pkg.Period = in.Period
	pkg.JobQuota = in.JobQuota
	pkg.DeviceQuota = in.DeviceQuota
	pkg.IsActive = in.IsActive
	pkg.UpdatedAt = time.Now().UTC()
	if err := s.packages.Update(ctx, pkg); err != nil {
		return nil, err
	}
	return pkg, nil
}

// DeletePackage removes a plan from the catalog.
func (s *BillingService) DeletePackage(ctx context.Context, id string) error {
	if _, err := s.GetPackage(ctx, id); err != nil {
		return err
	}
	return s.packages.Delete(ctx, id)
}

// GetPackage loads one plan.
func (s *BillingService) GetPackage(ctx context.Context, id string) (*domain.ServicePackage, error) {
	pkg, err := s.packages.GetByID(ctx, id)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.NewNotFound("service package", map[string]any{"id": id})
		}
		return nil, err
	}
	return pkg, nil
}

// ListPackages returns the catalog. Customers only see active plans.
func (s *BillingService) ListPackages(ctx context.Context, activeOnly bool) ([]domain.ServicePackage, error) {
	return s.packages.List(ctx, activeOnly)
}

// Purchase opens a PENDING transaction for an active plan.
func (s *BillingService) Purchase(ctx context.Context, userID, packageID string) (*domain.Transaction, error) {
	pkg, err := s.GetPackage(ctx, packageID)
	if err != nil {
		return nil, err
	}
	if !pkg.IsActive {
		return nil, apperrors.NewConflict("package is not available", map[string]any{"package_id": packageID})
	}

	txn := &domain.Transaction{
		ExternalKey: uuid.NewString(),
		UserID:      userID,
		PackageID:   &pkg.ID,
		Amount:      pkg.Price,
		Currency:    pkg.Currency,
		Status:      domain.TransactionStatusPending,
	}
	if err := s.transactions.Create(ctx, txn); err != nil {
		return nil, err
	}
	return txn, nil
}

// ListTransactions returns transactions matching the filter.
func (s *BillingService) ListTransactions(ctx context.Context, filter repository.TransactionFilter) ([]domain.Transaction, error) {
	return s.transactions.ListWithFilter(ctx, filter)
}

// MarkPaid settles a PENDING transaction.
func (s *BillingService) MarkPaid(ctx context.Context, id string) (*domain.Transaction, error) {
	txn, err := s.transactions.GetByID(ctx, id)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.NewNotFound("transaction", map[string]any{"id": id})
		}
		return nil, err
	}
	if txn.Status != domain.TransactionStatusPending {
		return nil, apperrors.NewConflict("transaction already settled", map[string]any{"status": txn.Status})
	}

	now := time.Now().UTC()
	if err := s.transactions.MarkPaid(ctx, txn.ID, now); err != nil {
		return nil, err
	}
	txn.Status = domain.TransactionStatusPaid
	txn.PaidAt = &now
	txn.UpdatedAt = now
	return txn, nil
}
