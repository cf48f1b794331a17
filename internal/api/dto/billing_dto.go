package dto

import (
	"time"

	"github.com/spec-kit/platform-admin/internal/domain"
)

// PackageRequest payload for create/update of a service package.
type PackageRequest struct {
	Name        string               `json:"name" validate:"required,min=1,max=120"`
	Description string               `json:"description" validate:"max=1000"`
	Price       int64                `json:"price" validate:"gte=0"`
	Currency    string               `json:"currency" validate:"required,len=3,uppercase"`
	Period      domain.BillingPeriod `json:"period" validate:"required,oneof=MONTHLY YEARLY ONCE"`
	JobQuota    int                  `json:"job_quota" validate:"gte=0"`
	DeviceQuota int                  `json:"device_quota" validate:"gte=0"`
	IsActive    bool                 `json:"is_active"`
}

// PackageResponse is the package shape returned to clients.
type PackageResponse struct {
	ID          string               `json:"id"`
	Name        string               `json:"name"`
	Description string               `json:"description"`
	Price       int64                `json:"price"`
	Currency    string               `json:"currency"`
	Period      domain.BillingPeriod `json:"period"`
	JobQuota    int                  `json:"job_quota"`
	DeviceQuota int                  `json:"device_quota"`
	IsActive    bool                 `json:"is_active"`
	CreatedAt   time.Time            `json:"created_at"`
}

// NewPackageResponse maps a domain package.
func NewPackageResponse(pkg *domain.ServicePackage) PackageResponse {
	return PackageResponse{
		ID:          pkg.ID,
		Name:        pkg.Name,
		Description: pkg.Description,
		Price:       pkg.Price,
		Currency:    pkg.Currency,
		Period:      pkg.Period,
		JobQuota:    pkg.JobQuota,
		DeviceQuota: pkg.DeviceQuota,
		IsActive:    pkg.IsActive,
		CreatedAt:   pkg.CreatedAt,
	}
}

// PurchaseRequest payload.
type PurchaseRequest struct {
	PackageID string `json:"package_id" validate:"required,uuid4"`
}

// TransactionResponse is the transaction shape returned to clients.
type TransactionResponse struct {
	ID          string                   `json:"id"`
	ExternalKey string                   `json:"external_key"`
	UserID      string                   `json:"user_id"`
	PackageID   *string                  `json:"package_id"`
	Amount      int64                    `json:"amount"`
	Currency    string                   `json:"currency"`
	Status      domain.TransactionStatus `json:"status"`
	PaidAt      *time.Time               `json:"paid_at"`
	CreatedAt   time.Time                `json:"created_at"`
}

// NewTransactionResponse maps a domain transaction.
func NewTransactionResponse(txn *domain.Transaction) TransactionResponse {
	return TransactionResponse{
		ID:          txn.ID,
		ExternalKey: txn.ExternalKey,
		UserID:      txn.UserID,
		PackageID:   txn.PackageID,
		Amount:      txn.Amount,
		Currency:    txn.Currency,
		Status:      txn.Status,
		PaidAt:      txn.PaidAt,
		CreatedAt:   txn.CreatedAt,
	}
}
