package domain

import "time"

// TransactionStatus enumerates payment states.
type TransactionStatus string

const (
	TransactionStatusPending  TransactionStatus = "PENDING"
	TransactionStatusPaid     TransactionStatus = "PAID"
	TransactionStatusFailed   TransactionStatus = "FAILED"
	TransactionStatusRefunded TransactionStatus = "REFUNDED"
)

// Transaction records a customer payment. Amount is in currency minor units.
type Transaction struct {
	ID          string
	ExternalKey string
	UserID      string
	PackageID   *string
	Amount      int64
	Currency    string
	Status      TransactionStatus
	PaidAt      *time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
