package domain

import "time"

// BillingPeriod enumerates package billing cycles.
type BillingPeriod string

const (
	BillingPeriodMonthly BillingPeriod = "MONTHLY"
	BillingPeriodYearly  BillingPeriod = "YEARLY"
	BillingPeriodOnce    BillingPeriod = "ONCE"
)

// ServicePackage is a purchasable plan shown on the marketplace.
type ServicePackage struct {
	ID          string
	Name        string
	Description string
	Price       int64
	Currency    string
	Period      BillingPeriod
	JobQuota    int
	DeviceQuota int
	IsActive    bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
