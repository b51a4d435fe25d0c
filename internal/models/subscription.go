package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// BillingCycle mirrors domain.BillingCycle at the storage layer.
type BillingCycle string

// Subscription represents a row of the subscriptions table.
type Subscription struct {
	SubscriptionID  int64           `db:"subscription_id"`
	UserID          int64           `db:"user_id"`
	Name            string          `db:"name"`
	Amount          decimal.Decimal `db:"amount"`
	BillingCycle    BillingCycle    `db:"billing_cycle"`
	NextBillingDate time.Time       `db:"next_billing_date"`
	CategoryID      *int64          `db:"category_id"`
	AccountID       *int64          `db:"account_id"`
	Notes           string          `db:"notes"`
	IsActive        bool            `db:"is_active"`
	AuditFields
}
