package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// BillingCycle is the recurrence interval of a subscription.
type BillingCycle string

const (
	CycleWeekly    BillingCycle = "WEEKLY"
	CycleMonthly   BillingCycle = "MONTHLY"
	CycleQuarterly BillingCycle = "QUARTERLY"
	CycleYearly    BillingCycle = "YEARLY"
)

// Advance returns the next billing date one cycle after the given date.
func (c BillingCycle) Advance(from time.Time) time.Time {
	switch c {
	case CycleWeekly:
		return from.AddDate(0, 0, 7)
	case CycleQuarterly:
		return from.AddDate(0, 3, 0)
	case CycleYearly:
		return from.AddDate(1, 0, 0)
	default:
		return from.AddDate(0, 1, 0)
	}
}

// MonthlyCost normalizes an amount billed on this cycle to a per-month cost.
func (c BillingCycle) MonthlyCost(amount decimal.Decimal) decimal.Decimal {
	switch c {
	case CycleWeekly:
		// 52 weeks over 12 months
		return amount.Mul(decimal.NewFromInt(52)).Div(decimal.NewFromInt(12))
	case CycleQuarterly:
		return amount.Div(decimal.NewFromInt(3))
	case CycleYearly:
		return amount.Div(decimal.NewFromInt(12))
	default:
		return amount
	}
}

// Subscription is a recurring charge the user tracks.
type Subscription struct {
	SubscriptionID  int64           `json:"subscriptionID"`
	UserID          int64           `json:"userID"`
	Name            string          `json:"name"`
	Amount          decimal.Decimal `json:"amount"`
	BillingCycle    BillingCycle    `json:"billingCycle"`
	NextBillingDate time.Time       `json:"nextBillingDate"`
	CategoryID      *int64          `json:"categoryID,omitempty"`
	AccountID       *int64          `json:"accountID,omitempty"`
	Notes           string          `json:"notes"`
	IsActive        bool            `json:"isActive"`
	AuditFields
}
