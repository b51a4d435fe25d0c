package dto

import (
	"time"

	"github.com/finbook/finbook_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateSubscriptionRequest defines the data needed to track a subscription.
type CreateSubscriptionRequest struct {
	Name            string              `json:"name" binding:"required"`
	Amount          decimal.Decimal     `json:"amount" binding:"required"`
	BillingCycle    domain.BillingCycle `json:"billingCycle" binding:"required,oneof=WEEKLY MONTHLY QUARTERLY YEARLY"`
	NextBillingDate string              `json:"nextBillingDate" binding:"required,datetime=2006-01-02"`
	CategoryID      *int64              `json:"categoryID"`
	AccountID       *int64              `json:"accountID"`
	Notes           string              `json:"notes"`
}

// UpdateSubscriptionRequest defines the editable subscription fields.
type UpdateSubscriptionRequest struct {
	Name            *string              `json:"name"`
	Amount          *decimal.Decimal     `json:"amount"`
	BillingCycle    *domain.BillingCycle `json:"billingCycle" binding:"omitempty,oneof=WEEKLY MONTHLY QUARTERLY YEARLY"`
	NextBillingDate *string              `json:"nextBillingDate" binding:"omitempty,datetime=2006-01-02"`
	CategoryID      *int64               `json:"categoryID"`
	AccountID       *int64               `json:"accountID"`
	Notes           *string              `json:"notes"`
	IsActive        *bool                `json:"isActive"`
}

// SubscriptionResponse defines the data returned for a subscription.
type SubscriptionResponse struct {
	SubscriptionID  int64               `json:"subscriptionID"`
	Name            string              `json:"name"`
	Amount          decimal.Decimal     `json:"amount"`
	BillingCycle    domain.BillingCycle `json:"billingCycle"`
	NextBillingDate string              `json:"nextBillingDate"`
	MonthlyCost     decimal.Decimal     `json:"monthlyCost"`
	CategoryID      *int64              `json:"categoryID,omitempty"`
	AccountID       *int64              `json:"accountID,omitempty"`
	Notes           string              `json:"notes"`
	IsActive        bool                `json:"isActive"`
	CreatedAt       time.Time           `json:"createdAt"`
	UpdatedAt       time.Time           `json:"updatedAt"`
}

// ToSubscriptionResponse converts a domain.Subscription, normalizing the
// amount to a per-month cost for display.
func ToSubscriptionResponse(s *domain.Subscription) SubscriptionResponse {
	return SubscriptionResponse{
		SubscriptionID:  s.SubscriptionID,
		Name:            s.Name,
		Amount:          s.Amount,
		BillingCycle:    s.BillingCycle,
		NextBillingDate: FormatDate(s.NextBillingDate),
		MonthlyCost:     s.BillingCycle.MonthlyCost(s.Amount).Round(2),
		CategoryID:      s.CategoryID,
		AccountID:       s.AccountID,
		Notes:           s.Notes,
		IsActive:        s.IsActive,
		CreatedAt:       s.CreatedAt,
		UpdatedAt:       s.LastUpdatedAt,
	}
}

// ListSubscriptionsResponse wraps the subscription list with the total
// normalized monthly cost of active subscriptions.
type ListSubscriptionsResponse struct {
	Subscriptions    []SubscriptionResponse `json:"subscriptions"`
	Total            int                    `json:"total"`
	TotalMonthlyCost decimal.Decimal        `json:"totalMonthlyCost"`
}

// ToListSubscriptionsResponse converts subscriptions and sums active monthly costs.
func ToListSubscriptionsResponse(subscriptions []domain.Subscription) ListSubscriptionsResponse {
	resp := ListSubscriptionsResponse{
		Subscriptions:    make([]SubscriptionResponse, len(subscriptions)),
		Total:            len(subscriptions),
		TotalMonthlyCost: decimal.Zero,
	}
	for i, s := range subscriptions {
		resp.Subscriptions[i] = ToSubscriptionResponse(&s)
		if s.IsActive {
			resp.TotalMonthlyCost = resp.TotalMonthlyCost.Add(resp.Subscriptions[i].MonthlyCost)
		}
	}
	resp.TotalMonthlyCost = resp.TotalMonthlyCost.Round(2)
	return resp
}
