package services

import (
	"context"

	"github.com/finbook/finbook_app/internal/core/domain"
	"github.com/finbook/finbook_app/internal/dto"
	"github.com/shopspring/decimal"
)

// SubscriptionSvcFacade exposes subscription operations to the handlers.
type SubscriptionSvcFacade interface {
	// CreateSubscription persists a new subscription for the user.
	CreateSubscription(ctx context.Context, userID int64, req dto.CreateSubscriptionRequest) (*domain.Subscription, error)

	// GetSubscriptionByID retrieves one of the user's subscriptions.
	GetSubscriptionByID(ctx context.Context, userID int64, subscriptionID int64) (*domain.Subscription, error)

	// ListSubscriptions retrieves the user's subscriptions with their total
	// normalized monthly cost.
	ListSubscriptions(ctx context.Context, userID int64, activeOnly bool) ([]domain.Subscription, decimal.Decimal, error)

	// UpdateSubscription applies the provided field updates.
	UpdateSubscription(ctx context.Context, userID int64, subscriptionID int64, req dto.UpdateSubscriptionRequest) (*domain.Subscription, error)

	// DeleteSubscription removes a subscription.
	DeleteSubscription(ctx context.Context, userID int64, subscriptionID int64) error

	// AdvanceBillingDate moves the subscription's next billing date forward
	// by one billing cycle.
	AdvanceBillingDate(ctx context.Context, userID int64, subscriptionID int64) (*domain.Subscription, error)
}
