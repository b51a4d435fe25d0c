package repositories

import (
	"context"

	"github.com/finbook/finbook_app/internal/core/domain"
)

// SubscriptionRepositoryFacade defines operations for subscription data.
type SubscriptionRepositoryFacade interface {
	// FindSubscriptionByID retrieves a specific subscription.
	FindSubscriptionByID(ctx context.Context, subscriptionID int64) (*domain.Subscription, error)

	// ListSubscriptions retrieves a user's subscriptions ordered by next
	// billing date.
	ListSubscriptions(ctx context.Context, userID int64, activeOnly bool) ([]domain.Subscription, error)

	// SaveSubscription persists a new subscription and returns it with its
	// assigned ID.
	SaveSubscription(ctx context.Context, sub domain.Subscription) (*domain.Subscription, error)

	// UpdateSubscription updates an existing subscription.
	UpdateSubscription(ctx context.Context, sub domain.Subscription) error

	// DeleteSubscription removes a subscription.
	DeleteSubscription(ctx context.Context, subscriptionID int64) error
}
