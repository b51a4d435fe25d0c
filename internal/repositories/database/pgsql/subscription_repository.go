package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/finbook/finbook_app/internal/apperrors"
	"github.com/finbook/finbook_app/internal/core/domain"
	portsrepo "github.com/finbook/finbook_app/internal/core/ports/repositories"
	"github.com/finbook/finbook_app/internal/models"
	"github.com/finbook/finbook_app/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const subscriptionColumns = `subscription_id, user_id, name, amount, billing_cycle,
		next_billing_date, category_id, account_id, notes, is_active, created_at, last_updated_at`

type PgxSubscriptionRepository struct {
	BaseRepository
}

// newPgxSubscriptionRepository creates a new repository for subscription data.
func newPgxSubscriptionRepository(pool *pgxpool.Pool) portsrepo.SubscriptionRepositoryFacade {
	return &PgxSubscriptionRepository{BaseRepository: BaseRepository{Pool: pool}}
}

// Ensure PgxSubscriptionRepository implements portsrepo.SubscriptionRepositoryFacade
var _ portsrepo.SubscriptionRepositoryFacade = (*PgxSubscriptionRepository)(nil)

func scanSubscription(row pgx.Row) (*models.Subscription, error) {
	var m models.Subscription
	err := row.Scan(
		&m.SubscriptionID,
		&m.UserID,
		&m.Name,
		&m.Amount,
		&m.BillingCycle,
		&m.NextBillingDate,
		&m.CategoryID,
		&m.AccountID,
		&m.Notes,
		&m.IsActive,
		&m.CreatedAt,
		&m.LastUpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

// SaveSubscription inserts a new subscription and returns it with the generated ID.
func (r *PgxSubscriptionRepository) SaveSubscription(ctx context.Context, sub domain.Subscription) (*domain.Subscription, error) {
	m := mapping.ToModelSubscription(sub)

	query := `
		INSERT INTO subscriptions (user_id, name, amount, billing_cycle, next_billing_date,
			category_id, account_id, notes, is_active, created_at, last_updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING subscription_id;
	`
	err := r.Pool.QueryRow(ctx, query,
		m.UserID,
		m.Name,
		m.Amount,
		m.BillingCycle,
		m.NextBillingDate,
		m.CategoryID,
		m.AccountID,
		m.Notes,
		m.IsActive,
		m.CreatedAt,
		m.LastUpdatedAt,
	).Scan(&m.SubscriptionID)
	if err != nil {
		return nil, fmt.Errorf("failed to save subscription: %w", err)
	}

	saved := mapping.ToDomainSubscription(m)
	return &saved, nil
}

// FindSubscriptionByID retrieves a subscription by its ID.
func (r *PgxSubscriptionRepository) FindSubscriptionByID(ctx context.Context, subscriptionID int64) (*domain.Subscription, error) {
	query := `SELECT ` + subscriptionColumns + ` FROM subscriptions WHERE subscription_id = $1;`

	m, err := scanSubscription(r.Pool.QueryRow(ctx, query, subscriptionID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find subscription by ID %d: %w", subscriptionID, err)
	}

	sub := mapping.ToDomainSubscription(*m)
	return &sub, nil
}

// ListSubscriptions retrieves a user's subscriptions ordered by next billing date.
func (r *PgxSubscriptionRepository) ListSubscriptions(ctx context.Context, userID int64, activeOnly bool) ([]domain.Subscription, error) {
	query := `SELECT ` + subscriptionColumns + ` FROM subscriptions WHERE user_id = $1`
	if activeOnly {
		query += ` AND is_active = TRUE`
	}
	query += ` ORDER BY next_billing_date, name;`

	rows, err := r.Pool.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query subscriptions for user %d: %w", userID, err)
	}
	defer rows.Close()

	subs := []domain.Subscription{}
	for rows.Next() {
		m, err := scanSubscription(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan subscription row: %w", err)
		}
		subs = append(subs, mapping.ToDomainSubscription(*m))
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating subscription rows: %w", rows.Err())
	}

	return subs, nil
}

// UpdateSubscription updates an existing subscription.
func (r *PgxSubscriptionRepository) UpdateSubscription(ctx context.Context, sub domain.Subscription) error {
	m := mapping.ToModelSubscription(sub)

	query := `
		UPDATE subscriptions
		SET name = $2, amount = $3, billing_cycle = $4, next_billing_date = $5,
			category_id = $6, account_id = $7, notes = $8, is_active = $9,
			last_updated_at = $10
		WHERE subscription_id = $1;
	`
	cmdTag, err := r.Pool.Exec(ctx, query,
		m.SubscriptionID,
		m.Name,
		m.Amount,
		m.BillingCycle,
		m.NextBillingDate,
		m.CategoryID,
		m.AccountID,
		m.Notes,
		m.IsActive,
		m.LastUpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to execute update subscription %d: %w", m.SubscriptionID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// DeleteSubscription removes a subscription.
func (r *PgxSubscriptionRepository) DeleteSubscription(ctx context.Context, subscriptionID int64) error {
	cmdTag, err := r.Pool.Exec(ctx, `DELETE FROM subscriptions WHERE subscription_id = $1;`, subscriptionID)
	if err != nil {
		return fmt.Errorf("failed to delete subscription %d: %w", subscriptionID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
