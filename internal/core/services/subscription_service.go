package services

import (
	"context"
	"log/slog"
	"time"

	"github.com/finbook/finbook_app/internal/apperrors"
	"github.com/finbook/finbook_app/internal/core/domain"
	portsrepo "github.com/finbook/finbook_app/internal/core/ports/repositories"
	portssvc "github.com/finbook/finbook_app/internal/core/ports/services"
	"github.com/finbook/finbook_app/internal/dto"
	"github.com/shopspring/decimal"
)

// subscriptionService implements the SubscriptionSvcFacade interface
type subscriptionService struct {
	BaseService
	subscriptionRepo portsrepo.SubscriptionRepositoryFacade
	accountRepo      portsrepo.AccountReader
	categoryRepo     portsrepo.CategoryRepositoryFacade
}

// NewSubscriptionService creates a new subscription service
func NewSubscriptionService(subscriptionRepo portsrepo.SubscriptionRepositoryFacade, accountRepo portsrepo.AccountReader, categoryRepo portsrepo.CategoryRepositoryFacade) portssvc.SubscriptionSvcFacade {
	return &subscriptionService{
		subscriptionRepo: subscriptionRepo,
		accountRepo:      accountRepo,
		categoryRepo:     categoryRepo,
	}
}

// Ensure subscriptionService implements the SubscriptionSvcFacade interface
var _ portssvc.SubscriptionSvcFacade = (*subscriptionService)(nil)

func (s *subscriptionService) validateReferences(ctx context.Context, userID int64, categoryID, accountID *int64) error {
	if categoryID != nil {
		category, err := s.categoryRepo.FindCategoryByID(ctx, *categoryID)
		if err != nil {
			return err
		}
		if category.UserID != userID {
			return apperrors.ErrNotFound
		}
	}
	if accountID != nil {
		account, err := s.accountRepo.FindAccountByID(ctx, *accountID)
		if err != nil {
			return err
		}
		if account.UserID != userID {
			return apperrors.ErrNotFound
		}
	}
	return nil
}

func (s *subscriptionService) CreateSubscription(ctx context.Context, userID int64, req dto.CreateSubscriptionRequest) (*domain.Subscription, error) {
	if req.Amount.LessThanOrEqual(decimal.Zero) {
		return nil, apperrors.NewValidationError("subscription amount must be positive")
	}
	nextBilling, err := dto.ParseDate(req.NextBillingDate)
	if err != nil {
		return nil, apperrors.NewValidationError("invalid next billing date")
	}
	if err := s.validateReferences(ctx, userID, req.CategoryID, req.AccountID); err != nil {
		return nil, err
	}

	now := time.Now()
	sub := domain.Subscription{
		UserID:          userID,
		Name:            req.Name,
		Amount:          req.Amount,
		BillingCycle:    req.BillingCycle,
		NextBillingDate: nextBilling,
		CategoryID:      req.CategoryID,
		AccountID:       req.AccountID,
		Notes:           req.Notes,
		IsActive:        true,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			LastUpdatedAt: now,
		},
	}

	saved, err := s.subscriptionRepo.SaveSubscription(ctx, sub)
	if err != nil {
		s.LogError(ctx, err, "Failed to save subscription", slog.Int64("user_id", userID))
		return nil, err
	}

	return saved, nil
}

// findOwnedSubscription fetches the subscription and hides other users'
// subscriptions behind ErrNotFound.
func (s *subscriptionService) findOwnedSubscription(ctx context.Context, userID int64, subscriptionID int64) (*domain.Subscription, error) {
	sub, err := s.subscriptionRepo.FindSubscriptionByID(ctx, subscriptionID)
	if err != nil {
		return nil, err
	}
	if sub.UserID != userID {
		return nil, apperrors.ErrNotFound
	}
	return sub, nil
}

func (s *subscriptionService) GetSubscriptionByID(ctx context.Context, userID int64, subscriptionID int64) (*domain.Subscription, error) {
	return s.findOwnedSubscription(ctx, userID, subscriptionID)
}

func (s *subscriptionService) ListSubscriptions(ctx context.Context, userID int64, activeOnly bool) ([]domain.Subscription, decimal.Decimal, error) {
	subs, err := s.subscriptionRepo.ListSubscriptions(ctx, userID, activeOnly)
	if err != nil {
		return nil, decimal.Zero, err
	}

	totalMonthly := decimal.Zero
	for _, sub := range subs {
		if sub.IsActive {
			totalMonthly = totalMonthly.Add(sub.BillingCycle.MonthlyCost(sub.Amount))
		}
	}
	return subs, totalMonthly.Round(2), nil
}

func (s *subscriptionService) UpdateSubscription(ctx context.Context, userID int64, subscriptionID int64, req dto.UpdateSubscriptionRequest) (*domain.Subscription, error) {
	sub, err := s.findOwnedSubscription(ctx, userID, subscriptionID)
	if err != nil {
		return nil, err
	}

	if err := s.validateReferences(ctx, userID, req.CategoryID, req.AccountID); err != nil {
		return nil, err
	}

	if req.Name != nil {
		sub.Name = *req.Name
	}
	if req.Amount != nil {
		if req.Amount.LessThanOrEqual(decimal.Zero) {
			return nil, apperrors.NewValidationError("subscription amount must be positive")
		}
		sub.Amount = *req.Amount
	}
	if req.BillingCycle != nil {
		sub.BillingCycle = *req.BillingCycle
	}
	if req.NextBillingDate != nil {
		nextBilling, err := dto.ParseDate(*req.NextBillingDate)
		if err != nil {
			return nil, apperrors.NewValidationError("invalid next billing date")
		}
		sub.NextBillingDate = nextBilling
	}
	if req.CategoryID != nil {
		sub.CategoryID = req.CategoryID
	}
	if req.AccountID != nil {
		sub.AccountID = req.AccountID
	}
	if req.Notes != nil {
		sub.Notes = *req.Notes
	}
	if req.IsActive != nil {
		sub.IsActive = *req.IsActive
	}
	sub.LastUpdatedAt = time.Now()

	if err := s.subscriptionRepo.UpdateSubscription(ctx, *sub); err != nil {
		s.LogError(ctx, err, "Failed to update subscription", slog.Int64("subscription_id", subscriptionID))
		return nil, err
	}

	return sub, nil
}

func (s *subscriptionService) DeleteSubscription(ctx context.Context, userID int64, subscriptionID int64) error {
	if _, err := s.findOwnedSubscription(ctx, userID, subscriptionID); err != nil {
		return err
	}

	if err := s.subscriptionRepo.DeleteSubscription(ctx, subscriptionID); err != nil {
		s.LogError(ctx, err, "Failed to delete subscription", slog.Int64("subscription_id", subscriptionID))
		return err
	}

	return nil
}

// AdvanceBillingDate moves the next billing date forward by one cycle, used
// after a billing charge has been entered.
func (s *subscriptionService) AdvanceBillingDate(ctx context.Context, userID int64, subscriptionID int64) (*domain.Subscription, error) {
	sub, err := s.findOwnedSubscription(ctx, userID, subscriptionID)
	if err != nil {
		return nil, err
	}

	sub.NextBillingDate = sub.BillingCycle.Advance(sub.NextBillingDate)
	sub.LastUpdatedAt = time.Now()

	if err := s.subscriptionRepo.UpdateSubscription(ctx, *sub); err != nil {
		s.LogError(ctx, err, "Failed to advance billing date", slog.Int64("subscription_id", subscriptionID))
		return nil, err
	}

	return sub, nil
}
