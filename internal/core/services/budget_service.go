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

// budgetService implements the BudgetSvcFacade interface
type budgetService struct {
	BaseService
	budgetRepo   portsrepo.BudgetRepositoryFacade
	categoryRepo portsrepo.CategoryRepositoryFacade
}

// NewBudgetService creates a new budget service
func NewBudgetService(budgetRepo portsrepo.BudgetRepositoryFacade, categoryRepo portsrepo.CategoryRepositoryFacade) portssvc.BudgetSvcFacade {
	return &budgetService{
		budgetRepo:   budgetRepo,
		categoryRepo: categoryRepo,
	}
}

// Ensure budgetService implements the BudgetSvcFacade interface
var _ portssvc.BudgetSvcFacade = (*budgetService)(nil)

func (s *budgetService) CreateBudget(ctx context.Context, userID int64, req dto.CreateBudgetRequest) (*domain.Budget, error) {
	if req.TotalBudget.LessThan(decimal.Zero) {
		return nil, apperrors.NewValidationError("total budget cannot be negative")
	}

	items := make([]domain.BudgetItem, len(req.Items))
	seen := make(map[int64]bool, len(req.Items))
	for i, item := range req.Items {
		if item.Allocated.LessThanOrEqual(decimal.Zero) {
			return nil, apperrors.NewValidationError("allocated amount must be positive")
		}
		if seen[item.CategoryID] {
			return nil, apperrors.NewValidationError("category budgeted more than once")
		}
		seen[item.CategoryID] = true

		category, err := s.categoryRepo.FindCategoryByID(ctx, item.CategoryID)
		if err != nil {
			return nil, err
		}
		if category.UserID != userID {
			return nil, apperrors.ErrNotFound
		}

		items[i] = domain.BudgetItem{
			CategoryID: item.CategoryID,
			Allocated:  item.Allocated,
		}
	}

	now := time.Now()
	budget := domain.Budget{
		UserID:      userID,
		Month:       req.Month,
		Year:        req.Year,
		TotalBudget: req.TotalBudget,
		Items:       items,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			LastUpdatedAt: now,
		},
	}

	saved, err := s.budgetRepo.SaveBudget(ctx, budget)
	if err != nil {
		s.LogError(ctx, err, "Failed to save budget",
			slog.Int64("user_id", userID),
			slog.Int("year", req.Year),
			slog.Int("month", req.Month))
		return nil, err
	}

	return saved, nil
}

// findOwnedBudget fetches the budget and hides other users' budgets behind
// ErrNotFound.
func (s *budgetService) findOwnedBudget(ctx context.Context, userID int64, budgetID int64) (*domain.Budget, error) {
	budget, err := s.budgetRepo.FindBudgetByID(ctx, budgetID)
	if err != nil {
		return nil, err
	}
	if budget.UserID != userID {
		return nil, apperrors.ErrNotFound
	}
	return budget, nil
}

func (s *budgetService) GetBudgetByID(ctx context.Context, userID int64, budgetID int64) (*domain.Budget, error) {
	return s.findOwnedBudget(ctx, userID, budgetID)
}

func (s *budgetService) GetCurrentBudget(ctx context.Context, userID int64) (*domain.Budget, error) {
	now := time.Now()
	return s.budgetRepo.FindBudgetByMonth(ctx, userID, now.Year(), int(now.Month()))
}

func (s *budgetService) ListBudgets(ctx context.Context, userID int64, year *int) ([]domain.Budget, error) {
	return s.budgetRepo.ListBudgets(ctx, userID, year)
}

func (s *budgetService) GetBudgetProgress(ctx context.Context, userID int64, budgetID int64) (*domain.BudgetProgress, error) {
	budget, err := s.findOwnedBudget(ctx, userID, budgetID)
	if err != nil {
		return nil, err
	}

	spent, err := s.budgetRepo.GetCategorySpending(ctx, userID, budget.Year, budget.Month)
	if err != nil {
		s.LogError(ctx, err, "Failed to load category spending", slog.Int64("budget_id", budgetID))
		return nil, err
	}

	progress := domain.BudgetProgress{
		BudgetID:       budget.BudgetID,
		Month:          budget.Month,
		Year:           budget.Year,
		TotalBudget:    budget.TotalBudget,
		TotalAllocated: decimal.Zero,
		TotalSpent:     decimal.Zero,
		Items:          make([]domain.BudgetItemProgress, len(budget.Items)),
	}

	for i, item := range budget.Items {
		itemSpent := spent[item.CategoryID]
		progress.Items[i] = domain.BudgetItemProgress{
			CategoryID:   item.CategoryID,
			CategoryName: item.CategoryName,
			Allocated:    item.Allocated,
			Spent:        itemSpent,
			Remaining:    item.Allocated.Sub(itemSpent).Round(2),
			PercentUsed:  percentOf(itemSpent, item.Allocated),
		}
		progress.TotalAllocated = progress.TotalAllocated.Add(item.Allocated)
		progress.TotalSpent = progress.TotalSpent.Add(itemSpent)
	}

	progress.TotalRemaining = progress.TotalBudget.Sub(progress.TotalSpent).Round(2)
	progress.PercentUsed = percentOf(progress.TotalSpent, progress.TotalBudget)

	return &progress, nil
}

// percentOf reports spent as a percentage of planned, rounded to two
// decimals. A zero plan reports zero rather than dividing by it.
func percentOf(spent, planned decimal.Decimal) decimal.Decimal {
	if planned.IsZero() {
		return decimal.Zero
	}
	return spent.Div(planned).Mul(decimal.NewFromInt(100)).Round(2)
}

func (s *budgetService) DeleteBudget(ctx context.Context, userID int64, budgetID int64) error {
	if _, err := s.findOwnedBudget(ctx, userID, budgetID); err != nil {
		return err
	}

	if err := s.budgetRepo.DeleteBudget(ctx, budgetID); err != nil {
		s.LogError(ctx, err, "Failed to delete budget", slog.Int64("budget_id", budgetID))
		return err
	}

	return nil
}
