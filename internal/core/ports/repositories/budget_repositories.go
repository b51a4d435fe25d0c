package repositories

import (
	"context"

	"github.com/finbook/finbook_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// BudgetRepositoryFacade defines operations for budget data. Budgets load
// with their items attached.
type BudgetRepositoryFacade interface {
	// FindBudgetByID retrieves a budget and its items.
	FindBudgetByID(ctx context.Context, budgetID int64) (*domain.Budget, error)

	// FindBudgetByMonth retrieves a user's budget for one calendar month.
	FindBudgetByMonth(ctx context.Context, userID int64, year int, month int) (*domain.Budget, error)

	// ListBudgets retrieves a user's budgets, newest month first, optionally
	// restricted to one year.
	ListBudgets(ctx context.Context, userID int64, year *int) ([]domain.Budget, error)

	// SaveBudget persists a budget and its items in one database
	// transaction. Fails with ErrDuplicate when the user already has a
	// budget for that month.
	SaveBudget(ctx context.Context, budget domain.Budget) (*domain.Budget, error)

	// DeleteBudget removes a budget. Item rows cascade with it.
	DeleteBudget(ctx context.Context, budgetID int64) error

	// GetCategorySpending sums the month's expense transactions per
	// category. Amounts are reported positive.
	GetCategorySpending(ctx context.Context, userID int64, year int, month int) (map[int64]decimal.Decimal, error)
}
