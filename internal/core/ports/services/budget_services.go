package services

import (
	"context"

	"github.com/finbook/finbook_app/internal/core/domain"
	"github.com/finbook/finbook_app/internal/dto"
)

// BudgetSvcFacade exposes budget operations to the handlers.
type BudgetSvcFacade interface {
	// CreateBudget persists a monthly budget and its category allocations.
	CreateBudget(ctx context.Context, userID int64, req dto.CreateBudgetRequest) (*domain.Budget, error)

	// GetBudgetByID retrieves one of the user's budgets with its items.
	GetBudgetByID(ctx context.Context, userID int64, budgetID int64) (*domain.Budget, error)

	// GetCurrentBudget retrieves the user's budget for the current calendar
	// month.
	GetCurrentBudget(ctx context.Context, userID int64) (*domain.Budget, error)

	// ListBudgets retrieves the user's budgets, optionally restricted to one
	// year.
	ListBudgets(ctx context.Context, userID int64, year *int) ([]domain.Budget, error)

	// GetBudgetProgress reports the month's actual spending per budgeted
	// category against the allocations.
	GetBudgetProgress(ctx context.Context, userID int64, budgetID int64) (*domain.BudgetProgress, error)

	// DeleteBudget removes a budget and its items.
	DeleteBudget(ctx context.Context, userID int64, budgetID int64) error
}
