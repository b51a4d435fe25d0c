package services

import (
	"context"

	"github.com/finbook/finbook_app/internal/dto"
)

// ReportingSvcFacade exposes read-only report queries to the handlers.
type ReportingSvcFacade interface {
	// GetMonthlySpending sums a month's expenses by category.
	GetMonthlySpending(ctx context.Context, userID int64, year int, month int) (*dto.MonthlySpendingResponse, error)

	// GetMonthlyTrend returns income and expense totals for the last N months.
	GetMonthlyTrend(ctx context.Context, userID int64, months int) (*dto.MonthlyTrendResponse, error)

	// GetNetWorth sums active account balances by kind.
	GetNetWorth(ctx context.Context, userID int64) (*dto.NetWorthResponse, error)
}
