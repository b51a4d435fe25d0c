package repositories

import (
	"context"
	"time"

	"github.com/finbook/finbook_app/internal/core/domain"
)

// ReportingRepository defines the read-only aggregation queries behind
// reports. These run after the ledger has committed and never mutate
// balances.
type ReportingRepository interface {
	// GetMonthlySpending sums expenses by category inside [start, end).
	GetMonthlySpending(ctx context.Context, userID int64, start, end time.Time) ([]domain.CategorySpendingRow, error)

	// GetMonthlyTrend returns per-month income and expense totals for the
	// last `months` calendar months.
	GetMonthlyTrend(ctx context.Context, userID int64, months int) ([]domain.MonthlyTrendRow, error)

	// GetNetWorth sums active account balances grouped by account kind.
	GetNetWorth(ctx context.Context, userID int64) ([]domain.NetWorthRow, error)
}
