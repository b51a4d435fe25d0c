package pgsql

import (
	"context"
	"fmt"
	"time"

	"github.com/finbook/finbook_app/internal/core/domain"
	portsrepo "github.com/finbook/finbook_app/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

type ReportingRepository struct {
	pool *pgxpool.Pool
}

// newReportingRepository creates a repository for read-only report queries.
func newReportingRepository(pool *pgxpool.Pool) portsrepo.ReportingRepository {
	return &ReportingRepository{pool: pool}
}

// Ensure ReportingRepository implements portsrepo.ReportingRepository
var _ portsrepo.ReportingRepository = (*ReportingRepository)(nil)

// GetMonthlySpending sums expenses by category inside [start, end). Expense
// rows carry negative amounts; totals are reported positive. Transfers are
// excluded since they move money rather than spend it.
func (r *ReportingRepository) GetMonthlySpending(ctx context.Context, userID int64, start, end time.Time) ([]domain.CategorySpendingRow, error) {
	query := `
		SELECT COALESCE(c.category_id, 0), COALESCE(c.name, 'Uncategorized'), SUM(-t.amount)
		FROM transactions t
		LEFT JOIN categories c ON c.category_id = t.category_id
		WHERE t.user_id = $1
			AND t.amount < 0
			AND t.transfer_to_account_id IS NULL
			AND t.date >= $2 AND t.date < $3
		GROUP BY c.category_id, c.name
		ORDER BY SUM(-t.amount) DESC;
	`
	rows, err := r.pool.Query(ctx, query, userID, start, end)
	if err != nil {
		return nil, fmt.Errorf("failed to query monthly spending for user %d: %w", userID, err)
	}
	defer rows.Close()

	result := []domain.CategorySpendingRow{}
	for rows.Next() {
		var row domain.CategorySpendingRow
		if err := rows.Scan(&row.CategoryID, &row.CategoryName, &row.Total); err != nil {
			return nil, fmt.Errorf("failed to scan spending row: %w", err)
		}
		result = append(result, row)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating spending rows: %w", rows.Err())
	}

	return result, nil
}

// GetMonthlyTrend returns per-month income and expense totals for the last
// `months` calendar months, oldest first. Months without activity still
// appear with zero totals.
func (r *ReportingRepository) GetMonthlyTrend(ctx context.Context, userID int64, months int) ([]domain.MonthlyTrendRow, error) {
	query := `
		SELECT m.month,
			COALESCE(SUM(t.amount) FILTER (WHERE t.amount > 0), 0) AS income,
			COALESCE(SUM(-t.amount) FILTER (WHERE t.amount < 0), 0) AS expenses
		FROM generate_series(
			date_trunc('month', CURRENT_DATE) - ($2 - 1) * INTERVAL '1 month',
			date_trunc('month', CURRENT_DATE),
			INTERVAL '1 month'
		) AS m(month)
		LEFT JOIN transactions t
			ON t.user_id = $1
			AND t.transfer_to_account_id IS NULL
			AND date_trunc('month', t.date) = m.month
		GROUP BY m.month
		ORDER BY m.month;
	`
	rows, err := r.pool.Query(ctx, query, userID, months)
	if err != nil {
		return nil, fmt.Errorf("failed to query monthly trend for user %d: %w", userID, err)
	}
	defer rows.Close()

	result := []domain.MonthlyTrendRow{}
	for rows.Next() {
		var month time.Time
		var row domain.MonthlyTrendRow
		if err := rows.Scan(&month, &row.Income, &row.Expenses); err != nil {
			return nil, fmt.Errorf("failed to scan trend row: %w", err)
		}
		row.Month = month.Format("2006-01")
		result = append(result, row)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating trend rows: %w", rows.Err())
	}

	return result, nil
}

// GetNetWorth sums active account balances grouped by account kind.
func (r *ReportingRepository) GetNetWorth(ctx context.Context, userID int64) ([]domain.NetWorthRow, error) {
	query := `
		SELECT kind, COALESCE(SUM(balance), 0)
		FROM accounts
		WHERE user_id = $1 AND is_active = TRUE
		GROUP BY kind;
	`
	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query net worth for user %d: %w", userID, err)
	}
	defer rows.Close()

	result := []domain.NetWorthRow{}
	for rows.Next() {
		var row domain.NetWorthRow
		if err := rows.Scan(&row.Kind, &row.Balance); err != nil {
			return nil, fmt.Errorf("failed to scan net worth row: %w", err)
		}
		result = append(result, row)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating net worth rows: %w", rows.Err())
	}

	return result, nil
}
