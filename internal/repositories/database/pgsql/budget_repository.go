package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/finbook/finbook_app/internal/apperrors"
	"github.com/finbook/finbook_app/internal/core/domain"
	portsrepo "github.com/finbook/finbook_app/internal/core/ports/repositories"
	"github.com/finbook/finbook_app/internal/models"
	"github.com/finbook/finbook_app/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

const budgetColumns = `budget_id, user_id, month, year, total_budget, created_at, last_updated_at`

type PgxBudgetRepository struct {
	BaseRepository
}

// newPgxBudgetRepository creates a new repository for budget data.
func newPgxBudgetRepository(pool *pgxpool.Pool) portsrepo.BudgetRepositoryFacade {
	return &PgxBudgetRepository{BaseRepository: BaseRepository{Pool: pool}}
}

// Ensure PgxBudgetRepository implements portsrepo.BudgetRepositoryFacade
var _ portsrepo.BudgetRepositoryFacade = (*PgxBudgetRepository)(nil)

func scanBudget(row pgx.Row) (*models.Budget, error) {
	var m models.Budget
	err := row.Scan(
		&m.BudgetID,
		&m.UserID,
		&m.Month,
		&m.Year,
		&m.TotalBudget,
		&m.CreatedAt,
		&m.LastUpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

// loadBudgetItems fetches the item rows for a set of budgets, keyed by
// budget ID. Category names join in for display.
func (r *PgxBudgetRepository) loadBudgetItems(ctx context.Context, budgetIDs []int64) (map[int64][]models.BudgetItem, error) {
	if len(budgetIDs) == 0 {
		return map[int64][]models.BudgetItem{}, nil
	}

	query := `
		SELECT bi.budget_item_id, bi.budget_id, bi.category_id,
			COALESCE(c.name, 'Unknown'), bi.allocated_amount
		FROM budget_items bi
		LEFT JOIN categories c ON c.category_id = bi.category_id
		WHERE bi.budget_id = ANY($1)
		ORDER BY bi.budget_item_id;
	`
	rows, err := r.Pool.Query(ctx, query, budgetIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to query budget items: %w", err)
	}
	defer rows.Close()

	items := map[int64][]models.BudgetItem{}
	for rows.Next() {
		var m models.BudgetItem
		if err := rows.Scan(&m.BudgetItemID, &m.BudgetID, &m.CategoryID, &m.CategoryName, &m.Allocated); err != nil {
			return nil, fmt.Errorf("failed to scan budget item row: %w", err)
		}
		items[m.BudgetID] = append(items[m.BudgetID], m)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating budget item rows: %w", rows.Err())
	}

	return items, nil
}

func (r *PgxBudgetRepository) findBudget(ctx context.Context, query string, args ...any) (*domain.Budget, error) {
	m, err := scanBudget(r.Pool.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find budget: %w", err)
	}

	items, err := r.loadBudgetItems(ctx, []int64{m.BudgetID})
	if err != nil {
		return nil, err
	}

	budget := mapping.ToDomainBudget(*m, items[m.BudgetID])
	return &budget, nil
}

// FindBudgetByID retrieves a budget and its items.
func (r *PgxBudgetRepository) FindBudgetByID(ctx context.Context, budgetID int64) (*domain.Budget, error) {
	return r.findBudget(ctx, `SELECT `+budgetColumns+` FROM budgets WHERE budget_id = $1;`, budgetID)
}

// FindBudgetByMonth retrieves a user's budget for one calendar month.
func (r *PgxBudgetRepository) FindBudgetByMonth(ctx context.Context, userID int64, year int, month int) (*domain.Budget, error) {
	return r.findBudget(ctx,
		`SELECT `+budgetColumns+` FROM budgets WHERE user_id = $1 AND year = $2 AND month = $3;`,
		userID, year, month)
}

// ListBudgets retrieves a user's budgets, newest month first.
func (r *PgxBudgetRepository) ListBudgets(ctx context.Context, userID int64, year *int) ([]domain.Budget, error) {
	query := `SELECT ` + budgetColumns + ` FROM budgets WHERE user_id = $1`
	args := []any{userID}
	if year != nil {
		query += ` AND year = $2`
		args = append(args, *year)
	}
	query += ` ORDER BY year DESC, month DESC;`

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query budgets for user %d: %w", userID, err)
	}
	defer rows.Close()

	budgetModels := []models.Budget{}
	budgetIDs := []int64{}
	for rows.Next() {
		m, err := scanBudget(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan budget row: %w", err)
		}
		budgetModels = append(budgetModels, *m)
		budgetIDs = append(budgetIDs, m.BudgetID)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating budget rows: %w", rows.Err())
	}

	itemsByBudget, err := r.loadBudgetItems(ctx, budgetIDs)
	if err != nil {
		return nil, err
	}

	budgets := make([]domain.Budget, len(budgetModels))
	for i, m := range budgetModels {
		budgets[i] = mapping.ToDomainBudget(m, itemsByBudget[m.BudgetID])
	}
	return budgets, nil
}

// SaveBudget inserts a budget and its items in one database transaction.
func (r *PgxBudgetRepository) SaveBudget(ctx context.Context, budget domain.Budget) (*domain.Budget, error) {
	tx, err := r.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer r.Rollback(ctx, tx)

	m := mapping.ToModelBudget(budget)
	err = tx.QueryRow(ctx, `
		INSERT INTO budgets (user_id, month, year, total_budget, created_at, last_updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING budget_id;
	`, m.UserID, m.Month, m.Year, m.TotalBudget, m.CreatedAt, m.LastUpdatedAt).Scan(&m.BudgetID)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil, fmt.Errorf("%w: budget for %d/%d already exists", apperrors.ErrDuplicate, m.Month, m.Year)
		}
		return nil, fmt.Errorf("failed to save budget: %w", err)
	}

	for _, item := range budget.Items {
		_, err := tx.Exec(ctx, `
			INSERT INTO budget_items (budget_id, category_id, allocated_amount)
			VALUES ($1, $2, $3);
		`, m.BudgetID, item.CategoryID, item.Allocated)
		if err != nil {
			var pgErr *pgconn.PgError
			if errors.As(err, &pgErr) && pgErr.Code == "23505" {
				return nil, fmt.Errorf("%w: category %d budgeted twice", apperrors.ErrDuplicate, item.CategoryID)
			}
			return nil, fmt.Errorf("failed to save budget item for category %d: %w", item.CategoryID, err)
		}
	}

	if err := r.Commit(ctx, tx); err != nil {
		return nil, err
	}

	return r.FindBudgetByID(ctx, m.BudgetID)
}

// DeleteBudget removes a budget. Item rows cascade with it.
func (r *PgxBudgetRepository) DeleteBudget(ctx context.Context, budgetID int64) error {
	cmdTag, err := r.Pool.Exec(ctx, `DELETE FROM budgets WHERE budget_id = $1;`, budgetID)
	if err != nil {
		return fmt.Errorf("failed to delete budget %d: %w", budgetID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// GetCategorySpending sums the month's expense transactions per category.
// Expense rows carry negative amounts; totals are reported positive.
// Transfers are excluded since they move money rather than spend it.
func (r *PgxBudgetRepository) GetCategorySpending(ctx context.Context, userID int64, year int, month int) (map[int64]decimal.Decimal, error) {
	start := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 1, 0)

	query := `
		SELECT COALESCE(t.category_id, 0), SUM(-t.amount)
		FROM transactions t
		WHERE t.user_id = $1
			AND t.amount < 0
			AND t.transfer_to_account_id IS NULL
			AND t.date >= $2 AND t.date < $3
		GROUP BY t.category_id;
	`
	rows, err := r.Pool.Query(ctx, query, userID, start, end)
	if err != nil {
		return nil, fmt.Errorf("failed to query category spending for user %d: %w", userID, err)
	}
	defer rows.Close()

	spending := map[int64]decimal.Decimal{}
	for rows.Next() {
		var categoryID int64
		var total decimal.Decimal
		if err := rows.Scan(&categoryID, &total); err != nil {
			return nil, fmt.Errorf("failed to scan category spending row: %w", err)
		}
		spending[categoryID] = total
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating category spending rows: %w", rows.Err())
	}

	return spending, nil
}
