package models

import "github.com/shopspring/decimal"

// Budget represents a row of the budgets table.
type Budget struct {
	BudgetID    int64           `db:"budget_id"`
	UserID      int64           `db:"user_id"`
	Month       int             `db:"month"`
	Year        int             `db:"year"`
	TotalBudget decimal.Decimal `db:"total_budget"`
	AuditFields
}

// BudgetItem represents a row of the budget_items table. CategoryName is
// joined in from categories for display.
type BudgetItem struct {
	BudgetItemID int64           `db:"budget_item_id"`
	BudgetID     int64           `db:"budget_id"`
	CategoryID   int64           `db:"category_id"`
	CategoryName string          `db:"category_name"`
	Allocated    decimal.Decimal `db:"allocated_amount"`
}
