package domain

import "github.com/shopspring/decimal"

// CategorySpendingRow is one category's expense total for a month.
type CategorySpendingRow struct {
	CategoryID   int64           `json:"categoryID"`
	CategoryName string          `json:"categoryName"`
	Total        decimal.Decimal `json:"total"`
}

// MonthlyTrendRow is one month's income and expense totals.
type MonthlyTrendRow struct {
	Month    string          `json:"month"` // YYYY-MM
	Income   decimal.Decimal `json:"income"`
	Expenses decimal.Decimal `json:"expenses"`
}

// NetWorthRow is the summed balance of all active accounts of one kind.
type NetWorthRow struct {
	Kind    AccountKind     `json:"kind"`
	Balance decimal.Decimal `json:"balance"`
}
