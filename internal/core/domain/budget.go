package domain

import "github.com/shopspring/decimal"

// Budget is one calendar month's spending plan. Items carve the plan up by
// expense category; the total may exceed the sum of its items to leave
// unallocated headroom.
type Budget struct {
	BudgetID    int64           `json:"budgetID"`
	UserID      int64           `json:"userID"`
	Month       int             `json:"month"` // 1-12
	Year        int             `json:"year"`
	TotalBudget decimal.Decimal `json:"totalBudget"`
	Items       []BudgetItem    `json:"items"`
	AuditFields
}

// BudgetItem allocates part of a budget to one category.
type BudgetItem struct {
	BudgetItemID int64           `json:"budgetItemID"`
	BudgetID     int64           `json:"budgetID"`
	CategoryID   int64           `json:"categoryID"`
	CategoryName string          `json:"categoryName"`
	Allocated    decimal.Decimal `json:"allocated"`
}

// BudgetItemProgress compares one item's allocation with the month's actual
// spending in that category.
type BudgetItemProgress struct {
	CategoryID   int64           `json:"categoryID"`
	CategoryName string          `json:"categoryName"`
	Allocated    decimal.Decimal `json:"allocated"`
	Spent        decimal.Decimal `json:"spent"`
	Remaining    decimal.Decimal `json:"remaining"`
	PercentUsed  decimal.Decimal `json:"percentUsed"`
}

// BudgetProgress is the spent-versus-planned report for one budget.
type BudgetProgress struct {
	BudgetID       int64                `json:"budgetID"`
	Month          int                  `json:"month"`
	Year           int                  `json:"year"`
	TotalBudget    decimal.Decimal      `json:"totalBudget"`
	TotalAllocated decimal.Decimal      `json:"totalAllocated"`
	TotalSpent     decimal.Decimal      `json:"totalSpent"`
	TotalRemaining decimal.Decimal      `json:"totalRemaining"`
	PercentUsed    decimal.Decimal      `json:"percentUsed"`
	Items          []BudgetItemProgress `json:"items"`
}
