package domain

// CategoryType splits categories into income and expense groupings for
// reporting purposes.
type CategoryType string

const (
	CategoryIncome  CategoryType = "INCOME"
	CategoryExpense CategoryType = "EXPENSE"
)

// Category labels transactions for reports and budgeting.
type Category struct {
	CategoryID int64        `json:"categoryID"`
	UserID     int64        `json:"userID"`
	Name       string       `json:"name"`
	Type       CategoryType `json:"type"`
	Icon       string       `json:"icon"`
	AuditFields
}
