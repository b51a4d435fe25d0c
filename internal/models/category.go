package models

// CategoryType mirrors domain.CategoryType at the storage layer.
type CategoryType string

const (
	Income  CategoryType = "INCOME"
	Expense CategoryType = "EXPENSE"
)

// Category represents a row of the categories table.
type Category struct {
	CategoryID int64        `db:"category_id"`
	UserID     int64        `db:"user_id"`
	Name       string       `db:"name"`
	Type       CategoryType `db:"type"`
	Icon       string       `db:"icon"`
	AuditFields
}
