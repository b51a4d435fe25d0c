package dto

import (
	"time"

	"github.com/finbook/finbook_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// BudgetItemRequest allocates part of a budget to one category.
type BudgetItemRequest struct {
	CategoryID int64           `json:"categoryID" binding:"required"`
	Allocated  decimal.Decimal `json:"allocated" binding:"required"`
}

// CreateBudgetRequest defines the data needed to plan one month.
type CreateBudgetRequest struct {
	Month       int                 `json:"month" binding:"required,min=1,max=12"`
	Year        int                 `json:"year" binding:"required,min=1970"`
	TotalBudget decimal.Decimal     `json:"totalBudget" binding:"required"`
	Items       []BudgetItemRequest `json:"items" binding:"dive"`
}

// ListBudgetsParams defines the query parameters for listing budgets.
type ListBudgetsParams struct {
	Year *int `form:"year" binding:"omitempty,min=1970"`
}

// BudgetItemResponse defines the data returned for one allocation.
type BudgetItemResponse struct {
	BudgetItemID int64           `json:"budgetItemID"`
	CategoryID   int64           `json:"categoryID"`
	CategoryName string          `json:"categoryName"`
	Allocated    decimal.Decimal `json:"allocated"`
}

// BudgetResponse defines the data returned for a budget.
type BudgetResponse struct {
	BudgetID    int64                `json:"budgetID"`
	Month       int                  `json:"month"`
	Year        int                  `json:"year"`
	TotalBudget decimal.Decimal      `json:"totalBudget"`
	Items       []BudgetItemResponse `json:"items"`
	CreatedAt   time.Time            `json:"createdAt"`
	UpdatedAt   time.Time            `json:"updatedAt"`
}

// ToBudgetResponse converts a domain.Budget to its response form.
func ToBudgetResponse(b *domain.Budget) BudgetResponse {
	resp := BudgetResponse{
		BudgetID:    b.BudgetID,
		Month:       b.Month,
		Year:        b.Year,
		TotalBudget: b.TotalBudget,
		Items:       make([]BudgetItemResponse, len(b.Items)),
		CreatedAt:   b.CreatedAt,
		UpdatedAt:   b.LastUpdatedAt,
	}
	for i, item := range b.Items {
		resp.Items[i] = BudgetItemResponse{
			BudgetItemID: item.BudgetItemID,
			CategoryID:   item.CategoryID,
			CategoryName: item.CategoryName,
			Allocated:    item.Allocated,
		}
	}
	return resp
}

// ListBudgetsResponse wraps the budget list.
type ListBudgetsResponse struct {
	Budgets []BudgetResponse `json:"budgets"`
	Total   int              `json:"total"`
}

// ToListBudgetsResponse converts a slice of domain Budgets.
func ToListBudgetsResponse(budgets []domain.Budget) ListBudgetsResponse {
	resp := ListBudgetsResponse{
		Budgets: make([]BudgetResponse, len(budgets)),
		Total:   len(budgets),
	}
	for i := range budgets {
		resp.Budgets[i] = ToBudgetResponse(&budgets[i])
	}
	return resp
}
