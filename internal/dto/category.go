package dto

import (
	"time"

	"github.com/finbook/finbook_app/internal/core/domain"
)

// CreateCategoryRequest defines the data needed to create a category.
type CreateCategoryRequest struct {
	Name string              `json:"name" binding:"required"`
	Type domain.CategoryType `json:"type" binding:"required,oneof=INCOME EXPENSE"`
	Icon string              `json:"icon"`
}

// UpdateCategoryRequest defines the editable category fields.
type UpdateCategoryRequest struct {
	Name *string              `json:"name"`
	Type *domain.CategoryType `json:"type" binding:"omitempty,oneof=INCOME EXPENSE"`
	Icon *string              `json:"icon"`
}

// CategoryResponse defines the data returned for a category.
type CategoryResponse struct {
	CategoryID int64               `json:"categoryID"`
	Name       string              `json:"name"`
	Type       domain.CategoryType `json:"type"`
	Icon       string              `json:"icon"`
	CreatedAt  time.Time           `json:"createdAt"`
	UpdatedAt  time.Time           `json:"updatedAt"`
}

// ToCategoryResponse converts a domain.Category to CategoryResponse.
func ToCategoryResponse(c *domain.Category) CategoryResponse {
	return CategoryResponse{
		CategoryID: c.CategoryID,
		Name:       c.Name,
		Type:       c.Type,
		Icon:       c.Icon,
		CreatedAt:  c.CreatedAt,
		UpdatedAt:  c.LastUpdatedAt,
	}
}

// ListCategoriesResponse wraps the category list.
type ListCategoriesResponse struct {
	Categories []CategoryResponse `json:"categories"`
	Total      int                `json:"total"`
}

// ToListCategoriesResponse converts a category slice.
func ToListCategoriesResponse(categories []domain.Category) ListCategoriesResponse {
	resp := ListCategoriesResponse{
		Categories: make([]CategoryResponse, len(categories)),
		Total:      len(categories),
	}
	for i, c := range categories {
		resp.Categories[i] = ToCategoryResponse(&c)
	}
	return resp
}
