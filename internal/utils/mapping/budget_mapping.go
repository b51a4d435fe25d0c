package mapping

import (
	"github.com/finbook/finbook_app/internal/core/domain"
	"github.com/finbook/finbook_app/internal/models"
)

// ToModelBudget converts a domain Budget to a model Budget. Items travel
// separately since they live in their own table.
func ToModelBudget(d domain.Budget) models.Budget {
	return models.Budget{
		BudgetID:    d.BudgetID,
		UserID:      d.UserID,
		Month:       d.Month,
		Year:        d.Year,
		TotalBudget: d.TotalBudget,
		AuditFields: ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainBudget converts a model Budget and its item rows to a domain Budget
func ToDomainBudget(m models.Budget, items []models.BudgetItem) domain.Budget {
	d := domain.Budget{
		BudgetID:    m.BudgetID,
		UserID:      m.UserID,
		Month:       m.Month,
		Year:        m.Year,
		TotalBudget: m.TotalBudget,
		Items:       make([]domain.BudgetItem, len(items)),
		AuditFields: ToDomainAuditFields(m.AuditFields),
	}
	for i, item := range items {
		d.Items[i] = ToDomainBudgetItem(item)
	}
	return d
}

// ToDomainBudgetItem converts a model BudgetItem to a domain BudgetItem
func ToDomainBudgetItem(m models.BudgetItem) domain.BudgetItem {
	return domain.BudgetItem{
		BudgetItemID: m.BudgetItemID,
		BudgetID:     m.BudgetID,
		CategoryID:   m.CategoryID,
		CategoryName: m.CategoryName,
		Allocated:    m.Allocated,
	}
}
