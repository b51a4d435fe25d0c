package dto

import (
	"github.com/finbook/finbook_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// MonthlyReportParams selects the month for spending reports.
type MonthlyReportParams struct {
	Year  int `form:"year" binding:"required,min=1970,max=9999"`
	Month int `form:"month" binding:"required,min=1,max=12"`
}

// TrendParams selects the window for the income/expense trend.
type TrendParams struct {
	Months int `form:"months,default=6" binding:"min=1,max=60"`
}

// CategorySpendingResponse is one category's expense total.
type CategorySpendingResponse struct {
	CategoryID   int64           `json:"categoryID"`
	CategoryName string          `json:"categoryName"`
	Total        decimal.Decimal `json:"total"`
}

// MonthlySpendingResponse is the per-category expense breakdown for a month.
type MonthlySpendingResponse struct {
	Year       int                        `json:"year"`
	Month      int                        `json:"month"`
	Categories []CategorySpendingResponse `json:"categories"`
	Total      decimal.Decimal            `json:"total"`
}

// ToMonthlySpendingResponse assembles the breakdown and its grand total.
func ToMonthlySpendingResponse(year, month int, rows []domain.CategorySpendingRow) MonthlySpendingResponse {
	resp := MonthlySpendingResponse{
		Year:       year,
		Month:      month,
		Categories: make([]CategorySpendingResponse, len(rows)),
		Total:      decimal.Zero,
	}
	for i, r := range rows {
		resp.Categories[i] = CategorySpendingResponse{
			CategoryID:   r.CategoryID,
			CategoryName: r.CategoryName,
			Total:        r.Total,
		}
		resp.Total = resp.Total.Add(r.Total)
	}
	return resp
}

// MonthlyTrendEntry is one month's totals in the trend response.
type MonthlyTrendEntry struct {
	Month    string          `json:"month"` // YYYY-MM
	Income   decimal.Decimal `json:"income"`
	Expenses decimal.Decimal `json:"expenses"`
	Net      decimal.Decimal `json:"net"`
}

// MonthlyTrendResponse is the rolling income/expense trend.
type MonthlyTrendResponse struct {
	Months []MonthlyTrendEntry `json:"months"`
}

// ToMonthlyTrendResponse converts trend rows, computing the net per month.
func ToMonthlyTrendResponse(rows []domain.MonthlyTrendRow) MonthlyTrendResponse {
	resp := MonthlyTrendResponse{Months: make([]MonthlyTrendEntry, len(rows))}
	for i, r := range rows {
		resp.Months[i] = MonthlyTrendEntry{
			Month:    r.Month,
			Income:   r.Income,
			Expenses: r.Expenses,
			Net:      r.Income.Sub(r.Expenses),
		}
	}
	return resp
}

// NetWorthResponse is the point-in-time net worth split by account kind.
type NetWorthResponse struct {
	Assets      decimal.Decimal                        `json:"assets"`
	Liabilities decimal.Decimal                        `json:"liabilities"`
	NetWorth    decimal.Decimal                        `json:"netWorth"`
	ByKind      map[domain.AccountKind]decimal.Decimal `json:"byKind"`
}

// ToNetWorthResponse folds per-kind balances into asset and liability totals.
// Liability balances are stored as positive owed amounts and subtract from
// net worth.
func ToNetWorthResponse(rows []domain.NetWorthRow) NetWorthResponse {
	resp := NetWorthResponse{
		Assets:      decimal.Zero,
		Liabilities: decimal.Zero,
		ByKind:      make(map[domain.AccountKind]decimal.Decimal, len(rows)),
	}
	for _, r := range rows {
		resp.ByKind[r.Kind] = r.Balance
		if r.Kind.IsLiability() {
			resp.Liabilities = resp.Liabilities.Add(r.Balance)
		} else {
			resp.Assets = resp.Assets.Add(r.Balance)
		}
	}
	resp.NetWorth = resp.Assets.Sub(resp.Liabilities)
	return resp
}
