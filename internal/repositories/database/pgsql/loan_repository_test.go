package pgsql

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/finbook/finbook_app/internal/core/domain"
)

func TestAccumulateLoanSummaryRow_SkipsRetiredLoansInBreakdown(t *testing.T) {
	summary := &domain.LoanSummary{
		TotalBalance:        decimal.Zero,
		TotalOriginal:       decimal.Zero,
		TotalMonthlyPayment: decimal.Zero,
		LoansByType:         map[string]int{},
	}

	accumulateLoanSummaryRow(summary, "mortgage", true, 2,
		decimal.NewFromInt(250000), decimal.NewFromInt(300000), decimal.NewFromInt(1800))
	accumulateLoanSummaryRow(summary, "auto", true, 1,
		decimal.NewFromInt(12000), decimal.NewFromInt(20000), decimal.NewFromInt(400))
	// a paid-off auto loan: counted in the total, invisible everywhere else
	accumulateLoanSummaryRow(summary, "auto", false, 3,
		decimal.Zero, decimal.Zero, decimal.Zero)

	assert.Equal(t, 6, summary.TotalLoans)
	assert.Equal(t, 3, summary.ActiveLoans)
	assert.Equal(t, map[string]int{"mortgage": 2, "auto": 1}, summary.LoansByType)
	assert.True(t, summary.TotalBalance.Equal(decimal.NewFromInt(262000)), "balance: %s", summary.TotalBalance)
	assert.True(t, summary.TotalMonthlyPayment.Equal(decimal.NewFromInt(2200)), "payment: %s", summary.TotalMonthlyPayment)
}
