package finance_test

import (
	"testing"
	"time"

	"github.com/finbook/finbook_app/internal/utils/finance"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func d(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestComputeMonthlyPayment_ZeroRate(t *testing.T) {
	// Zero-interest loans split the principal exactly, with no rate math involved.
	payment := finance.ComputeMonthlyPayment(d("1200"), decimal.Zero, 12)
	assert.True(t, payment.Equal(d("100")), "expected exactly 100, got %s", payment)

	payment = finance.ComputeMonthlyPayment(d("1000"), decimal.Zero, 3)
	assert.True(t, payment.Round(6).Equal(d("333.333333")), "got %s", payment)
}

func TestComputeMonthlyPayment_AnnuityFormula(t *testing.T) {
	// 12,000 at 6% over 12 months is the canonical annuity example.
	payment := finance.ComputeMonthlyPayment(d("12000"), d("6"), 12)
	assert.True(t, payment.Round(2).Equal(d("1032.80")), "got %s", payment.Round(2))

	// 200,000 at 5% over 30 years.
	payment = finance.ComputeMonthlyPayment(d("200000"), d("5"), 360)
	assert.True(t, payment.Round(2).Equal(d("1073.64")), "got %s", payment.Round(2))
}

func TestGenerateSchedule_RetiresLoanExactly(t *testing.T) {
	start := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	schedule := finance.GenerateSchedule(d("12000"), d("6"), 12, start, nil)

	require.Len(t, schedule, 12)

	last := schedule[len(schedule)-1]
	assert.True(t, last.Balance.IsZero(), "final balance must be zero, got %s", last.Balance)

	// Principal over all entries adds back up to the original principal
	// within a cent.
	totalPrincipal := decimal.Zero
	for _, e := range schedule {
		totalPrincipal = totalPrincipal.Add(e.Principal)
	}
	diff := totalPrincipal.Sub(d("12000")).Abs()
	assert.True(t, diff.LessThanOrEqual(d("0.01")), "principal sum %s drifted from 12000", totalPrincipal)
	assert.True(t, last.CumulativePrincipal.Sub(d("12000")).Abs().LessThanOrEqual(d("0.01")))

	// Payment dates advance month by month from the start date.
	assert.Equal(t, time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC), schedule[0].PaymentDate)
	assert.Equal(t, time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC), last.PaymentDate)
}

func TestGenerateSchedule_ZeroRate(t *testing.T) {
	start := time.Date(2025, 3, 15, 0, 0, 0, 0, time.UTC)
	schedule := finance.GenerateSchedule(d("1200"), decimal.Zero, 12, start, nil)

	require.Len(t, schedule, 12)
	for _, e := range schedule {
		assert.True(t, e.Interest.IsZero())
		assert.True(t, e.Principal.Equal(d("100")), "entry %d principal %s", e.PaymentNumber, e.Principal)
	}
	assert.True(t, schedule[11].Balance.IsZero())
}

func TestGenerateSchedule_EarlyTermination(t *testing.T) {
	// A fixed payment far above the computed one retires the loan before the
	// scheduled term and the schedule stops there.
	start := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	big := d("500")
	schedule := finance.GenerateSchedule(d("1000"), d("6"), 24, start, &big)

	require.Less(t, len(schedule), 24)
	last := schedule[len(schedule)-1]
	assert.True(t, last.Balance.IsZero())
	// The closing payment is principal + interest, not the fixed 500.
	assert.True(t, last.PaymentAmount.LessThan(big))
}

func TestGenerateSchedule_PaymentBelowInterest(t *testing.T) {
	// Named edge case: a fixed payment below the interest due contributes zero
	// principal rather than growing the balance (no negative amortization).
	start := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	tiny := d("5") // interest due on month one is 10.00
	schedule := finance.GenerateSchedule(d("1000"), d("12"), 6, start, &tiny)

	require.Len(t, schedule, 6)
	for _, e := range schedule[:5] {
		assert.True(t, e.Principal.IsZero(), "entry %d should apply no principal", e.PaymentNumber)
		assert.True(t, e.Balance.Equal(d("1000")), "balance must not grow, got %s", e.Balance)
	}
	// The final scheduled month force-retires the full balance.
	last := schedule[5]
	assert.True(t, last.Principal.Equal(d("1000")))
	assert.True(t, last.Balance.IsZero())
	assert.True(t, last.PaymentAmount.Equal(d("1010")), "got %s", last.PaymentAmount)
}

func TestGenerateSchedule_NeverExceedsTerm(t *testing.T) {
	start := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	for _, term := range []int{1, 7, 60, 360} {
		schedule := finance.GenerateSchedule(d("50000"), d("4.5"), term, start, nil)
		assert.LessOrEqual(t, len(schedule), term)
		assert.True(t, schedule[len(schedule)-1].Balance.IsZero())
	}
}

func TestGenerateSchedule_DegenerateInputs(t *testing.T) {
	start := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	assert.Nil(t, finance.GenerateSchedule(d("1000"), d("5"), 0, start, nil))
	assert.Nil(t, finance.GenerateSchedule(decimal.Zero, d("5"), 12, start, nil))
}
