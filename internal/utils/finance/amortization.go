package finance

import (
	"math"
	"time"

	"github.com/finbook/finbook_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

var (
	hundred = decimal.NewFromInt(100)
	twelve  = decimal.NewFromInt(12)

	// centEpsilon is the sub-cent threshold below which a remaining balance
	// is considered retired.
	centEpsilon = decimal.RequireFromString("0.01")
)

// MonthlyRate converts an annual percentage rate (e.g. 6.5 for 6.5%) to a
// monthly decimal rate.
func MonthlyRate(annualRatePercent decimal.Decimal) decimal.Decimal {
	return annualRatePercent.Div(hundred).Div(twelve)
}

// ComputeMonthlyPayment returns the fixed monthly payment for a fixed-rate
// installment loan using the standard annuity formula:
//
//	payment = P * r * (1+r)^n / ((1+r)^n - 1)
//
// A zero (or negative) rate degrades to a straight-line principal/termMonths
// split rather than dividing by a zero monthly rate. The result is not
// rounded; rounding to cents happens only when a value is persisted or
// displayed.
//
// The power term is computed in float64 — decimal arithmetic has no
// fractional-base exponentiation — and converted back before any monetary use.
func ComputeMonthlyPayment(principal, annualRatePercent decimal.Decimal, termMonths int) decimal.Decimal {
	if annualRatePercent.LessThanOrEqual(decimal.Zero) {
		return principal.Div(decimal.NewFromInt(int64(termMonths)))
	}

	r := MonthlyRate(annualRatePercent).InexactFloat64()
	factor := math.Pow(1+r, float64(termMonths))
	payment := principal.InexactFloat64() * r * factor / (factor - 1)
	return decimal.NewFromFloat(payment)
}

// GenerateSchedule produces the full amortization schedule for a loan.
// fixedPayment overrides the computed monthly payment when non-nil (loans can
// be created with a caller-chosen payment).
//
// Each entry's monetary fields are rounded to cents for display, but the
// running balance is carried at full precision between iterations so rounding
// error never compounds across a long schedule. The final scheduled month, or
// any month whose remaining balance would drop below one cent, is forced to
// retire the loan exactly: principal is set to the whole remaining balance and
// the payment amount overridden to principal + interest. The schedule stops
// early once the balance reaches zero and never exceeds termMonths entries.
//
// A payment smaller than the interest due contributes zero principal that
// month; the balance does not grow by the shortfall (no negative
// amortization).
func GenerateSchedule(principal, annualRatePercent decimal.Decimal, termMonths int, startDate time.Time, fixedPayment *decimal.Decimal) []domain.AmortizationEntry {
	if termMonths <= 0 || principal.LessThanOrEqual(decimal.Zero) {
		return nil
	}

	payment := ComputeMonthlyPayment(principal, annualRatePercent, termMonths)
	if fixedPayment != nil {
		payment = *fixedPayment
	}

	monthlyRate := MonthlyRate(annualRatePercent)
	balance := principal
	cumulativeInterest := decimal.Zero
	cumulativePrincipal := decimal.Zero

	schedule := make([]domain.AmortizationEntry, 0, termMonths)
	for month := 1; month <= termMonths; month++ {
		paymentDate := startDate.AddDate(0, month, 0)

		interest := balance.Mul(monthlyRate)

		principalPortion := payment.Sub(interest)
		if principalPortion.GreaterThan(balance) {
			principalPortion = balance
		}
		if principalPortion.IsNegative() {
			principalPortion = decimal.Zero
		}

		paymentAmount := payment
		if month == termMonths || balance.Sub(principalPortion).LessThan(centEpsilon) {
			principalPortion = balance
			paymentAmount = principalPortion.Add(interest)
		}

		balance = balance.Sub(principalPortion)
		if balance.IsNegative() {
			balance = decimal.Zero
		}

		cumulativeInterest = cumulativeInterest.Add(interest)
		cumulativePrincipal = cumulativePrincipal.Add(principalPortion)

		schedule = append(schedule, domain.AmortizationEntry{
			PaymentNumber:       month,
			PaymentDate:         paymentDate,
			PaymentAmount:       paymentAmount.Round(2),
			Principal:           principalPortion.Round(2),
			Interest:            interest.Round(2),
			Balance:             balance.Round(2),
			CumulativeInterest:  cumulativeInterest.Round(2),
			CumulativePrincipal: cumulativePrincipal.Round(2),
		})

		if balance.LessThanOrEqual(decimal.Zero) {
			break
		}
	}

	return schedule
}
