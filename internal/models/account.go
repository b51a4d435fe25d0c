package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// AccountKind mirrors domain.AccountKind at the storage layer. The canonical
// kind constants live in the domain package; rows only carry the raw value.
type AccountKind string

// Account represents a row of the accounts table. Kind-specific detail fields
// are nullable columns; only the columns matching the account's kind are set.
type Account struct {
	AccountID   int64           `db:"account_id"`
	UserID      int64           `db:"user_id"`
	Name        string          `db:"name"`
	Kind        AccountKind     `db:"kind"`
	Balance     decimal.Decimal `db:"balance"`
	Institution string          `db:"institution"`
	Notes       string          `db:"notes"`
	IsActive    bool            `db:"is_active"`
	AuditFields

	// CREDIT_CARD columns
	CreditLimit     *decimal.Decimal `db:"credit_limit"`
	CardRate        *decimal.Decimal `db:"card_interest_rate"`
	BillingCycleDay *int             `db:"billing_cycle_day"`

	// LOAN columns
	LoanRate       *decimal.Decimal `db:"loan_interest_rate"`
	LoanTermMonths *int             `db:"loan_term_months"`
	LoanStartDate  *time.Time       `db:"loan_start_date"`

	// INVESTMENT columns
	InitialInvestment *decimal.Decimal `db:"initial_investment"`
}
