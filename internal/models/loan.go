package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Loan represents a row of the loans table.
type Loan struct {
	LoanID            int64           `db:"loan_id"`
	UserID            int64           `db:"user_id"`
	Name              string          `db:"name"`
	LoanType          string          `db:"loan_type"`
	OriginalPrincipal decimal.Decimal `db:"original_principal"`
	CurrentBalance    decimal.Decimal `db:"current_balance"`
	InterestRate      decimal.Decimal `db:"interest_rate"`
	TermMonths        int             `db:"term_months"`
	StartDate         time.Time       `db:"start_date"`
	MonthlyPayment    decimal.Decimal `db:"monthly_payment"`
	TotalPaid         decimal.Decimal `db:"total_paid"`
	AccountID         *int64          `db:"account_id"`
	Notes             string          `db:"notes"`
	IsActive          bool            `db:"is_active"`
	AuditFields
}

// LoanPayment represents a row of the loan_payments table. Rows are
// append-only.
type LoanPayment struct {
	PaymentID      int64           `db:"payment_id"`
	LoanID         int64           `db:"loan_id"`
	Amount         decimal.Decimal `db:"amount"`
	PrincipalPaid  decimal.Decimal `db:"principal_paid"`
	InterestPaid   decimal.Decimal `db:"interest_paid"`
	ExtraPrincipal decimal.Decimal `db:"extra_principal"`
	BalanceAfter   decimal.Decimal `db:"balance_after"`
	PaymentDate    time.Time       `db:"payment_date"`
	Notes          string          `db:"notes"`
	CreatedAt      time.Time       `db:"created_at"`
}
