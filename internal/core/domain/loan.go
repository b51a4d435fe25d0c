package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Loan is a fixed-rate installment loan. CurrentBalance starts at
// OriginalPrincipal and is reduced by the principal portion of each recorded
// payment; it is authoritative even when the loan is linked to an Account for
// display. IsActive flips to false once the balance is effectively zero
// (below one cent).
type Loan struct {
	LoanID            int64           `json:"loanID"`
	UserID            int64           `json:"userID"`
	Name              string          `json:"name"`
	LoanType          string          `json:"loanType"` // e.g. mortgage, auto, student, personal
	OriginalPrincipal decimal.Decimal `json:"originalPrincipal"`
	CurrentBalance    decimal.Decimal `json:"currentBalance"`
	InterestRate      decimal.Decimal `json:"interestRate"` // annual percentage, e.g. 6.5
	TermMonths        int             `json:"termMonths"`
	StartDate         time.Time       `json:"startDate"`
	MonthlyPayment    decimal.Decimal `json:"monthlyPayment"`
	TotalPaid         decimal.Decimal `json:"totalPaid"`
	AccountID         *int64          `json:"accountID,omitempty"` // optional display link
	Notes             string          `json:"notes"`
	IsActive          bool            `json:"isActive"`
	AuditFields
}

// LoanPayment is one applied payment against a loan. Payments are append-only:
// once recorded they are never updated or deleted. Amount is the gross amount
// paid including extra principal, and PrincipalPaid + InterestPaid always
// equals it exactly.
type LoanPayment struct {
	PaymentID      int64           `json:"paymentID"`
	LoanID         int64           `json:"loanID"`
	Amount         decimal.Decimal `json:"amount"`
	PrincipalPaid  decimal.Decimal `json:"principalPaid"`
	InterestPaid   decimal.Decimal `json:"interestPaid"`
	ExtraPrincipal decimal.Decimal `json:"extraPrincipal"`
	BalanceAfter   decimal.Decimal `json:"balanceAfter"`
	PaymentDate    time.Time       `json:"paymentDate"`
	Notes          string          `json:"notes"`
	CreatedAt      time.Time       `json:"createdAt"`
}

// AmortizationEntry is one row of a generated amortization schedule. Entries
// are derived, never persisted. All monetary fields are rounded to cents for
// display; the generator carries full precision between rows internally.
type AmortizationEntry struct {
	PaymentNumber       int             `json:"paymentNumber"`
	PaymentDate         time.Time       `json:"paymentDate"`
	PaymentAmount       decimal.Decimal `json:"paymentAmount"`
	Principal           decimal.Decimal `json:"principal"`
	Interest            decimal.Decimal `json:"interest"`
	Balance             decimal.Decimal `json:"balance"`
	CumulativeInterest  decimal.Decimal `json:"cumulativeInterest"`
	CumulativePrincipal decimal.Decimal `json:"cumulativePrincipal"`
}

// LoanSummary aggregates active loans for the dashboard.
type LoanSummary struct {
	TotalLoans          int             `json:"totalLoans"`
	ActiveLoans         int             `json:"activeLoans"`
	TotalBalance        decimal.Decimal `json:"totalBalance"`
	TotalOriginal       decimal.Decimal `json:"totalOriginal"`
	TotalMonthlyPayment decimal.Decimal `json:"totalMonthlyPayment"`
	LoansByType         map[string]int  `json:"loansByType"`
}
