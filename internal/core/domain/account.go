package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// AccountKind identifies the concrete kind of account. The kind determines
// which detail payload (if any) is attached and how the account's balance
// contributes to net worth: bank and investment accounts are asset-like,
// credit card and loan accounts are liability-like.
type AccountKind string

const (
	AccountBank       AccountKind = "BANK"
	AccountCreditCard AccountKind = "CREDIT_CARD"
	AccountLoan       AccountKind = "LOAN"
	AccountInvestment AccountKind = "INVESTMENT"
)

// IsLiability reports whether balances of this kind represent money owed.
func (k AccountKind) IsLiability() bool {
	return k == AccountCreditCard || k == AccountLoan
}

// CreditCardDetails carries the fields that only exist on credit card accounts.
type CreditCardDetails struct {
	CreditLimit     decimal.Decimal `json:"creditLimit"`
	InterestRate    decimal.Decimal `json:"interestRate"` // annual percentage
	BillingCycleDay int             `json:"billingCycleDay"`
}

// LoanAccountDetails carries the fields that only exist on loan-kind accounts.
// The authoritative loan state lives on the Loan entity; these fields are for
// display on the account itself.
type LoanAccountDetails struct {
	InterestRate decimal.Decimal `json:"interestRate"`
	TermMonths   int             `json:"termMonths"`
	StartDate    time.Time       `json:"startDate"`
}

// InvestmentDetails carries the fields that only exist on investment accounts.
type InvestmentDetails struct {
	InitialInvestment decimal.Decimal `json:"initialInvestment"`
}

// Account represents a financial account. Balance is maintained as a running
// sum of every transaction touching the account, possibly adjusted by direct
// edits; it is the source of truth, not a derived value.
type Account struct {
	AccountID   int64              `json:"accountID"`
	UserID      int64              `json:"userID"`
	Name        string             `json:"name"`
	Kind        AccountKind        `json:"kind"`
	Balance     decimal.Decimal    `json:"balance"`
	Institution string             `json:"institution"`
	Notes       string             `json:"notes"`
	IsActive    bool               `json:"isActive"`
	CreditCard  *CreditCardDetails  `json:"creditCard,omitempty"`
	LoanDetail  *LoanAccountDetails `json:"loanDetail,omitempty"`
	Investment  *InvestmentDetails  `json:"investment,omitempty"`
	AuditFields
}
