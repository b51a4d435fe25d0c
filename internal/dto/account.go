package dto

import (
	"time"

	"github.com/finbook/finbook_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreditCardDetailsDTO carries credit-card specific fields.
type CreditCardDetailsDTO struct {
	CreditLimit     decimal.Decimal `json:"creditLimit"`
	InterestRate    decimal.Decimal `json:"interestRate"`
	BillingCycleDay int             `json:"billingCycleDay" binding:"omitempty,min=1,max=28"`
}

// LoanAccountDetailsDTO carries loan-account specific display fields.
type LoanAccountDetailsDTO struct {
	InterestRate decimal.Decimal `json:"interestRate"`
	TermMonths   int             `json:"termMonths" binding:"omitempty,min=1,max=600"`
	StartDate    string          `json:"startDate" binding:"omitempty,datetime=2006-01-02"`
}

// InvestmentDetailsDTO carries investment-account specific fields.
type InvestmentDetailsDTO struct {
	InitialInvestment decimal.Decimal `json:"initialInvestment"`
}

// CreateAccountRequest defines the data needed to create a new account.
type CreateAccountRequest struct {
	Name           string                 `json:"name" binding:"required"`
	Kind           domain.AccountKind     `json:"kind" binding:"required,oneof=BANK CREDIT_CARD LOAN INVESTMENT"`
	InitialBalance decimal.Decimal        `json:"initialBalance"`
	Institution    string                 `json:"institution"`
	Notes          string                 `json:"notes"`
	CreditCard     *CreditCardDetailsDTO  `json:"creditCard,omitempty"`
	LoanDetail     *LoanAccountDetailsDTO `json:"loanDetail,omitempty"`
	Investment     *InvestmentDetailsDTO  `json:"investment,omitempty"`
}

// UpdateAccountRequest defines the data allowed for updating an account.
// Pointers distinguish zero-value updates from fields not provided. Balance
// is a direct balance edit, applied on top of the transaction running sum.
type UpdateAccountRequest struct {
	Name        *string                `json:"name"`
	Institution *string                `json:"institution"`
	Notes       *string                `json:"notes"`
	IsActive    *bool                  `json:"isActive"`
	Balance     *decimal.Decimal       `json:"balance"`
	CreditCard  *CreditCardDetailsDTO  `json:"creditCard,omitempty"`
	LoanDetail  *LoanAccountDetailsDTO `json:"loanDetail,omitempty"`
	Investment  *InvestmentDetailsDTO  `json:"investment,omitempty"`
}

// AccountResponse defines the data returned for an account.
type AccountResponse struct {
	AccountID   int64                  `json:"accountID"`
	Name        string                 `json:"name"`
	Kind        domain.AccountKind     `json:"kind"`
	Balance     decimal.Decimal        `json:"balance"`
	Institution string                 `json:"institution"`
	Notes       string                 `json:"notes"`
	IsActive    bool                   `json:"isActive"`
	CreditCard  *CreditCardDetailsDTO  `json:"creditCard,omitempty"`
	LoanDetail  *LoanAccountDetailsDTO `json:"loanDetail,omitempty"`
	Investment  *InvestmentDetailsDTO  `json:"investment,omitempty"`
	CreatedAt   time.Time              `json:"createdAt"`
	UpdatedAt   time.Time              `json:"updatedAt"`
}

// ToAccountResponse converts a domain.Account to AccountResponse.
func ToAccountResponse(acc *domain.Account) AccountResponse {
	resp := AccountResponse{
		AccountID:   acc.AccountID,
		Name:        acc.Name,
		Kind:        acc.Kind,
		Balance:     acc.Balance,
		Institution: acc.Institution,
		Notes:       acc.Notes,
		IsActive:    acc.IsActive,
		CreatedAt:   acc.CreatedAt,
		UpdatedAt:   acc.LastUpdatedAt,
	}
	if acc.CreditCard != nil {
		resp.CreditCard = &CreditCardDetailsDTO{
			CreditLimit:     acc.CreditCard.CreditLimit,
			InterestRate:    acc.CreditCard.InterestRate,
			BillingCycleDay: acc.CreditCard.BillingCycleDay,
		}
	}
	if acc.LoanDetail != nil {
		resp.LoanDetail = &LoanAccountDetailsDTO{
			InterestRate: acc.LoanDetail.InterestRate,
			TermMonths:   acc.LoanDetail.TermMonths,
			StartDate:    FormatDate(acc.LoanDetail.StartDate),
		}
	}
	if acc.Investment != nil {
		resp.Investment = &InvestmentDetailsDTO{InitialInvestment: acc.Investment.InitialInvestment}
	}
	return resp
}

// ListAccountsResponse wraps the list of accounts with net worth totals.
type ListAccountsResponse struct {
	Accounts         []AccountResponse `json:"accounts"`
	TotalAssets      decimal.Decimal   `json:"totalAssets"`
	TotalLiabilities decimal.Decimal   `json:"totalLiabilities"`
	NetWorth         decimal.Decimal   `json:"netWorth"`
}

// ToListAccountsResponse converts accounts and computes asset/liability
// totals: bank and investment balances count as assets, credit card and loan
// balances as liabilities.
func ToListAccountsResponse(accounts []domain.Account) ListAccountsResponse {
	resp := ListAccountsResponse{
		Accounts:         make([]AccountResponse, len(accounts)),
		TotalAssets:      decimal.Zero,
		TotalLiabilities: decimal.Zero,
	}
	for i, acc := range accounts {
		resp.Accounts[i] = ToAccountResponse(&acc)
		if !acc.IsActive {
			continue
		}
		if acc.Kind.IsLiability() {
			resp.TotalLiabilities = resp.TotalLiabilities.Add(acc.Balance.Abs())
		} else {
			resp.TotalAssets = resp.TotalAssets.Add(acc.Balance)
		}
	}
	resp.NetWorth = resp.TotalAssets.Sub(resp.TotalLiabilities)
	return resp
}
