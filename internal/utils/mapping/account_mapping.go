package mapping

import (
	"github.com/finbook/finbook_app/internal/core/domain"
	"github.com/finbook/finbook_app/internal/models"
)

// ToModelAccount converts a domain Account to a model Account, fanning the
// kind-specific detail payload out into its nullable columns.
func ToModelAccount(d domain.Account) models.Account {
	m := models.Account{
		AccountID:   d.AccountID,
		UserID:      d.UserID,
		Name:        d.Name,
		Kind:        models.AccountKind(d.Kind),
		Balance:     d.Balance,
		Institution: d.Institution,
		Notes:       d.Notes,
		IsActive:    d.IsActive,
		AuditFields: ToModelAuditFields(d.AuditFields),
	}
	if d.CreditCard != nil {
		m.CreditLimit = &d.CreditCard.CreditLimit
		m.CardRate = &d.CreditCard.InterestRate
		m.BillingCycleDay = &d.CreditCard.BillingCycleDay
	}
	if d.LoanDetail != nil {
		m.LoanRate = &d.LoanDetail.InterestRate
		m.LoanTermMonths = &d.LoanDetail.TermMonths
		m.LoanStartDate = &d.LoanDetail.StartDate
	}
	if d.Investment != nil {
		m.InitialInvestment = &d.Investment.InitialInvestment
	}
	return m
}

// ToDomainAccount converts a model Account to a domain Account, rebuilding the
// detail payload that matches the account's kind.
func ToDomainAccount(m models.Account) domain.Account {
	d := domain.Account{
		AccountID:   m.AccountID,
		UserID:      m.UserID,
		Name:        m.Name,
		Kind:        domain.AccountKind(m.Kind),
		Balance:     m.Balance,
		Institution: m.Institution,
		Notes:       m.Notes,
		IsActive:    m.IsActive,
		AuditFields: ToDomainAuditFields(m.AuditFields),
	}
	switch d.Kind {
	case domain.AccountCreditCard:
		if m.CreditLimit != nil && m.CardRate != nil && m.BillingCycleDay != nil {
			d.CreditCard = &domain.CreditCardDetails{
				CreditLimit:     *m.CreditLimit,
				InterestRate:    *m.CardRate,
				BillingCycleDay: *m.BillingCycleDay,
			}
		}
	case domain.AccountLoan:
		if m.LoanRate != nil && m.LoanTermMonths != nil && m.LoanStartDate != nil {
			d.LoanDetail = &domain.LoanAccountDetails{
				InterestRate: *m.LoanRate,
				TermMonths:   *m.LoanTermMonths,
				StartDate:    *m.LoanStartDate,
			}
		}
	case domain.AccountInvestment:
		if m.InitialInvestment != nil {
			d.Investment = &domain.InvestmentDetails{
				InitialInvestment: *m.InitialInvestment,
			}
		}
	}
	return d
}

// ToDomainAccountSlice converts a slice of model Accounts to domain Accounts
func ToDomainAccountSlice(ms []models.Account) []domain.Account {
	ds := make([]domain.Account, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainAccount(m)
	}
	return ds
}
