package mapping

import (
	"github.com/finbook/finbook_app/internal/core/domain"
	"github.com/finbook/finbook_app/internal/models"
)

// ToModelLoan converts a domain Loan to a model Loan
func ToModelLoan(d domain.Loan) models.Loan {
	return models.Loan{
		LoanID:            d.LoanID,
		UserID:            d.UserID,
		Name:              d.Name,
		LoanType:          d.LoanType,
		OriginalPrincipal: d.OriginalPrincipal,
		CurrentBalance:    d.CurrentBalance,
		InterestRate:      d.InterestRate,
		TermMonths:        d.TermMonths,
		StartDate:         d.StartDate,
		MonthlyPayment:    d.MonthlyPayment,
		TotalPaid:         d.TotalPaid,
		AccountID:         d.AccountID,
		Notes:             d.Notes,
		IsActive:          d.IsActive,
		AuditFields:       ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainLoan converts a model Loan to a domain Loan
func ToDomainLoan(m models.Loan) domain.Loan {
	return domain.Loan{
		LoanID:            m.LoanID,
		UserID:            m.UserID,
		Name:              m.Name,
		LoanType:          m.LoanType,
		OriginalPrincipal: m.OriginalPrincipal,
		CurrentBalance:    m.CurrentBalance,
		InterestRate:      m.InterestRate,
		TermMonths:        m.TermMonths,
		StartDate:         m.StartDate,
		MonthlyPayment:    m.MonthlyPayment,
		TotalPaid:         m.TotalPaid,
		AccountID:         m.AccountID,
		Notes:             m.Notes,
		IsActive:          m.IsActive,
		AuditFields:       ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainLoanSlice converts a slice of model Loans to domain Loans
func ToDomainLoanSlice(ms []models.Loan) []domain.Loan {
	ds := make([]domain.Loan, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainLoan(m)
	}
	return ds
}

// ToModelLoanPayment converts a domain LoanPayment to a model LoanPayment
func ToModelLoanPayment(d domain.LoanPayment) models.LoanPayment {
	return models.LoanPayment{
		PaymentID:      d.PaymentID,
		LoanID:         d.LoanID,
		Amount:         d.Amount,
		PrincipalPaid:  d.PrincipalPaid,
		InterestPaid:   d.InterestPaid,
		ExtraPrincipal: d.ExtraPrincipal,
		BalanceAfter:   d.BalanceAfter,
		PaymentDate:    d.PaymentDate,
		Notes:          d.Notes,
		CreatedAt:      d.CreatedAt,
	}
}

// ToDomainLoanPayment converts a model LoanPayment to a domain LoanPayment
func ToDomainLoanPayment(m models.LoanPayment) domain.LoanPayment {
	return domain.LoanPayment{
		PaymentID:      m.PaymentID,
		LoanID:         m.LoanID,
		Amount:         m.Amount,
		PrincipalPaid:  m.PrincipalPaid,
		InterestPaid:   m.InterestPaid,
		ExtraPrincipal: m.ExtraPrincipal,
		BalanceAfter:   m.BalanceAfter,
		PaymentDate:    m.PaymentDate,
		Notes:          m.Notes,
		CreatedAt:      m.CreatedAt,
	}
}

// ToDomainLoanPaymentSlice converts a slice of model LoanPayments to domain LoanPayments
func ToDomainLoanPaymentSlice(ms []models.LoanPayment) []domain.LoanPayment {
	ds := make([]domain.LoanPayment, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainLoanPayment(m)
	}
	return ds
}
