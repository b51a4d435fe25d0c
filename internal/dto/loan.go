package dto

import (
	"time"

	"github.com/finbook/finbook_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateLoanRequest defines the data needed to create a loan. MonthlyPayment
// is optional; when omitted it is computed from the annuity formula.
type CreateLoanRequest struct {
	Name              string           `json:"name" binding:"required"`
	LoanType          string           `json:"loanType" binding:"required"`
	OriginalPrincipal decimal.Decimal  `json:"originalPrincipal" binding:"required"`
	InterestRate      decimal.Decimal  `json:"interestRate"`
	TermMonths        int              `json:"termMonths" binding:"required,min=1,max=600"`
	StartDate         string           `json:"startDate" binding:"required,datetime=2006-01-02"`
	MonthlyPayment    *decimal.Decimal `json:"monthlyPayment"`
	AccountID         *int64           `json:"accountID"`
	Notes             string           `json:"notes"`
}

// UpdateLoanRequest defines the editable loan fields. Balance-affecting
// fields (principal, term) are fixed at creation; payments are the only way
// to change the balance.
type UpdateLoanRequest struct {
	Name         *string          `json:"name"`
	LoanType     *string          `json:"loanType"`
	InterestRate *decimal.Decimal `json:"interestRate"`
	AccountID    *int64           `json:"accountID"`
	Notes        *string          `json:"notes"`
	IsActive     *bool            `json:"isActive"`
}

// RecordLoanPaymentRequest defines one payment applied against a loan.
type RecordLoanPaymentRequest struct {
	Amount         decimal.Decimal `json:"amount" binding:"required"`
	ExtraPrincipal decimal.Decimal `json:"extraPrincipal"`
	PaymentDate    string          `json:"paymentDate" binding:"required,datetime=2006-01-02"`
	Notes          string          `json:"notes"`
}

// LoanResponse defines the data returned for a loan.
type LoanResponse struct {
	LoanID            int64           `json:"loanID"`
	Name              string          `json:"name"`
	LoanType          string          `json:"loanType"`
	OriginalPrincipal decimal.Decimal `json:"originalPrincipal"`
	CurrentBalance    decimal.Decimal `json:"currentBalance"`
	InterestRate      decimal.Decimal `json:"interestRate"`
	TermMonths        int             `json:"termMonths"`
	StartDate         string          `json:"startDate"`
	MonthlyPayment    decimal.Decimal `json:"monthlyPayment"`
	TotalPaid         decimal.Decimal `json:"totalPaid"`
	AccountID         *int64          `json:"accountID,omitempty"`
	Notes             string          `json:"notes"`
	IsActive          bool            `json:"isActive"`
	CreatedAt         time.Time       `json:"createdAt"`
	UpdatedAt         time.Time       `json:"updatedAt"`
}

// ToLoanResponse converts a domain.Loan to LoanResponse.
func ToLoanResponse(loan *domain.Loan) LoanResponse {
	return LoanResponse{
		LoanID:            loan.LoanID,
		Name:              loan.Name,
		LoanType:          loan.LoanType,
		OriginalPrincipal: loan.OriginalPrincipal,
		CurrentBalance:    loan.CurrentBalance,
		InterestRate:      loan.InterestRate,
		TermMonths:        loan.TermMonths,
		StartDate:         FormatDate(loan.StartDate),
		MonthlyPayment:    loan.MonthlyPayment,
		TotalPaid:         loan.TotalPaid,
		AccountID:         loan.AccountID,
		Notes:             loan.Notes,
		IsActive:          loan.IsActive,
		CreatedAt:         loan.CreatedAt,
		UpdatedAt:         loan.LastUpdatedAt,
	}
}

// ListLoansResponse wraps the loan list with totals over active loans.
type ListLoansResponse struct {
	Loans         []LoanResponse  `json:"loans"`
	Total         int             `json:"total"`
	TotalBalance  decimal.Decimal `json:"totalBalance"`
	TotalOriginal decimal.Decimal `json:"totalOriginal"`
}

// ToListLoansResponse converts loans and computes active-loan totals.
func ToListLoansResponse(loans []domain.Loan) ListLoansResponse {
	resp := ListLoansResponse{
		Loans:         make([]LoanResponse, len(loans)),
		Total:         len(loans),
		TotalBalance:  decimal.Zero,
		TotalOriginal: decimal.Zero,
	}
	for i, loan := range loans {
		resp.Loans[i] = ToLoanResponse(&loan)
		if loan.IsActive {
			resp.TotalBalance = resp.TotalBalance.Add(loan.CurrentBalance)
			resp.TotalOriginal = resp.TotalOriginal.Add(loan.OriginalPrincipal)
		}
	}
	return resp
}

// LoanPaymentResponse defines the data returned for a recorded payment.
type LoanPaymentResponse struct {
	PaymentID      int64           `json:"paymentID"`
	LoanID         int64           `json:"loanID"`
	Amount         decimal.Decimal `json:"amount"`
	PrincipalPaid  decimal.Decimal `json:"principalPaid"`
	InterestPaid   decimal.Decimal `json:"interestPaid"`
	ExtraPrincipal decimal.Decimal `json:"extraPrincipal"`
	BalanceAfter   decimal.Decimal `json:"balanceAfter"`
	PaymentDate    string          `json:"paymentDate"`
	Notes          string          `json:"notes"`
	CreatedAt      time.Time       `json:"createdAt"`
}

// ToLoanPaymentResponse converts a domain.LoanPayment.
func ToLoanPaymentResponse(p *domain.LoanPayment) LoanPaymentResponse {
	return LoanPaymentResponse{
		PaymentID:      p.PaymentID,
		LoanID:         p.LoanID,
		Amount:         p.Amount,
		PrincipalPaid:  p.PrincipalPaid,
		InterestPaid:   p.InterestPaid,
		ExtraPrincipal: p.ExtraPrincipal,
		BalanceAfter:   p.BalanceAfter,
		PaymentDate:    FormatDate(p.PaymentDate),
		Notes:          p.Notes,
		CreatedAt:      p.CreatedAt,
	}
}

// ToLoanPaymentResponses converts a payment history slice.
func ToLoanPaymentResponses(payments []domain.LoanPayment) []LoanPaymentResponse {
	res := make([]LoanPaymentResponse, len(payments))
	for i, p := range payments {
		res[i] = ToLoanPaymentResponse(&p)
	}
	return res
}

// AmortizationEntryResponse is one schedule row on the wire.
type AmortizationEntryResponse struct {
	PaymentNumber       int             `json:"paymentNumber"`
	PaymentDate         string          `json:"paymentDate"`
	PaymentAmount       decimal.Decimal `json:"paymentAmount"`
	Principal           decimal.Decimal `json:"principal"`
	Interest            decimal.Decimal `json:"interest"`
	Balance             decimal.Decimal `json:"balance"`
	CumulativeInterest  decimal.Decimal `json:"cumulativeInterest"`
	CumulativePrincipal decimal.Decimal `json:"cumulativePrincipal"`
}

// AmortizationScheduleResponse wraps a generated schedule with loan context
// and interest totals.
type AmortizationScheduleResponse struct {
	LoanID            int64                       `json:"loanID"`
	LoanName          string                      `json:"loanName"`
	OriginalPrincipal decimal.Decimal             `json:"originalPrincipal"`
	InterestRate      decimal.Decimal             `json:"interestRate"`
	TermMonths        int                         `json:"termMonths"`
	MonthlyPayment    decimal.Decimal             `json:"monthlyPayment"`
	TotalInterest     decimal.Decimal             `json:"totalInterest"`
	TotalCost         decimal.Decimal             `json:"totalCost"`
	Schedule          []AmortizationEntryResponse `json:"schedule"`
}

// ToAmortizationScheduleResponse assembles the schedule response, summing
// total interest across entries.
func ToAmortizationScheduleResponse(loan *domain.Loan, schedule []domain.AmortizationEntry) AmortizationScheduleResponse {
	resp := AmortizationScheduleResponse{
		LoanID:            loan.LoanID,
		LoanName:          loan.Name,
		OriginalPrincipal: loan.OriginalPrincipal,
		InterestRate:      loan.InterestRate,
		TermMonths:        loan.TermMonths,
		MonthlyPayment:    loan.MonthlyPayment,
		Schedule:          make([]AmortizationEntryResponse, len(schedule)),
	}
	totalInterest := decimal.Zero
	for i, e := range schedule {
		resp.Schedule[i] = AmortizationEntryResponse{
			PaymentNumber:       e.PaymentNumber,
			PaymentDate:         FormatDate(e.PaymentDate),
			PaymentAmount:       e.PaymentAmount,
			Principal:           e.Principal,
			Interest:            e.Interest,
			Balance:             e.Balance,
			CumulativeInterest:  e.CumulativeInterest,
			CumulativePrincipal: e.CumulativePrincipal,
		}
		totalInterest = totalInterest.Add(e.Interest)
	}
	resp.TotalInterest = totalInterest.Round(2)
	resp.TotalCost = loan.OriginalPrincipal.Add(totalInterest).Round(2)
	return resp
}

// LoanSummaryResponse is the dashboard aggregation of a user's loans.
type LoanSummaryResponse struct {
	TotalLoans          int             `json:"totalLoans"`
	ActiveLoans         int             `json:"activeLoans"`
	TotalBalance        decimal.Decimal `json:"totalBalance"`
	TotalOriginal       decimal.Decimal `json:"totalOriginal"`
	TotalMonthlyPayment decimal.Decimal `json:"totalMonthlyPayment"`
	LoansByType         map[string]int  `json:"loansByType"`
}

// ToLoanSummaryResponse converts a domain.LoanSummary.
func ToLoanSummaryResponse(s *domain.LoanSummary) LoanSummaryResponse {
	return LoanSummaryResponse{
		TotalLoans:          s.TotalLoans,
		ActiveLoans:         s.ActiveLoans,
		TotalBalance:        s.TotalBalance,
		TotalOriginal:       s.TotalOriginal,
		TotalMonthlyPayment: s.TotalMonthlyPayment,
		LoansByType:         s.LoansByType,
	}
}
