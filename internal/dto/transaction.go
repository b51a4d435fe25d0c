package dto

import (
	"time"

	"github.com/finbook/finbook_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateTransactionRequest defines the data needed to create a transaction.
// Amount is signed: positive for inflows at the account, negative for
// outflows. TransferToAccountID marks the transaction as a transfer whose
// destination receives the negated amount.
type CreateTransactionRequest struct {
	AccountID           int64           `json:"accountID" binding:"required"`
	Amount              decimal.Decimal `json:"amount" binding:"required"`
	Date                string          `json:"date" binding:"required,datetime=2006-01-02"`
	CategoryID          *int64          `json:"categoryID"`
	TransferToAccountID *int64          `json:"transferToAccountID"`
	Description         string          `json:"description"`
	Payee               string          `json:"payee"`
	Notes               string          `json:"notes"`
}

// UpdateTransactionRequest defines the mutable transaction fields. The
// account and transfer destination of a transaction are fixed at creation.
type UpdateTransactionRequest struct {
	Amount      *decimal.Decimal `json:"amount"`
	Date        *string          `json:"date" binding:"omitempty,datetime=2006-01-02"`
	CategoryID  *int64           `json:"categoryID"`
	Description *string          `json:"description"`
	Payee       *string          `json:"payee"`
	Notes       *string          `json:"notes"`
}

// ListTransactionsParams defines query parameters for listing transactions.
type ListTransactionsParams struct {
	AccountID  *int64           `form:"accountID"`
	CategoryID *int64           `form:"categoryID"`
	StartDate  *string          `form:"startDate" binding:"omitempty,datetime=2006-01-02"`
	EndDate    *string          `form:"endDate" binding:"omitempty,datetime=2006-01-02"`
	MinAmount  *decimal.Decimal `form:"minAmount"`
	MaxAmount  *decimal.Decimal `form:"maxAmount"`
	Search     string           `form:"search"`
	Limit      int              `form:"limit,default=50"`
	Offset     int              `form:"offset,default=0"`
}

// TransactionResponse defines the data returned for a transaction.
type TransactionResponse struct {
	TransactionID       int64           `json:"transactionID"`
	AccountID           int64           `json:"accountID"`
	CategoryID          *int64          `json:"categoryID,omitempty"`
	TransferToAccountID *int64          `json:"transferToAccountID,omitempty"`
	Amount              decimal.Decimal `json:"amount"`
	Date                string          `json:"date"`
	Description         string          `json:"description"`
	Payee               string          `json:"payee"`
	Notes               string          `json:"notes"`
	CreatedAt           time.Time       `json:"createdAt"`
	UpdatedAt           time.Time       `json:"updatedAt"`
}

// ToTransactionResponse converts a domain.Transaction to TransactionResponse.
func ToTransactionResponse(txn *domain.Transaction) TransactionResponse {
	return TransactionResponse{
		TransactionID:       txn.TransactionID,
		AccountID:           txn.AccountID,
		CategoryID:          txn.CategoryID,
		TransferToAccountID: txn.TransferToAccountID,
		Amount:              txn.Amount,
		Date:                FormatDate(txn.Date),
		Description:         txn.Description,
		Payee:               txn.Payee,
		Notes:               txn.Notes,
		CreatedAt:           txn.CreatedAt,
		UpdatedAt:           txn.LastUpdatedAt,
	}
}

// ToTransactionResponses converts a slice of domain transactions.
func ToTransactionResponses(txns []domain.Transaction) []TransactionResponse {
	res := make([]TransactionResponse, len(txns))
	for i, txn := range txns {
		res[i] = ToTransactionResponse(&txn)
	}
	return res
}

// ListTransactionsResponse wraps a transaction page with its total count.
type ListTransactionsResponse struct {
	Transactions []TransactionResponse `json:"transactions"`
	Total        int                   `json:"total"`
}
