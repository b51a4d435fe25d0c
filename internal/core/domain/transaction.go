package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Transaction is a single signed money movement against one account.
// Amount > 0 is an inflow at AccountID, Amount < 0 an outflow. When
// TransferToAccountID is set the transaction is a transfer: the destination
// account receives the negated amount, so a -200 transfer out of A puts +200
// into B.
type Transaction struct {
	TransactionID       int64           `json:"transactionID"`
	UserID              int64           `json:"userID"`
	AccountID           int64           `json:"accountID"`
	CategoryID          *int64          `json:"categoryID,omitempty"`
	TransferToAccountID *int64          `json:"transferToAccountID,omitempty"`
	Amount              decimal.Decimal `json:"amount"`
	Date                time.Time       `json:"date"`
	Description         string          `json:"description"`
	Payee               string          `json:"payee"`
	Notes               string          `json:"notes"`
	AuditFields
}

// IsTransfer reports whether this transaction moves money between two accounts.
func (t Transaction) IsTransfer() bool {
	return t.TransferToAccountID != nil
}
