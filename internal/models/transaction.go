package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Transaction represents a row of the transactions table. Amount is signed:
// positive for inflows, negative for outflows. TransferToAccountID is set
// only for transfers.
type Transaction struct {
	TransactionID       int64           `db:"transaction_id"`
	UserID              int64           `db:"user_id"`
	AccountID           int64           `db:"account_id"`
	CategoryID          *int64          `db:"category_id"`
	TransferToAccountID *int64          `db:"transfer_to_account_id"`
	Amount              decimal.Decimal `db:"amount"`
	Date                time.Time       `db:"date"`
	Description         string          `db:"description"`
	Payee               string          `db:"payee"`
	Notes               string          `db:"notes"`
	AuditFields
}
