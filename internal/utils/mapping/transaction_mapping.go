package mapping

import (
	"github.com/finbook/finbook_app/internal/core/domain"
	"github.com/finbook/finbook_app/internal/models"
)

// ToModelTransaction converts a domain Transaction to a model Transaction
func ToModelTransaction(d domain.Transaction) models.Transaction {
	return models.Transaction{
		TransactionID:       d.TransactionID,
		UserID:              d.UserID,
		AccountID:           d.AccountID,
		CategoryID:          d.CategoryID,
		TransferToAccountID: d.TransferToAccountID,
		Amount:              d.Amount,
		Date:                d.Date,
		Description:         d.Description,
		Payee:               d.Payee,
		Notes:               d.Notes,
		AuditFields:         ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainTransaction converts a model Transaction to a domain Transaction
func ToDomainTransaction(m models.Transaction) domain.Transaction {
	return domain.Transaction{
		TransactionID:       m.TransactionID,
		UserID:              m.UserID,
		AccountID:           m.AccountID,
		CategoryID:          m.CategoryID,
		TransferToAccountID: m.TransferToAccountID,
		Amount:              m.Amount,
		Date:                m.Date,
		Description:         m.Description,
		Payee:               m.Payee,
		Notes:               m.Notes,
		AuditFields:         ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainTransactionSlice converts a slice of model Transactions to domain Transactions
func ToDomainTransactionSlice(ms []models.Transaction) []domain.Transaction {
	ds := make([]domain.Transaction, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainTransaction(m)
	}
	return ds
}
