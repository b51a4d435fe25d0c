package mapping

import (
	"github.com/finbook/finbook_app/internal/core/domain"
	"github.com/finbook/finbook_app/internal/models"
)

// ToModelSubscription converts a domain Subscription to a model Subscription
func ToModelSubscription(d domain.Subscription) models.Subscription {
	return models.Subscription{
		SubscriptionID:  d.SubscriptionID,
		UserID:          d.UserID,
		Name:            d.Name,
		Amount:          d.Amount,
		BillingCycle:    models.BillingCycle(d.BillingCycle),
		NextBillingDate: d.NextBillingDate,
		CategoryID:      d.CategoryID,
		AccountID:       d.AccountID,
		Notes:           d.Notes,
		IsActive:        d.IsActive,
		AuditFields:     ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainSubscription converts a model Subscription to a domain Subscription
func ToDomainSubscription(m models.Subscription) domain.Subscription {
	return domain.Subscription{
		SubscriptionID:  m.SubscriptionID,
		UserID:          m.UserID,
		Name:            m.Name,
		Amount:          m.Amount,
		BillingCycle:    domain.BillingCycle(m.BillingCycle),
		NextBillingDate: m.NextBillingDate,
		CategoryID:      m.CategoryID,
		AccountID:       m.AccountID,
		Notes:           m.Notes,
		IsActive:        m.IsActive,
		AuditFields:     ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainSubscriptionSlice converts a slice of model Subscriptions to domain Subscriptions
func ToDomainSubscriptionSlice(ms []models.Subscription) []domain.Subscription {
	ds := make([]domain.Subscription, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainSubscription(m)
	}
	return ds
}
