package mapping

import (
	"github.com/Konecta-ERP/Konecta-ERP-sub000/internal/core/domain"
	"github.com/Konecta-ERP/Konecta-ERP-sub000/internal/models"
)

// ToModelAccount converts a domain Account to a model Account
func ToModelAccount(d domain.Account) models.Account {
	return models.Account{
		ID:              d.ID,
		AccountID:       d.AccountID,
		Name:            d.Name,
		AccountType:     string(d.Type),
		PLMapping:       string(d.PLMapping),
		CashSource:      string(d.CashSource),
		IsCashAccount:   d.IsCashAccount,
		IsCurrent:       d.IsCurrent,
		Status:          string(d.Status),
		HasTransactions: d.HasTransactions,
		Description:     d.Description,
		AuditFields:     ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainAccount converts a model Account to a domain Account
func ToDomainAccount(m models.Account) domain.Account {
	return domain.Account{
		ID:              m.ID,
		AccountID:       m.AccountID,
		Name:            m.Name,
		Type:            domain.AccountType(m.AccountType),
		PLMapping:       domain.PLMapping(m.PLMapping),
		CashSource:      domain.CashSource(m.CashSource),
		IsCashAccount:   m.IsCashAccount,
		IsCurrent:       m.IsCurrent,
		Status:          domain.AccountStatus(m.Status),
		HasTransactions: m.HasTransactions,
		Description:     m.Description,
		AuditFields:     ToDomainAuditFields(m.AuditFields),
	}
}
