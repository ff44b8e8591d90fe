package mapping

import (
	"github.com/Konecta-ERP/Konecta-ERP-sub000/internal/core/domain"
	"github.com/Konecta-ERP/Konecta-ERP-sub000/internal/models"
)

// ToModelPeriod converts a domain Period to a model Period
func ToModelPeriod(d domain.Period) models.Period {
	return models.Period{
		ID:                 d.ID,
		Label:              d.Label,
		StartDate:          domain.DateOnly(d.StartDate),
		EndDate:            domain.DateOnly(d.EndDate),
		Status:             string(d.Status),
		RevenueBudget:      d.Budgets.Revenue,
		COGSBudget:         d.Budgets.COGS,
		OpexBudget:         d.Budgets.Opex,
		OtherIncomeBudget:  d.Budgets.OtherIncome,
		OtherExpenseBudget: d.Budgets.OtherExpense,
		ClosedAt:           d.ClosedAt,
		TimeToClose:        d.TimeToClose,
		AuditFields:        ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainPeriod converts a model Period to a domain Period
func ToDomainPeriod(m models.Period) domain.Period {
	return domain.Period{
		ID:        m.ID,
		Label:     m.Label,
		StartDate: domain.DateOnly(m.StartDate),
		EndDate:   domain.DateOnly(m.EndDate),
		Status:    domain.PeriodStatus(m.Status),
		Budgets: domain.Budgets{
			Revenue:      m.RevenueBudget,
			COGS:         m.COGSBudget,
			Opex:         m.OpexBudget,
			OtherIncome:  m.OtherIncomeBudget,
			OtherExpense: m.OtherExpenseBudget,
		},
		ClosedAt:    m.ClosedAt,
		TimeToClose: m.TimeToClose,
		AuditFields: ToDomainAuditFields(m.AuditFields),
	}
}
