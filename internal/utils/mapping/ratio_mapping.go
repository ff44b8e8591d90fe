package mapping

import (
	"github.com/Konecta-ERP/Konecta-ERP-sub000/internal/core/domain"
	"github.com/Konecta-ERP/Konecta-ERP-sub000/internal/models"
)

// ToModelRatio converts a domain Ratio to a model Ratio
func ToModelRatio(d domain.Ratio) models.Ratio {
	return models.Ratio{
		ID:               d.ID,
		RatioName:        d.RatioName,
		BenchmarkValue:   d.BenchmarkValue,
		WarningThreshold: d.WarningThreshold,
		AuditFields:      ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainRatio converts a model Ratio to a domain Ratio
func ToDomainRatio(m models.Ratio) domain.Ratio {
	return domain.Ratio{
		ID:               m.ID,
		RatioName:        m.RatioName,
		BenchmarkValue:   m.BenchmarkValue,
		WarningThreshold: m.WarningThreshold,
		AuditFields:      ToDomainAuditFields(m.AuditFields),
	}
}
