package services

import (
	portsrepo "github.com/Konecta-ERP/Konecta-ERP-sub000/internal/core/ports/repositories"
	portssvc "github.com/Konecta-ERP/Konecta-ERP-sub000/internal/core/ports/services"
	"github.com/Konecta-ERP/Konecta-ERP-sub000/internal/observability/metrics"
)

// Dependencies are the cross-cutting collaborators shared by the services.
type Dependencies struct {
	Events     portssvc.EventPublisher
	Metrics    *metrics.LedgerMetrics
	Forecaster portssvc.RevenueForecaster
}

// NewServiceContainer creates a new service container with properly initialized dependencies
func NewServiceContainer(repos portsrepo.RepositoryProvider, deps Dependencies) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	container.Account = NewAccountService(repos.AccountRepo)

	container.Period = NewPeriodService(
		repos.PeriodRepo,
		WithPeriodEventPublisher(deps.Events),
		WithPeriodMetrics(deps.Metrics),
	)

	container.Journal = NewJournalService(
		repos.JournalRepo,
		repos.PeriodRepo,
		repos.AccountRepo,
		WithJournalEventPublisher(deps.Events),
		WithJournalMetrics(deps.Metrics),
	)

	container.Reporting = NewReportingService(
		repos.ReportingRepo,
		repos.PeriodRepo,
		repos.AccountRepo,
		WithReportingMetrics(deps.Metrics),
	)

	container.Ratio = NewRatioService(repos.RatioRepo)
	container.Forecaster = deps.Forecaster

	return container
}
