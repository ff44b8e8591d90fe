package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/Konecta-ERP/Konecta-ERP-sub000/internal/apperrors"
	"github.com/Konecta-ERP/Konecta-ERP-sub000/internal/core/domain"
	portsrepo "github.com/Konecta-ERP/Konecta-ERP-sub000/internal/core/ports/repositories"
	portssvc "github.com/Konecta-ERP/Konecta-ERP-sub000/internal/core/ports/services"
	"github.com/Konecta-ERP/Konecta-ERP-sub000/internal/observability/metrics"
	"github.com/Konecta-ERP/Konecta-ERP-sub000/internal/observability/tracing"
	"github.com/Konecta-ERP/Konecta-ERP-sub000/internal/utils/accounting"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

var reportTracer = tracing.Tracer("reporting")

// reportingService implements the ReportingService interface
type reportingService struct {
	BaseService
	reportingRepo portsrepo.ReportingRepository
	periodRepo    portsrepo.PeriodReader
	accountRepo   portsrepo.AccountReader
}

// ReportingServiceOption is a functional option for configuring the reporting service
type ReportingServiceOption func(*reportingService)

// WithReportingMetrics records report durations.
func WithReportingMetrics(m *metrics.LedgerMetrics) ReportingServiceOption {
	return func(s *reportingService) {
		s.Metrics = m
	}
}

// NewReportingService creates a new reporting service with the provided options
func NewReportingService(
	repo portsrepo.ReportingRepository,
	periodRepo portsrepo.PeriodReader,
	accountRepo portsrepo.AccountReader,
	options ...ReportingServiceOption,
) portssvc.ReportingService {
	svc := &reportingService{
		reportingRepo: repo,
		periodRepo:    periodRepo,
		accountRepo:   accountRepo,
	}
	for _, option := range options {
		option(svc)
	}
	return svc
}

// Ensure reportingService implements the ReportingService interface
var _ portssvc.ReportingService = (*reportingService)(nil)

// startReport opens a span and returns the func that closes it and records the duration.
func (s *reportingService) startReport(ctx context.Context, name string, attrs ...attribute.KeyValue) (context.Context, trace.Span, func(error)) {
	started := time.Now()
	ctx, span := reportTracer.Start(ctx, "report."+name, trace.WithAttributes(attrs...))
	return ctx, span, func(err error) {
		s.Metrics.ObserveReport(name, started, err)
		tracing.EndSpan(span, err)
	}
}

func (s *reportingService) loadPeriod(ctx context.Context, periodID string) (*domain.Period, error) {
	period, err := s.periodRepo.FindPeriodByID(ctx, periodID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to load period for report", slog.String("period_id", periodID))
		}
		return nil, err
	}
	return period, nil
}

// TrialBalance generates the trial balance of a period
func (s *reportingService) TrialBalance(ctx context.Context, periodID string) (_ *domain.TrialBalanceReport, err error) {
	ctx, _, done := s.startReport(ctx, "trial_balance", attribute.String("ledger.period_id", periodID))
	defer func() { done(err) }()

	period, err := s.loadPeriod(ctx, periodID)
	if err != nil {
		return nil, err
	}

	start := period.StartDate
	totals, err := s.reportingRepo.SumAccountTotals(ctx, &start, period.EndDate)
	if err != nil {
		s.LogError(ctx, err, "Failed to sum account totals", slog.String("period_id", periodID))
		return nil, fmt.Errorf("failed to build trial balance: %w", err)
	}

	rows, totalDebits, totalCredits := accounting.BuildTrialBalance(totals)
	status := domain.ReportUnbalanced
	if totalDebits.Equal(totalCredits) {
		status = domain.ReportBalanced
	}

	s.LogDebug(ctx, "Trial balance generated", slog.String("period_id", periodID), slog.Int("rows", len(rows)))
	return &domain.TrialBalanceReport{
		PeriodID:     period.ID,
		PeriodLabel:  period.Label,
		PeriodStatus: period.Status,
		Rows:         rows,
		TotalDebits:  totalDebits,
		TotalCredits: totalCredits,
		Status:       status,
	}, nil
}

// GeneralLedger lists entries with running balances per account.
func (s *reportingService) GeneralLedger(ctx context.Context, from, to time.Time, accountRefs []string) (_ *domain.GeneralLedgerReport, err error) {
	ctx, _, done := s.startReport(ctx, "general_ledger")
	defer func() { done(err) }()

	from, to = domain.DateOnly(from), domain.DateOnly(to)
	if from.After(to) {
		return nil, fmt.Errorf("%w: fromDate %s is after toDate %s",
			apperrors.ErrInvalidRange, from.Format(time.DateOnly), to.Format(time.DateOnly))
	}

	lines, err := s.reportingRepo.ListLedgerLines(ctx, from, to, accountRefs)
	if err != nil {
		s.LogError(ctx, err, "Failed to list ledger lines")
		return nil, fmt.Errorf("failed to build general ledger: %w", err)
	}
	openings, err := s.reportingRepo.SumBalancesBefore(ctx, from, accountRefs)
	if err != nil {
		s.LogError(ctx, err, "Failed to sum opening balances")
		return nil, fmt.Errorf("failed to build general ledger: %w", err)
	}

	accounting.SortLedgerLines(lines)
	rows := accounting.RunningBalances(openings, lines)

	codes, err := s.accountCodes(ctx, accountRefs)
	if err != nil {
		return nil, err
	}

	return &domain.GeneralLedgerReport{
		FromDate:   from,
		ToDate:     to,
		AccountIDs: codes,
		Rows:       rows,
	}, nil
}

// accountCodes resolves the requested account references to business codes for the report header.
// With no filter the header lists every active account.
func (s *reportingService) accountCodes(ctx context.Context, refs []string) ([]string, error) {
	if len(refs) == 0 {
		active, err := s.accountRepo.ListActiveAccounts(ctx)
		if err != nil {
			s.LogError(ctx, err, "Failed to list active accounts for general ledger")
			return nil, fmt.Errorf("failed to build general ledger: %w", err)
		}
		codes := make([]string, 0, len(active))
		for _, acc := range active {
			codes = append(codes, acc.AccountID)
		}
		return codes, nil
	}
	accounts, err := s.accountRepo.FindAccountsByIDs(ctx, refs)
	if err != nil {
		s.LogError(ctx, err, "Failed to resolve account codes for general ledger")
		return nil, fmt.Errorf("failed to build general ledger: %w", err)
	}
	codes := make([]string, 0, len(refs))
	for _, ref := range refs {
		if acc, ok := accounts[ref]; ok {
			codes = append(codes, acc.AccountID)
		}
	}
	return codes, nil
}

// IncomeStatement compares a period's results with its budgets
func (s *reportingService) IncomeStatement(ctx context.Context, periodID string) (_ *domain.IncomeStatement, err error) {
	ctx, _, done := s.startReport(ctx, "income_statement", attribute.String("ledger.period_id", periodID))
	defer func() { done(err) }()

	period, err := s.loadPeriod(ctx, periodID)
	if err != nil {
		return nil, err
	}

	start := period.StartDate
	totals, err := s.reportingRepo.SumAccountTotals(ctx, &start, period.EndDate)
	if err != nil {
		s.LogError(ctx, err, "Failed to sum account totals", slog.String("period_id", periodID))
		return nil, fmt.Errorf("failed to build income statement: %w", err)
	}

	statement := accounting.BuildIncomeStatement(*period, totals)
	return &statement, nil
}

// BalanceSheet generates a balance sheet report as of a specific date
func (s *reportingService) BalanceSheet(ctx context.Context, asOf time.Time) (_ *domain.BalanceSheetReport, err error) {
	ctx, _, done := s.startReport(ctx, "balance_sheet")
	defer func() { done(err) }()

	asOf = domain.DateOnly(asOf)
	totals, err := s.reportingRepo.SumAccountTotals(ctx, nil, asOf)
	if err != nil {
		s.LogError(ctx, err, "Failed to sum account totals for balance sheet")
		return nil, fmt.Errorf("failed to build balance sheet: %w", err)
	}

	report := accounting.BuildBalanceSheet(totals)
	report.AsOfDate = asOf
	if report.ValidationStatus != domain.ReportBalanced {
		s.GetLogger(ctx).Warn("Balance sheet does not balance",
			slog.String("as_of", asOf.Format(time.DateOnly)),
			slog.String("total_assets", report.TotalAssets.String()),
			slog.String("total_liabilities", report.TotalLiabilities.String()),
			slog.String("total_equity", report.TotalEquity.String()))
	}
	return &report, nil
}

// CashFlow sections a period's cash movements and reconciles them to the cash balance.
func (s *reportingService) CashFlow(ctx context.Context, periodID string) (_ *domain.CashFlowReport, err error) {
	ctx, span, done := s.startReport(ctx, "cash_flow", attribute.String("ledger.period_id", periodID))
	defer func() { done(err) }()

	period, err := s.loadPeriod(ctx, periodID)
	if err != nil {
		return nil, err
	}

	openingCash, err := s.reportingRepo.SumCashBefore(ctx, period.StartDate)
	if err != nil {
		s.LogError(ctx, err, "Failed to sum opening cash", slog.String("period_id", periodID))
		return nil, fmt.Errorf("failed to build cash flow: %w", err)
	}
	lines, err := s.reportingRepo.ListCashLines(ctx, period.StartDate, period.EndDate)
	if err != nil {
		s.LogError(ctx, err, "Failed to list cash lines", slog.String("period_id", periodID))
		return nil, fmt.Errorf("failed to build cash flow: %w", err)
	}
	balanceSheetCash, err := s.reportingRepo.SumCashBefore(ctx, domain.DateOnly(period.EndDate).AddDate(0, 0, 1))
	if err != nil {
		s.LogError(ctx, err, "Failed to sum closing cash", slog.String("period_id", periodID))
		return nil, fmt.Errorf("failed to build cash flow: %w", err)
	}

	report := accounting.BuildCashFlow(*period, openingCash, balanceSheetCash, lines)
	span.SetAttributes(attribute.Bool("ledger.reconciled", report.Reconciled))
	if !report.Reconciled {
		s.GetLogger(ctx).Warn("Cash flow does not reconcile",
			slog.String("period_id", periodID),
			slog.String("ending_cash", report.EndingCash.String()),
			slog.String("balance_sheet_cash", report.BalanceSheetCash.String()),
			slog.String("unclassified", report.Unclassified.String()))
	}
	return &report, nil
}
