package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/Konecta-ERP/Konecta-ERP-sub000/internal/apperrors"
	"github.com/Konecta-ERP/Konecta-ERP-sub000/internal/core/domain"
	portsrepo "github.com/Konecta-ERP/Konecta-ERP-sub000/internal/core/ports/repositories"
	portssvc "github.com/Konecta-ERP/Konecta-ERP-sub000/internal/core/ports/services"
	"github.com/Konecta-ERP/Konecta-ERP-sub000/internal/dto"
	"github.com/Konecta-ERP/Konecta-ERP-sub000/internal/observability/metrics"
	"github.com/Konecta-ERP/Konecta-ERP-sub000/internal/observability/tracing"
	"github.com/Konecta-ERP/Konecta-ERP-sub000/internal/utils/accounting"
	"github.com/oklog/ulid/v2"
	"go.opentelemetry.io/otel/attribute"
)

const defaultTransactionPageSize = 20

var journalTracer = tracing.Tracer("journal")

// journalService posts balanced transactions and reads them back.
type journalService struct {
	BaseService
	journalRepo portsrepo.JournalRepositoryFacade
	periodRepo  portsrepo.PeriodReader
	accountRepo portsrepo.AccountReader
}

// JournalServiceOption is a functional option for configuring the journal service
type JournalServiceOption func(*journalService)

// WithJournalEventPublisher publishes posted transactions after commit.
func WithJournalEventPublisher(p portssvc.EventPublisher) JournalServiceOption {
	return func(s *journalService) {
		s.Events = p
	}
}

// WithJournalMetrics records postings and rejections.
func WithJournalMetrics(m *metrics.LedgerMetrics) JournalServiceOption {
	return func(s *journalService) {
		s.Metrics = m
	}
}

// WithJournalClock overrides the time source used for CreatedAt.
func WithJournalClock(clock func() time.Time) JournalServiceOption {
	return func(s *journalService) {
		s.Clock = clock
	}
}

// NewJournalService creates a new JournalService.
func NewJournalService(
	journalRepo portsrepo.JournalRepositoryFacade,
	periodRepo portsrepo.PeriodReader,
	accountRepo portsrepo.AccountReader,
	options ...JournalServiceOption,
) portssvc.JournalSvcFacade {
	svc := &journalService{
		journalRepo: journalRepo,
		periodRepo:  periodRepo,
		accountRepo: accountRepo,
	}
	for _, option := range options {
		option(svc)
	}
	return svc
}

// Ensure journalService implements the portssvc.JournalSvcFacade interface
var _ portssvc.JournalSvcFacade = (*journalService)(nil)

// validatePostRequest checks the shape of the request before any store access.
func validatePostRequest(req dto.PostTransactionRequest) (time.Time, error) {
	if strings.TrimSpace(req.Description) == "" {
		return time.Time{}, fmt.Errorf("%w: description is required", apperrors.ErrValidation)
	}
	if len(req.Entries) == 0 {
		return time.Time{}, fmt.Errorf("%w: at least one entry is required", apperrors.ErrValidation)
	}
	for i, e := range req.Entries {
		if strings.TrimSpace(e.AccountRef) == "" {
			return time.Time{}, fmt.Errorf("%w: entry %d has no account", apperrors.ErrValidation, i)
		}
		if e.DebitAmount.IsNegative() || e.CreditAmount.IsNegative() {
			return time.Time{}, fmt.Errorf("%w: entry %d has a negative amount", apperrors.ErrValidation, i)
		}
		if !domain.HasAmountScale(e.DebitAmount) || !domain.HasAmountScale(e.CreditAmount) {
			return time.Time{}, fmt.Errorf("%w: entry %d has more than %d decimal places", apperrors.ErrValidation, i, domain.AmountScale)
		}
	}
	return parseDate("transactionDate", req.TransactionDate)
}

// PostTransaction validates req and posts it. Checks run in a fixed order: request shape,
// period resolution, period status, account status, then balance.
func (s *journalService) PostTransaction(ctx context.Context, req dto.PostTransactionRequest, postedByUserID string) (_ *domain.JournalTransaction, err error) {
	ctx, span := journalTracer.Start(ctx, "journal.PostTransaction")
	defer func() {
		if err != nil {
			s.Metrics.ObserveRejection("post_transaction", err)
		}
		tracing.EndSpan(span, err)
	}()

	txnDate, err := validatePostRequest(req)
	if err != nil {
		return nil, err
	}

	period, err := s.periodRepo.FindPeriodForDate(ctx, txnDate)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: %s", apperrors.ErrNoPeriodForDate, req.TransactionDate)
		}
		s.LogError(ctx, err, "Failed to resolve period for transaction date")
		return nil, fmt.Errorf("failed to resolve period: %w", err)
	}
	if !period.AcceptsPostings() {
		return nil, fmt.Errorf("%w: period %s is %s", apperrors.ErrPeriodClosed, period.Label, period.Status)
	}
	span.SetAttributes(attribute.String("ledger.period_id", period.ID))

	now := s.Now()
	txn := domain.JournalTransaction{
		ID:              ulid.Make().String(),
		PeriodID:        period.ID,
		TransactionDate: txnDate,
		Description:     strings.TrimSpace(req.Description),
		PostedByUserID:  postedByUserID,
		CreatedAt:       now,
		Entries:         make([]domain.JournalEntry, len(req.Entries)),
	}
	for i, e := range req.Entries {
		txn.Entries[i] = domain.JournalEntry{
			ID:            ulid.Make().String(),
			TransactionID: txn.ID,
			AccountRef:    e.AccountRef,
			DebitAmount:   e.DebitAmount,
			CreditAmount:  e.CreditAmount,
		}
	}

	refs := domain.AccountRefs(txn.Entries)
	accounts, err := s.accountRepo.FindAccountsByIDs(ctx, refs)
	if err != nil {
		s.LogError(ctx, err, "Failed to load accounts for posting")
		return nil, fmt.Errorf("failed to load accounts: %w", err)
	}
	for _, ref := range refs {
		acc, ok := accounts[ref]
		if !ok || !acc.IsActive() {
			return nil, fmt.Errorf("%w: %s", apperrors.ErrInactiveOrUnknownAccount, ref)
		}
	}

	if err := accounting.ValidateEntriesBalance(txn.Entries); err != nil {
		s.LogWarn(ctx, err, "Rejected unbalanced transaction", slog.String("period_id", period.ID))
		return nil, err
	}

	if err := s.journalRepo.SaveJournalTransaction(ctx, txn); err != nil {
		switch {
		case errors.Is(err, apperrors.ErrPeriodClosed), errors.Is(err, apperrors.ErrInactiveOrUnknownAccount):
			s.LogWarn(ctx, err, "Posting refused under lock", slog.String("transaction_id", txn.ID))
		default:
			s.LogError(ctx, err, "Failed to save journal transaction", slog.String("transaction_id", txn.ID))
		}
		return nil, fmt.Errorf("failed to post transaction: %w", err)
	}

	for i := range txn.Entries {
		acc := accounts[txn.Entries[i].AccountRef]
		txn.Entries[i].AccountCode = acc.AccountID
		txn.Entries[i].AccountName = acc.Name
	}

	totals := domain.SumEntries(txn.Entries)
	debits, _ := totals.Debits.Float64()
	s.Metrics.ObservePosted(debits)
	s.LogInfo(ctx, "Journal transaction posted",
		slog.String("transaction_id", txn.ID),
		slog.String("period_id", txn.PeriodID),
		slog.Int("entries", len(txn.Entries)))
	s.Publish(ctx, domain.TopicTransactionPosted, txn.ID, domain.TransactionPostedEvent{
		TransactionID:   txn.ID,
		PeriodID:        txn.PeriodID,
		TransactionDate: txn.TransactionDate,
		PostedByUserID:  txn.PostedByUserID,
		Amount:          totals.Debits,
		EntryCount:      len(txn.Entries),
		OccurredAt:      now,
	})

	return &txn, nil
}

// GetTransactionByID retrieves a posted transaction.
func (s *journalService) GetTransactionByID(ctx context.Context, id string) (*domain.JournalTransaction, error) {
	txn, err := s.journalRepo.FindTransactionByID(ctx, id)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find transaction", slog.String("transaction_id", id))
		}
		return nil, err
	}
	return txn, nil
}

// ListTransactions retrieves a page of posted transactions.
func (s *journalService) ListTransactions(ctx context.Context, params dto.ListTransactionsParams) (*dto.ListTransactionsResponse, error) {
	limit := params.Limit
	if limit <= 0 {
		limit = defaultTransactionPageSize
	}
	txns, nextToken, err := s.journalRepo.ListTransactions(ctx, limit, params.NextToken)
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			return nil, err
		}
		s.LogError(ctx, err, "Failed to list transactions", slog.Int("limit", limit))
		return nil, fmt.Errorf("failed to list transactions: %w", err)
	}
	res := dto.ToListTransactionsResponse(txns, nextToken)
	return &res, nil
}
