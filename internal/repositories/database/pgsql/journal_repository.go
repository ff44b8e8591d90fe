package pgsql

import (
	"context"
	"fmt"

	"github.com/Konecta-ERP/Konecta-ERP-sub000/internal/apperrors"
	"github.com/Konecta-ERP/Konecta-ERP-sub000/internal/core/domain"
	portsrepo "github.com/Konecta-ERP/Konecta-ERP-sub000/internal/core/ports/repositories"
	"github.com/Konecta-ERP/Konecta-ERP-sub000/internal/models"
	"github.com/Konecta-ERP/Konecta-ERP-sub000/internal/utils/mapping"
	"github.com/Konecta-ERP/Konecta-ERP-sub000/internal/utils/pagination"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxJournalRepository struct {
	BaseRepository
	accountRepo portsrepo.AccountRepositoryWithTx
}

// newPgxJournalRepository creates a new repository for posted transactions.
func newPgxJournalRepository(pool *pgxpool.Pool, accountRepo portsrepo.AccountRepositoryWithTx) portsrepo.JournalRepositoryFacade {
	return &PgxJournalRepository{
		BaseRepository: BaseRepository{Pool: pool},
		accountRepo:    accountRepo,
	}
}

// Ensure PgxJournalRepository implements portsrepo.JournalRepositoryFacade
var _ portsrepo.JournalRepositoryFacade = (*PgxJournalRepository)(nil)

// SaveJournalTransaction writes the header and entries in one REPEATABLE READ transaction.
// The period row is held FOR SHARE so a concurrent transition waits for this commit, and the
// accounts are held FOR UPDATE so a concurrent deactivation cannot slip in between check and insert.
func (r *PgxJournalRepository) SaveJournalTransaction(ctx context.Context, txn domain.JournalTransaction) error {
	tx, err := r.BeginWithOptions(ctx, pgx.TxOptions{IsoLevel: pgx.RepeatableRead})
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	// 1. Re-check the period under a shared lock
	var label, status string
	err = tx.QueryRow(ctx, `SELECT label, status FROM periods WHERE id = $1 FOR SHARE;`, txn.PeriodID).Scan(&label, &status)
	if err != nil {
		return mapPgError(err, "period "+txn.PeriodID)
	}
	if domain.PeriodStatus(status) != domain.PeriodOpen {
		return fmt.Errorf("%w: period %s is %s", apperrors.ErrPeriodClosed, label, status)
	}

	// 2. Lock and re-check the accounts
	refs := domain.AccountRefs(txn.Entries)
	accounts, err := r.accountRepo.FindAccountsByIDsForUpdate(ctx, tx, refs)
	if err != nil {
		return apperrors.NewAppError(500, "failed to lock accounts", err)
	}
	for _, ref := range refs {
		acc, ok := accounts[ref]
		if !ok || !acc.IsActive() {
			return fmt.Errorf("%w: %s", apperrors.ErrInactiveOrUnknownAccount, ref)
		}
	}

	// 3. Insert the header
	header := mapping.ToModelJournalTransaction(txn)
	headerQuery := `
		INSERT INTO journal_transactions (id, period_id, transaction_date, description, posted_by_user_id, created_at)
		VALUES ($1, $2, $3, $4, $5, $6);
	`
	if _, err := tx.Exec(ctx, headerQuery,
		header.ID,
		header.PeriodID,
		header.TransactionDate,
		header.Description,
		header.PostedByUserID,
		header.CreatedAt,
	); err != nil {
		return mapPgError(err, "transaction "+txn.ID)
	}

	// 4. Insert the entries in one batch
	entryQuery := `
		INSERT INTO journal_entries (id, transaction_id, account_ref, debit_amount, credit_amount)
		VALUES ($1, $2, $3, $4, $5);
	`
	batch := &pgx.Batch{}
	for _, e := range txn.Entries {
		m := mapping.ToModelJournalEntry(e)
		batch.Queue(entryQuery, m.ID, m.TransactionID, m.AccountRef, m.DebitAmount, m.CreditAmount)
	}
	br := tx.SendBatch(ctx, batch)
	for range txn.Entries {
		if _, err := br.Exec(); err != nil {
			br.Close()
			return apperrors.NewAppError(500, "failed to insert journal entry", err)
		}
	}
	if err := br.Close(); err != nil {
		return apperrors.NewAppError(500, "failed to close entry batch", err)
	}

	// 5. Freeze the structural fields of the touched accounts
	if err := r.accountRepo.MarkHasTransactionsInTx(ctx, tx, refs, txn.CreatedAt); err != nil {
		return apperrors.NewAppError(500, "failed to flag accounts", err)
	}

	return r.Commit(ctx, tx)
}

const transactionColumns = `id, period_id, transaction_date, description, posted_by_user_id, created_at`

func scanTransactionHeader(row pgx.Row) (models.JournalTransaction, error) {
	var m models.JournalTransaction
	err := row.Scan(&m.ID, &m.PeriodID, &m.TransactionDate, &m.Description, &m.PostedByUserID, &m.CreatedAt)
	return m, err
}

// FindTransactionByID retrieves a transaction with its entries joined to their accounts.
func (r *PgxJournalRepository) FindTransactionByID(ctx context.Context, id string) (*domain.JournalTransaction, error) {
	header, err := scanTransactionHeader(r.Pool.QueryRow(ctx,
		`SELECT `+transactionColumns+` FROM journal_transactions WHERE id = $1;`, id))
	if err != nil {
		return nil, mapPgError(err, "transaction "+id)
	}

	entries, err := r.findEntries(ctx, []string{id})
	if err != nil {
		return nil, err
	}
	txn := mapping.ToDomainJournalTransaction(header, entries[id])
	return &txn, nil
}

// findEntries loads the entries of the given transactions, keyed by transaction id.
func (r *PgxJournalRepository) findEntries(ctx context.Context, transactionIDs []string) (map[string][]models.JournalEntry, error) {
	query := `
		SELECT e.id, e.transaction_id, e.account_ref, e.debit_amount, e.credit_amount, a.account_id, a.name
		FROM journal_entries e
		JOIN chart_of_accounts a ON a.id = e.account_ref
		WHERE e.transaction_id = ANY($1)
		ORDER BY e.transaction_id, e.id;
	`
	rows, err := r.Pool.Query(ctx, query, transactionIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to query journal entries: %w", err)
	}
	defer rows.Close()

	byTxn := make(map[string][]models.JournalEntry, len(transactionIDs))
	for rows.Next() {
		var m models.JournalEntry
		if err := rows.Scan(&m.ID, &m.TransactionID, &m.AccountRef, &m.DebitAmount, &m.CreditAmount, &m.AccountCode, &m.AccountName); err != nil {
			return nil, fmt.Errorf("failed to scan journal entry row: %w", err)
		}
		byTxn[m.TransactionID] = append(byTxn[m.TransactionID], m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating journal entry rows: %w", err)
	}
	return byTxn, nil
}

// ListTransactions pages newest first by (transaction_date, id). The token carries the last row's key.
func (r *PgxJournalRepository) ListTransactions(ctx context.Context, limit int, nextToken *string) ([]domain.JournalTransaction, *string, error) {
	query := `SELECT ` + transactionColumns + ` FROM journal_transactions`
	args := []any{limit + 1}
	if nextToken != nil && *nextToken != "" {
		cursorDate, cursorID, err := pagination.DecodeToken(*nextToken)
		if err != nil {
			return nil, nil, err
		}
		query += ` WHERE (transaction_date, id) < ($2, $3)`
		args = append(args, cursorDate, cursorID)
	}
	query += ` ORDER BY transaction_date DESC, id DESC LIMIT $1;`

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to query transactions: %w", err)
	}
	var headers []models.JournalTransaction
	for rows.Next() {
		m, err := scanTransactionHeader(rows)
		if err != nil {
			rows.Close()
			return nil, nil, fmt.Errorf("failed to scan transaction row: %w", err)
		}
		headers = append(headers, m)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, nil, fmt.Errorf("error iterating transaction rows: %w", err)
	}

	var next *string
	if len(headers) > limit {
		headers = headers[:limit]
		last := headers[len(headers)-1]
		token := pagination.EncodeToken(last.TransactionDate, last.ID)
		next = &token
	}
	if len(headers) == 0 {
		return []domain.JournalTransaction{}, nil, nil
	}

	ids := make([]string, len(headers))
	for i, h := range headers {
		ids[i] = h.ID
	}
	entries, err := r.findEntries(ctx, ids)
	if err != nil {
		return nil, nil, err
	}

	txns := make([]domain.JournalTransaction, len(headers))
	for i, h := range headers {
		txns[i] = mapping.ToDomainJournalTransaction(h, entries[h.ID])
	}
	return txns, next, nil
}
