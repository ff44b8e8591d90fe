package pgsql

import (
	"context"
	"fmt"
	"time"

	"github.com/Konecta-ERP/Konecta-ERP-sub000/internal/core/domain"
	portsrepo "github.com/Konecta-ERP/Konecta-ERP-sub000/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

// reportingRepository implements the ReportingRepository interface
type reportingRepository struct {
	BaseRepository
}

// newReportingRepository creates a new reporting repository
func newReportingRepository(db *pgxpool.Pool) portsrepo.ReportingRepository {
	return &reportingRepository{
		BaseRepository: BaseRepository{Pool: db},
	}
}

var _ portsrepo.ReportingRepository = (*reportingRepository)(nil)

// refsOrNil turns an empty filter into NULL so the queries can use ($n::text[] IS NULL OR ...).
func refsOrNil(refs []string) []string {
	if len(refs) == 0 {
		return nil
	}
	return refs
}

// SumAccountTotals retrieves debit and credit sums per active account in a date window
func (r *reportingRepository) SumAccountTotals(ctx context.Context, from *time.Time, to time.Time) ([]domain.AccountTotals, error) {
	query := `
		SELECT
			a.id,
			a.account_id,
			a.name,
			a.account_type,
			a.pl_mapping,
			a.is_current,
			COALESCE(SUM(e.debit_amount), 0) AS total_debit,
			COALESCE(SUM(e.credit_amount), 0) AS total_credit
		FROM journal_entries e
		JOIN journal_transactions t ON t.id = e.transaction_id
		JOIN chart_of_accounts a ON a.id = e.account_ref
		WHERE a.status = 'ACTIVE'
			AND ($1::date IS NULL OR t.transaction_date >= $1)
			AND t.transaction_date <= $2
		GROUP BY a.id, a.account_id, a.name, a.account_type, a.pl_mapping, a.is_current
		ORDER BY a.account_id;
	`
	var lower *time.Time
	if from != nil {
		d := domain.DateOnly(*from)
		lower = &d
	}

	rows, err := r.Pool.Query(ctx, query, lower, domain.DateOnly(to))
	if err != nil {
		return nil, fmt.Errorf("error querying account totals: %w", err)
	}
	defer rows.Close()

	result := []domain.AccountTotals{}
	for rows.Next() {
		var row domain.AccountTotals
		var accountType, plMapping string
		if err := rows.Scan(
			&row.AccountRef,
			&row.AccountID,
			&row.AccountName,
			&accountType,
			&plMapping,
			&row.IsCurrent,
			&row.Debits,
			&row.Credits,
		); err != nil {
			return nil, fmt.Errorf("error scanning account totals row: %w", err)
		}
		row.AccountType = domain.AccountType(accountType)
		row.PLMapping = domain.PLMapping(plMapping)
		result = append(result, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating account totals rows: %w", err)
	}
	return result, nil
}

// SumBalancesBefore retrieves signed balances per account strictly before a cut-off date
func (r *reportingRepository) SumBalancesBefore(ctx context.Context, before time.Time, refs []string) (map[string]decimal.Decimal, error) {
	query := `
		SELECT e.account_ref, COALESCE(SUM(e.debit_amount - e.credit_amount), 0)
		FROM journal_entries e
		JOIN journal_transactions t ON t.id = e.transaction_id
		WHERE t.transaction_date < $1
			AND ($2::text[] IS NULL OR e.account_ref = ANY($2))
		GROUP BY e.account_ref;
	`
	rows, err := r.Pool.Query(ctx, query, domain.DateOnly(before), refsOrNil(refs))
	if err != nil {
		return nil, fmt.Errorf("error querying opening balances: %w", err)
	}
	defer rows.Close()

	result := make(map[string]decimal.Decimal)
	for rows.Next() {
		var ref string
		var balance decimal.Decimal
		if err := rows.Scan(&ref, &balance); err != nil {
			return nil, fmt.Errorf("error scanning opening balance row: %w", err)
		}
		result[ref] = balance
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating opening balance rows: %w", err)
	}
	return result, nil
}

// ListLedgerLines retrieves the entries of active accounts in a date window
func (r *reportingRepository) ListLedgerLines(ctx context.Context, from, to time.Time, refs []string) ([]domain.LedgerLine, error) {
	query := `
		SELECT e.id, t.id, t.transaction_date, a.id, a.account_id, a.name,
			e.debit_amount, e.credit_amount, t.description
		FROM journal_entries e
		JOIN journal_transactions t ON t.id = e.transaction_id
		JOIN chart_of_accounts a ON a.id = e.account_ref
		WHERE a.status = 'ACTIVE'
			AND t.transaction_date BETWEEN $1 AND $2
			AND ($3::text[] IS NULL OR a.id = ANY($3))
		ORDER BY a.account_id, t.transaction_date, t.id, e.id;
	`
	rows, err := r.Pool.Query(ctx, query, domain.DateOnly(from), domain.DateOnly(to), refsOrNil(refs))
	if err != nil {
		return nil, fmt.Errorf("error querying ledger lines: %w", err)
	}
	defer rows.Close()

	var result []domain.LedgerLine
	for rows.Next() {
		var l domain.LedgerLine
		if err := rows.Scan(
			&l.EntryID,
			&l.TransactionID,
			&l.TransactionDate,
			&l.AccountRef,
			&l.AccountID,
			&l.AccountName,
			&l.DebitAmount,
			&l.CreditAmount,
			&l.Description,
		); err != nil {
			return nil, fmt.Errorf("error scanning ledger line: %w", err)
		}
		result = append(result, l)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating ledger lines: %w", err)
	}
	return result, nil
}

// SumCashBefore retrieves the cash balance strictly before a cut-off date
func (r *reportingRepository) SumCashBefore(ctx context.Context, before time.Time) (decimal.Decimal, error) {
	query := `
		SELECT COALESCE(SUM(e.debit_amount - e.credit_amount), 0)
		FROM journal_entries e
		JOIN journal_transactions t ON t.id = e.transaction_id
		JOIN chart_of_accounts a ON a.id = e.account_ref
		WHERE a.is_cash_account AND t.transaction_date < $1;
	`
	total := decimal.Zero
	if err := r.Pool.QueryRow(ctx, query, domain.DateOnly(before)).Scan(&total); err != nil {
		return decimal.Zero, fmt.Errorf("error querying cash balance: %w", err)
	}
	return total, nil
}

// ListCashLines retrieves every entry of the cash-touching transactions in a date window
func (r *reportingRepository) ListCashLines(ctx context.Context, from, to time.Time) ([]domain.CashLine, error) {
	query := `
		SELECT e.id, e.transaction_id, e.account_ref, a.is_cash_account, a.cash_source,
			e.debit_amount, e.credit_amount
		FROM journal_entries e
		JOIN chart_of_accounts a ON a.id = e.account_ref
		WHERE e.transaction_id IN (
			SELECT DISTINCT ce.transaction_id
			FROM journal_entries ce
			JOIN journal_transactions t ON t.id = ce.transaction_id
			JOIN chart_of_accounts ca ON ca.id = ce.account_ref
			WHERE ca.is_cash_account AND t.transaction_date BETWEEN $1 AND $2
		)
		ORDER BY e.transaction_id, e.id;
	`
	rows, err := r.Pool.Query(ctx, query, domain.DateOnly(from), domain.DateOnly(to))
	if err != nil {
		return nil, fmt.Errorf("error querying cash lines: %w", err)
	}
	defer rows.Close()

	var result []domain.CashLine
	for rows.Next() {
		var l domain.CashLine
		var cashSource string
		if err := rows.Scan(
			&l.EntryID,
			&l.TransactionID,
			&l.AccountRef,
			&l.IsCashAccount,
			&cashSource,
			&l.DebitAmount,
			&l.CreditAmount,
		); err != nil {
			return nil, fmt.Errorf("error scanning cash line: %w", err)
		}
		l.CashSource = domain.CashSource(cashSource)
		result = append(result, l)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating cash lines: %w", err)
	}
	return result, nil
}
