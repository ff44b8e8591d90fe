package pgsql

import (
	"context"
	"fmt"
	"time"

	"github.com/Konecta-ERP/Konecta-ERP-sub000/internal/apperrors"
	"github.com/Konecta-ERP/Konecta-ERP-sub000/internal/core/domain"
	portsrepo "github.com/Konecta-ERP/Konecta-ERP-sub000/internal/core/ports/repositories"
	"github.com/Konecta-ERP/Konecta-ERP-sub000/internal/models"
	"github.com/Konecta-ERP/Konecta-ERP-sub000/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const accountColumns = `id, account_id, name, account_type, pl_mapping, cash_source, is_cash_account, is_current,
	status, has_transactions, description, created_at, created_by, last_updated_at, last_updated_by`

type PgxAccountRepository struct {
	BaseRepository
}

// newPgxAccountRepository creates a new repository for account data.
func newPgxAccountRepository(pool *pgxpool.Pool) portsrepo.AccountRepositoryWithTx {
	return &PgxAccountRepository{BaseRepository: BaseRepository{Pool: pool}}
}

// Ensure PgxAccountRepository implements portsrepo.AccountRepositoryWithTx
var _ portsrepo.AccountRepositoryWithTx = (*PgxAccountRepository)(nil)

func scanAccount(row pgx.Row) (domain.Account, error) {
	var m models.Account
	err := row.Scan(
		&m.ID,
		&m.AccountID,
		&m.Name,
		&m.AccountType,
		&m.PLMapping,
		&m.CashSource,
		&m.IsCashAccount,
		&m.IsCurrent,
		&m.Status,
		&m.HasTransactions,
		&m.Description,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	if err != nil {
		return domain.Account{}, err
	}
	return mapping.ToDomainAccount(m), nil
}

func collectAccounts(rows pgx.Rows) (map[string]domain.Account, error) {
	defer rows.Close()
	accountsMap := make(map[string]domain.Account)
	for rows.Next() {
		acc, err := scanAccount(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan account row: %w", err)
		}
		accountsMap[acc.ID] = acc
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating account rows: %w", err)
	}
	return accountsMap, nil
}

// SaveAccount inserts a new account.
func (r *PgxAccountRepository) SaveAccount(ctx context.Context, account domain.Account) error {
	m := mapping.ToModelAccount(account)
	query := `
		INSERT INTO chart_of_accounts (` + accountColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15);
	`
	_, err := r.Pool.Exec(ctx, query,
		m.ID,
		m.AccountID,
		m.Name,
		m.AccountType,
		m.PLMapping,
		m.CashSource,
		m.IsCashAccount,
		m.IsCurrent,
		m.Status,
		m.HasTransactions,
		m.Description,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return mapPgError(err, "account "+m.AccountID)
	}
	return nil
}

// FindAccountByID retrieves an account by its surrogate key.
func (r *PgxAccountRepository) FindAccountByID(ctx context.Context, id string) (*domain.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM chart_of_accounts WHERE id = $1;`
	acc, err := scanAccount(r.Pool.QueryRow(ctx, query, id))
	if err != nil {
		return nil, mapPgError(err, "account "+id)
	}
	return &acc, nil
}

// FindAccountsByIDs retrieves multiple accounts by their IDs.
// Unknown ids are simply absent from the map; the caller decides whether that is an error.
func (r *PgxAccountRepository) FindAccountsByIDs(ctx context.Context, ids []string) (map[string]domain.Account, error) {
	if len(ids) == 0 {
		return map[string]domain.Account{}, nil
	}
	query := `SELECT ` + accountColumns + ` FROM chart_of_accounts WHERE id = ANY($1);`
	rows, err := r.Pool.Query(ctx, query, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to query accounts by IDs: %w", err)
	}
	return collectAccounts(rows)
}

// ListAccounts retrieves a page of accounts ordered by business code.
func (r *PgxAccountRepository) ListAccounts(ctx context.Context, limit int, offset int) ([]domain.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM chart_of_accounts ORDER BY account_id LIMIT $1 OFFSET $2;`
	rows, err := r.Pool.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to query accounts: %w", err)
	}
	defer rows.Close()

	accounts := []domain.Account{}
	for rows.Next() {
		acc, err := scanAccount(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan account row: %w", err)
		}
		accounts = append(accounts, acc)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating account rows: %w", err)
	}
	return accounts, nil
}

// UpdateAccount overwrites the mutable columns of an account. has_transactions is only ever
// raised by posting, so it is OR-ed rather than assigned. The frozen columns are checked in the
// WHERE clause against the stored row, so a posting committed after the caller's read still wins.
func (r *PgxAccountRepository) UpdateAccount(ctx context.Context, account domain.Account) error {
	m := mapping.ToModelAccount(account)
	query := `
		UPDATE chart_of_accounts
		SET account_id = $2, name = $3, account_type = $4, pl_mapping = $5, cash_source = $6,
			is_cash_account = $7, is_current = $8, status = $9, description = $10,
			has_transactions = has_transactions OR $11,
			last_updated_at = $12, last_updated_by = $13
		WHERE id = $1
			AND (NOT has_transactions
				OR (account_id = $2 AND account_type = $4 AND is_cash_account = $7));
	`
	cmdTag, err := r.Pool.Exec(ctx, query,
		m.ID,
		m.AccountID,
		m.Name,
		m.AccountType,
		m.PLMapping,
		m.CashSource,
		m.IsCashAccount,
		m.IsCurrent,
		m.Status,
		m.Description,
		m.HasTransactions,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return mapPgError(err, "account "+m.AccountID)
	}
	if cmdTag.RowsAffected() == 0 {
		var used bool
		err := r.Pool.QueryRow(ctx, `SELECT has_transactions FROM chart_of_accounts WHERE id = $1;`, m.ID).Scan(&used)
		if err != nil {
			return mapPgError(err, "account "+m.ID)
		}
		if !used {
			return fmt.Errorf("%w: account %s changed during update", apperrors.ErrInvalidState, m.ID)
		}
		return domain.FrozenFieldsError(m.ID)
	}
	return nil
}

// ListActiveAccounts returns every ACTIVE account ordered by business code.
func (r *PgxAccountRepository) ListActiveAccounts(ctx context.Context) ([]domain.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM chart_of_accounts WHERE status = 'ACTIVE' ORDER BY account_id;`
	rows, err := r.Pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query active accounts: %w", err)
	}
	defer rows.Close()

	accounts := []domain.Account{}
	for rows.Next() {
		acc, err := scanAccount(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan account row: %w", err)
		}
		accounts = append(accounts, acc)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating account rows: %w", err)
	}
	return accounts, nil
}

// ToggleAccountStatus flips status in a single statement and returns the updated row.
func (r *PgxAccountRepository) ToggleAccountStatus(ctx context.Context, id string, updatedAt time.Time, updatedBy string) (*domain.Account, error) {
	query := `
		UPDATE chart_of_accounts
		SET status = CASE WHEN status = 'ACTIVE' THEN 'INACTIVE' ELSE 'ACTIVE' END,
			last_updated_at = $2, last_updated_by = $3
		WHERE id = $1
		RETURNING ` + accountColumns + `;
	`
	acc, err := scanAccount(r.Pool.QueryRow(ctx, query, id, updatedAt, updatedBy))
	if err != nil {
		return nil, mapPgError(err, "account "+id)
	}
	return &acc, nil
}

// FindAccountsByIDsForUpdate retrieves multiple accounts by IDs and locks the rows for update.
// Must be called within a transaction.
func (r *PgxAccountRepository) FindAccountsByIDsForUpdate(ctx context.Context, tx pgx.Tx, ids []string) (map[string]domain.Account, error) {
	if len(ids) == 0 {
		return map[string]domain.Account{}, nil
	}
	query := `SELECT ` + accountColumns + ` FROM chart_of_accounts WHERE id = ANY($1) ORDER BY id FOR UPDATE;`
	rows, err := tx.Query(ctx, query, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to query accounts by IDs for update: %w", err)
	}
	return collectAccounts(rows)
}

// MarkHasTransactionsInTx raises has_transactions on the given accounts within a transaction.
func (r *PgxAccountRepository) MarkHasTransactionsInTx(ctx context.Context, tx pgx.Tx, ids []string, now time.Time) error {
	if len(ids) == 0 {
		return nil
	}
	query := `
		UPDATE chart_of_accounts
		SET has_transactions = TRUE, last_updated_at = $2
		WHERE id = ANY($1) AND has_transactions = FALSE;
	`
	if _, err := tx.Exec(ctx, query, ids, now); err != nil {
		return fmt.Errorf("failed to flag accounts as used: %w", err)
	}
	return nil
}
