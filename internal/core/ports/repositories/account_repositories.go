package repositories

import (
	"context"
	"time"

	"github.com/Konecta-ERP/Konecta-ERP-sub000/internal/core/domain"
	"github.com/jackc/pgx/v5"
)

// AccountReader defines read operations for account data
type AccountReader interface {
	// FindAccountByID retrieves a specific account by its surrogate key.
	FindAccountByID(ctx context.Context, id string) (*domain.Account, error)

	// FindAccountsByIDs retrieves multiple accounts keyed by surrogate key. Unknown ids are absent from the map.
	FindAccountsByIDs(ctx context.Context, ids []string) (map[string]domain.Account, error)

	// ListAccounts retrieves a page of accounts ordered by business code.
	ListAccounts(ctx context.Context, limit int, offset int) ([]domain.Account, error)

	// ListActiveAccounts retrieves every ACTIVE account ordered by business code.
	ListActiveAccounts(ctx context.Context) ([]domain.Account, error)
}

// AccountWriter defines write operations for account data
type AccountWriter interface {
	// SaveAccount persists a new account. Returns ErrDuplicate when the code or name is taken.
	SaveAccount(ctx context.Context, account domain.Account) error

	// UpdateAccount overwrites the mutable columns of an existing account. It returns a
	// StateError when the stored account has transactions and the code, type or cash flag differ.
	UpdateAccount(ctx context.Context, account domain.Account) error

	// ToggleAccountStatus flips ACTIVE and INACTIVE on the stored row, leaving other columns alone.
	ToggleAccountStatus(ctx context.Context, id string, updatedAt time.Time, updatedBy string) (*domain.Account, error)
}

// AccountTransactionSupport defines account operations that run inside a posting transaction
type AccountTransactionSupport interface {
	// FindAccountsByIDsForUpdate selects accounts and locks them for update within a transaction.
	FindAccountsByIDsForUpdate(ctx context.Context, tx pgx.Tx, ids []string) (map[string]domain.Account, error)

	// MarkHasTransactionsInTx sets has_transactions on the given accounts. It never clears the flag.
	MarkHasTransactionsInTx(ctx context.Context, tx pgx.Tx, ids []string, now time.Time) error
}

// AccountRepositoryFacade combines the account interfaces needed by services
type AccountRepositoryFacade interface {
	AccountReader
	AccountWriter
}

// AccountRepositoryWithTx extends AccountRepositoryFacade with transaction capabilities
type AccountRepositoryWithTx interface {
	AccountRepositoryFacade
	AccountTransactionSupport
	TransactionManager
}
