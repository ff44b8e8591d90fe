package repositories

import (
	"context"

	"github.com/Konecta-ERP/Konecta-ERP-sub000/internal/core/domain"
)

// JournalReader defines read operations for posted transactions
type JournalReader interface {
	// FindTransactionByID retrieves a transaction with its entries, each carrying the account code and name.
	FindTransactionByID(ctx context.Context, id string) (*domain.JournalTransaction, error)

	// ListTransactions retrieves a page of transactions, newest date first, using token-based pagination.
	// It returns the transactions, a token for the next page, and an error.
	ListTransactions(ctx context.Context, limit int, nextToken *string) ([]domain.JournalTransaction, *string, error)
}

// JournalWriter defines write operations for posted transactions
type JournalWriter interface {
	// SaveJournalTransaction persists the header and all entries in one unit of work.
	// Under lock it re-checks that the period is OPEN (ErrPeriodClosed) and every account is
	// ACTIVE (ErrInactiveOrUnknownAccount), then flags the touched accounts as having transactions.
	SaveJournalTransaction(ctx context.Context, txn domain.JournalTransaction) error
}

// JournalRepositoryFacade combines all journal-related repository interfaces
type JournalRepositoryFacade interface {
	JournalReader
	JournalWriter
}
