package services

import (
	"context"

	"github.com/Konecta-ERP/Konecta-ERP-sub000/internal/core/domain"
	"github.com/Konecta-ERP/Konecta-ERP-sub000/internal/dto"
)

// JournalReaderSvc defines read operations for posted transactions
type JournalReaderSvc interface {
	// GetTransactionByID retrieves a posted transaction with its entries.
	GetTransactionByID(ctx context.Context, id string) (*domain.JournalTransaction, error)

	// ListTransactions retrieves a page of posted transactions.
	ListTransactions(ctx context.Context, params dto.ListTransactionsParams) (*dto.ListTransactionsResponse, error)
}

// JournalWriterSvc defines the posting operation
type JournalWriterSvc interface {
	// PostTransaction validates and atomically posts a balanced transaction into the OPEN period containing its date.
	PostTransaction(ctx context.Context, req dto.PostTransactionRequest, postedByUserID string) (*domain.JournalTransaction, error)
}

// JournalSvcFacade combines all journal-related service interfaces
// This is a facade for clients that need access to all operations
type JournalSvcFacade interface {
	JournalReaderSvc
	JournalWriterSvc
}
