package services

import (
	"context"

	"github.com/Konecta-ERP/Konecta-ERP-sub000/internal/core/domain"
	"github.com/Konecta-ERP/Konecta-ERP-sub000/internal/dto"
)

// AccountReaderSvc defines read operations for account data
type AccountReaderSvc interface {
	// GetAccountByID retrieves a specific account by its surrogate key.
	GetAccountByID(ctx context.Context, id string) (*domain.Account, error)

	// ListAccounts retrieves a page of the chart of accounts.
	ListAccounts(ctx context.Context, limit int, offset int) ([]domain.Account, error)
}

// AccountWriterSvc defines write operations for account data
type AccountWriterSvc interface {
	// CreateAccount registers a new ACTIVE account.
	CreateAccount(ctx context.Context, req dto.CreateAccountRequest, userID string) (*domain.Account, error)

	// UpdateAccount applies the provided fields. The code, type and cash flag are frozen once the account has transactions.
	UpdateAccount(ctx context.Context, id string, req dto.UpdateAccountRequest, userID string) (*domain.Account, error)

	// ToggleActive flips the account between ACTIVE and INACTIVE.
	ToggleActive(ctx context.Context, id string, userID string) (*domain.Account, error)
}

// AccountSvcFacade combines all account-related service interfaces
// This is a facade for clients that need access to all operations
type AccountSvcFacade interface {
	AccountReaderSvc
	AccountWriterSvc
}
