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
	"github.com/google/uuid"
)

// accountService implements the AccountSvcFacade interface
type accountService struct {
	BaseService
	accountRepo portsrepo.AccountRepositoryFacade
}

// AccountServiceOption is a functional option for configuring the account service
type AccountServiceOption func(*accountService)

// WithAccountClock overrides the time source used for audit fields.
func WithAccountClock(clock func() time.Time) AccountServiceOption {
	return func(s *accountService) {
		s.Clock = clock
	}
}

// NewAccountService creates a new account service with the provided options
func NewAccountService(repo portsrepo.AccountRepositoryFacade, options ...AccountServiceOption) portssvc.AccountSvcFacade {
	svc := &accountService{
		accountRepo: repo,
	}

	for _, option := range options {
		option(svc)
	}

	return svc
}

// Ensure accountService implements the AccountSvcFacade interface
var _ portssvc.AccountSvcFacade = (*accountService)(nil)

func validateAccount(a domain.Account) error {
	switch {
	case strings.TrimSpace(a.AccountID) == "":
		return fmt.Errorf("%w: account code is required", apperrors.ErrValidation)
	case len(a.AccountID) > domain.MaxAccountCodeLength:
		return fmt.Errorf("%w: account code exceeds %d characters", apperrors.ErrValidation, domain.MaxAccountCodeLength)
	case strings.TrimSpace(a.Name) == "":
		return fmt.Errorf("%w: account name is required", apperrors.ErrValidation)
	case !a.Type.IsValid():
		return fmt.Errorf("%w: unknown account type %q", apperrors.ErrValidation, a.Type)
	case !a.PLMapping.IsValid():
		return fmt.Errorf("%w: unknown P&L mapping %q", apperrors.ErrValidation, a.PLMapping)
	case !a.CashSource.IsValid():
		return fmt.Errorf("%w: unknown cash source %q", apperrors.ErrValidation, a.CashSource)
	}
	return nil
}

func (s *accountService) CreateAccount(ctx context.Context, req dto.CreateAccountRequest, userID string) (*domain.Account, error) {
	now := s.Now()

	plMapping := req.PLMapping
	if plMapping == "" {
		plMapping = domain.PLNone
	}
	cashSource := req.CashSource
	if cashSource == "" {
		cashSource = domain.CashSourceNone
	}
	isCurrent := true
	if req.IsCurrent != nil {
		isCurrent = *req.IsCurrent
	}

	account := domain.Account{
		ID:            uuid.NewString(),
		AccountID:     strings.TrimSpace(req.AccountID),
		Name:          strings.TrimSpace(req.Name),
		Type:          req.AccountType,
		PLMapping:     plMapping,
		CashSource:    cashSource,
		IsCashAccount: req.IsCashAccount,
		IsCurrent:     isCurrent,
		Status:        domain.AccountActive,
		Description:   req.Description,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}

	if err := validateAccount(account); err != nil {
		return nil, err
	}

	if err := s.accountRepo.SaveAccount(ctx, account); err != nil {
		if !errors.Is(err, apperrors.ErrDuplicate) {
			s.LogError(ctx, err, "Failed to save account in repository",
				slog.String("account_code", account.AccountID))
		}
		return nil, fmt.Errorf("failed to create account %s: %w", account.AccountID, err)
	}

	s.LogInfo(ctx, "Account created successfully",
		slog.String("account_id", account.ID),
		slog.String("account_code", account.AccountID))
	return &account, nil
}

func (s *accountService) GetAccountByID(ctx context.Context, id string) (*domain.Account, error) {
	account, err := s.accountRepo.FindAccountByID(ctx, id)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find account by ID in repository", slog.String("account_id", id))
		}
		return nil, err
	}
	return account, nil
}

// ListAccounts retrieves a page of accounts.
func (s *accountService) ListAccounts(ctx context.Context, limit int, offset int) ([]domain.Account, error) {
	if limit <= 0 {
		limit = 100
	}
	if offset < 0 {
		offset = 0
	}
	accounts, err := s.accountRepo.ListAccounts(ctx, limit, offset)
	if err != nil {
		s.LogError(ctx, err, "Failed to list accounts from repository", slog.Int("limit", limit), slog.Int("offset", offset))
		return nil, fmt.Errorf("failed to list accounts: %w", err)
	}
	if accounts == nil {
		return []domain.Account{}, nil
	}
	return accounts, nil
}

// UpdateAccount applies the provided fields of req to the account.
func (s *accountService) UpdateAccount(ctx context.Context, id string, req dto.UpdateAccountRequest, userID string) (*domain.Account, error) {
	current, err := s.GetAccountByID(ctx, id)
	if err != nil {
		return nil, err
	}

	patch := req.ToPatch()
	if current.HasTransactions && patch.TouchesLockedFields(*current) {
		err := domain.FrozenFieldsError(current.ID)
		s.LogWarn(ctx, err, "Refused update of frozen account fields", slog.String("account_id", id))
		return nil, err
	}

	updated := patch.Apply(*current)
	updated.AccountID = strings.TrimSpace(updated.AccountID)
	updated.Name = strings.TrimSpace(updated.Name)
	if err := validateAccount(updated); err != nil {
		return nil, err
	}
	updated.LastUpdatedAt = s.Now()
	updated.LastUpdatedBy = userID

	// the repository repeats the frozen-field check against the stored row, so a posting
	// that lands after the read above still wins
	if err := s.accountRepo.UpdateAccount(ctx, updated); err != nil {
		switch {
		case errors.Is(err, apperrors.ErrInvalidState):
			s.LogWarn(ctx, err, "Refused update of frozen account fields", slog.String("account_id", id))
		case !errors.Is(err, apperrors.ErrDuplicate) && !errors.Is(err, apperrors.ErrNotFound):
			s.LogError(ctx, err, "Failed to update account in repository", slog.String("account_id", id))
		}
		return nil, fmt.Errorf("failed to update account %s: %w", id, err)
	}

	s.LogInfo(ctx, "Account updated successfully", slog.String("account_id", id))
	return &updated, nil
}

// ToggleActive flips the account between ACTIVE and INACTIVE.
func (s *accountService) ToggleActive(ctx context.Context, id string, userID string) (*domain.Account, error) {
	account, err := s.accountRepo.ToggleAccountStatus(ctx, id, s.Now(), userID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to toggle account status", slog.String("account_id", id))
		}
		return nil, fmt.Errorf("failed to toggle account %s: %w", id, err)
	}

	s.LogInfo(ctx, "Account status toggled",
		slog.String("account_id", id),
		slog.String("status", string(account.Status)))
	return account, nil
}
