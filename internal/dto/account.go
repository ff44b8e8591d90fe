package dto

import (
	"time"

	"github.com/Konecta-ERP/Konecta-ERP-sub000/internal/core/domain"
)

// CreateAccountRequest defines the data needed to create a new account.
type CreateAccountRequest struct {
	AccountID     string             `json:"accountId" binding:"required,max=20"`
	Name          string             `json:"name" binding:"required"`
	AccountType   domain.AccountType `json:"accountType" binding:"required,oneof=ASSET LIABILITY EQUITY REVENUE EXPENSE"`
	PLMapping     domain.PLMapping   `json:"plMapping" binding:"omitempty,oneof=NONE REVENUE COGS OPEX OTHER_INCOME OTHER_EXPENSE"`
	CashSource    domain.CashSource  `json:"cashSource" binding:"omitempty,oneof=NONE CFO CFI CFF"`
	IsCashAccount bool               `json:"isCashAccount"`
	IsCurrent     *bool              `json:"isCurrent"` // defaults to true
	Description   string             `json:"description"`
}

// UpdateAccountRequest defines the data allowed for updating an account.
// Use pointers to distinguish between zero-value updates and fields not provided.
type UpdateAccountRequest struct {
	AccountID     *string             `json:"accountId" binding:"omitempty,min=1,max=20"`
	Name          *string             `json:"name" binding:"omitempty,min=1"`
	AccountType   *domain.AccountType `json:"accountType" binding:"omitempty,oneof=ASSET LIABILITY EQUITY REVENUE EXPENSE"`
	PLMapping     *domain.PLMapping   `json:"plMapping" binding:"omitempty,oneof=NONE REVENUE COGS OPEX OTHER_INCOME OTHER_EXPENSE"`
	CashSource    *domain.CashSource  `json:"cashSource" binding:"omitempty,oneof=NONE CFO CFI CFF"`
	IsCashAccount *bool               `json:"isCashAccount"`
	IsCurrent     *bool               `json:"isCurrent"`
	Description   *string             `json:"description"`
}

// ToPatch converts the request into a domain patch.
func (r UpdateAccountRequest) ToPatch() domain.AccountPatch {
	return domain.AccountPatch{
		AccountID:     r.AccountID,
		Name:          r.Name,
		Type:          r.AccountType,
		PLMapping:     r.PLMapping,
		CashSource:    r.CashSource,
		IsCashAccount: r.IsCashAccount,
		IsCurrent:     r.IsCurrent,
		Description:   r.Description,
	}
}

// AccountResponse defines the data returned for an account.
type AccountResponse struct {
	ID              string               `json:"id"`
	AccountID       string               `json:"accountId"`
	Name            string               `json:"name"`
	AccountType     domain.AccountType   `json:"accountType"`
	PLMapping       domain.PLMapping     `json:"plMapping"`
	CashSource      domain.CashSource    `json:"cashSource"`
	IsCashAccount   bool                 `json:"isCashAccount"`
	IsCurrent       bool                 `json:"isCurrent"`
	Status          domain.AccountStatus `json:"status"`
	HasTransactions bool                 `json:"hasTransactions"`
	Description     string               `json:"description"`
	CreatedAt       time.Time            `json:"createdAt"`
	CreatedBy       string               `json:"createdBy"`
	LastUpdatedAt   time.Time            `json:"lastUpdatedAt"`
	LastUpdatedBy   string               `json:"lastUpdatedBy"`
}

// ToAccountResponse converts a domain.Account to AccountResponse DTO
func ToAccountResponse(acc *domain.Account) AccountResponse {
	return AccountResponse{
		ID:              acc.ID,
		AccountID:       acc.AccountID,
		Name:            acc.Name,
		AccountType:     acc.Type,
		PLMapping:       acc.PLMapping,
		CashSource:      acc.CashSource,
		IsCashAccount:   acc.IsCashAccount,
		IsCurrent:       acc.IsCurrent,
		Status:          acc.Status,
		HasTransactions: acc.HasTransactions,
		Description:     acc.Description,
		CreatedAt:       acc.CreatedAt,
		CreatedBy:       acc.CreatedBy,
		LastUpdatedAt:   acc.LastUpdatedAt,
		LastUpdatedBy:   acc.LastUpdatedBy,
	}
}

// ToListAccountResponse converts a slice of domain.Account to a slice of AccountResponse DTOs
func ToListAccountResponse(accounts []domain.Account) []AccountResponse {
	res := make([]AccountResponse, len(accounts))
	for i := range accounts {
		res[i] = ToAccountResponse(&accounts[i])
	}
	return res
}

// ListAccountsParams defines query parameters for listing accounts.
type ListAccountsParams struct {
	Limit  int `form:"limit,default=100" binding:"omitempty,min=1,max=500"`
	Offset int `form:"offset,default=0" binding:"omitempty,min=0"`
}

// ListAccountsResponse wraps the list of accounts.
type ListAccountsResponse struct {
	Accounts []AccountResponse `json:"accounts"`
}
