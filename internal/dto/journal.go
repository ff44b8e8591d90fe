package dto

import (
	"time"

	"github.com/Konecta-ERP/Konecta-ERP-sub000/internal/core/domain"
	"github.com/shopspring/decimal"
)

// JournalEntryRequest is one line of a transaction to post.
type JournalEntryRequest struct {
	AccountRef   string          `json:"accountRef" binding:"required"` // account surrogate key
	DebitAmount  decimal.Decimal `json:"debitAmount" binding:"nonnegative_decimal"`
	CreditAmount decimal.Decimal `json:"creditAmount" binding:"nonnegative_decimal"`
}

// PostTransactionRequest defines the data needed to post a journal transaction.
type PostTransactionRequest struct {
	TransactionDate string                `json:"transactionDate" binding:"required,datetime=2006-01-02"`
	Description     string                `json:"description" binding:"required"`
	Entries         []JournalEntryRequest `json:"entries" binding:"required,min=1,dive"`
}

// JournalEntryResponse is a posted entry with its account's display fields.
type JournalEntryResponse struct {
	ID           string          `json:"id"`
	AccountRef   string          `json:"accountRef"`
	AccountCode  string          `json:"accountCode"`
	AccountName  string          `json:"accountName"`
	DebitAmount  decimal.Decimal `json:"debitAmount"`
	CreditAmount decimal.Decimal `json:"creditAmount"`
}

// JournalTransactionResponse is a posted transaction.
type JournalTransactionResponse struct {
	ID              string                 `json:"id"`
	PeriodID        string                 `json:"periodId"`
	TransactionDate string                 `json:"transactionDate"`
	Description     string                 `json:"description"`
	PostedByUserID  string                 `json:"postedByUserId"`
	CreatedAt       time.Time              `json:"createdAt"`
	TotalDebits     decimal.Decimal        `json:"totalDebits"`
	TotalCredits    decimal.Decimal        `json:"totalCredits"`
	Entries         []JournalEntryResponse `json:"entries"`
}

// ToJournalTransactionResponse converts a domain transaction to its response DTO.
func ToJournalTransactionResponse(txn *domain.JournalTransaction) JournalTransactionResponse {
	totals := domain.SumEntries(txn.Entries)
	entries := make([]JournalEntryResponse, len(txn.Entries))
	for i, e := range txn.Entries {
		entries[i] = JournalEntryResponse{
			ID:           e.ID,
			AccountRef:   e.AccountRef,
			AccountCode:  e.AccountCode,
			AccountName:  e.AccountName,
			DebitAmount:  e.DebitAmount,
			CreditAmount: e.CreditAmount,
		}
	}
	return JournalTransactionResponse{
		ID:              txn.ID,
		PeriodID:        txn.PeriodID,
		TransactionDate: txn.TransactionDate.Format(DateLayout),
		Description:     txn.Description,
		PostedByUserID:  txn.PostedByUserID,
		CreatedAt:       txn.CreatedAt,
		TotalDebits:     totals.Debits,
		TotalCredits:    totals.Credits,
		Entries:         entries,
	}
}

// ListTransactionsParams defines query parameters for listing transactions.
type ListTransactionsParams struct {
	Limit     int     `form:"limit,default=20" binding:"omitempty,min=1,max=200"`
	NextToken *string `form:"nextToken"`
}

// ListTransactionsResponse wraps a page of transactions.
type ListTransactionsResponse struct {
	Transactions []JournalTransactionResponse `json:"transactions"`
	NextToken    *string                      `json:"nextToken,omitempty"`
}

// ToListTransactionsResponse converts a page of transactions.
func ToListTransactionsResponse(txns []domain.JournalTransaction, nextToken *string) ListTransactionsResponse {
	res := ListTransactionsResponse{
		Transactions: make([]JournalTransactionResponse, len(txns)),
		NextToken:    nextToken,
	}
	for i := range txns {
		res.Transactions[i] = ToJournalTransactionResponse(&txns[i])
	}
	return res
}
