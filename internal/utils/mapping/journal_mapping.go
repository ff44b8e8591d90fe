package mapping

import (
	"github.com/Konecta-ERP/Konecta-ERP-sub000/internal/core/domain"
	"github.com/Konecta-ERP/Konecta-ERP-sub000/internal/models"
)

// ToModelJournalTransaction converts a domain JournalTransaction header to its model
func ToModelJournalTransaction(d domain.JournalTransaction) models.JournalTransaction {
	return models.JournalTransaction{
		ID:              d.ID,
		PeriodID:        d.PeriodID,
		TransactionDate: domain.DateOnly(d.TransactionDate),
		Description:     d.Description,
		PostedByUserID:  d.PostedByUserID,
		CreatedAt:       d.CreatedAt,
	}
}

// ToDomainJournalTransaction converts a model header and its entries to a domain JournalTransaction
func ToDomainJournalTransaction(m models.JournalTransaction, entries []models.JournalEntry) domain.JournalTransaction {
	txn := domain.JournalTransaction{
		ID:              m.ID,
		PeriodID:        m.PeriodID,
		TransactionDate: domain.DateOnly(m.TransactionDate),
		Description:     m.Description,
		PostedByUserID:  m.PostedByUserID,
		CreatedAt:       m.CreatedAt,
		Entries:         make([]domain.JournalEntry, len(entries)),
	}
	for i, e := range entries {
		txn.Entries[i] = ToDomainJournalEntry(e)
	}
	return txn
}

// ToModelJournalEntry converts a domain JournalEntry to a model JournalEntry
func ToModelJournalEntry(d domain.JournalEntry) models.JournalEntry {
	return models.JournalEntry{
		ID:            d.ID,
		TransactionID: d.TransactionID,
		AccountRef:    d.AccountRef,
		DebitAmount:   d.DebitAmount,
		CreditAmount:  d.CreditAmount,
	}
}

// ToDomainJournalEntry converts a model JournalEntry to a domain JournalEntry
func ToDomainJournalEntry(m models.JournalEntry) domain.JournalEntry {
	return domain.JournalEntry{
		ID:            m.ID,
		TransactionID: m.TransactionID,
		AccountRef:    m.AccountRef,
		DebitAmount:   m.DebitAmount,
		CreditAmount:  m.CreditAmount,
		AccountCode:   m.AccountCode,
		AccountName:   m.AccountName,
	}
}
