package mapping

import (
	"github.com/SscSPs/solar_backoffice/internal/core/domain"
	"github.com/SscSPs/solar_backoffice/internal/models"
)

// ToModelJournalEntry converts the header of a domain entry. Lines are mapped separately.
func ToModelJournalEntry(d domain.JournalEntry) models.JournalEntry {
	return models.JournalEntry{
		EntryID:        d.EntryID,
		OrganizationID: d.OrganizationID,
		EntryDate:      d.EntryDate,
		Description:    d.Description,
		Reference:      ToNullString(d.Reference),
		Status:         models.JournalStatus(d.Status),
		PostedAt:       ToNullTime(d.PostedAt),
		AuditFields:    ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainJournalEntry converts a header row; lines must be attached by the caller.
func ToDomainJournalEntry(m models.JournalEntry) domain.JournalEntry {
	return domain.JournalEntry{
		EntryID:        m.EntryID,
		OrganizationID: m.OrganizationID,
		EntryDate:      m.EntryDate,
		Description:    m.Description,
		Reference:      FromNullString(m.Reference),
		Status:         domain.JournalStatus(m.Status),
		PostedAt:       FromNullTime(m.PostedAt),
		AuditFields:    ToDomainAuditFields(m.AuditFields),
	}
}

func ToModelLedgerLine(d domain.LedgerLine) models.LedgerLine {
	return models.LedgerLine{
		LineID:      d.LineID,
		EntryID:     d.EntryID,
		LineNumber:  d.LineNumber,
		AccountID:   d.AccountID,
		Debit:       d.Debit,
		Credit:      d.Credit,
		Description: ToNullString(d.Description),
	}
}

func ToDomainLedgerLine(m models.LedgerLine) domain.LedgerLine {
	return domain.LedgerLine{
		LineID:      m.LineID,
		EntryID:     m.EntryID,
		LineNumber:  m.LineNumber,
		AccountID:   m.AccountID,
		Debit:       m.Debit,
		Credit:      m.Credit,
		Description: FromNullString(m.Description),
	}
}
