package dto

import (
	"time"

	"github.com/SscSPs/solar_backoffice/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateJournalLineRequest is one debit or credit line of a new entry.
type CreateJournalLineRequest struct {
	AccountID   string          `json:"accountId" binding:"required,uuid"`
	Debit       decimal.Decimal `json:"debit" binding:"decimal_gte0"`
	Credit      decimal.Decimal `json:"credit" binding:"decimal_gte0"`
	Description *string         `json:"description"`
}

// CreateJournalEntryRequest defines the payload for a new journal entry.
type CreateJournalEntryRequest struct {
	Date        time.Time                  `json:"date" binding:"required"`
	Description string                     `json:"description" binding:"required"`
	Reference   *string                    `json:"reference"`
	Post        bool                       `json:"post"`
	Lines       []CreateJournalLineRequest `json:"lines" binding:"required,min=2,dive"`
}

// ToLedgerLines converts the request lines into numbered domain lines.
func (r CreateJournalEntryRequest) ToLedgerLines() []domain.LedgerLine {
	lines := make([]domain.LedgerLine, len(r.Lines))
	for i, l := range r.Lines {
		lines[i] = domain.LedgerLine{
			LineNumber:  i + 1,
			AccountID:   l.AccountID,
			Debit:       l.Debit,
			Credit:      l.Credit,
			Description: l.Description,
		}
	}
	return lines
}

// ListJournalEntriesParams defines keyset paging for journal listings.
type ListJournalEntriesParams struct {
	Limit     int     `form:"limit,default=20" binding:"min=1,max=100"`
	NextToken *string `form:"nextToken"`
}

// JournalLineResponse defines the data returned for a ledger line.
type JournalLineResponse struct {
	LineNumber  int             `json:"lineNumber"`
	AccountID   string          `json:"accountId"`
	Debit       decimal.Decimal `json:"debit"`
	Credit      decimal.Decimal `json:"credit"`
	Description *string         `json:"description,omitempty"`
}

// JournalEntryResponse defines the data returned for a journal entry.
type JournalEntryResponse struct {
	EntryID     string                `json:"entryID"`
	Date        time.Time             `json:"date"`
	Description string                `json:"description"`
	Reference   *string               `json:"reference,omitempty"`
	Status      domain.JournalStatus  `json:"status"`
	Total       decimal.Decimal       `json:"total"`
	Lines       []JournalLineResponse `json:"lines"`
	PostedAt    *time.Time            `json:"postedAt,omitempty"`
	CreatedAt   time.Time             `json:"createdAt"`
	CreatedBy   string                `json:"createdBy"`
}

// ListJournalEntriesResponse is a page of journal entries.
type ListJournalEntriesResponse struct {
	Entries   []JournalEntryResponse `json:"entries"`
	NextToken *string                `json:"nextToken,omitempty"`
}

// ToJournalEntryResponse converts a domain.JournalEntry to JournalEntryResponse DTO.
func ToJournalEntryResponse(e *domain.JournalEntry) JournalEntryResponse {
	lines := make([]JournalLineResponse, len(e.Lines))
	for i, l := range e.Lines {
		lines[i] = JournalLineResponse{
			LineNumber:  l.LineNumber,
			AccountID:   l.AccountID,
			Debit:       l.Debit,
			Credit:      l.Credit,
			Description: l.Description,
		}
	}
	return JournalEntryResponse{
		EntryID:     e.EntryID,
		Date:        e.EntryDate,
		Description: e.Description,
		Reference:   e.Reference,
		Status:      e.Status,
		Total:       e.Total(),
		Lines:       lines,
		PostedAt:    e.PostedAt,
		CreatedAt:   e.CreatedAt,
		CreatedBy:   e.CreatedBy,
	}
}
