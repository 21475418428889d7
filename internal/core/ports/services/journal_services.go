package services

import (
	"context"

	"github.com/SscSPs/solar_backoffice/internal/core/domain"
	"github.com/SscSPs/solar_backoffice/internal/dto"
)

// JournalReaderSvc defines read operations for journal data
type JournalReaderSvc interface {
	// GetJournalEntry retrieves an entry with its lines.
	GetJournalEntry(ctx context.Context, orgID string, entryID string) (*domain.JournalEntry, error)

	// ListJournalEntries retrieves a keyset page of entries, newest first.
	ListJournalEntries(ctx context.Context, orgID string, params dto.ListJournalEntriesParams) (*dto.ListJournalEntriesResponse, error)
}

// JournalWriterSvc defines write operations for journal data
type JournalWriterSvc interface {
	// CreateJournalEntry validates and persists a balanced entry in one locking transaction.
	CreateJournalEntry(ctx context.Context, orgID string, req dto.CreateJournalEntryRequest, userID string) (*domain.JournalEntry, error)

	// PostJournalEntry moves a draft entry to posted and applies it to account balances.
	PostJournalEntry(ctx context.Context, orgID string, entryID string, userID string) (*domain.JournalEntry, error)
}

// JournalSvcFacade combines all journal-related service interfaces
type JournalSvcFacade interface {
	JournalReaderSvc
	JournalWriterSvc
}
