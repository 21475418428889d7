package repositories

import (
	"context"
	"time"

	"github.com/SscSPs/solar_backoffice/internal/core/domain"
	"github.com/SscSPs/solar_backoffice/internal/utils/pagination"
	"github.com/jackc/pgx/v5"
)

// JournalReader defines read operations for journal entries
type JournalReader interface {
	// FindEntryByID retrieves an entry with its lines.
	FindEntryByID(ctx context.Context, orgID, entryID string) (*domain.JournalEntry, error)

	// ListEntries returns up to limit entries newest first, starting after cursor.
	ListEntries(ctx context.Context, orgID string, limit int, after *pagination.Cursor) ([]domain.JournalEntry, error)
}

// JournalWriter defines operations that change journal entries inside a transaction
type JournalWriter interface {
	// SaveEntryInTx inserts the header and all lines of entry.
	SaveEntryInTx(ctx context.Context, tx pgx.Tx, entry domain.JournalEntry) error

	// FindEntryForUpdate locks the entry header and returns it with its lines.
	FindEntryForUpdate(ctx context.Context, tx pgx.Tx, orgID, entryID string) (*domain.JournalEntry, error)

	// MarkPostedInTx moves a draft entry to posted.
	MarkPostedInTx(ctx context.Context, tx pgx.Tx, entryID string, userID string, now time.Time) error
}

// JournalRepositoryFacade combines all journal-related repository interfaces
type JournalRepositoryFacade interface {
	JournalReader
	JournalWriter
}
