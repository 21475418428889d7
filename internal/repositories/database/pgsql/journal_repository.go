package pgsql

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/SscSPs/solar_backoffice/internal/apperrors"
	"github.com/SscSPs/solar_backoffice/internal/core/domain"
	portsrepo "github.com/SscSPs/solar_backoffice/internal/core/ports/repositories"
	"github.com/SscSPs/solar_backoffice/internal/models"
	"github.com/SscSPs/solar_backoffice/internal/utils/mapping"
	"github.com/SscSPs/solar_backoffice/internal/utils/pagination"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const (
	entryColumns = `entry_id, organization_id, entry_date, description, reference, status, posted_at, created_at, created_by, last_updated_at, last_updated_by`
	lineColumns  = `line_id, entry_id, line_number, account_id, debit, credit, description`
)

type PgxJournalRepository struct {
	BaseRepository
}

// newPgxJournalRepository creates a new repository for journal entries and their lines.
func newPgxJournalRepository(pool *pgxpool.Pool) *PgxJournalRepository {
	return &PgxJournalRepository{BaseRepository: BaseRepository{Pool: pool}}
}

// Ensure PgxJournalRepository implements portsrepo.JournalRepositoryFacade
var _ portsrepo.JournalRepositoryFacade = (*PgxJournalRepository)(nil)

func scanEntry(row pgx.Row) (models.JournalEntry, error) {
	var m models.JournalEntry
	err := row.Scan(
		&m.EntryID,
		&m.OrganizationID,
		&m.EntryDate,
		&m.Description,
		&m.Reference,
		&m.Status,
		&m.PostedAt,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}

// SaveEntryInTx inserts the entry header and all of its lines.
func (r *PgxJournalRepository) SaveEntryInTx(ctx context.Context, tx pgx.Tx, entry domain.JournalEntry) error {
	m := mapping.ToModelJournalEntry(entry)
	headerQuery := `
		INSERT INTO journal_entries (` + entryColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11);
	`
	_, err := tx.Exec(ctx, headerQuery,
		m.EntryID,
		m.OrganizationID,
		m.EntryDate,
		m.Description,
		m.Reference,
		m.Status,
		m.PostedAt,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		if dup := uniqueViolation(err, "journal entry "+m.EntryID+" already exists"); dup != nil {
			return dup
		}
		return fmt.Errorf("failed to insert journal entry %s: %w", m.EntryID, err)
	}

	batch := &pgx.Batch{}
	lineQuery := `
		INSERT INTO ledger_lines (` + lineColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7);
	`
	for _, line := range entry.Lines {
		ml := mapping.ToModelLedgerLine(line)
		batch.Queue(lineQuery,
			ml.LineID,
			m.EntryID,
			ml.LineNumber,
			ml.AccountID,
			ml.Debit,
			ml.Credit,
			ml.Description,
		)
	}

	br := tx.SendBatch(ctx, batch)
	if err := br.Close(); err != nil {
		return fmt.Errorf("failed to insert ledger lines of entry %s: %w", m.EntryID, err)
	}
	return nil
}

// FindEntryByID retrieves an entry with its lines.
func (r *PgxJournalRepository) FindEntryByID(ctx context.Context, orgID, entryID string) (*domain.JournalEntry, error) {
	query := `SELECT ` + entryColumns + ` FROM journal_entries WHERE entry_id = $1 AND organization_id = $2;`
	return r.findEntry(ctx, r.Pool, query, orgID, entryID)
}

// FindEntryForUpdate locks the entry header and returns it with its lines.
func (r *PgxJournalRepository) FindEntryForUpdate(ctx context.Context, tx pgx.Tx, orgID, entryID string) (*domain.JournalEntry, error) {
	query := `SELECT ` + entryColumns + ` FROM journal_entries WHERE entry_id = $1 AND organization_id = $2 FOR UPDATE;`
	return r.findEntry(ctx, r.q(tx), query, orgID, entryID)
}

func (r *PgxJournalRepository) findEntry(ctx context.Context, db querier, query, orgID, entryID string) (*domain.JournalEntry, error) {
	m, err := scanEntry(db.QueryRow(ctx, query, entryID, orgID))
	if err != nil {
		if nf := notFound(err, "journal entry "+entryID); nf != nil {
			return nil, nf
		}
		return nil, fmt.Errorf("failed to find journal entry %s: %w", entryID, err)
	}

	lines, err := r.findLines(ctx, db, []string{entryID})
	if err != nil {
		return nil, err
	}
	entry := mapping.ToDomainJournalEntry(m)
	entry.Lines = lines[entryID]
	return &entry, nil
}

func (r *PgxJournalRepository) findLines(ctx context.Context, db querier, entryIDs []string) (map[string][]domain.LedgerLine, error) {
	out := make(map[string][]domain.LedgerLine, len(entryIDs))
	if len(entryIDs) == 0 {
		return out, nil
	}
	query := `
		SELECT ` + lineColumns + `
		FROM ledger_lines
		WHERE entry_id = ANY($1)
		ORDER BY entry_id, line_number;
	`
	rows, err := db.Query(ctx, query, entryIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to query ledger lines: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var ml models.LedgerLine
		if err := rows.Scan(
			&ml.LineID,
			&ml.EntryID,
			&ml.LineNumber,
			&ml.AccountID,
			&ml.Debit,
			&ml.Credit,
			&ml.Description,
		); err != nil {
			return nil, fmt.Errorf("failed to scan ledger line: %w", err)
		}
		out[ml.EntryID] = append(out[ml.EntryID], mapping.ToDomainLedgerLine(ml))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating ledger lines: %w", err)
	}
	return out, nil
}

// ListEntries returns up to limit entries newest first, starting after cursor.
func (r *PgxJournalRepository) ListEntries(ctx context.Context, orgID string, limit int, after *pagination.Cursor) ([]domain.JournalEntry, error) {
	if limit <= 0 {
		limit = 20
	}

	args := []any{orgID}
	query := `SELECT ` + entryColumns + ` FROM journal_entries WHERE organization_id = $1`
	if after != nil {
		// Tuple comparison keeps the keyset condition in one index range.
		query += ` AND (entry_date, created_at, entry_id) < ($2, $3, $4)`
		args = append(args, after.Date, after.CreatedAt, after.ID)
	}
	query += ` ORDER BY entry_date DESC, created_at DESC, entry_id DESC LIMIT $` + strconv.Itoa(len(args)+1) + `;`
	args = append(args, limit)

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query journal entries for organization "+orgID, err)
	}
	defer rows.Close()

	var headers []models.JournalEntry
	for rows.Next() {
		m, err := scanEntry(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan journal entry: %w", err)
		}
		headers = append(headers, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating journal entries: %w", err)
	}
	rows.Close()

	ids := make([]string, len(headers))
	for i, h := range headers {
		ids[i] = h.EntryID
	}
	lines, err := r.findLines(ctx, r.Pool, ids)
	if err != nil {
		return nil, err
	}

	entries := make([]domain.JournalEntry, len(headers))
	for i, h := range headers {
		entries[i] = mapping.ToDomainJournalEntry(h)
		entries[i].Lines = lines[h.EntryID]
	}
	return entries, nil
}

// MarkPostedInTx moves a draft entry to posted. The status guard makes it a no-op on posted entries.
func (r *PgxJournalRepository) MarkPostedInTx(ctx context.Context, tx pgx.Tx, entryID string, userID string, now time.Time) error {
	query := `
		UPDATE journal_entries
		SET status = 'posted', posted_at = $1, last_updated_at = $1, last_updated_by = $2
		WHERE entry_id = $3 AND status = 'draft';
	`
	tag, err := r.q(tx).Exec(ctx, query, now, userID, entryID)
	if err != nil {
		return fmt.Errorf("failed to post journal entry %s: %w", entryID, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: journal entry %s is not a draft", apperrors.ErrTerminalState, entryID)
	}
	return nil
}
