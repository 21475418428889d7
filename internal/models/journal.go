package models

import (
	"database/sql"
	"time"

	"github.com/shopspring/decimal"
)

// JournalStatus indicates the state of a journal entry.
type JournalStatus string

const (
	Draft  JournalStatus = "draft"
	Posted JournalStatus = "posted"
)

// JournalEntry is a row of the journal_entries table.
type JournalEntry struct {
	EntryID        string         `db:"entry_id"`
	OrganizationID string         `db:"organization_id"`
	EntryDate      time.Time      `db:"entry_date"`
	Description    string         `db:"description"`
	Reference      sql.NullString `db:"reference"`
	Status         JournalStatus  `db:"status"`
	PostedAt       sql.NullTime   `db:"posted_at"`
	AuditFields
}

// LedgerLine is a row of the ledger_lines table. Exactly one of Debit and Credit is positive.
type LedgerLine struct {
	LineID      string          `db:"line_id"`
	EntryID     string          `db:"entry_id"`
	LineNumber  int             `db:"line_number"`
	AccountID   string          `db:"account_id"`
	Debit       decimal.Decimal `db:"debit"`
	Credit      decimal.Decimal `db:"credit"`
	Description sql.NullString  `db:"description"`
}
