package domain

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"
)

// JournalStatus indicates the state of a journal entry.
type JournalStatus string

const (
	Draft  JournalStatus = "draft"
	Posted JournalStatus = "posted"
)

// JournalEntry is a balanced financial event composed of ordered ledger lines.
// Lines never change after creation; corrections are new entries.
type JournalEntry struct {
	EntryID        string        `json:"entryID"`
	OrganizationID string        `json:"organizationID"`
	EntryDate      time.Time     `json:"entryDate"`
	Description    string        `json:"description"`
	Reference      *string       `json:"reference,omitempty"`
	Status         JournalStatus `json:"status"`
	Lines          []LedgerLine  `json:"lines"`
	PostedAt       *time.Time    `json:"postedAt,omitempty"`
	AuditFields
}

// LedgerLine is a single debit or credit against an account.
type LedgerLine struct {
	LineID      string          `json:"lineID"`
	EntryID     string          `json:"entryID"`
	LineNumber  int             `json:"lineNumber"`
	AccountID   string          `json:"accountID"`
	Debit       decimal.Decimal `json:"debit"`
	Credit      decimal.Decimal `json:"credit"`
	Description *string         `json:"description,omitempty"`
}

// AccountIDs returns the distinct account ids referenced by the entry's lines
// in ascending order, the order in which their rows are locked.
func (e JournalEntry) AccountIDs() []string {
	seen := make(map[string]struct{}, len(e.Lines))
	ids := make([]string, 0, len(e.Lines))
	for _, l := range e.Lines {
		if _, ok := seen[l.AccountID]; ok {
			continue
		}
		seen[l.AccountID] = struct{}{}
		ids = append(ids, l.AccountID)
	}
	sort.Strings(ids)
	return ids
}

// Total returns the sum of the debit side.
func (e JournalEntry) Total() decimal.Decimal {
	total := decimal.Zero
	for _, l := range e.Lines {
		total = total.Add(l.Debit)
	}
	return total
}
