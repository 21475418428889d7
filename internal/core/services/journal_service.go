package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/SscSPs/solar_backoffice/internal/apperrors"
	"github.com/SscSPs/solar_backoffice/internal/core/domain"
	portsrepo "github.com/SscSPs/solar_backoffice/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/solar_backoffice/internal/core/ports/services"
	"github.com/SscSPs/solar_backoffice/internal/dto"
	"github.com/SscSPs/solar_backoffice/internal/utils/accounting"
	"github.com/SscSPs/solar_backoffice/internal/utils/pagination"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// journalService provides journal entry operations.
type journalService struct {
	BaseService
	txRunner    portsrepo.TxRunner
	accountRepo portsrepo.AccountRepositoryFacade
	journalRepo portsrepo.JournalRepositoryFacade
	audit       portssvc.AuditSvc
}

// NewJournalService creates a new JournalService.
func NewJournalService(txRunner portsrepo.TxRunner, accountRepo portsrepo.AccountRepositoryFacade, journalRepo portsrepo.JournalRepositoryFacade, audit portssvc.AuditSvc) portssvc.JournalSvcFacade {
	return &journalService{
		txRunner:    txRunner,
		accountRepo: accountRepo,
		journalRepo: journalRepo,
		audit:       audit,
	}
}

var _ portssvc.JournalSvcFacade = (*journalService)(nil)

// CreateJournalEntry validates the lines, then inside one serializable
// transaction locks every referenced account, validates again, inserts the
// header and lines and writes the audit record. With req.Post the entry is
// posted in the same transaction and balances move.
func (s *journalService) CreateJournalEntry(ctx context.Context, orgID string, req dto.CreateJournalEntryRequest, userID string) (*domain.JournalEntry, error) {
	if err := s.RequireTenant(orgID, userID); err != nil {
		return nil, err
	}
	if strings.TrimSpace(req.Description) == "" {
		return nil, ErrDescriptionMissing
	}

	lines := req.ToLedgerLines()
	totals, err := accounting.ValidateBalanced(lines)
	if err != nil {
		s.LogDebug(ctx, "Journal entry rejected before transaction", slog.String("error", err.Error()))
		return nil, err
	}

	now := s.Now()
	entry := domain.JournalEntry{
		EntryID:        uuid.NewString(),
		OrganizationID: orgID,
		EntryDate:      req.Date,
		Description:    req.Description,
		Reference:      req.Reference,
		Status:         domain.Draft,
		AuditFields:    domain.NewAuditFields(userID, now),
	}
	for i := range lines {
		lines[i].LineID = uuid.NewString()
		lines[i].EntryID = entry.EntryID
	}
	entry.Lines = lines
	if req.Post {
		entry.Status = domain.Posted
		entry.PostedAt = &now
	}

	err = s.txRunner.WithTx(ctx, func(tx pgx.Tx) error {
		accounts, err := s.lockAccounts(ctx, tx, orgID, entry)
		if err != nil {
			return err
		}
		if _, err := accounting.ValidateBalanced(entry.Lines); err != nil {
			return err
		}
		if err := s.journalRepo.SaveEntryInTx(ctx, tx, entry); err != nil {
			return err
		}
		if entry.Status == domain.Posted {
			if err := s.applyBalances(ctx, tx, entry, accounts, userID); err != nil {
				return err
			}
		}
		_, err = s.audit.Record(ctx, tx, domain.AuditEvent{
			EventType:      domain.EventJournalEntryCreated,
			ActorID:        userID,
			OrganizationID: orgID,
			ResourceType:   "journal_entry",
			ResourceID:     entry.EntryID,
			Action:         "create journal entry",
			Metadata: map[string]any{
				"status":      string(entry.Status),
				"total":       totals.Debit.String(),
				"lineCount":   len(entry.Lines),
				"description": entry.Description,
			},
		})
		return err
	})
	if err != nil {
		if !isClientError(err) {
			s.LogError(ctx, err, "Failed to create journal entry", slog.String("entry_id", entry.EntryID))
		}
		return nil, err
	}

	s.LogInfo(ctx, "Journal entry created",
		slog.String("entry_id", entry.EntryID),
		slog.String("status", string(entry.Status)),
		slog.String("total", totals.Debit.String()))
	return &entry, nil
}

// PostJournalEntry locks the entry and its accounts, then moves it from draft to posted.
func (s *journalService) PostJournalEntry(ctx context.Context, orgID string, entryID string, userID string) (*domain.JournalEntry, error) {
	if err := s.RequireTenant(orgID, userID); err != nil {
		return nil, err
	}

	var posted *domain.JournalEntry
	err := s.txRunner.WithTx(ctx, func(tx pgx.Tx) error {
		entry, err := s.journalRepo.FindEntryForUpdate(ctx, tx, orgID, entryID)
		if err != nil {
			return err
		}
		if entry.Status == domain.Posted {
			return fmt.Errorf("%w: %s", ErrJournalAlreadyPosted, entryID)
		}
		accounts, err := s.lockAccounts(ctx, tx, orgID, *entry)
		if err != nil {
			return err
		}
		if _, err := accounting.ValidateBalanced(entry.Lines); err != nil {
			return err
		}

		now := s.Now()
		if err := s.journalRepo.MarkPostedInTx(ctx, tx, entryID, userID, now); err != nil {
			return err
		}
		if err := s.applyBalances(ctx, tx, *entry, accounts, userID); err != nil {
			return err
		}
		if _, err := s.audit.Record(ctx, tx, domain.AuditEvent{
			EventType:      domain.EventJournalEntryPosted,
			ActorID:        userID,
			OrganizationID: orgID,
			ResourceType:   "journal_entry",
			ResourceID:     entryID,
			Action:         "post journal entry",
			Metadata:       map[string]any{"total": entry.Total().String()},
		}); err != nil {
			return err
		}

		entry.Status = domain.Posted
		entry.PostedAt = &now
		entry.LastUpdatedAt = now
		entry.LastUpdatedBy = userID
		posted = entry
		return nil
	})
	if err != nil {
		if !isClientError(err) {
			s.LogError(ctx, err, "Failed to post journal entry", slog.String("entry_id", entryID))
		}
		return nil, err
	}

	s.LogInfo(ctx, "Journal entry posted", slog.String("entry_id", entryID))
	return posted, nil
}

// lockAccounts takes row locks on every account of entry and checks they are usable.
func (s *journalService) lockAccounts(ctx context.Context, tx pgx.Tx, orgID string, entry domain.JournalEntry) (map[string]domain.Account, error) {
	ids := entry.AccountIDs()
	accounts, err := s.accountRepo.FindAccountsByIDsForUpdate(ctx, tx, orgID, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to lock accounts: %w", err)
	}
	for _, id := range ids {
		acc, ok := accounts[id]
		if !ok || acc.OrganizationID != orgID {
			return nil, fmt.Errorf("%w: %s", ErrAccountNotFound, id)
		}
		if !acc.IsActive {
			return nil, fmt.Errorf("%w: %s", ErrAccountInactive, id)
		}
	}
	return accounts, nil
}

func (s *journalService) applyBalances(ctx context.Context, tx pgx.Tx, entry domain.JournalEntry, accounts map[string]domain.Account, userID string) error {
	deltas, err := accounting.BalanceDeltas(entry.Lines, accounts)
	if err != nil {
		return err
	}
	return s.accountRepo.UpdateAccountBalancesInTx(ctx, tx, deltas, userID, s.Now())
}

func (s *journalService) GetJournalEntry(ctx context.Context, orgID string, entryID string) (*domain.JournalEntry, error) {
	entry, err := s.journalRepo.FindEntryByID(ctx, orgID, entryID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find journal entry", slog.String("entry_id", entryID))
		}
		return nil, err
	}
	return entry, nil
}

func (s *journalService) ListJournalEntries(ctx context.Context, orgID string, params dto.ListJournalEntriesParams) (*dto.ListJournalEntriesResponse, error) {
	limit := params.Limit
	if limit <= 0 {
		limit = 20
	}

	var after *pagination.Cursor
	if params.NextToken != nil && *params.NextToken != "" {
		c, err := pagination.DecodeCursor(*params.NextToken)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidPageToken, err)
		}
		after = &c
	}

	// one extra row tells whether another page exists
	entries, err := s.journalRepo.ListEntries(ctx, orgID, limit+1, after)
	if err != nil {
		s.LogError(ctx, err, "Failed to list journal entries", slog.Int("limit", limit))
		return nil, fmt.Errorf("failed to list journal entries: %w", err)
	}

	resp := &dto.ListJournalEntriesResponse{Entries: []dto.JournalEntryResponse{}}
	if len(entries) > limit {
		entries = entries[:limit]
		last := entries[len(entries)-1]
		token := pagination.EncodeCursor(pagination.Cursor{Date: last.EntryDate, CreatedAt: last.CreatedAt, ID: last.EntryID})
		resp.NextToken = &token
	}
	for i := range entries {
		resp.Entries = append(resp.Entries, dto.ToJournalEntryResponse(&entries[i]))
	}
	return resp, nil
}

// isClientError reports errors caused by the request rather than the system.
func isClientError(err error) bool {
	return errors.Is(err, apperrors.ErrValidation) ||
		errors.Is(err, apperrors.ErrNotFound) ||
		errors.Is(err, apperrors.ErrDuplicate) ||
		errors.Is(err, apperrors.ErrTerminalState)
}
