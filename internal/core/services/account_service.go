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
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

// accountService implements the AccountSvcFacade interface
type accountService struct {
	BaseService
	txRunner    portsrepo.TxRunner
	accountRepo portsrepo.AccountRepositoryFacade
	audit       portssvc.AuditSvc
}

// NewAccountService creates a new account service.
func NewAccountService(txRunner portsrepo.TxRunner, repo portsrepo.AccountRepositoryFacade, audit portssvc.AuditSvc) portssvc.AccountSvcFacade {
	return &accountService{
		txRunner:    txRunner,
		accountRepo: repo,
		audit:       audit,
	}
}

var _ portssvc.AccountSvcFacade = (*accountService)(nil)

func (s *accountService) CreateAccount(ctx context.Context, orgID string, req dto.CreateAccountRequest, userID string) (*domain.Account, error) {
	if err := s.RequireTenant(orgID, userID); err != nil {
		return nil, err
	}
	code := strings.TrimSpace(req.Code)
	if code == "" {
		return nil, fmt.Errorf("%w: account code is required", apperrors.ErrValidation)
	}
	if !req.AccountType.IsValid() {
		return nil, fmt.Errorf("%w: unknown account type %q", apperrors.ErrValidation, req.AccountType)
	}

	account := domain.Account{
		AccountID:      uuid.NewString(),
		OrganizationID: orgID,
		Code:           code,
		Name:           req.Name,
		AccountType:    req.AccountType,
		IsActive:       true,
		Balance:        decimal.Zero,
		AuditFields:    domain.NewAuditFields(userID, s.Now()),
	}

	// the account row and its audit record commit together
	err := s.txRunner.WithTx(ctx, func(tx pgx.Tx) error {
		if err := s.accountRepo.SaveAccountInTx(ctx, tx, account); err != nil {
			return err
		}
		_, err := s.audit.Record(ctx, tx, domain.AuditEvent{
			EventType:      domain.EventAccountCreated,
			ActorID:        userID,
			OrganizationID: orgID,
			ResourceType:   "account",
			ResourceID:     account.AccountID,
			Action:         "create account " + account.Code,
			Metadata: map[string]any{
				"code":        account.Code,
				"name":        account.Name,
				"accountType": string(account.AccountType),
			},
		})
		return err
	})
	if err != nil {
		if !errors.Is(err, apperrors.ErrDuplicate) {
			s.LogError(ctx, err, "Failed to save account in repository", slog.String("account_id", account.AccountID))
		}
		return nil, err
	}

	s.LogInfo(ctx, "Account created successfully in service", slog.String("account_id", account.AccountID))
	return &account, nil
}

func (s *accountService) GetAccountByID(ctx context.Context, orgID string, accountID string) (*domain.Account, error) {
	account, err := s.accountRepo.FindAccountByID(ctx, orgID, accountID)
	if err != nil {
		// ErrNotFound is an expected outcome
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find account by ID in repository", slog.String("account_id", accountID))
		}
		return nil, err
	}
	return account, nil
}

// ListAccounts retrieves a paginated list of accounts.
func (s *accountService) ListAccounts(ctx context.Context, orgID string, limit int, offset int) ([]domain.Account, error) {
	accounts, err := s.accountRepo.ListAccounts(ctx, orgID, limit, offset)
	if err != nil {
		s.LogError(ctx, err, "Failed to list accounts from repository", slog.Int("limit", limit), slog.Int("offset", offset))
		return nil, fmt.Errorf("failed to list accounts: %w", err)
	}
	if accounts == nil {
		return []domain.Account{}, nil
	}
	return accounts, nil
}
