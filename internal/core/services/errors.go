package services

import (
	"fmt"

	"github.com/SscSPs/solar_backoffice/internal/apperrors"
)

var (
	ErrDescriptionMissing   = fmt.Errorf("%w: journal description is required", apperrors.ErrValidation)
	ErrAccountNotFound      = fmt.Errorf("%w: account not found", apperrors.ErrNotFound)
	ErrAccountInactive      = fmt.Errorf("%w: account is inactive", apperrors.ErrValidation)
	ErrJournalAlreadyPosted = fmt.Errorf("%w: journal entry is already posted", apperrors.ErrTerminalState)
	ErrInvoiceAlreadyPaid   = fmt.Errorf("%w: invoice is already paid", apperrors.ErrTerminalState)
	ErrInvalidPageToken     = fmt.Errorf("%w: invalid page token", apperrors.ErrValidation)
	ErrUnknownSyncEntity    = fmt.Errorf("%w: unknown sync entity", apperrors.ErrValidation)
	ErrOpenTimeEntry        = fmt.Errorf("%w: user is already clocked in", apperrors.ErrTerminalState)
	ErrNoOpenTimeEntry      = fmt.Errorf("%w: user is not clocked in", apperrors.ErrNotFound)
)
