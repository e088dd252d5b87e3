package transactions

import (
	"fmt"

	"github.com/akount/akount/internal/platform/httpx"
)

var (
	// ErrTransactionNotFound indicates a missing transaction.
	ErrTransactionNotFound = fmt.Errorf("transactions: transaction not found: %w", httpx.ErrNotFound)
	// ErrAlreadyReconciled indicates the line is already linked to a journal entry.
	ErrAlreadyReconciled = fmt.Errorf("transactions: already reconciled: %w", httpx.ErrDuplicate)
	// ErrEmptyImport indicates an import batch without lines.
	ErrEmptyImport = fmt.Errorf("transactions: import has no lines: %w", httpx.ErrValidation)
	// ErrNothingImported indicates every line of a batch was rejected.
	ErrNothingImported = fmt.Errorf("transactions: no importable lines: %w", httpx.ErrUnprocessable)
	// ErrJournalEntryRequired indicates a blank journal entry id on reconcile.
	ErrJournalEntryRequired = fmt.Errorf("transactions: journal entry id required: %w", httpx.ErrValidation)
	// ErrUnknownCurrency indicates a stored currency outside the supported set.
	ErrUnknownCurrency = fmt.Errorf("transactions: unknown currency: %w", httpx.ErrValidation)
)

func errInvalidQuery(detail string) error {
	return fmt.Errorf("transactions: %s: %w", detail, httpx.ErrValidation)
}
