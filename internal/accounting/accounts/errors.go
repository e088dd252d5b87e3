package accounts

import (
	"fmt"

	"github.com/akount/akount/internal/platform/httpx"
)

var (
	// ErrAccountNotFound indicates a missing account.
	ErrAccountNotFound = fmt.Errorf("accounts: account not found: %w", httpx.ErrNotFound)
	// ErrDuplicateName indicates an entity already has an account with the name.
	ErrDuplicateName = fmt.Errorf("accounts: name already used: %w", httpx.ErrDuplicate)
	// ErrUnknownCurrency indicates a stored or requested currency outside the supported set.
	ErrUnknownCurrency = fmt.Errorf("accounts: unknown currency: %w", httpx.ErrValidation)
	// ErrInvalidType indicates an unsupported account type.
	ErrInvalidType = fmt.Errorf("accounts: invalid account type: %w", httpx.ErrValidation)
	// ErrNameRequired indicates a blank account name.
	ErrNameRequired = fmt.Errorf("accounts: name required: %w", httpx.ErrValidation)
)
