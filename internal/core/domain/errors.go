package domain

import (
	"errors"
	"fmt"
)

// Error kinds. Every domain error wraps exactly one of these so callers can
// classify failures with errors.Is without matching on message text.
var (
	ErrValidation   = errors.New("validation failed")
	ErrUnauthorized = errors.New("unauthorized")
	ErrForbidden    = errors.New("forbidden")
	ErrNotFound     = errors.New("not found")
	ErrConflict     = errors.New("conflict")
)

var (
	ErrInvalidCredentials = fmt.Errorf("invalid credentials: %w", ErrUnauthorized)

	ErrUserNotFound         = fmt.Errorf("user %w", ErrNotFound)
	ErrClientNotFound       = fmt.Errorf("client %w", ErrNotFound)
	ErrProductNotFound      = fmt.Errorf("product %w", ErrNotFound)
	ErrNotificationNotFound = fmt.Errorf("notification %w", ErrNotFound)

	// ErrOutstandingLoan rejects a sale that would open a second loan while
	// the client still owes on the first one.
	ErrOutstandingLoan = fmt.Errorf("client has an existing loan: %w", ErrConflict)

	ErrNoActiveLoan       = fmt.Errorf("client has no loan: %w", ErrConflict)
	ErrPaymentExceedsLoan = fmt.Errorf("payment exceeds loan amount: %w", ErrConflict)
	ErrClientHasLoan      = fmt.Errorf("client has an active loan: %w", ErrConflict)

	ErrInvalidPayment   = fmt.Errorf("invalid payment amount: %w", ErrValidation)
	ErrNegativeStock    = fmt.Errorf("stock cannot be negative: %w", ErrValidation)
	ErrPasswordTooShort = fmt.Errorf("new password must be at least %d characters: %w", MinPasswordLength, ErrValidation)
	ErrWrongPassword    = fmt.Errorf("current password is incorrect: %w", ErrValidation)
	ErrSelfDeletion     = fmt.Errorf("cannot delete your own account: %w", ErrValidation)
)

// MinPasswordLength is the shortest password ChangePassword accepts.
const MinPasswordLength = 3

// Validationf builds a field-specific validation error that still matches
// errors.Is(err, ErrValidation).
func Validationf(format string, args ...any) error {
	return fmt.Errorf(format+": %w", append(args, ErrValidation)...)
}
