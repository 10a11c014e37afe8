package common

import (
	"errors"
	"fmt"
)

// Error kinds. Callers should match them with errors.Is; every reason below
// wraps exactly one kind.
var (
	ErrorValidation       = errors.New("validation error")
	ErrorNotFound         = errors.New("not found")
	ErrorConflict         = errors.New("conflict")
	ErrorUnauthorized     = errors.New("unauthorized")
	ErrorStoreUnavailable = errors.New("store unavailable")
	ErrorInternal         = errors.New("internal error")
)

// Identity reasons.
var (
	ErrMissingCredentials = fmt.Errorf("%w: username and password are required", ErrorValidation)
	ErrWeakPassword       = fmt.Errorf("%w: password must be at least 6 characters long", ErrorValidation)
	ErrPasswordMismatch   = fmt.Errorf("%w: passwords do not match", ErrorValidation)
	ErrDuplicateUsername  = fmt.Errorf("%w: username already exists", ErrorConflict)
	ErrInvalidCredentials = fmt.Errorf("%w: invalid username or password", ErrorUnauthorized)
	ErrAccountDeactivated = fmt.Errorf("%w: account is deactivated", ErrorUnauthorized)
	ErrWrongOldPassword   = fmt.Errorf("%w: current password is incorrect", ErrorUnauthorized)
	ErrAccountNotFound    = fmt.Errorf("%w: account", ErrorNotFound)
	ErrNoSuchSession      = fmt.Errorf("%w: session", ErrorNotFound)
	// ErrSessionExpired is reported as a missing session once the expired
	// record has been removed.
	ErrSessionExpired = fmt.Errorf("%w: session expired", ErrorNotFound)
)

// Progress reasons.
var (
	ErrInvalidSessionData = fmt.Errorf("%w: invalid practice session", ErrorValidation)
	ErrChallengeNotFound  = fmt.Errorf("%w: daily challenge", ErrorNotFound)
	ErrChallengeExists    = fmt.Errorf("%w: a challenge already exists for that date", ErrorConflict)
)

// StoreError wraps a persistence failure so that it matches
// ErrorStoreUnavailable while keeping the cause inspectable.
func StoreError(op, collection string, cause error) error {
	return fmt.Errorf("%w: %s %s: %w", ErrorStoreUnavailable, op, collection, cause)
}
