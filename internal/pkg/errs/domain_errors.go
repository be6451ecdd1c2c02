package errs

import "errors"

// Sentinel errors for the booking engine's error taxonomy. Use-case code
// marks concrete errors with one of these so callers can branch without
// string matching.
var (
	// Lookup errors
	ErrSpaceNotFound       = errors.New("space not found")
	ErrReservationNotFound = errors.New("reservation not found")
	ErrAccessCodeNotFound  = errors.New("access code not found")

	// Core-state errors: abort the operation, nothing is written
	ErrValidation             = errors.New("validation failed")
	ErrAvailabilityConflict   = errors.New("space not available for the requested dates")
	ErrQuotaExceeded          = errors.New("annual reservation quota exceeded")
	ErrInvalidStateTransition = errors.New("invalid reservation state transition")

	// Side-effect errors: the state change is committed, the side effect is not
	ErrExternalIntegration = errors.New("external integration failure")
	ErrNotification        = errors.New("notification dispatch failure")

	// Operation errors
	ErrDatabaseOperationFailed = errors.New("database operation failed")
)
