package errs

import "fmt"

// CodedError carries a stable machine-readable code, a human message and a
// structured variables map so clients can render a precise message without
// parsing strings.
type CodedError struct {
	Code      string
	Message   string
	Variables map[string]any
	sentinel  error
}

func NewCoded(code, message string, sentinel error, variables map[string]any) *CodedError {
	return &CodedError{
		Code:      code,
		Message:   message,
		Variables: variables,
		sentinel:  sentinel,
	}
}

func (e *CodedError) Error() string {
	if len(e.Variables) == 0 {
		return fmt.Sprintf("%s: %s", e.Code, e.Message)
	}
	return fmt.Sprintf("%s: %s %v", e.Code, e.Message, e.Variables)
}

// Unwrap exposes the taxonomy sentinel (ErrValidation, ErrQuotaExceeded, ...)
// so errors.Is works on coded errors.
func (e *CodedError) Unwrap() error {
	return e.sentinel
}

// Stable error codes surfaced to clients.
const (
	CodeSpaceNotFound          = "SPACE_NOT_FOUND"
	CodeSpaceInactive          = "SPACE_INACTIVE"
	CodeSpaceNotAvailable      = "SPACE_NOT_AVAILABLE"
	CodeDurationTooShort       = "SPACE_DURATION_TOO_SHORT"
	CodeDurationTooLong        = "SPACE_DURATION_TOO_LONG"
	CodeInvalidDateRange       = "INVALID_DATE_RANGE"
	CodeStartDateInPast        = "START_DATE_IN_PAST"
	CodeAnnualQuotaExceeded    = "SPACE_ANNUAL_QUOTA_EXCEEDED"
	CodeReservationNotFound    = "RESERVATION_NOT_FOUND"
	CodeInvalidTransition      = "RESERVATION_INVALID_TRANSITION"
	CodePaymentIntentFailed    = "PAYMENT_INTENT_FAILED"
	CodeAccessCodeUnavailable  = "ACCESS_CODE_UNAVAILABLE"
	CodeExternalServiceFailure = "EXTERNAL_SERVICE_FAILURE"
)
