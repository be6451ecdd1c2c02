//go:build unit || e2e

package builder

import (
	"time"

	"space-booking/internal/domain/accesscode"

	"github.com/google/uuid"
)

// NewAccessCode returns an active code valid through the default stay.
func NewAccessCode(code string) *accesscode.AccessCode {
	return accesscode.Reconstruct(
		uuid.New(), uuid.New(), uuid.New(),
		code,
		accesscode.StatusActive,
		time.Date(2026, 3, 17, 23, 59, 59, 0, time.UTC),
		nil, nil, nil,
		time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC),
	)
}
