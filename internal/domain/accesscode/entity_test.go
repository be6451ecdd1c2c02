//go:build unit

package accesscode_test

import (
	"strings"
	"testing"
	"time"

	"space-booking/internal/domain/accesscode"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var now = time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

func newCode(t *testing.T, stayEnd time.Time) *accesscode.AccessCode {
	t.Helper()
	code, err := accesscode.NewAccessCode(uuid.New(), uuid.New(), stayEnd, now)
	require.NoError(t, err)
	return code
}

func TestNewAccessCode(t *testing.T) {
	code := newCode(t, time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC))

	assert.Len(t, code.Code(), 6)
	for _, ch := range code.Code() {
		assert.True(t, strings.ContainsRune("0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ", ch),
			"unexpected character %q", ch)
	}
	assert.True(t, code.IsActive())
	assert.Equal(t, time.Date(2026, 3, 15, 23, 59, 59, 0, time.UTC), code.ValidUntil())
}

func TestValidUntilFloor(t *testing.T) {
	// Stay already ended: the code still gets an hour of validity.
	code := newCode(t, time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC))
	assert.Equal(t, now.Add(time.Hour), code.ValidUntil())
}

func TestIsValidAt(t *testing.T) {
	code := newCode(t, time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC))

	assert.True(t, code.IsValidAt(now))
	assert.True(t, code.IsValidAt(code.ValidUntil()))
	assert.False(t, code.IsValidAt(code.ValidUntil().Add(time.Second)))

	code.Deactivate()
	assert.False(t, code.IsValidAt(now))
}

func TestRegenerate(t *testing.T) {
	code := newCode(t, time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC))
	before := code.Code()
	require.Nil(t, code.RegeneratedBy())
	require.Nil(t, code.RegeneratedAt())

	rotatedAt := now.Add(2 * time.Hour)
	old, err := code.Regenerate("Alice Tenant", rotatedAt)
	require.NoError(t, err)

	assert.Equal(t, before, old)
	assert.Len(t, code.Code(), 6)
	assert.True(t, code.IsActive())
	require.NotNil(t, code.RegeneratedBy())
	require.NotNil(t, code.RegeneratedAt())
	assert.Equal(t, "Alice Tenant", *code.RegeneratedBy())
	assert.Equal(t, rotatedAt, *code.RegeneratedAt())
}

func TestAttachDevice(t *testing.T) {
	code := newCode(t, time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC))
	require.Nil(t, code.DeviceRef())

	code.AttachDevice("lock-42")

	require.NotNil(t, code.DeviceRef())
	assert.Equal(t, "lock-42", *code.DeviceRef())
}
