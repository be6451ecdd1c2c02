//go:build unit || e2e

package authtest

import (
	"testing"
	"time"

	"space-booking/internal/usecase/shared"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"
)

// SignActorToken mints a token the auth middleware accepts for the given
// actor.
func SignActorToken(t *testing.T, secret string, actor shared.Actor) string {
	t.Helper()
	return signToken(t, secret, actor, time.Now().Add(time.Hour))
}

func SignExpiredToken(t *testing.T, secret string, actor shared.Actor) string {
	t.Helper()
	return signToken(t, secret, actor, time.Now().Add(-time.Minute))
}

func signToken(t *testing.T, secret string, actor shared.Actor, expiresAt time.Time) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":     actor.UserID.String(),
		"unit_id": actor.UnitID.String(),
		"name":    actor.Name,
		"role":    string(actor.Role),
		"exp":     expiresAt.Unix(),
	})
	signed, err := token.SignedString([]byte(secret))
	require.NoError(t, err)
	return signed
}
