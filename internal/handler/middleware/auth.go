package middleware

import (
	"log/slog"
	"net/http"
	"strings"

	"space-booking/internal/pkg/config"
	"space-booking/internal/usecase/shared"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const ctxActorKey = "actor"

type AuthMiddleware struct {
	secret []byte
}

func NewAuthMiddleware(cfg config.AuthConfig) *AuthMiddleware {
	return &AuthMiddleware{secret: []byte(cfg.JWTSecret)}
}

type actorClaims struct {
	UnitID string `json:"unit_id"`
	Name   string `json:"name"`
	Role   string `json:"role"`
	jwt.RegisteredClaims
}

func (m *AuthMiddleware) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if !strings.HasPrefix(authHeader, "Bearer ") {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Access token required"})
			c.Abort()
			return
		}
		token := strings.TrimSpace(authHeader[len("Bearer "):])

		actor, err := m.parseActor(token)
		if err != nil {
			slog.Warn("token validation failed", "error", err.Error())
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token"})
			c.Abort()
			return
		}

		c.Set(ctxActorKey, actor)
		c.Next()
	}
}

// RequirePrivileged restricts a route to owners, board members and admins.
func (m *AuthMiddleware) RequirePrivileged() gin.HandlerFunc {
	return func(c *gin.Context) {
		actor, ok := GetActor(c)
		if !ok {
			// Should be used after RequireAuth()
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
			c.Abort()
			return
		}
		if !actor.Privileged() {
			c.JSON(http.StatusForbidden, gin.H{"error": "Insufficient permissions"})
			c.Abort()
			return
		}
		c.Next()
	}
}

func (m *AuthMiddleware) parseActor(token string) (shared.Actor, error) {
	var claims actorClaims
	parsed, err := jwt.ParseWithClaims(token, &claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return m.secret, nil
	})
	if err != nil {
		return shared.Actor{}, err
	}
	if !parsed.Valid {
		return shared.Actor{}, jwt.ErrTokenUnverifiable
	}

	userID, err := uuid.Parse(claims.Subject)
	if err != nil {
		return shared.Actor{}, err
	}
	unitID, err := uuid.Parse(claims.UnitID)
	if err != nil {
		return shared.Actor{}, err
	}

	role := shared.Role(claims.Role)
	if !role.IsValid() {
		role = shared.RoleTenant
	}

	return shared.Actor{
		UserID: userID,
		UnitID: unitID,
		Name:   claims.Name,
		Role:   role,
	}, nil
}

func GetActor(c *gin.Context) (shared.Actor, bool) {
	value, exists := c.Get(ctxActorKey)
	if !exists {
		return shared.Actor{}, false
	}
	actor, ok := value.(shared.Actor)
	return actor, ok
}
