package middlewares

import (
	"crypto/subtle"
	"errors"
	"net/http"
	"os"
	"strings"

	"sigorta_portal/internal/domain/entities"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

const (
	ctxUserIDKey = "auth_user_id"
	ctxRoleKey   = "auth_role"
)

// RequireAuth validates the Bearer token issued by the identity platform and
// resolves it to an Actor. Tokens are HS256 with the shared JWT_SECRET; the
// role claim carries one of agent/staff/admin.
//
// Authorization decisions (ownership, staff-only transitions) do NOT live
// here: this middleware only answers "who is calling", the use cases answer
// "may they".
func RequireAuth() gin.HandlerFunc {
	secret := []byte(os.Getenv("JWT_SECRET"))

	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		tokenStr, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || strings.TrimSpace(tokenStr) == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing bearer token"})
			return
		}

		claims := jwt.MapClaims{}
		_, err := jwt.ParseWithClaims(strings.TrimSpace(tokenStr), claims, func(t *jwt.Token) (interface{}, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, errors.New("unexpected signing method")
			}
			return secret, nil
		})
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			return
		}

		sub, _ := claims["sub"].(string)
		roleStr, _ := claims["role"].(string)
		role := entities.Role(roleStr)
		if sub == "" || !role.Valid() {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "token missing identity claims"})
			return
		}

		SetActor(c, entities.Actor{UserID: sub, Role: role})
		c.Next()
	}
}

// SetActor stores the resolved identity on the request context. RequireAuth
// calls it after token validation; handler tests call it directly.
func SetActor(c *gin.Context, actor entities.Actor) {
	c.Set(ctxUserIDKey, actor.UserID)
	c.Set(ctxRoleKey, actor.Role)
}

// ActorFromContext returns the identity RequireAuth resolved for this request.
func ActorFromContext(c *gin.Context) (entities.Actor, bool) {
	userID, ok := c.Get(ctxUserIDKey)
	if !ok {
		return entities.Actor{}, false
	}
	role, ok := c.Get(ctxRoleKey)
	if !ok {
		return entities.Actor{}, false
	}
	return entities.Actor{UserID: userID.(string), Role: role.(entities.Role)}, true
}

// RequireInternalToken gates scheduler-only endpoints (the retention sweep)
// behind the shared INTERNAL_API_TOKEN. These calls come from outside the
// user-facing auth flow, so they do not carry a user JWT.
func RequireInternalToken() gin.HandlerFunc {
	token := os.Getenv("INTERNAL_API_TOKEN")

	return func(c *gin.Context) {
		if token == "" {
			c.AbortWithStatusJSON(http.StatusServiceUnavailable, gin.H{"error": "internal endpoints disabled"})
			return
		}
		provided := c.GetHeader("X-Internal-Token")
		if subtle.ConstantTimeCompare([]byte(provided), []byte(token)) != 1 {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid internal token"})
			return
		}
		c.Next()
	}
}
