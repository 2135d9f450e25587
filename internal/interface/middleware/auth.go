package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"github.com/khalilbouhlel1/threadly-api/pkg/helpers"
	"github.com/khalilbouhlel1/threadly-api/pkg/response"
)

const (
	CtxUserIDKey  = "userID"
	CtxIsAdminKey = "isAdmin"
)

// Auth validates the Authorization bearer token and injects identity and the
// admin flag into the Gin context. Missing, malformed, and expired tokens
// are all authentication failures (401); role checks live in RequireAdmin.
func Auth(jwtm *helpers.JWTManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" || !strings.HasPrefix(header, "Bearer ") {
			response.AbortFail(c, http.StatusUnauthorized, "no authentication token, access denied", nil)
			return
		}
		token := strings.TrimPrefix(header, "Bearer ")

		claims, err := jwtm.Parse(token)
		if err != nil {
			msg := "token verification failed"
			if errors.Is(err, jwt.ErrTokenExpired) {
				msg = "token has expired, please login again"
			}
			response.AbortFail(c, http.StatusUnauthorized, msg, nil)
			return
		}

		c.Set(CtxUserIDKey, claims.UserID)
		c.Set(CtxIsAdminKey, claims.IsAdmin)
		c.Next()
	}
}

// RequireAdmin rejects authenticated requests whose token lacks the admin
// role claim. Authorization failure is distinct from authentication failure.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !c.GetBool(CtxIsAdminKey) {
			response.AbortFail(c, http.StatusForbidden, "access denied, admin privileges required", nil)
			return
		}
		c.Next()
	}
}
