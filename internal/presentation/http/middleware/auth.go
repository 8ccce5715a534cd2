package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/hamatunited-sudo/Hamatunited/internal/application/services"
)

// SessionCookieName carries the admin session token between requests.
const SessionCookieName = "admin_auth"

// AdminRequired rejects requests that carry neither a valid shared
// admin key nor a valid session token. When no admin key is configured
// every mutating request is rejected.
func AdminRequired(auth *services.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		if auth.VerifyAdminKey(c.GetHeader("x-admin-key")) {
			c.Next()
			return
		}

		token := bearerToken(c.GetHeader("Authorization"))
		if token == "" {
			token, _ = c.Cookie(SessionCookieName)
		}
		if auth.ValidateAdminToken(token) {
			c.Next()
			return
		}

		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"ok": false, "error": "Unauthorized"})
	}
}

func bearerToken(header string) string {
	if strings.HasPrefix(header, "Bearer ") {
		return strings.TrimPrefix(header, "Bearer ")
	}
	return ""
}
