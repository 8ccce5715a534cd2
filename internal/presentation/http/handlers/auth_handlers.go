package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/hamatunited-sudo/Hamatunited/internal/application/services"
	"github.com/hamatunited-sudo/Hamatunited/internal/infrastructure/observability/logging"
	"github.com/hamatunited-sudo/Hamatunited/internal/infrastructure/observability/performance"
	"github.com/hamatunited-sudo/Hamatunited/internal/presentation/http/middleware"
	"github.com/hamatunited-sudo/Hamatunited/pkg/config"
)

// AuthHandlers handles admin session endpoints
type AuthHandlers struct {
	authService *services.AuthService
	logger      *logging.ChanneledLogger
	perfTracker *performance.Tracker
}

// NewAuthHandlers creates a new auth handlers instance
func NewAuthHandlers(authService *services.AuthService, logger *logging.ChanneledLogger, perfTracker *performance.Tracker) *AuthHandlers {
	return &AuthHandlers{
		authService: authService,
		logger:      logger,
		perfTracker: perfTracker,
	}
}

// PostLogin handles POST /api/auth/login
func (h *AuthHandlers) PostLogin(c *gin.Context) {
	marker := h.perfTracker.StartOperation("post_login_request")
	defer marker.Complete()
	h.logger.Auth().Debug("Received login request", "method", c.Request.Method, "path", c.Request.URL.Path)

	var loginReq struct {
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&loginReq); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "Password is required"})
		return
	}

	result, err := h.authService.AuthenticateAdmin(loginReq.Password)
	if err != nil {
		marker.SetError(err)
		c.JSON(http.StatusUnauthorized, gin.H{"ok": false, "error": "Invalid credentials"})
		return
	}

	c.SetCookie(middleware.SessionCookieName, result.Token, config.SessionMaxAge, "/", "", false, true)

	marker.SetSuccess(true)
	c.JSON(http.StatusOK, result)
}

// GetStatus handles GET /api/auth/status
func (h *AuthHandlers) GetStatus(c *gin.Context) {
	marker := h.perfTracker.StartOperation("get_auth_status_request")
	defer marker.Complete()

	token := ""
	if header := c.GetHeader("Authorization"); strings.HasPrefix(header, "Bearer ") {
		token = strings.TrimPrefix(header, "Bearer ")
	}
	if token == "" {
		token, _ = c.Cookie(middleware.SessionCookieName)
	}

	marker.SetSuccess(true)
	c.JSON(http.StatusOK, gin.H{"authenticated": h.authService.ValidateAdminToken(token)})
}

// PostLogout handles POST /api/auth/logout
func (h *AuthHandlers) PostLogout(c *gin.Context) {
	marker := h.perfTracker.StartOperation("post_logout_request")
	defer marker.Complete()

	// Clear the session cookie by setting it to expired
	c.SetCookie(middleware.SessionCookieName, "", -1, "/", "", false, true)

	marker.SetSuccess(true)
	c.JSON(http.StatusOK, gin.H{"ok": true})
}
