package services

import (
	"crypto/subtle"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"golang.org/x/crypto/bcrypt"

	"github.com/hamatunited-sudo/Hamatunited/internal/infrastructure/observability/logging"
	"github.com/hamatunited-sudo/Hamatunited/pkg/config"
)

// AuthResult is returned on a successful admin login.
type AuthResult struct {
	Token     string `json:"token"`
	ExpiresIn int    `json:"expiresIn"`
}

// AuthService gates every mutating endpoint. Two credentials are
// accepted: the shared admin key header, or a session token issued by
// password login. An unset credential never matches, so a server
// without ADMIN_API_KEY simply rejects all writes.
type AuthService struct {
	logger *logging.ChanneledLogger
}

func NewAuthService(logger *logging.ChanneledLogger) *AuthService {
	return &AuthService{logger: logger}
}

// VerifyAdminKey reports whether key matches the configured shared key.
func (a *AuthService) VerifyAdminKey(key string) bool {
	if config.AdminAPIKey == "" || key == "" {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(key), []byte(config.AdminAPIKey)) == 1
}

// AuthenticateAdmin checks the password against the configured bcrypt
// hash and issues a session token.
func (a *AuthService) AuthenticateAdmin(password string) (*AuthResult, error) {
	if config.AdminPasswordHash == "" {
		return nil, fmt.Errorf("admin login is not configured")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(config.AdminPasswordHash), []byte(password)); err != nil {
		a.logger.Auth().Warn("Admin login rejected")
		return nil, fmt.Errorf("invalid credentials")
	}

	now := time.Now()
	claims := jwt.MapClaims{
		"role": "admin",
		"iat":  now.Unix(),
		"exp":  now.Add(time.Duration(config.SessionMaxAge) * time.Second).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(config.JWTSecret))
	if err != nil {
		return nil, fmt.Errorf("failed to sign session token: %w", err)
	}

	a.logger.Auth().Info("Admin login succeeded")
	return &AuthResult{Token: signed, ExpiresIn: config.SessionMaxAge}, nil
}

// ValidateAdminToken verifies a session token and its admin role claim.
func (a *AuthService) ValidateAdminToken(tokenString string) bool {
	if tokenString == "" || config.JWTSecret == "" {
		return false
	}
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return []byte(config.JWTSecret), nil
	})
	if err != nil || !token.Valid {
		return false
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return false
	}
	role, _ := claims["role"].(string)
	return role == "admin"
}
