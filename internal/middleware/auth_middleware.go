package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yigit/gradebook/internal/app/models/dto"
	"github.com/yigit/gradebook/internal/pkg/apperrors"
	"github.com/yigit/gradebook/internal/pkg/auth"
	"github.com/yigit/gradebook/internal/pkg/logger"
)

// ContextKeyUsername is the gin context key holding the authenticated subject
const ContextKeyUsername = "username"

// credentialsErrorMessage is the only message a rejected request ever sees
const credentialsErrorMessage = "Could not validate credentials"

// AuthMiddleware gates routes behind a valid bearer access token. It does not
// touch the store.
type AuthMiddleware struct {
	jwtService *auth.JWTService
}

// NewAuthMiddleware creates a new AuthMiddleware
func NewAuthMiddleware(jwtService *auth.JWTService) *AuthMiddleware {
	return &AuthMiddleware{
		jwtService: jwtService,
	}
}

// Authorize returns the subject of the bearer token carried by r. Errors are
// apperrors.ErrTokenMissing, ErrTokenMalformed or ErrTokenExpired.
func (m *AuthMiddleware) Authorize(r *http.Request) (string, error) {
	token, err := auth.ExtractBearerToken(r.Header.Get("Authorization"))
	if err != nil {
		return "", err
	}
	return m.jwtService.Verify(token)
}

// JWTAuth middleware for JWT token validation
func (m *AuthMiddleware) JWTAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		subject, err := m.Authorize(c.Request)
		if err != nil {
			event := logger.Debug()
			if !errors.Is(err, apperrors.ErrTokenMissing) {
				event = logger.Warn()
			}
			event.Err(err).
				Str("path", c.Request.URL.Path).
				Str("clientIP", c.ClientIP()).
				Msg("Rejected request credentials")

			AbortUnauthorized(c)
			return
		}

		c.Set(ContextKeyUsername, subject)
		c.Next()
	}
}

// AbortUnauthorized writes the uniform 401 response
func AbortUnauthorized(c *gin.Context) {
	c.Header("WWW-Authenticate", "Bearer")
	errorDetail := dto.NewErrorDetail(dto.ErrorCodeUnauthorized, credentialsErrorMessage)
	c.AbortWithStatusJSON(http.StatusUnauthorized, dto.NewErrorResponse(errorDetail))
}

// CurrentUsername returns the subject stored by JWTAuth
func CurrentUsername(c *gin.Context) (string, bool) {
	v, ok := c.Get(ContextKeyUsername)
	if !ok {
		return "", false
	}
	username, ok := v.(string)
	return username, ok
}
