package auth

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/yigit/gradebook/internal/pkg/apperrors"
)

// DefaultAccessTokenTTL is used when JWTConfig.AccessTokenExp is zero
const DefaultAccessTokenTTL = 30 * time.Minute

// TokenType is the token_type value returned by the login endpoint
const TokenType = "bearer"

// JWTConfig defines JWT configuration settings
type JWTConfig struct {
	SecretKey      string
	AccessTokenExp time.Duration
	TokenIssuer    string
}

// JWTService issues and verifies HS256 access tokens. It holds no mutable
// state after construction and is safe for concurrent use.
type JWTService struct {
	config JWTConfig
	now    func() time.Time
}

// Option configures a JWTService
type Option func(*JWTService)

// WithClock overrides the time source used for issuing and verifying tokens
func WithClock(now func() time.Time) Option {
	return func(s *JWTService) {
		s.now = now
	}
}

// NewJWTService creates a new JWT service
func NewJWTService(config JWTConfig, opts ...Option) *JWTService {
	if config.AccessTokenExp <= 0 {
		config.AccessTokenExp = DefaultAccessTokenTTL
	}
	s := &JWTService{
		config: config,
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// AccessTokenTTL returns the configured default lifetime
func (s *JWTService) AccessTokenTTL() time.Duration {
	return s.config.AccessTokenExp
}

// IssueAccessToken issues a token for subject with the configured lifetime
func (s *JWTService) IssueAccessToken(subject string) (string, error) {
	return s.Issue(subject, s.config.AccessTokenExp)
}

// Issue signs a token for subject that expires ttl from now
func (s *JWTService) Issue(subject string, ttl time.Duration) (string, error) {
	if subject == "" {
		return "", errors.New("token subject is empty")
	}

	now := s.now()
	claims := jwt.RegisteredClaims{
		Subject:   subject,
		IssuedAt:  jwt.NewNumericDate(now),
		NotBefore: jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		Issuer:    s.config.TokenIssuer,
		ID:        uuid.NewString(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(s.config.SecretKey))
	if err != nil {
		return "", fmt.Errorf("failed to sign access token: %w", err)
	}
	return signed, nil
}

// Verify checks the signature and expiry of tokenString and returns its subject.
// Expired tokens yield apperrors.ErrTokenExpired; anything else that fails
// yields apperrors.ErrTokenMalformed.
func (s *JWTService) Verify(tokenString string) (string, error) {
	if strings.TrimSpace(tokenString) == "" {
		return "", apperrors.ErrTokenMalformed
	}

	parserOpts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	}
	if s.config.TokenIssuer != "" {
		parserOpts = append(parserOpts, jwt.WithIssuer(s.config.TokenIssuer))
	}

	claims := &jwt.RegisteredClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		return []byte(s.config.SecretKey), nil
	}, parserOpts...)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return "", fmt.Errorf("%w: %v", apperrors.ErrTokenExpired, err)
		}
		return "", fmt.Errorf("%w: %v", apperrors.ErrTokenMalformed, err)
	}

	if !token.Valid || claims.Subject == "" {
		return "", apperrors.ErrTokenMalformed
	}

	return claims.Subject, nil
}

// ExtractBearerToken extracts the token from an Authorization header value.
// The scheme is matched case-insensitively.
func ExtractBearerToken(authHeader string) (string, error) {
	authHeader = strings.TrimSpace(authHeader)
	if authHeader == "" {
		return "", apperrors.ErrTokenMissing
	}

	scheme, token, found := strings.Cut(authHeader, " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return "", apperrors.ErrTokenMalformed
	}

	token = strings.TrimSpace(token)
	if token == "" {
		return "", apperrors.ErrTokenMalformed
	}
	return token, nil
}
