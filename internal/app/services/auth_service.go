package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/rs/zerolog"
	"github.com/yigit/gradebook/internal/app/models"
	"github.com/yigit/gradebook/internal/app/models/dto"
	"github.com/yigit/gradebook/internal/app/repositories"
	"github.com/yigit/gradebook/internal/pkg/apperrors"
	"github.com/yigit/gradebook/internal/pkg/auth"
)

// AuthService handles registration and login
type AuthService struct {
	userRepo   repositories.IUserRepository
	hasher     *auth.PasswordHasher
	jwtService *auth.JWTService
	logger     zerolog.Logger

	// dummyHash stands in for the stored hash of unknown usernames
	dummyOnce sync.Once
	dummyHash string
}

// NewAuthService creates a new AuthService
func NewAuthService(
	userRepo repositories.IUserRepository,
	hasher *auth.PasswordHasher,
	jwtService *auth.JWTService,
	logger zerolog.Logger,
) *AuthService {
	return &AuthService{
		userRepo:   userRepo,
		hasher:     hasher,
		jwtService: jwtService,
		logger:     logger,
	}
}

// Register creates an active user with a hashed password. The username
// pre-check only saves a bcrypt round; the unique constraints decide.
func (s *AuthService) Register(ctx context.Context, req *dto.RegisterRequest) (*models.User, error) {
	username := strings.TrimSpace(req.Username)
	email := strings.TrimSpace(req.Email)
	if username == "" {
		return nil, apperrors.NewValidationError("username cannot be empty")
	}

	exists, err := s.userRepo.UsernameExists(ctx, username)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, apperrors.ErrUsernameTaken
	}

	hashed, err := s.hasher.Hash(req.Password)
	if err != nil {
		if errors.Is(err, auth.ErrPasswordTooLong) {
			return nil, apperrors.NewValidationError("password must be at most 72 bytes")
		}
		return nil, fmt.Errorf("register: %w", err)
	}

	user := &models.User{
		Username:       username,
		Email:          email,
		HashedPassword: hashed,
		IsActive:       true,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	s.logger.Info().Int64("userID", user.ID).Str("username", user.Username).Msg("User registered")
	return user, nil
}

// Login verifies the password and issues an access token for the username.
// Unknown user and wrong password both yield ErrInvalidCredentials.
func (s *AuthService) Login(ctx context.Context, req *dto.LoginRequest) (*dto.TokenResponse, error) {
	user, err := s.userRepo.GetByUsername(ctx, req.Username)
	if err != nil {
		if errors.Is(err, apperrors.ErrUserNotFound) {
			s.hasher.Verify(req.Password, s.fallbackHash())
			s.logger.Debug().Str("username", req.Username).Msg("Login failed: unknown user")
			return nil, apperrors.ErrInvalidCredentials
		}
		return nil, err
	}

	if !s.hasher.Verify(req.Password, user.HashedPassword) {
		s.logger.Debug().Str("username", req.Username).Msg("Login failed: wrong password")
		return nil, apperrors.ErrInvalidCredentials
	}

	token, err := s.jwtService.IssueAccessToken(user.Username)
	if err != nil {
		return nil, fmt.Errorf("issuing access token: %w", err)
	}

	return &dto.TokenResponse{
		AccessToken: token,
		TokenType:   auth.TokenType,
	}, nil
}

func (s *AuthService) fallbackHash() string {
	s.dummyOnce.Do(func() {
		h, err := s.hasher.Hash("gradebook-dummy-password")
		if err != nil {
			s.logger.Warn().Err(err).Msg("Failed to prepare dummy password hash")
			return
		}
		s.dummyHash = h
	})
	return s.dummyHash
}
