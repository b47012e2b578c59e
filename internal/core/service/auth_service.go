package service

import (
	"context"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/staffdesk/employee-api/internal/core/domain"
	"github.com/staffdesk/employee-api/internal/core/ports"
)

// AuthService implements registration and login.
type AuthService struct {
	users    ports.UserRepository
	tokens   *TokenIssuer
	throttle ports.LoginThrottle // optional, nil disables throttling
	logger   zerolog.Logger
}

func NewAuthService(users ports.UserRepository, tokens *TokenIssuer, throttle ports.LoginThrottle, logger zerolog.Logger) *AuthService {
	return &AuthService{users: users, tokens: tokens, throttle: throttle, logger: logger}
}

// Register creates a new account and returns a session token alongside it.
// Role defaults to employee when empty.
func (s *AuthService) Register(ctx context.Context, username, email, password, role string) (*ports.AuthPayload, error) {
	if role == "" {
		role = domain.RoleEmployee
	}
	if username == "" || email == "" || password == "" || !domain.ValidRole(role) {
		return nil, domain.ErrInvalidCredentials
	}
	email = strings.ToLower(strings.TrimSpace(email))

	// Pre-check for a friendlier error; the unique indexes on email and
	// username remain the authoritative enforcement under concurrency.
	exists, err := s.users.ExistsByEmailOrUsername(ctx, email, username)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, domain.ErrUserExists
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	created, err := s.users.Create(ctx, &domain.User{
		Username:     username,
		Email:        email,
		PasswordHash: string(hash),
		Role:         role,
		IsActive:     true,
		CreatedAt:    now,
		UpdatedAt:    now,
	})
	if err != nil {
		return nil, err
	}

	token, err := s.tokens.Issue(created.ID)
	if err != nil {
		return nil, err
	}

	s.logger.Info().Str("user_id", created.ID).Str("role", created.Role).Msg("user registered")
	return &ports.AuthPayload{Token: token, User: created}, nil
}

// Login authenticates by email and password. Unknown email, deactivated
// account and wrong password all yield the same ErrInvalidCredentials so the
// response reveals nothing about which check failed.
func (s *AuthService) Login(ctx context.Context, email, password string) (*ports.AuthPayload, error) {
	if email == "" || password == "" {
		return nil, domain.ErrInvalidCredentials
	}
	email = strings.ToLower(strings.TrimSpace(email))

	if s.throttle != nil && !s.throttle.Allow(ctx, email) {
		return nil, domain.ErrTooManyAttempts
	}

	user, err := s.users.FindActiveByEmail(ctx, email)
	if err != nil {
		if err == domain.ErrUserNotFound {
			s.recordFailure(ctx, email)
			return nil, domain.ErrInvalidCredentials
		}
		return nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		s.recordFailure(ctx, email)
		return nil, domain.ErrInvalidCredentials
	}

	if s.throttle != nil {
		s.throttle.Reset(ctx, email)
	}

	token, err := s.tokens.Issue(user.ID)
	if err != nil {
		return nil, err
	}

	s.logger.Info().Str("user_id", user.ID).Msg("user logged in")
	return &ports.AuthPayload{Token: token, User: user}, nil
}

func (s *AuthService) recordFailure(ctx context.Context, email string) {
	if s.throttle != nil {
		s.throttle.RecordFailure(ctx, email)
	}
}
