package ports

import (
	"context"

	"github.com/staffdesk/employee-api/internal/core/domain"
)

// AuthPayload is returned on successful registration or login.
type AuthPayload struct {
	Token string
	User  *domain.User
}

// AuthService defines registration and login.
type AuthService interface {
	Register(ctx context.Context, username, email, password, role string) (*AuthPayload, error)
	Login(ctx context.Context, email, password string) (*AuthPayload, error)
}

// LoginThrottle limits repeated failed logins per key (normalised email).
// Implementations must fail open: availability problems in the backing store
// should never block a legitimate login.
type LoginThrottle interface {
	Allow(ctx context.Context, key string) bool
	RecordFailure(ctx context.Context, key string)
	Reset(ctx context.Context, key string)
}
