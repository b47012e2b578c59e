package ports

import (
	"context"

	"github.com/staffdesk/employee-api/internal/core/domain"
)

// UserRepository defines the interface for user account persistence.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
	// FindActiveByEmail only matches accounts whose active flag is set;
	// deactivated accounts cannot log in.
	FindActiveByEmail(ctx context.Context, email string) (*domain.User, error)
	ExistsByEmailOrUsername(ctx context.Context, email, username string) (bool, error)
}
