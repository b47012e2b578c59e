package service

import (
	"github.com/staffdesk/employee-api/internal/core/domain"
)

// The guard functions are pure checks run before any repository call. A nil
// user means the request carried no usable credentials.

// RequireAuthenticated fails when the caller is anonymous.
func RequireAuthenticated(user *domain.User) (*domain.User, error) {
	if user == nil {
		return nil, domain.ErrAuthRequired
	}
	return user, nil
}

// RequireAdmin fails unless the caller is an authenticated admin.
func RequireAdmin(user *domain.User) (*domain.User, error) {
	if _, err := RequireAuthenticated(user); err != nil {
		return nil, err
	}
	if user.Role != domain.RoleAdmin {
		return nil, domain.ErrAdminRequired
	}
	return user, nil
}

// RequireOwnerOrAdmin fails unless the caller is an admin or owns the
// resource. Admins bypass ownership entirely.
func RequireOwnerOrAdmin(user *domain.User, ownerID string) (*domain.User, error) {
	if _, err := RequireAuthenticated(user); err != nil {
		return nil, err
	}
	if user.Role != domain.RoleAdmin && user.ID != ownerID {
		return nil, domain.ErrForbidden
	}
	return user, nil
}
