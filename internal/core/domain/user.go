package domain

import (
	"errors"
	"time"
)

const (
	RoleAdmin    = "admin"
	RoleEmployee = "employee"
)

var ErrUserExists = errors.New("user with this email or username already exists")
var ErrUserNotFound = errors.New("user not found")
var ErrInvalidCredentials = errors.New("invalid credentials")
var ErrTooManyAttempts = errors.New("too many failed login attempts")

var ErrAuthRequired = errors.New("authentication required")
var ErrAdminRequired = errors.New("admin access required")
var ErrForbidden = errors.New("unauthorized")

// ValidRole reports whether role is one of the two stored role values.
func ValidRole(role string) bool {
	return role == RoleAdmin || role == RoleEmployee
}

// User models an authenticated actor. The password is held only as a bcrypt
// hash and is never serialised.
type User struct {
	ID           string    `json:"id"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Role         string    `json:"role"`
	IsActive     bool      `json:"is_active"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// IsAdmin reports whether the user carries the admin role.
func (u *User) IsAdmin() bool {
	return u != nil && u.Role == RoleAdmin
}
