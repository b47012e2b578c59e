package graphql

import (
	"context"

	"github.com/staffdesk/employee-api/internal/core/domain"
)

type ctxKey int

const userKey ctxKey = iota

// WithUser returns a context carrying the authenticated user. A nil user is
// stored as-is; resolvers treat it as anonymous.
func WithUser(ctx context.Context, user *domain.User) context.Context {
	return context.WithValue(ctx, userKey, user)
}

// UserFrom extracts the authenticated user from the request context, or nil
// when the request is anonymous.
func UserFrom(ctx context.Context) *domain.User {
	user, _ := ctx.Value(userKey).(*domain.User)
	return user
}
