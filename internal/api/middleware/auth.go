package middleware

import (
	"strings"

	"github.com/labstack/echo/v4"

	apigraphql "github.com/staffdesk/employee-api/internal/api/graphql"
	"github.com/staffdesk/employee-api/internal/core/ports"
	"github.com/staffdesk/employee-api/internal/core/service"
)

// Identity resolves the caller from the Authorization header and stores the
// user in the request context. It deliberately never fails the request: a
// missing header, malformed token, expired token or unknown user id all
// leave the request anonymous and let the per-operation guards decide what
// anonymous callers may do.
func Identity(tokens *service.TokenIssuer, users ports.UserRepository) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token := bearerToken(c.Request().Header.Get("Authorization"))
			if token == "" {
				return next(c)
			}

			userID, err := tokens.Verify(token)
			if err != nil {
				return next(c)
			}

			user, err := users.FindByID(c.Request().Context(), userID)
			if err != nil {
				return next(c)
			}

			ctx := apigraphql.WithUser(c.Request().Context(), user)
			c.SetRequest(c.Request().WithContext(ctx))
			return next(c)
		}
	}
}

func bearerToken(header string) string {
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}
