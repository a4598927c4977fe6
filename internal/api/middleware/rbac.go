package middleware

import (
	"slices"

	"github.com/labstack/echo/v4"

	"github.com/visitlink/visitation-api/internal/core/domain"
)

// RBAC admits only users whose stored role is one of allowed. It reads the
// user loaded by CurrentUser, so a role change takes effect without a new token.
func RBAC(allowed ...domain.Role) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			user, _ := c.Get(CurrentUserKey).(*domain.User)
			if user == nil || !slices.Contains(allowed, user.Role) {
				return domain.ErrForbidden
			}
			return next(c)
		}
	}
}
