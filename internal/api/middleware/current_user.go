package middleware

import (
	"context"
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/visitlink/visitation-api/internal/core/domain"
)

// CurrentUserKey holds the *domain.User loaded by CurrentUser.
const CurrentUserKey = "user"

// UserLookup is the slice of the user repository CurrentUser needs.
type UserLookup interface {
	FindByID(ctx context.Context, id string) (*domain.User, error)
}

// CurrentUser loads the token's subject and admits only approved users.
// It must run after Auth.
func CurrentUser(users UserLookup) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			id, _ := c.Get(UserIDKey).(string)
			if id == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
			}

			user, err := users.FindByID(c.Request().Context(), id)
			if errors.Is(err, domain.ErrUserNotFound) {
				return echo.NewHTTPError(http.StatusUnauthorized, "user no longer exists")
			}
			if err != nil {
				return err
			}
			if !user.Active() {
				return domain.ErrInactiveUser
			}

			c.Set(CurrentUserKey, user)
			return next(c)
		}
	}
}
