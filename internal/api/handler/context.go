package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/visitlink/visitation-api/internal/api/middleware"
	"github.com/visitlink/visitation-api/internal/core/domain"
)

// currentUser returns the approved user loaded by the CurrentUser middleware.
// A missing user means the route was mounted without it, so fail closed.
func currentUser(c echo.Context) (*domain.User, error) {
	u, ok := c.Get(middleware.CurrentUserKey).(*domain.User)
	if !ok || u == nil {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "missing authentication")
	}
	return u, nil
}

// bindAndValidate decodes the request body into req and runs struct validation.
func bindAndValidate(c echo.Context, req any) error {
	if err := c.Bind(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return nil
}
