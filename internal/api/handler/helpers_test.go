package handler

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/visitlink/visitation-api/internal/api/middleware"
	"github.com/visitlink/visitation-api/internal/core/domain"
)

var (
	testResident = &domain.User{ID: "11111111-1111-4111-8111-111111111111", Role: domain.RoleResident, Status: domain.UserApproved}
	testStaff    = &domain.User{ID: "33333333-3333-4333-8333-333333333333", Role: domain.RoleStaff, Status: domain.UserApproved}
)

// newContext builds an echo context with the validator installed and, when
// user is non-nil, the authenticated user set as CurrentUser would.
func newContext(method, target, body string, user *domain.User) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	e.Validator = NewValidator()

	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if user != nil {
		c.Set(middleware.CurrentUserKey, user)
	}
	return c, rec
}

// assertHTTPError checks that err is an echo.HTTPError with the given code.
func assertHTTPError(t *testing.T, err error, code int) {
	t.Helper()
	var he *echo.HTTPError
	if !errors.As(err, &he) {
		t.Fatalf("expected echo.HTTPError %d, got %v", code, err)
	}
	if he.Code != code {
		t.Fatalf("expected status %d, got %d (%v)", code, he.Code, he.Message)
	}
}
