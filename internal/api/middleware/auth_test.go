package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
)

func signed(t *testing.T, method jwt.SigningMethod, claims jwt.MapClaims, key any) string {
	t.Helper()
	s, err := jwt.NewWithClaims(method, claims).SignedString(key)
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return s
}

func runAuth(t *testing.T, header string) (*httptest.ResponseRecorder, echo.Context, bool) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if header != "" {
		req.Header.Set("Authorization", header)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	called := false
	handler := Auth("secret")(func(c echo.Context) error {
		called = true
		return c.NoContent(http.StatusOK)
	})
	if err := handler(c); err != nil {
		e.HTTPErrorHandler(err, c)
	}
	return rec, c, called
}

func TestAuthMiddleware_ValidToken(t *testing.T) {
	token := signed(t, jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":  "u1",
		"role": "staff",
		"exp":  time.Now().Add(time.Hour).Unix(),
	}, []byte("secret"))

	rec, c, called := runAuth(t, "Bearer "+token)
	if !called {
		t.Fatalf("next not called")
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if c.Get(UserIDKey) != "u1" {
		t.Errorf("user_id not set")
	}
	if c.Get(RoleKey) != "staff" {
		t.Errorf("role not set")
	}
}

func TestAuthMiddleware_Rejects(t *testing.T) {
	hour := time.Now().Add(time.Hour).Unix()
	tests := []struct {
		name   string
		header string
	}{
		{"missing header", ""},
		{"wrong scheme", "Token abc"},
		{"garbage token", "Bearer not-a-jwt"},
		{"wrong secret", "Bearer " + signed(t, jwt.SigningMethodHS256, jwt.MapClaims{"sub": "u1", "exp": hour}, []byte("other"))},
		{"expired", "Bearer " + signed(t, jwt.SigningMethodHS256, jwt.MapClaims{"sub": "u1", "exp": time.Now().Add(-time.Minute).Unix()}, []byte("secret"))},
		{"no subject", "Bearer " + signed(t, jwt.SigningMethodHS256, jwt.MapClaims{"email": "a@example.com", "type": "email_verification", "exp": hour}, []byte("secret"))},
		{"wrong algorithm", "Bearer " + signed(t, jwt.SigningMethodHS512, jwt.MapClaims{"sub": "u1", "exp": hour}, []byte("secret"))},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			rec, _, called := runAuth(t, tc.header)
			if called {
				t.Fatalf("next should not be called")
			}
			if rec.Code != http.StatusUnauthorized {
				t.Fatalf("expected 401, got %d", rec.Code)
			}
		})
	}
}
