package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/visitlink/visitation-api/internal/core/domain"
	"github.com/visitlink/visitation-api/internal/core/ports"
)

type stubRegistrationService struct {
	startFn  func(ctx context.Context, email, userType string) (*ports.RegistrationStarted, error)
	verifyFn func(ctx context.Context, email, token string) error
}

func (s *stubRegistrationService) Start(ctx context.Context, email, userType string) (*ports.RegistrationStarted, error) {
	return s.startFn(ctx, email, userType)
}

func (s *stubRegistrationService) VerifyEmail(ctx context.Context, email, token string) error {
	return s.verifyFn(ctx, email, token)
}

func TestRegistrationHandler_Start(t *testing.T) {
	expires := time.Date(2026, 3, 2, 15, 0, 0, 0, time.UTC)
	stub := &stubRegistrationService{
		startFn: func(_ context.Context, email, userType string) (*ports.RegistrationStarted, error) {
			if email != "a@example.com" || userType != "resident" {
				t.Fatalf("unexpected args %s %s", email, userType)
			}
			return &ports.RegistrationStarted{RegistrationID: "r1", VerificationToken: "vt", ExpiresAt: expires}, nil
		},
	}
	c, rec := newContext(http.MethodPost, "/api/registration/start", `{"email":"a@example.com","user_type":"resident"}`, nil)

	if err := NewRegistrationHandler(stub).Start(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["registrationId"] != "r1" || resp["verificationToken"] != "vt" || resp["expiresAt"] != "2026-03-02T15:00:00Z" {
		t.Fatalf("unexpected response: %v", resp)
	}
}

func TestRegistrationHandler_Start_EmailRegistered(t *testing.T) {
	stub := &stubRegistrationService{
		startFn: func(context.Context, string, string) (*ports.RegistrationStarted, error) {
			return nil, domain.ErrEmailRegistered
		},
	}
	c, _ := newContext(http.MethodPost, "/api/registration/start", `{"email":"a@example.com","user_type":"resident"}`, nil)

	if err := NewRegistrationHandler(stub).Start(c); !errors.Is(err, domain.ErrEmailRegistered) {
		t.Fatalf("expected ErrEmailRegistered, got %v", err)
	}
}

func TestRegistrationHandler_VerifyEmail(t *testing.T) {
	stub := &stubRegistrationService{
		verifyFn: func(_ context.Context, email, token string) error {
			if token != "good" {
				return domain.ErrInvalidVerificationToken
			}
			return nil
		},
	}

	c, rec := newContext(http.MethodPost, "/api/registration/verify-email", `{"email":"a@example.com","token":"good"}`, nil)
	if err := NewRegistrationHandler(stub).VerifyEmail(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Body.String() != "{\"verified\":true}\n" {
		t.Fatalf("unexpected body %q", rec.Body.String())
	}

	c, _ = newContext(http.MethodPost, "/api/registration/verify-email", `{"email":"a@example.com","token":"bad"}`, nil)
	if err := NewRegistrationHandler(stub).VerifyEmail(c); !errors.Is(err, domain.ErrInvalidVerificationToken) {
		t.Fatalf("expected ErrInvalidVerificationToken, got %v", err)
	}
}

type registrationStep func(*RegistrationHandler, echo.Context) error

func TestRegistrationHandler_Steps(t *testing.T) {
	h := NewRegistrationHandler(&stubRegistrationService{})

	tests := []struct {
		name   string
		step   registrationStep
		body   string
		wantOK bool
	}{
		{"personal info", (*RegistrationHandler).PersonalInfo, `{"name":"Ann","phone":"555"}`, true},
		{"identity", (*RegistrationHandler).VerifyIdentity, `{"id_type":"passport","id_number":"X1","id_expiry":"2030-01-01","id_image":"base64"}`, true},
		{"relationships", (*RegistrationHandler).Relationships, `{"contacts":["44444444-4444-4444-8444-444444444444"],"relationships":["sibling"]}`, true},
		{"personal info without name", (*RegistrationHandler).PersonalInfo, `{"phone":"555"}`, false},
		{"identity without number", (*RegistrationHandler).VerifyIdentity, `{"id_type":"passport","id_expiry":"2030-01-01","id_image":"x"}`, false},
		{"relationships with bad id", (*RegistrationHandler).Relationships, `{"contacts":["bob"],"relationships":["sibling"]}`, false},
		{"relationships length mismatch", (*RegistrationHandler).Relationships, `{"contacts":["44444444-4444-4444-8444-444444444444"],"relationships":[]}`, false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			c, rec := newContext(http.MethodPost, "/", tc.body, nil)
			err := tc.step(h, c)
			if !tc.wantOK {
				assertHTTPError(t, err, http.StatusBadRequest)
				return
			}
			if err != nil {
				t.Fatalf("expected success, got %v", err)
			}
			if rec.Body.String() != "{\"status\":\"success\"}\n" {
				t.Fatalf("unexpected body %q", rec.Body.String())
			}
		})
	}
}
