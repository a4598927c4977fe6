package ports

import (
	"context"
	"time"
)

// RegistrationStarted is returned when a sign-up wizard begins.
type RegistrationStarted struct {
	RegistrationID    string
	VerificationToken string
	ExpiresAt         time.Time
}

type RegistrationService interface {
	Start(ctx context.Context, email, userType string) (*RegistrationStarted, error)
	VerifyEmail(ctx context.Context, email, token string) error
}
