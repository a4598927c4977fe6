package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/visitlink/visitation-api/internal/core/domain"
	"github.com/visitlink/visitation-api/internal/core/ports"
)

const emailVerificationType = "email_verification"

// RegistrationService drives the first steps of the sign-up wizard: it
// issues and checks email verification tokens and tracks the session.
type RegistrationService struct {
	users    ports.UserRepository
	sessions ports.RegistrationStore
	secret   []byte
	ttl      time.Duration
	logger   zerolog.Logger
}

func NewRegistrationService(
	users ports.UserRepository,
	sessions ports.RegistrationStore,
	secret string,
	ttl time.Duration,
	logger zerolog.Logger,
) *RegistrationService {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &RegistrationService{
		users:    users,
		sessions: sessions,
		secret:   []byte(secret),
		ttl:      ttl,
		logger:   logger,
	}
}

// Start opens a registration for an unregistered email address.
func (s *RegistrationService) Start(ctx context.Context, email, userType string) (*ports.RegistrationStarted, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	role := domain.Role(userType)
	if !role.SelfRegistrable() {
		return nil, domain.ErrInvalidRole
	}

	_, err := s.users.FindByEmail(ctx, email)
	switch {
	case err == nil:
		return nil, domain.ErrEmailRegistered
	case !errors.Is(err, domain.ErrUserNotFound):
		return nil, fmt.Errorf("registration start: %w", err)
	}

	expiresAt := time.Now().UTC().Add(s.ttl)
	token, err := s.verificationToken(email, expiresAt)
	if err != nil {
		return nil, fmt.Errorf("registration start: sign token: %w", err)
	}

	reg := &domain.Registration{
		ID:        uuid.NewString(),
		Email:     email,
		UserType:  role,
		ExpiresAt: expiresAt,
	}
	if err := s.sessions.Save(ctx, reg, s.ttl); err != nil {
		return nil, fmt.Errorf("registration start: save session: %w", err)
	}

	s.logger.Info().Str("registration_id", reg.ID).Str("user_type", userType).Msg("registration started")

	return &ports.RegistrationStarted{
		RegistrationID:    reg.ID,
		VerificationToken: token,
		ExpiresAt:         expiresAt,
	}, nil
}

// VerifyEmail checks a verification token against the address it was issued for.
func (s *RegistrationService) VerifyEmail(ctx context.Context, email, token string) error {
	email = strings.ToLower(strings.TrimSpace(email))

	claims := jwt.MapClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return s.secret, nil
	})
	if err != nil || !parsed.Valid {
		return domain.ErrInvalidVerificationToken
	}
	if claims["type"] != emailVerificationType || claims["email"] != email {
		return domain.ErrInvalidVerificationToken
	}

	if err := s.sessions.MarkVerified(ctx, email); err != nil {
		s.logger.Warn().Err(err).Msg("failed to mark registration verified")
	}
	return nil
}

func (s *RegistrationService) verificationToken(email string, expiresAt time.Time) (string, error) {
	claims := jwt.MapClaims{
		"email": email,
		"type":  emailVerificationType,
		"exp":   expiresAt.Unix(),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
}
