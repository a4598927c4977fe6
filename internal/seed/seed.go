// Package seed loads facilities and test accounts from YAML fixtures into
// the primary store. Applying the same fixtures twice is a no-op.
package seed

import (
	"context"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"
	"gopkg.in/yaml.v3"

	"github.com/visitlink/visitation-api/internal/core/domain"
	"github.com/visitlink/visitation-api/internal/core/ports"
)

//go:embed fixtures.yaml
var defaultFixtures []byte

// Fixtures is the document shape of a seed file.
type Fixtures struct {
	Facilities []FacilityFixture `yaml:"facilities"`
	Users      []UserFixture     `yaml:"users"`
}

// FacilityFixture describes a facility. Settings, when present, are laid
// over the default settings so a fixture only lists what differs.
type FacilityFixture struct {
	Name     string    `yaml:"name"`
	Settings yaml.Node `yaml:"settings"`
}

func (f FacilityFixture) settings() (domain.FacilitySettings, error) {
	settings := domain.DefaultFacilitySettings()
	if f.Settings.IsZero() {
		return settings, nil
	}
	if err := f.Settings.Decode(&settings); err != nil {
		return settings, fmt.Errorf("facility %q settings: %w", f.Name, err)
	}
	return settings, nil
}

// UserFixture describes an approved account. Facility refers to a facility
// by name, either from the same file or already stored.
type UserFixture struct {
	Email    string `yaml:"email"`
	Name     string `yaml:"name"`
	Role     string `yaml:"role"`
	Facility string `yaml:"facility"`
	Password string `yaml:"password"`
}

// Result counts what Apply wrote and skipped.
type Result struct {
	FacilitiesCreated int
	FacilitiesSkipped int
	UsersCreated      int
	UsersSkipped      int
}

// Default returns the fixtures bundled with the binary.
func Default() (*Fixtures, error) {
	return Parse(strings.NewReader(string(defaultFixtures)))
}

// Parse decodes and validates a fixtures document.
func Parse(r io.Reader) (*Fixtures, error) {
	var f Fixtures
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("parse fixtures: %w", err)
	}
	if err := f.validate(); err != nil {
		return nil, err
	}
	return &f, nil
}

func (f *Fixtures) validate() error {
	for i, fac := range f.Facilities {
		if strings.TrimSpace(fac.Name) == "" {
			return fmt.Errorf("facility %d: name is required", i)
		}
		if _, err := fac.settings(); err != nil {
			return err
		}
	}
	for i, u := range f.Users {
		if u.Email == "" || u.Password == "" {
			return fmt.Errorf("user %d: email and password are required", i)
		}
		if !domain.Role(u.Role).Valid() {
			return fmt.Errorf("user %s: %w %q", u.Email, domain.ErrInvalidRole, u.Role)
		}
	}
	return nil
}

// Seeder writes fixtures through the repositories.
type Seeder struct {
	facilities ports.FacilityRepository
	users      ports.UserRepository
	hashCost   int
	logger     zerolog.Logger
}

func NewSeeder(facilities ports.FacilityRepository, users ports.UserRepository, logger zerolog.Logger) *Seeder {
	return &Seeder{
		facilities: facilities,
		users:      users,
		hashCost:   bcrypt.DefaultCost,
		logger:     logger,
	}
}

// Apply creates every facility and user in f that does not exist yet.
// Facilities are matched by name and users by email.
func (s *Seeder) Apply(ctx context.Context, f *Fixtures) (Result, error) {
	var res Result
	now := time.Now().UTC()

	for _, fx := range f.Facilities {
		name := strings.TrimSpace(fx.Name)
		_, err := s.facilities.FindByName(ctx, name)
		switch {
		case err == nil:
			res.FacilitiesSkipped++
			continue
		case !errors.Is(err, domain.ErrFacilityNotFound):
			return res, fmt.Errorf("seed facility %q: %w", name, err)
		}

		settings, err := fx.settings()
		if err != nil {
			return res, err
		}
		fac := &domain.Facility{
			ID:        uuid.NewString(),
			Name:      name,
			Settings:  settings,
			CreatedAt: now,
			UpdatedAt: now,
		}
		if err := s.facilities.Create(ctx, fac); err != nil {
			return res, fmt.Errorf("seed facility %q: %w", name, err)
		}
		res.FacilitiesCreated++
		s.logger.Info().Str("facility_id", fac.ID).Str("name", name).Msg("facility seeded")
	}

	for _, ux := range f.Users {
		email := strings.ToLower(strings.TrimSpace(ux.Email))
		_, err := s.users.FindByEmail(ctx, email)
		switch {
		case err == nil:
			res.UsersSkipped++
			s.logger.Debug().Str("email", email).Msg("user exists, skipping")
			continue
		case !errors.Is(err, domain.ErrUserNotFound):
			return res, fmt.Errorf("seed user %s: %w", email, err)
		}

		var facilityID string
		if ux.Facility != "" {
			fac, err := s.facilities.FindByName(ctx, ux.Facility)
			if err != nil {
				return res, fmt.Errorf("seed user %s: facility %q: %w", email, ux.Facility, err)
			}
			facilityID = fac.ID
		}

		hash, err := bcrypt.GenerateFromPassword([]byte(ux.Password), s.hashCost)
		if err != nil {
			return res, fmt.Errorf("seed user %s: hash password: %w", email, err)
		}

		user := &domain.User{
			ID:           uuid.NewString(),
			Email:        email,
			Name:         ux.Name,
			PasswordHash: string(hash),
			Role:         domain.Role(ux.Role),
			Status:       domain.UserApproved,
			FacilityID:   facilityID,
			CreatedAt:    now,
			UpdatedAt:    now,
		}
		if _, err := s.users.Create(ctx, user); err != nil {
			return res, fmt.Errorf("seed user %s: %w", email, err)
		}
		res.UsersCreated++
		s.logger.Info().Str("user_id", user.ID).Str("role", ux.Role).Msg("user seeded")
	}

	return res, nil
}
