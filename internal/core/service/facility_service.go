package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/visitlink/visitation-api/internal/core/domain"
	"github.com/visitlink/visitation-api/internal/core/ports"
)

// FacilityService manages facility records and their configuration.
// Every mutation is restricted to staff.
type FacilityService struct {
	repo   ports.FacilityRepository
	logger zerolog.Logger
}

func NewFacilityService(repo ports.FacilityRepository, logger zerolog.Logger) *FacilityService {
	return &FacilityService{repo: repo, logger: logger}
}

func (s *FacilityService) Create(ctx context.Context, actor *domain.User, name string, settings *domain.FacilitySettings) (*domain.Facility, error) {
	if !actor.IsStaff() {
		return nil, domain.ErrForbidden
	}

	name = strings.TrimSpace(name)
	if err := s.ensureNameFree(ctx, name, ""); err != nil {
		return nil, err
	}

	cfg := domain.DefaultFacilitySettings()
	if settings != nil {
		cfg = *settings
	}

	now := time.Now().UTC()
	f := &domain.Facility{
		ID:        uuid.NewString(),
		Name:      name,
		Settings:  cfg,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.repo.Create(ctx, f); err != nil {
		return nil, fmt.Errorf("create facility: %w", err)
	}

	s.logger.Info().Str("facility_id", f.ID).Str("name", f.Name).Msg("facility created")
	return f, nil
}

func (s *FacilityService) Get(ctx context.Context, id string) (*domain.Facility, error) {
	return s.repo.FindByID(ctx, id)
}

// Update applies a partial update to a facility's name and/or settings.
func (s *FacilityService) Update(ctx context.Context, actor *domain.User, id string, in ports.UpdateFacilityInput) (*domain.Facility, error) {
	if !actor.IsStaff() {
		return nil, domain.ErrForbidden
	}

	f, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		if name != f.Name {
			if err := s.ensureNameFree(ctx, name, f.ID); err != nil {
				return nil, err
			}
			f.Name = name
		}
	}
	if in.Settings != nil {
		f.Settings = *in.Settings
	}
	f.UpdatedAt = time.Now().UTC()

	if err := s.repo.Update(ctx, f); err != nil {
		return nil, fmt.Errorf("update facility: %w", err)
	}

	s.logger.Info().Str("facility_id", f.ID).Str("by", actor.ID).Msg("facility settings updated")
	return f, nil
}

func (s *FacilityService) ensureNameFree(ctx context.Context, name, selfID string) error {
	existing, err := s.repo.FindByName(ctx, name)
	switch {
	case errors.Is(err, domain.ErrFacilityNotFound):
		return nil
	case err != nil:
		return fmt.Errorf("lookup facility name: %w", err)
	case existing.ID != selfID:
		return domain.ErrFacilityExists
	}
	return nil
}
