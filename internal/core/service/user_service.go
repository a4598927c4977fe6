package service

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/visitlink/visitation-api/internal/core/domain"
	"github.com/visitlink/visitation-api/internal/core/ports"
)

// UserService exposes user lookups and the staff approval workflow.
type UserService struct {
	repo   ports.UserRepository
	logger zerolog.Logger
}

func NewUserService(repo ports.UserRepository, logger zerolog.Logger) *UserService {
	return &UserService{repo: repo, logger: logger}
}

func (s *UserService) Get(ctx context.Context, id string) (*domain.User, error) {
	return s.repo.FindByID(ctx, id)
}

// List returns users filtered by status. Staff only.
func (s *UserService) List(ctx context.Context, actor *domain.User, status string) ([]*domain.User, error) {
	if !actor.IsStaff() {
		return nil, domain.ErrForbidden
	}
	st := domain.UserStatus(status)
	if status != "" && !st.Valid() {
		return nil, domain.ErrInvalidStatus
	}
	return s.repo.List(ctx, st)
}

// SetStatus approves or rejects an account. Staff only.
func (s *UserService) SetStatus(ctx context.Context, actor *domain.User, id, status string) (*domain.User, error) {
	if !actor.IsStaff() {
		return nil, domain.ErrForbidden
	}
	st := domain.UserStatus(status)
	if !st.Valid() {
		return nil, domain.ErrInvalidStatus
	}

	user, err := s.repo.UpdateStatus(ctx, id, st)
	if err != nil {
		return nil, err
	}

	s.logger.Info().Str("user_id", id).Str("status", status).Str("by", actor.ID).Msg("user status changed")
	return user, nil
}
