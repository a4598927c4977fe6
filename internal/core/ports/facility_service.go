package ports

import (
	"context"

	"github.com/visitlink/visitation-api/internal/core/domain"
)

// UpdateFacilityInput is a partial update; nil fields are left untouched.
type UpdateFacilityInput struct {
	Name     *string
	Settings *domain.FacilitySettings
}

type FacilityService interface {
	Create(ctx context.Context, actor *domain.User, name string, settings *domain.FacilitySettings) (*domain.Facility, error)
	Get(ctx context.Context, id string) (*domain.Facility, error)
	Update(ctx context.Context, actor *domain.User, id string, in UpdateFacilityInput) (*domain.Facility, error)
}
