package ports

import (
	"context"

	"github.com/visitlink/visitation-api/internal/core/domain"
)

// FacilityRepository defines persistence operations for facilities.
type FacilityRepository interface {
	Create(ctx context.Context, f *domain.Facility) error
	FindByID(ctx context.Context, id string) (*domain.Facility, error)
	FindByName(ctx context.Context, name string) (*domain.Facility, error)
	Update(ctx context.Context, f *domain.Facility) error
}
