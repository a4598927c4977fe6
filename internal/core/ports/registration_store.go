package ports

import (
	"context"
	"time"

	"github.com/visitlink/visitation-api/internal/core/domain"
)

// RegistrationStore keeps sign-up sessions until they expire.
type RegistrationStore interface {
	Save(ctx context.Context, reg *domain.Registration, ttl time.Duration) error
	Get(ctx context.Context, id string) (*domain.Registration, error)
	// MarkVerified flags every open registration for email as verified.
	MarkVerified(ctx context.Context, email string) error
}
