package ports

import (
	"context"

	"github.com/visitlink/visitation-api/internal/core/domain"
)

// UserService exposes the identity store and the approval workflow.
type UserService interface {
	Get(ctx context.Context, id string) (*domain.User, error)
	List(ctx context.Context, actor *domain.User, status string) ([]*domain.User, error)
	SetStatus(ctx context.Context, actor *domain.User, id, status string) (*domain.User, error)
}
