package ports

import (
	"context"

	"github.com/visitlink/visitation-api/internal/core/domain"
)

// UserRepository defines persistence operations for the identity store.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	// CountByIDs returns how many of the given ids belong to existing users.
	CountByIDs(ctx context.Context, ids []string) (int, error)
	// List returns users, optionally filtered by status (empty = all).
	List(ctx context.Context, status domain.UserStatus) ([]*domain.User, error)
	UpdateStatus(ctx context.Context, id string, status domain.UserStatus) (*domain.User, error)
}
