package ports

import (
	"context"

	"github.com/visitlink/visitation-api/internal/core/domain"
)

// ContactRepository defines persistence operations for the contact graph.
type ContactRepository interface {
	Create(ctx context.Context, c *domain.Contact) error
	FindByID(ctx context.Context, id string) (*domain.Contact, error)
	Update(ctx context.Context, c *domain.Contact) error
	// ListIncoming returns edges pointing at contactID in the given status.
	ListIncoming(ctx context.Context, contactID string, status domain.ContactStatus) ([]*domain.Contact, error)
}
