package ports

import (
	"context"

	"github.com/visitlink/visitation-api/internal/core/domain"
)

// ReviewContactInput is a partial update of a contact edge.
type ReviewContactInput struct {
	Status       *string
	Relationship *string
}

type ContactService interface {
	Request(ctx context.Context, requestor *domain.User, contactID, relationship string) (*domain.Contact, error)
	Review(ctx context.Context, actor *domain.User, id string, in ReviewContactInput) (*domain.Contact, error)
	ListPending(ctx context.Context, user *domain.User) ([]*domain.Contact, error)
}
