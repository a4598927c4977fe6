package ports

import (
	"context"

	"github.com/visitlink/visitation-api/internal/core/domain"
)

// RegisterInput carries the fields needed to create a pending account.
type RegisterInput struct {
	Email      string
	Name       string
	Password   string
	Role       string
	FacilityID string
}

type AuthService interface {
	Register(ctx context.Context, in RegisterInput) (*domain.User, error)
	Login(ctx context.Context, email, password string) (string, *domain.User, error)
}
