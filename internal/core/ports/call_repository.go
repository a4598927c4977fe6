package ports

import (
	"context"

	"github.com/visitlink/visitation-api/internal/core/domain"
)

// CallRepository defines persistence operations for video calls.
type CallRepository interface {
	Create(ctx context.Context, call *domain.VideoCall) error
	FindByID(ctx context.Context, id string) (*domain.VideoCall, error)
	FindByRoomName(ctx context.Context, room string) (*domain.VideoCall, error)
	// Activate moves a scheduled call to active in a single conditional
	// update. Calling it on an already active call is a no-op.
	Activate(ctx context.Context, id string) error
	// ListByStatus returns calls in the given status. When participantID is
	// non-empty only calls listing that participant are returned.
	ListByStatus(ctx context.Context, status domain.CallStatus, participantID string) ([]*domain.VideoCall, error)
}
