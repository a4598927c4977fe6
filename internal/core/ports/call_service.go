package ports

import (
	"context"
	"time"

	"github.com/visitlink/visitation-api/internal/core/domain"
)

// CreateCallInput carries the scheduling request for a new call.
type CreateCallInput struct {
	ScheduledStart    time.Time
	ScheduledDuration int // minutes
	MaxParticipants   int
	ParticipantIDs    []string
	RecordingEnabled  bool
}

// CreateCallResult is the persisted call plus the creator's join token.
type CreateCallResult struct {
	Call  *domain.VideoCall
	Token string
}

// JoinCallResult is what a participant needs to enter the room.
type JoinCallResult struct {
	RoomName         string
	RecordingEnabled bool
	Duration         int
	Token            string
}

// CallService is the video-call lifecycle manager.
type CallService interface {
	Create(ctx context.Context, creator *domain.User, in CreateCallInput) (*CreateCallResult, error)
	Join(ctx context.Context, user *domain.User, callID string) (*JoinCallResult, error)
	IssueToken(ctx context.Context, user *domain.User, room, targetUserID string) (string, error)
	ListScheduled(ctx context.Context, user *domain.User) ([]*domain.VideoCall, error)
}
