package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/visitlink/visitation-api/internal/core/domain"
	"github.com/visitlink/visitation-api/internal/core/ports"
)

const defaultCallTokenTTL = 2 * time.Hour

// CallService owns the video-call lifecycle: scheduling, joining and
// issuing provider tokens to authorised participants.
type CallService struct {
	calls    ports.CallRepository
	users    ports.UserRepository
	tokens   ports.TokenProvider
	tokenTTL time.Duration
	logger   zerolog.Logger
}

func NewCallService(
	calls ports.CallRepository,
	users ports.UserRepository,
	tokens ports.TokenProvider,
	tokenTTL time.Duration,
	logger zerolog.Logger,
) *CallService {
	if tokenTTL <= 0 {
		tokenTTL = defaultCallTokenTTL
	}
	return &CallService{
		calls:    calls,
		users:    users,
		tokens:   tokens,
		tokenTTL: tokenTTL,
		logger:   logger,
	}
}

// Create schedules a new call. Nothing is persisted unless every participant
// resolves to an existing user.
func (s *CallService) Create(ctx context.Context, creator *domain.User, in ports.CreateCallInput) (*ports.CreateCallResult, error) {
	participants, err := domain.NormalizeParticipantIDs(in.ParticipantIDs)
	if err != nil {
		return nil, err
	}

	found, err := s.users.CountByIDs(ctx, participants)
	if err != nil {
		return nil, fmt.Errorf("create call: resolve participants: %w", err)
	}
	if found != len(participants) {
		return nil, fmt.Errorf("%w: %d of %d not found", domain.ErrInvalidParticipants, len(participants)-found, len(participants))
	}

	now := time.Now().UTC()
	call := &domain.VideoCall{
		ID:                uuid.NewString(),
		CreatorID:         creator.ID,
		RoomName:          domain.NewRoomName(),
		Status:            domain.CallScheduled,
		ScheduledStart:    in.ScheduledStart.UTC(),
		ScheduledDuration: in.ScheduledDuration,
		MaxParticipants:   in.MaxParticipants,
		ParticipantIDs:    participants,
		RecordingEnabled:  domain.RecordingAllowed(in.RecordingEnabled, creator.Role),
		RecordingStatus:   domain.RecordingInactive,
		CreatedAt:         now,
		UpdatedAt:         now,
	}

	if err := s.calls.Create(ctx, call); err != nil {
		s.logger.Error().Err(err).Str("creator_id", creator.ID).Msg("failed to create call")
		return nil, fmt.Errorf("create call: %w", err)
	}

	token, err := s.tokens.Generate(call.RoomName, creator.ID, s.tokenTTL)
	if err != nil {
		return nil, fmt.Errorf("create call: issue token: %w", err)
	}

	s.logger.Info().
		Str("call_id", call.ID).
		Str("room", call.RoomName).
		Str("creator_id", creator.ID).
		Int("participants", len(participants)).
		Bool("recording", call.RecordingEnabled).
		Msg("call scheduled")

	return &ports.CreateCallResult{Call: call, Token: token}, nil
}

// Join admits a participant (or any staff member) to a scheduled or active
// call, activating it on the first join.
func (s *CallService) Join(ctx context.Context, user *domain.User, callID string) (*ports.JoinCallResult, error) {
	call, err := s.calls.FindByID(ctx, callID)
	if err != nil {
		return nil, err
	}

	if !call.CanAccess(user) {
		return nil, domain.ErrForbidden
	}

	if !call.Status.Joinable() {
		return nil, fmt.Errorf("%w: cannot join call with status %s", domain.ErrInvalidCallState, call.Status)
	}

	if call.Status == domain.CallScheduled {
		if err := s.calls.Activate(ctx, call.ID); err != nil {
			return nil, fmt.Errorf("join call: activate: %w", err)
		}
		s.logger.Info().Str("call_id", call.ID).Str("user_id", user.ID).Msg("call activated")
	}

	token, err := s.tokens.Generate(call.RoomName, user.ID, s.tokenTTL)
	if err != nil {
		return nil, fmt.Errorf("join call: issue token: %w", err)
	}

	return &ports.JoinCallResult{
		RoomName:         call.RoomName,
		RecordingEnabled: call.RecordingEnabled,
		Duration:         call.ScheduledDuration,
		Token:            token,
	}, nil
}

// IssueToken returns a fresh token for a room the user already knows about.
// A user may only request a token for themself.
func (s *CallService) IssueToken(ctx context.Context, user *domain.User, room, targetUserID string) (string, error) {
	if user.ID != targetUserID {
		return "", domain.ErrForbidden
	}

	call, err := s.calls.FindByRoomName(ctx, room)
	if err != nil {
		return "", err
	}

	if !call.CanAccess(user) {
		return "", domain.ErrForbidden
	}

	token, err := s.tokens.Generate(call.RoomName, user.ID, s.tokenTTL)
	if err != nil {
		return "", fmt.Errorf("issue token: %w", err)
	}
	return token, nil
}

// ListScheduled returns every scheduled call for staff, and only the calls
// listing the user as a participant for everyone else.
func (s *CallService) ListScheduled(ctx context.Context, user *domain.User) ([]*domain.VideoCall, error) {
	participant := user.ID
	if user.IsStaff() {
		participant = ""
	}

	calls, err := s.calls.ListByStatus(ctx, domain.CallScheduled, participant)
	if err != nil {
		return nil, fmt.Errorf("list scheduled calls: %w", err)
	}
	return calls, nil
}
