package domain

import (
	"fmt"
	"slices"
	"time"

	"github.com/google/uuid"
)

// CallStatus represents the lifecycle state of a video call.
type CallStatus string

const (
	CallScheduled CallStatus = "scheduled"
	CallActive    CallStatus = "active"
	CallCompleted CallStatus = "completed"
	CallCancelled CallStatus = "cancelled"
)

// callTransitions defines the allowed state machine transitions.
// completed and cancelled are terminal.
var callTransitions = map[CallStatus][]CallStatus{
	CallScheduled: {CallActive, CallCancelled},
	CallActive:    {CallCompleted},
}

func (s CallStatus) Valid() bool {
	switch s {
	case CallScheduled, CallActive, CallCompleted, CallCancelled:
		return true
	}
	return false
}

// CanTransitionTo reports whether a transition from s to next is valid.
func (s CallStatus) CanTransitionTo(next CallStatus) bool {
	return slices.Contains(callTransitions[s], next)
}

// Joinable reports whether participants may still enter a call in this state.
func (s CallStatus) Joinable() bool {
	return s == CallScheduled || s == CallActive
}

// RecordingStatus tracks the provider-side recording of a call.
type RecordingStatus string

const (
	RecordingInactive  RecordingStatus = "inactive"
	RecordingActive    RecordingStatus = "active"
	RecordingPaused    RecordingStatus = "paused"
	RecordingCompleted RecordingStatus = "completed"
)

// RoomPrefix is prepended to every generated room name.
const RoomPrefix = "call-"

// VideoCall is the aggregate root of the call lifecycle.
type VideoCall struct {
	ID                string          `json:"id" bson:"_id"`
	CreatorID         string          `json:"creator_id" bson:"creator_id"`
	RoomName          string          `json:"room_name" bson:"room_name"`
	Status            CallStatus      `json:"status" bson:"status"`
	ScheduledStart    time.Time       `json:"scheduled_start" bson:"scheduled_start"`
	ScheduledDuration int             `json:"scheduled_duration" bson:"scheduled_duration"`
	MaxParticipants   int             `json:"max_participants" bson:"max_participants"`
	ParticipantIDs    []string        `json:"participant_ids" bson:"participant_ids"`
	RecordingEnabled  bool            `json:"recording_enabled" bson:"recording_enabled"`
	RecordingStatus   RecordingStatus `json:"recording_status" bson:"recording_status"`
	CreatedAt         time.Time       `json:"created_at" bson:"created_at"`
	UpdatedAt         time.Time       `json:"updated_at" bson:"updated_at"`
}

// HasParticipant reports whether userID is on the call's participant list.
func (c *VideoCall) HasParticipant(userID string) bool {
	return slices.Contains(c.ParticipantIDs, userID)
}

// CanAccess reports whether u may join the call or obtain a token for it.
func (c *VideoCall) CanAccess(u *User) bool {
	return u.IsStaff() || c.HasParticipant(u.ID)
}

// RecordingAllowed applies the confidentiality rule for legal calls:
// nothing created by an attorney is ever recorded.
func RecordingAllowed(requested bool, creatorRole Role) bool {
	return requested && creatorRole != RoleAttorney
}

// NewRoomName returns a collision-free room name.
func NewRoomName() string {
	return RoomPrefix + uuid.NewString()
}

// NormalizeParticipantIDs parses every id as a UUID and returns the canonical
// lowercase form, preserving order. Malformed or repeated ids are rejected
// with ErrInvalidParticipants.
func NormalizeParticipantIDs(ids []string) ([]string, error) {
	out := make([]string, 0, len(ids))
	seen := make(map[string]struct{}, len(ids))
	for _, raw := range ids {
		id, err := uuid.Parse(raw)
		if err != nil {
			return nil, fmt.Errorf("%w: %q is not a valid id", ErrInvalidParticipants, raw)
		}
		s := id.String()
		if _, dup := seen[s]; dup {
			return nil, fmt.Errorf("%w: %s listed twice", ErrInvalidParticipants, s)
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}
	return out, nil
}
