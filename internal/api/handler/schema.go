package handler

import (
	"time"

	"github.com/visitlink/visitation-api/internal/core/domain"
)

// errorResponse is the standard error envelope returned on all 4xx/5xx responses.
type errorResponse struct {
	Error string `json:"error"`
}

// --- Auth ---

type registerRequest struct {
	Email      string `json:"email"       validate:"required,email"`
	Name       string `json:"name"        validate:"required"`
	Password   string `json:"password"    validate:"required,min=8"`
	Role       string `json:"role"        validate:"required"`
	FacilityID string `json:"facility_id" validate:"omitempty,uuid"`
}

// loginRequest accepts JSON or an OAuth2 password form (username = email).
type loginRequest struct {
	Email    string `json:"email"    form:"username" validate:"required"`
	Password string `json:"password" form:"password" validate:"required"`
}

type userResponse struct {
	User *domain.User `json:"user"`
}

type loginResponse struct {
	AccessToken string       `json:"access_token"`
	TokenType   string       `json:"token_type"`
	User        *domain.User `json:"user"`
}

// --- Calls ---

// createCallRequest mirrors the scheduling form. creator_id and room_name
// are accepted for compatibility but ignored: the creator is the caller and
// the room name is always generated.
type createCallRequest struct {
	CreatorID         string    `json:"creator_id,omitempty"`
	RoomName          string    `json:"room_name,omitempty"`
	ScheduledStart    time.Time `json:"scheduled_start"    validate:"required"`
	ScheduledDuration int       `json:"scheduled_duration" validate:"required,gt=0"`
	MaxParticipants   int       `json:"max_participants"   validate:"required,gt=0"`
	ParticipantIDs    []string  `json:"participant_ids"    validate:"dive,required"`
	RecordingEnabled  bool      `json:"recording_enabled"`
}

type createCallResponse struct {
	*domain.VideoCall
	Token string `json:"token"`
}

type joinCallResponse struct {
	RoomName         string `json:"room_name"`
	RecordingEnabled bool   `json:"recording_enabled"`
	Duration         int    `json:"duration"`
	Token            string `json:"token"`
}

type tokenResponse struct {
	Token string `json:"token"`
}

// --- Registration wizard ---

type registrationStartRequest struct {
	Email    string `json:"email"     validate:"required,email"`
	UserType string `json:"user_type" validate:"required"`
}

type registrationStartResponse struct {
	RegistrationID    string    `json:"registrationId"`
	VerificationToken string    `json:"verificationToken"`
	ExpiresAt         time.Time `json:"expiresAt"`
}

type verifyEmailRequest struct {
	Email string `json:"email" validate:"required,email"`
	Token string `json:"token" validate:"required"`
}

type verifyEmailResponse struct {
	Verified bool `json:"verified"`
}

type personalInfoRequest struct {
	Name    string `json:"name"    validate:"required"`
	Phone   string `json:"phone,omitempty"`
	Address string `json:"address,omitempty"`
}

type verifyIdentityRequest struct {
	IDType   string `json:"id_type"   validate:"required"`
	IDNumber string `json:"id_number" validate:"required"`
	IDExpiry string `json:"id_expiry" validate:"required"`
	IDImage  string `json:"id_image"  validate:"required"`
}

type relationshipsRequest struct {
	Contacts      []string `json:"contacts"      validate:"required,dive,uuid"`
	Relationships []string `json:"relationships" validate:"required"`
}

type stepResponse struct {
	Status string `json:"status"`
}

// --- Users ---

type setUserStatusRequest struct {
	Status string `json:"status" validate:"required"`
}

// --- Facilities ---

type createFacilityRequest struct {
	Name     string                   `json:"name" validate:"required"`
	Settings *domain.FacilitySettings `json:"settings,omitempty"`
}

type updateFacilityRequest struct {
	Name     *string                  `json:"name,omitempty"`
	Settings *domain.FacilitySettings `json:"settings,omitempty"`
}

// --- Contacts ---

type contactRequest struct {
	ContactID    string `json:"contact_id"   validate:"required"`
	Relationship string `json:"relationship" validate:"required"`
}

type reviewContactRequest struct {
	Status       *string `json:"status,omitempty"`
	Relationship *string `json:"relationship,omitempty"`
}
