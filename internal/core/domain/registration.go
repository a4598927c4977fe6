package domain

import "time"

// Registration is the short-lived state of a sign-up wizard.
type Registration struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	UserType  Role      `json:"user_type"`
	Verified  bool      `json:"verified"`
	ExpiresAt time.Time `json:"expires_at"`
}
