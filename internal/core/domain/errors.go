package domain

import "errors"

// Call lifecycle errors.
var (
	ErrInvalidParticipants = errors.New("invalid participant ids")
	ErrCallNotFound        = errors.New("call not found")
	ErrInvalidCallState    = errors.New("invalid call state")
	ErrForbidden           = errors.New("access forbidden")
)

// Identity errors.
var (
	ErrUserNotFound       = errors.New("user not found")
	ErrUserExists         = errors.New("user already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInactiveUser       = errors.New("user is not active")
	ErrInvalidRole        = errors.New("invalid role")
	ErrInvalidStatus      = errors.New("invalid status")
)

// Registration errors.
var (
	ErrEmailRegistered          = errors.New("email already registered")
	ErrInvalidVerificationToken = errors.New("invalid verification token")
	ErrRegistrationNotFound     = errors.New("registration not found")
)

// Facility and contact errors.
var (
	ErrFacilityNotFound = errors.New("facility not found")
	ErrFacilityExists   = errors.New("facility already exists")
	ErrContactNotFound  = errors.New("contact not found")
	ErrSelfContact      = errors.New("cannot add yourself as a contact")
)
