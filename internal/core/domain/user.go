package domain

import "time"

// Role identifies what kind of actor a user is inside a facility.
type Role string

const (
	RoleResident Role = "resident"
	RoleVisitor  Role = "visitor"
	RoleAttorney Role = "attorney"
	RoleStaff    Role = "staff"
)

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleResident, RoleVisitor, RoleAttorney, RoleStaff:
		return true
	}
	return false
}

// SelfRegistrable reports whether a user may sign up with this role.
// Staff accounts are provisioned out of band.
func (r Role) SelfRegistrable() bool {
	return r.Valid() && r != RoleStaff
}

// UserStatus tracks where a user is in the approval workflow.
type UserStatus string

const (
	UserPending  UserStatus = "pending"
	UserApproved UserStatus = "approved"
	UserRejected UserStatus = "rejected"
)

func (s UserStatus) Valid() bool {
	switch s {
	case UserPending, UserApproved, UserRejected:
		return true
	}
	return false
}

// User models an authenticated actor in the system.
type User struct {
	ID           string     `json:"id"`
	Email        string     `json:"email"`
	Name         string     `json:"name"`
	PasswordHash string     `json:"-"`
	Role         Role       `json:"role"`
	Status       UserStatus `json:"status"`
	FacilityID   string     `json:"facility_id,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

// IsStaff reports whether the user has facility-wide privileges.
func (u *User) IsStaff() bool {
	return u.Role == RoleStaff
}

// Active reports whether the user has been approved and may use the API.
func (u *User) Active() bool {
	return u.Status == UserApproved
}
