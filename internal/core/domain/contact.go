package domain

import "time"

// ContactStatus is the review state of a contact request.
type ContactStatus string

const (
	ContactPending  ContactStatus = "pending"
	ContactApproved ContactStatus = "approved"
	ContactRejected ContactStatus = "rejected"
)

func (s ContactStatus) Valid() bool {
	switch s {
	case ContactPending, ContactApproved, ContactRejected:
		return true
	}
	return false
}

// Contact is a directed relationship edge from RequestorID to ContactID.
// Only the target contact (or staff) may review it.
type Contact struct {
	ID           string        `json:"id" bson:"_id"`
	RequestorID  string        `json:"requestor_id" bson:"requestor_id"`
	ContactID    string        `json:"contact_id" bson:"contact_id"`
	Relationship string        `json:"relationship" bson:"relationship"`
	Status       ContactStatus `json:"status" bson:"status"`
	CreatedAt    time.Time     `json:"created_at" bson:"created_at"`
	UpdatedAt    time.Time     `json:"updated_at" bson:"updated_at"`
}

// CanReview reports whether u may approve, reject or relabel the contact.
func (c *Contact) CanReview(u *User) bool {
	return u.IsStaff() || c.ContactID == u.ID
}
