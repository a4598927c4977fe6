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

// ContactService manages the directed contact graph between users.
type ContactService struct {
	contacts ports.ContactRepository
	users    ports.UserRepository
	logger   zerolog.Logger
}

func NewContactService(contacts ports.ContactRepository, users ports.UserRepository, logger zerolog.Logger) *ContactService {
	return &ContactService{contacts: contacts, users: users, logger: logger}
}

// Request opens a pending edge from requestor to contactID.
func (s *ContactService) Request(ctx context.Context, requestor *domain.User, contactID, relationship string) (*domain.Contact, error) {
	if contactID == requestor.ID {
		return nil, domain.ErrSelfContact
	}
	if _, err := s.users.FindByID(ctx, contactID); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	c := &domain.Contact{
		ID:           uuid.NewString(),
		RequestorID:  requestor.ID,
		ContactID:    contactID,
		Relationship: relationship,
		Status:       domain.ContactPending,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.contacts.Create(ctx, c); err != nil {
		return nil, fmt.Errorf("request contact: %w", err)
	}

	s.logger.Info().Str("contact_id", c.ID).Str("from", requestor.ID).Str("to", contactID).Msg("contact requested")
	return c, nil
}

// Review lets the target contact, or staff, set the status or relationship.
func (s *ContactService) Review(ctx context.Context, actor *domain.User, id string, in ports.ReviewContactInput) (*domain.Contact, error) {
	c, err := s.contacts.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !c.CanReview(actor) {
		return nil, domain.ErrForbidden
	}

	if in.Status != nil {
		st := domain.ContactStatus(*in.Status)
		if !st.Valid() {
			return nil, domain.ErrInvalidStatus
		}
		c.Status = st
	}
	if in.Relationship != nil {
		c.Relationship = *in.Relationship
	}
	c.UpdatedAt = time.Now().UTC()

	if err := s.contacts.Update(ctx, c); err != nil {
		return nil, fmt.Errorf("review contact: %w", err)
	}

	s.logger.Info().Str("contact_id", c.ID).Str("status", string(c.Status)).Str("by", actor.ID).Msg("contact reviewed")
	return c, nil
}

// ListPending returns the requests awaiting the user's review.
func (s *ContactService) ListPending(ctx context.Context, user *domain.User) ([]*domain.Contact, error) {
	return s.contacts.ListIncoming(ctx, user.ID, domain.ContactPending)
}
