package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"testing"

	"github.com/visitlink/visitation-api/internal/core/domain"
	"github.com/visitlink/visitation-api/internal/core/ports"
)

// ---------------------------------------------------------------------------
// Users
// ---------------------------------------------------------------------------

type stubUserService struct {
	listFn      func(ctx context.Context, actor *domain.User, status string) ([]*domain.User, error)
	setStatusFn func(ctx context.Context, actor *domain.User, id, status string) (*domain.User, error)
}

func (s *stubUserService) Get(context.Context, string) (*domain.User, error) {
	return nil, errors.New("not used")
}

func (s *stubUserService) List(ctx context.Context, actor *domain.User, status string) ([]*domain.User, error) {
	return s.listFn(ctx, actor, status)
}

func (s *stubUserService) SetStatus(ctx context.Context, actor *domain.User, id, status string) (*domain.User, error) {
	return s.setStatusFn(ctx, actor, id, status)
}

func TestUserHandler_Me(t *testing.T) {
	c, rec := newContext(http.MethodGet, "/api/users/me", "", testResident)
	if err := NewUserHandler(&stubUserService{}).Me(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	var u domain.User
	if err := json.Unmarshal(rec.Body.Bytes(), &u); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if u.ID != testResident.ID || u.Role != domain.RoleResident {
		t.Fatalf("unexpected user: %+v", u)
	}
}

func TestUserHandler_List_PassesStatusFilter(t *testing.T) {
	stub := &stubUserService{
		listFn: func(_ context.Context, actor *domain.User, status string) ([]*domain.User, error) {
			if actor.ID != testStaff.ID || status != "pending" {
				t.Fatalf("unexpected args %s %q", actor.ID, status)
			}
			return []*domain.User{{ID: "p1"}}, nil
		},
	}
	c, rec := newContext(http.MethodGet, "/api/users?status=pending", "", testStaff)
	if err := NewUserHandler(stub).List(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestUserHandler_SetStatus(t *testing.T) {
	stub := &stubUserService{
		setStatusFn: func(_ context.Context, _ *domain.User, id, status string) (*domain.User, error) {
			if id != "p1" || status != "approved" {
				t.Fatalf("unexpected args %s %s", id, status)
			}
			return &domain.User{ID: id, Status: domain.UserApproved}, nil
		},
	}
	c, rec := newContext(http.MethodPut, "/api/users/p1/status", `{"status":"approved"}`, testStaff)
	c.SetParamNames("id")
	c.SetParamValues("p1")

	if err := NewUserHandler(stub).SetStatus(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	c, _ = newContext(http.MethodPut, "/api/users/p1/status", `{}`, testStaff)
	assertHTTPError(t, NewUserHandler(stub).SetStatus(c), http.StatusBadRequest)
}

// ---------------------------------------------------------------------------
// Facilities
// ---------------------------------------------------------------------------

type stubFacilityService struct {
	createFn func(ctx context.Context, actor *domain.User, name string, settings *domain.FacilitySettings) (*domain.Facility, error)
	getFn    func(ctx context.Context, id string) (*domain.Facility, error)
	updateFn func(ctx context.Context, actor *domain.User, id string, in ports.UpdateFacilityInput) (*domain.Facility, error)
}

func (s *stubFacilityService) Create(ctx context.Context, actor *domain.User, name string, settings *domain.FacilitySettings) (*domain.Facility, error) {
	return s.createFn(ctx, actor, name, settings)
}

func (s *stubFacilityService) Get(ctx context.Context, id string) (*domain.Facility, error) {
	return s.getFn(ctx, id)
}

func (s *stubFacilityService) Update(ctx context.Context, actor *domain.User, id string, in ports.UpdateFacilityInput) (*domain.Facility, error) {
	return s.updateFn(ctx, actor, id, in)
}

func TestFacilityHandler_Create(t *testing.T) {
	stub := &stubFacilityService{
		createFn: func(_ context.Context, _ *domain.User, name string, settings *domain.FacilitySettings) (*domain.Facility, error) {
			if name != "North" || settings != nil {
				t.Fatalf("unexpected args %q %v", name, settings)
			}
			return &domain.Facility{ID: "f1", Name: name, Settings: domain.DefaultFacilitySettings()}, nil
		},
	}
	c, rec := newContext(http.MethodPost, "/api/facilities", `{"name":"North"}`, testStaff)
	if err := NewFacilityHandler(stub).Create(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}
}

func TestFacilityHandler_GetSettings_NotFound(t *testing.T) {
	stub := &stubFacilityService{
		getFn: func(context.Context, string) (*domain.Facility, error) { return nil, domain.ErrFacilityNotFound },
	}
	c, _ := newContext(http.MethodGet, "/api/facilities/x/settings", "", testResident)
	if err := NewFacilityHandler(stub).GetSettings(c); !errors.Is(err, domain.ErrFacilityNotFound) {
		t.Fatalf("expected ErrFacilityNotFound, got %v", err)
	}
}

func TestFacilityHandler_UpdateSettings_Partial(t *testing.T) {
	stub := &stubFacilityService{
		updateFn: func(_ context.Context, _ *domain.User, id string, in ports.UpdateFacilityInput) (*domain.Facility, error) {
			if id != "f1" {
				t.Fatalf("unexpected id %q", id)
			}
			if in.Name == nil || *in.Name != "South" || in.Settings != nil {
				t.Fatalf("expected name-only update, got %+v", in)
			}
			return &domain.Facility{ID: id, Name: *in.Name}, nil
		},
	}
	c, rec := newContext(http.MethodPut, "/api/facilities/f1/settings", `{"name":"South"}`, testStaff)
	c.SetParamNames("id")
	c.SetParamValues("f1")

	if err := NewFacilityHandler(stub).UpdateSettings(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

// ---------------------------------------------------------------------------
// Contacts
// ---------------------------------------------------------------------------

type stubContactService struct {
	requestFn func(ctx context.Context, requestor *domain.User, contactID, relationship string) (*domain.Contact, error)
	reviewFn  func(ctx context.Context, actor *domain.User, id string, in ports.ReviewContactInput) (*domain.Contact, error)
	pendingFn func(ctx context.Context, user *domain.User) ([]*domain.Contact, error)
}

func (s *stubContactService) Request(ctx context.Context, requestor *domain.User, contactID, relationship string) (*domain.Contact, error) {
	return s.requestFn(ctx, requestor, contactID, relationship)
}

func (s *stubContactService) Review(ctx context.Context, actor *domain.User, id string, in ports.ReviewContactInput) (*domain.Contact, error) {
	return s.reviewFn(ctx, actor, id, in)
}

func (s *stubContactService) ListPending(ctx context.Context, user *domain.User) ([]*domain.Contact, error) {
	return s.pendingFn(ctx, user)
}

func TestContactHandler_Request(t *testing.T) {
	stub := &stubContactService{
		requestFn: func(_ context.Context, requestor *domain.User, contactID, relationship string) (*domain.Contact, error) {
			return &domain.Contact{ID: "k1", RequestorID: requestor.ID, ContactID: contactID, Relationship: relationship, Status: domain.ContactPending}, nil
		},
	}
	c, rec := newContext(http.MethodPost, "/api/contacts/request", `{"contact_id":"u2","relationship":"friend"}`, testResident)
	if err := NewContactHandler(stub).Request(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	var got domain.Contact
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if got.Status != domain.ContactPending || got.ContactID != "u2" {
		t.Fatalf("unexpected contact: %+v", got)
	}
}

func TestContactHandler_Approve(t *testing.T) {
	stub := &stubContactService{
		reviewFn: func(_ context.Context, _ *domain.User, id string, in ports.ReviewContactInput) (*domain.Contact, error) {
			if in.Status == nil || *in.Status != "approved" || in.Relationship != nil {
				t.Fatalf("unexpected input: %+v", in)
			}
			return nil, domain.ErrForbidden
		},
	}
	c, _ := newContext(http.MethodPut, "/api/contacts/k1/approve", `{"status":"approved"}`, testResident)
	if err := NewContactHandler(stub).Approve(c); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
}

func TestContactHandler_Pending(t *testing.T) {
	stub := &stubContactService{
		pendingFn: func(context.Context, *domain.User) ([]*domain.Contact, error) {
			return []*domain.Contact{{ID: "k1"}, {ID: "k2"}}, nil
		},
	}
	c, rec := newContext(http.MethodGet, "/api/contacts/pending", "", testResident)
	if err := NewContactHandler(stub).Pending(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	var got []domain.Contact
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 contacts, got %d", len(got))
	}
}
