package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/visitlink/visitation-api/internal/core/domain"
	"github.com/visitlink/visitation-api/internal/core/ports"
)

// ---------------------------------------------------------------------------
// In-memory stubs
// ---------------------------------------------------------------------------

type stubCallRepo struct {
	byID          map[string]*domain.VideoCall
	createErr     error
	activateCalls int
}

func newStubCallRepo() *stubCallRepo {
	return &stubCallRepo{byID: make(map[string]*domain.VideoCall)}
}

func cloneCall(c *domain.VideoCall) *domain.VideoCall {
	clone := *c
	clone.ParticipantIDs = append([]string(nil), c.ParticipantIDs...)
	return &clone
}

func (r *stubCallRepo) Create(_ context.Context, c *domain.VideoCall) error {
	if r.createErr != nil {
		return r.createErr
	}
	r.byID[c.ID] = cloneCall(c)
	return nil
}

func (r *stubCallRepo) FindByID(_ context.Context, id string) (*domain.VideoCall, error) {
	c, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrCallNotFound
	}
	return cloneCall(c), nil
}

func (r *stubCallRepo) FindByRoomName(_ context.Context, room string) (*domain.VideoCall, error) {
	for _, c := range r.byID {
		if c.RoomName == room {
			return cloneCall(c), nil
		}
	}
	return nil, domain.ErrCallNotFound
}

// Activate mirrors the conditional update: only scheduled calls move.
func (r *stubCallRepo) Activate(_ context.Context, id string) error {
	r.activateCalls++
	c, ok := r.byID[id]
	if !ok {
		return domain.ErrCallNotFound
	}
	if c.Status == domain.CallScheduled {
		c.Status = domain.CallActive
	}
	return nil
}

func (r *stubCallRepo) ListByStatus(_ context.Context, status domain.CallStatus, participantID string) ([]*domain.VideoCall, error) {
	out := []*domain.VideoCall{}
	for _, c := range r.byID {
		if c.Status != status {
			continue
		}
		if participantID != "" && !c.HasParticipant(participantID) {
			continue
		}
		out = append(out, cloneCall(c))
	}
	return out, nil
}

type stubTokenProvider struct {
	err error
}

func (stubTokenProvider) Name() string { return "stub" }

func (p stubTokenProvider) Generate(room, userID string, _ time.Duration) (string, error) {
	if p.err != nil {
		return "", p.err
	}
	return fmt.Sprintf("tok:%s:%s", room, userID), nil
}

// ---------------------------------------------------------------------------
// Helpers
// ---------------------------------------------------------------------------

var discardLogger = zerolog.Nop()

const (
	residentID = "11111111-1111-4111-8111-111111111111"
	attorneyID = "22222222-2222-4222-8222-222222222222"
	staffID    = "33333333-3333-4333-8333-333333333333"
	visitorID  = "44444444-4444-4444-8444-444444444444"
	outsiderID = "55555555-5555-4555-8555-555555555555"
)

func testUser(id string, role domain.Role) *domain.User {
	return &domain.User{ID: id, Email: id + "@example.com", Role: role, Status: domain.UserApproved}
}

var (
	resident = testUser(residentID, domain.RoleResident)
	attorney = testUser(attorneyID, domain.RoleAttorney)
	staff    = testUser(staffID, domain.RoleStaff)
	visitor  = testUser(visitorID, domain.RoleVisitor)
	outsider = testUser(outsiderID, domain.RoleResident)
)

func newCallFixture() (*CallService, *stubCallRepo) {
	calls := newStubCallRepo()
	users := newStubUserRepo(resident, attorney, staff, visitor, outsider)
	return NewCallService(calls, users, stubTokenProvider{}, time.Hour, discardLogger), calls
}

func callInput(recording bool, participants ...string) ports.CreateCallInput {
	return ports.CreateCallInput{
		ScheduledStart:    time.Date(2026, 3, 1, 15, 0, 0, 0, time.UTC),
		ScheduledDuration: 30,
		MaxParticipants:   2,
		ParticipantIDs:    participants,
		RecordingEnabled:  recording,
	}
}

// ---------------------------------------------------------------------------
// Create
// ---------------------------------------------------------------------------

func TestCallService_Create_Success(t *testing.T) {
	svc, repo := newCallFixture()

	res, err := svc.Create(context.Background(), resident, callInput(true, visitorID))
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}

	c := res.Call
	if !strings.HasPrefix(c.RoomName, domain.RoomPrefix) {
		t.Errorf("expected room name prefixed with %q, got %q", domain.RoomPrefix, c.RoomName)
	}
	if c.Status != domain.CallScheduled {
		t.Errorf("expected status scheduled, got %s", c.Status)
	}
	if c.RecordingStatus != domain.RecordingInactive {
		t.Errorf("expected recording status inactive, got %s", c.RecordingStatus)
	}
	if !c.RecordingEnabled {
		t.Error("expected recording enabled for resident creator")
	}
	if c.CreatorID != residentID {
		t.Errorf("unexpected creator: %s", c.CreatorID)
	}
	if want := "tok:" + c.RoomName + ":" + residentID; res.Token != want {
		t.Errorf("expected token %q, got %q", want, res.Token)
	}
	if _, ok := repo.byID[c.ID]; !ok {
		t.Error("expected call to be persisted")
	}
}

func TestCallService_Create_AttorneyNeverRecorded(t *testing.T) {
	svc, _ := newCallFixture()

	for _, requested := range []bool{true, false} {
		res, err := svc.Create(context.Background(), attorney, callInput(requested, residentID))
		if err != nil {
			t.Fatalf("Create returned error: %v", err)
		}
		if res.Call.RecordingEnabled {
			t.Errorf("requested=%v: attorney call must not be recorded", requested)
		}
	}
}

func TestCallService_Create_RecordingScenario(t *testing.T) {
	svc, _ := newCallFixture()

	byResident, err := svc.Create(context.Background(), resident, callInput(true, visitorID))
	if err != nil {
		t.Fatalf("resident create: %v", err)
	}
	byAttorney, err := svc.Create(context.Background(), attorney, callInput(true, visitorID))
	if err != nil {
		t.Fatalf("attorney create: %v", err)
	}

	if !byResident.Call.RecordingEnabled {
		t.Error("resident call: expected recording_enabled=true")
	}
	if byAttorney.Call.RecordingEnabled {
		t.Error("attorney call: expected recording_enabled=false")
	}
}

func TestCallService_Create_UnknownParticipant(t *testing.T) {
	svc, repo := newCallFixture()

	unknown := "99999999-9999-4999-8999-999999999999"
	_, err := svc.Create(context.Background(), resident, callInput(false, visitorID, unknown))
	if !errors.Is(err, domain.ErrInvalidParticipants) {
		t.Fatalf("expected ErrInvalidParticipants, got %v", err)
	}
	if len(repo.byID) != 0 {
		t.Fatalf("expected nothing persisted, got %d calls", len(repo.byID))
	}
}

func TestCallService_Create_MalformedParticipants(t *testing.T) {
	svc, repo := newCallFixture()

	cases := map[string][]string{
		"not a uuid": {"bob"},
		"duplicate":  {visitorID, strings.ToUpper(visitorID)},
	}
	for name, ids := range cases {
		t.Run(name, func(t *testing.T) {
			if _, err := svc.Create(context.Background(), resident, callInput(false, ids...)); !errors.Is(err, domain.ErrInvalidParticipants) {
				t.Fatalf("expected ErrInvalidParticipants, got %v", err)
			}
		})
	}
	if len(repo.byID) != 0 {
		t.Fatalf("expected nothing persisted, got %d calls", len(repo.byID))
	}
}

func TestCallService_Create_CanonicalisesParticipantIDs(t *testing.T) {
	svc, _ := newCallFixture()

	res, err := svc.Create(context.Background(), resident, callInput(false, strings.ToUpper(visitorID)))
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	if len(res.Call.ParticipantIDs) != 1 || res.Call.ParticipantIDs[0] != visitorID {
		t.Fatalf("expected canonical participant id, got %v", res.Call.ParticipantIDs)
	}
}

func TestCallService_Create_RepositoryError(t *testing.T) {
	svc, repo := newCallFixture()
	repo.createErr = errors.New("mongo down")

	if _, err := svc.Create(context.Background(), resident, callInput(false, visitorID)); err == nil || !strings.Contains(err.Error(), "mongo down") {
		t.Fatalf("expected wrapped repository error, got %v", err)
	}
}

func TestCallService_Create_UniqueRoomNames(t *testing.T) {
	svc, _ := newCallFixture()

	seen := map[string]bool{}
	for i := 0; i < 20; i++ {
		res, err := svc.Create(context.Background(), resident, callInput(false, visitorID))
		if err != nil {
			t.Fatalf("Create returned error: %v", err)
		}
		if seen[res.Call.RoomName] {
			t.Fatalf("room name %s generated twice", res.Call.RoomName)
		}
		seen[res.Call.RoomName] = true
	}
}

// ---------------------------------------------------------------------------
// Join
// ---------------------------------------------------------------------------

func createCall(t *testing.T, svc *CallService, participants ...string) *domain.VideoCall {
	t.Helper()
	res, err := svc.Create(context.Background(), resident, callInput(false, participants...))
	if err != nil {
		t.Fatalf("create call: %v", err)
	}
	return res.Call
}

func TestCallService_Join_ActivatesScheduledCall(t *testing.T) {
	svc, repo := newCallFixture()
	call := createCall(t, svc, visitorID)

	res, err := svc.Join(context.Background(), visitor, call.ID)
	if err != nil {
		t.Fatalf("Join returned error: %v", err)
	}
	if res.RoomName != call.RoomName || res.Duration != 30 {
		t.Errorf("unexpected join result: %+v", res)
	}
	if res.Token != "tok:"+call.RoomName+":"+visitorID {
		t.Errorf("unexpected token %q", res.Token)
	}
	if repo.byID[call.ID].Status != domain.CallActive {
		t.Errorf("expected call to be active, got %s", repo.byID[call.ID].Status)
	}
}

func TestCallService_Join_ActiveIsIdempotent(t *testing.T) {
	svc, repo := newCallFixture()
	call := createCall(t, svc, visitorID)

	if _, err := svc.Join(context.Background(), visitor, call.ID); err != nil {
		t.Fatalf("first join: %v", err)
	}
	if _, err := svc.Join(context.Background(), visitor, call.ID); err != nil {
		t.Fatalf("second join: %v", err)
	}
	if repo.byID[call.ID].Status != domain.CallActive {
		t.Errorf("expected status to remain active, got %s", repo.byID[call.ID].Status)
	}
	if repo.activateCalls != 1 {
		t.Errorf("expected a single activation, got %d", repo.activateCalls)
	}
}

func TestCallService_Join_NotFound(t *testing.T) {
	svc, _ := newCallFixture()

	if _, err := svc.Join(context.Background(), staff, "missing"); !errors.Is(err, domain.ErrCallNotFound) {
		t.Fatalf("expected ErrCallNotFound, got %v", err)
	}
}

func TestCallService_Join_TerminalStates(t *testing.T) {
	for _, status := range []domain.CallStatus{domain.CallCompleted, domain.CallCancelled} {
		t.Run(string(status), func(t *testing.T) {
			svc, repo := newCallFixture()
			call := createCall(t, svc, visitorID)
			repo.byID[call.ID].Status = status

			if _, err := svc.Join(context.Background(), visitor, call.ID); !errors.Is(err, domain.ErrInvalidCallState) {
				t.Fatalf("expected ErrInvalidCallState, got %v", err)
			}
			if repo.byID[call.ID].Status != status {
				t.Errorf("status changed to %s", repo.byID[call.ID].Status)
			}
		})
	}
}

func TestCallService_Join_Authorization(t *testing.T) {
	svc, _ := newCallFixture()
	call := createCall(t, svc, visitorID)

	res, err := svc.Join(context.Background(), staff, call.ID)
	if err != nil {
		t.Fatalf("staff join: expected success, got %v", err)
	}
	if res.Token == "" {
		t.Error("staff join: expected token")
	}

	if _, err := svc.Join(context.Background(), outsider, call.ID); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("outsider join: expected ErrForbidden, got %v", err)
	}
}

// ---------------------------------------------------------------------------
// IssueToken
// ---------------------------------------------------------------------------

func TestCallService_IssueToken(t *testing.T) {
	svc, repo := newCallFixture()
	call := createCall(t, svc, visitorID)

	tok, err := svc.IssueToken(context.Background(), visitor, call.RoomName, visitorID)
	if err != nil {
		t.Fatalf("IssueToken returned error: %v", err)
	}
	if tok != "tok:"+call.RoomName+":"+visitorID {
		t.Errorf("unexpected token %q", tok)
	}
	if repo.byID[call.ID].Status != domain.CallScheduled {
		t.Errorf("IssueToken must not change status, got %s", repo.byID[call.ID].Status)
	}
}

func TestCallService_IssueToken_Errors(t *testing.T) {
	svc, _ := newCallFixture()
	call := createCall(t, svc, visitorID)

	tests := []struct {
		name   string
		user   *domain.User
		room   string
		target string
		want   error
	}{
		{"other user's token", visitor, call.RoomName, residentID, domain.ErrForbidden},
		{"unknown room", visitor, "call-missing", visitorID, domain.ErrCallNotFound},
		{"non participant", outsider, call.RoomName, outsiderID, domain.ErrForbidden},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := svc.IssueToken(context.Background(), tc.user, tc.room, tc.target); !errors.Is(err, tc.want) {
				t.Fatalf("expected %v, got %v", tc.want, err)
			}
		})
	}

	if _, err := svc.IssueToken(context.Background(), staff, call.RoomName, staffID); err != nil {
		t.Fatalf("staff token: expected success, got %v", err)
	}
}

func TestCallService_TokenProviderError(t *testing.T) {
	calls := newStubCallRepo()
	users := newStubUserRepo(resident, visitor)
	svc := NewCallService(calls, users, stubTokenProvider{err: errors.New("provider down")}, 0, discardLogger)

	if _, err := svc.Create(context.Background(), resident, callInput(false, visitorID)); err == nil {
		t.Fatal("expected error when the provider fails")
	}
}

// ---------------------------------------------------------------------------
// ListScheduled
// ---------------------------------------------------------------------------

func TestCallService_ListScheduled(t *testing.T) {
	svc, repo := newCallFixture()
	first := createCall(t, svc, visitorID)
	createCall(t, svc, attorneyID)
	joined := createCall(t, svc, visitorID)
	repo.byID[joined.ID].Status = domain.CallActive

	all, err := svc.ListScheduled(context.Background(), staff)
	if err != nil {
		t.Fatalf("staff list: %v", err)
	}
	if len(all) != 2 {
		t.Errorf("staff: expected 2 scheduled calls, got %d", len(all))
	}

	mine, err := svc.ListScheduled(context.Background(), visitor)
	if err != nil {
		t.Fatalf("visitor list: %v", err)
	}
	if len(mine) != 1 || mine[0].ID != first.ID {
		t.Errorf("visitor: expected only call %s, got %+v", first.ID, mine)
	}

	none, err := svc.ListScheduled(context.Background(), outsider)
	if err != nil {
		t.Fatalf("outsider list: %v", err)
	}
	if len(none) != 0 {
		t.Errorf("outsider: expected empty list, got %d", len(none))
	}
}
