package service

import (
	"context"
	"errors"
	"testing"

	"github.com/visitlink/visitation-api/internal/core/domain"
	"github.com/visitlink/visitation-api/internal/core/ports"
)

type stubFacilityRepo struct {
	byID map[string]*domain.Facility
}

func newStubFacilityRepo() *stubFacilityRepo {
	return &stubFacilityRepo{byID: make(map[string]*domain.Facility)}
}

func (r *stubFacilityRepo) Create(_ context.Context, f *domain.Facility) error {
	clone := *f
	r.byID[f.ID] = &clone
	return nil
}

func (r *stubFacilityRepo) FindByID(_ context.Context, id string) (*domain.Facility, error) {
	f, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrFacilityNotFound
	}
	clone := *f
	return &clone, nil
}

func (r *stubFacilityRepo) FindByName(_ context.Context, name string) (*domain.Facility, error) {
	for _, f := range r.byID {
		if f.Name == name {
			clone := *f
			return &clone, nil
		}
	}
	return nil, domain.ErrFacilityNotFound
}

func (r *stubFacilityRepo) Update(_ context.Context, f *domain.Facility) error {
	if _, ok := r.byID[f.ID]; !ok {
		return domain.ErrFacilityNotFound
	}
	clone := *f
	r.byID[f.ID] = &clone
	return nil
}

func TestFacilityService_Create_DefaultSettings(t *testing.T) {
	svc := NewFacilityService(newStubFacilityRepo(), discardLogger)

	f, err := svc.Create(context.Background(), staff, "  North Unit ", nil)
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	if f.Name != "North Unit" {
		t.Errorf("expected trimmed name, got %q", f.Name)
	}
	if f.Settings.Network.MaxBandwidth != 1000 || f.Settings.Security.SessionTimeout != 30 {
		t.Errorf("expected default settings, got %+v", f.Settings)
	}
	if f.Settings.Deployment.DeploymentType != "cloud" {
		t.Errorf("expected cloud deployment, got %q", f.Settings.Deployment.DeploymentType)
	}
}

func TestFacilityService_Create_Errors(t *testing.T) {
	svc := NewFacilityService(newStubFacilityRepo(), discardLogger)

	if _, err := svc.Create(context.Background(), resident, "North Unit", nil); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}

	if _, err := svc.Create(context.Background(), staff, "North Unit", nil); err != nil {
		t.Fatalf("first create: %v", err)
	}
	if _, err := svc.Create(context.Background(), staff, "North Unit", nil); !errors.Is(err, domain.ErrFacilityExists) {
		t.Fatalf("expected ErrFacilityExists, got %v", err)
	}
}

func TestFacilityService_Update(t *testing.T) {
	repo := newStubFacilityRepo()
	svc := NewFacilityService(repo, discardLogger)

	f, err := svc.Create(context.Background(), staff, "North Unit", nil)
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	settings := domain.DefaultFacilitySettings()
	settings.Network.VPNRequired = true
	updated, err := svc.Update(context.Background(), staff, f.ID, ports.UpdateFacilityInput{Settings: &settings})
	if err != nil {
		t.Fatalf("Update returned error: %v", err)
	}
	if !updated.Settings.Network.VPNRequired {
		t.Error("expected settings to be replaced")
	}
	if updated.Name != "North Unit" {
		t.Errorf("name should be untouched, got %q", updated.Name)
	}

	name := "North Unit"
	if _, err := svc.Update(context.Background(), staff, f.ID, ports.UpdateFacilityInput{Name: &name}); err != nil {
		t.Fatalf("renaming to the same name should succeed, got %v", err)
	}
}

func TestFacilityService_Update_Errors(t *testing.T) {
	repo := newStubFacilityRepo()
	svc := NewFacilityService(repo, discardLogger)

	a, _ := svc.Create(context.Background(), staff, "A", nil)
	_, _ = svc.Create(context.Background(), staff, "B", nil)

	taken := "B"
	if _, err := svc.Update(context.Background(), staff, a.ID, ports.UpdateFacilityInput{Name: &taken}); !errors.Is(err, domain.ErrFacilityExists) {
		t.Fatalf("expected ErrFacilityExists, got %v", err)
	}
	if _, err := svc.Update(context.Background(), visitor, a.ID, ports.UpdateFacilityInput{}); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
	if _, err := svc.Update(context.Background(), staff, "missing", ports.UpdateFacilityInput{}); !errors.Is(err, domain.ErrFacilityNotFound) {
		t.Fatalf("expected ErrFacilityNotFound, got %v", err)
	}
}
