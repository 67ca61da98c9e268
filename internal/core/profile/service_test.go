package profile

import (
	"context"
	"errors"
	"testing"
	"time"
)

type fixedClock struct {
	now time.Time
}

func (c fixedClock) Now() time.Time {
	return c.now
}

type fakeProfileRepo struct {
	profiles map[string]*Profile
	findErr  error
}

func newFakeProfileRepo() *fakeProfileRepo {
	return &fakeProfileRepo{profiles: make(map[string]*Profile)}
}

func (r *fakeProfileRepo) Save(_ context.Context, p *Profile) (*Profile, error) {
	clone := *p
	r.profiles[p.UID] = &clone
	out := clone
	return &out, nil
}

func (r *fakeProfileRepo) FindByUID(_ context.Context, uid string) (*Profile, error) {
	if r.findErr != nil {
		return nil, r.findErr
	}
	p, ok := r.profiles[uid]
	if !ok {
		return nil, ErrProfileNotFound
	}
	clone := *p
	return &clone, nil
}

func TestService_Save(t *testing.T) {
	t.Parallel()

	now := time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC)
	repo := newFakeProfileRepo()
	svc := NewService(repo, fixedClock{now: now})

	saved, err := svc.Save(context.Background(), SaveInput{
		UID:      "uid-1",
		Email:    "jane@example.com",
		FullName: "Jane Cruz",
	})
	if err != nil {
		t.Fatalf("Save returned error: %v", err)
	}

	if saved.Department != DefaultDepartment {
		t.Fatalf("expected default department, got %q", saved.Department)
	}
	if !saved.CreatedAt.Equal(now) {
		t.Fatalf("expected created at %v, got %v", now, saved.CreatedAt)
	}
}

func TestService_Save_Invalid(t *testing.T) {
	t.Parallel()

	svc := NewService(newFakeProfileRepo(), nil)

	if _, err := svc.Save(context.Background(), SaveInput{UID: " "}); !errors.Is(err, ErrInvalidUID) {
		t.Fatalf("expected ErrInvalidUID, got %v", err)
	}
	if _, err := svc.Save(context.Background(), SaveInput{UID: "uid-1", Email: "not-an-email"}); !errors.Is(err, ErrInvalidEmail) {
		t.Fatalf("expected ErrInvalidEmail, got %v", err)
	}
}

func TestService_Get_NotFound(t *testing.T) {
	t.Parallel()

	svc := NewService(newFakeProfileRepo(), nil)

	if _, err := svc.Get(context.Background(), "missing"); !errors.Is(err, ErrProfileNotFound) {
		t.Fatalf("expected ErrProfileNotFound, got %v", err)
	}
}

func TestService_GetOrFallback(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name           string
		stored         *Profile
		email          string
		displayName    string
		wantName       string
		wantDepartment string
	}{
		{
			name:           "stored profile wins",
			stored:         &Profile{UID: "uid-1", FullName: "Jane Cruz", Department: "GIS"},
			email:          "jane@example.com",
			displayName:    "Janey",
			wantName:       "Jane Cruz",
			wantDepartment: "GIS",
		},
		{
			name:           "missing profile uses display name",
			email:          "jane@example.com",
			displayName:    "Janey",
			wantName:       "Janey",
			wantDepartment: DefaultDepartment,
		},
		{
			name:           "missing profile falls back to email local part",
			email:          "jane@example.com",
			wantName:       "jane",
			wantDepartment: DefaultDepartment,
		},
		{
			name:           "no identity hints",
			wantName:       "User",
			wantDepartment: DefaultDepartment,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			repo := newFakeProfileRepo()
			if tt.stored != nil {
				repo.profiles[tt.stored.UID] = tt.stored
			}
			svc := NewService(repo, nil)

			got, err := svc.GetOrFallback(context.Background(), "uid-1", tt.email, tt.displayName)
			if err != nil {
				t.Fatalf("GetOrFallback returned error: %v", err)
			}
			if got.FullName != tt.wantName {
				t.Fatalf("expected name %q, got %q", tt.wantName, got.FullName)
			}
			if got.Department != tt.wantDepartment {
				t.Fatalf("expected department %q, got %q", tt.wantDepartment, got.Department)
			}
		})
	}
}

func TestService_GetOrFallback_RepositoryFailure(t *testing.T) {
	t.Parallel()

	repo := newFakeProfileRepo()
	repo.findErr = errors.New("connection reset")
	svc := NewService(repo, nil)

	if _, err := svc.GetOrFallback(context.Background(), "uid-1", "", ""); err == nil {
		t.Fatal("expected repository failure to surface")
	}
}
