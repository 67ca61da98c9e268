package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/Grazus98/ATTENDANCE-TRACKER-WAH/internal/adapters/http/middleware"
	"github.com/Grazus98/ATTENDANCE-TRACKER-WAH/internal/core/attendance"
	"github.com/Grazus98/ATTENDANCE-TRACKER-WAH/internal/core/profile"
)

type fakeUseCase struct {
	clockInFn       func(ctx context.Context, in attendance.ClockInInput) (*attendance.ClockInResult, error)
	clockOutFn      func(ctx context.Context, userID string) (*attendance.Record, error)
	startBreakFn    func(ctx context.Context, userID string) (*attendance.Record, error)
	forceClockOutFn func(ctx context.Context, recordID string) (*attendance.Record, error)
	listRecordsFn   func(ctx context.Context, userID string) ([]*attendance.Record, error)
}

func (f *fakeUseCase) ClockIn(ctx context.Context, in attendance.ClockInInput) (*attendance.ClockInResult, error) {
	return f.clockInFn(ctx, in)
}

func (f *fakeUseCase) ClockOut(ctx context.Context, userID string) (*attendance.Record, error) {
	return f.clockOutFn(ctx, userID)
}

func (f *fakeUseCase) StartBreak(ctx context.Context, userID string) (*attendance.Record, error) {
	return f.startBreakFn(ctx, userID)
}

func (f *fakeUseCase) EndBreak(ctx context.Context, userID string) (*attendance.Record, error) {
	return f.startBreakFn(ctx, userID)
}

func (f *fakeUseCase) StartLunch(ctx context.Context, userID string) (*attendance.Record, error) {
	return f.startBreakFn(ctx, userID)
}

func (f *fakeUseCase) EndLunch(ctx context.Context, userID string) (*attendance.Record, error) {
	return f.startBreakFn(ctx, userID)
}

func (f *fakeUseCase) ForceClockOut(ctx context.Context, recordID string) (*attendance.Record, error) {
	return f.forceClockOutFn(ctx, recordID)
}

func (f *fakeUseCase) ListRecords(ctx context.Context, userID string) ([]*attendance.Record, error) {
	return f.listRecordsFn(ctx, userID)
}

type fakeProfileRepo struct {
	profiles map[string]*profile.Profile
}

func (r *fakeProfileRepo) Save(_ context.Context, p *profile.Profile) (*profile.Profile, error) {
	if r.profiles == nil {
		r.profiles = make(map[string]*profile.Profile)
	}
	clone := *p
	r.profiles[p.UID] = &clone
	out := clone
	return &out, nil
}

func (r *fakeProfileRepo) FindByUID(_ context.Context, uid string) (*profile.Profile, error) {
	p, ok := r.profiles[uid]
	if !ok {
		return nil, profile.ErrProfileNotFound
	}
	clone := *p
	return &clone, nil
}

func authedRequest(method, target, body string, identity middleware.Identity) *http.Request {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
	}
	return req.WithContext(middleware.ContextWithIdentity(req.Context(), identity))
}

func TestAttendanceHandler_ClockIn_UsesProfileFallback(t *testing.T) {
	t.Parallel()

	var gotInput attendance.ClockInInput
	uc := &fakeUseCase{
		clockInFn: func(_ context.Context, in attendance.ClockInInput) (*attendance.ClockInResult, error) {
			gotInput = in
			return &attendance.ClockInResult{Record: &attendance.Record{
				ID:         "rec-1",
				UserID:     in.UserID,
				Name:       in.Name,
				Department: in.Department,
				Status:     attendance.StatusClockedIn,
			}}, nil
		},
	}
	profiles := profile.NewService(&fakeProfileRepo{}, nil)
	h := NewAttendanceHandler(uc, profiles)

	req := authedRequest(http.MethodPost, "/api/clock-in", "", middleware.Identity{
		UserID: "user-1",
		Email:  "jane@example.com",
	})
	rec := httptest.NewRecorder()
	h.ClockIn(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
	if gotInput.Name != "jane" || gotInput.Department != profile.DefaultDepartment {
		t.Fatalf("expected fallback identity fields, got %+v", gotInput)
	}

	var resp clockInResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Record.ID != "rec-1" || resp.Resumed {
		t.Fatalf("unexpected response: %+v", resp)
	}
}

func TestAttendanceHandler_ClockIn_ResumedReturnsOK(t *testing.T) {
	t.Parallel()

	uc := &fakeUseCase{
		clockInFn: func(_ context.Context, in attendance.ClockInInput) (*attendance.ClockInResult, error) {
			return &attendance.ClockInResult{
				Record:  &attendance.Record{ID: "rec-1", UserID: in.UserID, Status: attendance.StatusClockedIn},
				Resumed: true,
			}, nil
		},
	}
	profiles := profile.NewService(&fakeProfileRepo{}, nil)
	h := NewAttendanceHandler(uc, profiles)

	req := authedRequest(http.MethodPost, "/api/clock-in", `{"name":"Jane","department":"GIS"}`, middleware.Identity{UserID: "user-1"})
	rec := httptest.NewRecorder()
	h.ClockIn(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 for resumed session, got %d", rec.Code)
	}
}

func TestAttendanceHandler_ClockOut_NoActiveSession(t *testing.T) {
	t.Parallel()

	uc := &fakeUseCase{
		clockOutFn: func(_ context.Context, _ string) (*attendance.Record, error) {
			return nil, attendance.ErrNoActiveSession
		},
	}
	profiles := profile.NewService(&fakeProfileRepo{}, nil)
	h := NewAttendanceHandler(uc, profiles)

	req := authedRequest(http.MethodPost, "/api/clock-out", "", middleware.Identity{UserID: "user-1"})
	rec := httptest.NewRecorder()
	h.ClockOut(rec, req)

	if rec.Code != http.StatusConflict {
		t.Fatalf("expected 409, got %d", rec.Code)
	}
}

func TestAttendanceHandler_Records(t *testing.T) {
	t.Parallel()

	clockOut := "01/01/2024, 05:00:00 PM"
	uc := &fakeUseCase{
		listRecordsFn: func(_ context.Context, userID string) ([]*attendance.Record, error) {
			return []*attendance.Record{{
				ID:       "rec-1",
				UserID:   userID,
				ClockOut: &clockOut,
				Status:   attendance.StatusClockedOut,
			}}, nil
		},
	}
	profiles := profile.NewService(&fakeProfileRepo{}, nil)
	h := NewAttendanceHandler(uc, profiles)

	req := authedRequest(http.MethodGet, "/api/records", "", middleware.Identity{UserID: "user-1"})
	rec := httptest.NewRecorder()
	h.Records(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `"clockOut":"01/01/2024, 05:00:00 PM"`) {
		t.Fatalf("unexpected body: %s", rec.Body.String())
	}
}

func TestAttendanceHandler_MissingIdentity(t *testing.T) {
	t.Parallel()

	profiles := profile.NewService(&fakeProfileRepo{}, nil)
	h := NewAttendanceHandler(&fakeUseCase{}, profiles)

	req := httptest.NewRequest(http.MethodPost, "/api/clock-in", nil)
	rec := httptest.NewRecorder()
	h.ClockIn(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}
