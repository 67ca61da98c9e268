package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Grazus98/ATTENDANCE-TRACKER-WAH/internal/core/ipfilter"
)

type fakeSettingsRepo struct {
	settings *ipfilter.Settings
}

func (r *fakeSettingsRepo) Save(_ context.Context, settings *ipfilter.Settings) (*ipfilter.Settings, error) {
	clone := *settings
	r.settings = &clone
	return settings, nil
}

func (r *fakeSettingsRepo) Find(_ context.Context) (*ipfilter.Settings, error) {
	if r.settings == nil {
		return nil, ipfilter.ErrSettingsNotFound
	}
	clone := *r.settings
	return &clone, nil
}

func TestClientAddr(t *testing.T) {
	t.Parallel()

	req := httptest.NewRequest(http.MethodPost, "/api/clock-in", nil)
	req.RemoteAddr = "192.168.1.42:51234"
	if got := ClientAddr(req); got != "192.168.1.42" {
		t.Fatalf("expected remote addr host, got %q", got)
	}

	req.Header.Set("X-Forwarded-For", "203.0.113.10, 10.0.0.1")
	if got := ClientAddr(req); got != "203.0.113.10" {
		t.Fatalf("expected first forwarded address, got %q", got)
	}
}

func TestIPGate(t *testing.T) {
	t.Parallel()

	repo := &fakeSettingsRepo{settings: &ipfilter.Settings{
		AllowedLocalIPs: []string{"192.168.1.0/24"},
		Enabled:         true,
	}}
	gate := IPGate(ipfilter.NewService(repo, nil))

	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	handler := gate(next)

	allowed := httptest.NewRequest(http.MethodPost, "/api/clock-in", nil)
	allowed.RemoteAddr = "192.168.1.42:51234"
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, allowed)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 for allowed address, got %d", rec.Code)
	}

	denied := httptest.NewRequest(http.MethodPost, "/api/clock-in", nil)
	denied.RemoteAddr = "198.51.100.7:51234"
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, denied)
	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403 for denied address, got %d", rec.Code)
	}
}

func TestIPGate_DisabledAllowsAll(t *testing.T) {
	t.Parallel()

	gate := IPGate(ipfilter.NewService(&fakeSettingsRepo{}, nil))
	handler := gate(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodPost, "/api/clock-in", nil)
	req.RemoteAddr = "198.51.100.7:51234"
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 when filter disabled, got %d", rec.Code)
	}
}
