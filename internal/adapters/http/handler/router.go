package handler

import (
	"net/http"

	"github.com/Grazus98/ATTENDANCE-TRACKER-WAH/internal/adapters/http/middleware"
)

// RouterConfig はルーター構築に必要なハンドラとミドルウェアの束です。
type RouterConfig struct {
	Attendance *AttendanceHandler
	Feed       *FeedHandler
	Profile    *ProfileHandler
	Admin      *AdminHandler
	IPSettings *IPSettingsHandler

	Auth   func(http.Handler) http.Handler
	IPGate func(http.Handler) http.Handler
}

// NewRouter は API のルーティングを組み立てます。全エンドポイントが認証を
// 要求し、打刻系は加えて接続元 IP の検査を通ります。
func NewRouter(cfg RouterConfig) *http.ServeMux {
	mux := http.NewServeMux()

	punch := func(h http.HandlerFunc) http.Handler {
		return cfg.Auth(cfg.IPGate(h))
	}
	authed := func(h http.HandlerFunc) http.Handler {
		return cfg.Auth(h)
	}
	admin := func(h http.HandlerFunc) http.Handler {
		return cfg.Auth(middleware.RequireRole("admin")(h))
	}
	it := func(h http.HandlerFunc) http.Handler {
		return cfg.Auth(middleware.RequireRole("it", "admin")(h))
	}

	mux.Handle("POST /api/clock-in", punch(cfg.Attendance.ClockIn))
	mux.Handle("POST /api/clock-out", punch(cfg.Attendance.ClockOut))
	mux.Handle("POST /api/break/start", punch(cfg.Attendance.StartBreak))
	mux.Handle("POST /api/break/end", punch(cfg.Attendance.EndBreak))
	mux.Handle("POST /api/lunch/start", punch(cfg.Attendance.StartLunch))
	mux.Handle("POST /api/lunch/end", punch(cfg.Attendance.EndLunch))

	mux.Handle("GET /api/records", authed(cfg.Attendance.Records))
	mux.Handle("GET /api/feed", authed(cfg.Feed.Serve))

	mux.Handle("GET /api/profile", authed(cfg.Profile.Get))
	mux.Handle("PUT /api/profile", authed(cfg.Profile.Put))

	mux.Handle("GET /api/admin/records", admin(cfg.Admin.Records))
	mux.Handle("GET /api/admin/records/export", admin(cfg.Admin.Export))
	mux.Handle("DELETE /api/admin/records", admin(cfg.Admin.DeleteAll))
	mux.Handle("POST /api/admin/records/{id}/clock-out", admin(cfg.Admin.ForceClockOut))

	mux.Handle("GET /api/admin/ip-settings", it(cfg.IPSettings.Get))
	mux.Handle("PUT /api/admin/ip-settings", it(cfg.IPSettings.Put))

	return mux
}
