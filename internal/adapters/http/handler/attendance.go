package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/Grazus98/ATTENDANCE-TRACKER-WAH/internal/adapters/http/middleware"
	"github.com/Grazus98/ATTENDANCE-TRACKER-WAH/internal/core/attendance"
	"github.com/Grazus98/ATTENDANCE-TRACKER-WAH/internal/core/profile"
)

// AttendanceHandler は打刻操作の HTTP ハンドラです。
type AttendanceHandler struct {
	attendance attendance.UseCase
	profiles   *profile.Service
}

// NewAttendanceHandler は AttendanceHandler を生成します。
func NewAttendanceHandler(uc attendance.UseCase, profiles *profile.Service) *AttendanceHandler {
	return &AttendanceHandler{attendance: uc, profiles: profiles}
}

type clockInRequest struct {
	Name       string `json:"name"`
	Department string `json:"department"`
}

type clockInResponse struct {
	Record  recordPayload `json:"record"`
	Resumed bool          `json:"resumed"`
}

// ClockIn は出勤打刻を処理します。氏名と部署はリクエストで上書きできますが、
// 省略時はプロフィール(無ければ認証情報からの合成値)を使用します。
func (h *AttendanceHandler) ClockIn(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.IdentityFromContext(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "unauthorized"})
		return
	}

	var req clockInRequest
	if r.Body != nil {
		// 空ボディは許容します。
		_ = json.NewDecoder(r.Body).Decode(&req)
	}

	name := strings.TrimSpace(req.Name)
	department := strings.TrimSpace(req.Department)
	if name == "" || department == "" {
		p, err := h.profiles.GetOrFallback(r.Context(), identity.UserID, identity.Email, identity.Name)
		if err != nil {
			writeError(w, err)
			return
		}
		if name == "" {
			name = p.FullName
		}
		if department == "" {
			department = p.Department
		}
	}

	result, err := h.attendance.ClockIn(r.Context(), attendance.ClockInInput{
		UserID:     identity.UserID,
		Name:       name,
		Department: department,
	})
	if err != nil {
		writeError(w, err)
		return
	}

	status := http.StatusCreated
	if result.Resumed {
		status = http.StatusOK
	}
	writeJSON(w, status, clockInResponse{Record: toRecordPayload(result.Record), Resumed: result.Resumed})
}

// ClockOut は退勤打刻を処理します。
func (h *AttendanceHandler) ClockOut(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, h.attendance.ClockOut)
}

// StartBreak は休憩開始を処理します。
func (h *AttendanceHandler) StartBreak(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, h.attendance.StartBreak)
}

// EndBreak は休憩終了を処理します。
func (h *AttendanceHandler) EndBreak(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, h.attendance.EndBreak)
}

// StartLunch は昼休憩開始を処理します。
func (h *AttendanceHandler) StartLunch(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, h.attendance.StartLunch)
}

// EndLunch は昼休憩終了を処理します。
func (h *AttendanceHandler) EndLunch(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, h.attendance.EndLunch)
}

func (h *AttendanceHandler) transition(w http.ResponseWriter, r *http.Request, op func(ctx context.Context, userID string) (*attendance.Record, error)) {
	identity, ok := middleware.IdentityFromContext(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "unauthorized"})
		return
	}

	record, err := op(r.Context(), identity.UserID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toRecordPayload(record))
}

// Records は操作者自身の勤怠履歴を新しい順に返します。
func (h *AttendanceHandler) Records(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.IdentityFromContext(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "unauthorized"})
		return
	}

	records, err := h.attendance.ListRecords(r.Context(), identity.UserID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"records": toRecordPayloads(records)})
}
