package handler

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/Grazus98/ATTENDANCE-TRACKER-WAH/internal/core/attendance"
	"github.com/Grazus98/ATTENDANCE-TRACKER-WAH/internal/core/ipfilter"
	"github.com/Grazus98/ATTENDANCE-TRACKER-WAH/internal/core/profile"
)

// recordPayload は勤怠レコードの JSON 表現です。
type recordPayload struct {
	ID         string   `json:"id"`
	UserID     string   `json:"userId"`
	Name       string   `json:"name"`
	Department string   `json:"department"`
	Date       string   `json:"date"`
	ClockIn    string   `json:"clockIn"`
	ClockOut   *string  `json:"clockOut"`
	BreakStart *string  `json:"breakStart"`
	BreakEnd   *string  `json:"breakEnd"`
	LunchStart *string  `json:"lunchStart"`
	LunchEnd   *string  `json:"lunchEnd"`
	TotalHours *float64 `json:"totalHours"`
	BreakHours *float64 `json:"breakHours"`
	LunchHours *float64 `json:"lunchHours"`
	Status     string   `json:"status"`
}

func toRecordPayload(rec *attendance.Record) recordPayload {
	return recordPayload{
		ID:         rec.ID,
		UserID:     rec.UserID,
		Name:       rec.Name,
		Department: rec.Department,
		Date:       rec.Date,
		ClockIn:    rec.ClockIn,
		ClockOut:   rec.ClockOut,
		BreakStart: rec.BreakStart,
		BreakEnd:   rec.BreakEnd,
		LunchStart: rec.LunchStart,
		LunchEnd:   rec.LunchEnd,
		TotalHours: rec.TotalHours,
		BreakHours: rec.BreakHours,
		LunchHours: rec.LunchHours,
		Status:     string(rec.Status),
	}
}

func toRecordPayloads(records []*attendance.Record) []recordPayload {
	out := make([]recordPayload, 0, len(records))
	for _, rec := range records {
		out = append(out, toRecordPayload(rec))
	}
	return out
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		log.Printf("handler: encode response: %v", err)
	}
}

// writeError はドメインエラーを HTTP ステータスへ写像して応答します。
func writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, attendance.ErrInvalidUserID),
		errors.Is(err, attendance.ErrInvalidName),
		errors.Is(err, attendance.ErrInvalidDepartment),
		errors.Is(err, attendance.ErrInvalidClockIn),
		errors.Is(err, attendance.ErrInvalidDate),
		errors.Is(err, attendance.ErrInvalidStatus),
		errors.Is(err, attendance.ErrInvalidID),
		errors.Is(err, profile.ErrInvalidUID),
		errors.Is(err, profile.ErrInvalidEmail),
		errors.Is(err, ipfilter.ErrInvalidEntry):
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
	case errors.Is(err, attendance.ErrNoActiveSession),
		errors.Is(err, attendance.ErrMissingRecordID):
		writeJSON(w, http.StatusConflict, map[string]string{"error": err.Error()})
	case errors.Is(err, attendance.ErrRecordNotFound),
		errors.Is(err, profile.ErrProfileNotFound):
		writeJSON(w, http.StatusNotFound, map[string]string{"error": err.Error()})
	default:
		log.Printf("handler: internal error: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal error"})
	}
}
