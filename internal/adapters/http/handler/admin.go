package handler

import (
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/Grazus98/ATTENDANCE-TRACKER-WAH/internal/core/attendance"
	"github.com/Grazus98/ATTENDANCE-TRACKER-WAH/internal/core/report"
)

// AdminHandler は管理者向けレポート操作の HTTP ハンドラです。
type AdminHandler struct {
	reports    *report.Service
	attendance attendance.UseCase
}

// NewAdminHandler は AdminHandler を生成します。
func NewAdminHandler(reports *report.Service, uc attendance.UseCase) *AdminHandler {
	return &AdminHandler{reports: reports, attendance: uc}
}

type recordsResponse struct {
	Records []recordPayload `json:"records"`
	Summary summaryPayload  `json:"summary"`
}

type summaryPayload struct {
	TotalEmployees int     `json:"totalEmployees"`
	ActiveNow      int     `json:"activeNow"`
	TotalRecords   int     `json:"totalRecords"`
	TotalHours     float64 `json:"totalHours"`
}

// Records は絞り込み付きの勤怠一覧と集計を返します。date クエリは
// YYYY-MM-DD 形式で受け付けます。
func (h *AdminHandler) Records(w http.ResponseWriter, r *http.Request) {
	filter, err := filterFromQuery(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	result, err := h.reports.Records(r.Context(), filter)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, recordsResponse{
		Records: toRecordPayloads(result.Records),
		Summary: summaryPayload{
			TotalEmployees: result.Summary.TotalEmployees,
			ActiveNow:      result.Summary.ActiveNow,
			TotalRecords:   result.Summary.TotalRecords,
			TotalHours:     result.Summary.TotalHours,
		},
	})
}

// Export は絞り込み付きの勤怠一覧を CSV でダウンロードさせます。
func (h *AdminHandler) Export(w http.ResponseWriter, r *http.Request) {
	filter, err := filterFromQuery(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	filename := "attendance-report-" + time.Now().Format("2006-01-02") + ".csv"
	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", `attachment; filename="`+filename+`"`)

	if err := h.reports.ExportCSV(r.Context(), filter, w); err != nil {
		// ヘッダ送信後はステータスを変更できないためログのみ残します。
		log.Printf("handler: export csv: %v", err)
	}
}

// ForceClockOut は指定レコードを管理者権限で退勤させます。
func (h *AdminHandler) ForceClockOut(w http.ResponseWriter, r *http.Request) {
	recordID := r.PathValue("id")

	record, err := h.attendance.ForceClockOut(r.Context(), recordID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toRecordPayload(record))
}

// DeleteAll は全ての勤怠レコードを削除します。
func (h *AdminHandler) DeleteAll(w http.ResponseWriter, r *http.Request) {
	if err := h.reports.ClearAll(r.Context()); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

// filterFromQuery はクエリパラメータから絞り込み条件を組み立てます。
// date は HTML の date 入力に合わせた YYYY-MM-DD を、レコードの保持形式
// である MM/DD/YYYY へ変換します。
func filterFromQuery(r *http.Request) (report.Filter, error) {
	filter := report.Filter{
		Name:       r.URL.Query().Get("name"),
		Department: r.URL.Query().Get("department"),
	}

	if date := strings.TrimSpace(r.URL.Query().Get("date")); date != "" {
		parsed, err := time.Parse("2006-01-02", date)
		if err != nil {
			return report.Filter{}, err
		}
		filter.Date = parsed.Format("01/02/2006")
	}
	return filter, nil
}
