package report

import (
	"strings"

	"github.com/Grazus98/ATTENDANCE-TRACKER-WAH/internal/core/attendance"
)

// Filter は勤怠レコード一覧の絞り込み条件です。ゼロ値は全件を通します。
type Filter struct {
	// Date は MM/DD/YYYY 形式の勤務日で完全一致します。
	Date string
	// Name は氏名の部分一致です。大文字小文字は区別しません。
	Name string
	// Department は部署の完全一致です。
	Department string
}

// Apply は records から条件に一致するものだけを返します。
func (f Filter) Apply(records []*attendance.Record) []*attendance.Record {
	name := strings.ToLower(strings.TrimSpace(f.Name))
	date := strings.TrimSpace(f.Date)
	department := strings.TrimSpace(f.Department)

	out := make([]*attendance.Record, 0, len(records))
	for _, rec := range records {
		if date != "" && rec.Date != date {
			continue
		}
		if name != "" && !strings.Contains(strings.ToLower(rec.Name), name) {
			continue
		}
		if department != "" && rec.Department != department {
			continue
		}
		out = append(out, rec)
	}
	return out
}

// Summary はレコード集合の集計値です。
type Summary struct {
	// TotalEmployees は氏名のユニーク数です。
	TotalEmployees int
	// ActiveNow は退勤していないセッションを持つユーザー数です。
	ActiveNow int
	// TotalRecords はレコード件数です。
	TotalRecords int
	// TotalHours は確定済み勤務時間の合計です。
	TotalHours float64
}

// Summarize は records の集計を返します。
func Summarize(records []*attendance.Record) Summary {
	names := make(map[string]struct{})
	activeUsers := make(map[string]struct{})
	summary := Summary{TotalRecords: len(records)}

	for _, rec := range records {
		names[rec.Name] = struct{}{}
		if rec.ClockOut == nil {
			activeUsers[rec.UserID] = struct{}{}
		}
		if rec.TotalHours != nil {
			summary.TotalHours += *rec.TotalHours
		}
	}

	summary.TotalEmployees = len(names)
	summary.ActiveNow = len(activeUsers)
	return summary
}
