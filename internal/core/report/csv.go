package report

import (
	"encoding/csv"
	"fmt"
	"io"

	"github.com/Grazus98/ATTENDANCE-TRACKER-WAH/internal/core/attendance"
)

var csvHeader = []string{"Name", "Department", "Date", "Clock In", "Clock Out", "Total Hours"}

// WriteCSV は records を CSV として w へ書き出します。未退勤のレコードは
// Clock Out 列に "Still Active"、Total Hours 列に "N/A" を出力します。
func WriteCSV(w io.Writer, records []*attendance.Record) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(csvHeader); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}

	for _, rec := range records {
		clockOut := "Still Active"
		if rec.ClockOut != nil {
			clockOut = *rec.ClockOut
		}
		totalHours := "N/A"
		if rec.TotalHours != nil {
			totalHours = fmt.Sprintf("%.2f", *rec.TotalHours)
		}

		row := []string{rec.Name, rec.Department, rec.Date, rec.ClockIn, clockOut, totalHours}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("write csv row: %w", err)
		}
	}

	cw.Flush()
	return cw.Error()
}
