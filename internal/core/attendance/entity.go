package attendance

import (
	"strings"
	"time"
)

// Status は勤怠レコードの状態を表します。
type Status string

const (
	StatusClockedIn  Status = "clocked-in"
	StatusOnBreak    Status = "on-break"
	StatusOnLunch    Status = "on-lunch"
	StatusClockedOut Status = "clocked-out"
)

// Valid は既知の状態かどうかを返します。
func (s Status) Valid() bool {
	switch s {
	case StatusClockedIn, StatusOnBreak, StatusOnLunch, StatusClockedOut:
		return true
	default:
		return false
	}
}

// Record は一人のユーザーの一回のシフトを表す勤怠レコードです。
// 打刻時刻は表示書式の文字列、date は打刻時に一度だけ確定する日付キーです。
type Record struct {
	ID         string
	UserID     string
	Name       string
	Department string
	Date       string
	ClockIn    string
	ClockOut   *string
	BreakStart *string
	BreakEnd   *string
	LunchStart *string
	LunchEnd   *string
	TotalHours *float64
	BreakHours *float64
	LunchHours *float64
	Status     Status
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// NewRecord は打刻開始時点のレコードを構築します。必須フィールドを検証し、
// 状態は clocked-in、ID は永続化されるまで空のままです。
func NewRecord(userID, name, department, clockIn, date string) (*Record, error) {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return nil, ErrInvalidUserID
	}

	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrInvalidName
	}

	department = strings.TrimSpace(department)
	if department == "" {
		return nil, ErrInvalidDepartment
	}

	if strings.TrimSpace(clockIn) == "" {
		return nil, ErrInvalidClockIn
	}

	if strings.TrimSpace(date) == "" {
		return nil, ErrInvalidDate
	}

	return &Record{
		UserID:     userID,
		Name:       name,
		Department: department,
		Date:       date,
		ClockIn:    clockIn,
		Status:     StatusClockedIn,
	}, nil
}

// IsActive は未退勤(clocked-in / on-break / on-lunch)かどうかを返します。
func (r *Record) IsActive() bool {
	switch r.Status {
	case StatusClockedIn, StatusOnBreak, StatusOnLunch:
		return true
	default:
		return false
	}
}

// IsTerminal は退勤済みで以降の遷移が無いことを返します。
func (r *Record) IsTerminal() bool {
	return r.Status == StatusClockedOut
}
