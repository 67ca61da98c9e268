package attendance

import (
	"errors"
	"testing"
)

func TestNewRecord_Success(t *testing.T) {
	t.Parallel()

	rec, err := NewRecord(" user-1 ", " Jane Cruz ", " GIS ", "01/01/2024, 09:00:00 AM", "01/01/2024")
	if err != nil {
		t.Fatalf("NewRecord returned error: %v", err)
	}

	if rec.UserID != "user-1" || rec.Name != "Jane Cruz" || rec.Department != "GIS" {
		t.Fatalf("expected trimmed fields, got %+v", rec)
	}
	if rec.Status != StatusClockedIn {
		t.Fatalf("expected status clocked-in, got %s", rec.Status)
	}
	if rec.ID != "" {
		t.Fatalf("expected empty id before persistence, got %s", rec.ID)
	}
	if rec.ClockOut != nil || rec.TotalHours != nil {
		t.Fatalf("expected nullable fields unset, got %+v", rec)
	}
}

func TestNewRecord_RequiredFields(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name                                  string
		userID, fullName, dept, clockIn, date string
		want                                  error
	}{
		{"missing user id", "", "Jane", "GIS", "01/01/2024, 09:00:00 AM", "01/01/2024", ErrInvalidUserID},
		{"missing name", "user-1", "  ", "GIS", "01/01/2024, 09:00:00 AM", "01/01/2024", ErrInvalidName},
		{"missing department", "user-1", "Jane", "", "01/01/2024, 09:00:00 AM", "01/01/2024", ErrInvalidDepartment},
		{"missing clock-in", "user-1", "Jane", "GIS", "", "01/01/2024", ErrInvalidClockIn},
		{"missing date", "user-1", "Jane", "GIS", "01/01/2024, 09:00:00 AM", " ", ErrInvalidDate},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			_, err := NewRecord(tc.userID, tc.fullName, tc.dept, tc.clockIn, tc.date)
			if !errors.Is(err, tc.want) {
				t.Fatalf("expected %v, got %v", tc.want, err)
			}
		})
	}
}

func TestRecord_Predicates(t *testing.T) {
	t.Parallel()

	for _, status := range []Status{StatusClockedIn, StatusOnBreak, StatusOnLunch} {
		rec := &Record{Status: status}
		if !rec.IsActive() {
			t.Errorf("expected %s to be active", status)
		}
		if rec.IsTerminal() {
			t.Errorf("expected %s not to be terminal", status)
		}
	}

	rec := &Record{Status: StatusClockedOut}
	if rec.IsActive() {
		t.Error("expected clocked-out not to be active")
	}
	if !rec.IsTerminal() {
		t.Error("expected clocked-out to be terminal")
	}
}

func TestStatus_Valid(t *testing.T) {
	t.Parallel()

	for _, status := range []Status{StatusClockedIn, StatusOnBreak, StatusOnLunch, StatusClockedOut} {
		if !status.Valid() {
			t.Errorf("expected %s to be valid", status)
		}
	}

	if Status("off-duty").Valid() {
		t.Error("expected unknown status to be invalid")
	}
}
