package postgres

import (
	"context"
	"database/sql"
	"errors"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/Grazus98/ATTENDANCE-TRACKER-WAH/internal/core/attendance"
	pgdb "github.com/Grazus98/ATTENDANCE-TRACKER-WAH/internal/platform/db/postgres"
)

const attendanceColumns = `
        id,
        user_id,
        name,
        department,
        date,
        clock_in,
        clock_out,
        break_start,
        break_end,
        lunch_start,
        lunch_end,
        total_hours,
        break_hours,
        lunch_hours,
        status,
        created_at,
        updated_at`

// AttendanceRepository は PostgreSQL を利用した勤怠レコード永続化の実装です。
type AttendanceRepository struct {
	pool pgdb.Queryer
}

// NewAttendanceRepository は AttendanceRepository を生成します。
func NewAttendanceRepository(pool pgdb.Queryer) *AttendanceRepository {
	return &AttendanceRepository{pool: pool}
}

// Create は勤怠レコードを新規作成します。ID はここで採番します。
func (r *AttendanceRepository) Create(ctx context.Context, rec *attendance.Record) (*attendance.Record, error) {
	exec := pgdb.QueryerFromContext(ctx, r.pool)
	row := exec.QueryRow(ctx, `
        INSERT INTO attendance_records (id, user_id, name, department, date, clock_in, status, created_at, updated_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7, NOW(), NOW())
        RETURNING`+attendanceColumns+`
    `,
		uuid.NewString(),
		rec.UserID,
		rec.Name,
		rec.Department,
		rec.Date,
		rec.ClockIn,
		string(rec.Status),
	)

	created, err := scanAttendanceRecord(row)
	if err != nil {
		return nil, translateAttendancePgError(err)
	}
	return created, nil
}

// Update は指定フィールドのみを更新し、更新後のレコードを返します。
func (r *AttendanceRepository) Update(ctx context.Context, id string, update attendance.Update) (*attendance.Record, error) {
	if strings.TrimSpace(id) == "" {
		return nil, attendance.ErrInvalidID
	}
	if update.IsEmpty() {
		return nil, attendance.ErrEmptyUpdate
	}

	args := make([]any, 0, 10)
	assignments := make([]string, 0, 10)

	appendSet := func(column string, value any) {
		args = append(args, value)
		assignments = append(assignments, column+" = $"+strconv.Itoa(len(args)))
	}

	if update.ClockOut != nil {
		appendSet("clock_out", *update.ClockOut)
	}
	if update.BreakStart != nil {
		appendSet("break_start", *update.BreakStart)
	}
	if update.BreakEnd != nil {
		appendSet("break_end", *update.BreakEnd)
	}
	if update.LunchStart != nil {
		appendSet("lunch_start", *update.LunchStart)
	}
	if update.LunchEnd != nil {
		appendSet("lunch_end", *update.LunchEnd)
	}
	if update.TotalHours != nil {
		appendSet("total_hours", *update.TotalHours)
	}
	if update.BreakHours != nil {
		appendSet("break_hours", *update.BreakHours)
	}
	if update.LunchHours != nil {
		appendSet("lunch_hours", *update.LunchHours)
	}
	if update.Status != nil {
		appendSet("status", string(*update.Status))
	}
	assignments = append(assignments, "updated_at = NOW()")

	args = append(args, id)
	idPlaceholder := "$" + strconv.Itoa(len(args))

	query := `
        UPDATE attendance_records
           SET ` + strings.Join(assignments, ",\n               ") + `
         WHERE id = ` + idPlaceholder + `
        RETURNING` + attendanceColumns + `
    `

	exec := pgdb.QueryerFromContext(ctx, r.pool)
	row := exec.QueryRow(ctx, query, args...)

	updated, err := scanAttendanceRecord(row)
	if err != nil {
		return nil, translateAttendancePgError(err)
	}
	return updated, nil
}

// FindByID は ID で勤怠レコードを取得します。
func (r *AttendanceRepository) FindByID(ctx context.Context, id string) (*attendance.Record, error) {
	exec := pgdb.QueryerFromContext(ctx, r.pool)
	row := exec.QueryRow(ctx, `
        SELECT`+attendanceColumns+`
          FROM attendance_records
         WHERE id = $1
         LIMIT 1
    `, id)

	found, err := scanAttendanceRecord(row)
	if err != nil {
		return nil, translateAttendancePgError(err)
	}
	return found, nil
}

// FindActiveByUser はユーザーの未退勤レコードを取得します。複数ある場合は
// 作成日時の最も新しいものを返します。
func (r *AttendanceRepository) FindActiveByUser(ctx context.Context, userID string) (*attendance.Record, error) {
	exec := pgdb.QueryerFromContext(ctx, r.pool)
	row := exec.QueryRow(ctx, `
        SELECT`+attendanceColumns+`
          FROM attendance_records
         WHERE user_id = $1
           AND status IN ('clocked-in', 'on-break', 'on-lunch')
         ORDER BY created_at DESC, id ASC
         LIMIT 1
    `, userID)

	found, err := scanAttendanceRecord(row)
	if err != nil {
		return nil, translateAttendancePgError(err)
	}
	return found, nil
}

// ListByUser はユーザーの勤怠レコードを新しい順に取得します。
func (r *AttendanceRepository) ListByUser(ctx context.Context, userID string) ([]*attendance.Record, error) {
	return r.listWhere(ctx, "WHERE user_id = $1", userID)
}

// ListByDate は勤務日で勤怠レコードを取得します。
func (r *AttendanceRepository) ListByDate(ctx context.Context, date string) ([]*attendance.Record, error) {
	return r.listWhere(ctx, "WHERE date = $1", date)
}

// ListAll は全ての勤怠レコードを新しい順に取得します。
func (r *AttendanceRepository) ListAll(ctx context.Context) ([]*attendance.Record, error) {
	return r.listWhere(ctx, "")
}

func (r *AttendanceRepository) listWhere(ctx context.Context, whereClause string, args ...any) ([]*attendance.Record, error) {
	query := `
        SELECT` + attendanceColumns + `
          FROM attendance_records
         ` + whereClause + `
         ORDER BY created_at DESC, id ASC
    `

	exec := pgdb.QueryerFromContext(ctx, r.pool)
	rows, err := exec.Query(ctx, query, args...)
	if err != nil {
		return nil, translateAttendancePgError(err)
	}
	defer rows.Close()

	records := make([]*attendance.Record, 0)
	for rows.Next() {
		rec, err := scanAttendanceRecord(rows)
		if err != nil {
			return nil, translateAttendancePgError(err)
		}
		records = append(records, rec)
	}

	if err := rows.Err(); err != nil {
		return nil, translateAttendancePgError(err)
	}

	return records, nil
}

// DeleteAll は全ての勤怠レコードを削除します。
func (r *AttendanceRepository) DeleteAll(ctx context.Context) error {
	exec := pgdb.QueryerFromContext(ctx, r.pool)
	if _, err := exec.Exec(ctx, `DELETE FROM attendance_records`); err != nil {
		return translateAttendancePgError(err)
	}
	return nil
}

func scanAttendanceRecord(row pgx.Row) (*attendance.Record, error) {
	var (
		rec        attendance.Record
		status     string
		clockOut   sql.NullString
		breakStart sql.NullString
		breakEnd   sql.NullString
		lunchStart sql.NullString
		lunchEnd   sql.NullString
		totalHours sql.NullFloat64
		breakHours sql.NullFloat64
		lunchHours sql.NullFloat64
	)

	if err := row.Scan(
		&rec.ID,
		&rec.UserID,
		&rec.Name,
		&rec.Department,
		&rec.Date,
		&rec.ClockIn,
		&clockOut,
		&breakStart,
		&breakEnd,
		&lunchStart,
		&lunchEnd,
		&totalHours,
		&breakHours,
		&lunchHours,
		&status,
		&rec.CreatedAt,
		&rec.UpdatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, attendance.ErrRecordNotFound
		}
		return nil, err
	}

	rec.Status = attendance.Status(status)
	rec.ClockOut = nullableString(clockOut)
	rec.BreakStart = nullableString(breakStart)
	rec.BreakEnd = nullableString(breakEnd)
	rec.LunchStart = nullableString(lunchStart)
	rec.LunchEnd = nullableString(lunchEnd)
	rec.TotalHours = nullableFloat(totalHours)
	rec.BreakHours = nullableFloat(breakHours)
	rec.LunchHours = nullableFloat(lunchHours)

	return &rec, nil
}

func translateAttendancePgError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return attendance.ErrRecordNotFound
	}
	return err
}

func nullableString(value sql.NullString) *string {
	if !value.Valid {
		return nil
	}
	s := value.String
	return &s
}

func nullableFloat(value sql.NullFloat64) *float64 {
	if !value.Valid {
		return nil
	}
	f := value.Float64
	return &f
}
