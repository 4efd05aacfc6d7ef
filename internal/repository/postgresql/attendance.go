package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/nilehr/attendance-backend-go/internal/domain/attendance"
	"github.com/nilehr/attendance-backend-go/internal/pkg/database"
)

type attendanceRepository struct {
	db *database.DB
}

func NewAttendanceRepository(db *database.DB) attendance.AttendanceRepository {
	return &attendanceRepository{db: db}
}

const attendanceColumns = `id, employee_id, attendance_date, check_in_time, check_out_time,
	   total_working_minutes, overtime_minutes, extra_expenses, comments,
	   day_type, is_late, created_at, updated_at`

func scanAttendance(row pgx.Row) (attendance.Attendance, error) {
	var att attendance.Attendance
	err := row.Scan(
		&att.ID, &att.EmployeeID, &att.Date, &att.CheckIn, &att.CheckOut,
		&att.TotalWorkingMinutes, &att.OvertimeMinutes, &att.ExtraExpenses, &att.Comments,
		&att.DayType, &att.IsLate, &att.CreatedAt, &att.UpdatedAt,
	)
	return att, err
}

// Create implements attendance.AttendanceRepository.
func (r *attendanceRepository) Create(ctx context.Context, newAttendance attendance.Attendance) (attendance.Attendance, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO attendance (
			employee_id, attendance_date, check_in_time, check_out_time,
			total_working_minutes, overtime_minutes, extra_expenses, comments,
			day_type, is_late
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10
		) RETURNING id, created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		newAttendance.EmployeeID,
		newAttendance.Date,
		newAttendance.CheckIn,
		newAttendance.CheckOut,
		newAttendance.TotalWorkingMinutes,
		newAttendance.OvertimeMinutes,
		newAttendance.ExtraExpenses,
		newAttendance.Comments,
		newAttendance.DayType,
		newAttendance.IsLate,
	).Scan(&newAttendance.ID, &newAttendance.CreatedAt, &newAttendance.UpdatedAt)

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return attendance.Attendance{}, attendance.ErrAttendanceExists
		}
		return attendance.Attendance{}, fmt.Errorf("failed to create attendance: %w", err)
	}

	return newAttendance, nil
}

// GetByID implements attendance.AttendanceRepository.
func (r *attendanceRepository) GetByID(ctx context.Context, id string) (attendance.Attendance, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + attendanceColumns + ` FROM attendance WHERE id = $1`

	att, err := scanAttendance(q.QueryRow(ctx, query, id))
	if err != nil {
		if err == pgx.ErrNoRows {
			return attendance.Attendance{}, attendance.ErrAttendanceNotFound
		}
		return attendance.Attendance{}, fmt.Errorf("failed to get attendance by id: %w", err)
	}

	return att, nil
}

// GetByEmployeeAndDate implements attendance.AttendanceRepository.
func (r *attendanceRepository) GetByEmployeeAndDate(ctx context.Context, employeeID string, date time.Time) (*attendance.Attendance, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + attendanceColumns + `
		FROM attendance
		WHERE employee_id = $1
		  AND attendance_date = $2
		LIMIT 1
	`

	att, err := scanAttendance(q.QueryRow(ctx, query, employeeID, date))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil // No existing attendance found
		}
		return nil, fmt.Errorf("failed to get attendance by employee and date: %w", err)
	}

	return &att, nil
}

// ListByEmployeeAndMonth implements attendance.AttendanceRepository.
func (r *attendanceRepository) ListByEmployeeAndMonth(ctx context.Context, employeeID string, year, month int) ([]attendance.Attendance, error) {
	from := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	to := from.AddDate(0, 1, -1)
	return r.ListByEmployeeAndRange(ctx, employeeID, from, to)
}

// ListByEmployeeAndRange implements attendance.AttendanceRepository.
func (r *attendanceRepository) ListByEmployeeAndRange(ctx context.Context, employeeID string, from, to time.Time) ([]attendance.Attendance, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + attendanceColumns + `
		FROM attendance
		WHERE employee_id = $1
		  AND attendance_date BETWEEN $2 AND $3
		ORDER BY attendance_date
	`

	rows, err := q.Query(ctx, query, employeeID, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to list attendance: %w", err)
	}
	defer rows.Close()

	var records []attendance.Attendance
	for rows.Next() {
		att, err := scanAttendance(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan attendance: %w", err)
		}
		records = append(records, att)
	}

	return records, rows.Err()
}

// Update implements attendance.AttendanceRepository.
func (r *attendanceRepository) Update(ctx context.Context, att attendance.Attendance) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE attendance
		SET check_in_time = $2, check_out_time = $3, total_working_minutes = $4,
			overtime_minutes = $5, extra_expenses = $6, comments = $7,
			day_type = $8, is_late = $9, updated_at = NOW()
		WHERE id = $1
	`

	tag, err := q.Exec(ctx, query,
		att.ID, att.CheckIn, att.CheckOut, att.TotalWorkingMinutes,
		att.OvertimeMinutes, att.ExtraExpenses, att.Comments,
		att.DayType, att.IsLate,
	)
	if err != nil {
		return fmt.Errorf("failed to update attendance: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return attendance.ErrAttendanceNotFound
	}

	return nil
}

// Delete implements attendance.AttendanceRepository.
func (r *attendanceRepository) Delete(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `DELETE FROM attendance WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete attendance: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return attendance.ErrAttendanceNotFound
	}

	return nil
}
