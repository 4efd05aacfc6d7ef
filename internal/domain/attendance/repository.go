package attendance

import (
	"context"
	"time"
)

// AttendanceRepository defines data access methods for attendance records.
type AttendanceRepository interface {
	// Create creates a new attendance record. The unique
	// (employee_id, attendance_date) index rejects duplicates.
	Create(ctx context.Context, attendance Attendance) (Attendance, error)

	// GetByID retrieves an attendance record by ID
	GetByID(ctx context.Context, id string) (Attendance, error)

	// GetByEmployeeAndDate retrieves the record for one employee on one date.
	// Returns nil when no record exists; used to prevent double check-in.
	GetByEmployeeAndDate(ctx context.Context, employeeID string, date time.Time) (*Attendance, error)

	// ListByEmployeeAndMonth retrieves all records for a calendar month ordered by date
	ListByEmployeeAndMonth(ctx context.Context, employeeID string, year, month int) ([]Attendance, error)

	// ListByEmployeeAndRange retrieves records between two dates inclusive
	ListByEmployeeAndRange(ctx context.Context, employeeID string, from, to time.Time) ([]Attendance, error)

	// Update updates an existing attendance record
	Update(ctx context.Context, attendance Attendance) error

	// Delete removes an attendance record
	Delete(ctx context.Context, id string) error
}
