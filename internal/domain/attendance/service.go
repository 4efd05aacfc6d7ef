package attendance

import (
	"context"
)

// AttendanceService defines business logic for employee-facing attendance operations
type AttendanceService interface {
	// CheckIn records arrival time for today. Fails if already checked in.
	CheckIn(ctx context.Context, req CheckInRequest) (AttendanceResponse, error)

	// CheckOut records departure time and computes worked minutes
	CheckOut(ctx context.Context, req CheckOutRequest) (AttendanceResponse, error)

	// TodayStatus reports check-in state for the dashboard
	TodayStatus(ctx context.Context, employeeID string) (TodayStatusResponse, error)

	// UpdateComments edits the free-text comment (edit window gated)
	UpdateComments(ctx context.Context, req UpdateCommentsRequest) (AttendanceResponse, error)

	// UpdateExpenses edits reimbursable expenses (edit window gated)
	UpdateExpenses(ctx context.Context, req UpdateExpensesRequest) (AttendanceResponse, error)

	// GetMyAttendance lists records for the authenticated employee's month
	GetMyAttendance(ctx context.Context, filter MyAttendanceFilter) (ListAttendanceResponse, error)
}

// AdminAttendanceService defines admin corrections over attendance records
type AdminAttendanceService interface {
	// SetOvertime sets a manual overtime adjustment in minutes, positive or negative
	SetOvertime(ctx context.Context, req SetOvertimeRequest) (AttendanceResponse, error)

	// ChangeDayType reclassifies a day (working day, holiday, vacation, sick, absence)
	ChangeDayType(ctx context.Context, req ChangeDayTypeRequest) (AttendanceResponse, error)

	// UpdateCheckTimes fixes wrong or missing check-in/check-out times
	UpdateCheckTimes(ctx context.Context, req UpdateCheckTimesRequest) (AttendanceResponse, error)

	// CreateAttendance backfills a record within the trailing creation window
	CreateAttendance(ctx context.Context, req CreateAttendanceRequest) (AttendanceResponse, error)

	// DeleteAttendance removes a record and recalculates its month
	DeleteAttendance(ctx context.Context, id string) error
}
