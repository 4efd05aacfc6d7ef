package response

import (
	"errors"
	"net/http"

	"github.com/nilehr/attendance-backend-go/internal/domain/attendance"
	"github.com/nilehr/attendance-backend-go/internal/domain/auth"
	"github.com/nilehr/attendance-backend-go/internal/domain/employee"
	"github.com/nilehr/attendance-backend-go/internal/domain/holiday"
	"github.com/nilehr/attendance-backend-go/internal/domain/summary"
	"github.com/nilehr/attendance-backend-go/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	// Check if it's a validation error
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	// Auth domain errors
	switch {
	case errors.Is(err, auth.ErrInvalidCredentials):
		Unauthorized(w, "Invalid username or password")
	case errors.Is(err, auth.ErrInvalidToken):
		Unauthorized(w, "Invalid token")
	case errors.Is(err, auth.ErrTokenExpired):
		Unauthorized(w, "Token expired")
	case errors.Is(err, auth.ErrRefreshTokenRevoked):
		Unauthorized(w, "Refresh token revoked")
	case errors.Is(err, auth.ErrWrongPassword):
		BadRequest(w, "Current password is incorrect", nil)

	// Employee domain errors
	case errors.Is(err, employee.ErrEmployeeNotFound):
		NotFound(w, "Employee not found")
	case errors.Is(err, employee.ErrUsernameExists):
		Conflict(w, "Username already taken")
	case errors.Is(err, employee.ErrEmployeeLimitReached):
		Conflict(w, "Employee limit reached")
	case errors.Is(err, employee.ErrEmployeeInactive):
		Forbidden(w, "Account is deactivated")
	case errors.Is(err, employee.ErrAdminPrivilegeRequired):
		Forbidden(w, "Admin privilege required")

	// Attendance domain errors
	case errors.Is(err, attendance.ErrAttendanceNotFound):
		NotFound(w, "Attendance record not found")
	case errors.Is(err, attendance.ErrAttendanceExists):
		Conflict(w, "Attendance record already exists for this date")
	case errors.Is(err, attendance.ErrAlreadyCheckedIn):
		Conflict(w, "Already checked in today")
	case errors.Is(err, attendance.ErrAlreadyCheckedOut):
		Conflict(w, "Already checked out today")
	case errors.Is(err, attendance.ErrNotCheckedIn):
		BadRequest(w, "Not checked in yet", nil)
	case errors.Is(err, attendance.ErrInvalidTimeRange):
		BadRequest(w, "Check-out must be after check-in", nil)
	case errors.Is(err, attendance.ErrOutsideEditablePeriod):
		Forbidden(w, "Record is outside the editable period")
	case errors.Is(err, attendance.ErrOutsideCreationWindow):
		Forbidden(w, "Date is outside the creation window")
	case errors.Is(err, attendance.ErrUnauthorized):
		Forbidden(w, "Not allowed to modify this record")

	// Summary domain errors
	case errors.Is(err, summary.ErrSummaryNotFound):
		NotFound(w, "Monthly summary not found")
	case errors.Is(err, summary.ErrInvalidPeriod):
		BadRequest(w, "Invalid year or month", nil)

	// Holiday domain errors
	case errors.Is(err, holiday.ErrHolidayNotFound):
		NotFound(w, "Holiday not found")
	case errors.Is(err, holiday.ErrHolidayExists):
		Conflict(w, "Holiday already exists on this date")

	// Default
	default:
		InternalServerError(w, "An unexpected error occurred")
	}
}
