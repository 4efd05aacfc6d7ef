package attendance

import "errors"

// Attendance domain errors
var (
	// Check-in errors
	ErrAlreadyCheckedIn  = errors.New("you have already checked in today")
	ErrNotCheckedIn      = errors.New("you have not checked in yet")
	ErrAlreadyCheckedOut = errors.New("you have already checked out")

	// General errors
	ErrAttendanceNotFound    = errors.New("attendance record not found")
	ErrAttendanceExists      = errors.New("attendance record already exists for this date")
	ErrInvalidTimeRange      = errors.New("check-out time must be after check-in time")
	ErrInvalidDayType        = errors.New("invalid day type")
	ErrOvertimeOutOfRange    = errors.New("overtime must be between -720 and 720 minutes")
	ErrOutsideEditablePeriod = errors.New("record is outside the editable period")
	ErrOutsideCreationWindow = errors.New("date is outside the allowed creation window")
	ErrUnauthorized          = errors.New("unauthorized to access this attendance record")
)
