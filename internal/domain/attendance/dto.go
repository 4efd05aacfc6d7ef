package attendance

import (
	"strings"
	"time"

	"github.com/nilehr/attendance-backend-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

type CheckInRequest struct {
	EmployeeID string  `json:"-"`
	At         *string `json:"at,omitempty"` // ISO8601, admin backfill; defaults to now
}

func (r *CheckInRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{
			Field:   "employee_id",
			Message: "employee_id is required",
		})
	}

	if r.At != nil && *r.At != "" {
		if _, valid := validator.IsValidDateTime(*r.At); !valid {
			errs = append(errs, validator.ValidationError{
				Field:   "at",
				Message: "at must be a valid ISO8601 timestamp",
			})
		}
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type CheckOutRequest struct {
	EmployeeID string  `json:"-"`
	At         *string `json:"at,omitempty"`
}

func (r *CheckOutRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{
			Field:   "employee_id",
			Message: "employee_id is required",
		})
	}

	if r.At != nil && *r.At != "" {
		if _, valid := validator.IsValidDateTime(*r.At); !valid {
			errs = append(errs, validator.ValidationError{
				Field:   "at",
				Message: "at must be a valid ISO8601 timestamp",
			})
		}
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type UpdateCommentsRequest struct {
	AttendanceID string  `json:"-"`
	Comments     *string `json:"comments"` // nil clears the comment
}

func (r *UpdateCommentsRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.AttendanceID) {
		errs = append(errs, validator.ValidationError{
			Field:   "attendance_id",
			Message: "attendance_id is required",
		})
	}

	if r.Comments != nil && len(*r.Comments) > 1000 {
		errs = append(errs, validator.ValidationError{
			Field:   "comments",
			Message: "comments must not exceed 1000 characters",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type UpdateExpensesRequest struct {
	AttendanceID  string          `json:"-"`
	ExtraExpenses decimal.Decimal `json:"extra_expenses"`
}

func (r *UpdateExpensesRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.AttendanceID) {
		errs = append(errs, validator.ValidationError{
			Field:   "attendance_id",
			Message: "attendance_id is required",
		})
	}

	if r.ExtraExpenses.IsNegative() {
		errs = append(errs, validator.ValidationError{
			Field:   "extra_expenses",
			Message: "extra_expenses must not be negative",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type SetOvertimeRequest struct {
	AttendanceID    string `json:"-"`
	OvertimeMinutes int    `json:"overtime_minutes"`
}

func (r *SetOvertimeRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.AttendanceID) {
		errs = append(errs, validator.ValidationError{
			Field:   "attendance_id",
			Message: "attendance_id is required",
		})
	}

	if r.OvertimeMinutes < -OvertimeLimitMinutes || r.OvertimeMinutes > OvertimeLimitMinutes {
		errs = append(errs, validator.ValidationError{
			Field:   "overtime_minutes",
			Message: "overtime_minutes must be between -720 and 720",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type ChangeDayTypeRequest struct {
	AttendanceID string `json:"-"`
	DayType      string `json:"day_type"`
}

func (r *ChangeDayTypeRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.AttendanceID) {
		errs = append(errs, validator.ValidationError{
			Field:   "attendance_id",
			Message: "attendance_id is required",
		})
	}

	if !validator.IsInSlice(strings.ToLower(r.DayType), ValidDayTypes) {
		errs = append(errs, validator.ValidationError{
			Field:   "day_type",
			Message: "day_type must be one of: working_day, holiday, normal_vacation, sick_leave, absence",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type UpdateCheckTimesRequest struct {
	AttendanceID string  `json:"-"`
	CheckInTime  *string `json:"check_in_time,omitempty"`  // ISO8601
	CheckOutTime *string `json:"check_out_time,omitempty"` // ISO8601
}

func (r *UpdateCheckTimesRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.AttendanceID) {
		errs = append(errs, validator.ValidationError{
			Field:   "attendance_id",
			Message: "attendance_id is required",
		})
	}

	if r.CheckInTime == nil && r.CheckOutTime == nil {
		errs = append(errs, validator.ValidationError{
			Field:   "check_in_time",
			Message: "at least one of check_in_time or check_out_time is required",
		})
	}

	if r.CheckInTime != nil && *r.CheckInTime != "" {
		if _, valid := validator.IsValidDateTime(*r.CheckInTime); !valid {
			errs = append(errs, validator.ValidationError{
				Field:   "check_in_time",
				Message: "check_in_time must be a valid ISO8601 timestamp",
			})
		}
	}

	if r.CheckOutTime != nil && *r.CheckOutTime != "" {
		if _, valid := validator.IsValidDateTime(*r.CheckOutTime); !valid {
			errs = append(errs, validator.ValidationError{
				Field:   "check_out_time",
				Message: "check_out_time must be a valid ISO8601 timestamp",
			})
		}
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

// CreateAttendanceRequest lets an admin backfill a record for a past date.
type CreateAttendanceRequest struct {
	EmployeeID   string  `json:"employee_id"`
	Date         string  `json:"date"` // YYYY-MM-DD
	DayType      string  `json:"day_type"`
	CheckInTime  *string `json:"check_in_time,omitempty"`
	CheckOutTime *string `json:"check_out_time,omitempty"`
	Comments     *string `json:"comments,omitempty"`
}

func (r *CreateAttendanceRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{
			Field:   "employee_id",
			Message: "employee_id is required",
		})
	}

	if _, valid := validator.IsValidDate(r.Date); !valid {
		errs = append(errs, validator.ValidationError{
			Field:   "date",
			Message: "date must be in YYYY-MM-DD format",
		})
	}

	if r.DayType == "" {
		r.DayType = string(DayTypeWorkingDay) // Default day type
	}
	if !validator.IsInSlice(strings.ToLower(r.DayType), ValidDayTypes) {
		errs = append(errs, validator.ValidationError{
			Field:   "day_type",
			Message: "day_type must be one of: working_day, holiday, normal_vacation, sick_leave, absence",
		})
	}

	if r.CheckInTime != nil && *r.CheckInTime != "" {
		if _, valid := validator.IsValidDateTime(*r.CheckInTime); !valid {
			errs = append(errs, validator.ValidationError{
				Field:   "check_in_time",
				Message: "check_in_time must be a valid ISO8601 timestamp",
			})
		}
	}

	if r.CheckOutTime != nil && *r.CheckOutTime != "" {
		if _, valid := validator.IsValidDateTime(*r.CheckOutTime); !valid {
			errs = append(errs, validator.ValidationError{
				Field:   "check_out_time",
				Message: "check_out_time must be a valid ISO8601 timestamp",
			})
		}
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type MyAttendanceFilter struct {
	EmployeeID string  `json:"-"`
	Year       int     `json:"year"`
	Month      int     `json:"month"`
	StartDate  *string `json:"start_date,omitempty"` // YYYY-MM-DD
	EndDate    *string `json:"end_date,omitempty"`   // YYYY-MM-DD
}

func (f *MyAttendanceFilter) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(f.EmployeeID) {
		errs = append(errs, validator.ValidationError{
			Field:   "employee_id",
			Message: "employee_id is required",
		})
	}

	now := time.Now()
	if f.Year == 0 {
		f.Year = now.Year() // Default to current month
	}
	if f.Month == 0 {
		f.Month = int(now.Month())
	}
	if f.Year < 2000 || f.Year > 2100 {
		errs = append(errs, validator.ValidationError{
			Field:   "year",
			Message: "year must be between 2000 and 2100",
		})
	}
	if f.Month < 1 || f.Month > 12 {
		errs = append(errs, validator.ValidationError{
			Field:   "month",
			Message: "month must be between 1 and 12",
		})
	}

	if f.StartDate != nil && *f.StartDate != "" {
		if _, valid := validator.IsValidDate(*f.StartDate); !valid {
			errs = append(errs, validator.ValidationError{
				Field:   "start_date",
				Message: "start_date must be in YYYY-MM-DD format",
			})
		}
	}

	if f.EndDate != nil && *f.EndDate != "" {
		if _, valid := validator.IsValidDate(*f.EndDate); !valid {
			errs = append(errs, validator.ValidationError{
				Field:   "end_date",
				Message: "end_date must be in YYYY-MM-DD format",
			})
		}
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type AttendanceResponse struct {
	ID                  string  `json:"id"`
	EmployeeID          string  `json:"employee_id"`
	EmployeeName        *string `json:"employee_name,omitempty"`
	Date                string  `json:"date"`
	CheckInTime         *string `json:"check_in_time,omitempty"`
	CheckOutTime        *string `json:"check_out_time,omitempty"`
	TotalWorkingMinutes int     `json:"total_working_minutes"`
	OvertimeMinutes     int     `json:"overtime_minutes"`
	ExtraExpenses       string  `json:"extra_expenses"`
	Comments            *string `json:"comments,omitempty"`
	DayType             string  `json:"day_type"`
	IsLate              bool    `json:"is_late"`
	IsEditable          bool    `json:"is_editable"`
}

type TodayStatusResponse struct {
	HasCheckedIn    bool                `json:"has_checked_in"`
	HasCheckedOut   bool                `json:"has_checked_out"`
	CanCheckIn      bool                `json:"can_check_in"`
	CanCheckOut     bool                `json:"can_check_out"`
	IsWorkingDay    bool                `json:"is_working_day"`
	TodayAttendance *AttendanceResponse `json:"today_attendance,omitempty"`
	Message         string              `json:"message"`
}

type ListAttendanceResponse struct {
	Year        int                  `json:"year"`
	Month       int                  `json:"month"`
	Attendances []AttendanceResponse `json:"attendances"`
}

// ToResponse converts an entity to its transport shape. Editability is
// decided by the caller since it depends on the current date.
func ToResponse(a Attendance, editable bool) AttendanceResponse {
	resp := AttendanceResponse{
		ID:                  a.ID,
		EmployeeID:          a.EmployeeID,
		EmployeeName:        a.EmployeeName,
		Date:                a.Date.Format("2006-01-02"),
		TotalWorkingMinutes: a.TotalWorkingMinutes,
		OvertimeMinutes:     a.OvertimeMinutes,
		ExtraExpenses:       a.ExtraExpenses.StringFixed(2),
		Comments:            a.Comments,
		DayType:             string(a.DayType),
		IsLate:              a.IsLate,
		IsEditable:          editable,
	}
	if a.CheckIn != nil {
		s := a.CheckIn.Format(time.RFC3339)
		resp.CheckInTime = &s
	}
	if a.CheckOut != nil {
		s := a.CheckOut.Format(time.RFC3339)
		resp.CheckOutTime = &s
	}
	return resp
}
