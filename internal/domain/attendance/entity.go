package attendance

import (
	"time"

	"github.com/shopspring/decimal"
)

type DayType string

const (
	DayTypeWorkingDay DayType = "working_day"
	DayTypeHoliday    DayType = "holiday"
	DayTypeVacation   DayType = "normal_vacation"
	DayTypeSickLeave  DayType = "sick_leave"
	DayTypeAbsence    DayType = "absence"
)

// ValidDayTypes lists the accepted day_type values in request order.
var ValidDayTypes = []string{
	string(DayTypeWorkingDay),
	string(DayTypeHoliday),
	string(DayTypeVacation),
	string(DayTypeSickLeave),
	string(DayTypeAbsence),
}

// OvertimeLimitMinutes bounds manual overtime adjustments to half a day
// in either direction.
const OvertimeLimitMinutes = 720

type Attendance struct {
	ID                  string
	EmployeeID          string
	Date                time.Time // date only, normalized to midnight
	CheckIn             *time.Time
	CheckOut            *time.Time
	TotalWorkingMinutes int
	OvertimeMinutes     int
	ExtraExpenses       decimal.Decimal
	Comments            *string
	DayType             DayType
	IsLate              bool
	CreatedAt           time.Time
	UpdatedAt           time.Time

	// DTO
	EmployeeName *string
}

// IsComplete reports whether both check times are recorded.
func (a *Attendance) IsComplete() bool {
	return a.CheckIn != nil && a.CheckOut != nil
}
