package calc

import (
	"time"

	"github.com/nilehr/attendance-backend-go/internal/domain/attendance"
	"github.com/shopspring/decimal"
)

const (
	// LateArrivalHour/Minute: arrivals strictly after 09:30 count as late
	LateArrivalHour   = 9
	LateArrivalMinute = 30

	// StandardDayMinutes is credited for vacation and sick leave days
	StandardDayMinutes = 480

	// RestDay is the weekly rest day
	RestDay = time.Friday
)

// HolidayCalendar is a set of holiday dates keyed by YYYY-MM-DD.
type HolidayCalendar map[string]struct{}

func NewHolidayCalendar(dates []time.Time) HolidayCalendar {
	cal := make(HolidayCalendar, len(dates))
	for _, d := range dates {
		cal[d.Format("2006-01-02")] = struct{}{}
	}
	return cal
}

func (c HolidayCalendar) Contains(date time.Time) bool {
	_, ok := c[date.Format("2006-01-02")]
	return ok
}

// MonthTotals is the raw aggregation of one employee month.
type MonthTotals struct {
	WorkingDays         int
	AbsenceDays         int
	TotalWorkingMinutes int
	OvertimeMinutes     int
	ExtraExpenses       decimal.Decimal
}

// Calculator implements the time and salary arithmetic. It is pure: no
// storage access, no clock access, all inputs are passed in.
type Calculator struct{}

func NewCalculator() *Calculator {
	return &Calculator{}
}

// WorkingMinutes returns whole minutes between check-in and check-out on the
// same day. Seconds are truncated.
func (c *Calculator) WorkingMinutes(checkIn, checkOut time.Time) (int, error) {
	if !checkOut.After(checkIn) {
		return 0, attendance.ErrInvalidTimeRange
	}
	return int(checkOut.Sub(checkIn).Minutes()), nil
}

// IsLateArrival reports whether the check-in wall clock is strictly after
// 09:30. Exactly 09:30:00 is on time.
func (c *Calculator) IsLateArrival(checkIn time.Time) bool {
	threshold := time.Date(checkIn.Year(), checkIn.Month(), checkIn.Day(),
		LateArrivalHour, LateArrivalMinute, 0, 0, checkIn.Location())
	return checkIn.After(threshold)
}

// IsWorkingDay reports whether a date is expected to be worked: not the
// weekly rest day and not a registered holiday.
func (c *Calculator) IsWorkingDay(date time.Time, holidays HolidayCalendar) bool {
	if date.Weekday() == RestDay {
		return false
	}
	return !holidays.Contains(date)
}

// ExpectedWorkingDays counts working days in a calendar month.
func (c *Calculator) ExpectedWorkingDays(year, month int, holidays HolidayCalendar) int {
	first := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	count := 0
	for d := first; d.Month() == time.Month(month); d = d.AddDate(0, 0, 1) {
		if c.IsWorkingDay(d, holidays) {
			count++
		}
	}
	return count
}

// AggregateMonth folds a month of attendance records into totals.
//
// Complete working days contribute their minutes and overtime. Vacation and
// sick days count as worked at the standard day credit. Incomplete working
// days and explicit absence records share one counter that reduces the
// shortfall below; absence days are whatever remains of the expected count.
func (c *Calculator) AggregateMonth(records []attendance.Attendance, expectedWorkingDays int) MonthTotals {
	totals := MonthTotals{ExtraExpenses: decimal.Zero}
	unworked := 0

	for _, rec := range records {
		totals.ExtraExpenses = totals.ExtraExpenses.Add(rec.ExtraExpenses)

		switch rec.DayType {
		case attendance.DayTypeWorkingDay:
			if rec.IsComplete() {
				totals.WorkingDays++
				totals.TotalWorkingMinutes += rec.TotalWorkingMinutes
				totals.OvertimeMinutes += rec.OvertimeMinutes
			} else {
				unworked++
			}
		case attendance.DayTypeVacation, attendance.DayTypeSickLeave:
			totals.WorkingDays++
			totals.TotalWorkingMinutes += StandardDayMinutes
		case attendance.DayTypeAbsence:
			unworked++
		case attendance.DayTypeHoliday:
			// no contribution
		}
	}

	totals.AbsenceDays = expectedWorkingDays - totals.WorkingDays - unworked
	if totals.AbsenceDays < 0 {
		totals.AbsenceDays = 0
	}

	return totals
}

// MonthlySalary computes pay for a month. The caller folds overtime into
// totalMinutes; every minute is paid at the same rate. Both results are
// rounded to two decimal places.
func (c *Calculator) MonthlySalary(totalMinutes int, minuteCost, bonus, expenses decimal.Decimal) (base, total decimal.Decimal) {
	base = minuteCost.Mul(decimal.NewFromInt(int64(totalMinutes))).Round(2)
	total = base.Add(expenses).Add(bonus).Round(2)
	return base, total
}

// SplitMinutes converts a minute total into hours plus leftover minutes.
func (c *Calculator) SplitMinutes(total int) (hours, minutes int) {
	return total / 60, total % 60
}

// LastNWorkingDays returns the n working days closest before ref, oldest
// first. Used by the dashboard to show the tail of the previous month.
func (c *Calculator) LastNWorkingDays(ref time.Time, n int, holidays HolidayCalendar) []time.Time {
	var days []time.Time
	d := time.Date(ref.Year(), ref.Month(), ref.Day(), 0, 0, 0, 0, time.UTC)
	for len(days) < n {
		d = d.AddDate(0, 0, -1)
		if c.IsWorkingDay(d, holidays) {
			days = append(days, d)
		}
	}
	// reverse to chronological order
	for i, j := 0, len(days)-1; i < j; i, j = i+1, j-1 {
		days[i], days[j] = days[j], days[i]
	}
	return days
}
