package calc

import (
	"testing"
	"time"

	"github.com/nilehr/attendance-backend-go/internal/domain/attendance"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func at(y int, m time.Month, d, hh, mm int) *time.Time {
	t := time.Date(y, m, d, hh, mm, 0, 0, time.UTC)
	return &t
}

func TestWorkingMinutes(t *testing.T) {
	c := NewCalculator()

	got, err := c.WorkingMinutes(
		time.Date(2024, 3, 4, 9, 15, 0, 0, time.UTC),
		time.Date(2024, 3, 4, 17, 30, 0, 0, time.UTC),
	)
	require.NoError(t, err)
	assert.Equal(t, 495, got)

	// checkout before checkin
	_, err = c.WorkingMinutes(
		time.Date(2024, 3, 4, 17, 0, 0, 0, time.UTC),
		time.Date(2024, 3, 4, 9, 0, 0, 0, time.UTC),
	)
	assert.ErrorIs(t, err, attendance.ErrInvalidTimeRange)

	// checkout equal to checkin
	same := time.Date(2024, 3, 4, 9, 0, 0, 0, time.UTC)
	_, err = c.WorkingMinutes(same, same)
	assert.ErrorIs(t, err, attendance.ErrInvalidTimeRange)
}

func TestIsLateArrival(t *testing.T) {
	c := NewCalculator()

	tests := []struct {
		name    string
		checkIn time.Time
		want    bool
	}{
		{"well before threshold", time.Date(2024, 3, 4, 8, 0, 0, 0, time.UTC), false},
		{"exactly 09:30 is on time", time.Date(2024, 3, 4, 9, 30, 0, 0, time.UTC), false},
		{"one second after 09:30 is late", time.Date(2024, 3, 4, 9, 30, 1, 0, time.UTC), true},
		{"09:31 is late", time.Date(2024, 3, 4, 9, 31, 0, 0, time.UTC), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, c.IsLateArrival(tt.checkIn))
		})
	}
}

func TestIsWorkingDay(t *testing.T) {
	c := NewCalculator()
	holidays := NewHolidayCalendar([]time.Time{day(2024, 3, 11)})

	assert.True(t, c.IsWorkingDay(day(2024, 3, 4), holidays))   // Monday
	assert.False(t, c.IsWorkingDay(day(2024, 3, 8), holidays))  // Friday rest day
	assert.False(t, c.IsWorkingDay(day(2024, 3, 11), holidays)) // holiday
	assert.True(t, c.IsWorkingDay(day(2024, 3, 9), holidays))   // Saturday is worked
}

func TestExpectedWorkingDays(t *testing.T) {
	c := NewCalculator()

	// March 2024 has 31 days, 5 Fridays (1, 8, 15, 22, 29)
	assert.Equal(t, 26, c.ExpectedWorkingDays(2024, 3, NewHolidayCalendar(nil)))

	// one holiday on a non-Friday removes a day
	holidays := NewHolidayCalendar([]time.Time{day(2024, 3, 11)})
	assert.Equal(t, 25, c.ExpectedWorkingDays(2024, 3, holidays))

	// holiday on a Friday changes nothing
	fridayHoliday := NewHolidayCalendar([]time.Time{day(2024, 3, 8)})
	assert.Equal(t, 26, c.ExpectedWorkingDays(2024, 3, fridayHoliday))
}

func TestAggregateMonth(t *testing.T) {
	c := NewCalculator()

	records := []attendance.Attendance{
		{
			DayType:             attendance.DayTypeWorkingDay,
			CheckIn:             at(2024, 3, 4, 9, 15),
			CheckOut:            at(2024, 3, 4, 17, 30),
			TotalWorkingMinutes: 495,
			OvertimeMinutes:     -15,
			ExtraExpenses:       decimal.NewFromInt(100),
		},
		{
			DayType:       attendance.DayTypeVacation,
			ExtraExpenses: decimal.Zero,
		},
		{
			DayType:       attendance.DayTypeSickLeave,
			ExtraExpenses: decimal.Zero,
		},
		{
			// incomplete working day: checked in, never out
			DayType:       attendance.DayTypeWorkingDay,
			CheckIn:       at(2024, 3, 7, 9, 0),
			ExtraExpenses: decimal.NewFromInt(50),
		},
		{
			DayType:       attendance.DayTypeAbsence,
			ExtraExpenses: decimal.Zero,
		},
		{
			DayType:       attendance.DayTypeHoliday,
			ExtraExpenses: decimal.Zero,
		},
	}

	totals := c.AggregateMonth(records, 20)

	assert.Equal(t, 3, totals.WorkingDays) // complete day + vacation + sick
	assert.Equal(t, 495+480+480, totals.TotalWorkingMinutes)
	assert.Equal(t, -15, totals.OvertimeMinutes)
	assert.Equal(t, 15, totals.AbsenceDays) // 20 expected - 3 worked - 2 unworked
	assert.True(t, totals.ExtraExpenses.Equal(decimal.NewFromInt(150)))
}

// Regression: incomplete days and explicit absences share one counter, so
// with 22 expected days, 20 complete days, 1 incomplete and 1 absence the
// shortfall is fully explained and no extra absence day is derived.
func TestAggregateMonthAbsenceCounter(t *testing.T) {
	c := NewCalculator()

	var records []attendance.Attendance
	for i := 0; i < 20; i++ {
		records = append(records, attendance.Attendance{
			DayType:             attendance.DayTypeWorkingDay,
			CheckIn:             at(2024, 4, 1+i, 9, 0),
			CheckOut:            at(2024, 4, 1+i, 17, 0),
			TotalWorkingMinutes: 480,
			ExtraExpenses:       decimal.Zero,
		})
	}
	records = append(records,
		attendance.Attendance{
			DayType:       attendance.DayTypeWorkingDay,
			CheckIn:       at(2024, 4, 22, 9, 0),
			ExtraExpenses: decimal.Zero,
		},
		attendance.Attendance{DayType: attendance.DayTypeAbsence, ExtraExpenses: decimal.Zero},
	)

	totals := c.AggregateMonth(records, 22)

	assert.Equal(t, 20, totals.WorkingDays)
	assert.Equal(t, 0, totals.AbsenceDays)
}

func TestAggregateMonthNeverNegativeAbsence(t *testing.T) {
	c := NewCalculator()

	// more worked days than expected (e.g. holidays were worked anyway)
	var records []attendance.Attendance
	for i := 0; i < 5; i++ {
		records = append(records, attendance.Attendance{
			DayType:             attendance.DayTypeWorkingDay,
			CheckIn:             at(2024, 4, 1+i, 9, 0),
			CheckOut:            at(2024, 4, 1+i, 17, 0),
			TotalWorkingMinutes: 480,
			ExtraExpenses:       decimal.Zero,
		})
	}

	totals := c.AggregateMonth(records, 3)
	assert.Equal(t, 0, totals.AbsenceDays)
}

func TestMonthlySalary(t *testing.T) {
	c := NewCalculator()

	base, total := c.MonthlySalary(
		12000,
		decimal.NewFromFloat(5.0),
		decimal.NewFromInt(1000),
		decimal.NewFromInt(500),
	)

	assert.True(t, base.Equal(decimal.NewFromInt(60000)), "base = %s", base)
	assert.True(t, total.Equal(decimal.NewFromInt(61500)), "total = %s", total)
}

func TestMonthlySalaryRounding(t *testing.T) {
	c := NewCalculator()

	base, total := c.MonthlySalary(
		3,
		decimal.NewFromFloat(0.333),
		decimal.Zero,
		decimal.Zero,
	)

	// 3 * 0.333 = 0.999 -> 1.00
	assert.Equal(t, "1.00", base.StringFixed(2))
	assert.Equal(t, "1.00", total.StringFixed(2))
}

func TestSplitMinutesRoundTrip(t *testing.T) {
	c := NewCalculator()

	for _, total := range []int{0, 59, 60, 61, 495, 480, 12345} {
		hours, minutes := c.SplitMinutes(total)
		assert.Equal(t, total, hours*60+minutes)
		assert.Less(t, minutes, 60)
	}
}

func TestLastNWorkingDays(t *testing.T) {
	c := NewCalculator()
	holidays := NewHolidayCalendar(nil)

	// ref Monday 2024-03-04; preceding working days skip Friday 03-01
	days := c.LastNWorkingDays(day(2024, 3, 4), 5, holidays)

	require.Len(t, days, 5)
	assert.Equal(t, day(2024, 2, 27), days[0])
	assert.Equal(t, day(2024, 2, 28), days[1])
	assert.Equal(t, day(2024, 2, 29), days[2])
	assert.Equal(t, day(2024, 3, 2), days[3]) // Saturday, worked
	assert.Equal(t, day(2024, 3, 3), days[4])
}
