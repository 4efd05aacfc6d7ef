package summary

import (
	"time"

	"github.com/shopspring/decimal"
)

// MonthlySummary is the per-employee payroll rollup for one calendar month.
// All fields except Bonus are derived from attendance records and are
// overwritten on every recalculation; Bonus is set manually by an admin
// and survives recalculation.
type MonthlySummary struct {
	ID                  string
	EmployeeID          string
	Year                int
	Month               int
	WorkingDays         int
	AbsenceDays         int
	TotalWorkingHours   int
	TotalWorkingMinutes int // remainder after hours are split off
	OvertimeMinutes     int
	Bonus               decimal.Decimal
	Salary              decimal.Decimal
	CreatedAt           time.Time
	UpdatedAt           time.Time

	// DTO
	EmployeeName *string
}
