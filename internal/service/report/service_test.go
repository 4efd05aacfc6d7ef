package report

import (
	"context"
	"testing"
	"time"

	"github.com/nilehr/attendance-backend-go/internal/domain/attendance"
	"github.com/nilehr/attendance-backend-go/internal/domain/employee"
	"github.com/nilehr/attendance-backend-go/internal/domain/summary"
	"github.com/nilehr/attendance-backend-go/internal/service/calc"
	"github.com/nilehr/attendance-backend-go/internal/service/servicetest"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixture struct {
	svc            *ReportServiceImpl
	attendanceRepo *servicetest.AttendanceRepo
	employeeRepo   *servicetest.EmployeeRepo
	summaryRepo    *servicetest.SummaryRepo
	holidayRepo    *servicetest.HolidayRepo
	employeeID     string
	adminCtx       context.Context
	employeeCtx    context.Context
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	attendanceRepo := servicetest.NewAttendanceRepo()
	employeeRepo := servicetest.NewEmployeeRepo()
	summaryRepo := servicetest.NewSummaryRepo()
	holidayRepo := servicetest.NewHolidayRepo()

	emp, err := employeeRepo.Create(context.Background(), employee.Employee{
		Username:   "worker",
		FullName:   "Worker One",
		Role:       employee.RoleEmployee,
		MinuteCost: decimal.NewFromFloat(5.0),
		IsActive:   true,
	})
	require.NoError(t, err)

	svc := NewReportService(nil, attendanceRepo, employeeRepo, summaryRepo, holidayRepo, calc.NewCalculator())

	return &fixture{
		svc:            svc,
		attendanceRepo: attendanceRepo,
		employeeRepo:   employeeRepo,
		summaryRepo:    summaryRepo,
		holidayRepo:    holidayRepo,
		employeeID:     emp.ID,
		adminCtx:       servicetest.ContextWithClaims("admin-id", "admin"),
		employeeCtx:    servicetest.ContextWithClaims(emp.ID, "employee"),
	}
}

func (f *fixture) seedCompleteDay(t *testing.T, day int, minutes int, expenses decimal.Decimal) {
	t.Helper()
	in := time.Date(2024, 3, day, 9, 0, 0, 0, time.UTC)
	out := in.Add(time.Duration(minutes) * time.Minute)
	_, err := f.attendanceRepo.Create(context.Background(), attendance.Attendance{
		EmployeeID:          f.employeeID,
		Date:                time.Date(2024, 3, day, 0, 0, 0, 0, time.UTC),
		CheckIn:             &in,
		CheckOut:            &out,
		TotalWorkingMinutes: minutes,
		ExtraExpenses:       expenses,
		DayType:             attendance.DayTypeWorkingDay,
	})
	require.NoError(t, err)
}

func TestRecalculateIsIdempotent(t *testing.T) {
	f := newFixture(t)
	f.seedCompleteDay(t, 4, 480, decimal.NewFromInt(100))
	f.seedCompleteDay(t, 5, 495, decimal.Zero)

	first, err := f.svc.RecalculateMonth(context.Background(), f.employeeID, 2024, 3)
	require.NoError(t, err)

	second, err := f.svc.RecalculateMonth(context.Background(), f.employeeID, 2024, 3)
	require.NoError(t, err)

	assert.Equal(t, first.WorkingDays, second.WorkingDays)
	assert.Equal(t, first.AbsenceDays, second.AbsenceDays)
	assert.Equal(t, first.TotalWorkingHours, second.TotalWorkingHours)
	assert.Equal(t, first.TotalWorkingMinutes, second.TotalWorkingMinutes)
	assert.True(t, first.Salary.Equal(second.Salary))
	assert.True(t, first.Bonus.Equal(second.Bonus))
}

func TestRecalculatePreservesBonus(t *testing.T) {
	f := newFixture(t)
	f.seedCompleteDay(t, 4, 480, decimal.Zero)

	_, err := f.svc.SetBonus(f.adminCtx, summary.SetBonusRequest{
		EmployeeID: f.employeeID,
		Year:       2024,
		Month:      3,
		Bonus:      decimal.NewFromInt(500),
	})
	require.NoError(t, err)

	stored, err := f.svc.RecalculateMonth(context.Background(), f.employeeID, 2024, 3)
	require.NoError(t, err)

	assert.Equal(t, "500.00", stored.Bonus.StringFixed(2))
	// 480 * 5.00 + 500 bonus
	assert.Equal(t, "2900.00", stored.Salary.StringFixed(2))
}

func TestSetBonusAcceptsNegativeAmount(t *testing.T) {
	f := newFixture(t)
	f.seedCompleteDay(t, 4, 480, decimal.Zero)

	_, err := f.svc.SetBonus(f.adminCtx, summary.SetBonusRequest{
		EmployeeID: f.employeeID,
		Year:       2024,
		Month:      3,
		Bonus:      decimal.NewFromInt(-250),
	})
	require.NoError(t, err)

	stored, err := f.svc.RecalculateMonth(context.Background(), f.employeeID, 2024, 3)
	require.NoError(t, err)

	assert.Equal(t, "-250.00", stored.Bonus.StringFixed(2))
	// 480 * 5.00 - 250 penalty
	assert.Equal(t, "2150.00", stored.Salary.StringFixed(2))
}

func TestSalaryFormula(t *testing.T) {
	f := newFixture(t)

	// 25 complete days of 480 minutes = 12000 minutes, 1000 in expenses
	for day := 1; day <= 25; day++ {
		expenses := decimal.Zero
		if day == 1 {
			expenses = decimal.NewFromInt(1000)
		}
		f.seedCompleteDay(t, day, 480, expenses)
	}

	_, err := f.svc.SetBonus(f.adminCtx, summary.SetBonusRequest{
		EmployeeID: f.employeeID,
		Year:       2024,
		Month:      3,
		Bonus:      decimal.NewFromInt(500),
	})
	require.NoError(t, err)

	stored, err := f.svc.RecalculateMonth(context.Background(), f.employeeID, 2024, 3)
	require.NoError(t, err)

	// 12000 * 5.00 = 60000 base, + 1000 expenses + 500 bonus
	assert.Equal(t, "61500.00", stored.Salary.StringFixed(2))
}

func TestOvertimeExtendsPaidMinutes(t *testing.T) {
	f := newFixture(t)
	f.seedCompleteDay(t, 4, 495, decimal.Zero)

	records, err := f.attendanceRepo.ListByEmployeeAndMonth(context.Background(), f.employeeID, 2024, 3)
	require.NoError(t, err)
	require.Len(t, records, 1)

	rec := records[0]
	rec.OvertimeMinutes = -15
	require.NoError(t, f.attendanceRepo.Update(context.Background(), rec))

	stored, err := f.svc.RecalculateMonth(context.Background(), f.employeeID, 2024, 3)
	require.NoError(t, err)

	// 495 - 15 = 480 effective paid minutes
	assert.Equal(t, 8, stored.TotalWorkingHours)
	assert.Equal(t, 0, stored.TotalWorkingMinutes)
	assert.Equal(t, -15, stored.OvertimeMinutes)
	assert.Equal(t, "2400.00", stored.Salary.StringFixed(2))
}

func TestSetBonusRequiresAdmin(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.SetBonus(f.employeeCtx, summary.SetBonusRequest{
		EmployeeID: f.employeeID,
		Year:       2024,
		Month:      3,
		Bonus:      decimal.NewFromInt(500),
	})
	assert.ErrorIs(t, err, employee.ErrAdminPrivilegeRequired)
}

func TestGetMonthlyReportAuthorization(t *testing.T) {
	f := newFixture(t)

	otherCtx := servicetest.ContextWithClaims("other-employee", "employee")
	_, err := f.svc.GetMonthlyReport(otherCtx, f.employeeID, 2024, 3)
	assert.ErrorIs(t, err, employee.ErrAdminPrivilegeRequired)

	// own data is fine
	_, err = f.svc.GetMonthlyReport(f.employeeCtx, f.employeeID, 2024, 3)
	assert.NoError(t, err)

	// admin sees everyone
	_, err = f.svc.GetMonthlyReport(f.adminCtx, f.employeeID, 2024, 3)
	assert.NoError(t, err)
}

func TestGetFullReportAccumulatesTotals(t *testing.T) {
	f := newFixture(t)
	f.seedCompleteDay(t, 4, 480, decimal.Zero)

	_, err := f.svc.Recalculate(f.employeeCtx, f.employeeID, 2024, 3)
	require.NoError(t, err)

	report, err := f.svc.GetFullReport(f.employeeCtx, f.employeeID)
	require.NoError(t, err)

	assert.Equal(t, "Worker One", report.EmployeeName)
	require.Len(t, report.Summaries, 1)
	assert.Equal(t, 1, report.TotalWorkingDays)
	assert.Equal(t, "2400.00", report.TotalSalary)
}

func TestGetAllEmployeesReportRequiresAdmin(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.GetAllEmployeesReport(f.employeeCtx, 2024, 3)
	assert.ErrorIs(t, err, employee.ErrAdminPrivilegeRequired)

	_, err = f.svc.GetAllEmployeesReport(f.adminCtx, 2024, 3)
	assert.NoError(t, err)
}

func TestGetEditWindow(t *testing.T) {
	f := newFixture(t)
	f.svc.now = func() time.Time { return time.Date(2024, 3, 5, 10, 0, 0, 0, time.UTC) }

	resp, err := f.svc.GetEditWindow(f.employeeCtx)
	require.NoError(t, err)

	require.Len(t, resp.Windows, 2)
	assert.Equal(t, "2024-02-01", resp.Windows[0].Start)
	assert.Equal(t, "2024-02-29", resp.Windows[0].End)
	assert.Equal(t, "2024-03-01", resp.Windows[1].Start)
	assert.Equal(t, "2024-03-31", resp.Windows[1].End)
}

func TestRecalculateInvalidPeriod(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.RecalculateMonth(context.Background(), f.employeeID, 2024, 13)
	assert.ErrorIs(t, err, summary.ErrInvalidPeriod)

	_, err = f.svc.RecalculateMonth(context.Background(), f.employeeID, 2024, 0)
	assert.ErrorIs(t, err, summary.ErrInvalidPeriod)
}
