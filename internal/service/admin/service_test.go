package admin

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/nilehr/attendance-backend-go/internal/domain/attendance"
	"github.com/nilehr/attendance-backend-go/internal/domain/employee"
	"github.com/nilehr/attendance-backend-go/internal/domain/holiday"
	"github.com/nilehr/attendance-backend-go/internal/pkg/validator"
	"github.com/nilehr/attendance-backend-go/internal/service/calc"
	"github.com/nilehr/attendance-backend-go/internal/service/report"
	"github.com/nilehr/attendance-backend-go/internal/service/servicetest"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixture struct {
	svc            *AdminServiceImpl
	attendanceRepo *servicetest.AttendanceRepo
	employeeRepo   *servicetest.EmployeeRepo
	summaryRepo    *servicetest.SummaryRepo
	holidayRepo    *servicetest.HolidayRepo
	employeeID     string
	adminCtx       context.Context
	employeeCtx    context.Context
}

func newFixture(t *testing.T, now time.Time) *fixture {
	t.Helper()

	attendanceRepo := servicetest.NewAttendanceRepo()
	employeeRepo := servicetest.NewEmployeeRepo()
	summaryRepo := servicetest.NewSummaryRepo()
	holidayRepo := servicetest.NewHolidayRepo()
	calculator := calc.NewCalculator()

	emp, err := employeeRepo.Create(context.Background(), employee.Employee{
		Username:   "worker",
		FullName:   "Worker One",
		Role:       employee.RoleEmployee,
		MinuteCost: decimal.NewFromFloat(5.0),
		IsActive:   true,
	})
	require.NoError(t, err)

	recalculator := report.NewReportService(nil, attendanceRepo, employeeRepo, summaryRepo, holidayRepo, calculator)

	svc := &AdminServiceImpl{
		attendanceRepo: attendanceRepo,
		employeeRepo:   employeeRepo,
		holidayRepo:    holidayRepo,
		recalculator:   recalculator,
		calc:           calculator,
		now:            func() time.Time { return now },
	}

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

func (f *fixture) seedCompleteDay(t *testing.T, date time.Time, minutes int) attendance.Attendance {
	t.Helper()
	in := time.Date(date.Year(), date.Month(), date.Day(), 9, 0, 0, 0, time.UTC)
	out := in.Add(time.Duration(minutes) * time.Minute)
	rec, err := f.attendanceRepo.Create(context.Background(), attendance.Attendance{
		EmployeeID:          f.employeeID,
		Date:                date,
		CheckIn:             &in,
		CheckOut:            &out,
		TotalWorkingMinutes: minutes,
		ExtraExpenses:       decimal.Zero,
		DayType:             attendance.DayTypeWorkingDay,
	})
	require.NoError(t, err)
	return rec
}

func TestSetOvertimeRecalculatesSalary(t *testing.T) {
	now := time.Date(2024, 3, 10, 10, 0, 0, 0, time.UTC)
	f := newFixture(t, now)
	rec := f.seedCompleteDay(t, time.Date(2024, 3, 4, 0, 0, 0, 0, time.UTC), 495)

	resp, err := f.svc.SetOvertime(f.adminCtx, attendance.SetOvertimeRequest{
		AttendanceID:    rec.ID,
		OvertimeMinutes: -15,
	})
	require.NoError(t, err)
	assert.Equal(t, -15, resp.OvertimeMinutes)

	stored, err := f.summaryRepo.Get(context.Background(), f.employeeID, 2024, 3)
	require.NoError(t, err)
	require.NotNil(t, stored)
	// 495 - 15 = 480 paid minutes at 5.00
	assert.Equal(t, "2400.00", stored.Salary.StringFixed(2))
}

func TestSetOvertimeBounds(t *testing.T) {
	now := time.Date(2024, 3, 10, 10, 0, 0, 0, time.UTC)
	f := newFixture(t, now)
	rec := f.seedCompleteDay(t, time.Date(2024, 3, 4, 0, 0, 0, 0, time.UTC), 480)

	for _, minutes := range []int{720, -720} {
		_, err := f.svc.SetOvertime(f.adminCtx, attendance.SetOvertimeRequest{
			AttendanceID:    rec.ID,
			OvertimeMinutes: minutes,
		})
		assert.NoError(t, err, "overtime %d is within bounds", minutes)
	}

	for _, minutes := range []int{721, -721} {
		_, err := f.svc.SetOvertime(f.adminCtx, attendance.SetOvertimeRequest{
			AttendanceID:    rec.ID,
			OvertimeMinutes: minutes,
		})
		var verrs validator.ValidationErrors
		assert.ErrorAs(t, err, &verrs, "overtime %d must be rejected", minutes)
	}
}

func TestSetOvertimeOutsideEditWindow(t *testing.T) {
	// record in January, today late March: January is frozen
	now := time.Date(2024, 3, 20, 10, 0, 0, 0, time.UTC)
	f := newFixture(t, now)
	rec := f.seedCompleteDay(t, time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC), 480)

	_, err := f.svc.SetOvertime(f.adminCtx, attendance.SetOvertimeRequest{
		AttendanceID:    rec.ID,
		OvertimeMinutes: 60,
	})
	assert.ErrorIs(t, err, attendance.ErrOutsideEditablePeriod)
}

func TestSetOvertimeRequiresAdmin(t *testing.T) {
	now := time.Date(2024, 3, 10, 10, 0, 0, 0, time.UTC)
	f := newFixture(t, now)
	rec := f.seedCompleteDay(t, time.Date(2024, 3, 4, 0, 0, 0, 0, time.UTC), 480)

	_, err := f.svc.SetOvertime(f.employeeCtx, attendance.SetOvertimeRequest{
		AttendanceID:    rec.ID,
		OvertimeMinutes: 60,
	})
	assert.ErrorIs(t, err, employee.ErrAdminPrivilegeRequired)
}

func TestCreateAttendanceDuplicateDate(t *testing.T) {
	now := time.Date(2024, 3, 10, 10, 0, 0, 0, time.UTC)
	f := newFixture(t, now)
	f.seedCompleteDay(t, time.Date(2024, 3, 4, 0, 0, 0, 0, time.UTC), 480)

	_, err := f.svc.CreateAttendance(f.adminCtx, attendance.CreateAttendanceRequest{
		EmployeeID: f.employeeID,
		Date:       "2024-03-04",
		DayType:    "working_day",
	})
	assert.ErrorIs(t, err, attendance.ErrAttendanceExists)
}

func TestCreateAttendanceOutsideCreationWindow(t *testing.T) {
	now := time.Date(2024, 6, 1, 10, 0, 0, 0, time.UTC)
	f := newFixture(t, now)

	_, err := f.svc.CreateAttendance(f.adminCtx, attendance.CreateAttendanceRequest{
		EmployeeID: f.employeeID,
		Date:       "2024-01-15", // far beyond 60 days back
		DayType:    "normal_vacation",
	})
	assert.ErrorIs(t, err, attendance.ErrOutsideCreationWindow)

	// future dates are rejected too
	_, err = f.svc.CreateAttendance(f.adminCtx, attendance.CreateAttendanceRequest{
		EmployeeID: f.employeeID,
		Date:       "2024-06-02",
		DayType:    "normal_vacation",
	})
	assert.ErrorIs(t, err, attendance.ErrOutsideCreationWindow)
}

func TestCreateAttendanceVacationCountsAsWorked(t *testing.T) {
	now := time.Date(2024, 3, 10, 10, 0, 0, 0, time.UTC)
	f := newFixture(t, now)

	_, err := f.svc.CreateAttendance(f.adminCtx, attendance.CreateAttendanceRequest{
		EmployeeID: f.employeeID,
		Date:       "2024-03-04",
		DayType:    "normal_vacation",
	})
	require.NoError(t, err)

	stored, err := f.summaryRepo.Get(context.Background(), f.employeeID, 2024, 3)
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.Equal(t, 1, stored.WorkingDays)
	// 480 standard minutes at 5.00
	assert.Equal(t, "2400.00", stored.Salary.StringFixed(2))
}

func TestDeleteAttendanceRecalculates(t *testing.T) {
	now := time.Date(2024, 3, 10, 10, 0, 0, 0, time.UTC)
	f := newFixture(t, now)
	rec := f.seedCompleteDay(t, time.Date(2024, 3, 4, 0, 0, 0, 0, time.UTC), 480)

	require.NoError(t, f.svc.DeleteAttendance(f.adminCtx, rec.ID))

	stored, err := f.summaryRepo.Get(context.Background(), f.employeeID, 2024, 3)
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.Equal(t, 0, stored.WorkingDays)
	assert.Equal(t, "0.00", stored.Salary.StringFixed(2))
}

func TestUpdateCheckTimesRecomputesMinutes(t *testing.T) {
	now := time.Date(2024, 3, 10, 10, 0, 0, 0, time.UTC)
	f := newFixture(t, now)
	rec := f.seedCompleteDay(t, time.Date(2024, 3, 4, 0, 0, 0, 0, time.UTC), 480)

	newOut := "2024-03-04T18:00:00Z"
	resp, err := f.svc.UpdateCheckTimes(f.adminCtx, attendance.UpdateCheckTimesRequest{
		AttendanceID: rec.ID,
		CheckOutTime: &newOut,
	})
	require.NoError(t, err)
	assert.Equal(t, 540, resp.TotalWorkingMinutes) // 09:00 to 18:00
}

func TestCreateEmployeeLimit(t *testing.T) {
	now := time.Date(2024, 3, 10, 10, 0, 0, 0, time.UTC)
	f := newFixture(t, now)

	// fixture already has one employee
	for i := 1; i < employee.MaxEmployees; i++ {
		_, err := f.employeeRepo.Create(context.Background(), employee.Employee{
			Username:   fmt.Sprintf("worker%d", i),
			FullName:   fmt.Sprintf("Worker %d", i),
			Role:       employee.RoleEmployee,
			MinuteCost: decimal.NewFromInt(1),
			IsActive:   true,
		})
		require.NoError(t, err)
	}

	_, err := f.svc.CreateEmployee(f.adminCtx, employee.CreateEmployeeRequest{
		Username:   "onemore",
		Password:   "secret1",
		FullName:   "One More",
		MinuteCost: decimal.NewFromInt(1),
	})
	assert.ErrorIs(t, err, employee.ErrEmployeeLimitReached)
}

func TestCreateEmployeeDuplicateUsername(t *testing.T) {
	now := time.Date(2024, 3, 10, 10, 0, 0, 0, time.UTC)
	f := newFixture(t, now)

	_, err := f.svc.CreateEmployee(f.adminCtx, employee.CreateEmployeeRequest{
		Username:   "worker", // already taken by the fixture employee
		Password:   "secret1",
		FullName:   "Impostor",
		MinuteCost: decimal.NewFromInt(1),
	})
	assert.ErrorIs(t, err, employee.ErrUsernameExists)
}

func TestCreateEmployeeDefaults(t *testing.T) {
	now := time.Date(2024, 3, 10, 10, 0, 0, 0, time.UTC)
	f := newFixture(t, now)

	resp, err := f.svc.CreateEmployee(f.adminCtx, employee.CreateEmployeeRequest{
		Username:   "NewHire",
		Password:   "secret1",
		FullName:   "New Hire",
		MinuteCost: decimal.NewFromFloat(2.5),
	})
	require.NoError(t, err)

	assert.Equal(t, "newhire", resp.Username, "usernames are stored lowercase")
	assert.Equal(t, string(employee.RoleEmployee), resp.Role)
	assert.Equal(t, employee.DefaultVacationDays, resp.VacationDaysAllowed)
	assert.Equal(t, "2024-03-10", resp.JoinDate)
	assert.True(t, resp.IsActive)
}

func TestCreateEmployeeValidation(t *testing.T) {
	now := time.Date(2024, 3, 10, 10, 0, 0, 0, time.UTC)
	f := newFixture(t, now)

	tests := []struct {
		name string
		req  employee.CreateEmployeeRequest
	}{
		{"short username", employee.CreateEmployeeRequest{Username: "ab", Password: "secret1", FullName: "X", MinuteCost: decimal.NewFromInt(1)}},
		{"bad username chars", employee.CreateEmployeeRequest{Username: "a b c", Password: "secret1", FullName: "X", MinuteCost: decimal.NewFromInt(1)}},
		{"short password", employee.CreateEmployeeRequest{Username: "valid", Password: "12345", FullName: "X", MinuteCost: decimal.NewFromInt(1)}},
		{"minute cost too high", employee.CreateEmployeeRequest{Username: "valid", Password: "secret1", FullName: "X", MinuteCost: decimal.NewFromInt(1001)}},
		{"negative minute cost", employee.CreateEmployeeRequest{Username: "valid", Password: "secret1", FullName: "X", MinuteCost: decimal.NewFromInt(-1)}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.svc.CreateEmployee(f.adminCtx, tt.req)
			var verrs validator.ValidationErrors
			assert.ErrorAs(t, err, &verrs)
		})
	}
}

func TestUpdateMinuteCostRecalculatesCurrentMonth(t *testing.T) {
	now := time.Date(2024, 3, 10, 10, 0, 0, 0, time.UTC)
	f := newFixture(t, now)
	f.seedCompleteDay(t, time.Date(2024, 3, 4, 0, 0, 0, 0, time.UTC), 480)

	_, err := f.svc.UpdateMinuteCost(f.adminCtx, employee.UpdateMinuteCostRequest{
		EmployeeID: f.employeeID,
		MinuteCost: decimal.NewFromInt(10),
	})
	require.NoError(t, err)

	stored, err := f.summaryRepo.Get(context.Background(), f.employeeID, 2024, 3)
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.Equal(t, "4800.00", stored.Salary.StringFixed(2))
}

func TestAddHolidayRecalculatesMonth(t *testing.T) {
	now := time.Date(2024, 3, 10, 10, 0, 0, 0, time.UTC)
	f := newFixture(t, now)
	f.seedCompleteDay(t, time.Date(2024, 3, 4, 0, 0, 0, 0, time.UTC), 480)

	before, err := f.svc.recalculator.RecalculateMonth(context.Background(), f.employeeID, 2024, 3)
	require.NoError(t, err)

	_, err = f.svc.AddHoliday(f.adminCtx, holiday.AddHolidayRequest{
		Date: "2024-03-11",
		Name: "Founding Day",
	})
	require.NoError(t, err)

	after, err := f.summaryRepo.Get(context.Background(), f.employeeID, 2024, 3)
	require.NoError(t, err)
	require.NotNil(t, after)
	assert.Equal(t, before.AbsenceDays-1, after.AbsenceDays, "one fewer expected working day")

	// duplicate holiday conflicts
	_, err = f.svc.AddHoliday(f.adminCtx, holiday.AddHolidayRequest{
		Date: "2024-03-11",
		Name: "Founding Day Again",
	})
	assert.ErrorIs(t, err, holiday.ErrHolidayExists)
}

func TestRemoveHoliday(t *testing.T) {
	now := time.Date(2024, 3, 10, 10, 0, 0, 0, time.UTC)
	f := newFixture(t, now)

	_, err := f.svc.AddHoliday(f.adminCtx, holiday.AddHolidayRequest{Date: "2024-03-11", Name: "Founding Day"})
	require.NoError(t, err)

	require.NoError(t, f.svc.RemoveHoliday(f.adminCtx, "2024-03-11"))
	assert.ErrorIs(t, f.svc.RemoveHoliday(f.adminCtx, "2024-03-11"), holiday.ErrHolidayNotFound)
}

func TestSetActive(t *testing.T) {
	now := time.Date(2024, 3, 10, 10, 0, 0, 0, time.UTC)
	f := newFixture(t, now)

	resp, err := f.svc.SetActive(f.adminCtx, employee.SetActiveRequest{EmployeeID: f.employeeID, IsActive: false})
	require.NoError(t, err)
	assert.False(t, resp.IsActive)

	resp, err = f.svc.SetActive(f.adminCtx, employee.SetActiveRequest{EmployeeID: f.employeeID, IsActive: true})
	require.NoError(t, err)
	assert.True(t, resp.IsActive)
}
