package checkin

import (
	"context"
	"fmt"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/jackc/pgx/v5"
	"github.com/nilehr/attendance-backend-go/internal/domain/attendance"
	"github.com/nilehr/attendance-backend-go/internal/domain/employee"
	"github.com/nilehr/attendance-backend-go/internal/domain/holiday"
	"github.com/nilehr/attendance-backend-go/internal/domain/summary"
	"github.com/nilehr/attendance-backend-go/internal/pkg/database"
	"github.com/nilehr/attendance-backend-go/internal/pkg/validator"
	"github.com/nilehr/attendance-backend-go/internal/repository/postgresql"
	"github.com/nilehr/attendance-backend-go/internal/service/calc"
	"github.com/nilehr/attendance-backend-go/internal/service/editwindow"
	"github.com/shopspring/decimal"
)

type CheckinServiceImpl struct {
	db             *database.DB
	attendanceRepo attendance.AttendanceRepository
	employeeRepo   employee.EmployeeRepository
	holidayRepo    holiday.HolidayRepository
	recalculator   summary.Recalculator
	calc           *calc.Calculator
	now            func() time.Time
}

func NewCheckinService(
	db *database.DB,
	attendanceRepo attendance.AttendanceRepository,
	employeeRepo employee.EmployeeRepository,
	holidayRepo holiday.HolidayRepository,
	recalculator summary.Recalculator,
	calculator *calc.Calculator,
) attendance.AttendanceService {
	return &CheckinServiceImpl{
		db:             db,
		attendanceRepo: attendanceRepo,
		employeeRepo:   employeeRepo,
		holidayRepo:    holidayRepo,
		recalculator:   recalculator,
		calc:           calculator,
		now:            time.Now,
	}
}

// Helper to get employee_id and role from JWT context
func getClaimsFromContext(ctx context.Context) (employeeID, role string, err error) {
	_, claims, err := jwtauth.FromContext(ctx)
	if err != nil {
		return "", "", fmt.Errorf("failed to extract claims from context: %w", err)
	}
	employeeID, _ = claims["user_id"].(string)
	role, _ = claims["role"].(string)
	return employeeID, role, nil
}

func dateOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

func (s *CheckinServiceImpl) activeEmployee(ctx context.Context, employeeID string) (employee.Employee, error) {
	emp, err := s.employeeRepo.GetByID(ctx, employeeID)
	if err != nil {
		return employee.Employee{}, err
	}
	if !emp.IsActive {
		return employee.Employee{}, employee.ErrEmployeeInactive
	}
	return emp, nil
}

// resolveAt returns the effective event time. A caller-supplied timestamp is
// an admin backfill tool and is rejected for regular employees.
func (s *CheckinServiceImpl) resolveAt(ctx context.Context, at *string) (time.Time, error) {
	if at == nil || *at == "" {
		return s.now(), nil
	}

	_, role, err := getClaimsFromContext(ctx)
	if err != nil {
		return time.Time{}, err
	}
	if role != string(employee.RoleAdmin) {
		return time.Time{}, employee.ErrAdminPrivilegeRequired
	}

	t, _ := validator.IsValidDateTime(*at)
	return t, nil
}

// CheckIn implements attendance.AttendanceService.
func (s *CheckinServiceImpl) CheckIn(ctx context.Context, req attendance.CheckInRequest) (attendance.AttendanceResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.AttendanceResponse{}, err
	}

	if _, err := s.activeEmployee(ctx, req.EmployeeID); err != nil {
		return attendance.AttendanceResponse{}, err
	}

	at, err := s.resolveAt(ctx, req.At)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}
	date := dateOf(at)

	// Backfilled dates follow the same bounds as manual record creation.
	if !editwindow.WithinCreationWindow(date, s.now()) {
		return attendance.AttendanceResponse{}, attendance.ErrOutsideCreationWindow
	}

	var result attendance.Attendance
	err = postgresql.WithTransaction(ctx, s.db, func(tx pgx.Tx) error {
		txCtx := context.WithValue(ctx, "tx", tx)

		existing, err := s.attendanceRepo.GetByEmployeeAndDate(txCtx, req.EmployeeID, date)
		if err != nil {
			return err
		}

		if existing != nil {
			if existing.CheckIn != nil {
				return attendance.ErrAlreadyCheckedIn
			}
			// Admin created a placeholder row for this date; fill it in place.
			existing.CheckIn = &at
			existing.IsLate = s.calc.IsLateArrival(at)
			if err := s.attendanceRepo.Update(txCtx, *existing); err != nil {
				return err
			}
			result = *existing
		} else {
			result, err = s.attendanceRepo.Create(txCtx, attendance.Attendance{
				EmployeeID:    req.EmployeeID,
				Date:          date,
				CheckIn:       &at,
				ExtraExpenses: decimal.Zero,
				DayType:       attendance.DayTypeWorkingDay,
				IsLate:        s.calc.IsLateArrival(at),
			})
			if err != nil {
				return err
			}
		}

		_, err = s.recalculator.RecalculateMonth(txCtx, req.EmployeeID, date.Year(), int(date.Month()))
		return err
	})
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}

	return attendance.ToResponse(result, editwindow.IsEditable(result.Date, s.now())), nil
}

// CheckOut implements attendance.AttendanceService.
func (s *CheckinServiceImpl) CheckOut(ctx context.Context, req attendance.CheckOutRequest) (attendance.AttendanceResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.AttendanceResponse{}, err
	}

	if _, err := s.activeEmployee(ctx, req.EmployeeID); err != nil {
		return attendance.AttendanceResponse{}, err
	}

	at, err := s.resolveAt(ctx, req.At)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}
	date := dateOf(at)

	var result attendance.Attendance
	err = postgresql.WithTransaction(ctx, s.db, func(tx pgx.Tx) error {
		txCtx := context.WithValue(ctx, "tx", tx)

		existing, err := s.attendanceRepo.GetByEmployeeAndDate(txCtx, req.EmployeeID, date)
		if err != nil {
			return err
		}
		if existing == nil || existing.CheckIn == nil {
			return attendance.ErrNotCheckedIn
		}
		if existing.CheckOut != nil {
			return attendance.ErrAlreadyCheckedOut
		}

		minutes, err := s.calc.WorkingMinutes(*existing.CheckIn, at)
		if err != nil {
			return err
		}

		existing.CheckOut = &at
		existing.TotalWorkingMinutes = minutes
		if err := s.attendanceRepo.Update(txCtx, *existing); err != nil {
			return err
		}
		result = *existing

		_, err = s.recalculator.RecalculateMonth(txCtx, req.EmployeeID, date.Year(), int(date.Month()))
		return err
	})
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}

	return attendance.ToResponse(result, editwindow.IsEditable(result.Date, s.now())), nil
}

// TodayStatus implements attendance.AttendanceService.
func (s *CheckinServiceImpl) TodayStatus(ctx context.Context, employeeID string) (attendance.TodayStatusResponse, error) {
	if _, err := s.activeEmployee(ctx, employeeID); err != nil {
		return attendance.TodayStatusResponse{}, err
	}

	today := dateOf(s.now())

	holidays, err := s.holidayRepo.ListByRange(ctx, today, today)
	if err != nil {
		return attendance.TodayStatusResponse{}, err
	}
	dates := make([]time.Time, 0, len(holidays))
	for _, h := range holidays {
		dates = append(dates, h.Date)
	}
	isWorkingDay := s.calc.IsWorkingDay(today, calc.NewHolidayCalendar(dates))

	record, err := s.attendanceRepo.GetByEmployeeAndDate(ctx, employeeID, today)
	if err != nil {
		return attendance.TodayStatusResponse{}, err
	}

	resp := attendance.TodayStatusResponse{IsWorkingDay: isWorkingDay}
	switch {
	case record == nil || record.CheckIn == nil:
		resp.CanCheckIn = true
		resp.Message = "You have not checked in today"
	case record.CheckOut == nil:
		resp.HasCheckedIn = true
		resp.CanCheckOut = true
		resp.Message = "Checked in, not yet checked out"
	default:
		resp.HasCheckedIn = true
		resp.HasCheckedOut = true
		resp.Message = "Day complete"
	}
	if record != nil {
		r := attendance.ToResponse(*record, true)
		resp.TodayAttendance = &r
	}

	return resp, nil
}

// getOwnedEditable loads a record, checks ownership (admins skip the
// ownership check) and rejects dates outside the edit window.
func (s *CheckinServiceImpl) getOwnedEditable(ctx context.Context, attendanceID string) (attendance.Attendance, error) {
	claimsID, role, err := getClaimsFromContext(ctx)
	if err != nil {
		return attendance.Attendance{}, err
	}

	record, err := s.attendanceRepo.GetByID(ctx, attendanceID)
	if err != nil {
		return attendance.Attendance{}, err
	}

	if role != string(employee.RoleAdmin) && record.EmployeeID != claimsID {
		return attendance.Attendance{}, attendance.ErrUnauthorized
	}

	if !editwindow.IsEditable(record.Date, s.now()) {
		return attendance.Attendance{}, attendance.ErrOutsideEditablePeriod
	}

	return record, nil
}

// UpdateComments implements attendance.AttendanceService.
func (s *CheckinServiceImpl) UpdateComments(ctx context.Context, req attendance.UpdateCommentsRequest) (attendance.AttendanceResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.AttendanceResponse{}, err
	}

	record, err := s.getOwnedEditable(ctx, req.AttendanceID)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}

	record.Comments = req.Comments
	if err := s.attendanceRepo.Update(ctx, record); err != nil {
		return attendance.AttendanceResponse{}, err
	}

	return attendance.ToResponse(record, true), nil
}

// UpdateExpenses implements attendance.AttendanceService.
func (s *CheckinServiceImpl) UpdateExpenses(ctx context.Context, req attendance.UpdateExpensesRequest) (attendance.AttendanceResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.AttendanceResponse{}, err
	}

	record, err := s.getOwnedEditable(ctx, req.AttendanceID)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}

	err = postgresql.WithTransaction(ctx, s.db, func(tx pgx.Tx) error {
		txCtx := context.WithValue(ctx, "tx", tx)

		record.ExtraExpenses = req.ExtraExpenses
		if err := s.attendanceRepo.Update(txCtx, record); err != nil {
			return err
		}

		_, err := s.recalculator.RecalculateMonth(txCtx, record.EmployeeID, record.Date.Year(), int(record.Date.Month()))
		return err
	})
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}

	return attendance.ToResponse(record, true), nil
}

// GetMyAttendance implements attendance.AttendanceService.
func (s *CheckinServiceImpl) GetMyAttendance(ctx context.Context, filter attendance.MyAttendanceFilter) (attendance.ListAttendanceResponse, error) {
	if err := filter.Validate(); err != nil {
		return attendance.ListAttendanceResponse{}, err
	}

	claimsID, role, err := getClaimsFromContext(ctx)
	if err != nil {
		return attendance.ListAttendanceResponse{}, err
	}
	if role != string(employee.RoleAdmin) && filter.EmployeeID != claimsID {
		return attendance.ListAttendanceResponse{}, attendance.ErrUnauthorized
	}

	var records []attendance.Attendance
	if filter.StartDate != nil && filter.EndDate != nil {
		from, _ := validator.IsValidDate(*filter.StartDate)
		to, _ := validator.IsValidDate(*filter.EndDate)
		records, err = s.attendanceRepo.ListByEmployeeAndRange(ctx, filter.EmployeeID, from, to)
	} else {
		records, err = s.listMonthWithTail(ctx, filter.EmployeeID, filter.Year, filter.Month)
	}
	if err != nil {
		return attendance.ListAttendanceResponse{}, err
	}

	today := s.now()
	resp := attendance.ListAttendanceResponse{
		Year:        filter.Year,
		Month:       filter.Month,
		Attendances: make([]attendance.AttendanceResponse, 0, len(records)),
	}
	for _, rec := range records {
		resp.Attendances = append(resp.Attendances, attendance.ToResponse(rec, editwindow.IsEditable(rec.Date, today)))
	}

	return resp, nil
}

// listMonthWithTail returns a month's records. While the previous month is
// still open (through the cutoff day) its last working days are included so
// the dashboard shows what can still be corrected.
func (s *CheckinServiceImpl) listMonthWithTail(ctx context.Context, employeeID string, year, month int) ([]attendance.Attendance, error) {
	records, err := s.attendanceRepo.ListByEmployeeAndMonth(ctx, employeeID, year, month)
	if err != nil {
		return nil, err
	}

	today := s.now()
	if today.Day() > editwindow.CutoffDay ||
		today.Year() != year || int(today.Month()) != month {
		return records, nil
	}

	monthStart := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	prevEnd := monthStart.AddDate(0, 0, -1)

	holidays, err := s.holidayRepo.ListByRange(ctx, prevEnd.AddDate(0, 0, -14), prevEnd)
	if err != nil {
		return nil, err
	}
	dates := make([]time.Time, 0, len(holidays))
	for _, h := range holidays {
		dates = append(dates, h.Date)
	}

	tailDays := s.calc.LastNWorkingDays(monthStart, 5, calc.NewHolidayCalendar(dates))
	tail, err := s.attendanceRepo.ListByEmployeeAndRange(ctx, employeeID, tailDays[0], prevEnd)
	if err != nil {
		return nil, err
	}

	return append(tail, records...), nil
}
