package admin

import (
	"context"
	"fmt"
	"strings"
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
	"golang.org/x/crypto/bcrypt"
)

// AdminServiceImpl bundles the admin-only operations: attendance
// corrections, employee account management and the holiday calendar.
type AdminServiceImpl struct {
	db             *database.DB
	attendanceRepo attendance.AttendanceRepository
	employeeRepo   employee.EmployeeRepository
	holidayRepo    holiday.HolidayRepository
	recalculator   summary.Recalculator
	calc           *calc.Calculator
	now            func() time.Time
}

func NewAdminService(
	db *database.DB,
	attendanceRepo attendance.AttendanceRepository,
	employeeRepo employee.EmployeeRepository,
	holidayRepo holiday.HolidayRepository,
	recalculator summary.Recalculator,
	calculator *calc.Calculator,
) *AdminServiceImpl {
	return &AdminServiceImpl{
		db:             db,
		attendanceRepo: attendanceRepo,
		employeeRepo:   employeeRepo,
		holidayRepo:    holidayRepo,
		recalculator:   recalculator,
		calc:           calculator,
		now:            time.Now,
	}
}

// requireAdmin checks the capability once at operation entry
func requireAdmin(ctx context.Context) error {
	_, claims, err := jwtauth.FromContext(ctx)
	if err != nil {
		return fmt.Errorf("failed to extract claims from context: %w", err)
	}
	role, _ := claims["role"].(string)
	if role != string(employee.RoleAdmin) {
		return employee.ErrAdminPrivilegeRequired
	}
	return nil
}

func dateOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// updateAndRecalculate persists the record and rebuilds its month summary atomically
func (s *AdminServiceImpl) updateAndRecalculate(ctx context.Context, record attendance.Attendance) error {
	return postgresql.WithTransaction(ctx, s.db, func(tx pgx.Tx) error {
		txCtx := context.WithValue(ctx, "tx", tx)

		if err := s.attendanceRepo.Update(txCtx, record); err != nil {
			return err
		}

		_, err := s.recalculator.RecalculateMonth(txCtx, record.EmployeeID, record.Date.Year(), int(record.Date.Month()))
		return err
	})
}

// SetOvertime implements attendance.AdminAttendanceService.
func (s *AdminServiceImpl) SetOvertime(ctx context.Context, req attendance.SetOvertimeRequest) (attendance.AttendanceResponse, error) {
	if err := requireAdmin(ctx); err != nil {
		return attendance.AttendanceResponse{}, err
	}
	if err := req.Validate(); err != nil {
		return attendance.AttendanceResponse{}, err
	}

	record, err := s.attendanceRepo.GetByID(ctx, req.AttendanceID)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}
	if !editwindow.IsEditable(record.Date, s.now()) {
		return attendance.AttendanceResponse{}, attendance.ErrOutsideEditablePeriod
	}

	record.OvertimeMinutes = req.OvertimeMinutes
	if err := s.updateAndRecalculate(ctx, record); err != nil {
		return attendance.AttendanceResponse{}, err
	}

	return attendance.ToResponse(record, true), nil
}

// ChangeDayType implements attendance.AdminAttendanceService.
func (s *AdminServiceImpl) ChangeDayType(ctx context.Context, req attendance.ChangeDayTypeRequest) (attendance.AttendanceResponse, error) {
	if err := requireAdmin(ctx); err != nil {
		return attendance.AttendanceResponse{}, err
	}
	if err := req.Validate(); err != nil {
		return attendance.AttendanceResponse{}, err
	}

	record, err := s.attendanceRepo.GetByID(ctx, req.AttendanceID)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}

	record.DayType = attendance.DayType(strings.ToLower(req.DayType))
	if err := s.updateAndRecalculate(ctx, record); err != nil {
		return attendance.AttendanceResponse{}, err
	}

	return attendance.ToResponse(record, editwindow.IsEditable(record.Date, s.now())), nil
}

// UpdateCheckTimes implements attendance.AdminAttendanceService.
func (s *AdminServiceImpl) UpdateCheckTimes(ctx context.Context, req attendance.UpdateCheckTimesRequest) (attendance.AttendanceResponse, error) {
	if err := requireAdmin(ctx); err != nil {
		return attendance.AttendanceResponse{}, err
	}
	if err := req.Validate(); err != nil {
		return attendance.AttendanceResponse{}, err
	}

	record, err := s.attendanceRepo.GetByID(ctx, req.AttendanceID)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}

	if req.CheckInTime != nil && *req.CheckInTime != "" {
		t, _ := validator.IsValidDateTime(*req.CheckInTime)
		record.CheckIn = &t
	}
	if req.CheckOutTime != nil && *req.CheckOutTime != "" {
		t, _ := validator.IsValidDateTime(*req.CheckOutTime)
		record.CheckOut = &t
	}

	if record.CheckIn != nil {
		record.IsLate = s.calc.IsLateArrival(*record.CheckIn)
	}
	if record.IsComplete() {
		minutes, err := s.calc.WorkingMinutes(*record.CheckIn, *record.CheckOut)
		if err != nil {
			return attendance.AttendanceResponse{}, err
		}
		record.TotalWorkingMinutes = minutes
	}

	if err := s.updateAndRecalculate(ctx, record); err != nil {
		return attendance.AttendanceResponse{}, err
	}

	return attendance.ToResponse(record, editwindow.IsEditable(record.Date, s.now())), nil
}

// CreateAttendance implements attendance.AdminAttendanceService.
func (s *AdminServiceImpl) CreateAttendance(ctx context.Context, req attendance.CreateAttendanceRequest) (attendance.AttendanceResponse, error) {
	if err := requireAdmin(ctx); err != nil {
		return attendance.AttendanceResponse{}, err
	}
	if err := req.Validate(); err != nil {
		return attendance.AttendanceResponse{}, err
	}

	if _, err := s.employeeRepo.GetByID(ctx, req.EmployeeID); err != nil {
		return attendance.AttendanceResponse{}, err
	}

	date, _ := validator.IsValidDate(req.Date)
	if !editwindow.WithinCreationWindow(date, s.now()) {
		return attendance.AttendanceResponse{}, attendance.ErrOutsideCreationWindow
	}

	record := attendance.Attendance{
		EmployeeID:    req.EmployeeID,
		Date:          dateOf(date),
		ExtraExpenses: decimal.Zero,
		Comments:      req.Comments,
		DayType:       attendance.DayType(strings.ToLower(req.DayType)),
	}

	if req.CheckInTime != nil && *req.CheckInTime != "" {
		t, _ := validator.IsValidDateTime(*req.CheckInTime)
		record.CheckIn = &t
		record.IsLate = s.calc.IsLateArrival(t)
	}
	if req.CheckOutTime != nil && *req.CheckOutTime != "" {
		t, _ := validator.IsValidDateTime(*req.CheckOutTime)
		record.CheckOut = &t
	}
	if record.IsComplete() {
		minutes, err := s.calc.WorkingMinutes(*record.CheckIn, *record.CheckOut)
		if err != nil {
			return attendance.AttendanceResponse{}, err
		}
		record.TotalWorkingMinutes = minutes
	}

	var created attendance.Attendance
	err := postgresql.WithTransaction(ctx, s.db, func(tx pgx.Tx) error {
		txCtx := context.WithValue(ctx, "tx", tx)

		existing, err := s.attendanceRepo.GetByEmployeeAndDate(txCtx, req.EmployeeID, record.Date)
		if err != nil {
			return err
		}
		if existing != nil {
			return attendance.ErrAttendanceExists
		}

		created, err = s.attendanceRepo.Create(txCtx, record)
		if err != nil {
			return err
		}

		_, err = s.recalculator.RecalculateMonth(txCtx, req.EmployeeID, record.Date.Year(), int(record.Date.Month()))
		return err
	})
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}

	return attendance.ToResponse(created, editwindow.IsEditable(created.Date, s.now())), nil
}

// DeleteAttendance implements attendance.AdminAttendanceService.
func (s *AdminServiceImpl) DeleteAttendance(ctx context.Context, id string) error {
	if err := requireAdmin(ctx); err != nil {
		return err
	}

	record, err := s.attendanceRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	return postgresql.WithTransaction(ctx, s.db, func(tx pgx.Tx) error {
		txCtx := context.WithValue(ctx, "tx", tx)

		if err := s.attendanceRepo.Delete(txCtx, id); err != nil {
			return err
		}

		_, err := s.recalculator.RecalculateMonth(txCtx, record.EmployeeID, record.Date.Year(), int(record.Date.Month()))
		return err
	})
}

// CreateEmployee implements employee.EmployeeService.
func (s *AdminServiceImpl) CreateEmployee(ctx context.Context, req employee.CreateEmployeeRequest) (employee.EmployeeResponse, error) {
	if err := requireAdmin(ctx); err != nil {
		return employee.EmployeeResponse{}, err
	}
	if err := req.Validate(); err != nil {
		return employee.EmployeeResponse{}, err
	}

	count, err := s.employeeRepo.Count(ctx)
	if err != nil {
		return employee.EmployeeResponse{}, err
	}
	if count >= employee.MaxEmployees {
		return employee.EmployeeResponse{}, employee.ErrEmployeeLimitReached
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return employee.EmployeeResponse{}, fmt.Errorf("failed to hash password: %w", err)
	}

	joinDate := dateOf(s.now())
	if req.JoinDate != nil && *req.JoinDate != "" {
		joinDate, _ = validator.IsValidDate(*req.JoinDate)
	}

	vacationDays := employee.DefaultVacationDays
	if req.VacationDaysAllowed != nil {
		vacationDays = *req.VacationDaysAllowed
	}

	created, err := s.employeeRepo.Create(ctx, employee.Employee{
		Username:            req.Username,
		PasswordHash:        string(hash),
		FullName:            req.FullName,
		Role:                employee.Role(req.Role),
		MinuteCost:          req.MinuteCost,
		VacationDaysAllowed: vacationDays,
		JoinDate:            joinDate,
		IsActive:            true,
	})
	if err != nil {
		return employee.EmployeeResponse{}, err
	}

	return employee.ToResponse(created), nil
}

// GetEmployee implements employee.EmployeeService.
func (s *AdminServiceImpl) GetEmployee(ctx context.Context, id string) (employee.EmployeeResponse, error) {
	if err := requireAdmin(ctx); err != nil {
		return employee.EmployeeResponse{}, err
	}

	emp, err := s.employeeRepo.GetByID(ctx, id)
	if err != nil {
		return employee.EmployeeResponse{}, err
	}

	return employee.ToResponse(emp), nil
}

// ListEmployees implements employee.EmployeeService.
func (s *AdminServiceImpl) ListEmployees(ctx context.Context) ([]employee.EmployeeResponse, error) {
	if err := requireAdmin(ctx); err != nil {
		return nil, err
	}

	employees, err := s.employeeRepo.List(ctx)
	if err != nil {
		return nil, err
	}

	responses := make([]employee.EmployeeResponse, 0, len(employees))
	for _, emp := range employees {
		responses = append(responses, employee.ToResponse(emp))
	}

	return responses, nil
}

// UpdateMinuteCost implements employee.EmployeeService. The current month is
// recalculated so the new rate shows up in payroll immediately.
func (s *AdminServiceImpl) UpdateMinuteCost(ctx context.Context, req employee.UpdateMinuteCostRequest) (employee.EmployeeResponse, error) {
	if err := requireAdmin(ctx); err != nil {
		return employee.EmployeeResponse{}, err
	}
	if err := req.Validate(); err != nil {
		return employee.EmployeeResponse{}, err
	}

	emp, err := s.employeeRepo.GetByID(ctx, req.EmployeeID)
	if err != nil {
		return employee.EmployeeResponse{}, err
	}
	emp.MinuteCost = req.MinuteCost

	err = postgresql.WithTransaction(ctx, s.db, func(tx pgx.Tx) error {
		txCtx := context.WithValue(ctx, "tx", tx)

		if err := s.employeeRepo.Update(txCtx, emp); err != nil {
			return err
		}

		today := s.now()
		_, err := s.recalculator.RecalculateMonth(txCtx, emp.ID, today.Year(), int(today.Month()))
		return err
	})
	if err != nil {
		return employee.EmployeeResponse{}, err
	}

	return employee.ToResponse(emp), nil
}

// UpdateVacationAllowance implements employee.EmployeeService.
func (s *AdminServiceImpl) UpdateVacationAllowance(ctx context.Context, req employee.UpdateVacationAllowanceRequest) (employee.EmployeeResponse, error) {
	if err := requireAdmin(ctx); err != nil {
		return employee.EmployeeResponse{}, err
	}
	if err := req.Validate(); err != nil {
		return employee.EmployeeResponse{}, err
	}

	emp, err := s.employeeRepo.GetByID(ctx, req.EmployeeID)
	if err != nil {
		return employee.EmployeeResponse{}, err
	}

	emp.VacationDaysAllowed = req.Days
	if err := s.employeeRepo.Update(ctx, emp); err != nil {
		return employee.EmployeeResponse{}, err
	}

	return employee.ToResponse(emp), nil
}

// SetActive implements employee.EmployeeService.
func (s *AdminServiceImpl) SetActive(ctx context.Context, req employee.SetActiveRequest) (employee.EmployeeResponse, error) {
	if err := requireAdmin(ctx); err != nil {
		return employee.EmployeeResponse{}, err
	}

	emp, err := s.employeeRepo.GetByID(ctx, req.EmployeeID)
	if err != nil {
		return employee.EmployeeResponse{}, err
	}

	emp.IsActive = req.IsActive
	if err := s.employeeRepo.Update(ctx, emp); err != nil {
		return employee.EmployeeResponse{}, err
	}

	return employee.ToResponse(emp), nil
}

// AddHoliday implements holiday.HolidayService. Every employee's summary for
// the holiday's month is rebuilt since expected working days changed.
func (s *AdminServiceImpl) AddHoliday(ctx context.Context, req holiday.AddHolidayRequest) (holiday.HolidayResponse, error) {
	if err := requireAdmin(ctx); err != nil {
		return holiday.HolidayResponse{}, err
	}
	if err := req.Validate(); err != nil {
		return holiday.HolidayResponse{}, err
	}

	date, _ := validator.IsValidDate(req.Date)

	var created holiday.Holiday
	err := postgresql.WithTransaction(ctx, s.db, func(tx pgx.Tx) error {
		txCtx := context.WithValue(ctx, "tx", tx)

		var err error
		created, err = s.holidayRepo.Create(txCtx, holiday.Holiday{
			Date:        dateOf(date),
			Name:        req.Name,
			HolidayType: holiday.HolidayType(req.HolidayType),
		})
		if err != nil {
			return err
		}

		return s.recalculateMonthForAll(txCtx, date.Year(), int(date.Month()))
	})
	if err != nil {
		return holiday.HolidayResponse{}, err
	}

	return holiday.ToResponse(created), nil
}

// RemoveHoliday implements holiday.HolidayService.
func (s *AdminServiceImpl) RemoveHoliday(ctx context.Context, dateStr string) error {
	if err := requireAdmin(ctx); err != nil {
		return err
	}

	date, valid := validator.IsValidDate(dateStr)
	if !valid {
		return validator.ValidationErrors{{Field: "date", Message: "date must be in YYYY-MM-DD format"}}
	}

	return postgresql.WithTransaction(ctx, s.db, func(tx pgx.Tx) error {
		txCtx := context.WithValue(ctx, "tx", tx)

		if err := s.holidayRepo.DeleteByDate(txCtx, dateOf(date)); err != nil {
			return err
		}

		return s.recalculateMonthForAll(txCtx, date.Year(), int(date.Month()))
	})
}

// ListHolidays implements holiday.HolidayService. Readable by any
// authenticated user.
func (s *AdminServiceImpl) ListHolidays(ctx context.Context, year int) ([]holiday.HolidayResponse, error) {
	holidays, err := s.holidayRepo.ListByYear(ctx, year)
	if err != nil {
		return nil, err
	}

	responses := make([]holiday.HolidayResponse, 0, len(holidays))
	for _, h := range holidays {
		responses = append(responses, holiday.ToResponse(h))
	}

	return responses, nil
}

func (s *AdminServiceImpl) recalculateMonthForAll(ctx context.Context, year, month int) error {
	employees, err := s.employeeRepo.List(ctx)
	if err != nil {
		return err
	}

	for _, emp := range employees {
		if _, err := s.recalculator.RecalculateMonth(ctx, emp.ID, year, month); err != nil {
			return err
		}
	}

	return nil
}
