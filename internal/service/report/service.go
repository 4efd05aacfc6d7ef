package report

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
	"github.com/nilehr/attendance-backend-go/internal/repository/postgresql"
	"github.com/nilehr/attendance-backend-go/internal/service/calc"
	"github.com/nilehr/attendance-backend-go/internal/service/editwindow"
	"github.com/shopspring/decimal"
)

type ReportServiceImpl struct {
	db             *database.DB
	attendanceRepo attendance.AttendanceRepository
	employeeRepo   employee.EmployeeRepository
	summaryRepo    summary.SummaryRepository
	holidayRepo    holiday.HolidayRepository
	calc           *calc.Calculator
	now            func() time.Time
}

func NewReportService(
	db *database.DB,
	attendanceRepo attendance.AttendanceRepository,
	employeeRepo employee.EmployeeRepository,
	summaryRepo summary.SummaryRepository,
	holidayRepo holiday.HolidayRepository,
	calculator *calc.Calculator,
) *ReportServiceImpl {
	return &ReportServiceImpl{
		db:             db,
		attendanceRepo: attendanceRepo,
		employeeRepo:   employeeRepo,
		summaryRepo:    summaryRepo,
		holidayRepo:    holidayRepo,
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

// authorizeAccess allows admins everywhere and employees on their own data only
func authorizeAccess(ctx context.Context, targetEmployeeID string) error {
	claimsID, role, err := getClaimsFromContext(ctx)
	if err != nil {
		return err
	}
	if role != string(employee.RoleAdmin) && claimsID != targetEmployeeID {
		return employee.ErrAdminPrivilegeRequired
	}
	return nil
}

// RecalculateMonth implements summary.Recalculator. It reads the month's
// records and holidays, folds overtime into the paid minute pool and upserts
// the summary. The stored bonus is read first and flows into the salary but
// is never rewritten. No transaction is opened here; callers that mutate
// records run this inside their own transaction.
func (s *ReportServiceImpl) RecalculateMonth(ctx context.Context, employeeID string, year, month int) (summary.MonthlySummary, error) {
	if month < 1 || month > 12 || year < 2000 || year > 2100 {
		return summary.MonthlySummary{}, summary.ErrInvalidPeriod
	}

	emp, err := s.employeeRepo.GetByID(ctx, employeeID)
	if err != nil {
		return summary.MonthlySummary{}, err
	}

	records, err := s.attendanceRepo.ListByEmployeeAndMonth(ctx, employeeID, year, month)
	if err != nil {
		return summary.MonthlySummary{}, err
	}

	calendar, err := s.monthHolidays(ctx, year, month)
	if err != nil {
		return summary.MonthlySummary{}, err
	}

	expected := s.calc.ExpectedWorkingDays(year, month, calendar)
	totals := s.calc.AggregateMonth(records, expected)

	bonus := decimal.Zero
	if existing, err := s.summaryRepo.Get(ctx, employeeID, year, month); err != nil {
		return summary.MonthlySummary{}, err
	} else if existing != nil {
		bonus = existing.Bonus
	}

	// Overtime is paid at the flat minute rate, so it simply extends (or
	// shrinks) the paid minute pool. The pool never goes below zero.
	effectiveMinutes := totals.TotalWorkingMinutes + totals.OvertimeMinutes
	if effectiveMinutes < 0 {
		effectiveMinutes = 0
	}

	_, total := s.calc.MonthlySalary(effectiveMinutes, emp.MinuteCost, bonus, totals.ExtraExpenses)
	hours, minutes := s.calc.SplitMinutes(effectiveMinutes)

	stored, err := s.summaryRepo.Upsert(ctx, summary.MonthlySummary{
		EmployeeID:          employeeID,
		Year:                year,
		Month:               month,
		WorkingDays:         totals.WorkingDays,
		AbsenceDays:         totals.AbsenceDays,
		TotalWorkingHours:   hours,
		TotalWorkingMinutes: minutes,
		OvertimeMinutes:     totals.OvertimeMinutes,
		Bonus:               bonus,
		Salary:              total,
	})
	if err != nil {
		return summary.MonthlySummary{}, err
	}

	return stored, nil
}

func (s *ReportServiceImpl) monthHolidays(ctx context.Context, year, month int) (calc.HolidayCalendar, error) {
	from := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	to := from.AddDate(0, 1, -1)

	holidays, err := s.holidayRepo.ListByRange(ctx, from, to)
	if err != nil {
		return nil, err
	}

	dates := make([]time.Time, 0, len(holidays))
	for _, h := range holidays {
		dates = append(dates, h.Date)
	}
	return calc.NewHolidayCalendar(dates), nil
}

// Recalculate implements summary.ReportService.
func (s *ReportServiceImpl) Recalculate(ctx context.Context, employeeID string, year, month int) (summary.SummaryResponse, error) {
	if err := authorizeAccess(ctx, employeeID); err != nil {
		return summary.SummaryResponse{}, err
	}

	var stored summary.MonthlySummary
	err := postgresql.WithTransaction(ctx, s.db, func(tx pgx.Tx) error {
		txCtx := context.WithValue(ctx, "tx", tx)

		var err error
		stored, err = s.RecalculateMonth(txCtx, employeeID, year, month)
		return err
	})
	if err != nil {
		return summary.SummaryResponse{}, err
	}

	return summary.ToResponse(stored), nil
}

// GetMonthlyReport implements summary.ReportService.
func (s *ReportServiceImpl) GetMonthlyReport(ctx context.Context, employeeID string, year, month int) (summary.MonthlyReportResponse, error) {
	if err := authorizeAccess(ctx, employeeID); err != nil {
		return summary.MonthlyReportResponse{}, err
	}

	var stored summary.MonthlySummary
	var records []attendance.Attendance

	err := postgresql.WithTransaction(ctx, s.db, func(tx pgx.Tx) error {
		txCtx := context.WithValue(ctx, "tx", tx)

		var err error
		stored, err = s.RecalculateMonth(txCtx, employeeID, year, month)
		if err != nil {
			return err
		}

		records, err = s.attendanceRepo.ListByEmployeeAndMonth(txCtx, employeeID, year, month)
		return err
	})
	if err != nil {
		return summary.MonthlyReportResponse{}, err
	}

	today := s.now()
	responses := make([]attendance.AttendanceResponse, 0, len(records))
	for _, rec := range records {
		responses = append(responses, attendance.ToResponse(rec, editwindow.IsEditable(rec.Date, today)))
	}

	return summary.MonthlyReportResponse{
		Summary: summary.ToResponse(stored),
		Records: responses,
	}, nil
}

// SetBonus implements summary.ReportService.
func (s *ReportServiceImpl) SetBonus(ctx context.Context, req summary.SetBonusRequest) (summary.SummaryResponse, error) {
	_, role, err := getClaimsFromContext(ctx)
	if err != nil {
		return summary.SummaryResponse{}, err
	}
	if role != string(employee.RoleAdmin) {
		return summary.SummaryResponse{}, employee.ErrAdminPrivilegeRequired
	}

	if err := req.Validate(); err != nil {
		return summary.SummaryResponse{}, err
	}

	if _, err := s.employeeRepo.GetByID(ctx, req.EmployeeID); err != nil {
		return summary.SummaryResponse{}, err
	}

	var stored summary.MonthlySummary
	err = postgresql.WithTransaction(ctx, s.db, func(tx pgx.Tx) error {
		txCtx := context.WithValue(ctx, "tx", tx)

		if err := s.summaryRepo.SetBonus(txCtx, req.EmployeeID, req.Year, req.Month, req.Bonus); err != nil {
			return err
		}

		var err error
		stored, err = s.RecalculateMonth(txCtx, req.EmployeeID, req.Year, req.Month)
		return err
	})
	if err != nil {
		return summary.SummaryResponse{}, err
	}

	return summary.ToResponse(stored), nil
}

// GetFullReport implements summary.ReportService.
func (s *ReportServiceImpl) GetFullReport(ctx context.Context, employeeID string) (summary.FullReportResponse, error) {
	if err := authorizeAccess(ctx, employeeID); err != nil {
		return summary.FullReportResponse{}, err
	}

	emp, err := s.employeeRepo.GetByID(ctx, employeeID)
	if err != nil {
		return summary.FullReportResponse{}, err
	}

	summaries, err := s.summaryRepo.ListByEmployee(ctx, employeeID)
	if err != nil {
		return summary.FullReportResponse{}, err
	}

	resp := summary.FullReportResponse{
		EmployeeID:   emp.ID,
		EmployeeName: emp.FullName,
		Summaries:    make([]summary.SummaryResponse, 0, len(summaries)),
	}

	totalSalary := decimal.Zero
	for _, sum := range summaries {
		resp.Summaries = append(resp.Summaries, summary.ToResponse(sum))
		resp.TotalWorkingDays += sum.WorkingDays
		resp.TotalAbsenceDays += sum.AbsenceDays
		resp.TotalOvertimeMinutes += sum.OvertimeMinutes
		totalSalary = totalSalary.Add(sum.Salary)
	}
	resp.TotalSalary = totalSalary.StringFixed(2)

	return resp, nil
}

// GetAllEmployeesReport implements summary.ReportService.
func (s *ReportServiceImpl) GetAllEmployeesReport(ctx context.Context, year, month int) (summary.AllEmployeesReportResponse, error) {
	_, role, err := getClaimsFromContext(ctx)
	if err != nil {
		return summary.AllEmployeesReportResponse{}, err
	}
	if role != string(employee.RoleAdmin) {
		return summary.AllEmployeesReportResponse{}, employee.ErrAdminPrivilegeRequired
	}

	if month < 1 || month > 12 || year < 2000 || year > 2100 {
		return summary.AllEmployeesReportResponse{}, summary.ErrInvalidPeriod
	}

	summaries, err := s.summaryRepo.ListByMonth(ctx, year, month)
	if err != nil {
		return summary.AllEmployeesReportResponse{}, err
	}

	resp := summary.AllEmployeesReportResponse{
		Year:      year,
		Month:     month,
		Summaries: make([]summary.SummaryResponse, 0, len(summaries)),
	}
	for _, sum := range summaries {
		resp.Summaries = append(resp.Summaries, summary.ToResponse(sum))
	}

	return resp, nil
}

// GetEditWindow implements summary.ReportService.
func (s *ReportServiceImpl) GetEditWindow(ctx context.Context) (summary.EditWindowResponse, error) {
	if _, _, err := getClaimsFromContext(ctx); err != nil {
		return summary.EditWindowResponse{}, err
	}

	first, second := editwindow.Compute(s.now())
	return summary.EditWindowResponse{
		Windows: []summary.WindowResponse{
			{Start: first.Start.Format("2006-01-02"), End: first.End.Format("2006-01-02")},
			{Start: second.Start.Format("2006-01-02"), End: second.End.Format("2006-01-02")},
		},
	}, nil
}
