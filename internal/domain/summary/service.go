package summary

import (
	"context"

	"github.com/nilehr/attendance-backend-go/internal/domain/attendance"
)

type MonthlyReportResponse struct {
	Summary SummaryResponse                 `json:"summary"`
	Records []attendance.AttendanceResponse `json:"records"`
}

type FullReportResponse struct {
	EmployeeID           string            `json:"employee_id"`
	EmployeeName         string            `json:"employee_name"`
	Summaries            []SummaryResponse `json:"summaries"`
	TotalWorkingDays     int               `json:"total_working_days"`
	TotalAbsenceDays     int               `json:"total_absence_days"`
	TotalOvertimeMinutes int               `json:"total_overtime_minutes"`
	TotalSalary          string            `json:"total_salary"`
}

type AllEmployeesReportResponse struct {
	Year      int               `json:"year"`
	Month     int               `json:"month"`
	Summaries []SummaryResponse `json:"summaries"`
}

type WindowResponse struct {
	Start string `json:"start"` // YYYY-MM-DD inclusive
	End   string `json:"end"`   // YYYY-MM-DD inclusive
}

type EditWindowResponse struct {
	Windows []WindowResponse `json:"windows"`
}

// ReportService defines monthly aggregation and payroll reporting
type ReportService interface {
	// GetMonthlyReport recalculates and returns the summary with its daily records
	GetMonthlyReport(ctx context.Context, employeeID string, year, month int) (MonthlyReportResponse, error)

	// Recalculate rebuilds one summary from its attendance records. Idempotent;
	// the stored bonus is never modified.
	Recalculate(ctx context.Context, employeeID string, year, month int) (SummaryResponse, error)

	// SetBonus sets the manual bonus for a month and refreshes its salary (admin only)
	SetBonus(ctx context.Context, req SetBonusRequest) (SummaryResponse, error)

	// GetFullReport returns every stored summary for an employee with running totals
	GetFullReport(ctx context.Context, employeeID string) (FullReportResponse, error)

	// GetAllEmployeesReport returns one month across all employees (admin only)
	GetAllEmployeesReport(ctx context.Context, year, month int) (AllEmployeesReportResponse, error)

	// GetEditWindow reports the currently editable date ranges for the UI
	GetEditWindow(ctx context.Context) (EditWindowResponse, error)
}

// Recalculator is the recalculation entry point shared with mutating services.
// Implementations must not open their own transaction so callers can run the
// mutation and the recalculation atomically.
type Recalculator interface {
	RecalculateMonth(ctx context.Context, employeeID string, year, month int) (MonthlySummary, error)
}
