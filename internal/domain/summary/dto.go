package summary

import (
	"github.com/nilehr/attendance-backend-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

type SetBonusRequest struct {
	EmployeeID string          `json:"employee_id"`
	Year       int             `json:"year"`
	Month      int             `json:"month"`
	Bonus      decimal.Decimal `json:"bonus"`
}

func (r *SetBonusRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{
			Field:   "employee_id",
			Message: "employee_id is required",
		})
	}

	if r.Year < 2000 || r.Year > 2100 {
		errs = append(errs, validator.ValidationError{
			Field:   "year",
			Message: "year must be between 2000 and 2100",
		})
	}

	if r.Month < 1 || r.Month > 12 {
		errs = append(errs, validator.ValidationError{
			Field:   "month",
			Message: "month must be between 1 and 12",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type SummaryResponse struct {
	EmployeeID          string  `json:"employee_id"`
	EmployeeName        *string `json:"employee_name,omitempty"`
	Year                int     `json:"year"`
	Month               int     `json:"month"`
	WorkingDays         int     `json:"working_days"`
	AbsenceDays         int     `json:"absence_days"`
	TotalWorkingHours   int     `json:"total_working_hours"`
	TotalWorkingMinutes int     `json:"total_working_minutes"`
	OvertimeMinutes     int     `json:"overtime_minutes"`
	Bonus               string  `json:"bonus"`
	Salary              string  `json:"salary"`
}

func ToResponse(s MonthlySummary) SummaryResponse {
	return SummaryResponse{
		EmployeeID:          s.EmployeeID,
		EmployeeName:        s.EmployeeName,
		Year:                s.Year,
		Month:               s.Month,
		WorkingDays:         s.WorkingDays,
		AbsenceDays:         s.AbsenceDays,
		TotalWorkingHours:   s.TotalWorkingHours,
		TotalWorkingMinutes: s.TotalWorkingMinutes,
		OvertimeMinutes:     s.OvertimeMinutes,
		Bonus:               s.Bonus.StringFixed(2),
		Salary:              s.Salary.StringFixed(2),
	}
}
