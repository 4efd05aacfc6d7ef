package employee

import (
	"strings"

	"github.com/nilehr/attendance-backend-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

// MaxEmployees caps how many accounts can exist in a single installation.
const MaxEmployees = 15

type CreateEmployeeRequest struct {
	Username            string          `json:"username"`
	Password            string          `json:"password"`
	FullName            string          `json:"full_name"`
	Role                string          `json:"role"`
	MinuteCost          decimal.Decimal `json:"minute_cost"`
	VacationDaysAllowed *int            `json:"vacation_days_allowed,omitempty"`
	JoinDate            *string         `json:"join_date,omitempty"` // YYYY-MM-DD, defaults to today
}

func (r *CreateEmployeeRequest) Validate() error {
	var errs validator.ValidationErrors

	r.Username = strings.ToLower(strings.TrimSpace(r.Username))
	if !validator.IsValidUsername(r.Username) {
		errs = append(errs, validator.ValidationError{
			Field:   "username",
			Message: "username must be at least 3 characters: letters, digits and underscores only",
		})
	}

	if len(r.Password) < 6 {
		errs = append(errs, validator.ValidationError{
			Field:   "password",
			Message: "password must be at least 6 characters",
		})
	}

	if validator.IsEmpty(r.FullName) {
		errs = append(errs, validator.ValidationError{
			Field:   "full_name",
			Message: "full_name is required",
		})
	}

	if r.Role == "" {
		r.Role = string(RoleEmployee) // Default role
	}
	if !validator.IsInSlice(r.Role, []string{string(RoleEmployee), string(RoleAdmin)}) {
		errs = append(errs, validator.ValidationError{
			Field:   "role",
			Message: "role must be one of: employee, admin",
		})
	}

	if r.MinuteCost.IsNegative() || r.MinuteCost.GreaterThan(decimal.NewFromInt(1000)) {
		errs = append(errs, validator.ValidationError{
			Field:   "minute_cost",
			Message: "minute_cost must be between 0 and 1000",
		})
	}

	if r.VacationDaysAllowed != nil && (*r.VacationDaysAllowed < 0 || *r.VacationDaysAllowed > 60) {
		errs = append(errs, validator.ValidationError{
			Field:   "vacation_days_allowed",
			Message: "vacation_days_allowed must be between 0 and 60",
		})
	}

	if r.JoinDate != nil && *r.JoinDate != "" {
		if _, valid := validator.IsValidDate(*r.JoinDate); !valid {
			errs = append(errs, validator.ValidationError{
				Field:   "join_date",
				Message: "join_date must be in YYYY-MM-DD format",
			})
		}
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type UpdateMinuteCostRequest struct {
	EmployeeID string          `json:"-"`
	MinuteCost decimal.Decimal `json:"minute_cost"`
}

func (r *UpdateMinuteCostRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{
			Field:   "employee_id",
			Message: "employee_id is required",
		})
	}

	if r.MinuteCost.IsNegative() || r.MinuteCost.GreaterThan(decimal.NewFromInt(1000)) {
		errs = append(errs, validator.ValidationError{
			Field:   "minute_cost",
			Message: "minute_cost must be between 0 and 1000",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type UpdateVacationAllowanceRequest struct {
	EmployeeID string `json:"-"`
	Days       int    `json:"vacation_days_allowed"`
}

func (r *UpdateVacationAllowanceRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{
			Field:   "employee_id",
			Message: "employee_id is required",
		})
	}

	if r.Days < 0 || r.Days > 60 {
		errs = append(errs, validator.ValidationError{
			Field:   "vacation_days_allowed",
			Message: "vacation_days_allowed must be between 0 and 60",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type SetActiveRequest struct {
	EmployeeID string `json:"-"`
	IsActive   bool   `json:"is_active"`
}

type EmployeeResponse struct {
	ID                  string `json:"id"`
	Username            string `json:"username"`
	FullName            string `json:"full_name"`
	Role                string `json:"role"`
	MinuteCost          string `json:"minute_cost"`
	VacationDaysAllowed int    `json:"vacation_days_allowed"`
	JoinDate            string `json:"join_date"`
	IsActive            bool   `json:"is_active"`
	CreatedAt           string `json:"created_at"`
}

func ToResponse(e Employee) EmployeeResponse {
	return EmployeeResponse{
		ID:                  e.ID,
		Username:            e.Username,
		FullName:            e.FullName,
		Role:                string(e.Role),
		MinuteCost:          e.MinuteCost.String(),
		VacationDaysAllowed: e.VacationDaysAllowed,
		JoinDate:            e.JoinDate.Format("2006-01-02"),
		IsActive:            e.IsActive,
		CreatedAt:           e.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
	}
}
