package employee

import (
	"context"
)

// EmployeeService defines admin-only business logic for managing accounts
type EmployeeService interface {
	// CreateEmployee registers a new account (admin only, capped at MaxEmployees)
	CreateEmployee(ctx context.Context, req CreateEmployeeRequest) (EmployeeResponse, error)

	// GetEmployee retrieves a single employee by ID
	GetEmployee(ctx context.Context, id string) (EmployeeResponse, error)

	// ListEmployees retrieves all employees
	ListEmployees(ctx context.Context) ([]EmployeeResponse, error)

	// UpdateMinuteCost changes the per-minute rate and recalculates the
	// current month summary for that employee
	UpdateMinuteCost(ctx context.Context, req UpdateMinuteCostRequest) (EmployeeResponse, error)

	// UpdateVacationAllowance changes the yearly vacation day allowance
	UpdateVacationAllowance(ctx context.Context, req UpdateVacationAllowanceRequest) (EmployeeResponse, error)

	// SetActive activates or deactivates an account
	SetActive(ctx context.Context, req SetActiveRequest) (EmployeeResponse, error)
}
