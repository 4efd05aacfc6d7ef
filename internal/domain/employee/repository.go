package employee

import (
	"context"
)

// EmployeeRepository defines data access methods for employee accounts.
type EmployeeRepository interface {
	// Create creates a new employee account
	Create(ctx context.Context, employee Employee) (Employee, error)

	// GetByID retrieves an employee by ID
	GetByID(ctx context.Context, id string) (Employee, error)

	// GetByUsername retrieves an employee by username (stored lowercase)
	GetByUsername(ctx context.Context, username string) (Employee, error)

	// List retrieves all employees ordered by full name
	List(ctx context.Context) ([]Employee, error)

	// Count returns the number of employee accounts
	Count(ctx context.Context) (int, error)

	// Update updates mutable employee fields
	Update(ctx context.Context, employee Employee) error

	// UpdatePassword replaces the stored password hash
	UpdatePassword(ctx context.Context, id string, passwordHash string) error
}
