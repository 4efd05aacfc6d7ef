package employee

import (
	"time"

	"github.com/shopspring/decimal"
)

type Role string

const (
	RoleEmployee Role = "employee" // Regular employee - own records only
	RoleAdmin    Role = "admin"    // Full access, payroll adjustments
)

type Employee struct {
	ID                  string
	Username            string // stored lowercase, unique
	PasswordHash        string
	FullName            string
	Role                Role
	MinuteCost          decimal.Decimal
	VacationDaysAllowed int
	JoinDate            time.Time
	IsActive            bool
	CreatedAt           time.Time
	UpdatedAt           time.Time
}

// IsAdmin checks if the employee has admin privileges
func (e *Employee) IsAdmin() bool {
	return e.Role == RoleAdmin
}

const DefaultVacationDays = 21
