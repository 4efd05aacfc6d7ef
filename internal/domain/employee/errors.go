package employee

import "errors"

var (
	ErrEmployeeNotFound        = errors.New("employee not found")
	ErrUsernameExists          = errors.New("username already exists")
	ErrInvalidUsername         = errors.New("username must be at least 3 characters, letters, digits and underscores only")
	ErrInvalidMinuteCost       = errors.New("minute cost must be between 0 and 1000")
	ErrInvalidVacationDays     = errors.New("vacation days must be between 0 and 60")
	ErrEmployeeInactive        = errors.New("employee account is deactivated")
	ErrAdminPrivilegeRequired  = errors.New("admin privilege required for this action")
	ErrEmployeeLimitReached    = errors.New("maximum number of employees reached")
	ErrEmployeeAlreadyActive   = errors.New("employee is already active")
	ErrEmployeeAlreadyInactive = errors.New("employee is already inactive")
)
