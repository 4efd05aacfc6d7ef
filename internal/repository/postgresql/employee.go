package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/nilehr/attendance-backend-go/internal/domain/employee"
	"github.com/nilehr/attendance-backend-go/internal/pkg/database"
)

type employeeRepository struct {
	db *database.DB
}

func NewEmployeeRepository(db *database.DB) employee.EmployeeRepository {
	return &employeeRepository{db: db}
}

const employeeColumns = `id, username, password_hash, full_name, role, minute_cost,
	   vacation_days_allowed, join_date, is_active, created_at, updated_at`

func scanEmployee(row pgx.Row) (employee.Employee, error) {
	var e employee.Employee
	err := row.Scan(
		&e.ID, &e.Username, &e.PasswordHash, &e.FullName, &e.Role, &e.MinuteCost,
		&e.VacationDaysAllowed, &e.JoinDate, &e.IsActive, &e.CreatedAt, &e.UpdatedAt,
	)
	return e, err
}

// Create implements employee.EmployeeRepository.
func (r *employeeRepository) Create(ctx context.Context, newEmployee employee.Employee) (employee.Employee, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO employees (
			username, password_hash, full_name, role, minute_cost,
			vacation_days_allowed, join_date, is_active
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8
		) RETURNING id, created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		newEmployee.Username,
		newEmployee.PasswordHash,
		newEmployee.FullName,
		newEmployee.Role,
		newEmployee.MinuteCost,
		newEmployee.VacationDaysAllowed,
		newEmployee.JoinDate,
		newEmployee.IsActive,
	).Scan(&newEmployee.ID, &newEmployee.CreatedAt, &newEmployee.UpdatedAt)

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return employee.Employee{}, employee.ErrUsernameExists
		}
		return employee.Employee{}, fmt.Errorf("failed to create employee: %w", err)
	}

	return newEmployee, nil
}

// GetByID implements employee.EmployeeRepository.
func (r *employeeRepository) GetByID(ctx context.Context, id string) (employee.Employee, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + employeeColumns + ` FROM employees WHERE id = $1`

	e, err := scanEmployee(q.QueryRow(ctx, query, id))
	if err != nil {
		if err == pgx.ErrNoRows {
			return employee.Employee{}, employee.ErrEmployeeNotFound
		}
		return employee.Employee{}, fmt.Errorf("failed to get employee by id: %w", err)
	}

	return e, nil
}

// GetByUsername implements employee.EmployeeRepository.
func (r *employeeRepository) GetByUsername(ctx context.Context, username string) (employee.Employee, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + employeeColumns + ` FROM employees WHERE username = lower($1)`

	e, err := scanEmployee(q.QueryRow(ctx, query, username))
	if err != nil {
		if err == pgx.ErrNoRows {
			return employee.Employee{}, employee.ErrEmployeeNotFound
		}
		return employee.Employee{}, fmt.Errorf("failed to get employee by username: %w", err)
	}

	return e, nil
}

// List implements employee.EmployeeRepository.
func (r *employeeRepository) List(ctx context.Context) ([]employee.Employee, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + employeeColumns + ` FROM employees ORDER BY full_name`

	rows, err := q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list employees: %w", err)
	}
	defer rows.Close()

	var employees []employee.Employee
	for rows.Next() {
		e, err := scanEmployee(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan employee: %w", err)
		}
		employees = append(employees, e)
	}

	return employees, rows.Err()
}

// Count implements employee.EmployeeRepository.
func (r *employeeRepository) Count(ctx context.Context) (int, error) {
	q := GetQuerier(ctx, r.db)

	var count int
	if err := q.QueryRow(ctx, `SELECT COUNT(*) FROM employees`).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count employees: %w", err)
	}

	return count, nil
}

// Update implements employee.EmployeeRepository.
func (r *employeeRepository) Update(ctx context.Context, e employee.Employee) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE employees
		SET full_name = $2, role = $3, minute_cost = $4,
			vacation_days_allowed = $5, is_active = $6, updated_at = NOW()
		WHERE id = $1
	`

	tag, err := q.Exec(ctx, query,
		e.ID, e.FullName, e.Role, e.MinuteCost, e.VacationDaysAllowed, e.IsActive,
	)
	if err != nil {
		return fmt.Errorf("failed to update employee: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return employee.ErrEmployeeNotFound
	}

	return nil
}

// UpdatePassword implements employee.EmployeeRepository.
func (r *employeeRepository) UpdatePassword(ctx context.Context, id string, passwordHash string) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx,
		`UPDATE employees SET password_hash = $2, updated_at = NOW() WHERE id = $1`,
		id, passwordHash,
	)
	if err != nil {
		return fmt.Errorf("failed to update password: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return employee.ErrEmployeeNotFound
	}

	return nil
}
