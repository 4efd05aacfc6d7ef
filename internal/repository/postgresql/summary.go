package postgresql

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/nilehr/attendance-backend-go/internal/domain/summary"
	"github.com/nilehr/attendance-backend-go/internal/pkg/database"
	"github.com/shopspring/decimal"
)

type summaryRepository struct {
	db *database.DB
}

func NewSummaryRepository(db *database.DB) summary.SummaryRepository {
	return &summaryRepository{db: db}
}

const summaryColumns = `id, employee_id, year, month, working_days, absence_days,
	   total_working_hours, total_working_minutes, overtime_minutes,
	   bonus, salary, created_at, updated_at`

func scanSummary(row pgx.Row) (summary.MonthlySummary, error) {
	var s summary.MonthlySummary
	err := row.Scan(
		&s.ID, &s.EmployeeID, &s.Year, &s.Month, &s.WorkingDays, &s.AbsenceDays,
		&s.TotalWorkingHours, &s.TotalWorkingMinutes, &s.OvertimeMinutes,
		&s.Bonus, &s.Salary, &s.CreatedAt, &s.UpdatedAt,
	)
	return s, err
}

// Get implements summary.SummaryRepository.
func (r *summaryRepository) Get(ctx context.Context, employeeID string, year, month int) (*summary.MonthlySummary, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + summaryColumns + `
		FROM monthly_summaries
		WHERE employee_id = $1 AND year = $2 AND month = $3
	`

	s, err := scanSummary(q.QueryRow(ctx, query, employeeID, year, month))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil // No summary yet
		}
		return nil, fmt.Errorf("failed to get monthly summary: %w", err)
	}

	return &s, nil
}

// Upsert implements summary.SummaryRepository. The stored bonus wins on
// conflict; recalculation must never overwrite a manual bonus.
func (r *summaryRepository) Upsert(ctx context.Context, s summary.MonthlySummary) (summary.MonthlySummary, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO monthly_summaries (
			employee_id, year, month, working_days, absence_days,
			total_working_hours, total_working_minutes, overtime_minutes,
			bonus, salary
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10
		)
		ON CONFLICT (employee_id, year, month) DO UPDATE SET
			working_days = EXCLUDED.working_days,
			absence_days = EXCLUDED.absence_days,
			total_working_hours = EXCLUDED.total_working_hours,
			total_working_minutes = EXCLUDED.total_working_minutes,
			overtime_minutes = EXCLUDED.overtime_minutes,
			salary = EXCLUDED.salary,
			updated_at = NOW()
		RETURNING ` + summaryColumns + `
	`

	stored, err := scanSummary(q.QueryRow(ctx, query,
		s.EmployeeID, s.Year, s.Month, s.WorkingDays, s.AbsenceDays,
		s.TotalWorkingHours, s.TotalWorkingMinutes, s.OvertimeMinutes,
		s.Bonus, s.Salary,
	))
	if err != nil {
		return summary.MonthlySummary{}, fmt.Errorf("failed to upsert monthly summary: %w", err)
	}

	return stored, nil
}

// SetBonus implements summary.SummaryRepository.
func (r *summaryRepository) SetBonus(ctx context.Context, employeeID string, year, month int, bonus decimal.Decimal) error {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO monthly_summaries (employee_id, year, month, bonus)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (employee_id, year, month) DO UPDATE SET
			bonus = EXCLUDED.bonus,
			updated_at = NOW()
	`

	if _, err := q.Exec(ctx, query, employeeID, year, month, bonus); err != nil {
		return fmt.Errorf("failed to set bonus: %w", err)
	}

	return nil
}

// ListByEmployee implements summary.SummaryRepository.
func (r *summaryRepository) ListByEmployee(ctx context.Context, employeeID string) ([]summary.MonthlySummary, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + summaryColumns + `
		FROM monthly_summaries
		WHERE employee_id = $1
		ORDER BY year, month
	`

	rows, err := q.Query(ctx, query, employeeID)
	if err != nil {
		return nil, fmt.Errorf("failed to list summaries: %w", err)
	}
	defer rows.Close()

	var summaries []summary.MonthlySummary
	for rows.Next() {
		s, err := scanSummary(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan summary: %w", err)
		}
		summaries = append(summaries, s)
	}

	return summaries, rows.Err()
}

// ListByMonth implements summary.SummaryRepository.
func (r *summaryRepository) ListByMonth(ctx context.Context, year, month int) ([]summary.MonthlySummary, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT s.id, s.employee_id, s.year, s.month, s.working_days, s.absence_days,
			   s.total_working_hours, s.total_working_minutes, s.overtime_minutes,
			   s.bonus, s.salary, s.created_at, s.updated_at,
			   e.full_name AS employee_name
		FROM monthly_summaries s
		LEFT JOIN employees e ON e.id = s.employee_id
		WHERE s.year = $1 AND s.month = $2
		ORDER BY e.full_name
	`

	rows, err := q.Query(ctx, query, year, month)
	if err != nil {
		return nil, fmt.Errorf("failed to list summaries by month: %w", err)
	}
	defer rows.Close()

	var summaries []summary.MonthlySummary
	for rows.Next() {
		var s summary.MonthlySummary
		err := rows.Scan(
			&s.ID, &s.EmployeeID, &s.Year, &s.Month, &s.WorkingDays, &s.AbsenceDays,
			&s.TotalWorkingHours, &s.TotalWorkingMinutes, &s.OvertimeMinutes,
			&s.Bonus, &s.Salary, &s.CreatedAt, &s.UpdatedAt,
			&s.EmployeeName,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan summary: %w", err)
		}
		summaries = append(summaries, s)
	}

	return summaries, rows.Err()
}
