package summary

import (
	"context"

	"github.com/shopspring/decimal"
)

// SummaryRepository defines data access methods for monthly summaries.
type SummaryRepository interface {
	// Get retrieves the summary for one employee and month.
	// Returns nil when no summary exists yet.
	Get(ctx context.Context, employeeID string, year, month int) (*MonthlySummary, error)

	// Upsert inserts or replaces the derived fields of a summary.
	// Bonus is written on insert only; on conflict the stored bonus is kept.
	Upsert(ctx context.Context, s MonthlySummary) (MonthlySummary, error)

	// SetBonus sets the manual bonus, creating an empty summary row if needed.
	// Callers recalculate the month afterwards so salary picks up the bonus.
	SetBonus(ctx context.Context, employeeID string, year, month int, bonus decimal.Decimal) error

	// ListByEmployee retrieves all summaries for one employee ordered by period
	ListByEmployee(ctx context.Context, employeeID string) ([]MonthlySummary, error)

	// ListByMonth retrieves summaries of all employees for one month
	ListByMonth(ctx context.Context, year, month int) ([]MonthlySummary, error)
}
