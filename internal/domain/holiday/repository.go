package holiday

import (
	"context"
	"time"
)

// HolidayRepository defines data access methods for the holiday calendar.
type HolidayRepository interface {
	// Create adds a holiday. The unique date index rejects duplicates.
	Create(ctx context.Context, holiday Holiday) (Holiday, error)

	// DeleteByDate removes the holiday on a given date
	DeleteByDate(ctx context.Context, date time.Time) error

	// ListByRange retrieves holidays between two dates inclusive, ordered by date
	ListByRange(ctx context.Context, from, to time.Time) ([]Holiday, error)

	// ListByYear retrieves all holidays in a calendar year
	ListByYear(ctx context.Context, year int) ([]Holiday, error)
}
