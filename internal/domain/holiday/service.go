package holiday

import (
	"context"
)

// HolidayService defines admin-only calendar management
type HolidayService interface {
	// AddHoliday registers a holiday and recalculates affected summaries
	AddHoliday(ctx context.Context, req AddHolidayRequest) (HolidayResponse, error)

	// RemoveHoliday deletes the holiday on a date and recalculates affected summaries
	RemoveHoliday(ctx context.Context, date string) error

	// ListHolidays returns all holidays in a year
	ListHolidays(ctx context.Context, year int) ([]HolidayResponse, error)
}
