package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/nilehr/attendance-backend-go/internal/domain/holiday"
	"github.com/nilehr/attendance-backend-go/internal/pkg/database"
)

type holidayRepository struct {
	db *database.DB
}

func NewHolidayRepository(db *database.DB) holiday.HolidayRepository {
	return &holidayRepository{db: db}
}

// Create implements holiday.HolidayRepository.
func (r *holidayRepository) Create(ctx context.Context, h holiday.Holiday) (holiday.Holiday, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO holidays (holiday_date, name, holiday_type)
		VALUES ($1, $2, $3)
		RETURNING id, created_at
	`

	err := q.QueryRow(ctx, query, h.Date, h.Name, h.HolidayType).Scan(&h.ID, &h.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return holiday.Holiday{}, holiday.ErrHolidayExists
		}
		return holiday.Holiday{}, fmt.Errorf("failed to create holiday: %w", err)
	}

	return h, nil
}

// DeleteByDate implements holiday.HolidayRepository.
func (r *holidayRepository) DeleteByDate(ctx context.Context, date time.Time) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `DELETE FROM holidays WHERE holiday_date = $1`, date)
	if err != nil {
		return fmt.Errorf("failed to delete holiday: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return holiday.ErrHolidayNotFound
	}

	return nil
}

// ListByRange implements holiday.HolidayRepository.
func (r *holidayRepository) ListByRange(ctx context.Context, from, to time.Time) ([]holiday.Holiday, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, holiday_date, name, holiday_type, created_at
		FROM holidays
		WHERE holiday_date BETWEEN $1 AND $2
		ORDER BY holiday_date
	`

	rows, err := q.Query(ctx, query, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to list holidays: %w", err)
	}
	defer rows.Close()

	var holidays []holiday.Holiday
	for rows.Next() {
		var h holiday.Holiday
		if err := rows.Scan(&h.ID, &h.Date, &h.Name, &h.HolidayType, &h.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan holiday: %w", err)
		}
		holidays = append(holidays, h)
	}

	return holidays, rows.Err()
}

// ListByYear implements holiday.HolidayRepository.
func (r *holidayRepository) ListByYear(ctx context.Context, year int) ([]holiday.Holiday, error) {
	from := time.Date(year, 1, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(year, 12, 31, 0, 0, 0, 0, time.UTC)
	return r.ListByRange(ctx, from, to)
}
