package summary

import "errors"

var (
	ErrSummaryNotFound = errors.New("monthly summary not found")
	ErrInvalidPeriod   = errors.New("invalid year or month")
)
