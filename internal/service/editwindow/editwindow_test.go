package editwindow

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestComputeOnOrBeforeCutoff(t *testing.T) {
	// March 8th: February and March are both fully open
	first, second := Compute(day(2024, 3, 8))

	assert.Equal(t, day(2024, 2, 1), first.Start)
	assert.Equal(t, day(2024, 2, 29), first.End) // leap year
	assert.Equal(t, day(2024, 3, 1), second.Start)
	assert.Equal(t, day(2024, 3, 31), second.End)
}

func TestComputeAfterCutoff(t *testing.T) {
	// March 9th: February froze, first week of April opened
	first, second := Compute(day(2024, 3, 9))

	assert.Equal(t, day(2024, 3, 1), first.Start)
	assert.Equal(t, day(2024, 3, 31), first.End)
	assert.Equal(t, day(2024, 4, 1), second.Start)
	assert.Equal(t, day(2024, 4, 8), second.End)
}

func TestComputeJanuaryRollsBackToDecember(t *testing.T) {
	first, second := Compute(day(2025, 1, 5))

	assert.Equal(t, day(2024, 12, 1), first.Start)
	assert.Equal(t, day(2024, 12, 31), first.End)
	assert.Equal(t, day(2025, 1, 1), second.Start)
	assert.Equal(t, day(2025, 1, 31), second.End)
}

func TestComputeDecemberRollsForwardToJanuary(t *testing.T) {
	first, second := Compute(day(2024, 12, 15))

	assert.Equal(t, day(2024, 12, 1), first.Start)
	assert.Equal(t, day(2024, 12, 31), first.End)
	assert.Equal(t, day(2025, 1, 1), second.Start)
	assert.Equal(t, day(2025, 1, 8), second.End)
}

func TestIsEditable(t *testing.T) {
	tests := []struct {
		name       string
		recordDate time.Time
		today      time.Time
		want       bool
	}{
		{"prev month open on day 8", day(2024, 2, 15), day(2024, 3, 8), true},
		{"prev month frozen on day 9", day(2024, 2, 15), day(2024, 3, 9), false},
		{"current month always open", day(2024, 3, 1), day(2024, 3, 20), true},
		{"next month first week open after cutoff", day(2024, 4, 8), day(2024, 3, 20), true},
		{"next month beyond first week closed", day(2024, 4, 9), day(2024, 3, 20), false},
		{"next month closed before cutoff", day(2024, 4, 1), day(2024, 3, 5), false},
		{"two months back always closed", day(2024, 1, 15), day(2024, 3, 5), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsEditable(tt.recordDate, tt.today))
		})
	}
}

func TestIsEditableIgnoresTimeOfDay(t *testing.T) {
	record := time.Date(2024, 2, 15, 23, 59, 0, 0, time.UTC)
	today := time.Date(2024, 3, 8, 0, 1, 0, 0, time.UTC)
	assert.True(t, IsEditable(record, today))
}

func TestWithinCreationWindow(t *testing.T) {
	today := day(2024, 3, 15)

	assert.True(t, WithinCreationWindow(day(2024, 3, 15), today))
	assert.True(t, WithinCreationWindow(day(2024, 2, 1), today))
	assert.True(t, WithinCreationWindow(day(2024, 1, 15), today)) // exactly 60 days back
	assert.False(t, WithinCreationWindow(day(2024, 1, 14), today))
	assert.False(t, WithinCreationWindow(day(2024, 3, 16), today)) // future
}
