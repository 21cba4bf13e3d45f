package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestSubtractMonths(t *testing.T) {
	tests := []struct {
		name     string
		base     time.Time
		months   int
		expected time.Time
	}{
		{
			name:     "subtração simples",
			base:     date(2026, time.June, 15),
			months:   2,
			expected: date(2026, time.April, 15),
		},
		{
			name:     "virada de ano",
			base:     date(2026, time.February, 23),
			months:   24,
			expected: date(2024, time.February, 23),
		},
		{
			name:     "clamp para mês mais curto",
			base:     date(2026, time.March, 31),
			months:   1,
			expected: date(2026, time.February, 28),
		},
		{
			name:     "clamp em ano bissexto",
			base:     date(2024, time.March, 31),
			months:   1,
			expected: date(2024, time.February, 29),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, SubtractMonths(tt.base, tt.months))
		})
	}
}

func TestAddMonthsClampsToShorterMonth(t *testing.T) {
	assert.Equal(t, date(2025, time.February, 28), AddMonths(date(2025, time.January, 31), 1))
	assert.Equal(t, date(2025, time.April, 30), AddMonths(date(2025, time.January, 31), 3))
}

func TestMonthChunks(t *testing.T) {
	chunks := MonthChunks(date(2026, time.January, 1), date(2026, time.September, 15), 3)

	assert.Equal(t, []DateRange{
		{Since: date(2026, time.January, 1), Until: date(2026, time.March, 31)},
		{Since: date(2026, time.April, 1), Until: date(2026, time.June, 30)},
		{Since: date(2026, time.July, 1), Until: date(2026, time.September, 15)},
	}, chunks)
}

func TestMonthChunksSingleDay(t *testing.T) {
	chunks := MonthChunks(date(2026, time.May, 10), date(2026, time.May, 10), 3)

	assert.Equal(t, []DateRange{
		{Since: date(2026, time.May, 10), Until: date(2026, time.May, 10)},
	}, chunks)
}

func TestMonthChunksEmptyWhenSinceAfterUntil(t *testing.T) {
	assert.Empty(t, MonthChunks(date(2026, time.May, 11), date(2026, time.May, 10), 3))
}

func TestDayChunks(t *testing.T) {
	chunks := DayChunks(date(2026, time.January, 1), date(2026, time.February, 20), 29)

	assert.Equal(t, []DateRange{
		{Since: date(2026, time.January, 1), Until: date(2026, time.January, 30)},
		{Since: date(2026, time.January, 31), Until: date(2026, time.February, 20)},
	}, chunks)
}
