package workdays

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestCountMondayToFriday(t *testing.T) {
	// 2026-03-02 is a Monday, 2026-03-06 a Friday
	assert.Equal(t, 5, Count(date(2026, 3, 2), date(2026, 3, 6)))
}

func TestCountSpansWeekend(t *testing.T) {
	// Friday through next Monday: only Friday and Monday count
	assert.Equal(t, 2, Count(date(2026, 3, 6), date(2026, 3, 9)))
	// two full weeks
	assert.Equal(t, 10, Count(date(2026, 3, 2), date(2026, 3, 13)))
}

func TestCountSingleDay(t *testing.T) {
	assert.Equal(t, 1, Count(date(2026, 3, 4), date(2026, 3, 4)))
	// Saturday alone counts zero
	assert.Equal(t, 0, Count(date(2026, 3, 7), date(2026, 3, 7)))
}

func TestCountInvertedRange(t *testing.T) {
	assert.Equal(t, 0, Count(date(2026, 3, 6), date(2026, 3, 2)))
}

func TestCountIgnoresTimeOfDay(t *testing.T) {
	from := time.Date(2026, 3, 2, 23, 59, 0, 0, time.UTC)
	to := time.Date(2026, 3, 6, 0, 1, 0, 0, time.UTC)
	assert.Equal(t, 5, Count(from, to))
}

func TestAddSkipsWeekends(t *testing.T) {
	// Friday + 1 working day lands on Monday
	assert.Equal(t, date(2026, 3, 9), Add(date(2026, 3, 6), 1))
	assert.Equal(t, date(2026, 3, 13), Add(date(2026, 3, 6), 5))
	assert.Equal(t, date(2026, 3, 6), Add(date(2026, 3, 6), 0))
}
