package transactions

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestMonthToDate(t *testing.T) {
	w := MonthToDate(time.Date(2025, 3, 17, 15, 4, 5, 0, time.UTC))
	assert.Equal(t, time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC), w.From)
	assert.Equal(t, time.Date(2025, 3, 18, 0, 0, 0, 0, time.UTC), w.To)

	assert.True(t, w.Contains(time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)))
	assert.True(t, w.Contains(time.Date(2025, 3, 17, 0, 0, 0, 0, time.UTC)))
	assert.False(t, w.Contains(time.Date(2025, 3, 18, 0, 0, 0, 0, time.UTC)))
	assert.False(t, w.Contains(time.Date(2025, 2, 28, 0, 0, 0, 0, time.UTC)))
}

func TestMonthToDateUsesLocalCalendarDayAsUTCDates(t *testing.T) {
	toronto := time.FixedZone("EDT", -4*3600)
	w := MonthToDate(time.Date(2026, 10, 18, 10, 0, 0, 0, toronto))
	assert.Equal(t, time.Date(2026, 10, 1, 0, 0, 0, 0, time.UTC), w.From)
	assert.Equal(t, time.Date(2026, 10, 19, 0, 0, 0, 0, time.UTC), w.To)
	assert.True(t, w.Contains(time.Date(2026, 10, 1, 0, 0, 0, 0, time.UTC)))
	assert.True(t, w.Contains(time.Date(2026, 10, 18, 0, 0, 0, 0, time.UTC)))

	// Late evening west of UTC still belongs to the local calendar day.
	w = MonthToDate(time.Date(2026, 10, 31, 22, 0, 0, 0, toronto))
	assert.Equal(t, time.Date(2026, 10, 1, 0, 0, 0, 0, time.UTC), w.From)
	assert.Equal(t, time.Date(2026, 11, 1, 0, 0, 0, 0, time.UTC), w.To)
}

func TestMonthToDateEndOfMonthRollsOver(t *testing.T) {
	w := MonthToDate(time.Date(2024, 12, 31, 8, 0, 0, 0, time.UTC))
	assert.Equal(t, time.Date(2024, 12, 1, 0, 0, 0, 0, time.UTC), w.From)
	assert.Equal(t, time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC), w.To)
}

func TestWindowFilter(t *testing.T) {
	w := MonthToDate(time.Date(2025, 1, 10, 0, 0, 0, 0, time.UTC))
	in := []Transaction{
		{Description: "in", Date: time.Date(2025, 1, 5, 0, 0, 0, 0, time.UTC)},
		{Description: "future", Date: time.Date(2025, 1, 11, 0, 0, 0, 0, time.UTC)},
		{Description: "last month", Date: time.Date(2024, 12, 31, 0, 0, 0, 0, time.UTC)},
	}
	out := w.Filter(in)
	if assert.Len(t, out, 1) {
		assert.Equal(t, "in", out[0].Description)
	}
}
