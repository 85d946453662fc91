package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"barbershop-backend/models"
)

func TestResolveToday(t *testing.T) {
	r, ok := Selection{Period: PeriodToday}.Resolve(monday)
	require.True(t, ok)
	assert.True(t, r.From.Equal(r.To))
	assert.Equal(t, "2026-10-19", r.From.String())
	assert.Equal(t, 1, r.Days())
}

func TestResolveThisWeekSpansSevenDaysContainingNow(t *testing.T) {
	for _, now := range []time.Time{
		monday,
		time.Date(2026, time.October, 18, 23, 59, 0, 0, time.UTC), // Sunday
		time.Date(2026, time.October, 24, 8, 0, 0, 0, time.UTC),   // Saturday
	} {
		r, ok := Selection{Period: PeriodThisWeek}.Resolve(now)
		require.True(t, ok)
		assert.Equal(t, 7, r.Days(), now)
		assert.True(t, r.Contains(models.DateOf(now)), now)
		assert.Equal(t, time.Sunday, r.From.Weekday(), now)
	}
}

func TestResolveRelativePeriods(t *testing.T) {
	tests := []struct {
		period   Period
		from, to string
	}{
		{PeriodYesterday, "2026-10-18", "2026-10-18"},
		{PeriodThisWeek, "2026-10-18", "2026-10-24"},
		{PeriodLastWeek, "2026-10-11", "2026-10-17"},
		{PeriodThisMonth, "2026-10-01", "2026-10-31"},
		{PeriodLastMonth, "2026-09-01", "2026-09-30"},
		{PeriodThisYear, "2026-01-01", "2026-12-31"},
	}
	for _, tt := range tests {
		t.Run(string(tt.period), func(t *testing.T) {
			r, ok := Selection{Period: tt.period}.Resolve(monday)
			require.True(t, ok)
			assert.Equal(t, tt.from, r.From.String())
			assert.Equal(t, tt.to, r.To.String())
		})
	}
}

func TestLastMonthAcrossYearBoundary(t *testing.T) {
	r, ok := Selection{Period: PeriodLastMonth}.Resolve(time.Date(2026, time.January, 15, 0, 0, 0, 0, time.UTC))
	require.True(t, ok)
	assert.Equal(t, "2025-12-01", r.From.String())
	assert.Equal(t, "2025-12-31", r.To.String())
}

func TestResolveCustom(t *testing.T) {
	from := models.NewDate(2026, time.October, 5)
	to := models.NewDate(2026, time.October, 9)

	r, ok := Selection{Period: PeriodCustom, From: from, To: to}.Resolve(monday)
	require.True(t, ok)
	assert.Equal(t, DateRange{from, to}, r)

	r, ok = Selection{Period: PeriodCustom, From: to, To: from}.Resolve(monday)
	require.True(t, ok)
	assert.Equal(t, DateRange{from, to}, r, "reversed bounds are swapped")

	r, ok = Selection{Period: PeriodCustom, From: from}.Resolve(monday)
	require.True(t, ok)
	assert.Equal(t, DateRange{from, from}, r)

	_, ok = Selection{Period: PeriodCustom}.Resolve(monday)
	assert.False(t, ok)
}

func TestEmptyCustomRangeFiltersEverythingOut(t *testing.T) {
	bookings := []models.Booking{
		{ID: "a", Date: models.NewDate(2026, time.October, 19)},
		{ID: "b", Date: models.NewDate(2026, time.October, 20)},
	}
	r, ok := Selection{Period: PeriodCustom}.Resolve(monday)
	got := FilterByDate(bookings, r, ok, bookingDate)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestFilterByDateIsInclusive(t *testing.T) {
	bookings := []models.Booking{
		{ID: "before", Date: models.NewDate(2026, time.October, 17)},
		{ID: "first", Date: models.NewDate(2026, time.October, 18)},
		{ID: "last", Date: models.NewDate(2026, time.October, 24)},
		{ID: "after", Date: models.NewDate(2026, time.October, 25)},
	}
	r, ok := Selection{Period: PeriodThisWeek}.Resolve(monday)
	got := FilterByDate(bookings, r, ok, bookingDate)
	require.Len(t, got, 2)
	assert.Equal(t, "first", got[0].ID)
	assert.Equal(t, "last", got[1].ID)
}

func TestParsePeriod(t *testing.T) {
	p, err := ParsePeriod("this_month")
	require.NoError(t, err)
	assert.Equal(t, PeriodThisMonth, p)

	_, err = ParsePeriod("fortnight")
	assert.True(t, IsValidation(err))
}
