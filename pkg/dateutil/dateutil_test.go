package dateutil

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestMonthStart(t *testing.T) {
	d := time.Date(2026, 3, 17, 14, 30, 0, 0, time.UTC)
	got := MonthStart(d)
	assert.Equal(t, time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC), got)
}

func TestNextMonth(t *testing.T) {
	assert.Equal(t,
		time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC),
		NextMonth(time.Date(2026, 3, 17, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t,
		time.Date(2027, 1, 1, 0, 0, 0, 0, time.UTC),
		NextMonth(time.Date(2026, 12, 31, 0, 0, 0, 0, time.UTC)))
}

func TestMonthsBetween(t *testing.T) {
	tests := []struct {
		name     string
		start    time.Time
		end      time.Time
		expected int
	}{
		{"same month", time.Date(2026, 1, 5, 0, 0, 0, 0, time.UTC), time.Date(2026, 1, 25, 0, 0, 0, 0, time.UTC), 0},
		{"one year", time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC), time.Date(2027, 1, 1, 0, 0, 0, 0, time.UTC), 12},
		{"across year boundary", time.Date(2026, 11, 15, 0, 0, 0, 0, time.UTC), time.Date(2027, 2, 1, 0, 0, 0, 0, time.UTC), 3},
		{"thirty years", time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC), time.Date(2056, 1, 1, 0, 0, 0, 0, time.UTC), 360},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, MonthsBetween(tt.start, tt.end))
		})
	}
}

func TestYearsBetween(t *testing.T) {
	from := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	assert.InDelta(t, 1.0, YearsBetween(from, from.AddDate(1, 0, 0)), 0.01)
	assert.InDelta(t, 0.5, YearsBetween(from, from.AddDate(0, 6, 0)), 0.01)
}

func TestIsLeapYear(t *testing.T) {
	assert.True(t, IsLeapYear(2024))
	assert.True(t, IsLeapYear(2000))
	assert.False(t, IsLeapYear(2026))
	assert.False(t, IsLeapYear(1900))
}

func TestClosesTaxYear(t *testing.T) {
	december := time.Date(2026, 12, 1, 0, 0, 0, 0, time.UTC)
	june := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)

	assert.True(t, ClosesTaxYear(december, time.January), "December closes a calendar tax year")
	assert.False(t, ClosesTaxYear(june, time.January))

	// A July boundary makes June the closing month.
	assert.True(t, ClosesTaxYear(june, time.July))
	assert.False(t, ClosesTaxYear(december, time.July))
}

func TestTaxYear(t *testing.T) {
	assert.Equal(t, 2026, TaxYear(time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC), time.January))
	assert.Equal(t, 2026, TaxYear(time.Date(2026, 12, 1, 0, 0, 0, 0, time.UTC), time.January))

	// July boundary: months before July belong to the prior label year.
	assert.Equal(t, 2025, TaxYear(time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC), time.July))
	assert.Equal(t, 2026, TaxYear(time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC), time.July))
}
