package dateutil

import (
	"time"
)

// MonthStart returns midnight UTC on the first day of the month containing date.
func MonthStart(date time.Time) time.Time {
	return time.Date(date.Year(), date.Month(), 1, 0, 0, 0, 0, time.UTC)
}

// NextMonth returns the first day of the month after date.
func NextMonth(date time.Time) time.Time {
	return MonthStart(date).AddDate(0, 1, 0)
}

// AddMonths adds a specified number of months to a date.
func AddMonths(date time.Time, months int) time.Time {
	return date.AddDate(0, months, 0)
}

// MonthsBetween counts the whole calendar months from start to end.
// Both dates are normalized to month boundaries first.
func MonthsBetween(start, end time.Time) int {
	s := MonthStart(start)
	e := MonthStart(end)
	return (e.Year()-s.Year())*12 + int(e.Month()) - int(s.Month())
}

// YearsBetween calculates the fractional number of years from one date to another.
func YearsBetween(fromDate, toDate time.Time) float64 {
	duration := toDate.Sub(fromDate)
	return duration.Hours() / 24 / 365.25
}

// IsLeapYear checks if a year is a leap year.
func IsLeapYear(year int) bool {
	return year%4 == 0 && (year%100 != 0 || year%400 == 0)
}

// DaysInYear returns the number of days in a given year.
func DaysInYear(year int) int {
	if IsLeapYear(year) {
		return 366
	}
	return 365
}

// ClosesTaxYear reports whether the month starting at monthStart is the last
// month of a tax year beginning in boundaryMonth. With the default
// calendar-year boundary (January) this is true for December.
func ClosesTaxYear(monthStart time.Time, boundaryMonth time.Month) bool {
	last := boundaryMonth - 1
	if last < time.January {
		last = time.December
	}
	return monthStart.Month() == last
}

// TaxYear returns the label year of the tax year containing date for a tax
// year beginning in boundaryMonth. A calendar-year boundary labels by the
// calendar year; a July boundary labels July 2025 through June 2026 as 2025.
func TaxYear(date time.Time, boundaryMonth time.Month) int {
	if date.Month() >= boundaryMonth {
		return date.Year()
	}
	return date.Year() - 1
}

// EndOfYear returns the last instant of the year for a given date.
func EndOfYear(date time.Time) time.Time {
	return time.Date(date.Year(), 12, 31, 23, 59, 59, 999999999, date.Location())
}

// BeginningOfYear returns the first day of the year for a given date.
func BeginningOfYear(date time.Time) time.Time {
	return time.Date(date.Year(), 1, 1, 0, 0, 0, 0, date.Location())
}
