package dateutil

import (
	"fmt"
	"strings"
	"time"
)

// ISODate is the canonical date layout used for registry lookups
const ISODate = "2006-01-02"

// StartOfDay returns the start of the day (00:00:00) for the given date
func StartOfDay(date time.Time) time.Time {
	return time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
}

// Date returns midnight UTC for the given calendar day
func Date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

// Truncate drops the clock and location, keeping the calendar day
func Truncate(date time.Time) time.Time {
	return Date(date.Year(), date.Month(), date.Day())
}

// IsSameDay returns true if two dates are on the same day
func IsSameDay(date1, date2 time.Time) bool {
	return date1.Year() == date2.Year() &&
		date1.Month() == date2.Month() &&
		date1.Day() == date2.Day()
}

// IsSameMonth returns true if two dates fall in the same month of the same year
func IsSameMonth(date1, date2 time.Time) bool {
	return date1.Year() == date2.Year() && date1.Month() == date2.Month()
}

// Days returns every calendar day in [from, to), ascending.
// An empty slice is returned when from is not before to.
func Days(from, to time.Time) []time.Time {
	start := Truncate(from)
	end := Truncate(to)

	days := []time.Time{}
	for d := start; d.Before(end); d = d.AddDate(0, 0, 1) {
		days = append(days, d)
	}
	return days
}

// FormatDate formats date as YYYY-MM-DD
func FormatDate(date time.Time) string {
	return date.Format(ISODate)
}

// ParseDate parses date string in various formats
func ParseDate(dateStr string) (time.Time, error) {
	formats := []string{
		ISODate,
		"02.01.2006",
		"2006/01/02",
		"2006-01-02T15:04:05",
		"2006-01-02T15:04:05Z",
		"2006-01-02T15:04:05-0700",
	}

	dateStr = strings.TrimSpace(dateStr)
	for _, format := range formats {
		if t, err := time.Parse(format, dateStr); err == nil {
			return Truncate(t), nil
		}
	}

	return time.Time{}, fmt.Errorf("unrecognized date %q, expected YYYY-MM-DD", dateStr)
}
