// Package dateutils provides calendar-date operations used by recurrence rules and projections.
// All helpers work on calendar dates: times are normalized to midnight UTC of their own
// year/month/day so that DST and zone offsets never shift a day.
package dateutils

import (
	"fmt"
	"strings"
	"time"
)

// Common date layouts accepted in reminder books and on the command line.
const (
	DateLayoutISO      = "2006-01-02"
	DateLayoutEuropean = "02.01.2006"
	DateLayoutUS       = "01/02/2006"
)

// CommonFormats is the list of layouts ParseDate tries, in order.
var CommonFormats = []string{
	DateLayoutISO,
	DateLayoutEuropean,
	DateLayoutUS,
	"2006/01/02",
	"Jan 2, 2006",
	"January 2, 2006",
}

// DayOf returns the calendar date of t as midnight UTC.
func DayOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// Today returns the current calendar date in the local zone, as midnight UTC.
func Today() time.Time {
	return DayOf(time.Now())
}

// ParseDate parses a calendar date using CommonFormats.
func ParseDate(dateStr string) (time.Time, error) {
	dateStr = strings.TrimSpace(dateStr)
	if dateStr == "" {
		return time.Time{}, fmt.Errorf("empty date")
	}
	for _, format := range CommonFormats {
		if t, err := time.Parse(format, dateStr); err == nil {
			return DayOf(t), nil
		}
	}
	return time.Time{}, fmt.Errorf("unable to parse date: %s", dateStr)
}

// ParseOptionalDate is ParseDate that maps "" to the zero time.
func ParseOptionalDate(dateStr string) (time.Time, error) {
	if strings.TrimSpace(dateStr) == "" {
		return time.Time{}, nil
	}
	return ParseDate(dateStr)
}

// ToISODate formats a date as YYYY-MM-DD.
func ToISODate(date time.Time) string {
	return date.Format(DateLayoutISO)
}

// DaysIn returns the number of days in the given month.
func DaysIn(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// ClampedDate builds year/month/day, clamping day to the last day of the month
// instead of overflowing into the next one as time.Date does.
func ClampedDate(year int, month time.Month, day int) time.Time {
	if last := DaysIn(year, month); day > last {
		day = last
	}
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

// AddYearsClamped moves date by n years keeping month and day; a day that does not
// exist in the target year (29 February) falls back to the last day of that month.
func AddYearsClamped(date time.Time, n int) time.Time {
	return ClampedDate(date.Year()+n, date.Month(), date.Day())
}

// Anniversary returns the same month/day one year after date, see AddYearsClamped.
func Anniversary(date time.Time) time.Time {
	return AddYearsClamped(DayOf(date), 1)
}

// MonthsBetween returns the number of whole calendar months from a's month to b's month.
func MonthsBetween(a, b time.Time) int {
	return (b.Year()-a.Year())*12 + int(b.Month()) - int(a.Month())
}

// DaysBetween returns the number of calendar days from a to b.
func DaysBetween(a, b time.Time) int {
	return int(DayOf(b).Sub(DayOf(a)).Hours() / 24)
}

// StartOfWeek returns the Monday of the ISO week containing date.
func StartOfWeek(date time.Time) time.Time {
	date = DayOf(date)
	offset := (int(date.Weekday()) + 6) % 7
	return date.AddDate(0, 0, -offset)
}

// CompareDates compares the calendar dates of date1 and date2 and returns
// -1, 0 or 1.
func CompareDates(date1, date2 time.Time) int {
	date1 = DayOf(date1)
	date2 = DayOf(date2)

	switch {
	case date1.Before(date2):
		return -1
	case date1.After(date2):
		return 1
	default:
		return 0
	}
}

// EachDay calls fn for every calendar day in [start, end). It stops at the first error.
func EachDay(start, end time.Time, fn func(day time.Time) error) error {
	for day := DayOf(start); day.Before(DayOf(end)); day = day.AddDate(0, 0, 1) {
		if err := fn(day); err != nil {
			return err
		}
	}
	return nil
}
