package recurrence

import (
	"time"

	"fjacquet/planned-spending/internal/dateutils"
)

func interval(spec Spec, start time.Time) (int, error) {
	n := spec.Interval
	if n == 0 {
		n = 1
	}
	if n < 0 {
		return 0, invalid(spec.Kind, "interval", spec.Interval, "must be positive")
	}
	if n > 1 && start.IsZero() {
		return 0, invalid(spec.Kind, "start", "", "required when interval is greater than 1")
	}
	return n, nil
}

func weekdaySet(spec Spec) (map[time.Weekday]bool, error) {
	set := make(map[time.Weekday]bool, len(spec.Weekdays))
	for _, name := range spec.Weekdays {
		wd, ok := ParseWeekday(name)
		if !ok {
			return nil, invalid(spec.Kind, "weekdays", name, "unknown weekday")
		}
		set[wd] = true
	}
	return set, nil
}

// mod is the non-negative remainder of a/b.
func mod(a, b int) int {
	return ((a % b) + b) % b
}

// DailyRule fires every Interval days counted from Start.
type DailyRule struct {
	Start    time.Time
	Interval int
}

func buildDaily(spec Spec, start time.Time) (Rule, error) {
	n, err := interval(spec, start)
	if err != nil {
		return nil, err
	}
	return DailyRule{Start: start, Interval: n}, nil
}

// OccursOn implements Rule.
func (r DailyRule) OccursOn(day time.Time) (bool, error) {
	if r.Interval <= 1 {
		return true, nil
	}
	return mod(dateutils.DaysBetween(r.Start, day), r.Interval) == 0, nil
}

// WeeklyRule fires on a set of weekdays every Interval weeks, weeks counted
// from the Monday-based week containing Start.
type WeeklyRule struct {
	Start    time.Time
	Interval int
	Weekdays map[time.Weekday]bool
}

func buildWeekly(spec Spec, start time.Time) (Rule, error) {
	n, err := interval(spec, start)
	if err != nil {
		return nil, err
	}
	days, err := weekdaySet(spec)
	if err != nil {
		return nil, err
	}
	if len(days) == 0 {
		if start.IsZero() {
			return nil, invalid(spec.Kind, "weekdays", "", "required when start is not set")
		}
		days[start.Weekday()] = true
	}
	return WeeklyRule{Start: start, Interval: n, Weekdays: days}, nil
}

// OccursOn implements Rule.
func (r WeeklyRule) OccursOn(day time.Time) (bool, error) {
	day = dateutils.DayOf(day)
	if !r.Weekdays[day.Weekday()] {
		return false, nil
	}
	if r.Interval <= 1 {
		return true, nil
	}
	weeks := dateutils.DaysBetween(dateutils.StartOfWeek(r.Start), dateutils.StartOfWeek(day)) / 7
	return mod(weeks, r.Interval) == 0, nil
}

// MonthlyRule fires once every Interval months, either on a day of the month
// (clamped to the month length, -1 meaning the last day) or on the nth weekday.
type MonthlyRule struct {
	Start      time.Time
	Interval   int
	DayOfMonth int
	Week       int
	Weekday    time.Weekday
}

func buildMonthly(spec Spec, start time.Time) (Rule, error) {
	n, err := interval(spec, start)
	if err != nil {
		return nil, err
	}
	rule := MonthlyRule{Start: start, Interval: n}

	if spec.Week != 0 {
		if spec.Week < -1 || spec.Week > 5 {
			return nil, invalid(spec.Kind, "week", spec.Week, "must be 1..5 or -1")
		}
		if len(spec.Weekdays) != 1 {
			return nil, invalid(spec.Kind, "weekdays", len(spec.Weekdays), "exactly one weekday required with week")
		}
		wd, ok := ParseWeekday(spec.Weekdays[0])
		if !ok {
			return nil, invalid(spec.Kind, "weekdays", spec.Weekdays[0], "unknown weekday")
		}
		rule.Week, rule.Weekday = spec.Week, wd
		return rule, nil
	}

	dom := spec.DayOfMonth
	if dom == 0 {
		if start.IsZero() {
			return nil, invalid(spec.Kind, "day_of_month", "", "required when start is not set")
		}
		dom = start.Day()
	}
	if dom < -1 || dom > 31 {
		return nil, invalid(spec.Kind, "day_of_month", dom, "must be 1..31 or -1")
	}
	rule.DayOfMonth = dom
	return rule, nil
}

// OccursOn implements Rule.
func (r MonthlyRule) OccursOn(day time.Time) (bool, error) {
	day = dateutils.DayOf(day)
	if r.Interval > 1 && mod(dateutils.MonthsBetween(r.Start, day), r.Interval) != 0 {
		return false, nil
	}
	last := dateutils.DaysIn(day.Year(), day.Month())

	if r.Week != 0 {
		if day.Weekday() != r.Weekday {
			return false, nil
		}
		if r.Week == -1 {
			return day.Day()+7 > last, nil
		}
		return (day.Day()-1)/7+1 == r.Week, nil
	}

	target := r.DayOfMonth
	if target == -1 || target > last {
		target = last
	}
	return day.Day() == target, nil
}

// YearlyRule fires once every Interval years on Month/Day; 29 February falls
// back to 28 February in non-leap years.
type YearlyRule struct {
	Start    time.Time
	Interval int
	Month    time.Month
	Day      int
}

func buildYearly(spec Spec, start time.Time) (Rule, error) {
	n, err := interval(spec, start)
	if err != nil {
		return nil, err
	}
	month, dom := spec.Month, spec.DayOfMonth
	if month == 0 || dom == 0 {
		if start.IsZero() {
			return nil, invalid(spec.Kind, "month", month, "month and day_of_month required when start is not set")
		}
		if month == 0 {
			month = int(start.Month())
		}
		if dom == 0 {
			dom = start.Day()
		}
	}
	if month < 1 || month > 12 {
		return nil, invalid(spec.Kind, "month", month, "must be 1..12")
	}
	// 2024 is a leap year, so 29 February is accepted here.
	if dom < 1 || dom > dateutils.DaysIn(2024, time.Month(month)) {
		return nil, invalid(spec.Kind, "day_of_month", dom, "does not exist in that month")
	}
	return YearlyRule{Start: start, Interval: n, Month: time.Month(month), Day: dom}, nil
}

// OccursOn implements Rule.
func (r YearlyRule) OccursOn(day time.Time) (bool, error) {
	day = dateutils.DayOf(day)
	if day.Month() != r.Month {
		return false, nil
	}
	if r.Interval > 1 && mod(day.Year()-r.Start.Year(), r.Interval) != 0 {
		return false, nil
	}
	return day.Equal(dateutils.ClampedDate(day.Year(), r.Month, r.Day)), nil
}

// OnceRule fires on a single date.
type OnceRule struct {
	Date time.Time
}

func buildOnce(spec Spec, start time.Time) (Rule, error) {
	raw := spec.Date
	if raw == "" {
		if start.IsZero() {
			return nil, invalid(spec.Kind, "date", "", "required")
		}
		return OnceRule{Date: start}, nil
	}
	d, err := dateutils.ParseDate(raw)
	if err != nil {
		return nil, invalid(spec.Kind, "date", raw, err.Error())
	}
	return OnceRule{Date: d}, nil
}

// OccursOn implements Rule.
func (r OnceRule) OccursOn(day time.Time) (bool, error) {
	return dateutils.DayOf(day).Equal(r.Date), nil
}
