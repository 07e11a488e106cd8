package recurrence

import (
	"strconv"
	"strings"
	"time"
)

// Spec is the serializable description of a recurrence rule, as stored in
// reminder books and in the SQLite store.
type Spec struct {
	Kind string `yaml:"kind" json:"kind"`
	// Interval is the step in days, weeks, months or years; 0 means 1.
	Interval int      `yaml:"interval,omitempty" json:"interval,omitempty"`
	Weekdays []string `yaml:"weekdays,omitempty" json:"weekdays,omitempty"`
	// DayOfMonth is 1..31, or -1 for the last day of the month.
	DayOfMonth int `yaml:"day_of_month,omitempty" json:"day_of_month,omitempty"`
	// Week selects the nth weekday of the month (1..5, -1 for the last one).
	Week  int    `yaml:"week,omitempty" json:"week,omitempty"`
	Month int    `yaml:"month,omitempty" json:"month,omitempty"`
	Date  string `yaml:"date,omitempty" json:"date,omitempty"`
	Cron  string `yaml:"cron,omitempty" json:"cron,omitempty"`

	Start string   `yaml:"start,omitempty" json:"start,omitempty"`
	End   string   `yaml:"end,omitempty" json:"end,omitempty"`
	Skip  []string `yaml:"skip,omitempty" json:"skip,omitempty"`
}

// ParseSpec parses the compact rule notation used in CSV books:
//
//	daily[:N]
//	weekly[:N[:mon,thu]]
//	monthly[:N[:15|last|2-tue|last-fri]]
//	yearly[:MM-DD]
//	once:2025-03-01
//	cron:0 0 1 * *
//
// An empty N means 1. The result still has to go through Build.
func ParseSpec(s string) (Spec, error) {
	s = strings.TrimSpace(s)
	kind, rest, _ := strings.Cut(s, ":")
	kind = strings.ToLower(strings.TrimSpace(kind))
	spec := Spec{Kind: kind}

	switch kind {
	case KindCron:
		spec.Cron = strings.TrimSpace(rest)
		return spec, nil
	case KindOnce:
		spec.Date = strings.TrimSpace(rest)
		return spec, nil
	case KindYearly:
		if rest == "" {
			return spec, nil
		}
		md, err := time.Parse("01-02", strings.TrimSpace(rest))
		if err != nil {
			// Accept 02-29 which time.Parse rejects without a year.
			if strings.TrimSpace(rest) != "02-29" {
				return spec, invalid(kind, "date", rest, "expected MM-DD")
			}
			spec.Month, spec.DayOfMonth = 2, 29
			return spec, nil
		}
		spec.Month, spec.DayOfMonth = int(md.Month()), md.Day()
		return spec, nil
	}

	parts := []string{}
	if rest != "" {
		parts = strings.Split(rest, ":")
	}
	if len(parts) > 0 && strings.TrimSpace(parts[0]) != "" {
		n, err := strconv.Atoi(strings.TrimSpace(parts[0]))
		if err != nil {
			return spec, invalid(kind, "interval", parts[0], "not a number")
		}
		spec.Interval = n
	}

	switch kind {
	case KindDaily:
		if len(parts) > 1 {
			return spec, invalid(kind, "", s, "unexpected fields")
		}
	case KindWeekly:
		if len(parts) > 2 {
			return spec, invalid(kind, "", s, "unexpected fields")
		}
		if len(parts) == 2 {
			for _, wd := range strings.Split(parts[1], ",") {
				if wd = strings.TrimSpace(wd); wd != "" {
					spec.Weekdays = append(spec.Weekdays, wd)
				}
			}
		}
	case KindMonthly:
		if len(parts) > 2 {
			return spec, invalid(kind, "", s, "unexpected fields")
		}
		if len(parts) == 2 {
			if err := parseMonthlyDay(&spec, strings.ToLower(strings.TrimSpace(parts[1]))); err != nil {
				return spec, err
			}
		}
	default:
		if len(parts) > 0 {
			return spec, invalid(kind, "", s, "unknown rule kind")
		}
	}
	return spec, nil
}

func parseMonthlyDay(spec *Spec, v string) error {
	if v == "last" {
		spec.DayOfMonth = -1
		return nil
	}
	if day, err := strconv.Atoi(v); err == nil {
		spec.DayOfMonth = day
		return nil
	}
	if week, wd, ok := strings.Cut(v, "-"); ok {
		n := -1
		if week != "last" {
			var err error
			if n, err = strconv.Atoi(week); err != nil {
				return invalid(spec.Kind, "week", week, "expected 1..5 or last")
			}
		}
		spec.Week = n
		spec.Weekdays = []string{wd}
		return nil
	}
	return invalid(spec.Kind, "day_of_month", v, "expected a day, last, or N-weekday")
}

var weekdayNames = map[string]time.Weekday{
	"sun": time.Sunday, "sunday": time.Sunday,
	"mon": time.Monday, "monday": time.Monday,
	"tue": time.Tuesday, "tues": time.Tuesday, "tuesday": time.Tuesday,
	"wed": time.Wednesday, "wednesday": time.Wednesday,
	"thu": time.Thursday, "thur": time.Thursday, "thurs": time.Thursday, "thursday": time.Thursday,
	"fri": time.Friday, "friday": time.Friday,
	"sat": time.Saturday, "saturday": time.Saturday,
}

// ParseWeekday parses an English weekday name or abbreviation.
func ParseWeekday(s string) (time.Weekday, bool) {
	wd, ok := weekdayNames[strings.ToLower(strings.TrimSpace(s))]
	return wd, ok
}
