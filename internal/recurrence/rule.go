// Package recurrence implements the occurrence oracles behind reminders.
//
// A Rule answers one question: does the reminder fire on a given calendar date?
// Each rule kind (daily, weekly, monthly, yearly, once, cron) is a strategy built from
// a serializable Spec through a registry, so new kinds can be added with Register.
package recurrence

import (
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"fjacquet/planned-spending/internal/dateutils"
	"fjacquet/planned-spending/internal/planerror"
)

// Rule is an occurrence oracle: a pure function of a calendar date.
type Rule interface {
	OccursOn(day time.Time) (bool, error)
}

// Builder constructs a rule of one kind from its Spec. Bounds and skipped dates
// are applied by Build and need not be handled by builders.
type Builder func(spec Spec, start time.Time) (Rule, error)

// Rule kinds shipped with the package.
const (
	KindDaily   = "daily"
	KindWeekly  = "weekly"
	KindMonthly = "monthly"
	KindYearly  = "yearly"
	KindOnce    = "once"
	KindCron    = "cron"
)

var (
	buildersMu sync.RWMutex
	builders   = map[string]Builder{
		KindDaily:   buildDaily,
		KindWeekly:  buildWeekly,
		KindMonthly: buildMonthly,
		KindYearly:  buildYearly,
		KindOnce:    buildOnce,
		KindCron:    buildCron,
	}
)

// Register adds or replaces the builder for a rule kind.
func Register(kind string, b Builder) {
	buildersMu.Lock()
	defer buildersMu.Unlock()
	builders[strings.ToLower(kind)] = b
}

// Kinds returns the registered rule kinds, sorted.
func Kinds() []string {
	buildersMu.RLock()
	defer buildersMu.RUnlock()
	kinds := make([]string, 0, len(builders))
	for k := range builders {
		kinds = append(kinds, k)
	}
	sort.Strings(kinds)
	return kinds
}

// Build validates spec and returns its rule. Malformed specs yield *planerror.RuleError.
func (s Spec) Build() (Rule, error) {
	kind := strings.ToLower(strings.TrimSpace(s.Kind))
	buildersMu.RLock()
	b, ok := builders[kind]
	buildersMu.RUnlock()
	if !ok {
		return nil, &planerror.RuleError{Kind: s.Kind,
			Reason: "unknown rule kind, expected one of " + strings.Join(Kinds(), ", ")}
	}
	s.Kind = kind

	start, err := s.parseDate("start", s.Start)
	if err != nil {
		return nil, err
	}
	end, err := s.parseDate("end", s.End)
	if err != nil {
		return nil, err
	}
	if !start.IsZero() && !end.IsZero() && end.Before(start) {
		return nil, &planerror.RuleError{Kind: kind, Field: "end", Value: s.End, Reason: "before start"}
	}

	skip := make(map[time.Time]struct{}, len(s.Skip))
	for _, raw := range s.Skip {
		d, err := s.parseDate("skip", raw)
		if err != nil {
			return nil, err
		}
		skip[d] = struct{}{}
	}

	inner, err := b(s, start)
	if err != nil {
		return nil, err
	}
	if start.IsZero() && end.IsZero() && len(skip) == 0 {
		return inner, nil
	}
	return &bounded{inner: inner, start: start, end: end, skip: skip}, nil
}

func (s Spec) parseDate(field, value string) (time.Time, error) {
	d, err := dateutils.ParseOptionalDate(value)
	if err != nil {
		return time.Time{}, &planerror.RuleError{Kind: s.Kind, Field: field, Value: value, Reason: err.Error()}
	}
	return d, nil
}

// bounded restricts a rule to [start, end] and drops skipped dates.
type bounded struct {
	inner Rule
	start time.Time
	end   time.Time
	skip  map[time.Time]struct{}
}

func (b *bounded) OccursOn(day time.Time) (bool, error) {
	day = dateutils.DayOf(day)
	if !b.start.IsZero() && dateutils.CompareDates(day, b.start) < 0 {
		return false, nil
	}
	if !b.end.IsZero() && dateutils.CompareDates(day, b.end) > 0 {
		return false, nil
	}
	if _, skipped := b.skip[day]; skipped {
		return false, nil
	}
	return b.inner.OccursOn(day)
}

// Func adapts an ordinary function to Rule.
type Func func(day time.Time) (bool, error)

// OccursOn calls f(day).
func (f Func) OccursOn(day time.Time) (bool, error) {
	return f(day)
}

func invalid(kind, field string, value interface{}, reason string) error {
	return &planerror.RuleError{Kind: kind, Field: field, Value: fmt.Sprint(value), Reason: reason}
}
