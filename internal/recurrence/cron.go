package recurrence

import (
	"strings"
	"time"

	"fjacquet/planned-spending/internal/dateutils"

	rcron "github.com/robfig/cron/v3"
)

// CronRule fires on every calendar day on which a standard five-field cron
// schedule has at least one activation.
type CronRule struct {
	Expr     string
	schedule rcron.Schedule
}

// NewCronRule parses a standard cron expression ("0 9 1 * *", "@monthly", ...).
func NewCronRule(expr string) (*CronRule, error) {
	expr = strings.TrimSpace(expr)
	if expr == "" {
		return nil, invalid(KindCron, "cron", "", "expression required")
	}
	schedule, err := rcron.ParseStandard(expr)
	if err != nil {
		return nil, invalid(KindCron, "cron", expr, err.Error())
	}
	// Days are midnight UTC throughout; evaluate the schedule in the same zone
	// unless the expression pins one with CRON_TZ/TZ.
	if spec, ok := schedule.(*rcron.SpecSchedule); ok && !strings.HasPrefix(expr, "CRON_TZ=") && !strings.HasPrefix(expr, "TZ=") {
		spec.Location = time.UTC
	}
	return &CronRule{Expr: expr, schedule: schedule}, nil
}

func buildCron(spec Spec, _ time.Time) (Rule, error) {
	return NewCronRule(spec.Cron)
}

// OccursOn implements Rule. The day is taken in the schedule's own zone, so a
// CRON_TZ expression fires on the calendar day of its local activation.
func (r *CronRule) OccursOn(day time.Time) (bool, error) {
	day = dateutils.DayOf(day)
	loc := time.UTC
	if spec, ok := r.schedule.(*rcron.SpecSchedule); ok && spec.Location != nil {
		loc = spec.Location
	}
	start := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, loc)
	// Next returns the first activation strictly after its argument.
	next := r.schedule.Next(start.Add(-time.Second))
	if next.IsZero() {
		return false, nil
	}
	return next.Before(start.AddDate(0, 0, 1)), nil
}
