package planning

import (
	"time"

	"fjacquet/planned-spending/internal/dateutils"

	"github.com/shopspring/decimal"
)

// OccurrenceFunc is an occurrence oracle: it reports whether something fires on a calendar date.
type OccurrenceFunc func(day time.Time) (bool, error)

// Projector projects per-occurrence amounts over the year starting at a fixed date.
// The start date is fixed for the Projector's lifetime, which is what makes
// memoizing projected totals safe.
type Projector struct {
	start time.Time
	end   time.Time
}

// NewProjector returns a projector whose window runs from today (inclusive) to the
// same month/day one year later (exclusive). When that anniversary does not exist
// (29 February before a non-leap year) the window ends on the last day of the month.
func NewProjector(today time.Time) *Projector {
	start := dateutils.DayOf(today)
	return &Projector{start: start, end: dateutils.Anniversary(start)}
}

// Window returns the projection window as [start, end).
func (p *Projector) Window() (start, end time.Time) {
	return p.start, p.end
}

// Days returns the number of daily checks in the window.
func (p *Projector) Days() int {
	return dateutils.DaysBetween(p.start, p.end)
}

// CountOccurrences walks every day of the window once and counts the days oracle fires.
// The walk makes no assumption about the shape of the recurrence.
func (p *Projector) CountOccurrences(oracle OccurrenceFunc) (int, error) {
	count := 0
	err := dateutils.EachDay(p.start, p.end, func(day time.Time) error {
		fires, err := oracle(day)
		if err != nil {
			return err
		}
		if fires {
			count++
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return count, nil
}

// ProjectAnnual returns amount summed over every day of the window on which oracle fires.
// It is exactly zero when the oracle never fires.
func (p *Projector) ProjectAnnual(amount decimal.Decimal, oracle OccurrenceFunc) (decimal.Decimal, error) {
	total := decimal.Zero
	err := dateutils.EachDay(p.start, p.end, func(day time.Time) error {
		fires, err := oracle(day)
		if err != nil {
			return err
		}
		if fires {
			total = total.Add(amount)
		}
		return nil
	})
	if err != nil {
		return decimal.Zero, err
	}
	return total, nil
}
