package planning

import (
	"time"

	"fjacquet/planned-spending/internal/dateutils"
	"fjacquet/planned-spending/internal/models"
	"fjacquet/planned-spending/internal/planerror"

	"github.com/shopspring/decimal"
)

// SpendingReminder is a reminder with a strictly positive per-occurrence spend.
// It is immutable apart from its memoized annual total.
type SpendingReminder struct {
	Source        models.ReminderRecord
	PerOccurrence decimal.Decimal

	projectedBy *Projector
	annualTotal decimal.Decimal
}

// NewSpendingReminder wraps src when perOccurrence is strictly positive.
// The boolean result is false, and the reminder nil, otherwise.
func NewSpendingReminder(src models.ReminderRecord, perOccurrence decimal.Decimal) (*SpendingReminder, bool) {
	if src == nil || !perOccurrence.IsPositive() {
		return nil, false
	}
	return &SpendingReminder{Source: src, PerOccurrence: perOccurrence}, true
}

// Description returns the source reminder's description.
func (sr *SpendingReminder) Description() string {
	return sr.Source.Description()
}

// AnnualTotal projects the per-occurrence spend over p's window. The result is
// memoized for p; asking with a different projector recomputes it.
func (sr *SpendingReminder) AnnualTotal(p *Projector) (decimal.Decimal, error) {
	if sr.projectedBy == p {
		return sr.annualTotal, nil
	}
	total, err := p.ProjectAnnual(sr.PerOccurrence, sr.oracle())
	if err != nil {
		return decimal.Zero, err
	}
	sr.projectedBy = p
	sr.annualTotal = total
	return total, nil
}

func (sr *SpendingReminder) oracle() OccurrenceFunc {
	return func(day time.Time) (bool, error) {
		fires, err := sr.Source.OccursOn(day)
		if err != nil {
			return false, &planerror.RecurrenceError{
				ReminderID: sr.Source.ID(),
				Date:       dateutils.ToISODate(day),
				Err:        err,
			}
		}
		return fires, nil
	}
}
