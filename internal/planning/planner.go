package planning

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"fjacquet/planned-spending/internal/logging"
	"fjacquet/planned-spending/internal/models"

	"github.com/shopspring/decimal"
)

// ReminderSource supplies every reminder of the book being planned.
type ReminderSource interface {
	ListAllReminders(ctx context.Context) ([]models.ReminderRecord, error)
}

// ReportLine is one ranked group of the planned spending report.
type ReportLine struct {
	Key         string
	AnnualTotal decimal.Decimal
	Members     int
}

// Report is the result of a planning run.
type Report struct {
	AsOf       time.Time // first day of the projection window
	Until      time.Time // first day after the projection window
	Lines      []ReportLine
	GrandTotal decimal.Decimal
}

// Planner turns the reminders of a source into a planned spending report.
type Planner struct {
	source    ReminderSource
	projector *Projector
	logger    logging.Logger
}

// NewPlanner creates a planner reading from source and projecting with projector.
func NewPlanner(source ReminderSource, projector *Projector, logger logging.Logger) *Planner {
	return &Planner{source: source, projector: projector, logger: logger}
}

// PlannedSpending groups every spending reminder of the source, projects each group
// over the coming year and returns the groups ranked by annual total, largest first.
func (p *Planner) PlannedSpending(ctx context.Context) (*Report, error) {
	records, err := p.source.ListAllReminders(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list reminders: %w", err)
	}

	agg := NewGroupAggregator()
	for _, r := range records {
		if err := p.contribute(agg, r); err != nil {
			return nil, err
		}
	}

	if err := agg.Finalize(p.projector); err != nil {
		return nil, err
	}

	start, end := p.projector.Window()
	report := &Report{AsOf: start, Until: end, GrandTotal: decimal.Zero}
	for _, g := range agg.AllGroups() {
		total, _ := g.AnnualTotal()
		report.Lines = append(report.Lines, ReportLine{Key: g.Key, AnnualTotal: total, Members: len(g.Members)})
		report.GrandTotal = report.GrandTotal.Add(total)
	}
	sort.SliceStable(report.Lines, func(i, j int) bool {
		return report.Lines[i].AnnualTotal.GreaterThan(report.Lines[j].AnnualTotal)
	})

	p.logger.Info("Planned spending computed",
		logging.F(logging.FieldCount, len(report.Lines)),
		logging.F(logging.FieldAsOf, start.Format(time.DateOnly)),
		logging.F(logging.FieldAnnual, report.GrandTotal.StringFixed(2)))
	return report, nil
}

// contribute adds the spending of one reminder to agg. Each expense split with a
// positive amount becomes its own contribution; for a single expense split that is
// the whole per-occurrence spend.
func (p *Planner) contribute(agg *GroupAggregator, r models.ReminderRecord) error {
	total, err := ExtractSpend(r)
	if err != nil {
		return err
	}
	log := p.logger.WithField(logging.FieldReminderID, r.ID())
	if !total.IsPositive() {
		log.Debug("Skipping non-spending reminder",
			logging.F(logging.FieldDescription, r.Description()),
			logging.F(logging.FieldAmount, total.String()))
		return nil
	}

	expense := ExpenseSplits(r)
	for _, split := range expense {
		amount, err := SplitSpend(split)
		if err != nil {
			return err
		}
		sr, ok := NewSpendingReminder(r, amount)
		if !ok {
			continue
		}
		key := GroupKey(r.Description(), split.Description(), len(expense))
		if err := agg.AddContribution(key, sr); err != nil {
			return err
		}
		log.Debug("Added contribution",
			logging.F(logging.FieldGroup, key),
			logging.F(logging.FieldAmount, amount.StringFixed(2)))
	}
	return nil
}

// ReminderSpend is one spending reminder with its per-occurrence spend.
type ReminderSpend struct {
	ID          string
	Description string
	Spend       decimal.Decimal
}

// SpendingReminders lists every reminder with positive spend, ungrouped and sorted
// by description.
func (p *Planner) SpendingReminders(ctx context.Context) ([]ReminderSpend, error) {
	records, err := p.source.ListAllReminders(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list reminders: %w", err)
	}

	var out []ReminderSpend
	for _, r := range records {
		total, err := ExtractSpend(r)
		if err != nil {
			return nil, err
		}
		if !total.IsPositive() {
			continue
		}
		out = append(out, ReminderSpend{ID: r.ID(), Description: r.Description(), Spend: total})
	}
	sort.SliceStable(out, func(i, j int) bool {
		return strings.Compare(out[i].Description, out[j].Description) < 0
	})
	return out, nil
}
