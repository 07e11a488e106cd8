package planning

import (
	"fjacquet/planned-spending/internal/currencyutils"
	"fjacquet/planned-spending/internal/models"

	"github.com/shopspring/decimal"
)

// ReminderGroup collects the spending reminders reported under one key.
type ReminderGroup struct {
	Key     string
	Members []*SpendingReminder

	annualTotal *decimal.Decimal
}

// NewReminderGroup returns an empty group for key.
func NewReminderGroup(key string) *ReminderGroup {
	return &ReminderGroup{Key: key}
}

// Add appends a member and drops any cached total.
func (g *ReminderGroup) Add(sr *SpendingReminder) {
	g.Members = append(g.Members, sr)
	g.annualTotal = nil
}

// ComputeTotal recomputes the group total from its members over p's window and caches it.
func (g *ReminderGroup) ComputeTotal(p *Projector) (decimal.Decimal, error) {
	totals := make([]decimal.Decimal, 0, len(g.Members))
	for _, m := range g.Members {
		t, err := m.AnnualTotal(p)
		if err != nil {
			return decimal.Zero, err
		}
		totals = append(totals, t)
	}
	total := currencyutils.Sum(totals...)
	g.annualTotal = &total
	return total, nil
}

// AnnualTotal returns the cached group total. ok is false when the group changed
// since the last ComputeTotal, or was never computed.
func (g *ReminderGroup) AnnualTotal() (total decimal.Decimal, ok bool) {
	if g.annualTotal == nil {
		return decimal.Zero, false
	}
	return *g.annualTotal, true
}

// Sources returns the distinct source reminders of the group, by ID, in member order.
func (g *ReminderGroup) Sources() []models.ReminderRecord {
	seen := make(map[string]bool, len(g.Members))
	var out []models.ReminderRecord
	for _, m := range g.Members {
		id := m.Source.ID()
		if seen[id] {
			continue
		}
		seen[id] = true
		out = append(out, m.Source)
	}
	return out
}
