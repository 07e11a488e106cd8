package planning

import (
	"errors"
	"fmt"
)

// ErrNotSpending is returned when a contribution without positive spend is offered to the aggregator.
var ErrNotSpending = errors.New("contribution has no positive spend")

// GroupAggregator partitions spending reminders by group key. Groups are kept
// in first-seen key order so identical inputs always produce identical output.
type GroupAggregator struct {
	groups map[string]*ReminderGroup
	order  []string
}

// NewGroupAggregator creates an empty aggregator.
func NewGroupAggregator() *GroupAggregator {
	return &GroupAggregator{groups: make(map[string]*ReminderGroup)}
}

// AddContribution appends sr to the group for key, creating the group when needed.
func (a *GroupAggregator) AddContribution(key string, sr *SpendingReminder) error {
	if sr == nil || !sr.PerOccurrence.IsPositive() {
		return fmt.Errorf("group %q: %w", key, ErrNotSpending)
	}
	g, ok := a.groups[key]
	if !ok {
		g = NewReminderGroup(key)
		a.groups[key] = g
		a.order = append(a.order, key)
	}
	g.Add(sr)
	return nil
}

// Group returns the group for key, if any.
func (a *GroupAggregator) Group(key string) (*ReminderGroup, bool) {
	g, ok := a.groups[key]
	return g, ok
}

// AllGroups returns the groups in first-seen order.
func (a *GroupAggregator) AllGroups() []*ReminderGroup {
	out := make([]*ReminderGroup, 0, len(a.order))
	for _, key := range a.order {
		out = append(out, a.groups[key])
	}
	return out
}

// Len returns the number of groups.
func (a *GroupAggregator) Len() int {
	return len(a.order)
}

// Finalize computes every group's annual total over p's window.
func (a *GroupAggregator) Finalize(p *Projector) error {
	for _, key := range a.order {
		if _, err := a.groups[key].ComputeTotal(p); err != nil {
			return fmt.Errorf("group %q: %w", key, err)
		}
	}
	return nil
}
