// Package planerror defines the typed errors surfaced by a planning run.
package planerror

import "fmt"

// ScaleError reports a posting split whose currency decimal places could not be resolved.
// No trustworthy monetary figure can be produced for the reminder, so the run fails.
type ScaleError struct {
	ReminderID  string
	Description string
	Account     string
	Err         error
}

func (e *ScaleError) Error() string {
	return fmt.Sprintf("reminder %s (%q): cannot resolve currency scale of account %q: %v",
		e.ReminderID, e.Description, e.Account, e.Err)
}

func (e *ScaleError) Unwrap() error {
	return e.Err
}

// RecurrenceError reports an occurrence oracle that failed for a date.
type RecurrenceError struct {
	ReminderID string
	Date       string
	Err        error
}

func (e *RecurrenceError) Error() string {
	return fmt.Sprintf("reminder %s: recurrence undefined on %s: %v", e.ReminderID, e.Date, e.Err)
}

func (e *RecurrenceError) Unwrap() error {
	return e.Err
}

// RuleError reports a malformed recurrence rule.
type RuleError struct {
	Kind   string
	Field  string
	Value  string
	Reason string
}

func (e *RuleError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("invalid %s rule: %s", e.Kind, e.Reason)
	}
	return fmt.Sprintf("invalid %s rule: %s=%q: %s", e.Kind, e.Field, e.Value, e.Reason)
}

// SourceError represents a reminder source that could not be loaded.
type SourceError struct {
	Source string
	Path   string
	Reason string
	Err    error
}

func (e *SourceError) Error() string {
	msg := fmt.Sprintf("%s source '%s': %s", e.Source, e.Path, e.Reason)
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *SourceError) Unwrap() error {
	return e.Err
}
