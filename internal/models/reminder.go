package models

import (
	"errors"
	"fmt"
	"time"
)

var (
	// ErrUnknownCurrencyScale is returned when a split's account has no resolvable currency decimal places.
	ErrUnknownCurrencyScale = errors.New("currency decimal places unknown")
	// ErrNoRecurrenceRule is returned by Reminder.OccursOn when the reminder carries no rule.
	ErrNoRecurrenceRule = errors.New("reminder has no recurrence rule")
)

// ReminderRecord is the read-only view of a scheduled transaction template
// that the planning core consumes.
type ReminderRecord interface {
	ID() string
	Description() string
	// OccursOn reports whether the reminder fires on the calendar date of day.
	OccursOn(day time.Time) (bool, error)
	Splits() []PostingSplit
}

// PostingSplit is one leg of a reminder's transaction.
type PostingSplit interface {
	IsExpenseAccount() bool
	// RawAmount is the amount in minor units of the account currency.
	RawAmount() int64
	CurrencyDecimalPlaces() (int32, error)
	Description() string
	AccountName() string
}

// Occurrer answers whether a recurrence fires on a date.
type Occurrer interface {
	OccursOn(day time.Time) (bool, error)
}

// Split is the concrete PostingSplit used by the bundled reminder sources.
type Split struct {
	Account *Account
	Amount  int64
	Memo    string
}

// IsExpenseAccount returns true when the split targets an expense account.
func (s Split) IsExpenseAccount() bool {
	return s.Account != nil && s.Account.Type == AccountTypeExpense
}

// RawAmount returns the split amount in minor units.
func (s Split) RawAmount() int64 {
	return s.Amount
}

// CurrencyDecimalPlaces returns the decimal places of the split account's currency.
func (s Split) CurrencyDecimalPlaces() (int32, error) {
	if s.Account == nil || s.Account.Currency == nil {
		return 0, ErrUnknownCurrencyScale
	}
	return s.Account.Currency.Scale()
}

// Description returns the split's own memo.
func (s Split) Description() string {
	return s.Memo
}

// AccountName returns the name of the target account, or "" if unset.
func (s Split) AccountName() string {
	if s.Account == nil {
		return ""
	}
	return s.Account.Name
}

// Reminder is the concrete ReminderRecord used by the bundled reminder sources.
type Reminder struct {
	Key      string
	Desc     string
	Rule     Occurrer
	Postings []Split
}

// ID returns the reminder identifier.
func (r *Reminder) ID() string {
	return r.Key
}

// Description returns the free-text label.
func (r *Reminder) Description() string {
	return r.Desc
}

// OccursOn delegates to the reminder's recurrence rule.
func (r *Reminder) OccursOn(day time.Time) (bool, error) {
	if r.Rule == nil {
		return false, fmt.Errorf("%s: %w", r.Key, ErrNoRecurrenceRule)
	}
	return r.Rule.OccursOn(day)
}

// Splits returns the reminder's posting splits in order.
func (r *Reminder) Splits() []PostingSplit {
	out := make([]PostingSplit, len(r.Postings))
	for i := range r.Postings {
		out[i] = r.Postings[i]
	}
	return out
}
