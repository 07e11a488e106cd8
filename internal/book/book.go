// Package book defines the serializable reminder book shared by the YAML, CSV
// and SQLite sources, and resolves it into the records the planner consumes.
package book

import (
	"context"
	"fmt"
	"strings"

	"fjacquet/planned-spending/internal/models"
	"fjacquet/planned-spending/internal/recurrence"
)

// Book is a set of currencies, accounts and reminders.
type Book struct {
	Currencies []Currency `yaml:"currencies" json:"currencies"`
	Accounts   []Account  `yaml:"accounts" json:"accounts"`
	Reminders  []Reminder `yaml:"reminders" json:"reminders"`
}

// Currency declares a currency and its number of decimal places.
type Currency struct {
	Code          string `yaml:"code" json:"code"`
	DecimalPlaces *int32 `yaml:"decimal_places" json:"decimal_places"`
}

// Account declares a ledger account.
type Account struct {
	Name     string `yaml:"name" json:"name"`
	Type     string `yaml:"type" json:"type"`
	Currency string `yaml:"currency" json:"currency"`
}

// Reminder declares a scheduled transaction.
type Reminder struct {
	ID          string          `yaml:"id" json:"id"`
	Description string          `yaml:"description" json:"description"`
	Rule        recurrence.Spec `yaml:"rule" json:"rule"`
	Splits      []Split         `yaml:"splits" json:"splits"`
}

// Split is one posting of a reminder, its amount in minor units of the account currency.
type Split struct {
	Account     string `yaml:"account" json:"account"`
	Amount      int64  `yaml:"amount" json:"amount"`
	Description string `yaml:"description,omitempty" json:"description,omitempty"`
}

// Validate checks the structure of the book: unique identifiers, known account
// types and split accounts that exist. Recurrence rules are checked by Records.
func (b *Book) Validate() error {
	currencies := make(map[string]bool, len(b.Currencies))
	for i, c := range b.Currencies {
		code := strings.TrimSpace(c.Code)
		if code == "" {
			return fmt.Errorf("currency #%d: empty code", i+1)
		}
		if currencies[code] {
			return fmt.Errorf("currency %s: declared twice", code)
		}
		currencies[code] = true
	}

	accounts := make(map[string]bool, len(b.Accounts))
	for i, a := range b.Accounts {
		if strings.TrimSpace(a.Name) == "" {
			return fmt.Errorf("account #%d: empty name", i+1)
		}
		if accounts[a.Name] {
			return fmt.Errorf("account %s: declared twice", a.Name)
		}
		if _, err := models.ParseAccountType(a.Type); err != nil {
			return fmt.Errorf("account %s: %w", a.Name, err)
		}
		accounts[a.Name] = true
	}

	ids := make(map[string]bool, len(b.Reminders))
	for i, r := range b.Reminders {
		if strings.TrimSpace(r.ID) == "" {
			return fmt.Errorf("reminder #%d (%q): empty id", i+1, r.Description)
		}
		if ids[r.ID] {
			return fmt.Errorf("reminder %s: declared twice", r.ID)
		}
		ids[r.ID] = true
		for _, s := range r.Splits {
			if !accounts[s.Account] {
				return fmt.Errorf("reminder %s: unknown account %q", r.ID, s.Account)
			}
		}
	}
	return nil
}

// Records validates the book and resolves it into reminder records. An account whose
// currency is not declared keeps an unresolved scale; the planner reports it when
// such an account receives an expense split.
func (b *Book) Records() ([]models.ReminderRecord, error) {
	if err := b.Validate(); err != nil {
		return nil, err
	}

	currencies := make(map[string]*models.Currency, len(b.Currencies))
	for _, c := range b.Currencies {
		cur := &models.Currency{Code: c.Code}
		if c.DecimalPlaces != nil {
			places := *c.DecimalPlaces
			cur.DecimalPlaces = &places
		}
		currencies[c.Code] = cur
	}

	accounts := make(map[string]*models.Account, len(b.Accounts))
	for _, a := range b.Accounts {
		t, _ := models.ParseAccountType(a.Type)
		accounts[a.Name] = &models.Account{Name: a.Name, Type: t, Currency: currencies[a.Currency]}
	}

	records := make([]models.ReminderRecord, 0, len(b.Reminders))
	for _, r := range b.Reminders {
		rule, err := r.Rule.Build()
		if err != nil {
			return nil, fmt.Errorf("reminder %s: %w", r.ID, err)
		}
		rem := &models.Reminder{Key: r.ID, Desc: r.Description, Rule: rule}
		for _, s := range r.Splits {
			rem.Postings = append(rem.Postings, models.Split{Account: accounts[s.Account], Amount: s.Amount, Memo: s.Description})
		}
		records = append(records, rem)
	}
	return records, nil
}

// ListAllReminders returns the resolved records, so a loaded book can serve as a reminder source.
func (b *Book) ListAllReminders(_ context.Context) ([]models.ReminderRecord, error) {
	return b.Records()
}

// Places returns a pointer to n, for literal currency declarations.
func Places(n int32) *int32 {
	return &n
}
