package planning

import (
	"context"
	"errors"
	"time"

	"fjacquet/planned-spending/internal/models"
	"fjacquet/planned-spending/internal/recurrence"
)

var (
	usd       = models.NewCurrency("USD", 2)
	jpy       = models.NewCurrency("JPY", 0)
	groceries = &models.Account{Name: "Groceries", Type: models.AccountTypeExpense, Currency: usd}
	fitness   = &models.Account{Name: "Fitness", Type: models.AccountTypeExpense, Currency: usd}
	travel    = &models.Account{Name: "Travel", Type: models.AccountTypeExpense, Currency: jpy}
	checking  = &models.Account{Name: "Checking", Type: models.AccountTypeBank, Currency: usd}
	savings   = &models.Account{Name: "Savings", Type: models.AccountTypeAsset, Currency: usd}
	salary    = &models.Account{Name: "Salary", Type: models.AccountTypeIncome, Currency: usd}
	unscaled  = &models.Account{Name: "Mystery", Type: models.AccountTypeExpense}
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func everyDay() recurrence.Func {
	return func(time.Time) (bool, error) { return true, nil }
}

func never() recurrence.Func {
	return func(time.Time) (bool, error) { return false, nil }
}

func onWeekday(wd time.Weekday) recurrence.Func {
	return func(day time.Time) (bool, error) { return day.Weekday() == wd, nil }
}

func reminder(id, desc string, rule models.Occurrer, splits ...models.Split) *models.Reminder {
	return &models.Reminder{Key: id, Desc: desc, Rule: rule, Postings: splits}
}

func split(acc *models.Account, amount int64, memo string) models.Split {
	return models.Split{Account: acc, Amount: amount, Memo: memo}
}

type staticSource struct {
	records []models.ReminderRecord
	err     error
}

func (s staticSource) ListAllReminders(context.Context) ([]models.ReminderRecord, error) {
	return s.records, s.err
}

func sourceOf(rs ...*models.Reminder) staticSource {
	out := make([]models.ReminderRecord, len(rs))
	for i, r := range rs {
		out[i] = r
	}
	return staticSource{records: out}
}

var errBroken = errors.New("broken rule")

func recurrenceFunc(f func(time.Time) (bool, error)) recurrence.Func {
	return recurrence.Func(f)
}
