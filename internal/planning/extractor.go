// Package planning projects spending reminders over the coming year and groups
// duplicate reminders into one ranked report.
package planning

import (
	"fjacquet/planned-spending/internal/currencyutils"
	"fjacquet/planned-spending/internal/models"
	"fjacquet/planned-spending/internal/planerror"

	"github.com/shopspring/decimal"
)

// SplitSpend returns the spending carried by one split: its amount scaled by its
// own currency's decimal places for expense accounts, zero for any other account.
func SplitSpend(split models.PostingSplit) (decimal.Decimal, error) {
	if !split.IsExpenseAccount() {
		return decimal.Zero, nil
	}
	places, err := split.CurrencyDecimalPlaces()
	if err != nil {
		return decimal.Zero, err
	}
	return currencyutils.ScaleMinorUnits(split.RawAmount(), places), nil
}

// ExtractSpend sums the per-occurrence spending of a reminder over its expense splits.
// The result may be zero or negative for refund-like reminders.
func ExtractSpend(r models.ReminderRecord) (decimal.Decimal, error) {
	total := decimal.Zero
	for _, split := range r.Splits() {
		amount, err := SplitSpend(split)
		if err != nil {
			return decimal.Zero, &planerror.ScaleError{
				ReminderID:  r.ID(),
				Description: r.Description(),
				Account:     split.AccountName(),
				Err:         err,
			}
		}
		total = total.Add(amount)
	}
	return total, nil
}

// IsSpending reports whether a reminder's extracted spend is strictly positive.
func IsSpending(r models.ReminderRecord) (bool, error) {
	total, err := ExtractSpend(r)
	if err != nil {
		return false, err
	}
	return total.IsPositive(), nil
}

// ExpenseSplits returns the splits of r that target expense accounts, in order.
func ExpenseSplits(r models.ReminderRecord) []models.PostingSplit {
	var out []models.PostingSplit
	for _, split := range r.Splits() {
		if split.IsExpenseAccount() {
			out = append(out, split)
		}
	}
	return out
}
