// Package csvsource loads a reminder book from a flat CSV file with one row per split.
package csvsource

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"fjacquet/planned-spending/internal/book"
	"fjacquet/planned-spending/internal/common"
	"fjacquet/planned-spending/internal/currencyutils"
	"fjacquet/planned-spending/internal/fileutils"
	"fjacquet/planned-spending/internal/logging"
	"fjacquet/planned-spending/internal/planerror"
	"fjacquet/planned-spending/internal/recurrence"
)

// SourceName identifies this source in errors and configuration.
const SourceName = "csv"

// Row is one split of a reminder. Rows sharing a reminder_id form one reminder;
// the reminder and rule columns are taken from its first row.
type Row struct {
	ReminderID       string `csv:"reminder_id"`
	Description      string `csv:"description"`
	Rule             string `csv:"rule"`
	RuleStart        string `csv:"rule_start,omitempty"`
	RuleEnd          string `csv:"rule_end,omitempty"`
	Account          string `csv:"account"`
	AccountType      string `csv:"account_type"`
	Currency         string `csv:"currency"`
	DecimalPlaces    string `csv:"decimal_places"`
	Amount           string `csv:"amount"`
	SplitDescription string `csv:"split_description,omitempty"`
}

// Load reads the CSV book at path.
func Load(path string, logger logging.Logger) (*book.Book, error) {
	resolved, err := fileutils.FindFile(path)
	if err != nil {
		return nil, &planerror.SourceError{Source: SourceName, Path: path, Reason: "file not found", Err: err}
	}

	rows, err := common.ReadCSVFile[Row](resolved, logger)
	if err != nil {
		return nil, &planerror.SourceError{Source: SourceName, Path: resolved, Reason: "cannot read rows", Err: err}
	}

	b, err := FromRows(rows)
	if err != nil {
		return nil, &planerror.SourceError{Source: SourceName, Path: resolved, Reason: "invalid book", Err: err}
	}
	logger.Info("Loaded reminder book",
		logging.F(logging.FieldFile, resolved),
		logging.F(logging.FieldCount, len(b.Reminders)))
	return b, nil
}

// Decode reads rows from r and assembles the book.
func Decode(r io.Reader) (*book.Book, error) {
	rows, err := common.ReadCSV[Row](r)
	if err != nil {
		return nil, err
	}
	return FromRows(rows)
}

// FromRows assembles a book from split rows. Blank rows are skipped. A currency or
// account that appears on several rows must be described identically each time.
func FromRows(rows []Row) (*book.Book, error) {
	b := &book.Book{}
	currencies := make(map[string]book.Currency)
	accounts := make(map[string]book.Account)
	reminders := make(map[string]int)

	for i, row := range rows {
		line := i + 2
		if isBlank(row) {
			continue
		}
		id := strings.TrimSpace(row.ReminderID)
		if id == "" {
			return nil, fmt.Errorf("line %d: empty reminder_id", line)
		}

		if code := strings.TrimSpace(row.Currency); code != "" {
			cur, err := currencyOf(code, row.DecimalPlaces)
			if err != nil {
				return nil, fmt.Errorf("line %d: %w", line, err)
			}
			if prev, ok := currencies[code]; ok {
				if !samePlaces(prev.DecimalPlaces, cur.DecimalPlaces) {
					return nil, fmt.Errorf("line %d: currency %s has conflicting decimal places", line, code)
				}
			} else {
				currencies[code] = cur
				b.Currencies = append(b.Currencies, cur)
			}
		}

		acc := book.Account{
			Name:     strings.TrimSpace(row.Account),
			Type:     strings.TrimSpace(row.AccountType),
			Currency: strings.TrimSpace(row.Currency),
		}
		if prev, ok := accounts[acc.Name]; ok {
			if prev != acc {
				return nil, fmt.Errorf("line %d: account %s is described differently on an earlier line", line, acc.Name)
			}
		} else {
			accounts[acc.Name] = acc
			b.Accounts = append(b.Accounts, acc)
		}

		amount, err := parseMinorUnits(row.Amount, row.DecimalPlaces)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}

		idx, ok := reminders[id]
		if !ok {
			spec, err := ruleOf(row)
			if err != nil {
				return nil, fmt.Errorf("line %d: reminder %s: %w", line, id, err)
			}
			b.Reminders = append(b.Reminders, book.Reminder{
				ID:          id,
				Description: strings.TrimSpace(row.Description),
				Rule:        spec,
			})
			idx = len(b.Reminders) - 1
			reminders[id] = idx
		}
		b.Reminders[idx].Splits = append(b.Reminders[idx].Splits, book.Split{
			Account:     acc.Name,
			Amount:      amount,
			Description: strings.TrimSpace(row.SplitDescription),
		})
	}

	if err := b.Validate(); err != nil {
		return nil, err
	}
	return b, nil
}

func isBlank(row Row) bool {
	return row == Row{}
}

func currencyOf(code, places string) (book.Currency, error) {
	places = strings.TrimSpace(places)
	if places == "" {
		return book.Currency{Code: code}, nil
	}
	n, err := strconv.ParseInt(places, 10, 32)
	if err != nil || n < 0 {
		return book.Currency{}, fmt.Errorf("currency %s: invalid decimal_places %q", code, places)
	}
	return book.Currency{Code: code, DecimalPlaces: book.Places(int32(n))}, nil
}

func samePlaces(a, b *int32) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

// parseMinorUnits accepts either an integer in minor units or a decimal amount
// ("12.50"), which is converted using the row's decimal places.
func parseMinorUnits(raw, places string) (int64, error) {
	raw = strings.TrimSpace(raw)
	if n, err := strconv.ParseInt(raw, 10, 64); err == nil {
		return n, nil
	}
	amount, err := currencyutils.ParseAmount(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid amount %q: %w", raw, err)
	}
	dp, err := strconv.ParseInt(strings.TrimSpace(places), 10, 32)
	if err != nil {
		return 0, fmt.Errorf("amount %q needs decimal_places to convert to minor units", raw)
	}
	return currencyutils.ToMinorUnits(amount, int32(dp))
}

func ruleOf(row Row) (recurrence.Spec, error) {
	spec, err := recurrence.ParseSpec(row.Rule)
	if err != nil {
		return spec, err
	}
	spec.Start = strings.TrimSpace(row.RuleStart)
	spec.End = strings.TrimSpace(row.RuleEnd)
	if _, err := spec.Build(); err != nil {
		return spec, err
	}
	return spec, nil
}
