package models

import (
	"fmt"
	"strings"
)

// AccountType classifies an account.
type AccountType string

// Account classifications. Only AccountTypeExpense counts as spending.
const (
	AccountTypeExpense    AccountType = "expense"
	AccountTypeIncome     AccountType = "income"
	AccountTypeBank       AccountType = "bank"
	AccountTypeCreditCard AccountType = "credit_card"
	AccountTypeAsset      AccountType = "asset"
	AccountTypeLiability  AccountType = "liability"
	AccountTypeInvestment AccountType = "investment"
	AccountTypeLoan       AccountType = "loan"
)

var accountTypes = map[string]AccountType{
	"expense":     AccountTypeExpense,
	"income":      AccountTypeIncome,
	"bank":        AccountTypeBank,
	"credit_card": AccountTypeCreditCard,
	"creditcard":  AccountTypeCreditCard,
	"asset":       AccountTypeAsset,
	"liability":   AccountTypeLiability,
	"investment":  AccountTypeInvestment,
	"loan":        AccountTypeLoan,
}

// ParseAccountType parses an account type name, case-insensitively.
func ParseAccountType(s string) (AccountType, error) {
	key := strings.ReplaceAll(strings.ToLower(strings.TrimSpace(s)), "-", "_")
	t, ok := accountTypes[key]
	if !ok {
		return "", fmt.Errorf("unknown account type: %q", s)
	}
	return t, nil
}

// Currency is a currency with its minor-unit scale.
// A nil DecimalPlaces means the scale could not be resolved.
type Currency struct {
	Code          string
	DecimalPlaces *int32
}

// NewCurrency returns a currency with a known scale.
func NewCurrency(code string, places int32) *Currency {
	return &Currency{Code: code, DecimalPlaces: &places}
}

// Scale returns the number of decimal places of the currency.
func (c *Currency) Scale() (int32, error) {
	if c == nil || c.DecimalPlaces == nil {
		return 0, ErrUnknownCurrencyScale
	}
	if *c.DecimalPlaces < 0 {
		return 0, fmt.Errorf("currency %s has negative decimal places %d: %w", c.Code, *c.DecimalPlaces, ErrUnknownCurrencyScale)
	}
	return *c.DecimalPlaces, nil
}

// Account is a ledger account.
type Account struct {
	Name     string
	Type     AccountType
	Currency *Currency
}
