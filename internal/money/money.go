// Package money implements an immutable amount paired with its currency.
package money

import (
	"errors"

	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/fintrack/internal/apperr"
	"github.com/MrJamesThe3rd/fintrack/internal/currency"
)

var (
	ErrCurrencyMismatch = errors.New("money: currencies differ")
	ErrDivisionByZero   = errors.New("money: division by zero")
)

const scale = 2

// Money is never negative.
type Money struct {
	amount   decimal.Decimal
	currency currency.Currency
}

func New(amount decimal.Decimal, cur currency.Currency) (Money, error) {
	if amount.IsNegative() {
		return Money{}, apperr.Invalid("amount", "must not be negative")
	}

	return Money{amount: amount, currency: cur}, nil
}

// Zero returns an empty amount of cur, used as a starting point for sums.
func Zero(cur currency.Currency) Money {
	return Money{amount: decimal.Zero, currency: cur}
}

func (m Money) Amount() decimal.Decimal { return m.amount }

func (m Money) Currency() currency.Currency { return m.currency }

func (m Money) IsZero() bool { return m.amount.IsZero() }

func (m Money) Add(other Money) (Money, error) {
	if err := m.sameCurrency(other); err != nil {
		return Money{}, err
	}

	return Money{amount: m.amount.Add(other.amount), currency: m.currency}, nil
}

func (m Money) Sub(other Money) (Money, error) {
	if err := m.sameCurrency(other); err != nil {
		return Money{}, err
	}

	return New(m.amount.Sub(other.amount), m.currency)
}

func (m Money) Mul(factor decimal.Decimal) (Money, error) {
	return New(m.amount.Mul(factor), m.currency)
}

// Div rounds the quotient half away from zero to cents.
func (m Money) Div(divisor decimal.Decimal) (Money, error) {
	if divisor.IsZero() {
		return Money{}, ErrDivisionByZero
	}

	return New(m.amount.DivRound(divisor, scale), m.currency)
}

// Equal compares amounts numerically, so 1.5 equals 1.50.
func (m Money) Equal(other Money) bool {
	return m.currency.ID == other.currency.ID && m.amount.Equal(other.amount)
}

func (m Money) Cmp(other Money) (int, error) {
	if err := m.sameCurrency(other); err != nil {
		return 0, err
	}

	return m.amount.Cmp(other.amount), nil
}

// String renders the amount with two decimals followed by the currency code.
func (m Money) String() string {
	return m.amount.StringFixed(scale) + " " + m.currency.Code
}

func (m Money) sameCurrency(other Money) error {
	if m.currency.ID != other.currency.ID {
		return ErrCurrencyMismatch
	}
	return nil
}
