package money

import (
	"errors"
	"fmt"
)

// ErrCurrencyMismatch indicates arithmetic across two currencies.
var ErrCurrencyMismatch = errors.New("money: currency mismatch")

// Money binds an amount to the currency it is denominated in.
type Money struct {
	Amount   Cents    `json:"amount"`
	Currency Currency `json:"currency"`
}

// NewMoney pairs amount with cur.
func NewMoney(amount Cents, cur Currency) Money {
	return Money{Amount: amount, Currency: cur}
}

// Add sums two amounts of the same currency.
func (m Money) Add(o Money) (Money, error) {
	if m.Currency != o.Currency {
		return Money{}, fmt.Errorf("%w: %s vs %s", ErrCurrencyMismatch, m.Currency, o.Currency)
	}
	return Money{Amount: m.Amount.Add(o.Amount), Currency: m.Currency}, nil
}

// Sub subtracts an amount of the same currency.
func (m Money) Sub(o Money) (Money, error) {
	if m.Currency != o.Currency {
		return Money{}, fmt.Errorf("%w: %s vs %s", ErrCurrencyMismatch, m.Currency, o.Currency)
	}
	return Money{Amount: m.Amount.Sub(o.Amount), Currency: m.Currency}, nil
}

// Format renders the amount with its own currency.
func (m Money) Format(opts ...FormatOption) string {
	return Format(m.Amount, m.Currency, opts...)
}

// String implements fmt.Stringer.
func (m Money) String() string {
	return m.Format()
}
