// Package money holds the integer minor-unit amount type, the currency table
// and the display helpers built on top of them.
package money

import (
	"bytes"
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strconv"
)

var (
	// ErrInvalidAmount indicates a value that is not a whole number of minor units.
	ErrInvalidAmount = errors.New("money: amount must be an integer number of cents")
	// ErrDivisionByZero indicates a zero divisor.
	ErrDivisionByZero = errors.New("money: division by zero")
)

// maxExact bounds the float64 range that converts to int64 without overflow.
const maxExact = float64(1 << 63)

// Cents is an amount expressed in the minor unit of some currency.
// The zero value is the canonical zero.
type Cents struct {
	v int64
}

// Zero is the canonical zero amount.
var Zero = Cents{}

// New validates value as a whole number of minor units.
func New(value float64) (Cents, error) {
	if math.IsNaN(value) || math.IsInf(value, 0) || value != math.Trunc(value) {
		return Zero, fmt.Errorf("%w: %v", ErrInvalidAmount, value)
	}
	if value >= maxExact || value < -maxExact {
		return Zero, fmt.Errorf("%w: %v out of range", ErrInvalidAmount, value)
	}
	return Cents{v: int64(value)}, nil
}

// MustNew is New for amounts known to be valid. It panics otherwise.
func MustNew(value float64) Cents {
	c, err := New(value)
	if err != nil {
		panic(err)
	}
	return c
}

// FromInt wraps an integer minor-unit amount.
func FromInt(v int64) Cents {
	return Cents{v: v}
}

// Int64 returns the raw minor-unit amount.
func (c Cents) Int64() int64 { return c.v }

// Add returns c + o.
func (c Cents) Add(o Cents) Cents { return Cents{v: c.v + o.v} }

// Sub returns c - o.
func (c Cents) Sub(o Cents) Cents { return Cents{v: c.v - o.v} }

// Mul multiplies by factor and rounds to the nearest cent, ties toward positive infinity.
func (c Cents) Mul(factor float64) (Cents, error) {
	return New(round(float64(c.v) * factor))
}

// Div divides by divisor and rounds to the nearest cent, ties toward positive infinity.
func (c Cents) Div(divisor float64) (Cents, error) {
	if divisor == 0 {
		return Zero, ErrDivisionByZero
	}
	return New(round(float64(c.v) / divisor))
}

// Abs returns the absolute amount.
func (c Cents) Abs() Cents {
	if c.v < 0 {
		return Cents{v: -c.v}
	}
	return c
}

// Neg flips the sign.
func (c Cents) Neg() Cents { return Cents{v: -c.v} }

// IsNegative reports c < 0.
func (c Cents) IsNegative() bool { return c.v < 0 }

// IsPositive reports c > 0.
func (c Cents) IsPositive() bool { return c.v > 0 }

// IsZero reports c == 0.
func (c Cents) IsZero() bool { return c.v == 0 }

// Cmp returns -1, 0 or +1 comparing c with o.
func (c Cents) Cmp(o Cents) int {
	switch {
	case c.v < o.v:
		return -1
	case c.v > o.v:
		return 1
	default:
		return 0
	}
}

// Dollars converts to major units assuming two decimals.
// Use Major for currencies with a different minor unit.
func (c Cents) Dollars() float64 {
	return float64(c.v) / 100
}

// Major converts to major units using the currency's decimals.
func (c Cents) Major(cur Currency) float64 {
	return float64(c.v) / pow10(Info(cur).Decimals)
}

// String renders the raw integer amount.
func (c Cents) String() string {
	return strconv.FormatInt(c.v, 10)
}

// Sum adds all amounts. No amounts sum to Zero.
func Sum(amounts ...Cents) Cents {
	total := Zero
	for _, a := range amounts {
		total = total.Add(a)
	}
	return total
}

// DollarsToCents converts a two-decimal major amount to cents, rounding to the nearest cent.
func DollarsToCents(dollars float64) (Cents, error) {
	return New(round(dollars * 100))
}

// MarshalJSON encodes the amount as a bare integer.
func (c Cents) MarshalJSON() ([]byte, error) {
	return []byte(strconv.FormatInt(c.v, 10)), nil
}

// UnmarshalJSON accepts integral JSON numbers only. null decodes as Zero.
func (c *Cents) UnmarshalJSON(data []byte) error {
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		*c = Zero
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("%w: %s", ErrInvalidAmount, string(data))
	}
	if v, err := n.Int64(); err == nil {
		c.v = v
		return nil
	}
	f, err := n.Float64()
	if err != nil {
		return fmt.Errorf("%w: %s", ErrInvalidAmount, string(data))
	}
	parsed, err := New(f)
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

// Scan implements sql.Scanner for BIGINT columns.
func (c *Cents) Scan(src any) error {
	switch v := src.(type) {
	case int64:
		c.v = v
	case int32:
		c.v = int64(v)
	case nil:
		c.v = 0
	default:
		return fmt.Errorf("money: cannot scan %T into Cents", src)
	}
	return nil
}

// Value implements driver.Valuer.
func (c Cents) Value() (driver.Value, error) {
	return c.v, nil
}

// round mirrors Math.round: nearest integer, halves go toward +Inf.
func round(x float64) float64 {
	if math.IsNaN(x) || math.IsInf(x, 0) {
		return x
	}
	r := math.Floor(x)
	if x-r >= 0.5 {
		r++
	}
	return r
}

func pow10(n int) float64 {
	return math.Pow10(n)
}
