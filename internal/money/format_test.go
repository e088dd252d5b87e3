package money

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormat(t *testing.T) {
	cases := []struct {
		name   string
		amount int64
		cur    Currency
		want   string
	}{
		{"cad", 123456, CAD, "$1,234.56"},
		{"negative", -500, CAD, "-$5.00"},
		{"zero", 0, USD, "$0.00"},
		{"pound", 99, GBP, "£0.99"},
		{"yen has no minor unit", 1050, JPY, "¥1,050"},
		{"euro symbol trails", 123456, EUR, "1.234,56\u00a0€"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, Format(FromInt(tc.amount), tc.cur))
		})
	}
}

func TestFormatOptions(t *testing.T) {
	assert.Equal(t, "CAD\u00a05.00", Format(FromInt(500), CAD, WithCode()))
	assert.Equal(t, "$1,235", Format(FromInt(123456), CAD, WithFractionDigits(0, 0)))
	assert.Equal(t, "5.00", Format(FromInt(500), CAD, WithoutSymbol()))
}

func TestFormatWithSign(t *testing.T) {
	assert.Equal(t, "+$12.34", FormatWithSign(FromInt(1234), CAD))
	assert.Equal(t, "-$12.34", FormatWithSign(FromInt(-1234), CAD))
	assert.Equal(t, "$0.00", FormatWithSign(Zero, CAD))
}

func TestFormatAccounting(t *testing.T) {
	assert.Equal(t, "($5.00)", FormatAccounting(FromInt(-500), CAD))
	assert.Equal(t, "$5.00", FormatAccounting(FromInt(500), CAD))
	assert.Equal(t, "$0.00", FormatAccounting(Zero, CAD))
}

func TestFormatPlain(t *testing.T) {
	assert.Equal(t, "10.50", FormatPlain(FromInt(1050), CAD))
	assert.Equal(t, "1,050", FormatPlain(FromInt(1050), JPY))
	assert.Equal(t, "-1,234.56", FormatPlain(FromInt(-123456), USD))
}

func TestFormatCompact(t *testing.T) {
	cases := []struct {
		amount int64
		want   string
	}{
		{50000, "$500"},
		{123456, "$1.2K"},
		{150000000, "$1.5M"},
		{99996000, "$1M"},
		{250000000000, "$2.5B"},
		{-320000, "-$3.2K"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, FormatCompact(FromInt(tc.amount), CAD), "amount %d", tc.amount)
	}
	assert.Equal(t, "¥1.5K", FormatCompact(FromInt(1500), JPY))
}

func TestMoneyPair(t *testing.T) {
	a := NewMoney(FromInt(1000), USD)
	b := NewMoney(FromInt(250), USD)
	sum, err := a.Add(b)
	assert.NoError(t, err)
	assert.Equal(t, "$12.50", sum.String())

	diff, err := a.Sub(b)
	assert.NoError(t, err)
	assert.Equal(t, FromInt(750), diff.Amount)

	_, err = a.Add(NewMoney(FromInt(1), JPY))
	assert.ErrorIs(t, err, ErrCurrencyMismatch)
}
