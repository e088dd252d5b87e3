package money

import (
	"sort"

	"golang.org/x/text/language"
)

// Currency is an ISO-4217 code from the supported set.
type Currency string

const (
	CAD Currency = "CAD"
	USD Currency = "USD"
	EUR Currency = "EUR"
	GBP Currency = "GBP"
	INR Currency = "INR"
	AUD Currency = "AUD"
	JPY Currency = "JPY"
	CHF Currency = "CHF"
)

// DefaultCurrency backs lookups for codes outside the table.
const DefaultCurrency = CAD

// CurrencyInfo is the static display metadata of a currency.
type CurrencyInfo struct {
	Code     Currency `json:"code"`
	Symbol   string   `json:"symbol"`
	Name     string   `json:"name"`
	Decimals int      `json:"decimals"`
	Flag     string   `json:"flag"`
	Locale   string   `json:"locale"`
	// SymbolAfter places the symbol after the number, separated by a no-break space.
	SymbolAfter bool `json:"symbolAfter"`
	// SymbolSpaced separates a leading symbol from the number with a no-break space.
	SymbolSpaced bool `json:"symbolSpaced"`

	tag language.Tag
}

var currencies = map[Currency]CurrencyInfo{
	CAD: {Code: CAD, Symbol: "$", Name: "Canadian Dollar", Decimals: 2, Flag: "🇨🇦", Locale: "en-CA"},
	USD: {Code: USD, Symbol: "$", Name: "US Dollar", Decimals: 2, Flag: "🇺🇸", Locale: "en-US"},
	EUR: {Code: EUR, Symbol: "€", Name: "Euro", Decimals: 2, Flag: "🇪🇺", Locale: "de-DE", SymbolAfter: true},
	GBP: {Code: GBP, Symbol: "£", Name: "British Pound", Decimals: 2, Flag: "🇬🇧", Locale: "en-GB"},
	INR: {Code: INR, Symbol: "₹", Name: "Indian Rupee", Decimals: 2, Flag: "🇮🇳", Locale: "en-IN"},
	AUD: {Code: AUD, Symbol: "$", Name: "Australian Dollar", Decimals: 2, Flag: "🇦🇺", Locale: "en-AU"},
	JPY: {Code: JPY, Symbol: "¥", Name: "Japanese Yen", Decimals: 0, Flag: "🇯🇵", Locale: "ja-JP"},
	CHF: {Code: CHF, Symbol: "CHF", Name: "Swiss Franc", Decimals: 2, Flag: "🇨🇭", Locale: "de-CH", SymbolSpaced: true},
}

func init() {
	for code, info := range currencies {
		info.tag = language.MustParse(info.Locale)
		currencies[code] = info
	}
}

// IsCurrency reports whether value is a supported currency code. The match is case-sensitive.
func IsCurrency(value string) bool {
	_, ok := currencies[Currency(value)]
	return ok
}

// ParseCurrency narrows a wire value to a Currency.
func ParseCurrency(value string) (Currency, bool) {
	if !IsCurrency(value) {
		return "", false
	}
	return Currency(value), true
}

// Valid reports whether c is in the supported set.
func (c Currency) Valid() bool { return IsCurrency(string(c)) }

// Info returns metadata for c, falling back to DefaultCurrency.
func Info(c Currency) CurrencyInfo {
	if info, ok := currencies[c]; ok {
		return info
	}
	return currencies[DefaultCurrency]
}

// Currencies lists the supported currencies ordered by code.
func Currencies() []CurrencyInfo {
	out := make([]CurrencyInfo, 0, len(currencies))
	for _, info := range currencies {
		out = append(out, info)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Code < out[j].Code })
	return out
}
