package money

import (
	"math"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

const nbsp = "\u00a0"

type symbolDisplay int

const (
	displaySymbol symbolDisplay = iota
	displayCode
	displayNone
)

type formatConfig struct {
	minFraction int
	maxFraction int
	display     symbolDisplay
}

// FormatOption overrides the currency defaults used by the Format family.
type FormatOption func(*formatConfig)

// WithFractionDigits sets the minimum and maximum fraction digits.
func WithFractionDigits(min, max int) FormatOption {
	return func(cfg *formatConfig) {
		if min < 0 {
			min = 0
		}
		if max < min {
			max = min
		}
		cfg.minFraction = min
		cfg.maxFraction = max
	}
}

// WithCode renders the ISO code instead of the symbol.
func WithCode() FormatOption {
	return func(cfg *formatConfig) { cfg.display = displayCode }
}

// WithoutSymbol renders digits and separators only.
func WithoutSymbol() FormatOption {
	return func(cfg *formatConfig) { cfg.display = displayNone }
}

func newFormatConfig(info CurrencyInfo, opts []FormatOption) formatConfig {
	cfg := formatConfig{minFraction: info.Decimals, maxFraction: info.Decimals}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	return cfg
}

// Format renders amount in the currency's locale, e.g. "$1,234.56" or "-$5.00".
func Format(amount Cents, cur Currency, opts ...FormatOption) string {
	info := Info(cur)
	cfg := newFormatConfig(info, opts)
	digits := formatNumber(info.tag, math.Abs(toMajor(amount, info)), cfg.minFraction, cfg.maxFraction)
	body := decorate(info, digits, cfg.display)
	if amount.IsNegative() {
		return "-" + body
	}
	return body
}

// FormatWithSign is Format with a leading "+" on positive amounts. Zero carries no sign.
func FormatWithSign(amount Cents, cur Currency, opts ...FormatOption) string {
	formatted := Format(amount, cur, opts...)
	if amount.IsPositive() {
		return "+" + formatted
	}
	return formatted
}

// FormatAccounting wraps negative amounts in parentheses instead of using a minus sign.
func FormatAccounting(amount Cents, cur Currency, opts ...FormatOption) string {
	if amount.IsNegative() {
		return "(" + Format(amount.Abs(), cur, opts...) + ")"
	}
	return Format(amount, cur, opts...)
}

// FormatPlain renders the amount without any currency symbol.
func FormatPlain(amount Cents, cur Currency, opts ...FormatOption) string {
	opts = append(append([]FormatOption(nil), opts...), WithoutSymbol())
	return Format(amount, cur, opts...)
}

type compactUnit struct {
	threshold float64
	suffix    string
}

var compactUnits = []compactUnit{
	{threshold: 1e3, suffix: "K"},
	{threshold: 1e6, suffix: "M"},
	{threshold: 1e9, suffix: "B"},
	{threshold: 1e12, suffix: "T"},
}

// FormatCompact abbreviates large amounts, e.g. "$1.2K" or "$3.4M", with at most one fraction digit.
func FormatCompact(amount Cents, cur Currency, opts ...FormatOption) string {
	info := Info(cur)
	cfg := newFormatConfig(info, append([]FormatOption{WithFractionDigits(0, 1)}, opts...))
	scaled, suffix := compact(math.Abs(toMajor(amount, info)), cfg.maxFraction)
	digits := formatNumber(info.tag, scaled, cfg.minFraction, cfg.maxFraction) + suffix
	body := decorate(info, digits, cfg.display)
	if amount.IsNegative() {
		return "-" + body
	}
	return body
}

// compact picks the largest unit the rounded value reaches, so 999,960 becomes 1M rather than 1,000K.
func compact(value float64, maxFraction int) (float64, string) {
	scale := math.Pow10(maxFraction)
	scaled, suffix := value, ""
	for _, unit := range compactUnits {
		candidate := math.Round(value/unit.threshold*scale) / scale
		if candidate < 1 {
			break
		}
		scaled, suffix = value/unit.threshold, unit.suffix
	}
	return scaled, suffix
}

func toMajor(amount Cents, info CurrencyInfo) float64 {
	return float64(amount.Int64()) / math.Pow10(info.Decimals)
}

func formatNumber(tag language.Tag, value float64, minFraction, maxFraction int) string {
	p := message.NewPrinter(tag)
	return p.Sprint(number.Decimal(value,
		number.MinFractionDigits(minFraction),
		number.MaxFractionDigits(maxFraction),
	))
}

func decorate(info CurrencyInfo, digits string, display symbolDisplay) string {
	mark, spaced := info.Symbol, info.SymbolSpaced
	switch display {
	case displayNone:
		return digits
	case displayCode:
		mark, spaced = string(info.Code), true
	}
	switch {
	case info.SymbolAfter:
		return digits + nbsp + mark
	case spaced:
		return mark + nbsp + digits
	default:
		return mark + digits
	}
}
