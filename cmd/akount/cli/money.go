package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/akount/akount/internal/money"
)

// MoneyOptions defines the flags shared by the format and parse commands.
type MoneyOptions struct {
	Value      string
	Currency   string
	Style      string
	UseCode    bool
	JSONOutput bool
	Stdout     io.Writer
	Stderr     io.Writer
}

// MoneyResult is the JSON output of the format and parse commands.
type MoneyResult struct {
	Amount    money.Cents    `json:"amount"`
	Currency  money.Currency `json:"currency"`
	Formatted string         `json:"formatted"`
}

var styles = map[string]func(money.Cents, money.Currency, ...money.FormatOption) string{
	"standard":   money.Format,
	"signed":     money.FormatWithSign,
	"compact":    money.FormatCompact,
	"accounting": money.FormatAccounting,
	"plain":      money.FormatPlain,
}

func (o *MoneyOptions) defaults() {
	if o.Stdout == nil {
		o.Stdout = os.Stdout
	}
	if o.Stderr == nil {
		o.Stderr = os.Stderr
	}
	if o.Currency == "" {
		o.Currency = string(money.DefaultCurrency)
	}
	if o.Style == "" {
		o.Style = "standard"
	}
}

// FormatCommand renders an integer minor-unit amount.
func FormatCommand(opts MoneyOptions) int {
	opts.defaults()
	cur, ok := money.ParseCurrency(strings.ToUpper(opts.Currency))
	if !ok {
		_, _ = fmt.Fprintf(opts.Stderr, "format: unsupported currency %q\n", opts.Currency)
		return 1
	}
	render, ok := styles[opts.Style]
	if !ok {
		_, _ = fmt.Fprintf(opts.Stderr, "format: unknown style %q\n", opts.Style)
		return 1
	}
	raw, err := strconv.ParseInt(strings.TrimSpace(opts.Value), 10, 64)
	if err != nil {
		_, _ = fmt.Fprintf(opts.Stderr, "format: amount must be an integer number of minor units, got %q\n", opts.Value)
		return 1
	}
	amount := money.FromInt(raw)
	var fmtOpts []money.FormatOption
	if opts.UseCode {
		fmtOpts = append(fmtOpts, money.WithCode())
	}
	return emit(opts, MoneyResult{Amount: amount, Currency: cur, Formatted: render(amount, cur, fmtOpts...)})
}

// ParseCommand converts user input such as "$1,234.56" into minor units.
func ParseCommand(opts MoneyOptions) int {
	opts.defaults()
	cur, ok := money.ParseCurrency(strings.ToUpper(opts.Currency))
	if !ok {
		_, _ = fmt.Fprintf(opts.Stderr, "parse: unsupported currency %q\n", opts.Currency)
		return 1
	}
	amount, ok := money.Parse(opts.Value, cur)
	if !ok {
		_, _ = fmt.Fprintf(opts.Stderr, "parse: %q is not an amount\n", opts.Value)
		return 10
	}
	return emit(opts, MoneyResult{Amount: amount, Currency: cur, Formatted: money.Format(amount, cur)})
}

func emit(opts MoneyOptions, result MoneyResult) int {
	if opts.JSONOutput {
		if err := json.NewEncoder(opts.Stdout).Encode(result); err != nil {
			_, _ = fmt.Fprintf(opts.Stderr, "encode json: %v\n", err)
			return 1
		}
		return 0
	}
	_, _ = fmt.Fprintf(opts.Stdout, "%s\t%s\t%s\n", result.Amount, result.Currency, result.Formatted)
	return 0
}
