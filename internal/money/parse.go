package money

import (
	"strconv"
	"strings"
)

// Parse reads free-text user input such as "$1,234.56" or "1234.56 CAD" into
// minor units of cur. Every rune other than digits, '.' and '-' is dropped
// before the remainder is parsed, so "1-2" or "1.2.3" do not parse.
// The boolean is false when nothing usable remains.
func Parse(value string, cur Currency) (Cents, bool) {
	cleaned := strings.Map(func(r rune) rune {
		if (r >= '0' && r <= '9') || r == '.' || r == '-' {
			return r
		}
		return -1
	}, value)
	if cleaned == "" {
		return Zero, false
	}
	f, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return Zero, false
	}
	c, err := New(round(f * pow10(Info(cur).Decimals)))
	if err != nil {
		return Zero, false
	}
	return c, true
}
