// Package format renders decimal values for display.
package format

import (
	"strings"

	"github.com/govalues/decimal"
)

// Grouped returns d with thousands separators (e.g., "-1,234.5678"), keeping
// every digit of its string form.
func Grouped(d decimal.Decimal) string {
	s := d.String()
	sign := ""
	if strings.HasPrefix(s, "-") {
		sign, s = "-", s[1:]
	}

	intPart, fracPart, hasFrac := strings.Cut(s, ".")
	if len(intPart) > 3 {
		var builder strings.Builder
		for i, digit := range intPart {
			if i > 0 && (len(intPart)-i)%3 == 0 {
				builder.WriteByte(',')
			}
			builder.WriteRune(digit)
		}
		intPart = builder.String()
	}

	if hasFrac {
		return sign + intPart + "." + fracPart
	}
	return sign + intPart
}
