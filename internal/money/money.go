// Package money formats amounts for display. Amounts stay float64 in the
// domain; rounding happens only here.
package money

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Round2 rounds v half away from zero to two decimal places.
func Round2(v float64) decimal.Decimal {
	return decimal.NewFromFloat(v).Round(2)
}

// BRL renders v as Brazilian currency, e.g. "R$ 1.234,50" or "-R$ 30,00".
func BRL(v float64) string {
	d := Round2(v)
	neg := d.IsNegative()
	s := d.Abs().StringFixed(2)

	intPart, frac, _ := strings.Cut(s, ".")
	var b strings.Builder
	for i, r := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteByte('.')
		}
		b.WriteRune(r)
	}

	out := "R$ " + b.String() + "," + frac
	if neg {
		return "-" + out
	}
	return out
}
