package money

import (
	"log/slog"
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// Epsilon is the tolerance used whenever two amounts are compared.
var Epsilon = decimal.RequireFromString("0.01")

var printer = message.NewPrinter(language.BrazilianPortuguese)

// Parse converts user-entered currency text into a decimal amount.
// Format examples: "R$ 1.234,56" -> 1234.56, "10,5" -> 10.5, "abc" -> 0.
// Unparsable input degrades to zero.
func Parse(s string) decimal.Decimal {
	clean := strings.TrimSpace(strings.ReplaceAll(s, "R$", ""))
	if clean == "" {
		return decimal.Zero
	}

	clean = strings.Join(strings.Fields(clean), "")
	clean = strings.ReplaceAll(clean, ".", "")
	clean = strings.ReplaceAll(clean, ",", ".")

	d, err := decimal.NewFromString(clean)
	if err != nil {
		slog.Debug("unparsable currency input", "input", s, "error", err)
		return decimal.Zero
	}

	return d
}

// Format renders an amount as Brazilian reais, e.g. "R$ 1.234,56".
func Format(d decimal.Decimal) string {
	v := d.Round(2).InexactFloat64()

	return "R$ " + printer.Sprint(number.Decimal(v,
		number.MinFractionDigits(2),
		number.MaxFractionDigits(2),
	))
}

// Equal reports whether a and b differ by no more than Epsilon.
func Equal(a, b decimal.Decimal) bool {
	return a.Sub(b).Abs().LessThanOrEqual(Epsilon)
}

// Sum adds up the given amounts.
func Sum(values ...decimal.Decimal) decimal.Decimal {
	total := decimal.Zero
	for _, v := range values {
		total = total.Add(v)
	}

	return total
}
