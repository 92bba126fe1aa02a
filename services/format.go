package services

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

var quantityPrinter = message.NewPrinter(language.MustParse("es-CO"))

// FormatCOP formats an amount as Colombian pesos: "$" symbol, "." as the
// thousands separator and no decimals (e.g., $19.575.000).
// Halves round away from zero.
func FormatCOP(amount float64) string {
	raw := decimal.NewFromFloat(amount).Round(0).StringFixed(0)

	negative := strings.HasPrefix(raw, "-")
	raw = strings.TrimPrefix(raw, "-")

	result := "$" + applyThousandsGrouping(raw)
	if negative && raw != "0" {
		result = "-" + result
	}
	return result
}

// applyThousandsGrouping inserts a "." every three digits from the right.
func applyThousandsGrouping(s string) string {
	n := len(s)
	if n <= 3 {
		return s
	}

	var b strings.Builder
	head := n % 3
	if head > 0 {
		b.WriteString(s[:head])
	}
	for i := head; i < n; i += 3 {
		if b.Len() > 0 {
			b.WriteByte('.')
		}
		b.WriteString(s[i : i+3])
	}
	return b.String()
}

// FormatQuantity renders a quantity with the es-CO number format and at most
// two fraction digits.
func FormatQuantity(q float64) string {
	return quantityPrinter.Sprint(number.Decimal(q, number.MaxFractionDigits(2)))
}

// FormatTimestamp renders a comment timestamp as dd/mm/yyyy HH:MM in local
// time. Stored comments load in UTC.
func FormatTimestamp(t time.Time) string {
	return t.Local().Format("02/01/2006 15:04")
}
