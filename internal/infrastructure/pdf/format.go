package pdf

import (
	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

var inPrinter = message.NewPrinter(language.MustParse("en-IN"))

// FormatINR renders an amount with Indian digit grouping and two decimals,
// e.g. 1234567.5 -> "12,34,567.50". Presentation only; amounts are stored
// and summed unrounded.
func FormatINR(d decimal.Decimal) string {
	f, _ := d.Round(2).Float64()
	return inPrinter.Sprint(number.Decimal(f,
		number.MinFractionDigits(2),
		number.MaxFractionDigits(2),
	))
}
