// Package money — форматирование сумм в песо (COP) без дробной части.
package money

import (
	"math"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// DefaultLocale — локаль витрины.
const DefaultLocale = "es-CO"

// Formatter — печать сумм с разделителями разрядов выбранной локали.
type Formatter struct {
	p *message.Printer
}

// NewFormatter — неизвестная или пустая локаль заменяется на es-CO.
func NewFormatter(locale string) *Formatter {
	tag, err := language.Parse(locale)
	if err != nil || locale == "" {
		tag = language.MustParse(DefaultLocale)
	}
	return &Formatter{p: message.NewPrinter(tag)}
}

// Format — "$ 150.000": сумма округляется до целых песо.
func (f *Formatter) Format(amount float64) string {
	v := int64(math.Round(amount))
	sign := ""
	if v < 0 {
		sign, v = "-", -v
	}
	return sign + "$ " + f.p.Sprint(number.Decimal(v, number.MaxFractionDigits(0)))
}
