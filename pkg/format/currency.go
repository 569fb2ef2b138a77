// Package format renders amounts, percentages and optional KPI values for
// human-readable reports.
package format

import (
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/currency"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/iwvelando/pv-viability/pkg/constants"
	"github.com/iwvelando/pv-viability/pkg/optional"
)

// NotAvailable is printed in place of an absent value.
const NotAvailable = "N/A"

// Money returns an amount rounded to cents with thousands separators and the
// ISO currency code in front (e.g., "-MXN 1,234.56"). Amounts are never
// converted; the code is only a label.
func Money(amount float64, code string) string {
	label := CurrencyLabel(code)
	d := decimal.NewFromFloat(amount).Round(2)
	if d.IsNegative() {
		return "-" + label + " " + grouped(d.Abs(), 2)
	}
	return label + " " + grouped(d, 2)
}

// Number returns v rounded to places decimals with thousands separators.
func Number(v float64, places int32) string {
	return grouped(decimal.NewFromFloat(v).Round(places), places)
}

// Percent renders a fraction as a percentage with two decimals (0.1234 is
// "12.34%").
func Percent(fraction float64) string {
	d := decimal.NewFromFloat(fraction).Mul(decimal.NewFromFloat(constants.PercentageMultiplier))
	return d.StringFixed(2) + "%"
}

// CurrencyLabel normalizes code to its ISO 4217 form, falling back to the
// upper-cased input for codes x/text does not know.
func CurrencyLabel(code string) string {
	if unit, err := currency.ParseISO(strings.TrimSpace(code)); err == nil {
		return unit.String()
	}
	return strings.ToUpper(strings.TrimSpace(code))
}

// OptionalMoney renders a present amount with Money and an absent one as N/A.
func OptionalMoney(v optional.Float, code string) string {
	if amount, ok := v.Get(); ok {
		return Money(amount, code)
	}
	return NotAvailable
}

// OptionalPercent renders a present fraction with Percent and an absent one as N/A.
func OptionalPercent(v optional.Float) string {
	if fraction, ok := v.Get(); ok {
		return Percent(fraction)
	}
	return NotAvailable
}

// OptionalYears renders a present year index as "N years" and an absent one as N/A.
func OptionalYears(v optional.Int) string {
	year, ok := v.Get()
	if !ok {
		return NotAvailable
	}
	if year == 1 {
		return "1 year"
	}
	return decimal.NewFromInt(int64(year)).String() + " years"
}

var printer = message.NewPrinter(language.English)

// grouped renders an already rounded amount with English digit grouping.
func grouped(d decimal.Decimal, places int32) string {
	return printer.Sprintf("%.*f", int(places), d.InexactFloat64())
}
