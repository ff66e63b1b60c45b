// Package display formats amounts and summaries for people to read.
//
// Formatting is locale-aware through golang.org/x/text. Nothing in here
// converts between currencies: a bill's target currency only changes the
// symbol shown next to the amounts.
package display

import (
	"fmt"

	"github.com/shopspring/decimal"
	"golang.org/x/text/currency"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"

	"github.com/mmynk/splitbill/internal/money"
)

// DefaultLocale is used when a locale string cannot be parsed.
const DefaultLocale = "en-US"

// DefaultCurrency is used when a locale has no regional currency.
const DefaultCurrency = "USD"

// Formatter renders amounts for one locale.
type Formatter struct {
	tag     language.Tag
	printer *message.Printer
}

// NewFormatter creates a formatter for a BCP 47 locale such as "en-GB" or "de-DE".
func NewFormatter(locale string) *Formatter {
	tag, err := language.Parse(locale)
	if err != nil {
		tag = language.MustParse(DefaultLocale)
	}
	return &Formatter{tag: tag, printer: message.NewPrinter(tag)}
}

// Locale returns the formatter's language tag.
func (f *Formatter) Locale() string {
	return f.tag.String()
}

// Number formats d with grouping and exactly scale fraction digits.
func (f *Formatter) Number(d decimal.Decimal, scale int32) string {
	rounded := money.Round(d, scale)
	s := f.unsigned(rounded.Abs(), scale)
	if rounded.IsNegative() {
		return "-" + s
	}
	return s
}

// unsigned formats a non-negative, already rounded amount. The whole and
// fraction digits are printed as integers so they never go through float64.
func (f *Formatter) unsigned(d decimal.Decimal, scale int32) string {
	whole := d.Truncate(0)
	if !whole.BigInt().IsInt64() {
		return f.printer.Sprint(number.Decimal(money.Float(d), number.Scale(int(scale))))
	}
	s := f.printer.Sprint(number.Decimal(whole.IntPart()))
	if scale <= 0 {
		return s
	}
	frac := d.Sub(whole).Shift(scale).IntPart()
	return s + f.decimalSeparator() +
		f.printer.Sprint(number.Decimal(frac, number.MinIntegerDigits(int(scale)), number.NoSeparator()))
}

// decimalSeparator is the locale's mark between whole and fraction digits.
func (f *Formatter) decimalSeparator() string {
	sample := []rune(f.printer.Sprint(number.Decimal(1.5, number.Scale(1))))
	if len(sample) < 3 {
		return "."
	}
	return string(sample[1 : len(sample)-1])
}

// Symbol returns the locale's symbol for an ISO 4217 code, or the code itself
// when it is not a known currency.
func (f *Formatter) Symbol(code string) string {
	unit, err := currency.ParseISO(code)
	if err != nil {
		return code
	}
	return f.printer.Sprint(currency.Symbol(unit))
}

// Amount formats d in the given currency, e.g. "$1,234.50" or "-¥500".
// The number of fraction digits follows the currency.
func (f *Formatter) Amount(d decimal.Decimal, code string) string {
	scale := money.Scale(code)
	num := f.Number(d.Abs(), scale)
	sign := ""
	if money.Round(d, scale).IsNegative() {
		sign = "-"
	}
	return fmt.Sprintf("%s%s%s", sign, f.Symbol(code), num)
}

// CurrencyForLocale guesses a default currency from a locale's region, e.g.
// "en-GB" is GBP and "de" is EUR. Unknown locales fall back to DefaultCurrency.
func CurrencyForLocale(locale string) string {
	tag, err := language.Parse(locale)
	if err != nil {
		return DefaultCurrency
	}
	region, conf := tag.Region()
	if conf == language.No {
		return DefaultCurrency
	}
	unit, ok := currency.FromRegion(region)
	if !ok {
		return DefaultCurrency
	}
	return unit.String()
}
