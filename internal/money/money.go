// Package money renders amounts for humans. Storage and arithmetic stay
// in integer cents; only display goes through here.
package money

import (
	"fmt"

	"golang.org/x/text/currency"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Formatter renders amounts in one locale and currency.
type Formatter struct {
	printer *message.Printer
	unit    currency.Unit
}

// NewFormatter builds a formatter for a BCP 47 locale and an ISO 4217
// currency code.
func NewFormatter(locale, code string) (*Formatter, error) {
	tag, err := language.Parse(locale)
	if err != nil {
		return nil, fmt.Errorf("parsing locale %q: %w", locale, err)
	}

	unit, err := currency.ParseISO(code)
	if err != nil {
		return nil, fmt.Errorf("parsing currency %q: %w", code, err)
	}

	return &Formatter{
		printer: message.NewPrinter(tag),
		unit:    unit,
	}, nil
}

// Default is the formatter used when no locale preference is known.
func Default() *Formatter {
	f, err := NewFormatter("en-US", "USD")
	if err != nil {
		// Both arguments are compile-time constants.
		panic(err)
	}

	return f
}

// Cents renders an amount held in integer cents.
func (f *Formatter) Cents(cents int64) string {
	return f.Units(float64(cents) / 100)
}

// Units renders an amount held in currency units.
func (f *Formatter) Units(v float64) string {
	return f.printer.Sprint(currency.Symbol(f.unit.Amount(v)))
}

// Code returns the ISO 4217 code the formatter renders in.
func (f *Formatter) Code() string {
	return f.unit.String()
}
