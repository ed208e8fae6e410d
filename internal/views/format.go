// Package views turns reconciled data into the role-aware shapes the
// console serves. Projections are pure: same inputs, same output, no
// fetching.
package views

import (
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

var amounts = message.NewPrinter(language.AmericanEnglish)

// FormatAmount renders a plain grouped number with up to two fraction
// digits and no currency symbol, e.g. 12500.5 -> "12,500.5".
func FormatAmount(v float64) string {
	return amounts.Sprint(number.Decimal(v,
		number.MinFractionDigits(0),
		number.MaxFractionDigits(2),
	))
}

// FormatDate renders the calendar date of a timestamp.
func FormatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format("2006-01-02")
}
