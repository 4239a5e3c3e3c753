package utils

import "strings"

// ReportingCurrency is the single currency every offer is expressed in before
// leaving the search stage.
const ReportingCurrency = "EUR"

// Approximate exchange rates to EUR, updated periodically.
var ratesToEUR = map[string]float64{
	"EUR": 1.0,
	"USD": 0.92,
	"GBP": 1.17,
	"JPY": 0.0062,
	"CNY": 0.13,
	"INR": 0.011,
	"AUD": 0.61,
	"CAD": 0.68,
	"CHF": 1.05,
	"SEK": 0.088,
	"NOK": 0.087,
	"DKK": 0.13,
	"SGD": 0.68,
	"HKD": 0.12,
	"NZD": 0.56,
	"THB": 0.026,
	"MXN": 0.054,
	"BRL": 0.18,
	"AED": 0.25,
}

// ConvertToEUR converts amount from the given currency. The second return is
// false when the currency is unknown; the amount then passes through
// unconverted and the caller decides how loudly to warn.
func ConvertToEUR(amount float64, currency string) (float64, bool) {
	rate, ok := ratesToEUR[strings.ToUpper(strings.TrimSpace(currency))]
	if !ok {
		return amount, false
	}
	return amount * rate, true
}
