package utils

import "time"

const isoDate = "2006-01-02"

func FormatISODate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(isoDate)
}

func ParseISODate(s string) (time.Time, error) {
	return time.Parse(isoDate, s)
}

// NightsBetween returns the number of nights in a stay, never less than 1.
func NightsBetween(checkIn, checkOut time.Time) int {
	nights := int(checkOut.Sub(checkIn).Hours() / 24)
	if nights < 1 {
		return 1
	}
	return nights
}
