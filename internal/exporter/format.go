package exporter

import (
	"fmt"
	"strconv"
	"time"

	"tradestats/pkg/contracts/domain"
)

// timeLayout is used for every timestamp written to text exports
const timeLayout = "2006-01-02 15:04:05"

// formatFloat formats a float64 value with exactly 2 decimal places
func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', 2, 64)
}

// formatPrice keeps the precision the broker reported
func formatPrice(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

// formatPercent renders a [0, 1] fraction as a percentage
func formatPercent(fraction float64) string {
	return formatFloat(fraction*100) + "%"
}

// formatTime renders t in its own location; the zero time is blank
func formatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(timeLayout)
}

// formatOptional renders a stop-loss or take-profit level; nil is blank
func formatOptional(v *float64) string {
	if v == nil {
		return ""
	}
	return formatPrice(*v)
}

// FormatMoney renders an amount with two decimals followed by the currency
// code when one is known.
func FormatMoney(amount float64, currency string) string {
	if currency == "" {
		return formatFloat(amount)
	}
	return fmt.Sprintf("%s %s", formatFloat(amount), currency)
}

// FormatRatio renders a ratio, keeping its infinite and none sentinels
func FormatRatio(r domain.Ratio) string {
	return r.String()
}

// FormatDuration renders a holding time rounded to the second
func FormatDuration(d time.Duration) string {
	return d.Round(time.Second).String()
}
