// Package format renders amounts and dates the way the dashboard always
// displayed them: Indonesian rupiah with dot grouping and id-ID month names.
package format

import (
	"fmt"
	"math"
	"strings"
	"time"
)

var longMonths = [...]string{
	"Januari", "Februari", "Maret", "April", "Mei", "Juni",
	"Juli", "Agustus", "September", "Oktober", "November", "Desember",
}

var shortMonths = [...]string{
	"Jan", "Feb", "Mar", "Apr", "Mei", "Jun",
	"Jul", "Agu", "Sep", "Okt", "Nov", "Des",
}

// IDR formats an amount as "Rp 50.000" (no decimal digits, dot grouping)
func IDR(amount float64) string {
	n := int64(math.Round(amount))
	sign := ""
	if n < 0 {
		sign = "-"
		n = -n
	}
	return sign + "Rp " + group(n)
}

func group(n int64) string {
	s := fmt.Sprintf("%d", n)
	if len(s) <= 3 {
		return s
	}
	var parts []string
	for len(s) > 3 {
		parts = append([]string{s[len(s)-3:]}, parts...)
		s = s[:len(s)-3]
	}
	parts = append([]string{s}, parts...)
	return strings.Join(parts, ".")
}

// parseDate accepts the two date shapes the app stores: plain form dates
// ("2006-01-02") and full RFC3339 timestamps.
func parseDate(value string) (time.Time, bool) {
	if t, err := time.Parse("2006-01-02", value); err == nil {
		return t, true
	}
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t, true
	}
	return time.Time{}, false
}

// DateLong renders "2 Januari 2026"; unparseable input is passed through
func DateLong(value string) string {
	t, ok := parseDate(value)
	if !ok {
		return value
	}
	return fmt.Sprintf("%d %s %d", t.Day(), longMonths[t.Month()-1], t.Year())
}

// DateShort renders "2 Jan 2026"
func DateShort(value string) string {
	t, ok := parseDate(value)
	if !ok {
		return value
	}
	return fmt.Sprintf("%d %s %d", t.Day(), shortMonths[t.Month()-1], t.Year())
}

// MonthYear renders "Januari 2026" for a report period
func MonthYear(year int, month time.Month) string {
	return fmt.Sprintf("%s %d", longMonths[month-1], year)
}
