// Package dateutil canonicalizes dates to YYYY-MM-DD using local calendar
// fields. Servers frequently return UTC midnight timestamps; formatting
// those through UTC shifts the day for clients west of Greenwich, so every
// helper here reads year/month/day in the local zone and never converts.
package dateutil

import (
	"strings"
	"time"
)

// Layout is the canonical wire format for dates.
const Layout = "2006-01-02"

// LocalDate formats t as YYYY-MM-DD from its local calendar fields.
func LocalDate(t time.Time) string {
	return t.Format(Layout)
}

// Today returns the current local date as YYYY-MM-DD.
func Today() string {
	return LocalDate(time.Now())
}

// FirstOfMonth returns the first day of t's month as YYYY-MM-DD.
func FirstOfMonth(t time.Time) string {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location()).Format(Layout)
}

// ExtractYMD normalizes a date-like string to YYYY-MM-DD.
//
// ISO datetimes are truncated at 'T', SQL datetimes at the space, and
// already-canonical strings pass through. Anything else is parsed and
// reduced via LocalDate. Returns "" when the value is unparseable.
//
// Daily-report filtering compares the truncated strings directly; parsing
// into time.Time and back would reintroduce the timezone shift this
// package exists to avoid.
func ExtractYMD(value string) string {
	v := strings.TrimSpace(value)
	if v == "" {
		return ""
	}

	if i := strings.IndexByte(v, 'T'); i >= 0 {
		v = v[:i]
	} else if i := strings.IndexByte(v, ' '); i >= 0 {
		v = v[:i]
	}

	if isCanonical(v) {
		return v
	}

	for _, layout := range []string{Layout, "2006/01/02", "01/02/2006", time.RFC3339} {
		if t, err := time.Parse(layout, v); err == nil {
			return LocalDate(t)
		}
	}
	return ""
}

// SameDay reports whether two date-like strings fall on the same calendar
// day after normalization. Unparseable values never match.
func SameDay(a, b string) bool {
	na := ExtractYMD(a)
	return na != "" && na == ExtractYMD(b)
}

func isCanonical(v string) bool {
	if len(v) != 10 || v[4] != '-' || v[7] != '-' {
		return false
	}
	for i, c := range v {
		if i == 4 || i == 7 {
			continue
		}
		if c < '0' || c > '9' {
			return false
		}
	}
	return true
}
