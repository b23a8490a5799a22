package util

import (
	"strconv"
	"time"
)

// Layouts seen across the upstream feeds. ESPN drops seconds, the stats
// API emits bare dates and month-name game dates ("APR 09, 2025"; month
// case folds during parsing).
var layouts = []string{
	time.RFC3339,
	time.RFC3339Nano,
	"2006-01-02T15:04Z07:00",
	"2006-01-02",
	"Jan 02, 2006",
}

// ParseTime tries the known upstream layouts plus unix seconds. Returns
// (t, true) if any worked.
func ParseTime(s string) (time.Time, bool) {
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range layouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	if ts, err := strconv.ParseInt(s, 10, 64); err == nil && ts > 0 {
		return time.Unix(ts, 0), true
	}
	return time.Time{}, false
}

// ParseTimeDefault parses time or returns default if empty/invalid.
func ParseTimeDefault(s string, def time.Time) time.Time {
	if t, ok := ParseTime(s); ok {
		return t
	}
	return def
}

// NormalizeTimestamp rewrites a recognizable timestamp as RFC3339 UTC.
// Unrecognized input passes through unchanged rather than being dropped.
func NormalizeTimestamp(s string) string {
	if t, ok := ParseTime(s); ok {
		return t.UTC().Format(time.RFC3339)
	}
	return s
}
