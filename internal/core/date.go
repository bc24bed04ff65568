package core

import (
	"strings"
	"time"
)

// DateLayout is the canonical zero-padded form stored in the backing
// table. Lexicographic comparison on this form matches chronological
// order, which is what the reporting engine relies on.
const DateLayout = "2006-01-02"

// dateLayouts are tried in order when normalizing input. Timestamped
// forms are converted to the local calendar day.
var dateLayouts = []string{
	DateLayout,
	"2006-1-2",
	"2006/01/02",
	time.RFC3339,
	"2006-01-02T15:04:05",
	"01/02/2006",
	"1/2/2006",
}

// CanonicalDate normalizes a date string to YYYY-MM-DD in local
// calendar time. Returns ok=false when the input cannot be parsed.
func CanonicalDate(s string) (string, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", false
	}
	for _, layout := range dateLayouts {
		t, err := time.Parse(layout, s)
		if err != nil {
			continue
		}
		if layout == time.RFC3339 {
			t = t.Local()
		}
		return t.Format(DateLayout), true
	}
	return "", false
}

// FormatDate renders a time as a canonical local calendar day.
func FormatDate(t time.Time) string {
	return t.Local().Format(DateLayout)
}
