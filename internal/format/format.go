// Package format holds small presentation helpers exposed to templates.
package format

import (
	"strings"
	"time"
)

// FmtDate formats t for display, e.g. "Mar 1, 2025". Zero times render empty.
func FmtDate(t time.Time, lang string) string {
	if t.IsZero() {
		return ""
	}
	switch strings.ToLower(lang) {
	case "sv", "ja":
		return t.Format("2006-01-02")
	default:
		return t.Format("Jan 2, 2006")
	}
}

// ISODate formats t for a <time datetime> attribute.
func ISODate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(time.RFC3339)
}
