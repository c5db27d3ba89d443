package util

import (
	"fmt"
	"time"
)

// FormatDuration renders a lecture length as "m:ss" (or "h:mm:ss" past
// an hour). Examples: 65 -> "1:05", 3671 -> "1:01:11".
func FormatDuration(seconds int64) string {
	if seconds < 0 {
		seconds = 0
	}
	h := seconds / 3600
	m := (seconds % 3600) / 60
	s := seconds % 60
	if h > 0 {
		return fmt.Sprintf("%d:%02d:%02d", h, m, s)
	}
	return fmt.Sprintf("%d:%02d", m, s)
}

// FormatDateHuman formats a timestamp as "Jan 2, 2006".
// Zero times render as an empty string.
func FormatDateHuman(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format("Jan 2, 2006")
}

// FormatDateTime formats a timestamp as "2006-01-02 15:04".
// Zero times render as an empty string.
func FormatDateTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format("2006-01-02 15:04")
}
