package util

import (
	"testing"
	"time"
)

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		name    string
		seconds int64
		want    string
	}{
		{"zero", 0, "0:00"},
		{"under a minute", 42, "0:42"},
		{"minutes", 65, "1:05"},
		{"just under an hour", 3599, "59:59"},
		{"hours", 3671, "1:01:11"},
		{"negative clamps to zero", -5, "0:00"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FormatDuration(tt.seconds); got != tt.want {
				t.Errorf("FormatDuration(%d) = %q, want %q", tt.seconds, got, tt.want)
			}
		})
	}
}

func TestFormatDateHuman(t *testing.T) {
	ts := time.Date(2025, time.March, 9, 14, 30, 0, 0, time.UTC)
	if got := FormatDateHuman(ts); got != "Mar 9, 2025" {
		t.Errorf("FormatDateHuman = %q, want %q", got, "Mar 9, 2025")
	}
	if got := FormatDateHuman(time.Time{}); got != "" {
		t.Errorf("FormatDateHuman(zero) = %q, want empty", got)
	}
}

func TestFormatDateTime(t *testing.T) {
	ts := time.Date(2025, time.March, 9, 14, 30, 0, 0, time.UTC)
	if got := FormatDateTime(ts); got != "2025-03-09 14:30" {
		t.Errorf("FormatDateTime = %q, want %q", got, "2025-03-09 14:30")
	}
}
