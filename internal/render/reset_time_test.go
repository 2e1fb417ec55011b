package render

import (
	"strings"
	"testing"
	"time"
)

func TestFormatResetTimeCountdown(t *testing.T) {
	now := time.Date(2026, 1, 5, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name      string
		remaining time.Duration
		want      string
	}{
		{name: "Past", remaining: -time.Minute, want: "now"},
		{name: "Exact", remaining: 0, want: "now"},
		{name: "MinutesOnly", remaining: 45 * time.Minute, want: "45m"},
		{name: "ZeroMinutes", remaining: 30 * time.Second, want: "0m"},
		{name: "PaddedMinutes", remaining: time.Hour + time.Minute, want: "1h 01m"},
		{name: "Hours", remaining: 2*time.Hour + 5*time.Minute, want: "2h 05m"},
		{name: "Days", remaining: 25 * time.Hour, want: "1d 1h"},
		{name: "WholeDays", remaining: 48 * time.Hour, want: "2d 0h"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FormatResetTime(now.Add(tt.remaining), ResetModeCountdown, now)
			if got != tt.want {
				t.Errorf("FormatResetTime(+%v) = %q, want %q", tt.remaining, got, tt.want)
			}
		})
	}
}

func TestFormatResetTimeDate(t *testing.T) {
	// 2026-01-05 is a Monday. Build times in the local zone so the 12-hour
	// formatting is exercised without depending on the host's offset.
	now := time.Date(2026, 1, 5, 1, 0, 0, 0, time.Local)

	tests := []struct {
		name string
		at   time.Time
		want string
	}{
		{name: "Afternoon", at: time.Date(2026, 1, 5, 15, 0, 0, 0, time.Local), want: "Mon 3pm"},
		{name: "WithMinutes", at: time.Date(2026, 1, 5, 15, 5, 0, 0, time.Local), want: "Mon 3:05pm"},
		{name: "Midnight", at: time.Date(2026, 1, 6, 0, 0, 0, 0, time.Local), want: "Tue 12am"},
		{name: "Noon", at: time.Date(2026, 1, 6, 12, 0, 0, 0, time.Local), want: "Tue 12pm"},
		{name: "Morning", at: time.Date(2026, 1, 7, 9, 30, 0, 0, time.Local), want: "Wed 9:30am"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FormatResetTime(tt.at, ResetModeDate, now); got != tt.want {
				t.Errorf("FormatResetTime(%v, date) = %q, want %q", tt.at, got, tt.want)
			}
		})
	}
}

func TestFormatResetTimeFull(t *testing.T) {
	now := time.Date(2026, 1, 5, 13, 0, 0, 0, time.Local)
	at := time.Date(2026, 1, 5, 15, 5, 0, 0, time.Local)

	got := FormatResetTime(at, ResetModeFull, now)
	if !strings.Contains(got, " · ") {
		t.Fatalf("full mode missing separator: %q", got)
	}
	if got != "Mon 3:05pm · 2h 05m" {
		t.Errorf("FormatResetTime(full) = %q, want %q", got, "Mon 3:05pm · 2h 05m")
	}
}

func TestFormatResetTimeAuto(t *testing.T) {
	now := time.Date(2026, 1, 5, 13, 0, 0, 0, time.Local)

	near := FormatResetTime(now.Add(2*time.Hour), ResetModeAuto, now)
	if near != "2h 00m" {
		t.Errorf("auto near = %q, want countdown", near)
	}
	far := FormatResetTime(now.Add(30*time.Hour), ResetModeAuto, now)
	if far != "Tue 7pm" {
		t.Errorf("auto far = %q, want date", far)
	}
}

func TestParseResetTimeMode(t *testing.T) {
	tests := []struct {
		input string
		want  ResetTimeMode
	}{
		{input: "countdown", want: ResetModeCountdown},
		{input: "date", want: ResetModeDate},
		{input: "full", want: ResetModeFull},
		{input: "auto", want: ResetModeAuto},
		{input: "", want: ResetModeCountdown},
		{input: "bogus", want: ResetModeCountdown},
	}
	for _, tt := range tests {
		if got := ParseResetTimeMode(tt.input); got != tt.want {
			t.Errorf("ParseResetTimeMode(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}
