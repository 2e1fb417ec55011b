package render

import (
	"fmt"
	"time"
)

// ResetTimeMode selects how a quota reset timestamp is displayed.
type ResetTimeMode string

const (
	// ResetModeCountdown renders remaining time ("3h 05m").
	ResetModeCountdown ResetTimeMode = "countdown"
	// ResetModeDate renders the local weekday and 12-hour clock ("Thu 3pm").
	ResetModeDate ResetTimeMode = "date"
	// ResetModeFull renders date and countdown joined by " · ".
	ResetModeFull ResetTimeMode = "full"
	// ResetModeAuto renders the date when the reset is a day or more away,
	// otherwise a countdown.
	ResetModeAuto ResetTimeMode = "auto"
)

// ParseResetTimeMode maps a config string onto a mode, defaulting to countdown.
func ParseResetTimeMode(s string) ResetTimeMode {
	switch ResetTimeMode(s) {
	case ResetModeDate, ResetModeFull, ResetModeAuto:
		return ResetTimeMode(s)
	default:
		return ResetModeCountdown
	}
}

// FormatResetTime renders an absolute reset timestamp for display. A reset
// at or before now is the literal "now".
func FormatResetTime(resetsAt time.Time, mode ResetTimeMode, now time.Time) string {
	remaining := resetsAt.Sub(now)
	if remaining <= 0 {
		return "now"
	}

	switch mode {
	case ResetModeDate:
		return formatResetDate(resetsAt)
	case ResetModeFull:
		return formatResetDate(resetsAt) + " · " + formatCountdown(remaining)
	case ResetModeAuto:
		if remaining >= 24*time.Hour {
			return formatResetDate(resetsAt)
		}
		return formatCountdown(remaining)
	default:
		return formatCountdown(remaining)
	}
}

func formatCountdown(remaining time.Duration) string {
	total := int(remaining.Seconds())
	days := total / 86400
	hours := (total % 86400) / 3600
	minutes := (total % 3600) / 60

	if days > 0 {
		return fmt.Sprintf("%dd %dh", days, hours)
	}
	if hours > 0 {
		return fmt.Sprintf("%dh %02dm", hours, minutes)
	}
	return fmt.Sprintf("%dm", minutes)
}

// formatResetDate renders the local weekday plus a 12-hour clock with no
// leading zero; midnight and noon come out as "12am" and "12pm".
func formatResetDate(at time.Time) string {
	local := at.Local()
	hour := local.Hour()
	minute := local.Minute()

	suffix := "am"
	if hour >= 12 {
		suffix = "pm"
	}
	h12 := hour % 12
	if h12 == 0 {
		h12 = 12
	}

	if minute == 0 {
		return fmt.Sprintf("%s %d%s", local.Format("Mon"), h12, suffix)
	}
	return fmt.Sprintf("%s %d:%02d%s", local.Format("Mon"), h12, minute, suffix)
}
