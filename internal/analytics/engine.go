// Package analytics derives trend signals from the rolling usage history:
// velocity, a runway estimate, a sparkline, and a qualitative status label.
// Every function returns a "no result" sentinel instead of an error when the
// history is too thin or too flat to say anything useful.
package analytics

import (
	"fmt"
	"strings"
	"time"

	"github.com/mrukavishnikov/claude-pulse/internal/models"
)

const (
	// MaxSamples hard-caps the history length; oldest entries drop first.
	// The store enforces the cap and the retention window on append.
	MaxSamples = 2000
	// RetentionWindow is how far back samples are kept.
	RetentionWindow = 24 * time.Hour

	velocityWindow  = 5 * time.Minute
	runwayWindow    = 10 * time.Minute
	minVelocitySpan = 10 * time.Second

	// slopeEpsilon is the smallest per-second slope treated as real growth.
	// Flat or declining usage never yields a runway estimate.
	slopeEpsilon = 1e-9

	maxRunway = 24 * time.Hour
)

// window returns the samples with timestamps within span of now.
func window(samples []models.HistorySample, now time.Time, span time.Duration) []models.HistorySample {
	cutoff := now.Unix() - int64(span.Seconds())
	start := len(samples)
	for start > 0 && samples[start-1].T >= cutoff {
		start--
	}
	return samples[start:]
}

// Velocity returns the session usage growth in percent per minute over the
// recent window. ok is false with fewer than two samples or with a time span
// too short to divide by safely.
func Velocity(samples []models.HistorySample, now time.Time) (float64, bool) {
	recent := window(samples, now, velocityWindow)
	if len(recent) < 2 {
		return 0, false
	}
	first, last := recent[0], recent[len(recent)-1]
	span := last.T - first.T
	if span < int64(minVelocitySpan.Seconds()) {
		return 0, false
	}
	return (last.SessionPct - first.SessionPct) / float64(span) * 60, true
}

// Runway extrapolates the session trend to 100% with an ordinary
// least-squares fit over the recent window. ok is false when the history is
// too thin, the trend is flat or declining, or the estimate is beyond 24
// hours and therefore not actionable.
func Runway(samples []models.HistorySample, now time.Time) (time.Duration, bool) {
	recent := window(samples, now, runwayWindow)
	if len(recent) < 2 {
		return 0, false
	}

	// OLS slope of pct over t, in percent per second.
	n := float64(len(recent))
	var sumT, sumP, sumTT, sumTP float64
	base := recent[0].T
	for _, s := range recent {
		t := float64(s.T - base)
		sumT += t
		sumP += s.SessionPct
		sumTT += t * t
		sumTP += t * s.SessionPct
	}
	denom := n*sumTT - sumT*sumT
	if denom == 0 {
		return 0, false
	}
	slope := (n*sumTP - sumT*sumP) / denom
	if slope <= slopeEpsilon {
		return 0, false
	}

	current := recent[len(recent)-1].SessionPct
	remaining := (100 - current) / slope
	if remaining < 0 {
		remaining = 0
	}
	d := time.Duration(remaining * float64(time.Second))
	if d > maxRunway {
		return 0, false
	}
	return d, true
}

// FormatRunway renders a runway estimate as "~2h 15m" or "~45m".
func FormatRunway(d time.Duration) string {
	total := int(d.Minutes())
	hours := total / 60
	minutes := total % 60
	if hours > 0 {
		return fmt.Sprintf("~%dh %02dm", hours, minutes)
	}
	return fmt.Sprintf("~%dm", minutes)
}

// sparkGlyphs has seven intensity levels. The eighth (full block) is
// deliberately left out so a maxed sparkline cell can never be mistaken for
// a block-style bar glyph elsewhere in the same line.
var sparkGlyphs = []rune("▁▂▃▄▅▆▇")

// Sparkline quantizes the last n session samples into intensity glyphs.
// Returns "" with fewer than two samples.
func Sparkline(samples []models.HistorySample, n int) string {
	if n < 1 || len(samples) < 2 {
		return ""
	}
	if len(samples) > n {
		samples = samples[len(samples)-n:]
	}
	var b strings.Builder
	for _, s := range samples {
		level := int(s.SessionPct / 100 * float64(len(sparkGlyphs)))
		if level < 0 {
			level = 0
		}
		if level >= len(sparkGlyphs) {
			level = len(sparkGlyphs) - 1
		}
		b.WriteRune(sparkGlyphs[level])
	}
	return b.String()
}

// fastVelocity is the %/min rate above which mid-range labels read as
// accelerating.
const fastVelocity = 2.0

// StatusLabel maps usage and velocity onto one of eight qualitative bands.
// The two high-usage bands depend only on the percentage; velocity (when
// known) disambiguates the mid-range bands.
func StatusLabel(pct float64, velocity float64, hasVelocity bool) string {
	fast := hasVelocity && velocity >= fastVelocity
	switch {
	case pct >= 95:
		return "At the limit"
	case pct >= 80:
		return "Running hot"
	case pct >= 55:
		if fast {
			return "Burning quick"
		}
		return "Steady burn"
	case pct >= 30:
		if fast {
			return "Picking up"
		}
		return "Cruising"
	case pct >= 10:
		return "Warming up"
	default:
		return "Fresh start"
	}
}
