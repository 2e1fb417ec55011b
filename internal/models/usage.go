// Package models defines data structures and domain types.
package models

import "time"

// UsageWindow is one quota window from the usage API: percentage used plus
// the moment the window rolls over.
type UsageWindow struct {
	ResetsAt    *time.Time `json:"resets_at,omitempty"`
	Utilization float64    `json:"utilization"`
}

// ExtraUsage tracks paid overflow credits. Monetary amounts are stored in
// minor currency units (cents) so display math never touches floats.
type ExtraUsage struct {
	Enabled         bool    `json:"enabled"`
	Utilization     float64 `json:"utilization"`
	UsedMinorUnits  int64   `json:"used_minor_units"`
	LimitMinorUnits int64   `json:"limit_minor_units"`
}

// UsageSnapshot is one fetch of account quota state. Any sub-record may be
// absent; consumers default the missing field rather than erroring.
type UsageSnapshot struct {
	Session *UsageWindow `json:"session,omitempty"`
	Weekly  *UsageWindow `json:"weekly,omitempty"`
	Extra   *ExtraUsage  `json:"extra,omitempty"`
}

// SessionPct returns the clamped session utilization, 0 when absent.
func (s *UsageSnapshot) SessionPct() float64 {
	if s == nil || s.Session == nil {
		return 0
	}
	return clampPct(s.Session.Utilization)
}

// WeeklyPct returns the clamped weekly utilization, 0 when absent.
func (s *UsageSnapshot) WeeklyPct() float64 {
	if s == nil || s.Weekly == nil {
		return 0
	}
	return clampPct(s.Weekly.Utilization)
}

func clampPct(pct float64) float64 {
	if pct < 0 {
		return 0
	}
	if pct > 100 {
		return 100
	}
	return pct
}
