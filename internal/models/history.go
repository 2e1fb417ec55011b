package models

// HistorySample is one point in the rolling usage history: a unix timestamp
// and the session/weekly percentages observed at that moment. Samples are
// append-only and never mutated in place.
type HistorySample struct {
	T          int64   `json:"t"`
	SessionPct float64 `json:"session_pct"`
	WeeklyPct  float64 `json:"weekly_pct"`
}
