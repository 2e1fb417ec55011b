package models

import "time"

// DateLayout is the calendar-date form used everywhere stats are persisted.
const DateLayout = "2006-01-02"

// DailyStats tracks daily-usage streaks and lifetime session counts. Dates
// are calendar days in DateLayout form; DailyDates is an append-only set.
type DailyStats struct {
	FirstSeen      string   `json:"first_seen"`
	TotalSessions  int      `json:"total_sessions"`
	DailyDates     []string `json:"daily_dates"`
	CurrentStreak  int      `json:"current_streak"`
	LongestStreak  int      `json:"longest_streak"`
	LastUpdateDate string   `json:"last_update_date"`
}

// HasDate reports whether the given calendar date is already recorded.
func (s *DailyStats) HasDate(date string) bool {
	for _, d := range s.DailyDates {
		if d == date {
			return true
		}
	}
	return false
}

// Day truncates a timestamp to its calendar date in local time.
func Day(t time.Time) string {
	return t.Local().Format(DateLayout)
}
