// Package stats tracks daily-usage streaks and session milestones.
package stats

import (
	"sort"
	"time"

	"github.com/mrukavishnikov/claude-pulse/internal/models"
)

// Milestones are the lifetime session counts that earn a one-time
// celebratory suffix on the status line.
var Milestones = []int{7, 30, 50, 100, 200, 365, 500, 1000}

// Update records a session for the given day. It is idempotent per calendar
// day: a repeat call the same day returns the stats unchanged and no
// milestone. The returned milestone is nonzero only on the call that crosses
// a milestone session count.
func Update(s models.DailyStats, today time.Time) (models.DailyStats, int) {
	date := models.Day(today)
	if s.LastUpdateDate == date {
		return s, 0
	}

	if s.FirstSeen == "" {
		s.FirstSeen = date
	}
	if !s.HasDate(date) {
		s.DailyDates = append(s.DailyDates, date)
	}
	s.TotalSessions++
	s.LastUpdateDate = date

	current, longest := streaks(s.DailyDates, today)
	s.CurrentStreak = current
	if longest > s.LongestStreak {
		s.LongestStreak = longest
	}

	milestone := 0
	for _, m := range Milestones {
		if s.TotalSessions == m {
			milestone = m
			break
		}
	}
	return s, milestone
}

// CurrentStreak recomputes the streak ending at today (or yesterday, the
// grace day) without mutating anything.
func CurrentStreak(s models.DailyStats, today time.Time) int {
	current, _ := streaks(s.DailyDates, today)
	return current
}

// streaks returns the current streak relative to today and the longest run
// anywhere in the recorded dates.
func streaks(dates []string, today time.Time) (current, longest int) {
	if len(dates) == 0 {
		return 0, 0
	}

	set := make(map[string]bool, len(dates))
	sorted := make([]string, 0, len(dates))
	for _, d := range dates {
		if !set[d] {
			set[d] = true
			sorted = append(sorted, d)
		}
	}
	sort.Strings(sorted)

	// Longest run of consecutive calendar days anywhere in the set.
	run := 1
	longest = 1
	for i := 1; i < len(sorted); i++ {
		prev, err1 := time.Parse(models.DateLayout, sorted[i-1])
		cur, err2 := time.Parse(models.DateLayout, sorted[i])
		if err1 != nil || err2 != nil {
			continue
		}
		if cur.Sub(prev) == 24*time.Hour {
			run++
		} else {
			run = 1
		}
		if run > longest {
			longest = run
		}
	}

	// Current streak must end at today or yesterday; an older tail counts
	// for nothing even though the dates stay recorded.
	day := today.Local()
	if !set[models.Day(day)] {
		day = day.AddDate(0, 0, -1)
		if !set[models.Day(day)] {
			return 0, longest
		}
	}
	for set[models.Day(day)] {
		current++
		day = day.AddDate(0, 0, -1)
	}
	return current, longest
}
