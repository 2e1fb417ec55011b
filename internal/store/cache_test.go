package store

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/mrukavishnikov/claude-pulse/internal/models"
)

func TestCacheRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cache.json")
	now := time.Unix(1000, 0)

	WriteCache(path, Cache{
		Timestamp: 1000,
		Line:      "Session 42%",
		Usage:     &models.UsageSnapshot{Session: &models.UsageWindow{Utilization: 42}},
		Plan:      "Pro",
	})

	got := ReadCache(path, 30*time.Second, now.Add(10*time.Second))
	if got == nil {
		t.Fatalf("fresh cache missed")
	}
	if got.Line != "Session 42%" || got.Plan != "Pro" {
		t.Errorf("cache = %+v", got)
	}
	if got.Usage == nil || got.Usage.SessionPct() != 42 {
		t.Errorf("usage snapshot lost: %+v", got.Usage)
	}
}

func TestCacheExpiry(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cache.json")
	WriteCache(path, Cache{Timestamp: 1000, Line: "x"})

	if got := ReadCache(path, 30*time.Second, time.Unix(1030, 0)); got != nil {
		t.Errorf("cache served at exactly ttl age")
	}
	if got := ReadCache(path, 30*time.Second, time.Unix(2000, 0)); got != nil {
		t.Errorf("stale cache served")
	}
}

func TestCacheMissingAndCorrupt(t *testing.T) {
	dir := t.TempDir()

	if got := ReadCache(filepath.Join(dir, "nope.json"), time.Minute, time.Now()); got != nil {
		t.Errorf("missing cache returned data")
	}

	path := filepath.Join(dir, "bad.json")
	if err := os.WriteFile(path, []byte("{corrupt"), 0o600); err != nil {
		t.Fatal(err)
	}
	if got := ReadCache(path, time.Minute, time.Now()); got != nil {
		t.Errorf("corrupt cache returned data")
	}
}

func TestDropCache(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cache.json")
	WriteCache(path, Cache{Timestamp: 1, Line: "x"})

	DropCache(path)
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Errorf("cache file survived drop")
	}
	// Dropping a missing cache is a no-op, not a panic.
	DropCache(path)
}

func TestStatsFileRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "stats.json")

	s := models.DailyStats{
		FirstSeen:      "2026-01-01",
		TotalSessions:  12,
		DailyDates:     []string{"2026-01-01", "2026-01-02"},
		CurrentStreak:  2,
		LongestStreak:  5,
		LastUpdateDate: "2026-01-02",
	}
	if err := WriteStats(path, s); err != nil {
		t.Fatalf("WriteStats() error: %v", err)
	}

	got := ReadStats(path)
	if got.TotalSessions != 12 || got.LongestStreak != 5 || len(got.DailyDates) != 2 {
		t.Errorf("ReadStats() = %+v", got)
	}
}

func TestStatsFileDegradesToZero(t *testing.T) {
	dir := t.TempDir()

	if got := ReadStats(filepath.Join(dir, "nope.json")); got.TotalSessions != 0 {
		t.Errorf("missing stats = %+v, want zero value", got)
	}

	path := filepath.Join(dir, "bad.json")
	if err := os.WriteFile(path, []byte("not json"), 0o600); err != nil {
		t.Fatal(err)
	}
	if got := ReadStats(path); got.TotalSessions != 0 || got.CurrentStreak != 0 {
		t.Errorf("corrupt stats = %+v, want zero value", got)
	}
}
