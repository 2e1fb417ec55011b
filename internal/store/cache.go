package store

import (
	"encoding/json"
	"os"
	"time"

	"github.com/mrukavishnikov/claude-pulse/internal/models"
)

// Cache holds the last rendered line together with the usage data behind
// it, so animated themes can re-render a fresh frame on every invocation
// without re-hitting the API.
type Cache struct {
	Timestamp float64               `json:"timestamp"`
	Line      string                `json:"line"`
	Usage     *models.UsageSnapshot `json:"usage,omitempty"`
	Plan      string                `json:"plan,omitempty"`
}

// ReadCache returns the cache when it is fresher than ttl, nil otherwise.
// A missing or corrupt cache file is simply a miss.
func ReadCache(path string, ttl time.Duration, now time.Time) *Cache {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil
	}
	var c Cache
	if err := json.Unmarshal(data, &c); err != nil {
		return nil
	}
	age := float64(now.UnixNano())/float64(time.Second) - c.Timestamp
	if age >= ttl.Seconds() {
		return nil
	}
	return &c
}

// WriteCache persists the cache atomically. Failures are swallowed; a cache
// write must never fail the status line.
func WriteCache(path string, c Cache) {
	data, err := json.Marshal(c)
	if err != nil {
		return
	}
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return
	}
	if err := os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
	}
}

// DropCache removes the cache file so the next invocation renders fresh.
// Used by config commands so a new theme takes effect immediately.
func DropCache(path string) {
	_ = os.Remove(path)
}
