package store

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/mrukavishnikov/claude-pulse/internal/models"
)

// ReadStats loads the daily stats file. Missing or corrupt state comes back
// as zero-value stats, never an error.
func ReadStats(path string) models.DailyStats {
	data, err := os.ReadFile(path)
	if err != nil {
		return models.DailyStats{}
	}
	var s models.DailyStats
	if err := json.Unmarshal(data, &s); err != nil {
		return models.DailyStats{}
	}
	return s
}

// WriteStats persists the daily stats atomically.
func WriteStats(path string, s models.DailyStats) error {
	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode stats: %w", err)
	}
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return fmt.Errorf("failed to write stats: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("failed to rename stats: %w", err)
	}
	return nil
}
