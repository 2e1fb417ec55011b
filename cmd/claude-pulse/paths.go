package main

import (
	"path/filepath"

	"github.com/mrukavishnikov/claude-pulse/internal/config"
)

func cachePath() string {
	return filepath.Join(config.StateDir(), "cache.json")
}

func historyPath() string {
	return filepath.Join(config.StateDir(), "history.db")
}
