// Package config contains everything related to configuration
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strconv"

	"github.com/joho/godotenv"

	"github.com/mrukavishnikov/claude-pulse/internal/render"
)

// DefaultCacheTTLSeconds is how long a fetched usage snapshot stays fresh.
const DefaultCacheTTLSeconds = 30

// Settings holds the persisted user configuration. A fresh copy is loaded
// once per invocation and threaded through explicitly; nothing reads it from
// shared state after that.
type Settings struct {
	CacheTTLSeconds   int             `json:"cache_ttl_seconds"`
	Theme             string          `json:"theme"`
	RainbowBars       bool            `json:"rainbow_bars"`
	Animate           bool            `json:"animate"`
	TextColor         string          `json:"text_color"`
	Currency          string          `json:"currency"`
	BarStyle          string          `json:"bar_style"`
	BarWidth          int             `json:"bar_width"`
	Layout            string          `json:"layout"`
	ResetTimeMode     string          `json:"reset_time_mode"`
	WeeklyResetMode   string          `json:"weekly_reset_mode"`
	WeeklyTimerPrefix string          `json:"weekly_timer_prefix"`
	ContextFormat     string          `json:"context_format"`
	ExtraHidden       bool            `json:"extra_hidden,omitempty"`
	Show              map[string]bool `json:"show"`
}

// ShowKeys lists the toggleable status line parts in display order.
var ShowKeys = []string{
	"session", "weekly", "extra", "context", "plan", "streak", "model",
	"trend", "runway", "status", "timer", "update",
}

// defaultShow mirrors the origin defaults: the quota core on, analytics
// extras opt-in.
var defaultShow = map[string]bool{
	"session": true,
	"weekly":  true,
	"extra":   false,
	"context": false,
	"plan":    true,
	"streak":  false,
	"model":   false,
	"trend":   false,
	"runway":  false,
	"status":  false,
	"timer":   true,
	"update":  true,
}

// Defaults returns a Settings populated with every default value.
func Defaults() Settings {
	show := make(map[string]bool, len(defaultShow))
	for k, v := range defaultShow {
		show[k] = v
	}
	return Settings{
		CacheTTLSeconds:   DefaultCacheTTLSeconds,
		Theme:             "default",
		RainbowBars:       true,
		Animate:           true,
		TextColor:         "auto",
		Currency:          "$",
		BarStyle:          "classic",
		BarWidth:          render.DefaultBarWidth,
		Layout:            string(render.LayoutStandard),
		ResetTimeMode:     string(render.ResetModeCountdown),
		WeeklyResetMode:   string(render.ResetModeAuto),
		WeeklyTimerPrefix: "",
		ContextFormat:     "percent",
		Show:              show,
	}
}

// Load returns the effective settings: the stored file plus .env and
// CLAUDE_PULSE_* overrides. The overrides are transient; anything that
// mutates and re-saves settings must start from LoadFile instead, or the
// override would end up written into the config file.
func Load() Settings {
	s := LoadFile()

	// Optional .env next to the config, then process environment.
	_ = godotenv.Load(filepath.Join(StateDir(), ".env"))
	applyEnv(&s)

	return s
}

// LoadFile reads settings from the state directory and fills in defaults
// for missing keys, without environment overrides. A missing or corrupt
// file yields pure defaults; this never fails the status line.
func LoadFile() Settings {
	s := Defaults()

	data, err := os.ReadFile(Path())
	if err == nil {
		var stored storedSettings
		if json.Unmarshal(data, &stored) == nil {
			stored.mergeInto(&s)
		}
	}
	return s
}

// storedSettings shadows Settings with pointer fields so a stored file that
// predates a key keeps the default instead of zeroing it.
type storedSettings struct {
	CacheTTLSeconds   *int            `json:"cache_ttl_seconds"`
	Theme             *string         `json:"theme"`
	RainbowBars       *bool           `json:"rainbow_bars"`
	Animate           *bool           `json:"animate"`
	TextColor         *string         `json:"text_color"`
	Currency          *string         `json:"currency"`
	BarStyle          *string         `json:"bar_style"`
	BarWidth          *int            `json:"bar_width"`
	Layout            *string         `json:"layout"`
	ResetTimeMode     *string         `json:"reset_time_mode"`
	WeeklyResetMode   *string         `json:"weekly_reset_mode"`
	WeeklyTimerPrefix *string         `json:"weekly_timer_prefix"`
	ContextFormat     *string         `json:"context_format"`
	ExtraHidden       *bool           `json:"extra_hidden"`
	Show              map[string]bool `json:"show"`
}

func (st storedSettings) mergeInto(s *Settings) {
	if st.CacheTTLSeconds != nil && *st.CacheTTLSeconds > 0 {
		s.CacheTTLSeconds = *st.CacheTTLSeconds
	}
	if st.Theme != nil {
		s.Theme = *st.Theme
	}
	if st.RainbowBars != nil {
		s.RainbowBars = *st.RainbowBars
	}
	if st.Animate != nil {
		s.Animate = *st.Animate
	}
	if st.TextColor != nil {
		s.TextColor = *st.TextColor
	}
	if st.Currency != nil {
		s.Currency = *st.Currency
	}
	if st.BarStyle != nil {
		s.BarStyle = *st.BarStyle
	}
	if st.BarWidth != nil && *st.BarWidth > 0 {
		s.BarWidth = *st.BarWidth
	}
	if st.Layout != nil {
		s.Layout = *st.Layout
	}
	if st.ResetTimeMode != nil {
		s.ResetTimeMode = *st.ResetTimeMode
	}
	if st.WeeklyResetMode != nil {
		s.WeeklyResetMode = *st.WeeklyResetMode
	}
	if st.WeeklyTimerPrefix != nil {
		s.WeeklyTimerPrefix = *st.WeeklyTimerPrefix
	}
	if st.ContextFormat != nil {
		s.ContextFormat = *st.ContextFormat
	}
	if st.ExtraHidden != nil {
		s.ExtraHidden = *st.ExtraHidden
	}
	for k, v := range st.Show {
		if _, known := s.Show[k]; known {
			s.Show[k] = v
		}
	}
}

// applyEnv overrides individual settings from CLAUDE_PULSE_* variables.
func applyEnv(s *Settings) {
	if v := os.Getenv("CLAUDE_PULSE_THEME"); v != "" {
		s.Theme = v
	}
	if v := os.Getenv("CLAUDE_PULSE_BAR_STYLE"); v != "" {
		s.BarStyle = v
	}
	if v := os.Getenv("CLAUDE_PULSE_LAYOUT"); v != "" {
		s.Layout = v
	}
	if v := os.Getenv("CLAUDE_PULSE_CACHE_TTL"); v != "" {
		if secs, err := strconv.Atoi(v); err == nil && secs > 0 {
			s.CacheTTLSeconds = secs
		}
	}
	if v := os.Getenv("CLAUDE_PULSE_ANIMATE"); v != "" {
		s.Animate = v == "1" || v == "true" || v == "on"
	}
}

// Save writes settings atomically (temp file then rename) so a process
// killed mid-write never leaves a corrupt config behind.
func Save(s Settings) error {
	if err := os.MkdirAll(StateDir(), 0o750); err != nil {
		return fmt.Errorf("failed to create state directory: %w", err)
	}

	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode settings: %w", err)
	}

	path := Path()
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return fmt.Errorf("failed to write settings: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("failed to rename settings: %w", err)
	}
	return nil
}

// RenderConfig converts persisted settings into the immutable per-render
// configuration, resolving show toggles and mode strings.
func (s Settings) RenderConfig(termColumns int) render.Config {
	show := func(key string) bool {
		if v, ok := s.Show[key]; ok {
			return v
		}
		return defaultShow[key]
	}
	return render.Config{
		Theme:             s.Theme,
		TextColor:         s.TextColor,
		BarStyle:          s.BarStyle,
		BarWidth:          s.BarWidth,
		Layout:            render.ParseLayoutMode(s.Layout),
		Currency:          s.Currency,
		RainbowBars:       s.RainbowBars,
		Animate:           s.Animate,
		ResetMode:         render.ParseResetTimeMode(s.ResetTimeMode),
		WeeklyResetMode:   render.ParseResetTimeMode(s.WeeklyResetMode),
		WeeklyTimerPrefix: s.WeeklyTimerPrefix,
		ContextFormat:     s.ContextFormat,
		TermColumns:       termColumns,
		ExtraHidden:       s.ExtraHidden,
		Fields: render.Fields{
			Session: show("session"),
			Weekly:  show("weekly"),
			Extra:   show("extra"),
			Context: show("context"),
			Plan:    show("plan"),
			Streak:  show("streak"),
			Model:   show("model"),
			Trend:   show("trend"),
			Runway:  show("runway"),
			Status:  show("status"),
			Timer:   show("timer"),
		},
	}
}

// StateDir returns the shared state/cache directory, created on demand.
func StateDir() string {
	var base string
	if runtime.GOOS == "windows" {
		base = os.Getenv("LOCALAPPDATA")
		if base == "" {
			home, _ := os.UserHomeDir()
			base = filepath.Join(home, "AppData", "Local")
		}
	} else {
		base = os.Getenv("XDG_CACHE_HOME")
		if base == "" {
			home, _ := os.UserHomeDir()
			base = filepath.Join(home, ".cache")
		}
	}
	dir := filepath.Join(base, "claude-pulse")
	_ = os.MkdirAll(dir, 0o750)
	return dir
}

// Path returns the settings file location.
func Path() string {
	return filepath.Join(StateDir(), "config.json")
}
