package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/mrukavishnikov/claude-pulse/internal/render"
)

func useTempStateDir(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("XDG_CACHE_HOME", dir)
	t.Setenv("LOCALAPPDATA", dir)
	return dir
}

func TestLoadDefaultsWhenMissing(t *testing.T) {
	useTempStateDir(t)

	s := Load()
	if s.Theme != "default" {
		t.Errorf("theme = %q, want default", s.Theme)
	}
	if s.CacheTTLSeconds != DefaultCacheTTLSeconds {
		t.Errorf("cache ttl = %d, want %d", s.CacheTTLSeconds, DefaultCacheTTLSeconds)
	}
	if !s.Show["session"] || !s.Show["weekly"] || s.Show["streak"] {
		t.Errorf("show defaults wrong: %v", s.Show)
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	useTempStateDir(t)

	s := Defaults()
	s.Theme = "ocean"
	s.BarWidth = 12
	s.Show["streak"] = true
	s.Show["timer"] = false
	if err := Save(s); err != nil {
		t.Fatalf("Save() error: %v", err)
	}

	got := Load()
	if got.Theme != "ocean" || got.BarWidth != 12 {
		t.Errorf("Load() = theme %q width %d, want ocean 12", got.Theme, got.BarWidth)
	}
	if !got.Show["streak"] || got.Show["timer"] {
		t.Errorf("show toggles lost: %v", got.Show)
	}
}

func TestLoadPartialFileKeepsDefaults(t *testing.T) {
	dir := useTempStateDir(t)

	// A file written by an older version knows only about the theme.
	path := filepath.Join(dir, "claude-pulse", "config.json")
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(`{"theme":"candy"}`), 0o600); err != nil {
		t.Fatal(err)
	}

	s := Load()
	if s.Theme != "candy" {
		t.Errorf("theme = %q, want candy", s.Theme)
	}
	if s.BarWidth != render.DefaultBarWidth {
		t.Errorf("bar width = %d, want default %d", s.BarWidth, render.DefaultBarWidth)
	}
	if !s.RainbowBars || !s.Animate {
		t.Errorf("bool defaults zeroed by partial file")
	}
}

func TestLoadCorruptFileYieldsDefaults(t *testing.T) {
	dir := useTempStateDir(t)
	path := filepath.Join(dir, "claude-pulse", "config.json")
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte("{not json"), 0o600); err != nil {
		t.Fatal(err)
	}

	s := Load()
	if s.Theme != "default" {
		t.Errorf("corrupt config changed theme: %q", s.Theme)
	}
}

func TestEnvOverrides(t *testing.T) {
	useTempStateDir(t)
	t.Setenv("CLAUDE_PULSE_THEME", "neon")
	t.Setenv("CLAUDE_PULSE_CACHE_TTL", "90")
	t.Setenv("CLAUDE_PULSE_ANIMATE", "off")

	s := Load()
	if s.Theme != "neon" {
		t.Errorf("theme = %q, want env override neon", s.Theme)
	}
	if s.CacheTTLSeconds != 90 {
		t.Errorf("cache ttl = %d, want 90", s.CacheTTLSeconds)
	}
	if s.Animate {
		t.Errorf("animate should be off via env")
	}
}

func TestEnvOverridesStayOutOfSavedFile(t *testing.T) {
	useTempStateDir(t)
	t.Setenv("CLAUDE_PULSE_THEME", "ocean")

	s := LoadFile()
	if s.Theme != "default" {
		t.Fatalf("LoadFile theme = %q, want default untouched by env", s.Theme)
	}
	s.BarWidth = 12
	if err := Save(s); err != nil {
		t.Fatalf("Save() error: %v", err)
	}

	data, err := os.ReadFile(Path())
	if err != nil {
		t.Fatal(err)
	}
	if strings.Contains(string(data), "ocean") {
		t.Errorf("env override leaked into config file: %s", data)
	}
	if got := LoadFile(); got.Theme != "default" || got.BarWidth != 12 {
		t.Errorf("reloaded settings = theme %q width %d, want default/12", got.Theme, got.BarWidth)
	}
	// The effective view still applies the override.
	if got := Load(); got.Theme != "ocean" {
		t.Errorf("Load theme = %q, want env override ocean", got.Theme)
	}
}

func TestDotEnvOverrides(t *testing.T) {
	dir := useTempStateDir(t)
	envPath := filepath.Join(dir, "claude-pulse", ".env")
	if err := os.MkdirAll(filepath.Dir(envPath), 0o750); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(envPath, []byte("CLAUDE_PULSE_BAR_STYLE=dot\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	// godotenv only fills unset variables; make sure this one is unset.
	t.Setenv("CLAUDE_PULSE_BAR_STYLE", "")
	os.Unsetenv("CLAUDE_PULSE_BAR_STYLE")

	s := Load()
	if s.BarStyle != "dot" {
		t.Errorf("bar style = %q, want dot from .env", s.BarStyle)
	}
}

func TestRenderConfig(t *testing.T) {
	s := Defaults()
	s.Layout = "compact"
	s.ResetTimeMode = "full"
	s.Show["runway"] = true

	cfg := s.RenderConfig(120)
	if cfg.Layout != render.LayoutCompact {
		t.Errorf("layout = %q, want compact", cfg.Layout)
	}
	if cfg.ResetMode != render.ResetModeFull {
		t.Errorf("reset mode = %q, want full", cfg.ResetMode)
	}
	if !cfg.Fields.Runway || !cfg.Fields.Session {
		t.Errorf("fields wrong: %+v", cfg.Fields)
	}
	if cfg.TermColumns != 120 {
		t.Errorf("term columns = %d, want 120", cfg.TermColumns)
	}
}
