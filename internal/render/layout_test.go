package render

import (
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/x/ansi"

	"github.com/mrukavishnikov/claude-pulse/internal/models"
)

func testSnapshot(now time.Time) *models.UsageSnapshot {
	sessionReset := now.Add(2*time.Hour + 5*time.Minute + 30*time.Second)
	return &models.UsageSnapshot{
		Session: &models.UsageWindow{Utilization: 42, ResetsAt: &sessionReset},
		Weekly:  &models.UsageWindow{Utilization: 67},
	}
}

func testConfig() Config {
	return Config{
		Theme:           "default",
		TextColor:       "auto",
		BarStyle:        "classic",
		BarWidth:        8,
		Layout:          LayoutStandard,
		Fields:          Fields{Session: true, Weekly: true, Plan: true, Timer: true},
		Currency:        "$",
		ResetMode:       ResetModeCountdown,
		WeeklyResetMode: ResetModeAuto,
		ContextFormat:   "percent",
	}
}

func TestStatusLineEndToEnd(t *testing.T) {
	now := time.Date(2026, 1, 5, 12, 0, 0, 0, time.UTC)
	line := StatusLine(testSnapshot(now), Derived{Plan: "Max 20x"}, testConfig(), false, now)

	plain := ansi.Strip(line)
	for _, want := range []string{"Session", "42%", "Weekly", "67%", "2h 05m", "Max 20x"} {
		if !strings.Contains(plain, want) {
			t.Errorf("status line missing %q: %q", want, plain)
		}
	}
	if !strings.Contains(plain, " | ") {
		t.Errorf("segments not separated: %q", plain)
	}
}

func TestAssembleLayoutModes(t *testing.T) {
	now := time.Date(2026, 1, 5, 12, 0, 0, 0, time.UTC)
	snapshot := testSnapshot(now)

	tests := []struct {
		name    string
		layout  LayoutMode
		want    []string
		absent  []string
	}{
		{name: "Standard", layout: LayoutStandard, want: []string{"Session", "Weekly"}},
		{name: "Compact", layout: LayoutCompact, want: []string{"S ", "W "}, absent: []string{"Session", "Weekly"}},
		{name: "Minimal", layout: LayoutMinimal, absent: []string{"Session", "Weekly", "S ", "W "}},
		{name: "PercentFirst", layout: LayoutPercentFirst, want: []string{"42% ", "Session"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := testConfig()
			cfg.Layout = tt.layout
			cfg.Fields.Plan = false
			plain := ansi.Strip(Assemble(snapshot, Derived{}, cfg, now))

			for _, want := range tt.want {
				if !strings.Contains(plain, want) {
					t.Errorf("%s layout missing %q: %q", tt.layout, want, plain)
				}
			}
			for _, absent := range tt.absent {
				if strings.Contains(plain, absent) {
					t.Errorf("%s layout should not contain %q: %q", tt.layout, absent, plain)
				}
			}
		})
	}
}

func TestAssemblePercentFirstLeadsWithValue(t *testing.T) {
	now := time.Date(2026, 1, 5, 12, 0, 0, 0, time.UTC)
	cfg := testConfig()
	cfg.Layout = LayoutPercentFirst
	cfg.Fields = Fields{Session: true}

	plain := ansi.Strip(Assemble(testSnapshot(now), Derived{}, cfg, now))
	if !strings.HasPrefix(plain, "42% ") {
		t.Errorf("percent-first segment = %q, want value first", plain)
	}
}

func TestAssembleExtra(t *testing.T) {
	now := time.Date(2026, 1, 5, 12, 0, 0, 0, time.UTC)
	cfg := testConfig()
	cfg.Fields = Fields{Extra: true}

	t.Run("Enabled", func(t *testing.T) {
		snapshot := &models.UsageSnapshot{
			Extra: &models.ExtraUsage{
				Enabled:         true,
				Utilization:     25,
				UsedMinorUnits:  1025,
				LimitMinorUnits: 4000,
			},
		}
		plain := ansi.Strip(Assemble(snapshot, Derived{}, cfg, now))
		if !strings.Contains(plain, "$10/$40") {
			t.Errorf("extra segment = %q, want amounts", plain)
		}
	})

	t.Run("Disabled", func(t *testing.T) {
		plain := ansi.Strip(Assemble(&models.UsageSnapshot{}, Derived{}, cfg, now))
		if !strings.Contains(plain, "none") {
			t.Errorf("extra segment = %q, want %q marker", plain, "none")
		}
	})
}

func TestAssembleExtraAutoShow(t *testing.T) {
	now := time.Date(2026, 1, 5, 12, 0, 0, 0, time.UTC)
	gifted := &models.UsageSnapshot{
		Extra: &models.ExtraUsage{
			Enabled:         true,
			Utilization:     25,
			UsedMinorUnits:  1025,
			LimitMinorUnits: 4000,
		},
	}

	t.Run("CreditsShowWithToggleOff", func(t *testing.T) {
		cfg := testConfig()
		cfg.Fields = Fields{}
		plain := ansi.Strip(Assemble(gifted, Derived{}, cfg, now))
		if !strings.Contains(plain, "$10/$40") {
			t.Errorf("gifted credits not surfaced: %q", plain)
		}
	})

	t.Run("ExplicitHideWins", func(t *testing.T) {
		cfg := testConfig()
		cfg.Fields = Fields{}
		cfg.ExtraHidden = true
		plain := ansi.Strip(Assemble(gifted, Derived{}, cfg, now))
		if strings.Contains(plain, "$10") {
			t.Errorf("hidden extra still rendered: %q", plain)
		}
	})

	t.Run("ZeroLimitStaysOff", func(t *testing.T) {
		cfg := testConfig()
		cfg.Fields = Fields{}
		snapshot := &models.UsageSnapshot{
			Extra: &models.ExtraUsage{Enabled: true},
		}
		plain := ansi.Strip(Assemble(snapshot, Derived{}, cfg, now))
		if strings.Contains(plain, "$0") || strings.Contains(plain, "none") {
			t.Errorf("creditless extra rendered without the toggle: %q", plain)
		}
	})

	t.Run("ToggleForcesNoneMarker", func(t *testing.T) {
		cfg := testConfig()
		cfg.Fields = Fields{Extra: true}
		plain := ansi.Strip(Assemble(&models.UsageSnapshot{}, Derived{}, cfg, now))
		if !strings.Contains(plain, "none") {
			t.Errorf("toggled-on extra without credits = %q, want %q marker", plain, "none")
		}
	})
}

func TestAssembleWeeklyOmittedWhenAbsent(t *testing.T) {
	now := time.Date(2026, 1, 5, 12, 0, 0, 0, time.UTC)
	snapshot := testSnapshot(now)
	snapshot.Weekly = nil

	plain := ansi.Strip(Assemble(snapshot, Derived{}, testConfig(), now))
	if strings.Contains(plain, "Weekly") {
		t.Errorf("missing weekly record still rendered a segment: %q", plain)
	}
	if !strings.Contains(plain, "Session") || !strings.Contains(plain, "42%") {
		t.Errorf("session segment lost: %q", plain)
	}
}

func TestAssembleContextFormats(t *testing.T) {
	now := time.Date(2026, 1, 5, 12, 0, 0, 0, time.UTC)
	ctx := models.StdinContext{
		ModelName:    "Opus",
		ContextPct:   38,
		ContextUsed:  76000,
		ContextLimit: 200000,
	}

	tests := []struct {
		format string
		want   string
	}{
		{format: "percent", want: "38%"},
		{format: "tokens", want: "76k/200k"},
		{format: "full", want: "38% (76k/200k)"},
	}

	for _, tt := range tests {
		t.Run(tt.format, func(t *testing.T) {
			cfg := testConfig()
			cfg.Fields = Fields{Context: true}
			cfg.ContextFormat = tt.format
			plain := ansi.Strip(Assemble(&models.UsageSnapshot{}, Derived{Context: ctx}, cfg, now))
			if !strings.Contains(plain, tt.want) {
				t.Errorf("context %s = %q, want %q", tt.format, plain, tt.want)
			}
		})
	}
}

func TestAssembleStripsHostileDisplayText(t *testing.T) {
	now := time.Date(2026, 1, 5, 12, 0, 0, 0, time.UTC)
	cfg := testConfig()
	cfg.Fields = Fields{Plan: true, Model: true}
	derived := Derived{
		Plan:    "\x1b[31mPro\x1b[0m",
		Context: models.StdinContext{ModelName: "\x1b[35mOpus\x1b[0m"},
	}

	line := Assemble(&models.UsageSnapshot{}, derived, cfg, now)
	if strings.Contains(line, "\x1b[31m") || strings.Contains(line, "\x1b[35m") {
		t.Errorf("untrusted escapes leaked into the line: %q", line)
	}
	if !strings.Contains(line, "Pro") || !strings.Contains(line, "Opus") {
		t.Errorf("display text lost while stripping: %q", line)
	}
}

func TestAssembleStreakAndMilestone(t *testing.T) {
	now := time.Date(2026, 1, 5, 12, 0, 0, 0, time.UTC)
	cfg := testConfig()
	cfg.Fields = Fields{Streak: true}

	plain := ansi.Strip(Assemble(&models.UsageSnapshot{}, Derived{Streak: 5, Milestone: 30}, cfg, now))
	if !strings.Contains(plain, "Streak 5d") {
		t.Errorf("streak segment missing: %q", plain)
	}
	if !strings.HasSuffix(plain, "★ 30 sessions!") {
		t.Errorf("milestone suffix missing: %q", plain)
	}

	cfg.Layout = LayoutCompact
	plain = ansi.Strip(Assemble(&models.UsageSnapshot{}, Derived{Streak: 5}, cfg, now))
	if !strings.Contains(plain, "5d") || strings.Contains(plain, "Streak") {
		t.Errorf("compact streak = %q, want bare day count", plain)
	}
}

func TestAssembleAnalyticsSegments(t *testing.T) {
	now := time.Date(2026, 1, 5, 12, 0, 0, 0, time.UTC)
	cfg := testConfig()
	cfg.Fields = Fields{Trend: true, Runway: true, Status: true}
	derived := Derived{Sparkline: "▁▂▄▆", Runway: "~2h 15m", Status: "Steady burn"}

	plain := ansi.Strip(Assemble(&models.UsageSnapshot{}, derived, cfg, now))
	want := "▁▂▄▆ | ~2h 15m | Steady burn"
	if plain != want {
		t.Errorf("analytics line = %q, want %q", plain, want)
	}
}

func TestClampBarWidth(t *testing.T) {
	now := time.Date(2026, 1, 5, 12, 0, 0, 0, time.UTC)
	snapshot := testSnapshot(now)

	tests := []struct {
		name    string
		columns int
		minFill int
		maxFill int
	}{
		{name: "Unknown", columns: 0, minFill: 8, maxFill: 8},
		{name: "Wide", columns: 200, minFill: 8, maxFill: 8},
		{name: "Narrow", columns: 50, minFill: 2, maxFill: 7},
		{name: "Tiny", columns: 10, minFill: 2, maxFill: 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := testConfig()
			cfg.Fields = Fields{Session: true, Weekly: true}
			cfg.TermColumns = tt.columns

			plain := ansi.Strip(Assemble(snapshot, Derived{}, cfg, now))
			style := GetBarStyle(cfg.BarStyle)
			barLen := strings.Count(plain, string(style.Fill)) + strings.Count(plain, string(style.Empty))
			perBar := barLen / 2
			if perBar < tt.minFill || perBar > tt.maxFill {
				t.Errorf("columns %d: bar width %d, want in [%d,%d]", tt.columns, perBar, tt.minFill, tt.maxFill)
			}
		})
	}
}

func TestStatusLineRainbowPlainBars(t *testing.T) {
	now := time.Date(2026, 1, 5, 12, 0, 0, 0, time.UTC)
	cfg := testConfig()
	cfg.Theme = RainbowTheme

	t.Run("RainbowBars", func(t *testing.T) {
		cfg.RainbowBars = true
		line := StatusLine(testSnapshot(now), Derived{}, cfg, false, now)
		// Every color on the line comes from the gradient.
		if !strings.Contains(line, "\x1b[38;2;") {
			t.Errorf("rainbow line missing truecolor output: %q", line)
		}
		if strings.Contains(line, GetTheme("default").Low) {
			t.Errorf("threshold colors leaked into full-rainbow mode: %q", line)
		}
	})

	t.Run("ThresholdBars", func(t *testing.T) {
		cfg.RainbowBars = false
		line := StatusLine(testSnapshot(now), Derived{}, cfg, false, now)
		// Bars keep their threshold colors, surrounding text is gradient.
		if !strings.Contains(line, GetTheme("default").Low) {
			t.Errorf("bar threshold color missing in preserve mode: %q", line)
		}
		if !strings.Contains(line, "\x1b[38;2;") {
			t.Errorf("text gradient missing in preserve mode: %q", line)
		}
	})
}

func TestParseLayoutMode(t *testing.T) {
	tests := []struct {
		input string
		want  LayoutMode
	}{
		{input: "standard", want: LayoutStandard},
		{input: "compact", want: LayoutCompact},
		{input: "minimal", want: LayoutMinimal},
		{input: "percent-first", want: LayoutPercentFirst},
		{input: "", want: LayoutStandard},
		{input: "weird", want: LayoutStandard},
	}
	for _, tt := range tests {
		if got := ParseLayoutMode(tt.input); got != tt.want {
			t.Errorf("ParseLayoutMode(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}
