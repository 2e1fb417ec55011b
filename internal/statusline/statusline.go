// Package statusline wires the fetch/persist/render pipeline behind the
// default command: one invocation in, one line of UTF-8 out. No error makes
// it past this package; every failure degrades to a fallback string.
package statusline

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/gen2brain/beeep"

	"github.com/mrukavishnikov/claude-pulse/internal/analytics"
	"github.com/mrukavishnikov/claude-pulse/internal/api"
	"github.com/mrukavishnikov/claude-pulse/internal/appupdate"
	"github.com/mrukavishnikov/claude-pulse/internal/config"
	"github.com/mrukavishnikov/claude-pulse/internal/logger"
	"github.com/mrukavishnikov/claude-pulse/internal/models"
	"github.com/mrukavishnikov/claude-pulse/internal/render"
	"github.com/mrukavishnikov/claude-pulse/internal/stats"
	"github.com/mrukavishnikov/claude-pulse/internal/store"
)

const updateIndicator = " \x1b[93m↑ Pulse Update\x1b[0m"

// App bundles the collaborators one invocation needs.
type App struct {
	Settings config.Settings
	StateDir string
	Client   *api.Client
	Checker  *appupdate.Checker
	Now      func() time.Time
}

// NewApp loads settings and builds the default collaborators.
func NewApp() *App {
	stateDir := config.StateDir()
	return &App{
		Settings: config.Load(),
		StateDir: stateDir,
		Client:   api.New(),
		Checker:  appupdate.New(stateDir),
		Now:      time.Now,
	}
}

// CachePath returns the render cache location.
func (a *App) CachePath() string {
	return filepath.Join(a.StateDir, "cache.json")
}

// HistoryPath returns the sample database location.
func (a *App) HistoryPath() string {
	return filepath.Join(a.StateDir, "history.db")
}

// StatsPath returns the daily stats file location.
func (a *App) StatsPath() string {
	return filepath.Join(a.StateDir, "stats.json")
}

// Run renders one status line for the host: serve from cache when fresh,
// otherwise fetch, persist, derive, render. Always writes exactly one line
// terminated by "\n" and never returns a failure to the host.
func (a *App) Run(stdin []byte, out io.Writer) {
	now := a.Now()
	stdinCtx := models.ParseStdinContext(stdin)
	ttl := time.Duration(a.Settings.CacheTTLSeconds) * time.Second

	if cached := store.ReadCache(a.CachePath(), ttl, now); cached != nil {
		line := cached.Line
		if a.Settings.Animate && cached.Usage != nil {
			// Re-render from cached data every call: a processing host gets
			// a fresh animation frame, an idle one a clean static render.
			line = a.buildLine(cached.Usage, cached.Plan, stdinCtx, now)
		}
		a.emit(out, line, now)
		return
	}

	token, plan := a.Client.Credentials()
	if token == "" {
		line := "No credentials found"
		store.WriteCache(a.CachePath(), store.Cache{
			Timestamp: unixSeconds(now), Line: line,
		})
		a.emit(out, line, now)
		return
	}

	snapshot, err := a.Client.FetchUsage(context.Background(), token)
	if err != nil {
		line := "Usage unavailable"
		if httpErr, ok := err.(*api.HTTPError); ok {
			line = fmt.Sprintf("API error: %d", httpErr.Code)
		}
		store.WriteCache(a.CachePath(), store.Cache{
			Timestamp: unixSeconds(now), Line: line,
		})
		a.emit(out, line, now)
		return
	}

	a.recordSample(snapshot, now)
	line := a.buildLine(snapshot, plan, stdinCtx, now)
	store.WriteCache(a.CachePath(), store.Cache{
		Timestamp: unixSeconds(now), Line: line, Usage: snapshot, Plan: plan,
	})
	a.emit(out, line, now)
}

// recordSample appends to the usage history. Storage failures are logged
// and forgotten; analytics simply sees fewer samples.
func (a *App) recordSample(snapshot *models.UsageSnapshot, now time.Time) {
	h, err := store.OpenHistory(a.HistoryPath())
	if err != nil {
		logger.Error("failed to open history", "error", err)
		return
	}
	defer func() { _ = h.Close() }()

	sample := models.HistorySample{
		T:          now.Unix(),
		SessionPct: snapshot.SessionPct(),
		WeeklyPct:  snapshot.WeeklyPct(),
	}
	if err := h.Append(context.Background(), sample); err != nil {
		logger.Error("failed to append sample", "error", err)
	}
}

// buildLine derives analytics and streak state and renders the final line.
func (a *App) buildLine(snapshot *models.UsageSnapshot, plan string, stdinCtx models.StdinContext, now time.Time) string {
	derived := render.Derived{
		Plan:    plan,
		Context: stdinCtx,
	}

	cfg := a.Settings.RenderConfig(terminalColumns())

	if cfg.Fields.Trend || cfg.Fields.Runway || cfg.Fields.Status {
		a.deriveAnalytics(&derived, snapshot, cfg, now)
	}
	if cfg.Fields.Streak {
		a.deriveStreak(&derived, now)
	}

	processing := store.NewAnimationState(a.StateDir).Processing(now)
	return render.StatusLine(snapshot, derived, cfg, processing, now)
}

func (a *App) deriveAnalytics(derived *render.Derived, snapshot *models.UsageSnapshot, cfg render.Config, now time.Time) {
	h, err := store.OpenHistory(a.HistoryPath())
	if err != nil {
		logger.Error("failed to open history", "error", err)
		return
	}
	defer func() { _ = h.Close() }()

	samples, err := h.All(context.Background())
	if err != nil {
		logger.Error("failed to load samples", "error", err)
		return
	}

	velocity, hasVelocity := analytics.Velocity(samples, now)
	if cfg.Fields.Trend {
		width := cfg.BarWidth
		if width < 1 {
			width = render.DefaultBarWidth
		}
		derived.Sparkline = analytics.Sparkline(samples, width)
	}
	if cfg.Fields.Runway {
		if runway, ok := analytics.Runway(samples, now); ok {
			derived.Runway = analytics.FormatRunway(runway)
		}
	}
	if cfg.Fields.Status {
		derived.Status = analytics.StatusLabel(snapshot.SessionPct(), velocity, hasVelocity)
	}
}

// deriveStreak records today's session and surfaces the streak plus any
// milestone crossed on this exact invocation.
func (a *App) deriveStreak(derived *render.Derived, now time.Time) {
	current := store.ReadStats(a.StatsPath())
	updated, milestone := stats.Update(current, now)
	if updated.LastUpdateDate != current.LastUpdateDate || updated.TotalSessions != current.TotalSessions {
		if err := store.WriteStats(a.StatsPath(), updated); err != nil {
			logger.Error("failed to write stats", "error", err)
		}
	}
	derived.Streak = updated.CurrentStreak
	derived.Milestone = milestone

	// Milestones happen once per install lifetime; worth an actual ping.
	if milestone > 0 {
		_ = beeep.Notify("Claude Pulse", fmt.Sprintf("%d sessions! Keep it rolling.", milestone), "")
	}
}

// emit appends the update indicator when one is due and writes the line as
// UTF-8 bytes with a bare "\n", never platform translation.
func (a *App) emit(out io.Writer, line string, now time.Time) {
	if a.showUpdateIndicator() && a.Checker.UpdateAvailable(context.Background(), now) {
		line += updateIndicator
	}
	_, _ = out.Write([]byte(line + "\n"))
}

func (a *App) showUpdateIndicator() bool {
	if v, ok := a.Settings.Show["update"]; ok {
		return v
	}
	return true
}

// terminalColumns reads the host-provided column count; 0 disables
// width-aware bar clamping.
func terminalColumns() int {
	if v := os.Getenv("COLUMNS"); v != "" {
		if cols, err := strconv.Atoi(v); err == nil && cols > 0 {
			return cols
		}
	}
	return 0
}

func unixSeconds(now time.Time) float64 {
	return float64(now.UnixNano()) / float64(time.Second)
}
