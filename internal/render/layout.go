package render

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/mrukavishnikov/claude-pulse/internal/models"
)

// LayoutMode selects label verbosity and in-segment ordering. Modes never
// change which fields are computed, only how a segment reads.
type LayoutMode string

const (
	// LayoutStandard spells out labels: "Session ━━━ 42% 2h 05m".
	LayoutStandard LayoutMode = "standard"
	// LayoutCompact abbreviates labels to one letter.
	LayoutCompact LayoutMode = "compact"
	// LayoutMinimal drops labels entirely.
	LayoutMinimal LayoutMode = "minimal"
	// LayoutPercentFirst leads each segment with the percentage.
	LayoutPercentFirst LayoutMode = "percent-first"
)

// ParseLayoutMode maps a config string onto a layout mode, defaulting to
// standard.
func ParseLayoutMode(s string) LayoutMode {
	switch LayoutMode(s) {
	case LayoutCompact, LayoutMinimal, LayoutPercentFirst:
		return LayoutMode(s)
	default:
		return LayoutStandard
	}
}

// Fields is the set of segments enabled for display.
type Fields struct {
	Session bool
	Weekly  bool
	Extra   bool
	Context bool
	Plan    bool
	Streak  bool
	Model   bool
	Trend   bool
	Runway  bool
	Status  bool
	Timer   bool
}

// Config is the immutable per-render configuration, rebuilt from persisted
// settings on every invocation and threaded through explicitly.
type Config struct {
	Theme             string
	TextColor         string
	BarStyle          string
	BarWidth          int
	Layout            LayoutMode
	Fields            Fields
	Currency          string
	RainbowBars       bool
	Animate           bool
	ResetMode         ResetTimeMode
	WeeklyResetMode   ResetTimeMode
	WeeklyTimerPrefix string
	ContextFormat     string // "percent", "tokens" or "full"
	TermColumns       int    // 0 when unknown
	// ExtraHidden suppresses the automatic extra segment after an explicit
	// "hide extra"; the plain toggle alone never sets it.
	ExtraHidden bool
}

// Derived carries everything the layout shows that is not part of the raw
// snapshot: plan identity, host context, analytics outputs, streak state.
type Derived struct {
	Plan      string
	Context   models.StdinContext
	Sparkline string
	Runway    string
	Status    string
	Streak    int
	Milestone int
}

const (
	segmentSeparator = " | "
	minBarWidth      = 2
	// segmentOverhead approximates label + percentage + spacing per segment.
	// The estimate only has to shrink bars before the line would overflow,
	// not measure exactly.
	segmentOverhead = 20
)

// Assemble builds the uncolored (bars excepted) status line for a snapshot.
// Field order is fixed; layout mode only shapes the segments themselves.
func Assemble(snapshot *models.UsageSnapshot, derived Derived, cfg Config, now time.Time) string {
	barWidth := clampBarWidth(cfg, snapshot, derived)
	style := GetBarStyle(cfg.BarStyle)
	theme := GetTheme(cfg.Theme)
	if cfg.Theme == RainbowTheme {
		// Rainbow preview colors are for listings; real bars under the
		// rainbow theme use the default thresholds (or stay plain and let
		// the compositor color them).
		theme = GetTheme("default")
	}
	plain := cfg.Theme == RainbowTheme && cfg.RainbowBars

	bar := func(pct float64) string {
		return RenderBar(pct, barWidth, style, theme, plain)
	}

	var parts []string

	if cfg.Fields.Session {
		pct := snapshot.SessionPct()
		suffix := ""
		if cfg.Fields.Timer && snapshot != nil && snapshot.Session != nil && snapshot.Session.ResetsAt != nil {
			suffix = " " + FormatResetTime(*snapshot.Session.ResetsAt, cfg.ResetMode, now)
		}
		parts = append(parts, segment(cfg.Layout, "Session", "S", bar(pct), fmt.Sprintf("%.0f%%", pct))+suffix)
	}

	// A snapshot without a weekly record omits the segment outright; only
	// the session bar falls back to an explicit 0%.
	if cfg.Fields.Weekly && snapshot != nil && snapshot.Weekly != nil {
		pct := snapshot.WeeklyPct()
		suffix := ""
		if cfg.Fields.Timer && snapshot.Weekly.ResetsAt != nil {
			suffix = " " + cfg.WeeklyTimerPrefix + FormatResetTime(*snapshot.Weekly.ResetsAt, cfg.WeeklyResetMode, now)
		}
		parts = append(parts, segment(cfg.Layout, "Weekly", "W", bar(pct), fmt.Sprintf("%.0f%%", pct))+suffix)
	}

	// Gifted extra credits surface the segment on their own unless the user
	// hid it explicitly; the show toggle forces it even with no credits.
	extraCredits := snapshot != nil && snapshot.Extra != nil &&
		snapshot.Extra.Enabled && snapshot.Extra.LimitMinorUnits > 0
	if cfg.Fields.Extra || (extraCredits && !cfg.ExtraHidden) {
		if snapshot != nil && snapshot.Extra != nil && snapshot.Extra.Enabled {
			e := snapshot.Extra
			pct := ClampPct(e.Utilization)
			amount := fmt.Sprintf("%s%.0f/%s%.0f",
				cfg.Currency, math.Round(float64(e.UsedMinorUnits)/100),
				cfg.Currency, math.Round(float64(e.LimitMinorUnits)/100))
			parts = append(parts, segment(cfg.Layout, "Extra", "E", bar(pct), amount))
		} else {
			parts = append(parts, segment(cfg.Layout, "Extra", "E", bar(0), "none"))
		}
	}

	if cfg.Fields.Context && derived.Context.ContextLimit > 0 {
		pct := derived.Context.ContextPct
		parts = append(parts, segment(cfg.Layout, "Context", "C", bar(pct), contextValue(derived.Context, cfg.ContextFormat)))
	}

	if cfg.Fields.Plan && derived.Plan != "" {
		parts = append(parts, StripControl(derived.Plan))
	}

	if cfg.Fields.Streak && derived.Streak > 0 {
		if cfg.Layout == LayoutStandard {
			parts = append(parts, fmt.Sprintf("Streak %dd", derived.Streak))
		} else {
			parts = append(parts, fmt.Sprintf("%dd", derived.Streak))
		}
	}

	if cfg.Fields.Model && derived.Context.ModelName != "" {
		parts = append(parts, StripControl(derived.Context.ModelName))
	}

	if cfg.Fields.Trend && derived.Sparkline != "" {
		parts = append(parts, derived.Sparkline)
	}
	if cfg.Fields.Runway && derived.Runway != "" {
		parts = append(parts, derived.Runway)
	}
	if cfg.Fields.Status && derived.Status != "" {
		parts = append(parts, derived.Status)
	}

	line := strings.Join(parts, segmentSeparator)
	if derived.Milestone > 0 {
		line += fmt.Sprintf(" ★ %d sessions!", derived.Milestone)
	}
	return line
}

// segment lays out one field according to the layout mode.
func segment(mode LayoutMode, label, short, bar, value string) string {
	switch mode {
	case LayoutCompact:
		return fmt.Sprintf("%s %s %s", short, bar, value)
	case LayoutMinimal:
		return fmt.Sprintf("%s %s", bar, value)
	case LayoutPercentFirst:
		return fmt.Sprintf("%s %s %s", value, bar, label)
	default:
		return fmt.Sprintf("%s %s %s", label, bar, value)
	}
}

// contextValue formats the context-window segment value per the configured
// mode.
func contextValue(ctx models.StdinContext, format string) string {
	pct := fmt.Sprintf("%.0f%%", ctx.ContextPct)
	tokens := fmt.Sprintf("%s/%s", kiloTokens(ctx.ContextUsed), kiloTokens(ctx.ContextLimit))
	switch format {
	case "tokens":
		return tokens
	case "full":
		return fmt.Sprintf("%s (%s)", pct, tokens)
	default:
		return pct
	}
}

func kiloTokens(n int64) string {
	if n >= 1000 {
		return fmt.Sprintf("%dk", n/1000)
	}
	return fmt.Sprintf("%d", n)
}

// clampBarWidth shrinks the bar width when the estimated rendered width
// would overflow the terminal. The estimate is deliberately rough; it only
// has to degrade toward shorter bars, never wrap or fail.
func clampBarWidth(cfg Config, snapshot *models.UsageSnapshot, derived Derived) int {
	width := cfg.BarWidth
	if width < 1 {
		width = DefaultBarWidth
	}
	if cfg.TermColumns <= 0 {
		return width
	}

	segments := countSegments(cfg, snapshot, derived)
	if segments == 0 {
		return width
	}
	for width > minBarWidth {
		estimate := segments*(width+segmentOverhead) + (segments-1)*len(segmentSeparator)
		if estimate <= cfg.TermColumns {
			break
		}
		width--
	}
	return width
}

func countSegments(cfg Config, snapshot *models.UsageSnapshot, derived Derived) int {
	n := 0
	if cfg.Fields.Session {
		n++
	}
	if cfg.Fields.Weekly {
		n++
	}
	if cfg.Fields.Extra {
		n++
	}
	if cfg.Fields.Context && derived.Context.ContextLimit > 0 {
		n++
	}
	if cfg.Fields.Plan && derived.Plan != "" {
		n++
	}
	if cfg.Fields.Streak && derived.Streak > 0 {
		n++
	}
	if cfg.Fields.Model && derived.Context.ModelName != "" {
		n++
	}
	if cfg.Fields.Trend && derived.Sparkline != "" {
		n++
	}
	if cfg.Fields.Runway && derived.Runway != "" {
		n++
	}
	if cfg.Fields.Status && derived.Status != "" {
		n++
	}
	return n
}

// StatusLine assembles and colorizes the final line. processing reports
// whether the host is actively working; animation only runs while it is.
func StatusLine(snapshot *models.UsageSnapshot, derived Derived, cfg Config, processing bool, now time.Time) string {
	line := Assemble(snapshot, derived, cfg, now)
	animated := cfg.Animate && processing

	if cfg.Theme == RainbowTheme {
		return Colorize(line, !cfg.RainbowBars, animated, now)
	}

	if code := ResolveTextColor(cfg.Theme, cfg.TextColor); code != "" {
		line = ApplyTextColor(line, code)
	}
	if animated {
		line = ApplyShimmer(line, now)
	}
	return line
}
