package render

import (
	"math"
	"strings"
)

// BarStyle is a fill/empty glyph pair for progress bars.
type BarStyle struct {
	Fill  rune
	Empty rune
}

// DefaultBarWidth matches the origin status line.
const DefaultBarWidth = 8

// BarStyles is the fixed set of named bar styles.
var BarStyles = map[string]BarStyle{
	"classic": {Fill: '━', Empty: '─'},
	"block":   {Fill: '█', Empty: '░'},
	"shade":   {Fill: '▓', Empty: '░'},
	"pipe":    {Fill: '┃', Empty: '╎'},
	"dot":     {Fill: '●', Empty: '○'},
	"square":  {Fill: '■', Empty: '□'},
	"star":    {Fill: '★', Empty: '☆'},
}

// BarStyleNames lists styles in a stable display order.
var BarStyleNames = []string{"classic", "block", "shade", "pipe", "dot", "square", "star"}

// GetBarStyle returns the named style, falling back to classic.
func GetBarStyle(name string) BarStyle {
	if s, ok := BarStyles[name]; ok {
		return s
	}
	return BarStyles["classic"]
}

// barGlyphs holds every fill/empty glyph across all styles so the compositor
// can recognize bar characters and leave them alone.
var barGlyphs = func() map[rune]bool {
	m := make(map[rune]bool, len(BarStyles)*2)
	for _, s := range BarStyles {
		m[s.Fill] = true
		m[s.Empty] = true
	}
	return m
}()

// IsBarGlyph reports whether r is a fill or empty glyph of any bar style.
func IsBarGlyph(r rune) bool {
	return barGlyphs[r]
}

// ClampPct clamps a percentage to [0,100].
func ClampPct(pct float64) float64 {
	if pct < 0 {
		return 0
	}
	if pct > 100 {
		return 100
	}
	return pct
}

// BarColor returns the threshold color for a usage percentage.
func BarColor(pct float64, theme Theme) string {
	switch {
	case pct >= 80:
		return theme.High
	case pct >= 50:
		return theme.Mid
	default:
		return theme.Low
	}
}

// RenderBar builds a fixed-width usage bar. Plain mode emits glyphs with no
// color codes so an outer compositor can recolor the whole segment; otherwise
// the filled region is colored by threshold and the empty region dimmed.
func RenderBar(pct float64, width int, style BarStyle, theme Theme, plain bool) string {
	if width < 1 {
		width = 1
	}
	pct = ClampPct(pct)
	filled := int(math.Round(pct / 100 * float64(width)))
	// Rounding can never push past width after the clamp above, but guard anyway.
	if filled < 0 {
		filled = 0
	}
	if filled > width {
		filled = width
	}

	fill := strings.Repeat(string(style.Fill), filled)
	empty := strings.Repeat(string(style.Empty), width-filled)
	if plain {
		return fill + empty
	}
	return BarColor(pct, theme) + fill + dim + empty + Reset
}
