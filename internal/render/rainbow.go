package render

import (
	"fmt"
	"strings"
	"time"
)

// Gradient and glint tuning. The hue step gives a full cycle every ~40
// characters; the drift rate shifts the wheel ~27 degrees per 300ms frame.
const (
	hueStep      = 0.025
	hueDriftRate = 0.25
	rainbowSat   = 0.92
	rainbowVal   = 0.95

	glintCycle    = 2.5 // seconds per sweep cycle
	glintDuration = 0.7 // active window at the end of each cycle
	glintWidth    = 20.0
)

func sgrRGB(c RGB) string {
	return fmt.Sprintf("\x1b[38;2;%d;%d;%dm", c.R, c.G, c.B)
}

// glintCenter returns the moving highlight center for the given wall-clock
// seconds, or ok=false outside the glint window.
func glintCenter(seconds float64, visible int) (float64, bool) {
	phase := seconds - float64(int(seconds/glintCycle))*glintCycle
	if phase < glintCycle-glintDuration {
		return 0, false
	}
	sweep := (phase - (glintCycle - glintDuration)) / glintDuration
	total := float64(visible) + glintWidth*2
	return sweep*total - glintWidth, true
}

// Colorize walks the token stream of text and assigns every visible position
// a hue along a drifting gradient.
//
// With preserveExisting, characters that already carry a non-reset color
// state pass through untouched (pre-colored bars survive a full-line pass)
// and their control sequences are kept. Without it, existing sequences are
// dropped and every character is recolored, each followed by an immediate
// reset so truncation mid-line never leaves a dangling escape.
//
// When animated, the gradient drifts with wall-clock time and a white glint
// sweeps across non-bar characters once per cycle. When idle the output is a
// pure function of the input, so a host that stops refreshing shows a clean
// static gradient.
func Colorize(text string, preserveExisting, animated bool, now time.Time) string {
	seconds := float64(now.UnixNano()) / float64(time.Second)

	drift := 0.0
	if animated {
		drift = seconds * hueDriftRate
	}

	tokens := Scan(text)
	visible := 0
	for _, t := range tokens {
		if t.Kind == TokenVisible {
			visible++
		}
	}
	if visible == 0 {
		return text
	}

	center := 0.0
	glintActive := false
	if animated {
		center, glintActive = glintCenter(seconds, visible)
	}

	var b strings.Builder
	b.Grow(len(text) * 4)
	pos := 0

	for _, t := range tokens {
		if t.Kind == TokenControl {
			if preserveExisting {
				b.WriteString(t.Raw)
			}
			continue
		}

		if preserveExisting && t.Color != "" {
			b.WriteString(t.Raw)
			pos++
			continue
		}

		hue := float64(pos)*hueStep + drift
		hue -= float64(int(hue)) // mod 1
		c := HSVToRGB(hue, rainbowSat, rainbowVal)

		if glintActive && !IsBarGlyph(t.Char) {
			dist := float64(pos) - center
			if dist < 0 {
				dist = -dist
			}
			if dist < glintWidth {
				w := Falloff(dist / glintWidth)
				// Blend toward bright white rather than desaturating in HSV,
				// which turns muddy gray.
				lum := int(210 + w*45)
				c = Blend(c, RGB{lum, lum, lum}, w)
			}
		}

		b.WriteString(sgrRGB(c))
		b.WriteString(t.Raw)
		if !preserveExisting {
			b.WriteString(Reset)
		}
		pos++
	}

	b.WriteString(Reset)
	return b.String()
}

// ApplyTextColor wraps non-bar text in a base color. The code is prepended,
// re-applied after every reset (bar colors override inline and resume the
// base afterwards), and a final reset is appended.
func ApplyTextColor(line, code string) string {
	if code == "" {
		return line
	}
	return code + strings.ReplaceAll(line, Reset, Reset+code) + Reset
}

// ApplyShimmer overlays a white glint on already-colored text. It tracks the
// active SGR state through the line and restores it after each highlighted
// character, and skips bar glyphs so the sweep never washes out the bars.
// Outside the glint window the text is returned unchanged.
func ApplyShimmer(text string, now time.Time) string {
	seconds := float64(now.UnixNano()) / float64(time.Second)

	tokens := Scan(text)
	visible := 0
	for _, t := range tokens {
		if t.Kind == TokenVisible {
			visible++
		}
	}
	if visible == 0 {
		return text
	}

	center, active := glintCenter(seconds, visible)
	if !active {
		return text
	}

	var b strings.Builder
	b.Grow(len(text) * 2)
	var activeCodes []string
	pos := 0

	for _, t := range tokens {
		if t.Kind == TokenControl {
			b.WriteString(t.Raw)
			if t.Raw == Reset {
				activeCodes = activeCodes[:0]
			} else {
				activeCodes = append(activeCodes, t.Raw)
			}
			continue
		}

		dist := float64(pos) - center
		if dist < 0 {
			dist = -dist
		}
		if !IsBarGlyph(t.Char) && dist < glintWidth {
			w := Falloff(dist / glintWidth)
			lum := int(210 + w*45) // always brighter than plain white text
			b.WriteString(fmt.Sprintf("\x1b[38;2;%d;%d;%dm", lum, lum, lum))
			b.WriteString(t.Raw)
			if len(activeCodes) > 0 {
				for _, code := range activeCodes {
					b.WriteString(code)
				}
			} else {
				b.WriteString(Reset)
			}
		} else {
			b.WriteString(t.Raw)
		}
		pos++
	}

	return b.String()
}
