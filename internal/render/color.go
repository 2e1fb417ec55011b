package render

// RGB is a 24-bit color used for truecolor SGR output.
type RGB struct {
	R, G, B int
}

// HSVToRGB converts HSV (all components in [0,1]) to 8-bit RGB using the
// standard six-sector conversion. The gradient is sampled at fine hue steps,
// so the conversion stays continuous across sector boundaries: just below
// h=1/6 the blue-ward channel approaches v, just above it the red-ward
// channel leaves v, within one unit per channel.
func HSVToRGB(h, s, v float64) RGB {
	if s == 0 {
		c := int(v * 255)
		return RGB{c, c, c}
	}

	h6 := h * 6.0
	i := int(h6)
	f := h6 - float64(i)
	p := int(v * (1.0 - s) * 255)
	q := int(v * (1.0 - s*f) * 255)
	t := int(v * (1.0 - s*(1.0-f)) * 255)
	vi := int(v * 255)

	switch i % 6 {
	case 0:
		return RGB{vi, t, p}
	case 1:
		return RGB{q, vi, p}
	case 2:
		return RGB{p, vi, t}
	case 3:
		return RGB{p, q, vi}
	case 4:
		return RGB{t, p, vi}
	default:
		return RGB{vi, p, q}
	}
}

// Blend interpolates linearly per channel from c toward target by t in [0,1].
func Blend(c, target RGB, t float64) RGB {
	if t < 0 {
		t = 0
	}
	if t > 1 {
		t = 1
	}
	return RGB{
		R: c.R + int(float64(target.R-c.R)*t),
		G: c.G + int(float64(target.G-c.G)*t),
		B: c.B + int(float64(target.B-c.B)*t),
	}
}

// Falloff converts a distance-from-center ratio in [0,1] into a blend weight
// with a quadratic curve, producing soft edges instead of a linear ramp.
func Falloff(distRatio float64) float64 {
	w := 1.0 - distRatio
	if w < 0 {
		w = 0
	}
	return w * w
}
