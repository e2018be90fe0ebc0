package field

import (
	"math"

	"github.com/ayusman/mudra/internal/gesture"
)

// Palette is a hue band sampled at full saturation and 50% lightness.
type Palette struct {
	HueBase  float64
	HueRange float64
}

// gesturePalettes fixes the hue band per gesture. Unrecognized gestures use
// the None palette.
var gesturePalettes = map[gesture.Gesture]Palette{
	gesture.None:  {HueBase: 0.5, HueRange: 0.1},   // cyan
	gesture.Fist:  {HueBase: 0.08, HueRange: 0.1},  // gold
	gesture.Open:  {HueBase: 0.4, HueRange: 0.15},  // green-cyan
	gesture.Peace: {HueBase: 0.6, HueRange: 0.2},   // blue-purple
	gesture.Metal: {HueBase: 0.95, HueRange: 0.1},  // pink-red
}

// PaletteFor returns the hue band for g.
func PaletteFor(g gesture.Gesture) Palette {
	if p, ok := gesturePalettes[g]; ok {
		return p
	}
	return gesturePalettes[gesture.None]
}

// hslToRGB converts an HSL color to RGB. Hue wraps into [0,1); saturation
// and lightness are clamped to [0,1].
func hslToRGB(h, s, l float64) (r, g, b float64) {
	h = h - math.Floor(h)
	s = clamp01(s)
	l = clamp01(l)

	if s == 0 {
		return l, l, l
	}

	var q float64
	if l < 0.5 {
		q = l * (1 + s)
	} else {
		q = l + s - l*s
	}
	p := 2*l - q

	r = hueToRGB(p, q, h+1.0/3.0)
	g = hueToRGB(p, q, h)
	b = hueToRGB(p, q, h-1.0/3.0)
	return r, g, b
}

func hueToRGB(p, q, t float64) float64 {
	if t < 0 {
		t++
	}
	if t > 1 {
		t--
	}
	switch {
	case t < 1.0/6.0:
		return p + (q-p)*6*t
	case t < 1.0/2.0:
		return q
	case t < 2.0/3.0:
		return p + (q-p)*(2.0/3.0-t)*6
	}
	return p
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
