// Package gesture classifies tracked hand landmarks into discrete gestures
// and derives the hand's anchor position in scene space.
package gesture

import "fmt"

// Gesture is a discrete hand pose classification.
type Gesture string

const (
	// None means no hand is tracked, or the last override expired.
	None Gesture = "none"
	// Fist is a closed fist: all four fingers curled.
	Fist Gesture = "fist"
	// Open is an open palm: all four fingers extended.
	Open Gesture = "open"
	// Peace is a V sign: index and middle extended, ring and pinky curled.
	Peace Gesture = "peace"
	// Metal is the horns: index and pinky extended, middle and ring curled.
	Metal Gesture = "metal"
)

// Gestures lists every recognized gesture value.
var Gestures = []Gesture{None, Fist, Open, Peace, Metal}

// Parse converts a string into a Gesture.
func Parse(s string) (Gesture, error) {
	for _, g := range Gestures {
		if string(g) == s {
			return g, nil
		}
	}
	return None, fmt.Errorf("unknown gesture %q", s)
}

// Valid reports whether g is one of the recognized gesture values.
func (g Gesture) Valid() bool {
	for _, known := range Gestures {
		if g == known {
			return true
		}
	}
	return false
}

// Anchor is the hand's effective position in scene space, derived from
// landmarks. Each axis is conceptually in [-1, 1] before scene scaling.
type Anchor struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}
