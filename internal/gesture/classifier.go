package gesture

import (
	"math"
	"sync"
	"time"

	"github.com/ayusman/mudra/internal/detector"
)

// ExtensionMargin is the camera-space distance a fingertip must clear past
// its base landmark to count as extended. Fingers are measured vertically
// (camera y increases downward, so a raised tip has smaller y); the thumb is
// measured horizontally since it moves primarily sideways.
const ExtensionMargin = 0.05

// DefaultOverrideDuration is how long a forced gesture suppresses live
// classification before reverting to None.
const DefaultOverrideDuration = 5 * time.Second

// fingerState holds the per-finger extension results for one hand.
type fingerState struct {
	thumb  bool
	index  bool
	middle bool
	ring   bool
	pinky  bool
}

// Classifier maps one hand's landmarks to a (gesture, anchor) pair.
// It retains the previous gesture across ambiguous poses and supports a
// temporary forced override. Safe for use from a single frame loop plus
// occasional Force calls from control handlers.
type Classifier struct {
	mu         sync.Mutex
	prev       Gesture
	lastAnchor Anchor

	overrideGesture Gesture
	overrideExpiry  time.Time
	overrideActive  bool

	now func() time.Time
}

// NewClassifier creates a Classifier with no tracked hand and gesture None.
func NewClassifier() *Classifier {
	return &Classifier{
		prev: None,
		now:  time.Now,
	}
}

// SetClock replaces the classifier's clock. Tests use this to drive
// override expiry without real timers.
func (c *Classifier) SetClock(now func() time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = now
}

// Force overrides live classification with g for the given duration.
// A new Force replaces any pending one; there is never more than one
// override active. After expiry the gesture reverts to None, not to
// whatever the hand is doing at that moment.
func (c *Classifier) Force(g Gesture, d time.Duration) {
	if !g.Valid() {
		g = None
	}
	if d <= 0 {
		d = DefaultOverrideDuration
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.overrideGesture = g
	c.overrideExpiry = c.now().Add(d)
	c.overrideActive = true
	c.prev = g
}

// Override returns the active forced gesture and its expiry, if any.
func (c *Classifier) Override() (Gesture, time.Time, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.overrideActive || !c.now().Before(c.overrideExpiry) {
		return None, time.Time{}, false
	}
	return c.overrideGesture, c.overrideExpiry, true
}

// ClearOverride cancels any pending override without changing the gesture.
func (c *Classifier) ClearOverride() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.overrideActive = false
}

// Current returns the most recent classification result. Like Classify,
// it applies override expiry first, so a forced gesture reverts to None on
// schedule even when no frames are being classified.
func (c *Classifier) Current() (Gesture, Anchor) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.overrideActive && !c.now().Before(c.overrideExpiry) {
		c.overrideActive = false
		c.prev = None
	}
	return c.prev, c.lastAnchor
}

// Classify evaluates one frame. hand may be nil when no hand is tracked.
// It returns the active gesture and anchor, updating internal state:
//
//   - An active override wins over live classification; the anchor still
//     follows the hand when one is present.
//   - An expired override reverts the gesture to None for this frame and
//     live classification resumes on the next.
//   - With no hand and no override the result is (None, lastAnchor).
//   - Malformed landmarks (non-finite coordinates) fail closed to None.
func (c *Classifier) Classify(hand *detector.HandLandmarks) (Gesture, Anchor) {
	c.mu.Lock()
	defer c.mu.Unlock()

	// Expired override: revert to None regardless of the live pose.
	if c.overrideActive && !c.now().Before(c.overrideExpiry) {
		c.overrideActive = false
		c.prev = None
		if hand != nil && hand.Valid() {
			c.lastAnchor = anchorFrom(hand)
		}
		return None, c.lastAnchor
	}

	if hand == nil {
		if c.overrideActive {
			return c.overrideGesture, c.lastAnchor
		}
		c.prev = None
		return None, c.lastAnchor
	}

	if !hand.Valid() {
		c.prev = None
		return None, c.lastAnchor
	}

	c.lastAnchor = anchorFrom(hand)

	if c.overrideActive {
		return c.overrideGesture, c.lastAnchor
	}

	fs := fingers(hand)

	// Fixed priority order; first match wins. Poses matching none of the
	// rules keep the previous gesture so ambiguous transitions don't flicker.
	var g Gesture
	switch {
	case fs.index && !fs.middle && !fs.ring && fs.pinky:
		g = Metal
	case fs.index && fs.middle && !fs.ring && !fs.pinky:
		g = Peace
	case !fs.index && !fs.middle && !fs.ring && !fs.pinky:
		g = Fist
	case fs.index && fs.middle && fs.ring && fs.pinky:
		g = Open
	default:
		g = c.prev
	}

	c.prev = g
	return g, c.lastAnchor
}

// anchorFrom maps the wrist/middle-base midpoint into scene space.
// X is mirrored so on-screen movement matches an un-mirrored preview,
// Y is flipped so screen-up is positive, and Z is negated depth clamped
// to [-1, 1] so closer-to-camera is positive.
func anchorFrom(hand *detector.HandLandmarks) Anchor {
	wrist := hand.Points[detector.Wrist]
	middle := hand.Points[detector.MiddleMCP]

	avgX := (wrist.X + middle.X) / 2
	avgY := (wrist.Y + middle.Y) / 2
	avgZ := (wrist.Z + middle.Z) / 2

	return Anchor{
		X: (1-avgX)*2 - 1,
		Y: -(avgY*2 - 1),
		Z: clamp(-avgZ, -1, 1),
	}
}

// fingers computes the per-finger extension state. The thumb result is
// computed for completeness but does not participate in the current rules.
func fingers(hand *detector.HandLandmarks) fingerState {
	pts := hand.Points
	extended := func(tip, base int) bool {
		return pts[tip].Y < pts[base].Y-ExtensionMargin
	}

	return fingerState{
		thumb:  math.Abs(pts[detector.ThumbTip].X-pts[detector.ThumbMCP].X) > ExtensionMargin,
		index:  extended(detector.IndexTip, detector.IndexMCP),
		middle: extended(detector.MiddleTip, detector.MiddleMCP),
		ring:   extended(detector.RingTip, detector.RingMCP),
		pinky:  extended(detector.PinkyTip, detector.PinkyMCP),
	}
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
