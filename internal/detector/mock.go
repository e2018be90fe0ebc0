package detector

import (
	"gocv.io/x/gocv"
)

// MockDetector is a test implementation of the Detector interface.
// It allows tests to control the detection results.
type MockDetector struct {
	hands []HandLandmarks
	err   error
}

// NewMockDetector creates a new MockDetector instance.
func NewMockDetector() *MockDetector {
	return &MockDetector{}
}

// SetHands sets the hands that will be returned by Detect.
func (m *MockDetector) SetHands(hands []HandLandmarks) {
	m.hands = hands
}

// SetError sets the error that will be returned by Detect.
func (m *MockDetector) SetError(err error) {
	m.err = err
}

// Detect returns the pre-configured hands or error.
func (m *MockDetector) Detect(frame *gocv.Mat) ([]HandLandmarks, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.hands, nil
}

// Close is a no-op for the mock detector.
func (m *MockDetector) Close() error {
	return nil
}

// Finger base (MCP) positions used by the synthetic pose builder. The hand
// faces the camera with the wrist near the bottom of the frame.
var mockFingerBases = [4]Point3D{
	{X: 0.55, Y: 0.62, Z: -0.01}, // index
	{X: 0.50, Y: 0.60, Z: -0.01}, // middle
	{X: 0.45, Y: 0.62, Z: -0.01}, // ring
	{X: 0.40, Y: 0.64, Z: -0.01}, // pinky
}

var mockFingerLandmarks = [4][3]int{
	{IndexPIP, IndexDIP, IndexTip},
	{MiddlePIP, MiddleDIP, MiddleTip},
	{RingPIP, RingDIP, RingTip},
	{PinkyPIP, PinkyDIP, PinkyTip},
}

var mockFingerMCPs = [4]int{IndexMCP, MiddleMCP, RingMCP, PinkyMCP}

// PoseLandmarks builds a synthetic HandLandmarks with each finger either
// extended or curled. Extended fingertips sit well above their base (smaller
// camera-space y); curled fingertips sit slightly below it. The thumb moves
// sideways: extended puts the tip well past the 0.05 horizontal margin from
// its MCP, curled keeps it within.
func PoseLandmarks(thumb, index, middle, ring, pinky bool) HandLandmarks {
	lm := HandLandmarks{
		Handedness: "Right",
		Score:      0.95,
	}

	lm.Points[Wrist] = Point3D{X: 0.5, Y: 0.8, Z: 0.0}

	// Thumb chain
	lm.Points[ThumbCMC] = Point3D{X: 0.53, Y: 0.76, Z: 0.0}
	lm.Points[ThumbMCP] = Point3D{X: 0.56, Y: 0.72, Z: 0.0}
	if thumb {
		lm.Points[ThumbIP] = Point3D{X: 0.62, Y: 0.69, Z: 0.01}
		lm.Points[ThumbTip] = Point3D{X: 0.68, Y: 0.66, Z: 0.01}
	} else {
		lm.Points[ThumbIP] = Point3D{X: 0.57, Y: 0.70, Z: -0.02}
		lm.Points[ThumbTip] = Point3D{X: 0.575, Y: 0.68, Z: -0.03}
	}

	fingers := [4]bool{index, middle, ring, pinky}
	for f, extended := range fingers {
		base := mockFingerBases[f]
		lm.Points[mockFingerMCPs[f]] = base

		pip, dip, tip := mockFingerLandmarks[f][0], mockFingerLandmarks[f][1], mockFingerLandmarks[f][2]
		if extended {
			lm.Points[pip] = Point3D{X: base.X, Y: base.Y - 0.09, Z: base.Z}
			lm.Points[dip] = Point3D{X: base.X, Y: base.Y - 0.17, Z: base.Z}
			lm.Points[tip] = Point3D{X: base.X, Y: base.Y - 0.25, Z: base.Z}
		} else {
			lm.Points[pip] = Point3D{X: base.X, Y: base.Y - 0.02, Z: base.Z - 0.04}
			lm.Points[dip] = Point3D{X: base.X - 0.02, Y: base.Y + 0.02, Z: base.Z - 0.03}
			lm.Points[tip] = Point3D{X: base.X - 0.04, Y: base.Y + 0.04, Z: base.Z - 0.01}
		}
	}

	return lm
}

// FistLandmarks returns a closed fist: every finger curled.
func FistLandmarks() HandLandmarks {
	return PoseLandmarks(false, false, false, false, false)
}

// OpenPalmLandmarks returns an open palm: every finger extended.
func OpenPalmLandmarks() HandLandmarks {
	return PoseLandmarks(true, true, true, true, true)
}

// PeaceLandmarks returns a V sign: index and middle extended.
func PeaceLandmarks() HandLandmarks {
	return PoseLandmarks(false, true, true, false, false)
}

// MetalLandmarks returns the horns: index and pinky extended.
func MetalLandmarks() HandLandmarks {
	return PoseLandmarks(false, true, false, false, true)
}

// AmbiguousLandmarks returns a pose matching none of the classification
// rules (index and ring extended), which the classifier must leave unchanged.
func AmbiguousLandmarks() HandLandmarks {
	return PoseLandmarks(false, true, false, true, false)
}
