// Package testdata provides synthetic hand landmark sequences for manual
// testing and demos. Everything here is generated; no recorded frames are
// checked in.
package testdata

import (
	"github.com/ayusman/mudra/internal/detector"
)

// PoseSequence returns a canned landmark sequence cycling through the
// recognized poses, holding each for the given number of frames.
func PoseSequence(hold int) []detector.HandLandmarks {
	if hold < 1 {
		hold = 1
	}

	poses := []detector.HandLandmarks{
		detector.FistLandmarks(),
		detector.OpenPalmLandmarks(),
		detector.PeaceLandmarks(),
		detector.MetalLandmarks(),
	}

	var seq []detector.HandLandmarks
	for _, p := range poses {
		for i := 0; i < hold; i++ {
			seq = append(seq, p)
		}
	}
	return seq
}

// TransitionSequence linearly interpolates between two poses over the given
// number of frames, endpoints included. Intermediate frames typically match
// no pose rule, which exercises the classifier's retention behavior.
func TransitionSequence(from, to detector.HandLandmarks, frames int) []detector.HandLandmarks {
	if frames < 2 {
		frames = 2
	}

	seq := make([]detector.HandLandmarks, frames)
	for f := 0; f < frames; f++ {
		t := float64(f) / float64(frames-1)
		var h detector.HandLandmarks
		for i := range h.Points {
			a := from.Points[i]
			b := to.Points[i]
			h.Points[i] = detector.Point3D{
				X: a.X + (b.X-a.X)*t,
				Y: a.Y + (b.Y-a.Y)*t,
				Z: a.Z + (b.Z-a.Z)*t,
			}
		}
		seq[f] = h
	}
	return seq
}

// DriftSequence shifts a pose across the frame so the derived anchor sweeps
// from one side of the scene to the other.
func DriftSequence(pose detector.HandLandmarks, frames int, dx, dy float64) []detector.HandLandmarks {
	if frames < 1 {
		frames = 1
	}

	seq := make([]detector.HandLandmarks, frames)
	for f := 0; f < frames; f++ {
		t := float64(f) / float64(frames)
		var h detector.HandLandmarks
		for i, p := range pose.Points {
			h.Points[i] = detector.Point3D{
				X: p.X + dx*t,
				Y: p.Y + dy*t,
				Z: p.Z,
			}
		}
		seq[f] = h
	}
	return seq
}
