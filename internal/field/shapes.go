package field

import (
	"math"

	"github.com/ayusman/mudra/internal/gesture"
)

// Shape geometry constants, in scene units.
const (
	// DriftAmplitude is the ambient oscillation radius around a particle's base.
	DriftAmplitude = 50.0

	// RoleThreshold splits particles into sub-roles by R3 with a strict
	// comparison: R3 > 0.3 takes the ring for Fist and the core for Open,
	// so a particle at exactly 0.3 lands in the Fist planet body and the
	// Open halo.
	RoleThreshold = 0.3

	// Fist: ring radius range and planet-body radius.
	RingInnerRadius = 120.0
	RingRadiusSpan  = 80.0
	RingFlattening  = 0.3
	PlanetRadius    = 60.0

	// Open: core radius and halo orbit range.
	CoreRadius     = 50.0
	HaloInnerOrbit = 200.0
	HaloOrbitSpan  = 200.0
	HaloWobble     = 40.0

	// Peace: character-slot layout.
	PeaceSlots       = 7
	PeaceSlotSpacing = 40.0
	PeaceJitterY     = 30.0
	PeaceWobbleZ     = 10.0

	// Metal: heart curve scale, pulse, and placement.
	HeartScale  = 5.0
	HeartPulse  = 0.1
	HeartRate   = 8.0
	HeartYBias  = 20.0
	HeartWobble = 10.0
)

// vec3 is a scene-space point.
type vec3 struct {
	X, Y, Z float64
}

// shapeParams carries the frame-level inputs shared by every shape function:
// the hand anchor in scene units, the shape clock t (elapsed seconds × 2),
// and the Peace layout's slot count.
type shapeParams struct {
	H     vec3
	T     float64
	Slots int
}

// shapeFunc computes where one particle should move toward this frame.
// Shape functions are pure: same params and particle, same target.
type shapeFunc func(sp shapeParams, p *Particle) vec3

// gestureShapes selects the target function per gesture. Gestures outside
// the map (including unrecognized values) fall back to driftTarget.
var gestureShapes = map[gesture.Gesture]shapeFunc{
	gesture.None:  driftTarget,
	gesture.Fist:  fistTarget,
	gesture.Open:  openTarget,
	gesture.Peace: peaceTarget,
	gesture.Metal: metalTarget,
}

// gestureBlends is the per-gesture approach rate. None barely pulls toward
// its target so particles mostly drift free; the shaped gestures snap.
var gestureBlends = map[gesture.Gesture]float64{
	gesture.None:  0.02,
	gesture.Fist:  0.95,
	gesture.Open:  0.9,
	gesture.Peace: 0.92,
	gesture.Metal: 0.94,
}

func shapeFor(g gesture.Gesture) shapeFunc {
	if fn, ok := gestureShapes[g]; ok {
		return fn
	}
	return driftTarget
}

func blendFor(g gesture.Gesture) float64 {
	if b, ok := gestureBlends[g]; ok {
		return b
	}
	return gestureBlends[gesture.None]
}

// driftTarget oscillates each axis around the particle's own base position,
// decorrelated per axis by frequency multipliers.
func driftTarget(sp shapeParams, p *Particle) vec3 {
	a := sp.T*p.speed + p.phase
	return vec3{
		X: p.BaseX + math.Sin(a)*DriftAmplitude,
		Y: p.BaseY + math.Cos(a*0.8)*DriftAmplitude,
		Z: p.BaseZ + math.Sin(a*0.6)*DriftAmplitude,
	}
}

// fistTarget forms a ringed sphere: a rotating planet body of particles
// inside a slowly turning flattened ring.
func fistTarget(sp shapeParams, p *Particle) vec3 {
	if p.R3 > RoleThreshold {
		angle := p.phase + sp.T*0.2
		radius := RingInnerRadius + p.R0*RingRadiusSpan
		return vec3{
			X: sp.H.X + math.Cos(angle)*radius,
			Y: sp.H.Y + math.Sin(angle)*radius*RingFlattening,
			Z: sp.H.Z + math.Sin(angle)*radius,
		}
	}
	return sphereTarget(sp, p, PlanetRadius)
}

// openTarget forms a dense core with a halo of wandering particles orbiting
// at independent angular speeds with a vertical sine wobble.
func openTarget(sp shapeParams, p *Particle) vec3 {
	if p.R3 > RoleThreshold {
		return sphereTarget(sp, p, CoreRadius)
	}
	angle := p.phase + sp.T*p.speed
	radius := HaloInnerOrbit + p.R0*HaloOrbitSpan
	return vec3{
		X: sp.H.X + math.Cos(angle)*radius,
		Y: sp.H.Y + math.Sin(sp.T*p.speed+p.phase)*HaloWobble,
		Z: sp.H.Z + math.Sin(angle)*radius,
	}
}

// sphereTarget places the particle on a rotating ball of the given radius
// around the anchor, volume-uniform via the cube-root radial draw.
func sphereTarget(sp shapeParams, p *Particle, radius float64) vec3 {
	theta := p.phase + sp.T*0.5
	phi := math.Acos(2*p.R0 - 1)
	r := radius * math.Cbrt(p.R1)
	return vec3{
		X: sp.H.X + r*math.Sin(phi)*math.Cos(theta),
		Y: sp.H.Y + r*math.Cos(phi),
		Z: sp.H.Z + r*math.Sin(phi)*math.Sin(theta),
	}
}

// peaceTarget buckets particles into character slots offset along x, with a
// small y jitter and a time-varying z wobble. With the default seven slots
// the offset is (slot-3)·40. This produces a blocky text-like cluster, not
// legible glyphs.
func peaceTarget(sp shapeParams, p *Particle) vec3 {
	slots := sp.Slots
	if slots <= 0 {
		slots = PeaceSlots
	}
	slot := math.Floor(p.R0 * float64(slots))
	if slot >= float64(slots) {
		slot = float64(slots) - 1
	}
	center := float64(slots-1) / 2
	return vec3{
		X: sp.H.X + (slot-center)*PeaceSlotSpacing,
		Y: sp.H.Y + (p.R1-0.5)*PeaceJitterY,
		Z: sp.H.Z + math.Sin(sp.T*3+p.phase)*PeaceWobbleZ,
	}
}

// metalTarget places particles on the closed parametric heart curve
//
//	x = 16·sin³θ
//	y = 13·cosθ − 5·cos2θ − 2·cos3θ − cos4θ
//
// with θ = R0·2π, scaled by a heartbeat pulse and raised above the anchor.
func metalTarget(sp shapeParams, p *Particle) vec3 {
	theta := p.R0 * 2 * math.Pi
	scale := HeartScale * (1 + HeartPulse*math.Sin(HeartRate*sp.T))
	hx, hy := heartPoint(theta)

	return vec3{
		X: sp.H.X + hx*scale,
		Y: sp.H.Y + hy*scale + HeartYBias,
		Z: sp.H.Z + math.Sin(sp.T+theta*3)*HeartWobble,
	}
}

// heartPoint evaluates the raw heart curve at parameter theta, unscaled.
func heartPoint(theta float64) (x, y float64) {
	s := math.Sin(theta)
	x = 16 * s * s * s
	y = 13*math.Cos(theta) - 5*math.Cos(2*theta) - 2*math.Cos(3*theta) - math.Cos(4*theta)
	return x, y
}
