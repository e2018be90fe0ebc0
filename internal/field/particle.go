// Package field implements the per-particle target-position engine that
// morphs a point field toward gesture-driven shapes every frame.
package field

import "math"

// Particle creation constants.
const (
	// DefaultParticleCount is the particle count on a full-size viewport.
	DefaultParticleCount = 15000
	// NarrowParticleCount is the reduced count for narrow viewports.
	NarrowParticleCount = 6000
	// BaseSpread is the half-extent of the cube base positions are drawn from.
	BaseSpread = 400.0
)

// Particle holds the static per-particle attributes assigned once at
// creation. R0..R3 are independent uniform randoms in [0,1) used to
// decorrelate per-particle animation: R0 is a generic seed, R1 maps to a
// speed multiplier in [0.5,1.0), R2 to a phase in [0,2π), and R3 splits
// particles into sub-roles within a shape.
type Particle struct {
	BaseX, BaseY, BaseZ float64
	Size                float64
	R0, R1, R2, R3      float64

	// Derived from R1/R2 at creation so shape functions don't recompute.
	speed float64
	phase float64
}

func makeParticle(rnd func() float64) Particle {
	p := Particle{
		BaseX: (rnd()*2 - 1) * BaseSpread,
		BaseY: (rnd()*2 - 1) * BaseSpread,
		BaseZ: (rnd()*2 - 1) * BaseSpread,
		Size:  1 + rnd()*2,
		R0:    rnd(),
		R1:    rnd(),
		R2:    rnd(),
		R3:    rnd(),
	}
	p.speed = 0.5 + p.R1*0.5
	p.phase = p.R2 * 2 * math.Pi
	return p
}
