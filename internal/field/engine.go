package field

import (
	"math"
	"math/rand"
	"sync"

	"github.com/ayusman/mudra/internal/gesture"
)

// Frame-step constants.
const (
	// SceneScale converts the unit anchor into scene units.
	SceneScale = 200.0
	// BlendScale damps the per-gesture blend into a per-frame step: each
	// frame the stored position moves 10%·blend of the remaining distance.
	BlendScale = 0.1
	// TurbulenceAmp is the shared post-blend jitter so settled shapes never
	// go perfectly static.
	TurbulenceAmp = 2.0
	// TimeScale maps elapsed seconds onto the shape clock t.
	TimeScale = 2.0
	// ColorBudget is roughly how many particles get their color re-rolled
	// per frame, independent of the particle count.
	ColorBudget = 300
)

// Field owns the particle set and its flat position/color buffers.
// One writer (the simulation loop) steps it; readers take snapshots.
type Field struct {
	mu        sync.Mutex
	rng       *rand.Rand
	particles []Particle
	positions []float32 // 3 floats per particle
	colors    []float32 // 3 floats per particle
	sizes     []float32
	slots     int
	text      string
}

// New creates a Field of n particles using a seeded random source, so
// per-particle randoms and the stochastic color refresh are reproducible
// in tests. n <= 0 falls back to DefaultParticleCount.
func New(n int, seed int64) *Field {
	f := &Field{
		rng:   rand.New(rand.NewSource(seed)),
		slots: PeaceSlots,
	}
	f.populate(n)
	return f
}

// populate discards any existing particle set and draws a fresh one.
// Old positions, base positions, and random scalars are never reused.
func (f *Field) populate(n int) {
	if n <= 0 {
		n = DefaultParticleCount
	}

	f.particles = make([]Particle, n)
	f.positions = make([]float32, n*3)
	f.colors = make([]float32, n*3)
	f.sizes = make([]float32, n)

	pal := PaletteFor(gesture.None)
	for i := range f.particles {
		p := makeParticle(f.rng.Float64)
		f.particles[i] = p

		f.positions[i*3] = float32(p.BaseX)
		f.positions[i*3+1] = float32(p.BaseY)
		f.positions[i*3+2] = float32(p.BaseZ)
		f.sizes[i] = float32(p.Size)

		hue := pal.HueBase + (f.rng.Float64()-0.5)*pal.HueRange
		r, g, b := hslToRGB(hue, 1, 0.5)
		f.colors[i*3] = float32(r)
		f.colors[i*3+1] = float32(g)
		f.colors[i*3+2] = float32(b)
	}
}

// Step advances the field one frame: every particle's stored position blends
// toward its gesture-dependent target, a shared turbulence offset keeps the
// shape alive, and a strided subset of colors is re-rolled from the
// gesture's palette. Unrecognized gestures behave as None.
func (f *Field) Step(g gesture.Gesture, anchor gesture.Anchor, elapsed float64) {
	f.mu.Lock()
	defer f.mu.Unlock()

	t := elapsed * TimeScale
	sp := shapeParams{
		H: vec3{
			X: anchor.X * SceneScale,
			Y: anchor.Y * SceneScale,
			Z: anchor.Z * SceneScale,
		},
		T:     t,
		Slots: f.slots,
	}

	shape := shapeFor(g)
	k := blendFor(g) * BlendScale

	for i := range f.particles {
		p := &f.particles[i]
		base := i * 3

		x := float64(f.positions[base])
		y := float64(f.positions[base+1])
		z := float64(f.positions[base+2])

		target := shape(sp, p)
		x += (target.X - x) * k
		y += (target.Y - y) * k
		z += (target.Z - z) * k

		a := t + p.R0*10
		x += math.Sin(a) * TurbulenceAmp
		y += math.Cos(a) * TurbulenceAmp
		z += math.Sin(a) * TurbulenceAmp

		f.positions[base] = float32(x)
		f.positions[base+1] = float32(y)
		f.positions[base+2] = float32(z)
	}

	f.refreshColors(g)
}

// refreshColors re-rolls the color of roughly ColorBudget particles from the
// gesture's hue band. The stride start is randomized so every particle
// eventually converges to a new palette; untouched particles keep their
// previous color.
func (f *Field) refreshColors(g gesture.Gesture) {
	n := len(f.particles)
	if n == 0 {
		return
	}

	stride := n / ColorBudget
	if stride < 1 {
		stride = 1
	}
	start := 0
	if stride > 1 {
		start = f.rng.Intn(stride)
	}

	pal := PaletteFor(g)
	for i := start; i < n; i += stride {
		hue := pal.HueBase + (f.rng.Float64()-0.5)*pal.HueRange
		r, gr, b := hslToRGB(hue, 1, 0.5)
		f.colors[i*3] = float32(r)
		f.colors[i*3+1] = float32(gr)
		f.colors[i*3+2] = float32(b)
	}
}

// Resize discards the entire particle set and recreates it with n fresh
// particles. No position, base, or random scalar survives a resize.
func (f *Field) Resize(n int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.populate(n)
}

// SetText adjusts the Peace layout's character slot count to the text
// length, capped at the default seven slots. Empty text restores the
// default layout.
func (f *Field) SetText(s string) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.text = s
	if s == "" {
		f.slots = PeaceSlots
		return
	}

	slots := len([]rune(s))
	if slots > PeaceSlots {
		slots = PeaceSlots
	}
	if slots < 1 {
		slots = 1
	}
	f.slots = slots
}

// Text returns the configured Peace layout text.
func (f *Field) Text() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.text
}

// Len returns the particle count.
func (f *Field) Len() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.particles)
}

// Particle returns a copy of particle i's static attributes.
func (f *Field) Particle(i int) Particle {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.particles[i]
}

// Position returns particle i's current position.
func (f *Field) Position(i int) (x, y, z float64) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return float64(f.positions[i*3]), float64(f.positions[i*3+1]), float64(f.positions[i*3+2])
}

// Color returns particle i's current color.
func (f *Field) Color(i int) (r, g, b float64) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return float64(f.colors[i*3]), float64(f.colors[i*3+1]), float64(f.colors[i*3+2])
}

// Snapshot copies the flat position and color buffers for transport to the
// rendering collaborator. The returned slices are owned by the caller.
func (f *Field) Snapshot() (positions, colors []float32) {
	f.mu.Lock()
	defer f.mu.Unlock()

	positions = make([]float32, len(f.positions))
	colors = make([]float32, len(f.colors))
	copy(positions, f.positions)
	copy(colors, f.colors)
	return positions, colors
}

// Sizes copies the per-particle point sizes.
func (f *Field) Sizes() []float32 {
	f.mu.Lock()
	defer f.mu.Unlock()

	sizes := make([]float32, len(f.sizes))
	copy(sizes, f.sizes)
	return sizes
}
