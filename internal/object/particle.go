package object

import (
	"math"
	"math/rand"
	"sync"
	"time"
)

// particlePool is a sync.Pool for reusing Particle objects to reduce allocations.
var particlePool = sync.Pool{
	New: func() any {
		return &Particle{}
	},
}

// Particle is a short-lived explosion fragment. Velocities are in field
// units per second.
type Particle struct {
	X, Y        float64
	VX, VY      float64
	Lifetime    float64 // Seconds remaining
	MaxLifetime float64 // Initial lifetime (for fade calculation)
	Drag        float64 // Velocity decay per 1/60s (1.0 = no drag)
}

// NewParticle creates a single particle from the pool.
func NewParticle(x, y, vx, vy, lifetime float64) *Particle {
	p := particlePool.Get().(*Particle)
	p.X = x
	p.Y = y
	p.VX = vx
	p.VY = vy
	p.Lifetime = lifetime
	p.MaxLifetime = lifetime
	p.Drag = 0.95
	return p
}

// Release returns the particle to the pool for reuse.
func (p *Particle) Release() {
	particlePool.Put(p)
}

// Life returns the remaining lifetime as a fraction in [0, 1].
func (p *Particle) Life() float64 {
	if p.MaxLifetime <= 0 {
		return 0
	}
	return math.Max(0, p.Lifetime/p.MaxLifetime)
}

// Update moves the particle. It reports false once the particle has expired.
func (p *Particle) Update(dt time.Duration) bool {
	sec := dt.Seconds()

	p.Lifetime -= sec
	if p.Lifetime <= 0 {
		return false
	}

	dragFactor := math.Pow(p.Drag, sec*60)
	p.VX *= dragFactor
	p.VY *= dragFactor

	p.X += p.VX * sec
	p.Y += p.VY * sec
	return true
}

// SpawnExplosion appends count particles bursting from (x, y) in random directions.
func SpawnExplosion(dst []*Particle, rng *rand.Rand, x, y float64, count int, speed, lifetime float64) []*Particle {
	for i := 0; i < count; i++ {
		angle := rng.Float64() * 2 * math.Pi
		// Random speed variation (50% to 150%)
		spd := speed * (0.5 + rng.Float64())
		// Random lifetime variation (50% to 100%)
		life := lifetime * (0.5 + rng.Float64()*0.5)

		dst = append(dst, NewParticle(x, y, math.Cos(angle)*spd, math.Sin(angle)*spd, life))
	}
	return dst
}

// UpdateParticles advances every particle, releasing expired ones to the pool.
// The returned slice reuses the input's backing array.
func UpdateParticles(particles []*Particle, dt time.Duration) []*Particle {
	kept := particles[:0]
	for _, p := range particles {
		if p.Update(dt) {
			kept = append(kept, p)
		} else {
			p.Release()
		}
	}
	clear(particles[len(kept):])
	return kept
}

// ReleaseAll returns every particle to the pool and empties the slice.
func ReleaseAll(particles []*Particle) []*Particle {
	for _, p := range particles {
		p.Release()
	}
	clear(particles)
	return particles[:0]
}
