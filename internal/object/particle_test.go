package object

import (
	"math/rand"
	"testing"
	"time"
)

func TestSpawnExplosion(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	ps := SpawnExplosion(nil, rng, 100, 50, 24, 300, 1)

	if len(ps) != 24 {
		t.Fatalf("len = %d, want 24", len(ps))
	}
	for _, p := range ps {
		if p.X != 100 || p.Y != 50 {
			t.Fatalf("particle starts at (%v, %v), want (100, 50)", p.X, p.Y)
		}
		if p.Lifetime < 0.5 || p.Lifetime > 1 {
			t.Errorf("lifetime %v outside [0.5, 1]", p.Lifetime)
		}
		if p.Life() != 1 {
			t.Errorf("Life() = %v for a fresh particle", p.Life())
		}
	}
}

func TestUpdateParticlesExpires(t *testing.T) {
	rng := rand.New(rand.NewSource(2))
	ps := SpawnExplosion(nil, rng, 0, 0, 10, 100, 1)

	ps = UpdateParticles(ps, 100*time.Millisecond)
	if len(ps) != 10 {
		t.Fatalf("len = %d after a short step, want 10", len(ps))
	}
	moved := false
	for _, p := range ps {
		if p.X != 0 || p.Y != 0 {
			moved = true
		}
	}
	if !moved {
		t.Error("particles did not move")
	}

	ps = UpdateParticles(ps, time.Second)
	if len(ps) != 0 {
		t.Errorf("len = %d after lifetime elapsed, want 0", len(ps))
	}
}

func TestReleaseAll(t *testing.T) {
	ps := SpawnExplosion(nil, rand.New(rand.NewSource(3)), 0, 0, 5, 10, 1)
	ps = ReleaseAll(ps)
	if len(ps) != 0 {
		t.Errorf("len = %d, want 0", len(ps))
	}
}

func TestStarfieldWraps(t *testing.T) {
	f := Field{Width: 100, Height: 10}
	sf := NewStarfield(f, rand.New(rand.NewSource(4)), 8, 2, 1)

	if len(sf.Layers) != 2 {
		t.Fatalf("layers = %d, want 2", len(sf.Layers))
	}
	for i := 0; i < 100; i++ {
		sf.Advance()
	}
	for _, layer := range sf.Layers {
		if len(layer.Stars) != 8 {
			t.Fatalf("stars = %d, want 8", len(layer.Stars))
		}
		for _, s := range layer.Stars {
			if s.Y < 0 || s.Y >= f.Height || s.X < 0 || s.X >= f.Width {
				t.Errorf("star (%v, %v) left the field", s.X, s.Y)
			}
		}
	}
}

func TestStarfieldLayerSpeed(t *testing.T) {
	f := Field{Width: 100, Height: 1000}
	sf := NewStarfield(f, rand.New(rand.NewSource(5)), 1, 3)
	sf.Layers[0].Stars[0] = Star{X: 10, Y: 0}

	sf.Advance()
	if got := sf.Layers[0].Stars[0].Y; got != 3 {
		t.Errorf("Y = %v, want 3", got)
	}
}
