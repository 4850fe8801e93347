package game

import (
	"math/rand"
	"time"

	"github.com/tomz197/spacedodge/internal/game/config"
	"github.com/tomz197/spacedodge/internal/object"
)

// Spawner decides when asteroids and aliens enter the field and where.
// Its timers live in State so a fresh session always starts from zero.
type Spawner struct {
	opts Options
	rng  *rand.Rand
}

// NewSpawner creates a spawner drawing columns from rng.
func NewSpawner(opts Options, rng *rand.Rand) *Spawner {
	return &Spawner{opts: opts.normalized(), rng: rng}
}

// Update advances the spawn timers by dt and returns what spawned this tick.
func (s *Spawner) Update(st *State, dt time.Duration) (asteroids, aliens []*object.Entity) {
	st.AsteroidTimer += dt
	st.AlienTimer += dt

	switch s.opts.SpawnMode {
	case SpawnInterval:
		if st.AsteroidTimer >= s.opts.AsteroidInterval {
			asteroids = append(asteroids, object.NewAsteroid(s.column(config.ObstacleWidth)))
			st.AsteroidTimer = 0
		}
	default:
		if st.AsteroidTimer >= st.BurstThreshold {
			for range s.opts.BurstSize {
				asteroids = append(asteroids, object.NewAsteroid(s.column(config.ObstacleWidth)))
			}
			st.BurstThreshold = max(st.BurstThreshold-s.opts.BurstStep, config.MinSpawnInterval)
			st.AsteroidTimer = 0
		}
	}

	if st.Level >= config.AlienLevel && st.AlienTimer >= s.opts.AlienInterval {
		aliens = append(aliens, object.NewAlien(s.column(config.ObstacleWidth)))
		st.AlienTimer = 0
	}

	return asteroids, aliens
}

// column picks a uniformly random x so an entity of width fits on the field.
func (s *Spawner) column(width float64) float64 {
	span := int(s.opts.Field.Width - width)
	if span <= 0 {
		return 0
	}
	return float64(s.rng.Intn(span + 1))
}
