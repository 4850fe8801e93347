package game

import (
	"fmt"
	"strings"
	"time"

	"github.com/tomz197/spacedodge/internal/game/config"
	"github.com/tomz197/spacedodge/internal/object"
)

// SpawnMode selects the asteroid spawn policy.
type SpawnMode int

const (
	// SpawnBurst spawns asteroids in groups on a shrinking threshold.
	SpawnBurst SpawnMode = iota
	// SpawnInterval spawns one asteroid per fixed interval.
	SpawnInterval
)

func (m SpawnMode) String() string {
	switch m {
	case SpawnBurst:
		return "burst"
	case SpawnInterval:
		return "interval"
	default:
		return fmt.Sprintf("SpawnMode(%d)", int(m))
	}
}

// ParseSpawnMode parses "burst" or "interval".
func ParseSpawnMode(s string) (SpawnMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "burst", "":
		return SpawnBurst, nil
	case "interval":
		return SpawnInterval, nil
	default:
		return SpawnBurst, fmt.Errorf("unknown spawn mode %q", s)
	}
}

// Options configures a session. Use DefaultOptions and override fields.
type Options struct {
	Field object.Field

	SpawnMode        SpawnMode
	AsteroidInterval time.Duration // SpawnInterval mode
	BurstThreshold   time.Duration // SpawnBurst mode, initial budget threshold
	BurstStep        time.Duration // Threshold decrease after each burst
	BurstSize        int
	AlienInterval    time.Duration

	PlayerSpeed   float64 // Pixels per tick
	LaserCooldown time.Duration
	AlienReward   int
}

// DefaultOptions returns the standard game tuning.
func DefaultOptions() Options {
	return Options{
		Field:            object.DefaultField(),
		SpawnMode:        SpawnBurst,
		AsteroidInterval: config.AsteroidInterval,
		BurstThreshold:   config.BurstInitialThreshold,
		BurstStep:        config.BurstThresholdStep,
		BurstSize:        config.BurstSize,
		AlienInterval:    config.AlienInterval,
		PlayerSpeed:      config.PlayerSpeed,
		LaserCooldown:    config.LaserCooldown,
		AlienReward:      config.AlienReward,
	}
}

// normalized floors every spawn interval so nothing spawns every tick forever.
func (o Options) normalized() Options {
	floor := func(d time.Duration) time.Duration {
		return max(d, config.MinSpawnInterval)
	}
	o.AsteroidInterval = floor(o.AsteroidInterval)
	o.BurstThreshold = floor(o.BurstThreshold)
	o.AlienInterval = floor(o.AlienInterval)
	if o.BurstStep < 0 {
		o.BurstStep = 0
	}
	if o.BurstSize < 1 {
		o.BurstSize = 1
	}
	if o.Field.Width <= 0 || o.Field.Height <= 0 {
		o.Field = object.DefaultField()
	}
	if o.AlienReward < 0 {
		o.AlienReward = 0
	}
	return o
}
