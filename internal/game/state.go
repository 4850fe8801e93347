package game

import (
	"time"

	"github.com/tomz197/spacedodge/internal/game/config"
)

// State is the mutable bookkeeping of one session.
type State struct {
	Score     int // TimeScore + KillScore
	TimeScore int // Completed survival intervals already credited
	KillScore int

	Level     int
	Elapsed   time.Duration
	FallSpeed float64

	AsteroidTimer  time.Duration // Time since the last asteroid spawn (or burst budget)
	BurstThreshold time.Duration
	AlienTimer     time.Duration

	ShootingUnlocked bool
	Hit              bool
}

func newState(opts Options) State {
	return State{
		Level:          1,
		FallSpeed:      config.InitialFallSpeed,
		BurstThreshold: opts.BurstThreshold,
	}
}

// LevelAt returns the level reached after elapsed survival time.
func LevelAt(elapsed time.Duration) int {
	if elapsed < 0 {
		return 1
	}
	return int(elapsed/config.LevelDuration) + 1
}
