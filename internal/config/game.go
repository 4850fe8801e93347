package config

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/tomz197/spacedodge/internal/game"
	gameconfig "github.com/tomz197/spacedodge/internal/game/config"
)

// GameOptions returns the default session options with SPACEDODGE_SPAWN_MODE
// and SPACEDODGE_ALIEN_INTERVAL applied.
func GameOptions() (game.Options, error) {
	opts := game.DefaultOptions()

	mode, err := game.ParseSpawnMode(GetEnv("SPACEDODGE_SPAWN_MODE", opts.SpawnMode.String()))
	if err != nil {
		return opts, fmt.Errorf("SPACEDODGE_SPAWN_MODE: %w", err)
	}
	opts.SpawnMode = mode
	opts.AlienInterval = GetEnvDuration("SPACEDODGE_ALIEN_INTERVAL", opts.AlienInterval)
	return opts, nil
}

// ScoresFile returns the path of the top scores file.
func ScoresFile() string {
	return GetEnv("SPACEDODGE_SCORES_FILE", gameconfig.DefaultScoresFile)
}

// NewRand returns a generator seeded from SPACEDODGE_SEED, or from the clock
// when it is unset.
func NewRand() *rand.Rand {
	seed := GetEnvInt("SPACEDODGE_SEED", int(time.Now().UnixNano()))
	return rand.New(rand.NewSource(int64(seed)))
}
