package config

import (
	"testing"
	"time"

	"github.com/tomz197/spacedodge/internal/game"
	gameconfig "github.com/tomz197/spacedodge/internal/game/config"
)

func TestGameOptionsDefaults(t *testing.T) {
	opts, err := GameOptions()
	if err != nil {
		t.Fatal(err)
	}
	if opts.SpawnMode != game.SpawnBurst {
		t.Errorf("SpawnMode = %v, want burst", opts.SpawnMode)
	}
	if opts.AlienInterval != gameconfig.AlienInterval {
		t.Errorf("AlienInterval = %v, want %v", opts.AlienInterval, gameconfig.AlienInterval)
	}
}

func TestGameOptionsFromEnv(t *testing.T) {
	t.Setenv("SPACEDODGE_SPAWN_MODE", "interval")
	t.Setenv("SPACEDODGE_ALIEN_INTERVAL", "5s")

	opts, err := GameOptions()
	if err != nil {
		t.Fatal(err)
	}
	if opts.SpawnMode != game.SpawnInterval {
		t.Errorf("SpawnMode = %v, want interval", opts.SpawnMode)
	}
	if opts.AlienInterval != 5*time.Second {
		t.Errorf("AlienInterval = %v, want 5s", opts.AlienInterval)
	}
}

func TestGameOptionsBadMode(t *testing.T) {
	t.Setenv("SPACEDODGE_SPAWN_MODE", "waves")
	if _, err := GameOptions(); err == nil {
		t.Error("expected an error for an unknown spawn mode")
	}
}

func TestNewRandSeeded(t *testing.T) {
	t.Setenv("SPACEDODGE_SEED", "7")
	a, b := NewRand(), NewRand()
	for i := 0; i < 5; i++ {
		if x, y := a.Int63(), b.Int63(); x != y {
			t.Fatalf("draw %d: %d != %d with the same seed", i, x, y)
		}
	}
}

func TestScoresFile(t *testing.T) {
	if got := ScoresFile(); got != gameconfig.DefaultScoresFile {
		t.Errorf("ScoresFile = %q, want %q", got, gameconfig.DefaultScoresFile)
	}
	t.Setenv("SPACEDODGE_SCORES_FILE", "/tmp/x.json")
	if got := ScoresFile(); got != "/tmp/x.json" {
		t.Errorf("ScoresFile = %q", got)
	}
}
