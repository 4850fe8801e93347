package game

import (
	"math/rand"
	"testing"
	"time"

	"github.com/tomz197/spacedodge/internal/game/config"
	"github.com/tomz197/spacedodge/internal/object"
)

const testTick = 10 * time.Millisecond

func newTestSession() *Session {
	return NewSession(DefaultOptions(), rand.New(rand.NewSource(7)))
}

// placeObstacleOnPlayer puts an asteroid where the next fall step lands it on the ship.
func placeObstacleOnPlayer(s *Session) *object.Entity {
	p := s.Player()
	a := object.NewEntity(object.KindAsteroid, p.X, p.Y-10, config.ObstacleWidth, config.ObstacleHeight)
	s.asteroids = append(s.asteroids, a)
	return a
}

func countEvents(events []Event, typ EventType) int {
	n := 0
	for _, ev := range events {
		if ev.Type == typ {
			n++
		}
	}
	return n
}

func TestSessionOppositeKeysCancel(t *testing.T) {
	s := newTestSession()
	s.player.ForwardMovementEnabled = true
	x, y := s.Player().X, s.Player().Y

	s.Tick(Input{Left: true, Right: true, Up: true, Down: true}, testTick)

	if s.Player().X != x || s.Player().Y != y {
		t.Errorf("player moved to (%v, %v), want (%v, %v)", s.Player().X, s.Player().Y, x, y)
	}
}

func TestSessionMovementBounds(t *testing.T) {
	s := newTestSession()

	for range 100 {
		s.Tick(Input{Left: true, Up: true}, testTick)
	}
	if s.Player().X != 0 {
		t.Errorf("x = %v, want 0 at the left edge", s.Player().X)
	}
	if want := float64(config.FieldHeight - config.PlayerHeight); s.Player().Y != want {
		t.Errorf("y = %v, want %v before forward movement unlocks", s.Player().Y, want)
	}
}

func TestSessionNoShootingBeforeUnlock(t *testing.T) {
	s := newTestSession()

	events := s.Tick(Input{Shoot: true}, testTick)

	if countEvents(events, EventLaserFired) != 0 || len(s.Lasers()) != 0 {
		t.Error("laser fired before shooting was unlocked")
	}
}

func TestSessionShotCooldown(t *testing.T) {
	s := newTestSession()
	s.state.ShootingUnlocked = true

	shots := 0
	for range 12 {
		shots += countEvents(s.Tick(Input{Shoot: true}, 100*time.Millisecond), EventLaserFired)
	}

	// Shots at 100ms, 600ms and 1100ms.
	if shots != 3 {
		t.Errorf("fired %d shots in 1.2s, want 3", shots)
	}
}

func TestSessionLaserDestroysAlien(t *testing.T) {
	s := newTestSession()
	s.state.ShootingUnlocked = true
	s.state.FallSpeed = 0
	alien := object.NewEntity(object.KindAlien, 200, 100, config.ObstacleWidth, config.ObstacleHeight)
	s.aliens = append(s.aliens, alien)

	s.Tick(Input{Shoot: true}, testTick)
	if len(s.Lasers()) != 1 {
		t.Fatalf("got %d lasers, want 1", len(s.Lasers()))
	}

	var destroyed []Event
	ticks := 1
	for ; ticks < 200 && len(destroyed) == 0; ticks++ {
		for _, ev := range s.Tick(Input{}, testTick) {
			if ev.Type == EventAlienDestroyed {
				destroyed = append(destroyed, ev)
			}
		}
	}

	if len(destroyed) != 1 {
		t.Fatalf("got %d alien explosions, want 1", len(destroyed))
	}
	if ticks != 88 {
		t.Errorf("alien destroyed on tick %d, want 88", ticks)
	}
	if len(s.Lasers()) != 0 || len(s.Aliens()) != 0 {
		t.Errorf("%d lasers and %d aliens left, want none", len(s.Lasers()), len(s.Aliens()))
	}
	if s.Score() != config.AlienReward {
		t.Errorf("score = %d, want %d", s.Score(), config.AlienReward)
	}
	if destroyed[0].X != 225 || destroyed[0].Y != 115 {
		t.Errorf("explosion at (%v, %v), want alien center (225, 115)", destroyed[0].X, destroyed[0].Y)
	}
}

func TestSessionPlayerHitIsTerminal(t *testing.T) {
	s := newTestSession()
	placeObstacleOnPlayer(s)

	events := s.Tick(Input{}, testTick)
	if countEvents(events, EventPlayerHit) != 1 {
		t.Fatalf("events = %v, want one player hit", events)
	}
	if !s.Over() {
		t.Fatal("session not over after a hit")
	}

	elapsed := s.State().Elapsed
	placeObstacleOnPlayer(s)
	if events := s.Tick(Input{Left: true}, testTick); events != nil {
		t.Errorf("tick after hit returned %v, want nil", events)
	}
	if s.State().Elapsed != elapsed {
		t.Error("elapsed time advanced after the hit")
	}
}

func TestSessionHitSkipsProgression(t *testing.T) {
	s := newTestSession()
	s.state.Elapsed = 10*time.Second - testTick
	placeObstacleOnPlayer(s)

	events := s.Tick(Input{}, testTick)

	if countEvents(events, EventLevelUp) != 0 {
		t.Error("level-up processed on the tick the player was hit")
	}
	if s.State().Level != 1 || s.Score() != 0 {
		t.Errorf("level %d score %d, want 1 and 0", s.State().Level, s.Score())
	}
}

func TestSessionLevelTenHint(t *testing.T) {
	s := newTestSession()
	if s.Hint() != "" {
		t.Fatalf("hint at level 1 = %q, want empty", s.Hint())
	}
	s.state.Level = config.ShootingLevel
	s.state.ShootingUnlocked = true
	if s.Hint() != ShootingHint(config.AlienReward) {
		t.Errorf("hint = %q, want %q", s.Hint(), ShootingHint(config.AlienReward))
	}
}

func TestSessionEntitiesGetUniqueIDs(t *testing.T) {
	s := newTestSession()
	for range 400 {
		s.Tick(Input{}, testTick)
		if s.Over() {
			break
		}
	}

	seen := map[int]bool{s.Player().ID: true}
	for _, e := range s.Asteroids() {
		if e.ID == 0 || seen[e.ID] {
			t.Fatalf("asteroid has ID %d, want a fresh non-zero ID", e.ID)
		}
		seen[e.ID] = true
	}
	if len(s.Asteroids()) == 0 {
		t.Error("no asteroids spawned in 4 seconds")
	}
}
