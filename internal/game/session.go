// Package game implements the Space Dodge simulation: one Session per run and
// the Game state machine around it. Nothing here knows how frames are drawn
// or sounds are played; ticks return Events instead.
package game

import (
	"math/rand"
	"time"

	"github.com/tomz197/spacedodge/internal/game/config"
	"github.com/tomz197/spacedodge/internal/object"
)

// Input is the player's intent for one tick.
type Input struct {
	Left, Right bool
	Up, Down    bool
	Shoot       bool
}

// Session is a single run from launch to the first hit.
type Session struct {
	opts      Options
	state     State
	player    *object.Player
	asteroids []*object.Entity
	aliens    []*object.Entity
	spawner   *Spawner
	nextID    int
}

// NewSession creates a session with a fresh state.
func NewSession(opts Options, rng *rand.Rand) *Session {
	opts = opts.normalized()
	s := &Session{
		opts:    opts,
		state:   newState(opts),
		player:  object.NewPlayer(opts.Field),
		spawner: NewSpawner(opts, rng),
	}
	s.assignID(&s.player.Entity)
	return s
}

// Tick advances the session by one step of dt. It is a no-op once the
// player has been hit.
func (s *Session) Tick(in Input, dt time.Duration) []Event {
	if s.state.Hit {
		return nil
	}
	if dt < 0 {
		dt = 0
	}
	s.state.Elapsed += dt

	var events []Event

	// Movement
	s.player.Steer(axis(in.Left, in.Right), axis(in.Up, in.Down), s.opts.PlayerSpeed, s.opts.Field)

	// Shooting
	if s.state.ShootingUnlocked && in.Shoot && s.player.CanShoot(s.state.Elapsed, s.opts.LaserCooldown) {
		laser := s.player.Shoot(s.state.Elapsed)
		s.assignID(laser)
		events = append(events, Event{Type: EventLaserFired, X: laser.X, Y: laser.Y})
	}

	// Lasers
	s.player.AdvanceLasers()
	for _, hit := range ResolveLaserHits(s.player.Lasers, s.aliens) {
		s.state.KillScore += s.opts.AlienReward
		cx, cy := hit.Alien.Rect().Center()
		events = append(events, Event{Type: EventAlienDestroyed, X: cx, Y: cy, Points: s.opts.AlienReward})
	}
	s.player.Lasers = object.Compact(s.player.Lasers)
	s.aliens = object.Compact(s.aliens)
	s.state.Score = s.state.TimeScore + s.state.KillScore

	// Obstacles
	s.asteroids = object.Fall(s.asteroids, s.state.FallSpeed, s.opts.Field)
	s.aliens = object.Fall(s.aliens, s.state.FallSpeed, s.opts.Field)

	asteroids, aliens := s.spawner.Update(&s.state, dt)
	for _, a := range asteroids {
		s.assignID(a)
	}
	for _, a := range aliens {
		s.assignID(a)
	}
	s.asteroids = append(s.asteroids, asteroids...)
	s.aliens = append(s.aliens, aliens...)

	// Player hit ends the run before progression.
	if obstacle := FirstPlayerHit(s.player, s.asteroids, s.aliens); obstacle != nil {
		obstacle.MarkDestroyed()
		s.asteroids = object.Compact(s.asteroids)
		s.aliens = object.Compact(s.aliens)
		s.state.Hit = true
		cx, cy := s.player.Rect().Center()
		return append(events, Event{Type: EventPlayerHit, X: cx, Y: cy})
	}

	return append(events, UpdateProgression(&s.state, s.player)...)
}

// State returns a copy of the session bookkeeping.
func (s *Session) State() State {
	return s.state
}

// Over reports whether the player has been hit.
func (s *Session) Over() bool {
	return s.state.Hit
}

// Score returns the current total score.
func (s *Session) Score() int {
	return s.state.Score
}

// Player returns the ship. Callers must not retain lasers across ticks.
func (s *Session) Player() *object.Player {
	return s.player
}

// Asteroids returns the live asteroids. The slice is reused between ticks.
func (s *Session) Asteroids() []*object.Entity {
	return s.asteroids
}

// Aliens returns the live aliens. The slice is reused between ticks.
func (s *Session) Aliens() []*object.Entity {
	return s.aliens
}

// Lasers returns the player's live lasers.
func (s *Session) Lasers() []*object.Entity {
	return s.player.Lasers
}

// Field returns the play field.
func (s *Session) Field() object.Field {
	return s.opts.Field
}

// Hint returns the persistent instruction for the current level, if any.
func (s *Session) Hint() string {
	if s.state.ShootingUnlocked && s.state.Level == config.ShootingLevel {
		return ShootingHint(s.opts.AlienReward)
	}
	return ""
}

func (s *Session) assignID(e *object.Entity) {
	s.nextID++
	e.ID = s.nextID
}

// axis folds a pair of opposing keys into -1, 0 or 1.
func axis(negative, positive bool) int {
	d := 0
	if negative {
		d--
	}
	if positive {
		d++
	}
	return d
}
