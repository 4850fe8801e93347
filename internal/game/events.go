package game

import "time"

// EventType identifies a cue emitted by a tick.
type EventType int

const (
	EventLaserFired     EventType = iota // X, Y: laser position
	EventAlienDestroyed                  // X, Y: explosion center; Points: reward
	EventPlayerHit                       // X, Y: explosion center
	EventLevelUp                         // Level: new level
	EventMessage                         // Message shown for Duration
)

func (t EventType) String() string {
	switch t {
	case EventLaserFired:
		return "laser_fired"
	case EventAlienDestroyed:
		return "alien_destroyed"
	case EventPlayerHit:
		return "player_hit"
	case EventLevelUp:
		return "level_up"
	case EventMessage:
		return "message"
	default:
		return "unknown"
	}
}

// Event is a discrete cue for the presentation layer.
type Event struct {
	Type     EventType
	X, Y     float64
	Level    int
	Points   int
	Message  string
	Duration time.Duration
}
