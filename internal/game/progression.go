package game

import (
	"fmt"

	"github.com/tomz197/spacedodge/internal/game/config"
	"github.com/tomz197/spacedodge/internal/object"
)

// Level messages.
const (
	MessageForwardUnlocked  = "Level 5! You can now move forward and backward!"
	MessageShootingUnlocked = "Level 10! Press SPACE to shoot aliens!"
)

// ShootingHint is the persistent instruction shown while on the shooting level.
func ShootingHint(reward int) string {
	unit := "points"
	if reward == 1 {
		unit = "point"
	}
	return fmt.Sprintf("Press SPACE to shoot aliens! +%d %s per hit!", reward, unit)
}

// UpdateProgression derives level and time score from st.Elapsed and applies
// level-up side effects. Unlocks happen at most once per session.
func UpdateProgression(st *State, p *object.Player) []Event {
	var events []Event

	for target := LevelAt(st.Elapsed); st.Level < target; {
		st.Level++
		if st.Level < config.LateSpeedLevel {
			st.FallSpeed += config.EarlyFallSpeedStep
		} else {
			st.FallSpeed += config.LateFallSpeedStep
		}
		events = append(events, Event{Type: EventLevelUp, Level: st.Level})

		if st.Level >= config.ForwardMoveLevel && !p.ForwardMovementEnabled {
			p.ForwardMovementEnabled = true
			events = append(events, Event{
				Type:     EventMessage,
				Level:    st.Level,
				Message:  MessageForwardUnlocked,
				Duration: config.MessageDuration,
			})
		}
		if st.Level >= config.ShootingLevel && !st.ShootingUnlocked {
			st.ShootingUnlocked = true
			events = append(events, Event{
				Type:     EventMessage,
				Level:    st.Level,
				Message:  MessageShootingUnlocked,
				Duration: config.MessageDuration,
			})
		}
	}

	// Credit only intervals not yet counted.
	if completed := int(st.Elapsed / config.LevelDuration); completed > st.TimeScore {
		st.TimeScore = completed
	}
	st.Score = st.TimeScore + st.KillScore

	return events
}
