package object

import (
	"time"

	"github.com/tomz197/spacedodge/internal/game/config"
	"github.com/tomz197/spacedodge/internal/physics"
)

// Player is the ship. It owns every laser it fires.
type Player struct {
	Entity

	ForwardMovementEnabled bool          // Vertical movement, unlocked once
	LastShotAt             time.Duration // Session time of the last shot
	Lasers                 []*Entity
}

// NewPlayer places the ship at its start column on the bottom edge of f.
func NewPlayer(f Field) *Player {
	p := &Player{
		Entity: *NewEntity(KindPlayer, config.PlayerStartX, f.Height-config.PlayerHeight,
			config.PlayerWidth, config.PlayerHeight),
		LastShotAt: -config.LaserCooldown,
	}
	return p
}

// Steer moves the ship by dx, dy steps of speed pixels, keeping it inside f.
// dx and dy are -1, 0 or 1. Vertical steps are ignored until forward
// movement is enabled.
func (p *Player) Steer(dx, dy int, speed float64, f Field) {
	if !p.ForwardMovementEnabled {
		dy = 0
	}
	p.X = physics.Clamp(p.X+float64(dx)*speed, 0, f.Width-p.Width)
	p.Y = physics.Clamp(p.Y+float64(dy)*speed, 0, f.Height-p.Height)
}

// CanShoot reports whether the cooldown since the last shot has elapsed.
func (p *Player) CanShoot(now, cooldown time.Duration) bool {
	return now-p.LastShotAt >= cooldown
}

// Shoot fires a laser from the top edge of the ship's horizontal center.
func (p *Player) Shoot(now time.Duration) *Entity {
	laser := NewEntity(KindLaser, p.CenterX()-config.LaserWidth/2, p.Y, config.LaserWidth, config.LaserHeight)
	p.Lasers = append(p.Lasers, laser)
	p.LastShotAt = now
	return laser
}

// AdvanceLasers moves lasers upward and drops those that left the field.
func (p *Player) AdvanceLasers() {
	for _, l := range p.Lasers {
		vx, vy := Velocity(KindLaser, 0)
		l.Move(vx, vy)
		if l.AboveField() {
			l.MarkDestroyed()
		}
	}
	p.Lasers = Compact(p.Lasers)
}
