package object

import "github.com/tomz197/spacedodge/internal/game/config"

// NewAsteroid creates an asteroid just above the top edge at column x.
func NewAsteroid(x float64) *Entity {
	return NewEntity(KindAsteroid, x, -config.ObstacleHeight, config.ObstacleWidth, config.ObstacleHeight)
}

// NewAlien creates an alien just above the top edge at column x.
func NewAlien(x float64) *Entity {
	return NewEntity(KindAlien, x, -config.ObstacleHeight, config.ObstacleWidth, config.ObstacleHeight)
}

// Fall moves every obstacle down by fallSpeed and drops those below the field.
func Fall(obstacles []*Entity, fallSpeed float64, f Field) []*Entity {
	for _, o := range obstacles {
		vx, vy := Velocity(o.Kind, fallSpeed)
		o.Move(vx, vy)
		if o.BelowField(f) {
			o.MarkDestroyed()
		}
	}
	return Compact(obstacles)
}
