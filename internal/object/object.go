// Package object defines the entities that live on the play field.
package object

import (
	"github.com/tomz197/spacedodge/internal/game/config"
	"github.com/tomz197/spacedodge/internal/physics"
)

// Kind tags what an entity is.
type Kind int

const (
	KindPlayer Kind = iota
	KindAsteroid
	KindAlien
	KindLaser
)

func (k Kind) String() string {
	switch k {
	case KindPlayer:
		return "player"
	case KindAsteroid:
		return "asteroid"
	case KindAlien:
		return "alien"
	case KindLaser:
		return "laser"
	default:
		return "unknown"
	}
}

// Field is the play area in logical pixels. The origin is the top-left corner.
type Field struct {
	Width  float64
	Height float64
}

// DefaultField returns the standard play field.
func DefaultField() Field {
	return Field{Width: config.FieldWidth, Height: config.FieldHeight}
}

// Destructible is implemented by entities that can be marked for removal.
type Destructible interface {
	// MarkDestroyed marks the entity for removal at the end of the current pass.
	MarkDestroyed()
	// IsDestroyed returns true if the entity is marked for removal.
	IsDestroyed() bool
}

// Entity is an axis-aligned rectangle on the field.
type Entity struct {
	ID            int
	Kind          Kind
	X, Y          float64 // Top-left corner
	Width, Height float64
	destroyed     bool
}

var _ Destructible = (*Entity)(nil)

// NewEntity creates an entity. Non-positive sizes are replaced by 1.
func NewEntity(kind Kind, x, y, width, height float64) *Entity {
	if width <= 0 {
		width = 1
	}
	if height <= 0 {
		height = 1
	}
	return &Entity{
		Kind:   kind,
		X:      x,
		Y:      y,
		Width:  width,
		Height: height,
	}
}

// Rect returns the entity's bounding rectangle.
func (e *Entity) Rect() physics.Rect {
	return physics.Rect{X: e.X, Y: e.Y, W: e.Width, H: e.Height}
}

// CenterX returns the horizontal center, truncated to whole pixels.
func (e *Entity) CenterX() float64 {
	return e.X + float64(int(e.Width)/2)
}

// Move translates the entity.
func (e *Entity) Move(dx, dy float64) {
	e.X += dx
	e.Y += dy
}

// MarkDestroyed marks the entity for removal.
func (e *Entity) MarkDestroyed() {
	e.destroyed = true
}

// IsDestroyed returns true if the entity is marked for removal.
func (e *Entity) IsDestroyed() bool {
	return e.destroyed
}

// BelowField reports whether the entity has fallen past the bottom edge.
func (e *Entity) BelowField(f Field) bool {
	return e.Y > f.Height
}

// AboveField reports whether the entity's bottom edge has passed the top edge.
func (e *Entity) AboveField() bool {
	return e.Y+e.Height < 0
}

// Velocity returns the per-tick displacement for an entity kind.
// Players are moved by input, so their velocity is zero.
func Velocity(kind Kind, fallSpeed float64) (vx, vy float64) {
	switch kind {
	case KindAsteroid, KindAlien:
		return 0, fallSpeed
	case KindLaser:
		return 0, -config.LaserSpeed
	default:
		return 0, 0
	}
}

// Compact removes destroyed entities in place and returns the shortened slice.
func Compact(entities []*Entity) []*Entity {
	kept := entities[:0]
	for _, e := range entities {
		if !e.IsDestroyed() {
			kept = append(kept, e)
		}
	}
	clear(entities[len(kept):])
	return kept
}
