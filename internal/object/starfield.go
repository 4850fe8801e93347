package object

import "math/rand"

// Star is a background point scrolling down the field.
type Star struct {
	X, Y float64
}

// StarLayer is one parallax layer; every star in it scrolls at Speed per tick.
type StarLayer struct {
	Speed float64
	Stars []Star
}

// Starfield is a set of parallax layers that wrap vertically.
type Starfield struct {
	Layers []StarLayer
	field  Field
	rng    *rand.Rand
}

// NewStarfield scatters perLayer stars over the field for each speed.
func NewStarfield(f Field, rng *rand.Rand, perLayer int, speeds ...float64) *Starfield {
	sf := &Starfield{field: f, rng: rng}
	for _, speed := range speeds {
		layer := StarLayer{Speed: speed, Stars: make([]Star, perLayer)}
		for i := range layer.Stars {
			layer.Stars[i] = Star{X: rng.Float64() * f.Width, Y: rng.Float64() * f.Height}
		}
		sf.Layers = append(sf.Layers, layer)
	}
	return sf
}

// Advance scrolls each layer by one tick. A star leaving the bottom
// re-enters at the top in a new column.
func (sf *Starfield) Advance() {
	for li := range sf.Layers {
		layer := &sf.Layers[li]
		for i := range layer.Stars {
			s := &layer.Stars[i]
			s.Y += layer.Speed
			if s.Y >= sf.field.Height {
				s.Y -= sf.field.Height
				s.X = sf.rng.Float64() * sf.field.Width
			}
		}
	}
}
