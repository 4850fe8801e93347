package draw

import (
	"github.com/charmbracelet/lipgloss"
)

// Glyphs for one terminal cell holding two stacked sub-pixels.
const (
	BlockFull      = '█'
	BlockEmpty     = ' '
	BlockUpperHalf = '▀'
	BlockLowerHalf = '▄'
)

// Color is an index into a Palette. ColorNone leaves a sub-pixel empty.
type Color uint8

// ColorNone is the empty sub-pixel.
const ColorNone Color = 0

// cell is one terminal character: two stacked sub-pixels.
type cell struct {
	top, bottom Color
}

// Palette maps canvas colors to styled half-block glyphs for one renderer.
// Rendered glyphs are cached per cell so each frame only pays for string lookups.
type Palette struct {
	renderer *lipgloss.Renderer
	colors   []lipgloss.TerminalColor
	cache    map[cell]string
}

// NewPalette creates a palette where colors[i] is drawn for Color(i+1).
// A nil renderer uses the lipgloss default renderer.
func NewPalette(r *lipgloss.Renderer, colors ...lipgloss.TerminalColor) *Palette {
	if r == nil {
		r = lipgloss.DefaultRenderer()
	}
	return &Palette{
		renderer: r,
		colors:   colors,
		cache:    make(map[cell]string),
	}
}

// Len returns the number of drawable colors.
func (p *Palette) Len() int {
	return len(p.colors)
}

func (p *Palette) color(c Color) (lipgloss.TerminalColor, bool) {
	if c == ColorNone || int(c) > len(p.colors) {
		return nil, false
	}
	return p.colors[c-1], true
}

// glyph returns the styled string for a cell.
func (p *Palette) glyph(cl cell) string {
	if s, ok := p.cache[cl]; ok {
		return s
	}

	top, hasTop := p.color(cl.top)
	bottom, hasBottom := p.color(cl.bottom)
	style := p.renderer.NewStyle()

	var s string
	switch {
	case !hasTop && !hasBottom:
		s = string(BlockEmpty)
	case cl.top == cl.bottom:
		s = style.Foreground(top).Render(string(BlockFull))
	case !hasBottom:
		s = style.Foreground(top).Render(string(BlockUpperHalf))
	case !hasTop:
		s = style.Foreground(bottom).Render(string(BlockLowerHalf))
	default:
		s = style.Foreground(top).Background(bottom).Render(string(BlockUpperHalf))
	}
	p.cache[cl] = s
	return s
}
