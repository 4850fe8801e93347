package loop

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/tomz197/spacedodge/internal/draw"
)

// Canvas colors, in palette order.
const (
	colorPlayer draw.Color = iota + 1
	colorAsteroid
	colorAlien
	colorLaser
	colorStarNear
	colorStarFar
	colorSpark
	colorEmber
)

// Theme holds the text styles for one renderer. Each SSH session has its
// own renderer so color support follows that client's terminal.
type Theme struct {
	renderer *lipgloss.Renderer

	Title    lipgloss.Style
	Item     lipgloss.Style
	Selected lipgloss.Style
	HUD      lipgloss.Style
	Message  lipgloss.Style
	Hint     lipgloss.Style
	Danger   lipgloss.Style
	Faint    lipgloss.Style
}

// NewTheme builds the styles for r. A nil renderer uses the default one.
func NewTheme(r *lipgloss.Renderer) Theme {
	if r == nil {
		r = lipgloss.DefaultRenderer()
	}
	return Theme{
		renderer: r,
		Title:    r.NewStyle().Bold(true).Foreground(lipgloss.Color("#FFD700")),
		Item:     r.NewStyle().Foreground(lipgloss.Color("#C0C0C0")),
		Selected: r.NewStyle().Bold(true).Foreground(lipgloss.Color("#000000")).Background(lipgloss.Color("#4682B4")),
		HUD:      r.NewStyle().Foreground(lipgloss.Color("#FFFFFF")),
		Message:  r.NewStyle().Bold(true).Foreground(lipgloss.Color("#FFFF00")),
		Hint:     r.NewStyle().Foreground(lipgloss.Color("#87CEEB")),
		Danger:   r.NewStyle().Bold(true).Foreground(lipgloss.Color("#FF3030")),
		Faint:    r.NewStyle().Faint(true),
	}
}

// Palette returns the canvas palette matching the color constants.
func (t Theme) Palette() *draw.Palette {
	return draw.NewPalette(t.renderer,
		lipgloss.Color("#00E5FF"), // player
		lipgloss.Color("#8B8B83"), // asteroid
		lipgloss.Color("#32CD32"), // alien
		lipgloss.Color("#FF4040"), // laser
		lipgloss.Color("#E0E0E0"), // near stars
		lipgloss.Color("#606060"), // far stars
		lipgloss.Color("#FFD24D"), // fresh particles
		lipgloss.Color("#FF6A00"), // dying particles
	)
}
