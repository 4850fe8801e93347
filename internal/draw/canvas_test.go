package draw

import (
	"bytes"
	"io"
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"

	"github.com/tomz197/spacedodge/internal/physics"
)

func testCanvas(cols, rows int, logicalW, logicalH float64) *Canvas {
	p := NewPalette(lipgloss.NewRenderer(io.Discard), lipgloss.Color("1"), lipgloss.Color("2"))
	return NewScaledCanvas(cols, rows, logicalW, logicalH, p)
}

func TestFillRect(t *testing.T) {
	c := testCanvas(10, 5, 10, 10)
	c.FillRect(physics.Rect{X: 2, Y: 2, W: 3, H: 2}, 1)

	tests := []struct {
		x, y int
		want Color
	}{
		{2, 2, 1},
		{4, 3, 1},
		{5, 2, ColorNone},
		{2, 4, ColorNone},
		{1, 2, ColorNone},
	}
	for _, tt := range tests {
		if got := c.Pixel(tt.x, tt.y); got != tt.want {
			t.Errorf("Pixel(%d, %d) = %d, want %d", tt.x, tt.y, got, tt.want)
		}
	}
}

func TestFillRectTinyStillVisible(t *testing.T) {
	c := testCanvas(10, 5, 1000, 1000)
	c.FillRect(physics.Rect{X: 500, Y: 500, W: 1, H: 1}, 2)
	if got := c.Pixel(5, 5); got != 2 {
		t.Errorf("Pixel(5, 5) = %d, want 2", got)
	}
}

func TestFillRectOffCanvasIgnored(t *testing.T) {
	c := testCanvas(10, 5, 10, 10)
	c.FillRect(physics.Rect{X: 2, Y: -5, W: 3, H: 5}, 1)
	for x := 0; x < 10; x++ {
		if c.Pixel(x, 0) != ColorNone {
			t.Fatalf("pixel (%d, 0) set for a rect above the canvas", x)
		}
	}
}

func TestDrawPolygon(t *testing.T) {
	tri := []Point{{X: 0, Y: 0}, {X: 8, Y: 0}, {X: 0, Y: 8}}

	filled := testCanvas(10, 5, 10, 10)
	filled.DrawPolygon(tri, 1, true)
	outline := testCanvas(10, 5, 10, 10)
	outline.DrawPolygon(tri, 1, false)

	tests := []struct {
		name string
		c    *Canvas
		x, y int
		want Color
	}{
		{"filled interior", filled, 2, 2, 1},
		{"filled corner", filled, 8, 0, 1},
		{"filled outside", filled, 7, 7, ColorNone},
		{"outline edge", outline, 4, 4, 1},
		{"outline interior", outline, 2, 2, ColorNone},
	}
	for _, tt := range tests {
		if got := tt.c.Pixel(tt.x, tt.y); got != tt.want {
			t.Errorf("%s: Pixel(%d, %d) = %d, want %d", tt.name, tt.x, tt.y, got, tt.want)
		}
	}

	empty := testCanvas(10, 5, 10, 10)
	empty.DrawPolygon(tri[:2], 1, true)
	for x := 0; x < 10; x++ {
		if empty.Pixel(x, 0) != ColorNone {
			t.Fatal("two points should draw nothing")
		}
	}
}

func TestRenderOnlyChangedCells(t *testing.T) {
	c := testCanvas(4, 2, 4, 4)

	var first bytes.Buffer
	c.Render(&first)
	if first.Len() == 0 {
		t.Fatal("first render should paint every cell")
	}

	var idle bytes.Buffer
	c.Render(&idle)
	if idle.Len() != 0 {
		t.Errorf("unchanged frame wrote %q", idle.String())
	}

	c.FillRect(physics.Rect{X: 0, Y: 0, W: 1, H: 1}, 1)
	var changed bytes.Buffer
	c.Render(&changed)
	out := changed.String()
	if !strings.HasPrefix(out, "\033[1;1H") {
		t.Errorf("expected cursor move to 1;1, got %q", out)
	}
	if !strings.Contains(out, string(BlockUpperHalf)) {
		t.Errorf("expected upper half block in %q", out)
	}
	if strings.Contains(out, "\033[2;") {
		t.Errorf("second row did not change but was written: %q", out)
	}
}

func TestForceRedraw(t *testing.T) {
	c := testCanvas(4, 2, 4, 4)
	c.Render(io.Discard)

	c.ForceRedraw()
	var buf bytes.Buffer
	c.Render(&buf)
	if strings.Count(buf.String(), "H") != 2 {
		t.Errorf("expected one cursor move per row, got %q", buf.String())
	}
}

func TestRenderOffset(t *testing.T) {
	c := testCanvas(2, 1, 2, 2)
	c.SetOffset(3, 4)
	var buf bytes.Buffer
	c.Render(&buf)
	if !strings.HasPrefix(buf.String(), "\033[5;4H") {
		t.Errorf("offset not applied: %q", buf.String())
	}
}

func TestPaletteGlyph(t *testing.T) {
	p := NewPalette(lipgloss.NewRenderer(io.Discard), lipgloss.Color("1"), lipgloss.Color("2"))

	tests := []struct {
		name string
		c    cell
		want string
	}{
		{"empty", cell{}, " "},
		{"full", cell{1, 1}, string(BlockFull)},
		{"top", cell{2, 0}, string(BlockUpperHalf)},
		{"bottom", cell{0, 1}, string(BlockLowerHalf)},
		{"two colors", cell{1, 2}, string(BlockUpperHalf)},
		{"unknown color", cell{9, 0}, " "},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := p.glyph(tt.c); !strings.Contains(got, tt.want) {
				t.Errorf("glyph(%v) = %q, want it to contain %q", tt.c, got, tt.want)
			}
		})
	}
}
