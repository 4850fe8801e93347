package draw

import (
	"math"
	"slices"

	"github.com/tomz197/spacedodge/internal/physics"
)

// Point represents a 2D coordinate.
type Point struct {
	X, Y float64
}

// FillRect fills a logical rectangle. Anything that overlaps the canvas
// covers at least one sub-pixel so small objects never vanish on tiny terminals.
func (c *Canvas) FillRect(r physics.Rect, color Color) {
	x0 := int(math.Floor(r.X * c.scaleX))
	y0 := int(math.Floor(r.Y * c.scaleY))
	x1 := int(math.Ceil(r.Right()*c.scaleX)) - 1
	y1 := int(math.Ceil(r.Bottom()*c.scaleY)) - 1
	if x1 < x0 {
		x1 = x0
	}
	if y1 < y0 {
		y1 = y0
	}
	for y := y0; y <= y1; y++ {
		for x := x0; x <= x1; x++ {
			c.setPixel(x, y, color)
		}
	}
}

// subPixel maps a logical point to the nearest sub-pixel.
func (c *Canvas) subPixel(p Point) (int, int) {
	return int(math.Round(p.X * c.scaleX)), int(math.Round(p.Y * c.scaleY))
}

// DrawLine draws a one sub-pixel wide line between two logical points.
func (c *Canvas) DrawLine(p1, p2 Point, color Color) {
	x0, y0 := c.subPixel(p1)
	x1, y1 := c.subPixel(p2)
	steps := max(abs(x1-x0), abs(y1-y0))
	if steps == 0 {
		c.setPixel(x0, y0, color)
		return
	}
	stepX := float64(x1-x0) / float64(steps)
	stepY := float64(y1-y0) / float64(steps)
	for i := 0; i <= steps; i++ {
		c.setPixel(x0+int(math.Round(stepX*float64(i))), y0+int(math.Round(stepY*float64(i))), color)
	}
}

// DrawPolygon outlines a closed polygon and optionally fills it.
// Fewer than three points draw nothing.
func (c *Canvas) DrawPolygon(points []Point, color Color, filled bool) {
	if len(points) < 3 {
		return
	}
	if filled {
		c.fillPolygon(points, color)
	}
	prev := points[len(points)-1]
	for _, p := range points {
		c.DrawLine(prev, p, color)
		prev = p
	}
}

// fillPolygon fills sub-pixel rows whose centers fall inside the polygon
// (even-odd rule).
func (c *Canvas) fillPolygon(points []Point, color Color) {
	c.scaledBuf = c.scaledBuf[:0]
	top, bottom := math.Inf(1), math.Inf(-1)
	for _, p := range points {
		sp := Point{X: p.X * c.scaleX, Y: p.Y * c.scaleY}
		c.scaledBuf = append(c.scaledBuf, sp)
		top = min(top, sp.Y)
		bottom = max(bottom, sp.Y)
	}

	edges := c.scaledBuf
	for y := int(math.Floor(top)); y <= int(math.Ceil(bottom)); y++ {
		mid := float64(y) + 0.5
		xs := c.intersectionBuf[:0]
		prev := edges[len(edges)-1]
		for _, p := range edges {
			if (prev.Y <= mid) != (p.Y <= mid) {
				xs = append(xs, prev.X+(mid-prev.Y)/(p.Y-prev.Y)*(p.X-prev.X))
			}
			prev = p
		}
		slices.Sort(xs)
		for i := 0; i+1 < len(xs); i += 2 {
			for x := int(math.Ceil(xs[i])); x <= int(math.Floor(xs[i+1])); x++ {
				c.setPixel(x, y, color)
			}
		}
		c.intersectionBuf = xs
	}
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
