package view

import (
	"fmt"
	"math"

	"github.com/matzehuels/netgraph/pkg/force"
)

// Zoom scale bounds.
const (
	MinZoom = 0.1
	MaxZoom = 4.0
)

// wheelScale converts a pixel wheel delta into a zoom exponent.
const wheelScale = 0.002

// Transform maps graph coordinates to screen coordinates:
// screen = graph*K + (X, Y).
type Transform struct {
	K float64 `json:"k"`
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Identity is the untransformed view.
func Identity() Transform { return Transform{K: 1} }

// Apply maps a graph point to the screen.
func (t Transform) Apply(p force.Point) force.Point {
	return force.Point{X: p.X*t.K + t.X, Y: p.Y*t.K + t.Y}
}

// Invert maps a screen point back to graph coordinates.
func (t Transform) Invert(p force.Point) force.Point {
	return force.Point{X: (p.X - t.X) / t.K, Y: (p.Y - t.Y) / t.K}
}

// ScaleBy multiplies the scale by factor, keeping the screen point at fixed.
// The result is clamped to [MinZoom, MaxZoom].
func (t Transform) ScaleBy(factor float64, at force.Point) Transform {
	k := clampZoom(t.K * factor)
	g := t.Invert(at)
	return Transform{K: k, X: at.X - g.X*k, Y: at.Y - g.Y*k}
}

// Wheel applies a mouse wheel delta at the given screen point. Positive
// deltas zoom out.
func (t Transform) Wheel(deltaY float64, at force.Point) Transform {
	return t.ScaleBy(math.Pow(2, -deltaY*wheelScale), at)
}

// Pan translates the view by a screen-space delta.
func (t Transform) Pan(dx, dy float64) Transform {
	return Transform{K: t.K, X: t.X + dx, Y: t.Y + dy}
}

// String renders the transform as an SVG transform attribute value.
func (t Transform) String() string {
	return fmt.Sprintf("translate(%g,%g) scale(%g)", t.X, t.Y, t.K)
}

func clampZoom(k float64) float64 {
	if math.IsNaN(k) {
		return 1
	}
	return math.Max(MinZoom, math.Min(MaxZoom, k))
}
