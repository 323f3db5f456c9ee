// Package geom provides the small 2D primitives shared by the ball and
// physics packages. It has no dependencies so the core stays testable.
package geom

import "math"

// Vec2 is a 2D vector in canvas coordinates (y grows downward).
type Vec2 struct {
	X, Y float64
}

func (v Vec2) Add(o Vec2) Vec2       { return Vec2{v.X + o.X, v.Y + o.Y} }
func (v Vec2) Sub(o Vec2) Vec2       { return Vec2{v.X - o.X, v.Y - o.Y} }
func (v Vec2) Scale(f float64) Vec2  { return Vec2{v.X * f, v.Y * f} }
func (v Vec2) Len() float64          { return math.Hypot(v.X, v.Y) }
func (v Vec2) DistTo(o Vec2) float64 { return v.Sub(o).Len() }

// IsFinite reports whether both components are ordinary numbers.
func (v Vec2) IsFinite() bool {
	return !math.IsNaN(v.X) && !math.IsInf(v.X, 0) &&
		!math.IsNaN(v.Y) && !math.IsInf(v.Y, 0)
}

// Rect is an axis-aligned region with origin at the top-left corner.
type Rect struct {
	Width, Height float64
}

func NewRect(w, h float64) Rect {
	return Rect{Width: w, Height: h}
}

// Empty reports whether the rect has no interior.
func (r Rect) Empty() bool {
	return r.Width <= 0 || r.Height <= 0
}

// Clamp restricts v to [lo, hi].
func Clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
