// Package core provides the value types shared by the simulation and the
// presentation layer. It has no external dependencies (especially no
// Bubble Tea) so the simulation stays pure and testable.
package core

import "math"

// Vec2 is a 2D vector in world units. Y grows upward.
type Vec2 struct {
	X, Y float64
}

// V is shorthand for constructing a Vec2.
func V(x, y float64) Vec2 {
	return Vec2{X: x, Y: y}
}

// Add returns v + o.
func (v Vec2) Add(o Vec2) Vec2 {
	return Vec2{X: v.X + o.X, Y: v.Y + o.Y}
}

// Scale returns v multiplied by s.
func (v Vec2) Scale(s float64) Vec2 {
	return Vec2{X: v.X * s, Y: v.Y * s}
}

// AABB is an axis-aligned bounding box described by its center and half extents.
type AABB struct {
	Center Vec2
	Half   Vec2
}

// NewAABB creates a box centered at c with the given half extents.
func NewAABB(c, half Vec2) AABB {
	return AABB{Center: c, Half: half}
}

// Overlaps reports whether two boxes overlap on both axes.
// The test is strict: boxes that only touch along an edge do not overlap.
func (a AABB) Overlaps(b AABB) bool {
	if math.Abs(a.Center.X-b.Center.X) >= a.Half.X+b.Half.X {
		return false
	}
	if math.Abs(a.Center.Y-b.Center.Y) >= a.Half.Y+b.Half.Y {
		return false
	}
	return true
}

// Min returns the bottom-left corner.
func (a AABB) Min() Vec2 {
	return Vec2{X: a.Center.X - a.Half.X, Y: a.Center.Y - a.Half.Y}
}

// Max returns the top-right corner.
func (a AABB) Max() Vec2 {
	return Vec2{X: a.Center.X + a.Half.X, Y: a.Center.Y + a.Half.Y}
}

// Playfield is the visible simulation area, centered on the world origin.
// The host derives it from its viewport; the core never computes it.
type Playfield struct {
	HalfWidth  float64
	HalfHeight float64
}

// Contains reports whether p lies inside the playfield (edges inclusive).
func (pf Playfield) Contains(p Vec2) bool {
	return math.Abs(p.X) <= pf.HalfWidth && math.Abs(p.Y) <= pf.HalfHeight
}

// Rect is an integer rectangle in screen cells, used by the renderer.
type Rect struct {
	X, Y int // Top-left corner position
	W, H int // Width and height
}

// NewRect creates a new rectangle with the given position and dimensions.
func NewRect(x, y, w, h int) Rect {
	return Rect{X: x, Y: y, W: w, H: h}
}

// Right returns the x-coordinate of the right edge.
func (r Rect) Right() int {
	return r.X + r.W
}

// Bottom returns the y-coordinate of the bottom edge.
func (r Rect) Bottom() int {
	return r.Y + r.H
}

// ClampF restricts a float64 value to be within [min, max].
func ClampF(val, min, max float64) float64 {
	if val < min {
		return min
	}
	if val > max {
		return max
	}
	return val
}

// Max returns the larger of two integers.
func Max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
