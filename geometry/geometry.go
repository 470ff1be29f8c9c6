// Package geometry provides the pure 2D predicates used by scene
// normalization: bounding boxes, point-to-rect distances, containment and
// viewport aspect correction. Everything here is side-effect free so the
// heuristics built on top stay independently testable.
package geometry

import "math"

// Point is a position in scene coordinates.
type Point struct {
	X, Y float64
}

// Rect is an axis-aligned rectangle in scene coordinates.
type Rect struct {
	X, Y, Width, Height float64
}

// Center returns the center point of the rectangle.
func (r Rect) Center() Point {
	return Point{X: r.X + r.Width/2, Y: r.Y + r.Height/2}
}

// Area returns the rectangle's area.
func (r Rect) Area() float64 {
	return r.Width * r.Height
}

// Right returns the maximum x coordinate.
func (r Rect) Right() float64 { return r.X + r.Width }

// Bottom returns the maximum y coordinate.
func (r Rect) Bottom() float64 { return r.Y + r.Height }

// IsFullyInside reports whether inner lies entirely within outer.
func IsFullyInside(inner, outer Rect) bool {
	return inner.X >= outer.X && inner.Y >= outer.Y &&
		inner.Right() <= outer.Right() && inner.Bottom() <= outer.Bottom()
}

// DistanceToRect returns the minimum distance from p to the rectangle, zero
// if p lies inside it.
func DistanceToRect(p Point, r Rect) float64 {
	dx := math.Max(math.Max(r.X-p.X, 0), p.X-r.Right())
	dy := math.Max(math.Max(r.Y-p.Y, 0), p.Y-r.Bottom())
	return math.Hypot(dx, dy)
}

// HorizontalOverlap reports whether the x-spans of two rectangles intersect.
func HorizontalOverlap(a, b Rect) bool {
	return a.X < b.Right() && b.X < a.Right()
}

// EdgeAttachment maps an endpoint near a shape to a normalized [0,1]x[0,1]
// attachment point on the shape's boundary. The axis with the larger
// displacement from the shape's center decides whether the attachment snaps
// to the left/right or the top/bottom edge midpoint.
func EdgeAttachment(p Point, r Rect) (fx, fy float64) {
	c := r.Center()
	dx, dy := p.X-c.X, p.Y-c.Y
	if math.Abs(dx) >= math.Abs(dy) {
		fy = 0.5
		if dx < 0 {
			fx = 0
		} else {
			fx = 1
		}
		return fx, fy
	}
	fx = 0.5
	if dy < 0 {
		fy = 0
	} else {
		fy = 1
	}
	return fx, fy
}

// ExpandToAspect grows the rectangle about its center until width/height
// matches the given ratio. The smaller dimension is expanded; nothing is
// ever cropped.
func ExpandToAspect(r Rect, ratio float64) Rect {
	if r.Width <= 0 || r.Height <= 0 || ratio <= 0 {
		return r
	}
	current := r.Width / r.Height
	switch {
	case current < ratio:
		w := r.Height * ratio
		r.X -= (w - r.Width) / 2
		r.Width = w
	case current > ratio:
		h := r.Width / ratio
		r.Y -= (h - r.Height) / 2
		r.Height = h
	}
	return r
}
