package scene

import (
	"math"

	"github.com/antonpk1/excalidraw-mcp-app/geometry"
)

// Bounds returns the element's bounding box in scene coordinates. For linear
// elements the box spans the polyline; for everything else it is the
// position/size rectangle.
func (e *Element) Bounds() geometry.Rect {
	if !e.IsLinear() || len(e.Points) == 0 {
		return geometry.Rect{X: e.X, Y: e.Y, Width: e.Width, Height: e.Height}
	}
	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	for _, p := range e.Points {
		if len(p) < 2 {
			continue
		}
		x, y := e.X+p[0], e.Y+p[1]
		minX, minY = math.Min(minX, x), math.Min(minY, y)
		maxX, maxY = math.Max(maxX, x), math.Max(maxY, y)
	}
	if math.IsInf(minX, 1) {
		return geometry.Rect{X: e.X, Y: e.Y}
	}
	return geometry.Rect{X: minX, Y: minY, Width: maxX - minX, Height: maxY - minY}
}

// StartPoint returns the scene-space position of a linear element's first
// polyline point, or the element origin when no points exist.
func (e *Element) StartPoint() geometry.Point {
	if len(e.Points) > 0 && len(e.Points[0]) >= 2 {
		return geometry.Point{X: e.X + e.Points[0][0], Y: e.Y + e.Points[0][1]}
	}
	return geometry.Point{X: e.X, Y: e.Y}
}

// EndPoint returns the scene-space position of a linear element's last
// polyline point, or the element origin when no points exist.
func (e *Element) EndPoint() geometry.Point {
	if n := len(e.Points); n > 0 && len(e.Points[n-1]) >= 2 {
		return geometry.Point{X: e.X + e.Points[n-1][0], Y: e.Y + e.Points[n-1][1]}
	}
	return geometry.Point{X: e.X, Y: e.Y}
}

// MinCorner returns the minimum (x, y) corner over all drawable elements.
// Renderers lay scenes out relative to their own bounding box, so this
// offset translates scene-space viewport rects into render space.
func MinCorner(els []*Element) geometry.Point {
	minX, minY := math.Inf(1), math.Inf(1)
	for _, el := range els {
		if el.IsPseudo() {
			continue
		}
		b := el.Bounds()
		minX = math.Min(minX, b.X)
		minY = math.Min(minY, b.Y)
	}
	if math.IsInf(minX, 1) {
		return geometry.Point{}
	}
	return geometry.Point{X: minX, Y: minY}
}
