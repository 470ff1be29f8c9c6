package normalize

import (
	"github.com/antonpk1/excalidraw-mcp-app/geometry"
	"github.com/antonpk1/excalidraw-mcp-app/scene"
)

// autoBindArrows attaches loose arrow/line endpoints to the nearest shape
// within MaxBindingDistance. Endpoints that already carry an explicit
// binding are left alone. The end point never binds to the shape just
// chosen for the start point, so a short arrow cannot collapse onto a
// single shape.
func (p *Pipeline) autoBindArrows(els []*scene.Element) {
	shapes := make([]*scene.Element, 0, len(els))
	for _, el := range els {
		if el.IsShape() {
			shapes = append(shapes, el)
		}
	}
	for _, arrow := range els {
		if !arrow.IsLinear() {
			continue
		}
		var startShape *scene.Element
		if arrow.StartBinding == nil {
			startShape = nearestShape(arrow.StartPoint(), shapes, arrow.ID, "")
			if startShape != nil {
				arrow.StartBinding = bindingTo(startShape, arrow.StartPoint())
				addBoundArrow(startShape, arrow.ID)
			}
		}
		if arrow.EndBinding == nil {
			exclude := ""
			if startShape != nil {
				exclude = startShape.ID
			}
			if endShape := nearestShape(arrow.EndPoint(), shapes, arrow.ID, exclude); endShape != nil {
				arrow.EndBinding = bindingTo(endShape, arrow.EndPoint())
				addBoundArrow(endShape, arrow.ID)
			}
		}
	}
}

// nearestShape returns the closest eligible shape within the binding
// radius, or nil.
func nearestShape(pt geometry.Point, shapes []*scene.Element, selfID, excludeID string) *scene.Element {
	var best *scene.Element
	bestDist := MaxBindingDistance
	for _, s := range shapes {
		if s.ID == selfID || s.ID == excludeID {
			continue
		}
		if d := geometry.DistanceToRect(pt, s.Bounds()); d <= bestDist {
			best, bestDist = s, d
		}
	}
	return best
}

func bindingTo(shape *scene.Element, pt geometry.Point) *scene.Binding {
	fx, fy := geometry.EdgeAttachment(pt, shape.Bounds())
	fp := [2]float64{fx, fy}
	return &scene.Binding{ElementID: shape.ID, FixedPoint: &fp}
}

// addBoundArrow records the back-reference from a shape to an arrow now
// bound to it, deduplicated.
func addBoundArrow(shape *scene.Element, arrowID string) {
	for _, be := range shape.BoundElements {
		if be.ID == arrowID {
			return
		}
	}
	shape.BoundElements = append(shape.BoundElements, &scene.BoundElement{ID: arrowID, Type: "arrow"})
}

// normalizeArrowheads forces every requested arrowhead to the canonical
// style. "none" and empty stay as authored.
func normalizeArrowheads(els []*scene.Element) {
	canonical := CanonicalArrowhead
	for _, el := range els {
		if !el.IsLinear() {
			continue
		}
		if el.StartArrowhead != nil && *el.StartArrowhead != "" && *el.StartArrowhead != "none" {
			head := canonical
			el.StartArrowhead = &head
		}
		if el.EndArrowhead != nil && *el.EndArrowhead != "" && *el.EndArrowhead != "none" {
			head := canonical
			el.EndArrowhead = &head
		}
	}
}
