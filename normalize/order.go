package normalize

import (
	"github.com/antonpk1/excalidraw-mcp-app/geometry"
	"github.com/antonpk1/excalidraw-mcp-app/scene"
)

// reorderDrawOrder rebuilds the z-order so arrows sit above background
// containers but below the foreground boxes they connect, and nested "chip"
// shapes are never occluded by their parent. Emission order: containers,
// arrows, nested shapes, everything else — each class keeping its original
// relative order.
func reorderDrawOrder(els []*scene.Element) []*scene.Element {
	containers := map[string]bool{}
	nested := map[string]bool{}
	for _, outer := range els {
		if !outer.IsShape() {
			continue
		}
		ob := outer.Bounds()
		for _, inner := range els {
			if inner.ID == outer.ID || !inner.IsShape() {
				continue
			}
			ib := inner.Bounds()
			if ib.Area() < ob.Area() && geometry.IsFullyInside(ib, ob) {
				containers[outer.ID] = true
				nested[inner.ID] = true
			}
		}
	}

	var front, arrows, chips, rest []*scene.Element
	for _, el := range els {
		switch {
		case containers[el.ID]:
			front = append(front, el)
		case el.IsLinear():
			arrows = append(arrows, el)
		case nested[el.ID]:
			chips = append(chips, el)
		default:
			rest = append(rest, el)
		}
	}
	out := make([]*scene.Element, 0, len(els))
	out = append(out, front...)
	out = append(out, arrows...)
	out = append(out, chips...)
	out = append(out, rest...)
	return out
}
