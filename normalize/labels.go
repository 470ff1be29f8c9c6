package normalize

import (
	gfn "github.com/panyam/goutils/fn"
	"golang.org/x/text/unicode/norm"

	"github.com/antonpk1/excalidraw-mcp-app/geometry"
	"github.com/antonpk1/excalidraw-mcp-app/scene"
)

// mergeFloatingLabels folds free-floating text positioned directly above a
// shape into that shape's label. Models often author section titles as
// separate text nodes; left alone, the title and the shape's own label
// render as two independently-truncating text elements. Only shapes without
// a pre-existing label are eligible; the larger shape wins when several
// qualify, with the smaller vertical gap as tie-break.
func (p *Pipeline) mergeFloatingLabels(els []*scene.Element) []*scene.Element {
	merged := map[string]bool{}
	for _, txt := range els {
		if txt.Type != scene.TypeText || txt.ContainerID != "" || txt.Text == "" {
			continue
		}
		target := findLabelTarget(txt, els)
		if target == nil {
			continue
		}
		label := &scene.Label{
			Text:     norm.NFC.String(txt.Text),
			FontSize: txt.FontSize,
		}
		if target.Bounds().Area() > ContainerAreaThreshold {
			label.VerticalAlign = "top"
		}
		target.Label = label
		merged[txt.ID] = true
	}
	if len(merged) == 0 {
		return els
	}
	return gfn.Filter(els, func(el *scene.Element) bool { return !merged[el.ID] })
}

// findLabelTarget returns the shape a floating title should merge into, or
// nil when none qualifies.
func findLabelTarget(txt *scene.Element, els []*scene.Element) *scene.Element {
	tb := txt.Bounds()
	var best *scene.Element
	var bestArea, bestGap float64
	for _, s := range els {
		if !s.IsShape() || s.Label != nil || s.ID == txt.ID {
			continue
		}
		sb := s.Bounds()
		gap := sb.Y - tb.Bottom()
		if gap > LabelAboveGap || gap < -LabelOverlapTolerance {
			continue
		}
		if !geometry.HorizontalOverlap(tb, sb) {
			continue
		}
		area := sb.Area()
		if best == nil || area > bestArea || (area == bestArea && gap < bestGap) {
			best, bestArea, bestGap = s, area, gap
		}
	}
	return best
}
