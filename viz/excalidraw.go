// Package viz serializes resolved scenes to the Excalidraw file format. It
// doubles as the default render adapter: each frame is exported whole and
// the external canvas diffs it into the DOM.
package viz

import (
	"encoding/json"
	"math/rand"
	"time"

	"github.com/antonpk1/excalidraw-mcp-app/scene"
)

// ExcalidrawFile is the top-level structure for an .excalidraw file.
type ExcalidrawFile struct {
	Type     string           `json:"type"`
	Version  int              `json:"version"`
	Source   string           `json:"source,omitempty"`
	Elements []*scene.Element `json:"elements"`
	AppState map[string]any   `json:"appState,omitempty"`
	Files    map[string]any   `json:"files,omitempty"`
}

// Exporter turns element lists into Excalidraw files, expanding the label
// shorthand into containerId-bound text children the way the canvas itself
// would.
type Exporter struct {
	Source     string
	randSource *rand.Rand
}

// NewExporter returns an exporter stamping files with the given source URL.
func NewExporter(source string) *Exporter {
	return &Exporter{
		Source:     source,
		randSource: rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

func (g *Exporter) newSeed() int64 { return g.randSource.Int63n(2147483646) + 1 }

// File assembles the serializable file for a scene. The viewport, when
// given, becomes the file's scroll position, translated from scene space
// into the canvas's local coordinate space via the scene's minimum corner.
func (g *Exporter) File(els []*scene.Element, viewport *scene.Viewport) *ExcalidrawFile {
	expanded := g.expandLabels(els)
	appState := map[string]any{"viewBackgroundColor": "#ffffff"}
	if viewport != nil {
		origin := scene.MinCorner(els)
		appState["scrollX"] = origin.X - viewport.X
		appState["scrollY"] = origin.Y - viewport.Y
	}
	return &ExcalidrawFile{
		Type:     "excalidraw",
		Version:  2,
		Source:   g.Source,
		Elements: expanded,
		AppState: appState,
	}
}

// Export serializes a scene to .excalidraw JSON.
func (g *Exporter) Export(els []*scene.Element, viewport *scene.Viewport) ([]byte, error) {
	return json.MarshalIndent(g.File(els, viewport), "", "  ")
}

// expandLabels materializes each shape's label shorthand as a bound text
// child. Label ids derive from the owning shape's id so re-exporting the
// same scene yields the same text elements.
func (g *Exporter) expandLabels(els []*scene.Element) []*scene.Element {
	out := make([]*scene.Element, 0, len(els))
	for _, el := range els {
		el = el.Clone()
		if el.Label == nil || !el.IsShape() {
			out = append(out, el)
			continue
		}
		label := el.Label
		el.Label = nil

		fontSize := label.FontSize
		if fontSize == 0 {
			fontSize = 16
		}
		textID := "label_" + el.ID
		text := &scene.Element{
			ID:           textID,
			Type:         scene.TypeText,
			X:            el.X + 10,
			Y:            el.Y + (el.Height-fontSize*1.5)/2,
			Width:        el.Width - 20,
			Height:       fontSize * 1.5,
			Text:         label.Text,
			FontSize:     fontSize,
			ContainerID:  el.ID,
			Seed:         g.newSeed(),
			VersionNonce: g.newSeed(),
		}
		if label.VerticalAlign == "top" {
			text.Y = el.Y + 8
		}
		el.BoundElements = appendBoundText(el.BoundElements, textID)
		out = append(out, el, text)
	}
	return out
}

func appendBoundText(bes []*scene.BoundElement, id string) []*scene.BoundElement {
	for _, be := range bes {
		if be.ID == id {
			return bes
		}
	}
	return append(bes, &scene.BoundElement{ID: id, Type: "text"})
}
