// Package scene defines the element data model streamed by the model, the
// tolerant wire codec for it, and the extraction of pseudo-elements
// (instructions) from drawable elements.
package scene

import "encoding/json"

// Element types understood by the pipeline. The wire format is open: any
// other type passes through the codec and the normalization pipeline
// untouched so that new element kinds never get stripped.
const (
	TypeRectangle = "rectangle"
	TypeDiamond   = "diamond"
	TypeEllipse   = "ellipse"
	TypeArrow     = "arrow"
	TypeLine      = "line"
	TypeText      = "text"

	// Pseudo-element types. These encode instructions (camera moves,
	// deletions, checkpoint restores); they are never rendered and never
	// persisted as drawables.
	TypeCameraUpdate      = "cameraUpdate"
	TypeDelete            = "delete"
	TypeRestoreCheckpoint = "restoreCheckpoint"
)

// Binding records how an arrow endpoint attaches to another element.
// FixedPoint is a normalized attachment point in [0,1]x[0,1] of the target's
// bounding box; Focus/Gap are passed through for the renderer.
type Binding struct {
	ElementID  string      `json:"elementId"`
	Focus      float64     `json:"focus,omitempty"`
	Gap        float64     `json:"gap,omitempty"`
	FixedPoint *[2]float64 `json:"fixedPoint,omitempty"`
}

// BoundElement is the back-reference a shape keeps to elements bound to it
// (label text, attached arrows).
type BoundElement struct {
	ID   string `json:"id"`
	Type string `json:"type"`
}

// Label is the shorthand a model uses to put text on a shape. The renderer
// expands it into a containerId-bound text child; the pipeline may also fill
// it in when merging a free-floating title into a shape.
type Label struct {
	Text          string  `json:"text"`
	FontSize      float64 `json:"fontSize,omitempty"`
	VerticalAlign string  `json:"verticalAlign,omitempty"`
}

// Viewport is a camera rectangle in scene coordinates. Width/height should
// approximate 4:3 but the pipeline tolerates deviation and corrects it at
// render time.
type Viewport struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Element is one entry of the streamed element array. It is a tagged union
// discriminated by Type: shapes carry position/size, linear elements carry a
// polyline of offsets relative to (X, Y), text carries font data and an
// optional owning container, and pseudo-elements reuse ID/IDs for their
// directive payloads. Fields the pipeline does not model are preserved in
// Extra and round-trip through the codec untouched.
type Element struct {
	ID   string `json:"id,omitempty"`
	Type string `json:"type"`

	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`

	// Linear elements: offsets from (X, Y); first point is normally [0,0].
	Points [][]float64 `json:"points,omitempty"`

	Label    *Label  `json:"label,omitempty"`
	Text     string  `json:"text,omitempty"`
	FontSize float64 `json:"fontSize,omitempty"`

	GroupIDs      []string        `json:"groupIds,omitempty"`
	ContainerID   string          `json:"containerId,omitempty"`
	BoundElements []*BoundElement `json:"boundElements,omitempty"`

	StartBinding   *Binding `json:"startBinding,omitempty"`
	EndBinding     *Binding `json:"endBinding,omitempty"`
	StartArrowhead *string  `json:"startArrowhead,omitempty"`
	EndArrowhead   *string  `json:"endArrowhead,omitempty"`

	// Cosmetic jitter fields regenerated on every normalization pass.
	Seed         int64 `json:"seed,omitempty"`
	VersionNonce int64 `json:"versionNonce,omitempty"`

	// Delete directives: comma-joined target ids.
	IDs string `json:"ids,omitempty"`

	// Unmodeled wire fields, preserved verbatim.
	Extra map[string]json.RawMessage `json:"-"`
}

// IsPseudo reports whether the element is an instruction rather than a
// drawable.
func (e *Element) IsPseudo() bool {
	switch e.Type {
	case TypeCameraUpdate, TypeDelete, TypeRestoreCheckpoint:
		return true
	}
	return false
}

// IsShape reports whether the element is a boundable closed shape.
func (e *Element) IsShape() bool {
	switch e.Type {
	case TypeRectangle, TypeDiamond, TypeEllipse:
		return true
	}
	return false
}

// IsLinear reports whether the element is an arrow or line.
func (e *Element) IsLinear() bool {
	return e.Type == TypeArrow || e.Type == TypeLine
}

// Clone returns a deep copy of the element.
func (e *Element) Clone() *Element {
	if e == nil {
		return nil
	}
	out := *e
	if e.Points != nil {
		out.Points = make([][]float64, len(e.Points))
		for i, p := range e.Points {
			out.Points[i] = append([]float64(nil), p...)
		}
	}
	if e.Label != nil {
		l := *e.Label
		out.Label = &l
	}
	out.GroupIDs = append([]string(nil), e.GroupIDs...)
	if e.BoundElements != nil {
		out.BoundElements = make([]*BoundElement, len(e.BoundElements))
		for i, be := range e.BoundElements {
			b := *be
			out.BoundElements[i] = &b
		}
	}
	out.StartBinding = cloneBinding(e.StartBinding)
	out.EndBinding = cloneBinding(e.EndBinding)
	if e.StartArrowhead != nil {
		s := *e.StartArrowhead
		out.StartArrowhead = &s
	}
	if e.EndArrowhead != nil {
		s := *e.EndArrowhead
		out.EndArrowhead = &s
	}
	if e.Extra != nil {
		out.Extra = make(map[string]json.RawMessage, len(e.Extra))
		for k, v := range e.Extra {
			out.Extra[k] = v
		}
	}
	return &out
}

func cloneBinding(b *Binding) *Binding {
	if b == nil {
		return nil
	}
	out := *b
	if b.FixedPoint != nil {
		fp := *b.FixedPoint
		out.FixedPoint = &fp
	}
	return &out
}

// CloneAll deep-copies a slice of elements.
func CloneAll(els []*Element) []*Element {
	if els == nil {
		return nil
	}
	out := make([]*Element, len(els))
	for i, e := range els {
		out[i] = e.Clone()
	}
	return out
}
