package scene

import (
	"strings"

	gfn "github.com/panyam/goutils/fn"
)

// Directives are the instructions carried by pseudo-elements in a payload.
type Directives struct {
	// Camera is the most recent cameraUpdate; later entries override
	// earlier ones.
	Camera *Viewport

	// DeleteIDs accumulates every id named by delete directives.
	DeleteIDs map[string]bool

	// RestoreID is the checkpoint to resolve against; the first occurrence
	// wins.
	RestoreID string
}

// Deletes reports whether id is targeted directly by a delete directive.
func (d *Directives) Deletes(id string) bool {
	return d.DeleteIDs[id]
}

// Split partitions a payload into its directives and the ordered drawable
// elements with pseudo-elements removed. It is a pure partition: the input
// slice is not mutated and drawables keep their relative order.
func Split(els []*Element) (*Directives, []*Element) {
	d := &Directives{DeleteIDs: map[string]bool{}}
	for _, el := range els {
		switch el.Type {
		case TypeCameraUpdate:
			d.Camera = &Viewport{X: el.X, Y: el.Y, Width: el.Width, Height: el.Height}
		case TypeDelete:
			for _, id := range strings.Split(el.IDs, ",") {
				if id = strings.TrimSpace(id); id != "" {
					d.DeleteIDs[id] = true
				}
			}
		case TypeRestoreCheckpoint:
			if d.RestoreID == "" {
				d.RestoreID = el.ID
			}
		}
	}
	drawables := gfn.Filter(els, func(el *Element) bool { return !el.IsPseudo() })
	return d, drawables
}
