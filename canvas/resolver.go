package canvas

import (
	"context"
	"errors"
	"fmt"
	"math"

	"github.com/antonpk1/excalidraw-mcp-app/camera"
	"github.com/antonpk1/excalidraw-mcp-app/checkpoint"
	"github.com/antonpk1/excalidraw-mcp-app/scene"
)

// Resolution is the outcome of merging a payload against its restore base:
// the final drawable scene for this invocation, the governing plan, the
// camera directive (if any) and soft advisory hints.
type Resolution struct {
	Elements     []*scene.Element
	Plan         string
	Camera       *scene.Viewport
	RestoredFrom string
	Hints        []string
}

// resolve merges a restored checkpoint's elements with newly supplied
// drawables and applied deletions into one coherent ordered scene. Base
// elements come first: new elements always render in front of carried-over
// state. Resolving the same inputs twice with no intervening writes yields
// identical output.
func (s *Session) resolve(ctx context.Context, els []*scene.Element, plan string) (*Resolution, error) {
	d, drawables := scene.Split(els)
	res := &Resolution{Plan: plan, Camera: d.Camera, RestoredFrom: d.RestoreID}

	if d.RestoreID == "" {
		if len(d.DeleteIDs) > 0 {
			res.Hints = append(res.Hints, "delete directives were ignored: nothing to delete without a restoreCheckpoint base")
		}
		res.Elements = drawables
		return res, annotateCamera(res)
	}

	base, err := s.store.Load(ctx, d.RestoreID)
	if errors.Is(err, checkpoint.ErrNotFound) {
		return nil, fmt.Errorf("%w %q: the diagram must be rebuilt from scratch", ErrCheckpointNotFound, d.RestoreID)
	}
	if err != nil {
		return nil, fmt.Errorf("loading checkpoint %q: %w", d.RestoreID, err)
	}

	kept := make([]*scene.Element, 0, len(base.Elements))
	for _, el := range base.Elements {
		// A deleted shape takes its bound text down with it.
		if d.Deletes(el.ID) || (el.ContainerID != "" && d.Deletes(el.ContainerID)) {
			continue
		}
		kept = append(kept, el)
	}
	res.Elements = append(kept, drawables...)
	if res.Plan == "" {
		res.Plan = base.Plan
	}
	return res, annotateCamera(res)
}

// annotateCamera adds a hint when the authored camera deviates from 4:3
// enough that render-time correction will visibly reframe it.
func annotateCamera(res *Resolution) error {
	if res.Camera == nil || res.Camera.Height <= 0 {
		return nil
	}
	if math.Abs(res.Camera.Width/res.Camera.Height-camera.AspectRatio) > 0.05 {
		res.Hints = append(res.Hints, "camera viewport was not 4:3; the smaller dimension is expanded at render time")
	}
	return nil
}

// unknownTypeHints reports drawables whose type the pipeline does not
// model. They pass through untouched, but the model should know geometry
// normalization skipped them.
func unknownTypeHints(els []*scene.Element) []string {
	unknown := 0
	for _, el := range els {
		switch el.Type {
		case scene.TypeRectangle, scene.TypeDiamond, scene.TypeEllipse,
			scene.TypeArrow, scene.TypeLine, scene.TypeText:
		default:
			unknown++
		}
	}
	if unknown == 0 {
		return nil
	}
	return []string{fmt.Sprintf("%d element(s) have unrecognized types and passed through without normalization", unknown)}
}

// bindingHints reports arrows that stayed unbound after normalization, so
// the model learns its geometry was too far from any shape.
func bindingHints(els []*scene.Element) []string {
	unbound := 0
	for _, el := range els {
		if el.IsLinear() && el.StartBinding == nil && el.EndBinding == nil {
			unbound++
		}
	}
	if unbound == 0 {
		return nil
	}
	return []string{fmt.Sprintf("%d arrow(s) have no endpoint within binding range of a shape and were left unbound", unbound)}
}
