package canvas

import (
	"context"

	"github.com/antonpk1/excalidraw-mcp-app/geometry"
	"github.com/antonpk1/excalidraw-mcp-app/scene"
)

// RenderAdapter is the boundary to the external vector-graphics renderer.
// Render may be asynchronous under the hood and may fail on malformed
// geometry; callers swallow such failures and let the next good frame
// repaint. MinCorner exposes the renderer's layout origin so scene-space
// viewport rects can be translated into its local coordinate space.
type RenderAdapter interface {
	Render(ctx context.Context, elements []*scene.Element, viewport *scene.Viewport) error
	MinCorner(elements []*scene.Element) geometry.Point
}
