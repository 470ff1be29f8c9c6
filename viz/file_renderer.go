package viz

import (
	"context"
	"os"

	"github.com/antonpk1/excalidraw-mcp-app/geometry"
	"github.com/antonpk1/excalidraw-mcp-app/scene"
)

// FileRenderer is a render adapter that writes every frame to a single
// .excalidraw file on disk. Useful for the render CLI and for watching a
// scene converge with any Excalidraw client pointed at the file.
type FileRenderer struct {
	Path     string
	exporter *Exporter
}

// NewFileRenderer renders scenes into path.
func NewFileRenderer(path string) *FileRenderer {
	return &FileRenderer{
		Path:     path,
		exporter: NewExporter("github.com/antonpk1/excalidraw-mcp-app"),
	}
}

// Render exports the scene and overwrites the target file.
func (r *FileRenderer) Render(ctx context.Context, els []*scene.Element, viewport *scene.Viewport) error {
	data, err := r.exporter.Export(els, viewport)
	if err != nil {
		return err
	}
	return os.WriteFile(r.Path, data, 0644)
}

// MinCorner returns the scene's minimum bounding corner.
func (r *FileRenderer) MinCorner(els []*scene.Element) geometry.Point {
	return scene.MinCorner(els)
}
