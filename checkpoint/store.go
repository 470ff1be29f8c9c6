// Package checkpoint persists fully-resolved diagram snapshots by opaque id
// so a later tool invocation can pick up editing where the previous one
// left off.
package checkpoint

import (
	"context"
	"errors"

	"github.com/antonpk1/excalidraw-mcp-app/scene"
)

// ErrNotFound is returned by Load for an unknown checkpoint id.
var ErrNotFound = errors.New("checkpoint not found")

// Checkpoint is a persisted snapshot: the fully-resolved drawable elements
// at the moment of the last save (never a diff) plus the authoring plan.
type Checkpoint struct {
	Elements []*scene.Element
	Plan     string
}

// Clone deep-copies the checkpoint so store internals never alias caller
// state.
func (c *Checkpoint) Clone() *Checkpoint {
	if c == nil {
		return nil
	}
	return &Checkpoint{Elements: scene.CloneAll(c.Elements), Plan: c.Plan}
}

// Store is the persistence boundary. Save overwrites: calling it repeatedly
// with the same id must be safe. Retention is an external concern; nothing
// in the pipeline deletes checkpoints.
type Store interface {
	Save(ctx context.Context, id string, cp *Checkpoint) error
	Load(ctx context.Context, id string) (*Checkpoint, error)
}
