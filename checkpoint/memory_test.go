package checkpoint

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/antonpk1/excalidraw-mcp-app/scene"
)

func TestMemoryStoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	cp := &Checkpoint{
		Elements: []*scene.Element{
			{ID: "a", Type: scene.TypeRectangle, X: 10, Y: 20, Width: 100, Height: 50},
		},
		Plan: "one box",
	}
	require.NoError(t, store.Save(ctx, "cp_1", cp))

	got, err := store.Load(ctx, "cp_1")
	require.NoError(t, err)
	assert.Equal(t, "one box", got.Plan)
	require.Len(t, got.Elements, 1)
	assert.Equal(t, "a", got.Elements[0].ID)
}

func TestMemoryStoreLoadUnknown(t *testing.T) {
	_, err := NewMemoryStore().Load(context.Background(), "nope")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryStoreSaveOverwrites(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	require.NoError(t, store.Save(ctx, "cp_1", &Checkpoint{Plan: "v1"}))
	require.NoError(t, store.Save(ctx, "cp_1", &Checkpoint{Plan: "v2"}))

	got, err := store.Load(ctx, "cp_1")
	require.NoError(t, err)
	assert.Equal(t, "v2", got.Plan)
}

func TestMemoryStoreDoesNotAliasCallerState(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	el := &scene.Element{ID: "a", Type: scene.TypeRectangle, X: 10}
	require.NoError(t, store.Save(ctx, "cp_1", &Checkpoint{Elements: []*scene.Element{el}}))
	el.X = 999

	got, err := store.Load(ctx, "cp_1")
	require.NoError(t, err)
	assert.Equal(t, 10.0, got.Elements[0].X)

	// Mutating a loaded copy must not leak back either.
	got.Elements[0].X = -1
	again, err := store.Load(ctx, "cp_1")
	require.NoError(t, err)
	assert.Equal(t, 10.0, again.Elements[0].X)
}

func TestMemoryStoreHas(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	assert.False(t, store.Has("cp_1"))
	require.NoError(t, store.Save(ctx, "cp_1", &Checkpoint{}))
	assert.True(t, store.Has("cp_1"))
}

func TestIDGenShapeAndCollisionRetry(t *testing.T) {
	gen := NewIDGen(nil)
	id := gen.NextID()
	assert.Len(t, id, 12)
	for _, r := range id {
		assert.Contains(t, string(gen.Letters), string(r))
	}

	// An Exists hook that rejects the first few candidates forces retries.
	rejected := 0
	gen = NewIDGen(func(id string) bool {
		if rejected < 3 {
			rejected++
			return true
		}
		return false
	})
	id = gen.NextID()
	assert.Len(t, id, 12)
	assert.Equal(t, 3, rejected)
}
