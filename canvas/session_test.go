package canvas

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/antonpk1/excalidraw-mcp-app/checkpoint"
	"github.com/antonpk1/excalidraw-mcp-app/geometry"
	"github.com/antonpk1/excalidraw-mcp-app/scene"
)

// fakeRenderer records render calls and can be told to fail.
type fakeRenderer struct {
	calls     int
	lastScene []*scene.Element
	lastView  *scene.Viewport
	fail      bool
}

func (f *fakeRenderer) Render(ctx context.Context, els []*scene.Element, viewport *scene.Viewport) error {
	f.calls++
	f.lastScene = els
	f.lastView = viewport
	if f.fail {
		return errors.New("canvas gone")
	}
	return nil
}

func (f *fakeRenderer) MinCorner(els []*scene.Element) geometry.Point {
	return scene.MinCorner(els)
}

func newTestSession() (*Session, *fakeRenderer, *checkpoint.MemoryStore) {
	store := checkpoint.NewMemoryStore()
	renderer := &fakeRenderer{}
	return NewSession(store, renderer, nil), renderer, store
}

func payload(els ...string) string {
	out := "["
	for i, el := range els {
		if i > 0 {
			out += ","
		}
		out += el
	}
	return out + "]"
}

const (
	elA = `{"id":"a","type":"rectangle","x":0,"y":0,"width":100,"height":60}`
	elB = `{"id":"b","type":"rectangle","x":300,"y":0,"width":100,"height":60}`
	elC = `{"id":"c","type":"ellipse","x":600,"y":0,"width":80,"height":80}`
)

func ids(els []*scene.Element) []string {
	out := make([]string, len(els))
	for i, el := range els {
		out[i] = el.ID
	}
	return out
}

func TestHandleFinalPersistsAndRenders(t *testing.T) {
	s, renderer, store := newTestSession()

	res, err := s.HandleFinal(context.Background(), payload(elA, elB), "two boxes")
	require.NoError(t, err)

	assert.Len(t, res.CheckpointID, 12)
	assert.Equal(t, []string{"a", "b"}, ids(res.Elements))
	assert.Equal(t, "two boxes", res.Plan)
	assert.True(t, store.Has(res.CheckpointID))

	assert.Equal(t, 1, renderer.calls)
	assert.Equal(t, []string{"a", "b"}, ids(renderer.lastScene))
}

func TestHandleFinalMalformedPayload(t *testing.T) {
	s, renderer, _ := newTestSession()

	_, err := s.HandleFinal(context.Background(), `[{"id":"a",`, "")
	assert.ErrorIs(t, err, ErrMalformedPayload)
	assert.Zero(t, renderer.calls, "a hard failure must not touch the scene")
	assert.Empty(t, s.Scene())
}

func TestHandleFinalRestoreMergesBase(t *testing.T) {
	s, _, _ := newTestSession()
	ctx := context.Background()

	first, err := s.HandleFinal(ctx, payload(elA, elB), "base")
	require.NoError(t, err)

	restore := fmt.Sprintf(`{"type":"restoreCheckpoint","id":%q}`, first.CheckpointID)
	second, err := s.HandleFinal(ctx, payload(restore, elC), "")
	require.NoError(t, err)

	// Base elements first, new elements in front.
	assert.Equal(t, []string{"a", "b", "c"}, ids(second.Elements))
	// Omitted plan falls back to the base checkpoint's plan.
	assert.Equal(t, "base", second.Plan)
	assert.NotEqual(t, first.CheckpointID, second.CheckpointID)
}

func TestHandleFinalDeleteDirective(t *testing.T) {
	s, _, _ := newTestSession()
	ctx := context.Background()

	first, err := s.HandleFinal(ctx, payload(elA, elB, elC), "")
	require.NoError(t, err)

	restore := fmt.Sprintf(`{"type":"restoreCheckpoint","id":%q}`, first.CheckpointID)
	second, err := s.HandleFinal(ctx, payload(restore, `{"type":"delete","ids":"b"}`), "")
	require.NoError(t, err)

	assert.Equal(t, []string{"a", "c"}, ids(second.Elements))
}

func TestHandleFinalDeleteCascadesToBoundText(t *testing.T) {
	s, _, _ := newTestSession()
	ctx := context.Background()

	label := `{"id":"a_label","type":"text","x":20,"y":20,"width":60,"height":20,"text":"A","containerId":"a"}`
	first, err := s.HandleFinal(ctx, payload(elA, label, elB), "")
	require.NoError(t, err)

	restore := fmt.Sprintf(`{"type":"restoreCheckpoint","id":%q}`, first.CheckpointID)
	second, err := s.HandleFinal(ctx, payload(restore, `{"type":"delete","ids":"a"}`), "")
	require.NoError(t, err)

	assert.Equal(t, []string{"b"}, ids(second.Elements))
}

func TestHandleFinalUnknownCheckpoint(t *testing.T) {
	s, _, _ := newTestSession()

	_, err := s.HandleFinal(context.Background(),
		payload(`{"type":"restoreCheckpoint","id":"missing00000"}`, elA), "")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrCheckpointNotFound)
	assert.Contains(t, err.Error(), "rebuilt from scratch")
}

func TestHandleFinalDeleteWithoutBaseHints(t *testing.T) {
	s, _, _ := newTestSession()

	res, err := s.HandleFinal(context.Background(),
		payload(elA, `{"type":"delete","ids":"ghost"}`), "")
	require.NoError(t, err)
	assert.Equal(t, []string{"a"}, ids(res.Elements))
	require.NotEmpty(t, res.Hints)
	assert.Contains(t, res.Hints[0], "restoreCheckpoint")
}

func TestHandleFinalCameraDirective(t *testing.T) {
	s, renderer, _ := newTestSession()

	cam := `{"type":"cameraUpdate","x":0,"y":0,"width":400,"height":300}`
	_, err := s.HandleFinal(context.Background(), payload(elA, cam), "")
	require.NoError(t, err)

	require.NotNil(t, renderer.lastView)
	assert.Equal(t, 400.0, renderer.lastView.Width)

	target, ok := s.Camera().Target()
	require.True(t, ok)
	assert.Equal(t, 400.0, target.Width)
}

func TestHandleFinalNonConformingCameraHints(t *testing.T) {
	s, _, _ := newTestSession()

	cam := `{"type":"cameraUpdate","x":0,"y":0,"width":400,"height":400}`
	res, err := s.HandleFinal(context.Background(), payload(elA, cam), "")
	require.NoError(t, err)
	require.NotEmpty(t, res.Hints)
	assert.Contains(t, res.Hints[0], "4:3")
}

func TestHandleFinalUnboundArrowHints(t *testing.T) {
	s, _, _ := newTestSession()

	loose := `{"id":"e1","type":"arrow","x":2000,"y":2000,"points":[[0,0],[100,0]]}`
	res, err := s.HandleFinal(context.Background(), payload(elA, loose), "")
	require.NoError(t, err)
	require.NotEmpty(t, res.Hints)
	assert.Contains(t, res.Hints[0], "unbound")
}

func TestHandleFinalUnknownTypeHints(t *testing.T) {
	s, _, _ := newTestSession()

	frame := `{"id":"f1","type":"frame","x":0,"y":0,"width":800,"height":600}`
	res, err := s.HandleFinal(context.Background(), payload(elA, frame), "")
	require.NoError(t, err)

	// Unmodeled types survive the pipeline and ride along in the output.
	assert.Equal(t, []string{"a", "f1"}, ids(res.Elements))
	require.NotEmpty(t, res.Hints)
	assert.Contains(t, res.Hints[0], "unrecognized")
}

func TestHandleChunkRendersRecoverablePrefix(t *testing.T) {
	s, renderer, _ := newTestSession()

	// Truncated mid-way through c: a and b parse, the completed b is held
	// back one frame, leaving a.
	raw := `[` + elA + `,` + elB + `,{"id":"c","ty`
	s.HandleChunk(context.Background(), raw)

	assert.Equal(t, 1, renderer.calls)
	assert.Equal(t, []string{"a"}, ids(renderer.lastScene))
	assert.Equal(t, []string{"a"}, ids(s.Scene()))
}

func TestHandleChunkIgnoresUnusablePrefix(t *testing.T) {
	s, renderer, _ := newTestSession()
	s.HandleChunk(context.Background(), `Here is your diagram: [`)
	assert.Zero(t, renderer.calls)
}

func TestHandleChunkSkipsFrameOnUnknownRestore(t *testing.T) {
	s, renderer, _ := newTestSession()

	raw := payload(`{"type":"restoreCheckpoint","id":"missing00000"}`, elA, elB, elC)
	s.HandleChunk(context.Background(), raw)
	assert.Zero(t, renderer.calls, "unresolvable frames are skipped, not fatal")
}

func TestRenderFailureDropsFrameOnly(t *testing.T) {
	s, renderer, store := newTestSession()
	renderer.fail = true

	res, err := s.HandleFinal(context.Background(), payload(elA), "")
	require.NoError(t, err, "a dead canvas must not fail the tool call")
	assert.True(t, store.Has(res.CheckpointID))
	assert.Equal(t, []string{"a"}, ids(s.Scene()))
}

func TestHandleFinalPublishesEvents(t *testing.T) {
	s, _, _ := newTestSession()

	var kinds []EventKind
	var checkpointID string
	unsub := s.Events().Subscribe(func(ev Event) {
		kinds = append(kinds, ev.Kind)
		if ev.Kind == EventCheckpoint {
			checkpointID = ev.CheckpointID
		}
	})
	defer unsub()

	res, err := s.HandleFinal(context.Background(), payload(elA), "")
	require.NoError(t, err)
	assert.Equal(t, []EventKind{EventScene, EventCheckpoint}, kinds)
	assert.Equal(t, res.CheckpointID, checkpointID)
}

func TestHandleAck(t *testing.T) {
	s, _, _ := newTestSession()
	assert.Empty(t, s.LastAckedID())
	s.HandleAck("cp_42")
	assert.Equal(t, "cp_42", s.LastAckedID())
}
