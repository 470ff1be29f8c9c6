// Package canvas drives one logical diagram across tool invocations: it
// recovers scenes from streamed payloads, resolves them against persisted
// checkpoints, normalizes geometry, and keeps an external renderer and the
// animated camera in sync.
package canvas

import (
	"context"
	"fmt"
	"sync"

	"github.com/antonpk1/excalidraw-mcp-app/camera"
	"github.com/antonpk1/excalidraw-mcp-app/checkpoint"
	"github.com/antonpk1/excalidraw-mcp-app/normalize"
	"github.com/antonpk1/excalidraw-mcp-app/scene"
)

// Result is what a finalized tool call reports back: the id of the freshly
// persisted checkpoint, the resolved scene and any soft advisory hints to
// append to the success response.
type Result struct {
	CheckpointID string
	Elements     []*scene.Element
	Plan         string
	Hints        []string
}

// Session owns the pipeline state for one logical diagram. All resolution
// runs synchronously on the caller's goroutine: a new chunk supersedes
// in-flight work by simply re-running to completion, and the latest write
// wins.
type Session struct {
	store    checkpoint.Store
	renderer RenderAdapter
	pipeline *normalize.Pipeline
	cam      *camera.Controller
	events   *Events
	ids      *checkpoint.IDGen

	mu          sync.Mutex
	lastScene   []*scene.Element
	lastAckedID string
}

// NewSession wires a session over a checkpoint store and a render adapter.
// sched drives camera animation frames; pass nil for hosts that call
// Camera().Tick() themselves.
func NewSession(store checkpoint.Store, renderer RenderAdapter, sched camera.Scheduler) *Session {
	s := &Session{
		store:    store,
		renderer: renderer,
		pipeline: normalize.New(),
		events:   NewEvents(),
	}
	exists := func(id string) bool {
		type haser interface{ Has(id string) bool }
		if h, ok := store.(haser); ok {
			return h.Has(id)
		}
		return false
	}
	s.ids = checkpoint.NewIDGen(exists)
	s.cam = camera.New(sched, s.applyViewport)
	return s
}

// Events exposes the session's lifecycle subscription surface.
func (s *Session) Events() *Events { return s.events }

// Camera exposes the viewport controller, mainly so hosts with their own
// frame loop can drive ticks directly.
func (s *Session) Camera() *camera.Controller { return s.cam }

// Scene returns the most recently resolved drawable scene.
func (s *Session) Scene() []*scene.Element {
	s.mu.Lock()
	defer s.mu.Unlock()
	return scene.CloneAll(s.lastScene)
}

// HandleChunk processes one streaming frame of a still-arriving payload.
// Incompleteness is not an error here: the recoverable prefix renders, the
// rest waits for the next chunk. Resolution failures (e.g. a restore id not
// yet persisted) skip the frame.
func (s *Session) HandleChunk(ctx context.Context, raw string) {
	els := scene.RecoverStreaming(raw)
	if len(els) == 0 {
		return
	}
	res, err := s.resolve(ctx, els, "")
	if err != nil {
		Debug("skipping streaming frame: %v", err)
		return
	}
	normalized := s.pipeline.Run(res.Elements)
	s.present(ctx, normalized, res.Camera)
}

// HandleFinal processes the finalized payload of a tool call: strict parse,
// resolve, normalize, persist under a freshly minted checkpoint id, render.
// Hard failures return an error with no scene mutation; soft degradations
// surface as hints on the Result.
func (s *Session) HandleFinal(ctx context.Context, raw, plan string) (*Result, error) {
	els, err := scene.ParseElements(raw)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedPayload, err)
	}
	res, err := s.resolve(ctx, els, plan)
	if err != nil {
		return nil, err
	}
	normalized := s.pipeline.Run(res.Elements)

	id := s.ids.NextID()
	if err := s.store.Save(ctx, id, &checkpoint.Checkpoint{Elements: normalized, Plan: res.Plan}); err != nil {
		return nil, fmt.Errorf("saving checkpoint %q: %w", id, err)
	}
	s.present(ctx, normalized, res.Camera)
	s.events.Publish(Event{Kind: EventCheckpoint, CheckpointID: id})

	hints := append(res.Hints, bindingHints(normalized)...)
	hints = append(hints, unknownTypeHints(normalized)...)
	Info("finalized scene: %d element(s), checkpoint %s", len(normalized), id)
	return &Result{CheckpointID: id, Elements: normalized, Plan: res.Plan, Hints: hints}, nil
}

// HandleAck records the host's post-finalization acknowledgment carrying
// the checkpoint id just created.
func (s *Session) HandleAck(checkpointID string) {
	s.mu.Lock()
	s.lastAckedID = checkpointID
	s.mu.Unlock()
}

// LastAckedID returns the most recently acknowledged checkpoint id.
func (s *Session) LastAckedID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastAckedID
}

// present pushes a resolved scene to the renderer and retargets the
// camera. A renderer failure drops the frame: no retry, no crash, the next
// good frame repaints.
func (s *Session) present(ctx context.Context, els []*scene.Element, cam *scene.Viewport) {
	s.mu.Lock()
	s.lastScene = els
	s.mu.Unlock()

	if s.renderer != nil {
		if err := s.renderer.Render(ctx, els, cam); err != nil {
			Warn("render failed, dropping frame: %v", err)
		}
	}
	s.events.Publish(Event{Kind: EventScene, Elements: els, Viewport: cam})
	if cam != nil {
		s.cam.SetTarget(*cam)
	}
}

// applyViewport is the camera controller's per-tick projection: re-render
// the last scene under the new viewport and notify subscribers.
func (s *Session) applyViewport(v scene.Viewport) {
	s.mu.Lock()
	els := s.lastScene
	s.mu.Unlock()

	if s.renderer != nil && els != nil {
		if err := s.renderer.Render(context.Background(), els, &v); err != nil {
			Debug("viewport repaint failed, dropping frame: %v", err)
		}
	}
	s.events.Publish(Event{Kind: EventCamera, Viewport: &v})
}
