package canvas

import (
	"sync"

	"github.com/antonpk1/excalidraw-mcp-app/scene"
)

// EventKind discriminates session lifecycle events.
type EventKind int

const (
	// EventScene fires whenever a resolution pass produced a new scene.
	EventScene EventKind = iota
	// EventCamera fires on every camera animation frame.
	EventCamera
	// EventCheckpoint fires after a finalized scene was persisted.
	EventCheckpoint
)

// Event is one typed lifecycle notification.
type Event struct {
	Kind         EventKind
	Elements     []*scene.Element
	Viewport     *scene.Viewport
	CheckpointID string
}

// Events is the subscription surface the host boundary consumes instead of
// poking callbacks into mutable slots. Subscribe returns an unsubscribe
// handle; publishing iterates a snapshot so a subscriber may unsubscribe
// from within its own callback.
type Events struct {
	mu   sync.Mutex
	subs map[int]func(Event)
	next int
}

// NewEvents returns an empty subscription registry.
func NewEvents() *Events {
	return &Events{subs: make(map[int]func(Event))}
}

// Subscribe registers fn for every published event and returns its
// unsubscribe func.
func (e *Events) Subscribe(fn func(Event)) (unsub func()) {
	e.mu.Lock()
	id := e.next
	e.next++
	e.subs[id] = fn
	e.mu.Unlock()
	return func() {
		e.mu.Lock()
		delete(e.subs, id)
		e.mu.Unlock()
	}
}

// Publish delivers ev to every current subscriber.
func (e *Events) Publish(ev Event) {
	e.mu.Lock()
	fns := make([]func(Event), 0, len(e.subs))
	for _, fn := range e.subs {
		fns = append(fns, fn)
	}
	e.mu.Unlock()
	for _, fn := range fns {
		fn(ev)
	}
}
