package web

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/felixge/httpsnoop"

	"github.com/antonpk1/excalidraw-mcp-app/canvas"
	"github.com/antonpk1/excalidraw-mcp-app/geometry"
	"github.com/antonpk1/excalidraw-mcp-app/scene"
)

// WebServer bridges a canvas session to connected frontends: every resolved
// scene and camera frame the session publishes is broadcast over the live
// feed, and the latest state is queryable over plain HTTP.
type WebServer struct {
	session   *canvas.Session
	wsHandler *CanvasWSHandler
	unsub     func()
}

// NewWebServer wires a server to the session's event stream.
func NewWebServer(session *canvas.Session) *WebServer {
	ws := &WebServer{
		session:   session,
		wsHandler: NewCanvasWSHandler(),
	}
	ws.unsub = session.Events().Subscribe(ws.onEvent)
	return ws
}

// Close detaches from the session. Connected clients are left to time out.
func (ws *WebServer) Close() {
	if ws.unsub != nil {
		ws.unsub()
		ws.unsub = nil
	}
}

func (ws *WebServer) onEvent(ev canvas.Event) {
	switch ev.Kind {
	case canvas.EventScene:
		ws.wsHandler.Broadcast(CanvasWSMessage{Type: "scene", Data: map[string]any{
			"elements": ev.Elements,
			"viewport": ev.Viewport,
		}})
	case canvas.EventCamera:
		ws.wsHandler.Broadcast(CanvasWSMessage{Type: "camera", Data: ev.Viewport})
	case canvas.EventCheckpoint:
		ws.wsHandler.Broadcast(CanvasWSMessage{Type: "checkpoint", Data: map[string]any{
			"id": ev.CheckpointID,
		}})
	}
}

// Handler returns the configured HTTP handler with all routes.
func (ws *WebServer) Handler() http.Handler {
	r := http.NewServeMux()
	r.Handle("/api/live", ws.wsHandler)
	r.HandleFunc("/api/chunk", ws.handleChunk)
	r.HandleFunc("/api/final", ws.handleFinal)
	r.HandleFunc("/api/scene", ws.handleScene)
	r.HandleFunc("/api/status", ws.handleStatus)
	return withAccessLog(r)
}

// handleScene returns the most recently resolved scene as an element array.
func (ws *WebServer) handleScene(w http.ResponseWriter, r *http.Request) {
	els := ws.session.Scene()
	data, err := scene.MarshalElements(els)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.Write(data)
}

func (ws *WebServer) handleStatus(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{
		"clients":          ws.wsHandler.ClientCount(),
		"lastCheckpointId": ws.session.LastAckedID(),
		"elements":         len(ws.session.Scene()),
	})
}

// MinCorner implements the readback half of the render adapter contract for
// hosts that use the web server as their renderer boundary.
func (ws *WebServer) MinCorner(els []*scene.Element) geometry.Point {
	return scene.MinCorner(els)
}

// Render implements canvas.RenderAdapter by broadcasting the frame.
func (ws *WebServer) Render(ctx context.Context, els []*scene.Element, viewport *scene.Viewport) error {
	ws.wsHandler.Broadcast(CanvasWSMessage{Type: "render", Data: map[string]any{
		"elements": els,
		"viewport": viewport,
	}})
	return nil
}

// withAccessLog logs method, path, status and latency for every request.
func withAccessLog(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		m := httpsnoop.CaptureMetrics(next, w, r)
		slog.Info("http", "method", r.Method, "path", r.URL.Path,
			"status", m.Code, "duration", m.Duration, "bytes", m.Written)
	})
}
