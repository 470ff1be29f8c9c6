package web

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/antonpk1/excalidraw-mcp-app/canvas"
)

// handleChunk feeds one streaming frame into the session. Incomplete JSON
// is expected here; the response only acknowledges receipt.
func (ws *WebServer) handleChunk(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "POST required", http.StatusMethodNotAllowed)
		return
	}
	body, err := io.ReadAll(r.Body)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	ws.session.HandleChunk(r.Context(), string(body))
	w.WriteHeader(http.StatusAccepted)
}

// handleFinal feeds the finalized payload. The body is the raw element
// array; the governing plan rides in the "plan" query parameter. Hard
// failures map to structured JSON errors, soft degradations ride along as
// hints on the success response.
func (ws *WebServer) handleFinal(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "POST required", http.StatusMethodNotAllowed)
		return
	}
	body, err := io.ReadAll(r.Body)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	res, err := ws.session.HandleFinal(r.Context(), string(body), r.URL.Query().Get("plan"))
	if err != nil {
		status := http.StatusInternalServerError
		switch {
		case errors.Is(err, canvas.ErrMalformedPayload):
			status = http.StatusBadRequest
		case errors.Is(err, canvas.ErrCheckpointNotFound):
			status = http.StatusNotFound
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		json.NewEncoder(w).Encode(map[string]any{"error": err.Error()})
		return
	}
	ws.session.HandleAck(res.CheckpointID)
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{
		"checkpointId": res.CheckpointID,
		"elements":     len(res.Elements),
		"hints":        res.Hints,
	})
}
