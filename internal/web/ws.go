package web

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// Frame types exchanged over /ws/submit.
const (
	frameSubmit = "submit"
	frameDelta  = "delta"
	frameResult = "result"
	frameError  = "error"
)

// wsRequest is the incoming WebSocket message format.
type wsRequest struct {
	Type string `json:"type"`
	submitPayload
}

// wsResponse is the outgoing WebSocket message format.
type wsResponse struct {
	Type    string      `json:"type"`
	Content string      `json:"content,omitempty"`
	Result  *resultBody `json:"result,omitempty"`
	Error   *errorBody  `json:"error,omitempty"`
}

func (w *Web) handleWebSocket(rw http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(rw, r, nil)
	if err != nil {
		slog.Warn("web: websocket upgrade", "error", err)
		return
	}
	defer conn.Close()

	for {
		_, msg, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				slog.Warn("web: websocket read", "error", err)
			}
			return
		}

		var req wsRequest
		if err := json.Unmarshal(msg, &req); err != nil {
			w.sendError(conn, errorBody{Error: "invalid message format", Kind: kindValidation})
			continue
		}

		switch req.Type {
		case frameSubmit:
			w.handleSubmitFrame(r.Context(), conn, req.submitPayload)
		default:
			w.sendError(conn, errorBody{Error: "unknown message type: " + req.Type, Kind: kindValidation})
		}
	}
}

// handleSubmitFrame runs one submission, relaying deltas as they arrive and
// finishing with a single result or error frame. Deltas are written from the
// provider's callback on this goroutine, so writes never overlap.
func (w *Web) handleSubmitFrame(ctx context.Context, conn *websocket.Conn, payload submitPayload) {
	ctx, cancel := context.WithTimeout(ctx, w.timeout)
	defer cancel()

	req := payload.request(w.defaults)
	resp, err := w.controller.SubmitStream(ctx, req, func(delta string) {
		w.send(conn, wsResponse{Type: frameDelta, Content: delta})
	})
	if err != nil {
		_, body := newErrorBody(err)
		w.sendError(conn, body)
		return
	}

	result := newResultBody(resp)
	w.send(conn, wsResponse{Type: frameResult, Result: &result})
}

func (w *Web) send(conn *websocket.Conn, resp wsResponse) {
	if err := conn.WriteJSON(resp); err != nil {
		slog.Warn("web: websocket write", "error", err)
	}
}

func (w *Web) sendError(conn *websocket.Conn, body errorBody) {
	w.send(conn, wsResponse{Type: frameError, Error: &body})
}
