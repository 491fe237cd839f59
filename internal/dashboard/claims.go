package dashboard

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/gorilla/websocket"

	"github.com/ziadkadry99/claimdesk/internal/pipeline"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// claimRequest is the incoming WebSocket message format. Every message is
// processed on its own; session_id only groups them in history.
type claimRequest struct {
	SessionID string `json:"session_id"`
	Query     string `json:"query"`
}

// claimResponse is the outgoing WebSocket message format.
type claimResponse struct {
	Type      string                  `json:"type"` // "result" or "error"
	SessionID string                  `json:"session_id,omitempty"`
	Result    *pipeline.QueryResponse `json:"result,omitempty"`
	Error     string                  `json:"error,omitempty"`
}

func (d *Dashboard) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		d.logger.Warn().Err(err).Msg("websocket upgrade")
		return
	}
	defer conn.Close()

	for {
		_, msg, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				d.logger.Warn().Err(err).Msg("websocket read")
			}
			return
		}

		var req claimRequest
		if err := json.Unmarshal(msg, &req); err != nil {
			d.send(conn, claimResponse{Type: "error", Error: "invalid message format"})
			continue
		}
		if strings.TrimSpace(req.Query) == "" {
			d.send(conn, claimResponse{Type: "error", SessionID: req.SessionID, Error: "query is required"})
			continue
		}

		resp := d.processor.ProcessQuery(r.Context(), req.Query, req.SessionID)
		d.send(conn, claimResponse{Type: "result", SessionID: resp.SessionID, Result: &resp})
	}
}

func (d *Dashboard) send(conn *websocket.Conn, resp claimResponse) {
	if err := conn.WriteJSON(resp); err != nil {
		d.logger.Warn().Err(err).Msg("websocket write")
	}
}
