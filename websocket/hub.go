package websocket

import (
	"net/http"
	"sync"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"
	"github.com/ticketflowai/ticketflow/models"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// StatusEvent is pushed to connected clients whenever a document changes
// lifecycle state, so list and detail views can re-fetch instead of polling.
type StatusEvent struct {
	DocumentID uint                  `json:"document_id"`
	JiraStatus models.DocumentStatus `json:"jira_status"`
}

type Hub struct {
	mu    sync.Mutex
	conns map[*websocket.Conn]struct{}
	log   zerolog.Logger
}

func NewHub(log zerolog.Logger) *Hub {
	return &Hub{
		conns: make(map[*websocket.Conn]struct{}),
		log:   log,
	}
}

// Serve upgrades the request and parks the connection until the peer goes
// away. The server never reads application data from clients.
func (h *Hub) Serve(w http.ResponseWriter, r *http.Request) {
	ws, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.log.Warn().Err(err).Msg("ws: upgrade failed")
		return
	}

	h.mu.Lock()
	h.conns[ws] = struct{}{}
	h.mu.Unlock()

	go func() {
		defer h.drop(ws)
		for {
			if _, _, err := ws.ReadMessage(); err != nil {
				return
			}
		}
	}()
}

func (h *Hub) drop(ws *websocket.Conn) {
	h.mu.Lock()
	delete(h.conns, ws)
	h.mu.Unlock()
	ws.Close()
}

// Broadcast sends the event to every connected client, dropping connections
// that fail to accept the write.
func (h *Hub) Broadcast(event StatusEvent) {
	h.mu.Lock()
	conns := make([]*websocket.Conn, 0, len(h.conns))
	for ws := range h.conns {
		conns = append(conns, ws)
	}
	h.mu.Unlock()

	for _, ws := range conns {
		if err := ws.WriteJSON(event); err != nil {
			h.log.Debug().Err(err).Msg("ws: dropping client")
			h.drop(ws)
		}
	}
}

// ClientCount is used by tests.
func (h *Hub) ClientCount() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.conns)
}
