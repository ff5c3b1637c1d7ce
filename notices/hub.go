// Package notices streams user-visible outcomes (place added, capacity
// warning, sync warnings, export results) to the UI over a per-session
// websocket. Notices are also returned inline on each response; the stream
// exists so the map view and the editor view both see them.
package notices

import (
	"encoding/json"
	"log"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/lakshay-nasa/city-scout/selection"
)

type Client struct {
	Conn      *websocket.Conn
	Send      chan []byte
	SessionID string
}

type broadcastMsg struct {
	SessionID string
	Data      []byte
}

type Hub struct {
	sessions   map[string]map[*Client]bool
	register   chan *Client
	unregister chan *Client
	broadcast  chan broadcastMsg
	done       chan struct{}
	mu         sync.Mutex
}

func NewHub() *Hub {
	return &Hub{
		sessions:   make(map[string]map[*Client]bool),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		broadcast:  make(chan broadcastMsg),
		done:       make(chan struct{}),
	}
}

func (h *Hub) Run() {
	for {
		select {
		case <-h.done:
			h.mu.Lock()
			for _, conns := range h.sessions {
				for c := range conns {
					close(c.Send)
				}
			}
			h.sessions = make(map[string]map[*Client]bool)
			h.mu.Unlock()
			return

		case c := <-h.register:
			h.mu.Lock()
			if h.sessions[c.SessionID] == nil {
				h.sessions[c.SessionID] = make(map[*Client]bool)
			}
			h.sessions[c.SessionID][c] = true
			h.mu.Unlock()

		case c := <-h.unregister:
			h.mu.Lock()
			// the broadcast drop path may have closed this client already;
			// only a current member's Send may be closed here
			if conns := h.sessions[c.SessionID]; conns != nil {
				if _, ok := conns[c]; ok {
					delete(conns, c)
					close(c.Send)
				}
			}
			h.mu.Unlock()

		case m := <-h.broadcast:
			h.mu.Lock()
			for c := range h.sessions[m.SessionID] {
				select {
				case c.Send <- m.Data:
				default:
					close(c.Send)
					delete(h.sessions[m.SessionID], c)
				}
			}
			h.mu.Unlock()
		}
	}
}

func (h *Hub) Stop() {
	close(h.done)
}

// outboundNotice is what the UI's toast layer consumes.
type outboundNotice struct {
	Kind      selection.NoticeKind `json:"kind"`
	Message   string               `json:"message"`
	Timestamp int64                `json:"timestamp"`
}

// Publish fans a notice out to every client watching the session. Delivery
// is lossy: a slow or absent listener never blocks the drafting flow.
func (h *Hub) Publish(sessionID string, n selection.Notice) {
	out := outboundNotice{
		Kind:      n.Kind,
		Message:   n.Message,
		Timestamp: time.Now().Unix(),
	}
	data, err := json.Marshal(out)
	if err != nil {
		log.Println("notice marshal:", err)
		return
	}

	select {
	case h.broadcast <- broadcastMsg{SessionID: sessionID, Data: data}:
	case <-h.done:
	}
}
