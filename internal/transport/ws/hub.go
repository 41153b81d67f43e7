package ws

import (
	"encoding/json"
	"log"
	"sync"
)

// MessageType defines the type of WebSocket message
type MessageType string

const (
	MsgSubmissionSaved  MessageType = "submission_saved"
	MsgSummaryReady     MessageType = "summary_ready"
	MsgHealthScoreReady MessageType = "health_score_ready"
	MsgTripScoreReady   MessageType = "trip_score_ready"
	MsgError            MessageType = "error"
)

// Message is the WebSocket envelope format
type Message struct {
	Type    MessageType     `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

// Hub manages per-user WebSocket connections. AI results land minutes after
// the triggering request, so the client keeps one socket open and the
// services push typed events through here as each result arrives.
type Hub struct {
	userConns map[string]*Connection // userID -> conn

	mu sync.RWMutex

	register   chan *Connection
	unregister chan *Connection
	events     chan *userEvent
}

// Connection represents one user's WebSocket connection
type Connection struct {
	UserID string
	Send   chan []byte
	Hub    *Hub
}

type userEvent struct {
	UserID  string
	Message *Message
}

// NewHub creates a new WebSocket hub
func NewHub() *Hub {
	h := &Hub{
		userConns:  make(map[string]*Connection),
		register:   make(chan *Connection),
		unregister: make(chan *Connection),
		events:     make(chan *userEvent, 256),
	}
	go h.run()
	return h
}

func (h *Hub) run() {
	for {
		select {
		case conn := <-h.register:
			h.mu.Lock()
			// A reconnect replaces the old socket
			if existing, ok := h.userConns[conn.UserID]; ok {
				close(existing.Send)
			}
			h.userConns[conn.UserID] = conn
			h.mu.Unlock()
			log.Printf("User %s connected", conn.UserID)

		case conn := <-h.unregister:
			h.mu.Lock()
			if existing, ok := h.userConns[conn.UserID]; ok && existing == conn {
				delete(h.userConns, conn.UserID)
				close(conn.Send)
				log.Printf("User %s disconnected", conn.UserID)
			}
			h.mu.Unlock()

		case ev := <-h.events:
			h.mu.RLock()
			if conn, ok := h.userConns[ev.UserID]; ok {
				data, _ := json.Marshal(ev.Message)
				select {
				case conn.Send <- data:
				default:
					// Drop message if buffer full
				}
			}
			h.mu.RUnlock()
		}
	}
}

// Register adds a connection
func (h *Hub) Register(conn *Connection) {
	h.register <- conn
}

// Unregister removes a connection
func (h *Hub) Unregister(conn *Connection) {
	h.unregister <- conn
}

// NotifyUser sends a typed event to one user (implements service.Notifier).
// Users without an open socket simply miss the push; the underlying data is
// durable and readable over REST.
func (h *Hub) NotifyUser(userID string, msgType string, payload interface{}) {
	data, _ := json.Marshal(payload)
	h.events <- &userEvent{
		UserID: userID,
		Message: &Message{
			Type:    MessageType(msgType),
			Payload: data,
		},
	}
}
