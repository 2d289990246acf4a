package ws

import (
	"encoding/json"
	"log"
	"sync"
)

// MessageType defines the type of WebSocket message
type MessageType string

const (
	MsgCrisisAlert MessageType = "crisis_alert"
	MsgCrisisState MessageType = "crisis_state"
	MsgChatMessage MessageType = "chat_message"
	MsgError       MessageType = "error"
)

// Message is the WebSocket envelope format
type Message struct {
	Type    MessageType     `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

// Hub manages WebSocket connections per veteran. A veteran may have
// several connected clients (phone and desktop); crisis and chat events
// fan out to all of them.
type Hub struct {
	// veteranID -> connID -> connection
	conns map[string]map[string]*Connection

	mu sync.RWMutex

	register   chan *Connection
	unregister chan *Connection
	broadcast  chan *BroadcastMessage
}

// Connection represents a WebSocket connection
type Connection struct {
	VeteranID string
	ConnID    string
	Send      chan []byte
	Hub       *Hub
}

// BroadcastMessage is a message to broadcast
type BroadcastMessage struct {
	VeteranID string
	Message   *Message
}

// NewHub creates a new WebSocket hub
func NewHub() *Hub {
	h := &Hub{
		conns:      make(map[string]map[string]*Connection),
		register:   make(chan *Connection),
		unregister: make(chan *Connection),
		broadcast:  make(chan *BroadcastMessage, 256),
	}
	go h.run()
	return h
}

func (h *Hub) run() {
	for {
		select {
		case conn := <-h.register:
			h.mu.Lock()
			if h.conns[conn.VeteranID] == nil {
				h.conns[conn.VeteranID] = make(map[string]*Connection)
			}
			h.conns[conn.VeteranID][conn.ConnID] = conn
			log.Printf("Veteran %s connected (conn %s)", conn.VeteranID, conn.ConnID)
			h.mu.Unlock()

		case conn := <-h.unregister:
			h.mu.Lock()
			if clients, ok := h.conns[conn.VeteranID]; ok {
				if existing, ok := clients[conn.ConnID]; ok && existing == conn {
					delete(clients, conn.ConnID)
					close(conn.Send)
					log.Printf("Veteran %s disconnected (conn %s)", conn.VeteranID, conn.ConnID)
				}
				if len(clients) == 0 {
					delete(h.conns, conn.VeteranID)
				}
			}
			h.mu.Unlock()

		case msg := <-h.broadcast:
			h.mu.RLock()
			data, _ := json.Marshal(msg.Message)
			if clients, ok := h.conns[msg.VeteranID]; ok {
				for _, conn := range clients {
					select {
					case conn.Send <- data:
					default:
						// Drop message if buffer full
					}
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

// BroadcastToVeteran sends a message to all of a veteran's connected
// clients (implements service.Broadcaster)
func (h *Hub) BroadcastToVeteran(veteranID string, msgType string, payload interface{}) {
	data, _ := json.Marshal(payload)
	h.broadcast <- &BroadcastMessage{
		VeteranID: veteranID,
		Message: &Message{
			Type:    MessageType(msgType),
			Payload: data,
		},
	}
}
