package wshub

import (
	"context"
	"log"
	"sync"

	"github.com/coder/websocket"
)

const sendBuffer = 32

// Client represents a single WebSocket connection in the hub.
type Client struct {
	ID    string
	Conn  *websocket.Conn
	Codec Codec
	Send  chan []byte
}

// NewClient wraps conn for the hub. A nil codec means JSON.
func NewClient(id string, conn *websocket.Conn, codec Codec) *Client {
	if codec == nil {
		codec = JSON
	}
	return &Client{
		ID:    id,
		Conn:  conn,
		Codec: codec,
		Send:  make(chan []byte, sendBuffer),
	}
}

// WritePump reads from the Send channel and writes to the WebSocket connection.
func (c *Client) WritePump(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case msg, ok := <-c.Send:
			if !ok {
				return
			}
			if err := c.Conn.Write(ctx, c.Codec.MessageType(), msg); err != nil {
				return
			}
		}
	}
}

// Hub manages the WebSocket connections of one room.
type Hub struct {
	mu      sync.RWMutex
	clients map[string]*Client
}

func NewHub() *Hub {
	return &Hub{
		clients: make(map[string]*Client),
	}
}

func (h *Hub) Register(c *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.clients[c.ID] = c
}

// Unregister removes a client and closes its Send channel.
func (h *Hub) Unregister(id string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if c, ok := h.clients[id]; ok {
		close(c.Send)
		delete(h.clients, id)
	}
}

func (h *Hub) Len() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// Send queues msg for one client. Non-blocking: reports false when the client
// is gone or its channel is full.
func (h *Hub) Send(id string, msg ServerMessage) bool {
	h.mu.RLock()
	defer h.mu.RUnlock()
	c, ok := h.clients[id]
	if !ok {
		return false
	}
	data, err := c.Codec.Marshal(msg)
	if err != nil {
		log.Printf("[WSHub] Marshal error: %v\n", err)
		return false
	}
	select {
	case c.Send <- data:
		return true
	default:
		return false
	}
}

// Broadcast sends msg to every client, encoding it once per codec.
// Non-blocking: drops if channel full.
func (h *Hub) Broadcast(msg ServerMessage) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	encoded := make(map[string][]byte, 2)
	for _, c := range h.clients {
		data, ok := encoded[c.Codec.Name()]
		if !ok {
			var err error
			data, err = c.Codec.Marshal(msg)
			if err != nil {
				log.Printf("[WSHub] Marshal error: %v\n", err)
				continue
			}
			encoded[c.Codec.Name()] = data
		}
		select {
		case c.Send <- data:
		default:
			// Drop message if channel full
		}
	}
}

// CloseAll disconnects every client, e.g. when the room is torn down.
func (h *Hub) CloseAll(reason string) {
	h.mu.Lock()
	conns := make([]*websocket.Conn, 0, len(h.clients))
	for id, c := range h.clients {
		close(c.Send)
		if c.Conn != nil {
			conns = append(conns, c.Conn)
		}
		delete(h.clients, id)
	}
	h.mu.Unlock()

	for _, conn := range conns {
		conn.Close(websocket.StatusGoingAway, reason)
	}
}
