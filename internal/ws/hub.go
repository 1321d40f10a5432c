package ws

import (
	"log"
	"sync"
)

// Hub fans readiness events out to every connected websocket client. All
// membership changes go through Run; the public methods only enqueue.
type Hub struct {
	clients    map[*Client]bool
	broadcast  chan []byte
	register   chan *Client
	unregister chan *Client
	mu         sync.RWMutex
	logger     *log.Logger
}

func NewHub(logger *log.Logger) *Hub {
	if logger == nil {
		logger = log.Default()
	}
	return &Hub{
		clients:    make(map[*Client]bool),
		broadcast:  make(chan []byte, 1024),
		register:   make(chan *Client, 128),
		unregister: make(chan *Client, 128),
		logger:     logger,
	}
}

// Run owns the client set. It never returns; start it in its own goroutine.
func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.add(client)
		case client := <-h.unregister:
			h.remove(client)
		case message := <-h.broadcast:
			h.fanout(message)
		}
	}
}

func (h *Hub) add(client *Client) {
	if client == nil {
		return
	}
	h.mu.Lock()
	h.clients[client] = true
	total := len(h.clients)
	h.mu.Unlock()
	h.logger.Printf("WS connected | total_clients=%d", total)
}

func (h *Hub) remove(client *Client) {
	if client == nil {
		return
	}
	h.mu.Lock()
	if _, ok := h.clients[client]; ok {
		delete(h.clients, client)
		close(client.send)
	}
	total := len(h.clients)
	h.mu.Unlock()
	h.logger.Printf("WS disconnected | total_clients=%d", total)
}

// fanout delivers to every client with room in its send buffer. A client that
// cannot keep up is queued for removal instead of blocking the hub.
func (h *Hub) fanout(message []byte) {
	h.mu.RLock()
	targets := make([]*Client, 0, len(h.clients))
	for c := range h.clients {
		targets = append(targets, c)
	}
	h.mu.RUnlock()

	for _, client := range targets {
		select {
		case client.send <- message:
		default:
			h.unregister <- client
		}
	}
	h.logger.Printf("WS broadcast | clients=%d", len(targets))
}

// Register is safe on a nil hub so callers can run without websockets wired.
func (h *Hub) Register(client *Client) {
	if h == nil {
		return
	}
	h.register <- client
}

func (h *Hub) Unregister(client *Client) {
	if h == nil {
		return
	}
	h.unregister <- client
}

// Broadcast enqueues without blocking; when the buffer is full the event is
// dropped rather than stalling the caller.
func (h *Hub) Broadcast(message []byte) {
	if h == nil {
		return
	}
	select {
	case h.broadcast <- message:
	default:
		h.logger.Printf("WS broadcast dropped | reason=buffer_full")
	}
}

func (h *Hub) ClientCount() int {
	if h == nil {
		return 0
	}
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}
