package server

import (
	"encoding/json"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

// DefaultLiveInterval is the broadcast period of the live feed (~15 FPS).
const DefaultLiveInterval = 66 * time.Millisecond

// liveWriteWait bounds one snapshot write to a spectator.
const liveWriteWait = time.Second

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true // Allow local connections
	},
}

// LiveHandler broadcasts game snapshots to spectators via WebSocket.
type LiveHandler struct {
	feed     *Feed
	interval time.Duration
	clients  map[*websocket.Conn]bool
	mu       sync.RWMutex
	done     chan struct{}
	once     sync.Once
}

// NewLiveHandler creates a LiveHandler and starts its broadcaster.
func NewLiveHandler(feed *Feed, interval time.Duration) *LiveHandler {
	if interval <= 0 {
		interval = DefaultLiveInterval
	}
	h := &LiveHandler{
		feed:     feed,
		interval: interval,
		clients:  make(map[*websocket.Conn]bool),
		done:     make(chan struct{}),
	}
	go h.broadcast()
	return h
}

// ServeHTTP handles WebSocket upgrade requests.
func (h *LiveHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("websocket upgrade error: %v", err)
		return
	}
	defer conn.Close()

	h.mu.Lock()
	h.clients[conn] = true
	h.mu.Unlock()

	defer func() {
		h.mu.Lock()
		delete(h.clients, conn)
		h.mu.Unlock()
	}()

	// Keep connection alive by reading messages
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			break
		}
	}
}

// Clients returns the number of connected spectators.
func (h *LiveHandler) Clients() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// Close stops the broadcaster. Connected clients are dropped by the server.
func (h *LiveHandler) Close() {
	h.once.Do(func() { close(h.done) })
}

// broadcast sends each new snapshot to all connected clients.
func (h *LiveHandler) broadcast() {
	ticker := time.NewTicker(h.interval)
	defer ticker.Stop()

	var sent uint64
	for {
		select {
		case <-h.done:
			return
		case <-ticker.C:
		}

		h.mu.RLock()
		if len(h.clients) == 0 {
			h.mu.RUnlock()
			continue
		}
		h.mu.RUnlock()

		snap, seq := h.feed.Latest()
		if seq == sent {
			continue
		}

		msg, err := json.Marshal(snap)
		if err != nil {
			log.Printf("live: encode snapshot: %v", err)
			continue
		}
		sent = seq

		h.send(msg)
	}
}

// send writes msg to every client. Clients whose write fails or times out
// are closed and dropped. Writes happen outside the client lock.
func (h *LiveHandler) send(msg []byte) {
	h.mu.RLock()
	conns := make([]*websocket.Conn, 0, len(h.clients))
	for conn := range h.clients {
		conns = append(conns, conn)
	}
	h.mu.RUnlock()

	for _, conn := range conns {
		conn.SetWriteDeadline(time.Now().Add(liveWriteWait))
		if err := conn.WriteMessage(websocket.TextMessage, msg); err != nil {
			log.Printf("live: dropping spectator %s: %v", conn.RemoteAddr(), err)
			h.mu.Lock()
			delete(h.clients, conn)
			h.mu.Unlock()
			conn.Close()
		}
	}
}
