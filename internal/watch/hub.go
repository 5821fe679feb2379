package watch

import (
	"encoding/json"
	"log"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/aabha-lang/aabhalint/internal/lint"
	"github.com/aabha-lang/aabhalint/internal/report"
)

// ResultHub manages WebSocket connections for the live dashboard. Each
// completed lint pass is broadcast to every connected browser.
type ResultHub struct {
	connections map[*websocket.Conn]bool
	broadcast   chan *Update
	register    chan *websocket.Conn
	unregister  chan *websocket.Conn
	done        chan struct{}
	mutex       sync.RWMutex
	upgrader    websocket.Upgrader
}

// Update is a message pushed to dashboard clients.
type Update struct {
	Type      string    `json:"type"`      // "linting" or "results"
	Timestamp int64     `json:"timestamp"` // Unix timestamp
	Files     []string  `json:"files,omitempty"`
	Payload   *Snapshot `json:"payload,omitempty"`
}

// Snapshot is the full state of the latest lint pass, shared between the
// results API and WebSocket pushes.
type Snapshot struct {
	GeneratedAt time.Time          `json:"generated_at"`
	Files       []*lint.FileResult `json:"files"`
	Summary     report.Summary     `json:"summary"`
}

// NewResultHub creates a hub and starts its connection loop.
func NewResultHub() *ResultHub {
	hub := &ResultHub{
		connections: make(map[*websocket.Conn]bool),
		broadcast:   make(chan *Update, 256),
		register:    make(chan *websocket.Conn),
		unregister:  make(chan *websocket.Conn),
		done:        make(chan struct{}),
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				origin := r.Header.Get("Origin")
				if origin == "" {
					// Allow no origin (same-origin)
					return true
				}
				// Allow localhost only for security
				return strings.HasPrefix(origin, "http://localhost") ||
					strings.HasPrefix(origin, "https://localhost") ||
					strings.HasPrefix(origin, "http://127.0.0.1") ||
					strings.HasPrefix(origin, "https://127.0.0.1")
			},
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
	}

	go hub.run()

	return hub
}

// run handles the WebSocket connection lifecycle
func (h *ResultHub) run() {
	for {
		select {
		case <-h.done:
			return

		case conn := <-h.register:
			h.mutex.Lock()
			h.connections[conn] = true
			h.mutex.Unlock()

		case conn := <-h.unregister:
			h.mutex.Lock()
			if _, ok := h.connections[conn]; ok {
				delete(h.connections, conn)
				conn.Close()
			}
			h.mutex.Unlock()

		case message := <-h.broadcast:
			h.sendToAll(message)
		}
	}
}

// sendToAll sends a message to all connected clients
func (h *ResultHub) sendToAll(message *Update) {
	messageJSON, err := json.Marshal(message)
	if err != nil {
		log.Printf("[Dashboard] Failed to marshal message: %v", err)
		return
	}

	// Collect failed connections while holding read lock
	h.mutex.RLock()
	var failedConns []*websocket.Conn
	for conn := range h.connections {
		if err := conn.WriteMessage(websocket.TextMessage, messageJSON); err != nil {
			failedConns = append(failedConns, conn)
		}
	}
	h.mutex.RUnlock()

	// Remove failed connections with write lock
	if len(failedConns) > 0 {
		h.mutex.Lock()
		for _, conn := range failedConns {
			if _, ok := h.connections[conn]; ok {
				conn.Close()
				delete(h.connections, conn)
			}
		}
		h.mutex.Unlock()
	}
}

// HandleWebSocket upgrades HTTP connections to WebSocket
func (h *ResultHub) HandleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("[Dashboard] Failed to upgrade connection: %v", err)
		return
	}

	h.register <- conn

	go h.readMessages(conn)
}

// readMessages reads messages from the client (for keepalive)
func (h *ResultHub) readMessages(conn *websocket.Conn) {
	defer func() {
		h.unregister <- conn
	}()

	conn.SetReadDeadline(time.Now().Add(60 * time.Second))
	conn.SetPongHandler(func(string) error {
		conn.SetReadDeadline(time.Now().Add(60 * time.Second))
		return nil
	})

	for {
		_, _, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Printf("[Dashboard] WebSocket error: %v", err)
			}
			break
		}
	}
}

// NotifyLinting tells clients a pass over the given files has started.
func (h *ResultHub) NotifyLinting(files []string) {
	h.broadcast <- &Update{
		Type:      "linting",
		Timestamp: time.Now().Unix(),
		Files:     files,
	}
}

// NotifyResults pushes a completed snapshot to clients.
func (h *ResultHub) NotifyResults(snapshot *Snapshot) {
	h.broadcast <- &Update{
		Type:      "results",
		Timestamp: time.Now().Unix(),
		Payload:   snapshot,
	}
}

// ConnectionCount returns the number of active connections
func (h *ResultHub) ConnectionCount() int {
	h.mutex.RLock()
	defer h.mutex.RUnlock()
	return len(h.connections)
}

// Close closes all connections and stops the hub
func (h *ResultHub) Close() {
	close(h.done)

	h.mutex.Lock()
	defer h.mutex.Unlock()

	for conn := range h.connections {
		conn.Close()
	}
	h.connections = make(map[*websocket.Conn]bool)
}
