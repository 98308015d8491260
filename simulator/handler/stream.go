package handler

import (
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"rocket-sim/simulator/simulation"
)

var upgrader = websocket.Upgrader{
	// Dashboards are served from other origins.
	CheckOrigin: func(r *http.Request) bool { return true },
}

// Hub fans step snapshots out to connected WebSocket clients. Each client has
// a small buffer; a client that falls behind is dropped.
type Hub struct {
	mu      sync.Mutex
	clients map[*websocket.Conn]chan simulation.Snapshot
}

func NewHub() *Hub {
	return &Hub{clients: make(map[*websocket.Conn]chan simulation.Snapshot)}
}

// Len returns the number of connected clients.
func (h *Hub) Len() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients)
}

func (h *Hub) Broadcast(snap simulation.Snapshot) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for conn, ch := range h.clients {
		select {
		case ch <- snap:
		default:
			log.Println("⚠️ Dropping slow stream client", conn.RemoteAddr())
			close(ch)
			delete(h.clients, conn)
		}
	}
}

func (h *Hub) remove(conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if ch, ok := h.clients[conn]; ok {
		close(ch)
		delete(h.clients, conn)
	}
}

// ServeHTTP upgrades the request and streams snapshots until the client goes
// away. The current snapshot is sent first.
func (h *Hub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Println("❌ upgrade:", err)
		return
	}
	defer conn.Close()

	ch := make(chan simulation.Snapshot, 16)
	simulation.Mutex.Lock()
	ch <- simulation.Current.Snapshot()
	simulation.Mutex.Unlock()

	h.mu.Lock()
	h.clients[conn] = ch
	h.mu.Unlock()
	defer h.remove(conn)

	conn.SetReadLimit(1 << 10)
	_ = conn.SetReadDeadline(time.Now().Add(60 * time.Second))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(60 * time.Second))
	})

	// Reader only exists to process control frames and notice a close.
	done := make(chan struct{})
	go func() {
		defer close(done)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	ping := time.NewTicker(25 * time.Second)
	defer ping.Stop()

	for {
		select {
		case <-done:
			return
		case snap, ok := <-ch:
			if !ok {
				return
			}
			_ = conn.SetWriteDeadline(time.Now().Add(10 * time.Second))
			if err := conn.WriteJSON(snap); err != nil {
				log.Println("⚠️ stream write:", err)
				return
			}
		case <-ping.C:
			_ = conn.SetWriteDeadline(time.Now().Add(10 * time.Second))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
