package webui

import (
	"sync"

	"github.com/gorilla/websocket"
	"github.com/kayz/slidesmith/internal/engine"
	"github.com/kayz/slidesmith/internal/logger"
)

// Hub fans generation lifecycle events out to connected websocket clients.
// It satisfies engine.EventSink; slow clients are dropped rather than letting
// them stall the pipeline.
type Hub struct {
	mu      sync.Mutex
	clients map[*websocket.Conn]chan engine.Event
}

func NewHub() *Hub {
	return &Hub{clients: make(map[*websocket.Conn]chan engine.Event)}
}

// Emit implements engine.EventSink.
func (h *Hub) Emit(ev engine.Event) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for conn, ch := range h.clients {
		select {
		case ch <- ev:
		default:
			// Client is not keeping up; disconnect it.
			close(ch)
			delete(h.clients, conn)
			conn.Close()
		}
	}
}

func (h *Hub) add(conn *websocket.Conn) chan engine.Event {
	ch := make(chan engine.Event, 64)
	h.mu.Lock()
	h.clients[conn] = ch
	h.mu.Unlock()
	return ch
}

func (h *Hub) remove(conn *websocket.Conn) {
	h.mu.Lock()
	if ch, ok := h.clients[conn]; ok {
		close(ch)
		delete(h.clients, conn)
	}
	h.mu.Unlock()
	conn.Close()
}

func (h *Hub) serve(conn *websocket.Conn) {
	ch := h.add(conn)
	defer h.remove(conn)

	// Reader loop: we ignore inbound messages but need it to detect close.
	done := make(chan struct{})
	go func() {
		defer close(done)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	for {
		select {
		case ev, ok := <-ch:
			if !ok {
				return
			}
			if err := conn.WriteJSON(ev); err != nil {
				logger.Debug("websocket write failed: %v", err)
				return
			}
		case <-done:
			return
		}
	}
}
