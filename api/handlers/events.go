package handlers

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/vfxspecs/exchange/internal/telemetry"
)

// Event is a record-change notification pushed to websocket subscribers.
type Event struct {
	Type string    `json:"type"`
	ID   string    `json:"id"`
	TS   time.Time `json:"ts"`
}

// Hub fans record-change events out to connected websocket clients. Slow
// clients are dropped rather than allowed to stall the broadcast path.
type Hub struct {
	mu   sync.Mutex
	subs map[chan Event]struct{}
	log  *telemetry.Logger
}

const subBuffer = 16

func NewHub(log *telemetry.Logger) *Hub {
	if log == nil {
		log = telemetry.Nop
	}
	return &Hub{subs: make(map[chan Event]struct{}), log: log}
}

// Broadcast delivers ev to every subscriber without blocking. A nil hub is a
// no-op so handlers can run without the events feed wired.
func (h *Hub) Broadcast(ev Event) {
	if h == nil {
		return
	}
	if ev.TS.IsZero() {
		ev.TS = time.Now().UTC()
	}
	h.mu.Lock()
	for ch := range h.subs {
		select {
		case ch <- ev:
		default:
			// subscriber is not keeping up; it will be closed by its
			// own writer loop on the next write failure
		}
	}
	h.mu.Unlock()
}

func (h *Hub) subscribe() chan Event {
	ch := make(chan Event, subBuffer)
	h.mu.Lock()
	h.subs[ch] = struct{}{}
	h.mu.Unlock()
	return ch
}

func (h *Hub) unsubscribe(ch chan Event) {
	h.mu.Lock()
	delete(h.subs, ch)
	h.mu.Unlock()
}

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// Cross-origin policy is enforced by the CORS layer; the feed carries
	// no credentials.
	CheckOrigin: func(r *http.Request) bool { return true },
}

const (
	writeWait  = 10 * time.Second
	pingPeriod = 30 * time.Second
)

// Events handles GET /api/events: upgrades to a websocket and streams
// record-change events until the client goes away.
func (h *Handlers) Events(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade already wrote the error response.
		h.log.Warn(r.Context(), "ws_upgrade_failed", map[string]any{"err": err.Error()})
		return
	}

	ch := h.hub.subscribe()
	defer func() {
		h.hub.unsubscribe(ch)
		conn.Close()
	}()

	ctx, cancel := context.WithCancel(r.Context())
	defer cancel()

	// Reader loop: discard client frames, notice disconnects.
	go func() {
		defer cancel()
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()

	h.log.Info(r.Context(), "ws_subscribed", map[string]any{"remote": r.RemoteAddr})
	for {
		select {
		case <-ctx.Done():
			return
		case ev := <-ch:
			conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteJSON(ev); err != nil {
				return
			}
		case <-ticker.C:
			conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
