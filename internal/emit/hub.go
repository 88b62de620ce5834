package emit

import (
	"log/slog"
	"net/http"
	"sync"

	"golang.org/x/net/websocket"

	"github.com/Wouter17/f1-light-sync/internal/flags"
)

// PanelHub pushes signals to browser panels over websockets. A panel that
// connects mid-session immediately receives the most recent signal so its
// display is never stale. Losing a panel is not a transmission failure;
// dead connections are dropped quietly.
type PanelHub struct {
	log *slog.Logger

	mu    sync.Mutex
	last  flags.Signal
	seen  bool
	conns map[*websocket.Conn]struct{}
}

// NewPanelHub returns a hub with no connected panels.
func NewPanelHub(log *slog.Logger) *PanelHub {
	return &PanelHub{
		log:   log,
		conns: make(map[*websocket.Conn]struct{}),
	}
}

// Handler returns the websocket endpoint panels connect to.
func (h *PanelHub) Handler() http.Handler {
	return websocket.Handler(h.serve)
}

func (h *PanelHub) serve(conn *websocket.Conn) {
	h.mu.Lock()
	h.conns[conn] = struct{}{}
	last, seen := h.last, h.seen
	count := len(h.conns)
	h.mu.Unlock()
	h.log.Debug("panel connected", "panels", count)

	if seen {
		// Replay failures surface as a receive error right after.
		_ = websocket.Message.Send(conn, last.Wire())
	}

	// Panels only listen; drain inbound frames until the peer goes away.
	var discard string
	for {
		if err := websocket.Message.Receive(conn, &discard); err != nil {
			break
		}
	}

	h.mu.Lock()
	delete(h.conns, conn)
	count = len(h.conns)
	h.mu.Unlock()
	h.log.Debug("panel disconnected", "panels", count)
}

// Emit implements flags.Emitter. It always reports success: the hub is a
// best effort mirror and panel loss must not look like a signal failure.
func (h *PanelHub) Emit(signal flags.Signal) error {
	h.mu.Lock()
	h.last, h.seen = signal, true
	conns := make([]*websocket.Conn, 0, len(h.conns))
	for conn := range h.conns {
		conns = append(conns, conn)
	}
	h.mu.Unlock()

	for _, conn := range conns {
		if err := websocket.Message.Send(conn, signal.Wire()); err != nil {
			h.log.Debug("dropping unresponsive panel", "error", err)
			conn.Close()
		}
	}
	return nil
}
