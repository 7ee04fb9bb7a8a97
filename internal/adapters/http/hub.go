package http

import (
	"log/slog"
	"sync"

	"github.com/google/uuid"

	"github.com/rodgzilla/pineapple-ofc-ai/internal/app"
	"github.com/rodgzilla/pineapple-ofc-ai/internal/ports"
)

// Hub owns the live sessions the gateway is serving, keyed by session ID.
// Each browser tab gets its own session; sessions never share state.
type Hub struct {
	server ports.GameServer
	logger *slog.Logger

	mu       sync.RWMutex
	sessions map[string]*app.Session
}

func NewHub(server ports.GameServer, logger *slog.Logger) *Hub {
	return &Hub{
		server:   server,
		logger:   logger,
		sessions: make(map[string]*app.Session),
	}
}

// Create registers a fresh session and returns its ID.
func (h *Hub) Create() (string, *app.Session) {
	id := uuid.NewString()
	sess := app.NewSession(h.server, h.logger)

	h.mu.Lock()
	h.sessions[id] = sess
	h.mu.Unlock()

	return id, sess
}

// Get looks up a session by ID.
func (h *Hub) Get(id string) (*app.Session, bool) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	sess, ok := h.sessions[id]
	return sess, ok
}
