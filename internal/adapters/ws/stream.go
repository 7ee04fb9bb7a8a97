package ws

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/websocket"

	"github.com/rodgzilla/pineapple-ofc-ai/internal/app"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// The gateway serves a local UI; origin checks stay permissive.
	CheckOrigin: func(r *http.Request) bool { return true },
}

// Serve upgrades the request to a WebSocket and streams session snapshots
// until the client disconnects. view converts a snapshot to its wire shape.
// The first message is the current state, so a reconnecting UI can redraw
// immediately.
func Serve(w http.ResponseWriter, r *http.Request, sess *app.Session, view func(app.Snapshot) any) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		slog.Warn("websocket upgrade failed", "error", err)
		return
	}
	defer conn.Close()

	snaps, cancel := sess.Subscribe()
	defer cancel()

	// Read pump: the client sends nothing meaningful, but reading is how we
	// notice the connection closing.
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
		case snap := <-snaps:
			if err := conn.WriteJSON(view(snap)); err != nil {
				return
			}
		case <-done:
			return
		}
	}
}
