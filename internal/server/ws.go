package server

import (
	"log"
	"net/http"

	"github.com/gorilla/websocket"

	"github.com/ayusman/mudra/internal/app"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true // Allow local connections
	},
}

// EventsStreamHandler streams live recognition events over WebSocket.
type EventsStreamHandler struct {
	app *app.App
}

// NewEventsStreamHandler creates a new EventsStreamHandler.
func NewEventsStreamHandler(a *app.App) *EventsStreamHandler {
	return &EventsStreamHandler{app: a}
}

// ServeHTTP upgrades the connection and forwards pipeline events until
// the client disconnects or the pipeline stops.
func (h *EventsStreamHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("websocket upgrade error: %v", err)
		return
	}
	defer conn.Close()

	ch := h.app.Subscribe()
	defer h.app.Unsubscribe(ch)

	// Drain client messages to detect disconnects.
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
		case e, ok := <-ch:
			if !ok {
				return
			}
			if err := conn.WriteJSON(e); err != nil {
				return
			}
		case <-done:
			return
		}
	}
}
