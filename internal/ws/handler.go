package ws

import (
	"log/slog"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/matiasolis/impostor-party/internal/model"
	"github.com/matiasolis/impostor-party/internal/services/room"
)

// Handler upgrades HTTP requests to websocket connections and runs a session
// per connection
type Handler struct {
	hub      *Hub
	rooms    room.ControllerInterface
	upgrader websocket.Upgrader
	logger   *slog.Logger
}

// NewHandler creates a websocket handler
func NewHandler(hub *Hub, rooms room.ControllerInterface, logger *slog.Logger) *Handler {
	return &Handler{
		hub:   hub,
		rooms: rooms,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				// The server is same-origin with the game page; tighten this
				// if it is ever deployed behind a separate frontend origin.
				return true
			},
		},
		logger: logger.With(slog.String("component", "ws")),
	}
}

// ServeHTTP implements http.Handler
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Warn("websocket upgrade failed", slog.Any("error", err))
		return
	}

	// The connection identity doubles as the player identity for the
	// connection's lifetime
	id := model.PlayerID(uuid.NewString())

	client := NewClient(id, conn, h.logger)
	session := NewSession(id, h.hub, h.rooms, h.logger)
	h.hub.Add(client)

	go client.WritePump()
	client.ReadPump(session)
}
