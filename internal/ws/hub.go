package ws

import (
	"log/slog"
	"sync"

	"github.com/matiasolis/impostor-party/internal/model"
)

// Hub tracks connected clients and their room membership, and fans messages
// out to room-sized broadcast groups. Clients are keyed by the transient
// player identity assigned at connection time.
type Hub struct {
	mu      sync.RWMutex
	clients map[model.PlayerID]*Client
	members map[model.RoomCode]map[model.PlayerID]*Client
	roomOf  map[model.PlayerID]model.RoomCode
	logger  *slog.Logger
}

// NewHub creates a new Hub
func NewHub(logger *slog.Logger) *Hub {
	return &Hub{
		clients: make(map[model.PlayerID]*Client),
		members: make(map[model.RoomCode]map[model.PlayerID]*Client),
		roomOf:  make(map[model.PlayerID]model.RoomCode),
		logger:  logger.With(slog.String("component", "ws-hub")),
	}
}

// Add registers a connected client
func (h *Hub) Add(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	// A duplicate identity means a stale connection; close it out
	if old, ok := h.clients[client.id]; ok {
		old.close()
	}
	h.clients[client.id] = client

	h.logger.Info("client connected",
		slog.String("player_id", string(client.id)),
		slog.Int("total_clients", len(h.clients)))
}

// Remove unregisters a client and drops it from its room group
func (h *Hub) Remove(id model.PlayerID) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.leaveRoomLocked(id)
	if client, ok := h.clients[id]; ok {
		delete(h.clients, id)
		client.close()
	}

	h.logger.Info("client disconnected",
		slog.String("player_id", string(id)),
		slog.Int("total_clients", len(h.clients)))
}

// JoinRoom places a client in a room's broadcast group, leaving any previous
// group first. A connection belongs to at most one room at a time.
func (h *Hub) JoinRoom(id model.PlayerID, code model.RoomCode) {
	h.mu.Lock()
	defer h.mu.Unlock()

	client, ok := h.clients[id]
	if !ok {
		return
	}

	h.leaveRoomLocked(id)
	if h.members[code] == nil {
		h.members[code] = make(map[model.PlayerID]*Client)
	}
	h.members[code][id] = client
	h.roomOf[id] = code
}

// LeaveRoom removes a client from its room's broadcast group
func (h *Hub) LeaveRoom(id model.PlayerID) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.leaveRoomLocked(id)
}

func (h *Hub) leaveRoomLocked(id model.PlayerID) {
	code, ok := h.roomOf[id]
	if !ok {
		return
	}
	delete(h.roomOf, id)
	if group, ok := h.members[code]; ok {
		delete(group, id)
		if len(group) == 0 {
			delete(h.members, code)
		}
	}
}

// SendTo delivers an event to a single client
func (h *Hub) SendTo(id model.PlayerID, event string, data any) {
	msg, err := Encode(event, data)
	if err != nil {
		h.logger.Error("failed to encode event",
			slog.String("event", event),
			slog.Any("error", err))
		return
	}

	h.mu.RLock()
	client, ok := h.clients[id]
	h.mu.RUnlock()
	if !ok {
		return
	}

	if !client.enqueue(msg) {
		h.logger.Warn("message dropped - client buffer full",
			slog.String("player_id", string(id)),
			slog.String("event", event))
	}
}

// BroadcastRoom delivers an event to every client in a room
func (h *Hub) BroadcastRoom(code model.RoomCode, event string, data any) {
	h.broadcastRoom(code, "", event, data)
}

// BroadcastRoomExcept delivers an event to every client in a room except one
func (h *Hub) BroadcastRoomExcept(code model.RoomCode, except model.PlayerID, event string, data any) {
	h.broadcastRoom(code, except, event, data)
}

func (h *Hub) broadcastRoom(code model.RoomCode, except model.PlayerID, event string, data any) {
	msg, err := Encode(event, data)
	if err != nil {
		h.logger.Error("failed to encode event",
			slog.String("event", event),
			slog.Any("error", err))
		return
	}

	h.mu.RLock()
	group := h.members[code]
	targets := make([]*Client, 0, len(group))
	for id, client := range group {
		if id == except {
			continue
		}
		targets = append(targets, client)
	}
	h.mu.RUnlock()

	dropped := 0
	for _, client := range targets {
		if !client.enqueue(msg) {
			dropped++
		}
	}
	if dropped > 0 {
		h.logger.Warn("broadcast partial failure",
			slog.String("room", string(code)),
			slog.String("event", event),
			slog.Int("dropped", dropped))
	}
}

// ClientCount returns the number of connected clients
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// RoomSize returns the number of clients in a room's broadcast group
func (h *Hub) RoomSize(code model.RoomCode) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.members[code])
}
