package ws

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"

	"github.com/matiasolis/impostor-party/internal/model"
	"github.com/matiasolis/impostor-party/internal/services/room"
)

// Session binds one websocket connection to at most one room membership and
// routes its lifecycle events into the room controller.
type Session struct {
	id     model.PlayerID
	hub    *Hub
	rooms  room.ControllerInterface
	logger *slog.Logger
}

// NewSession creates a session for a connected client
func NewSession(id model.PlayerID, hub *Hub, rooms room.ControllerInterface, logger *slog.Logger) *Session {
	return &Session{
		id:     id,
		hub:    hub,
		rooms:  rooms,
		logger: logger.With(slog.String("component", "session"), slog.String("player_id", string(id))),
	}
}

// HandleMessage processes one inbound frame
func (s *Session) HandleMessage(ctx context.Context, raw []byte) {
	var env Envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		s.logger.Warn("malformed frame", slog.Any("error", err))
		return
	}

	switch env.Event {
	case EventCreateRoom:
		s.handleCreateRoom(ctx, env.Data)
	case EventJoinRoom:
		s.handleJoinRoom(ctx, env.Data)
	case EventStartGame:
		s.reportOnly(s.rooms.StartGame(ctx, s.id))
	case EventNextRound:
		s.reportOnly(s.rooms.NextRound(ctx, s.id))
	case EventBackToLobby:
		s.reportOnly(s.rooms.BackToLobby(ctx, s.id))
	case EventLeaveRoom:
		s.handleLeave(ctx)
	default:
		s.logger.Warn("unknown event", slog.String("event", env.Event))
	}
}

// HandleDisconnect runs when the transport closes. Disconnects are never
// errors; they take the same cleanup path as an explicit leave.
func (s *Session) HandleDisconnect(ctx context.Context) {
	s.hub.Remove(s.id)
	if err := s.rooms.Leave(ctx, s.id); err != nil && !errors.Is(err, model.ErrNotInRoom) {
		s.logger.Error("disconnect cleanup failed", slog.Any("error", err))
	}
}

func (s *Session) handleCreateRoom(ctx context.Context, data json.RawMessage) {
	var req CreateRoomRequest
	if err := json.Unmarshal(data, &req); err != nil {
		s.logger.Warn("malformed createRoom payload", slog.Any("error", err))
		return
	}

	r, err := s.rooms.CreateRoom(ctx, s.id, req.PlayerName)
	if err != nil {
		s.reportOnly(err)
		return
	}

	s.hub.JoinRoom(s.id, r.Code)
	s.hub.SendTo(s.id, EventRoomCreated, RoomWelcome{
		RoomCode: string(r.Code),
		Password: r.Password,
		Players:  PlayersFromRoom(r),
		IsAdmin:  true,
	})
}

func (s *Session) handleJoinRoom(ctx context.Context, data json.RawMessage) {
	var req JoinRoomRequest
	if err := json.Unmarshal(data, &req); err != nil {
		s.logger.Warn("malformed joinRoom payload", slog.Any("error", err))
		return
	}

	r, err := s.rooms.JoinRoom(ctx, model.RoomCode(req.RoomCode), s.id, req.PlayerName)
	if err != nil {
		s.reportOnly(err)
		return
	}

	s.hub.JoinRoom(s.id, r.Code)
	s.hub.SendTo(s.id, EventRoomJoined, RoomWelcome{
		RoomCode: string(r.Code),
		Password: r.Password,
		Players:  PlayersFromRoom(r),
		IsAdmin:  r.IsAdmin(s.id),
	})
}

func (s *Session) handleLeave(ctx context.Context) {
	// Leave the broadcast group first so the playerLeft fan-out reaches only
	// the remaining members
	s.hub.LeaveRoom(s.id)
	if err := s.rooms.Leave(ctx, s.id); err != nil && !errors.Is(err, model.ErrNotInRoom) {
		s.logger.Error("leave failed", slog.Any("error", err))
	}
}

// reportOnly sends a roomError for errors the protocol surfaces and swallows
// the rest. Admin-gated requests from non-admins and requests in the wrong
// phase are dropped without a reply; that asymmetry is part of the protocol.
func (s *Session) reportOnly(err error) {
	if err == nil {
		return
	}
	if msg, ok := errorMessage(err); ok {
		s.hub.SendTo(s.id, EventRoomError, RoomError{Message: msg})
		return
	}
	s.logger.Debug("request ignored", slog.Any("error", err))
}

// errorMessage maps a domain error to its client-facing message. The second
// return is false for errors that are deliberately not surfaced.
func errorMessage(err error) (string, bool) {
	switch {
	case errors.Is(err, model.ErrRoomNotFound):
		return "ROOM NOT FOUND!", true
	case errors.Is(err, model.ErrGameInProgress):
		return "GAME ALREADY IN PROGRESS!", true
	case errors.Is(err, model.ErrRoomFull):
		return "ROOM IS FULL!", true
	case errors.Is(err, model.ErrNameTaken):
		return "NAME ALREADY TAKEN!", true
	case errors.Is(err, model.ErrNotEnoughPlayers):
		return "NEED AT LEAST 4 PLAYERS!", true
	case errors.Is(err, model.ErrEmptyName):
		return "NAME REQUIRED!", true
	default:
		// ErrNotAdmin, ErrWrongPhase, ErrNotInRoom: silent no-ops
		return "", false
	}
}
