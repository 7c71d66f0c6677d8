package ws

import (
	"encoding/json"

	"github.com/matiasolis/impostor-party/internal/model"
)

// Inbound event names (client -> server)
const (
	EventCreateRoom  = "createRoom"
	EventJoinRoom    = "joinRoom"
	EventStartGame   = "startGame"
	EventNextRound   = "nextRound"
	EventBackToLobby = "backToLobby"
	EventLeaveRoom   = "leaveRoom"
)

// Outbound event names (server -> client)
const (
	EventRoomCreated  = "roomCreated"
	EventRoomJoined   = "roomJoined"
	EventRoomError    = "roomError"
	EventPlayerJoined = "playerJoined"
	EventPlayerLeft   = "playerLeft"
	EventGameStarted  = "gameStarted"
	EventRoundEnded   = "roundEnded"
)

// Envelope is the wire frame for every message in both directions
type Envelope struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data,omitempty"`
}

// CreateRoomRequest is the payload of a createRoom event
type CreateRoomRequest struct {
	PlayerName string `json:"playerName"`
}

// JoinRoomRequest is the payload of a joinRoom event
type JoinRoomRequest struct {
	RoomCode   string `json:"roomCode"`
	PlayerName string `json:"playerName"`
}

// Player is the wire shape of a room member
type Player struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	IsAdmin bool   `json:"isAdmin"`
}

// PlayersFromRoom converts a room's member list to the wire shape
func PlayersFromRoom(room *model.Room) []Player {
	players := make([]Player, len(room.Players))
	for i, p := range room.Players {
		players[i] = Player{
			ID:      string(p.ID),
			Name:    p.Name,
			IsAdmin: p.IsAdmin,
		}
	}
	return players
}

// RoomWelcome is the payload of roomCreated and roomJoined
type RoomWelcome struct {
	RoomCode string   `json:"roomCode"`
	Password string   `json:"password"`
	Players  []Player `json:"players"`
	IsAdmin  bool     `json:"isAdmin"`
}

// RoomError is the payload of a roomError event
type RoomError struct {
	Message string `json:"message"`
}

// PlayerList is the payload of playerJoined, playerLeft, and backToLobby
type PlayerList struct {
	Players []Player `json:"players"`
}

// GameStarted is the personalized payload of a gameStarted event. The
// impostor receives IsImpostor true and an empty word.
type GameStarted struct {
	Word       string `json:"word"`
	IsImpostor bool   `json:"isImpostor"`
}

// RoundEnded is the room-wide payload revealing the round
type RoundEnded struct {
	Word     string `json:"word"`
	Impostor string `json:"impostor"`
}

// Encode marshals an event name and payload into a wire frame
func Encode(event string, data any) ([]byte, error) {
	raw, err := json.Marshal(data)
	if err != nil {
		return nil, err
	}
	return json.Marshal(Envelope{Event: event, Data: raw})
}
