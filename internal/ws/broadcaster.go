package ws

import (
	"log/slog"

	"github.com/matiasolis/impostor-party/internal/model"
	"github.com/matiasolis/impostor-party/internal/services/room"
)

// Broadcaster implements the room controller's Notifier on top of the hub,
// turning state-machine effects into outbound wire events.
type Broadcaster struct {
	hub    *Hub
	logger *slog.Logger
}

// NewBroadcaster creates a new Broadcaster
func NewBroadcaster(hub *Hub, logger *slog.Logger) *Broadcaster {
	return &Broadcaster{
		hub:    hub,
		logger: logger.With(slog.String("component", "broadcaster")),
	}
}

var _ room.Notifier = (*Broadcaster)(nil)

// PlayerJoined notifies everyone already in the room; the joiner receives
// roomJoined from the session layer instead
func (b *Broadcaster) PlayerJoined(r *model.Room, joiner model.PlayerID) {
	b.hub.BroadcastRoomExcept(r.Code, joiner, EventPlayerJoined, PlayerList{
		Players: PlayersFromRoom(r),
	})
}

// PlayerLeft notifies the remaining room members with the updated roster
func (b *Broadcaster) PlayerLeft(r *model.Room) {
	b.hub.BroadcastRoom(r.Code, EventPlayerLeft, PlayerList{
		Players: PlayersFromRoom(r),
	})
}

// RoundStarted delivers one personalized gameStarted message per player.
// Everyone gets the word except the impostor, who gets the marker and no
// word.
func (b *Broadcaster) RoundStarted(r *model.Room, round *model.Round) {
	for _, p := range r.Players {
		payload := GameStarted{Word: round.Word}
		if p.ID == round.ImpostorID {
			payload = GameStarted{IsImpostor: true}
		}
		b.hub.SendTo(p.ID, EventGameStarted, payload)
	}
}

// RoundEnded reveals the word and impostor room-wide
func (b *Broadcaster) RoundEnded(code model.RoomCode, round *model.Round) {
	b.hub.BroadcastRoom(code, EventRoundEnded, RoundEnded{
		Word:     round.Word,
		Impostor: round.ImpostorName,
	})
}

// ReturnedToLobby sends the lobby roster room-wide
func (b *Broadcaster) ReturnedToLobby(r *model.Room) {
	b.hub.BroadcastRoom(r.Code, EventBackToLobby, PlayerList{
		Players: PlayersFromRoom(r),
	})
}
