package response

import (
	"github.com/matiasolis/impostor-party/internal/model"
)

// Player represents a room member in API responses
type Player struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	IsAdmin bool   `json:"isAdmin"`
}

// Room is the public lobby snapshot served over plain HTTP for display
// layers. It deliberately omits the current round's word and impostor.
type Room struct {
	Code        string   `json:"code"`
	Password    string   `json:"password"`
	Phase       string   `json:"phase"`
	Players     []Player `json:"players"`
	PlayerCount int      `json:"playerCount"`
}

// RoomFromModel converts model.Room to a response Room
func RoomFromModel(r *model.Room) Room {
	players := make([]Player, len(r.Players))
	for i, p := range r.Players {
		players[i] = Player{
			ID:      string(p.ID),
			Name:    p.Name,
			IsAdmin: p.IsAdmin,
		}
	}

	return Room{
		Code:        string(r.Code),
		Password:    r.Password,
		Phase:       string(r.Phase),
		Players:     players,
		PlayerCount: len(players),
	}
}

// Health is the health check response body
type Health struct {
	Status string `json:"status"`
}
