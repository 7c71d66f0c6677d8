package model

import "time"

// RoomCode is a human-readable identifier for joining rooms
type RoomCode string

// RoundID uniquely identifies a single round within a room, so that a
// round-end timer can tell whether the round it was armed for is still the
// current one.
type RoundID string

// Phase represents the current state of a room
type Phase string

const (
	PhaseLobby       Phase = "lobby"        // Players gathering, no round yet
	PhaseRoundActive Phase = "round_active" // A timed round is running
	PhaseRoundEnded  Phase = "round_ended"  // Last round revealed, waiting on admin
)

// Round holds the state of one timed word distribution
type Round struct {
	ID           RoundID
	Word         string
	ImpostorID   PlayerID
	ImpostorName string
	StartedAt    time.Time
}

// Room represents an isolated game session
type Room struct {
	Code     RoomCode
	Password string // 4-digit display code, cosmetic only
	AdminID  PlayerID
	Players  []Player // insertion order, meaningful for admin succession
	Phase    Phase
	// CurrentRound is non-nil exactly when Phase is PhaseRoundActive.
	CurrentRound *Round
	// LastRound is the most recently finished round, non-nil when Phase is
	// PhaseRoundEnded.
	LastRound *Round
	CreatedAt time.Time
	UpdatedAt time.Time
}

// GetPlayer returns the player with the given ID, or nil if not present
func (r *Room) GetPlayer(id PlayerID) *Player {
	for i := range r.Players {
		if r.Players[i].ID == id {
			return &r.Players[i]
		}
	}
	return nil
}

// HasPlayerNamed reports whether any player already uses the given
// (upper-cased) name
func (r *Room) HasPlayerNamed(name string) bool {
	for i := range r.Players {
		if r.Players[i].Name == name {
			return true
		}
	}
	return false
}

// IsAdmin reports whether the given player is the room's admin
func (r *Room) IsAdmin(id PlayerID) bool {
	return r.AdminID == id
}
