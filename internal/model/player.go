package model

import "time"

// PlayerID is the transient identity of a player, equal to the identity of
// the connection that created it. It lives exactly as long as the connection.
type PlayerID string

// Player represents a room member
type Player struct {
	ID       PlayerID  `json:"id"`
	Name     string    `json:"name"` // upper-cased, unique within a room
	IsAdmin  bool      `json:"isAdmin"`
	JoinedAt time.Time `json:"-"`
}
