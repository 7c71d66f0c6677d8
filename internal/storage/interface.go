package storage

import (
	"context"

	"github.com/matiasolis/impostor-party/internal/model"
)

// Storage defines the interface for room registry persistence
type Storage interface {
	// Room operations
	SaveRoom(ctx context.Context, room *model.Room) error
	GetRoom(ctx context.Context, code model.RoomCode) (*model.Room, error)
	DeleteRoom(ctx context.Context, code model.RoomCode) error
	RoomExists(ctx context.Context, code model.RoomCode) (bool, error)

	// FindRoomByPlayer returns the room containing the given player.
	// Implementations scan the registered rooms' player lists; this is
	// O(rooms x players), which is fine at party-game scale.
	FindRoomByPlayer(ctx context.Context, id model.PlayerID) (*model.Room, error)

	// Word pool operations
	SaveWords(ctx context.Context, words []string) error
	GetWords(ctx context.Context) ([]string, error)
}
