package memory

import (
	"context"
	"sync"

	"github.com/matiasolis/impostor-party/internal/model"
	"github.com/matiasolis/impostor-party/internal/storage"
)

// Storage is an in-memory implementation of the storage interface
type Storage struct {
	mu sync.RWMutex

	rooms map[model.RoomCode]*model.Room
	words []string
}

// New creates a new in-memory storage instance
func New() *Storage {
	return &Storage{
		rooms: make(map[model.RoomCode]*model.Room),
	}
}

// Ensure Storage implements the interface
var _ storage.Storage = (*Storage)(nil)

// copyRoom deep-copies a room so callers never share mutable state with the
// registry. The redis backend gets the same isolation from its JSON
// round-trip; this keeps both backends interchangeable under concurrent
// readers.
func copyRoom(room *model.Room) *model.Room {
	c := *room
	if room.Players != nil {
		c.Players = make([]model.Player, len(room.Players))
		copy(c.Players, room.Players)
	}
	if room.CurrentRound != nil {
		round := *room.CurrentRound
		c.CurrentRound = &round
	}
	if room.LastRound != nil {
		round := *room.LastRound
		c.LastRound = &round
	}
	return &c
}

// Room operations

func (s *Storage) SaveRoom(ctx context.Context, room *model.Room) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rooms[room.Code] = copyRoom(room)
	return nil
}

func (s *Storage) GetRoom(ctx context.Context, code model.RoomCode) (*model.Room, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	room, ok := s.rooms[code]
	if !ok {
		return nil, model.ErrRoomNotFound
	}
	return copyRoom(room), nil
}

func (s *Storage) DeleteRoom(ctx context.Context, code model.RoomCode) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.rooms, code)
	return nil
}

func (s *Storage) RoomExists(ctx context.Context, code model.RoomCode) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.rooms[code]
	return ok, nil
}

func (s *Storage) FindRoomByPlayer(ctx context.Context, id model.PlayerID) (*model.Room, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, room := range s.rooms {
		if room.GetPlayer(id) != nil {
			return copyRoom(room), nil
		}
	}
	return nil, model.ErrRoomNotFound
}

// Word pool operations

func (s *Storage) SaveWords(ctx context.Context, words []string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.words = make([]string, len(words))
	copy(s.words, words)
	return nil
}

func (s *Storage) GetWords(ctx context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.words == nil {
		return nil, model.ErrWordPoolEmpty
	}
	result := make([]string, len(s.words))
	copy(result, s.words)
	return result, nil
}
