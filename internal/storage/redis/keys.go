package redis

import (
	"fmt"

	"github.com/matiasolis/impostor-party/internal/model"
)

// Key prefix for all game-related data
const keyPrefix = "impostor"

// roomKey returns the Redis key for a Room
func roomKey(code model.RoomCode) string {
	return fmt.Sprintf("%s:room:%s", keyPrefix, code)
}

// roomKeyPattern matches all room keys, used by the player scan
func roomKeyPattern() string {
	return fmt.Sprintf("%s:room:*", keyPrefix)
}

// wordsKey returns the Redis key for the word pool
func wordsKey() string {
	return fmt.Sprintf("%s:words", keyPrefix)
}
