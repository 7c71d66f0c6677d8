package model

import "errors"

// Common errors used across the application
var (
	// Room errors
	ErrRoomNotFound     = errors.New("room not found")
	ErrRoomFull         = errors.New("room is full")
	ErrNameTaken        = errors.New("name already taken in room")
	ErrEmptyName        = errors.New("player name is empty")
	ErrGameInProgress   = errors.New("game already in progress")
	ErrNotEnoughPlayers = errors.New("not enough players to start")
	ErrNotAdmin         = errors.New("player is not the room admin")
	ErrWrongPhase       = errors.New("operation not valid in current phase")
	ErrNotInRoom        = errors.New("player is not in a room")

	// Word pool errors
	ErrWordPoolEmpty = errors.New("word pool is empty")
)
