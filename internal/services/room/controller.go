package room

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/matiasolis/impostor-party/internal/dependencies/clock"
	"github.com/matiasolis/impostor-party/internal/dependencies/random"
	"github.com/matiasolis/impostor-party/internal/model"
	"github.com/matiasolis/impostor-party/internal/services/words"
	"github.com/matiasolis/impostor-party/internal/storage"
)

const (
	// RoomCodeLength is the length of generated room codes
	RoomCodeLength = 6
	// RoomCodeAlphabet is the characters used in room codes
	RoomCodeAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	// PasswordLength is the length of the cosmetic room password
	PasswordLength = 4
	// PasswordAlphabet is the characters used in room passwords
	PasswordAlphabet = "0123456789"

	// MaxPlayers is the room capacity
	MaxPlayers = 12
	// MinPlayersToStart is the minimum player count for the first round
	MinPlayersToStart = 4

	// RoundDuration is how long a round runs before the timer ends it.
	// Rounds end only by timer; there is no early-reveal path.
	RoundDuration = 10 * time.Second
)

// Notifier receives room-scoped fan-out events. The session layer implements
// it on top of the websocket hub; the controller stays transport-agnostic.
type Notifier interface {
	// PlayerJoined is sent to the room except the joiner (who gets roomJoined)
	PlayerJoined(room *model.Room, joiner model.PlayerID)
	// PlayerLeft is sent to the remaining room members
	PlayerLeft(room *model.Room)
	// RoundStarted delivers the personalized word/impostor split
	RoundStarted(room *model.Room, round *model.Round)
	// RoundEnded reveals the word and impostor to the whole room
	RoundEnded(code model.RoomCode, round *model.Round)
	// ReturnedToLobby is sent room-wide when the admin resets to the lobby
	ReturnedToLobby(room *model.Room)
}

// Controller owns the room registry and the per-room lifecycle state machine.
// A single mutex serializes every mutation, including the round timer
// callback, giving each room the run-to-completion atomicity the protocol
// assumes.
type Controller struct {
	mu       sync.Mutex
	storage  storage.Storage
	words    *words.Service
	clock    clock.Clock
	random   random.Random
	notifier Notifier
	logger   *slog.Logger
}

// NewController creates a new room Controller
func NewController(
	store storage.Storage,
	wordPool *words.Service,
	clk clock.Clock,
	rnd random.Random,
	notifier Notifier,
	logger *slog.Logger,
) *Controller {
	return &Controller{
		storage:  store,
		words:    wordPool,
		clock:    clk,
		random:   rnd,
		notifier: notifier,
		logger:   logger.With(slog.String("component", "room")),
	}
}

// CreateRoom creates a new room with the given player as sole member and admin
func (c *Controller) CreateRoom(ctx context.Context, playerID model.PlayerID, playerName string) (*model.Room, error) {
	name, err := normalizeName(playerName)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.clock.Now()

	// Generate unique room code
	var code model.RoomCode
	for {
		code = model.RoomCode(c.random.String(RoomCodeLength, RoomCodeAlphabet))
		exists, err := c.storage.RoomExists(ctx, code)
		if err != nil {
			return nil, err
		}
		if !exists {
			break
		}
	}

	room := &model.Room{
		Code:     code,
		Password: c.random.String(PasswordLength, PasswordAlphabet),
		AdminID:  playerID,
		Players: []model.Player{
			{
				ID:       playerID,
				Name:     name,
				IsAdmin:  true,
				JoinedAt: now,
			},
		},
		Phase:     model.PhaseLobby,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := c.storage.SaveRoom(ctx, room); err != nil {
		return nil, err
	}

	c.logger.Info("room created",
		slog.String("code", string(code)),
		slog.String("player", name))
	return room, nil
}

// GetRoom retrieves a room by code
func (c *Controller) GetRoom(ctx context.Context, code model.RoomCode) (*model.Room, error) {
	return c.storage.GetRoom(ctx, code)
}

// JoinRoom adds a player to an existing room in the lobby phase
func (c *Controller) JoinRoom(ctx context.Context, code model.RoomCode, playerID model.PlayerID, playerName string) (*model.Room, error) {
	name, err := normalizeName(playerName)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	room, err := c.storage.GetRoom(ctx, code)
	if err != nil {
		return nil, err
	}

	// No mid-game joins
	if room.Phase != model.PhaseLobby {
		return nil, model.ErrGameInProgress
	}

	if len(room.Players) >= MaxPlayers {
		return nil, model.ErrRoomFull
	}

	if room.HasPlayerNamed(name) {
		return nil, model.ErrNameTaken
	}

	room.Players = append(room.Players, model.Player{
		ID:       playerID,
		Name:     name,
		IsAdmin:  false,
		JoinedAt: c.clock.Now(),
	})
	room.UpdatedAt = c.clock.Now()

	if err := c.storage.SaveRoom(ctx, room); err != nil {
		return nil, err
	}

	c.notifier.PlayerJoined(room, playerID)

	c.logger.Info("player joined",
		slog.String("code", string(code)),
		slog.String("player", name))
	return room, nil
}

// StartGame begins the first round. Admin-only, lobby phase, at least four
// players.
func (c *Controller) StartGame(ctx context.Context, playerID model.PlayerID) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	room, err := c.findPlayerRoom(ctx, playerID)
	if err != nil {
		return err
	}

	if !room.IsAdmin(playerID) {
		return model.ErrNotAdmin
	}

	if len(room.Players) < MinPlayersToStart {
		return model.ErrNotEnoughPlayers
	}

	if room.Phase != model.PhaseLobby {
		return model.ErrWrongPhase
	}

	return c.startRound(ctx, room)
}

// NextRound begins another round after one has ended. Admin-only; the
// player-count requirement is not re-checked, matching round-advance
// semantics (players cannot join mid-game, only leave).
func (c *Controller) NextRound(ctx context.Context, playerID model.PlayerID) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	room, err := c.findPlayerRoom(ctx, playerID)
	if err != nil {
		return err
	}

	if !room.IsAdmin(playerID) {
		return model.ErrNotAdmin
	}

	if room.Phase != model.PhaseRoundEnded {
		return model.ErrWrongPhase
	}

	return c.startRound(ctx, room)
}

// BackToLobby resets a finished game to the lobby phase. Admin-only.
func (c *Controller) BackToLobby(ctx context.Context, playerID model.PlayerID) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	room, err := c.findPlayerRoom(ctx, playerID)
	if err != nil {
		return err
	}

	if !room.IsAdmin(playerID) {
		return model.ErrNotAdmin
	}

	if room.Phase != model.PhaseRoundEnded {
		return model.ErrWrongPhase
	}

	room.Phase = model.PhaseLobby
	room.LastRound = nil
	room.UpdatedAt = c.clock.Now()

	if err := c.storage.SaveRoom(ctx, room); err != nil {
		return err
	}

	c.notifier.ReturnedToLobby(room)

	c.logger.Info("back to lobby", slog.String("code", string(room.Code)))
	return nil
}

// Leave removes a player from their room. Used for explicit leaves and for
// transport disconnects, which share one cleanup path. If the leaver was
// admin, the first remaining player is promoted; if the room empties, it is
// deleted and any pending round timer becomes a no-op.
func (c *Controller) Leave(ctx context.Context, playerID model.PlayerID) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	room, err := c.findPlayerRoom(ctx, playerID)
	if err != nil {
		return err
	}

	wasAdmin := room.IsAdmin(playerID)
	for i := range room.Players {
		if room.Players[i].ID == playerID {
			room.Players = append(room.Players[:i], room.Players[i+1:]...)
			break
		}
	}

	if len(room.Players) == 0 {
		if err := c.storage.DeleteRoom(ctx, room.Code); err != nil {
			return err
		}
		c.logger.Info("room closed", slog.String("code", string(room.Code)))
		return nil
	}

	if wasAdmin {
		room.Players[0].IsAdmin = true
		room.AdminID = room.Players[0].ID
	}
	room.UpdatedAt = c.clock.Now()

	if err := c.storage.SaveRoom(ctx, room); err != nil {
		return err
	}

	c.notifier.PlayerLeft(room)

	c.logger.Info("player left",
		slog.String("code", string(room.Code)),
		slog.String("player", string(playerID)))
	return nil
}

// findPlayerRoom resolves the acting player's room. Absence maps to
// ErrNotInRoom; storage failures pass through unchanged so they reach the
// error log instead of being dropped as a silent no-op.
func (c *Controller) findPlayerRoom(ctx context.Context, playerID model.PlayerID) (*model.Room, error) {
	room, err := c.storage.FindRoomByPlayer(ctx, playerID)
	if err != nil {
		if errors.Is(err, model.ErrRoomNotFound) {
			return nil, model.ErrNotInRoom
		}
		return nil, err
	}
	return room, nil
}

// startRound picks a word and impostor, arms the round timer, and notifies.
// Callers hold c.mu and have validated the transition.
func (c *Controller) startRound(ctx context.Context, room *model.Room) error {
	impostor := room.Players[c.random.Intn(len(room.Players))]

	round := &model.Round{
		ID:           model.RoundID(uuid.NewString()),
		Word:         c.words.RandomWord(),
		ImpostorID:   impostor.ID,
		ImpostorName: impostor.Name,
		StartedAt:    c.clock.Now(),
	}

	room.Phase = model.PhaseRoundActive
	room.CurrentRound = round
	room.LastRound = nil
	room.UpdatedAt = c.clock.Now()

	if err := c.storage.SaveRoom(ctx, room); err != nil {
		return err
	}

	c.notifier.RoundStarted(room, round)

	code := room.Code
	roundID := round.ID
	c.clock.AfterFunc(RoundDuration, func() {
		c.endRound(code, roundID)
	})

	c.logger.Info("round started",
		slog.String("code", string(code)),
		slog.String("word", round.Word),
		slog.String("impostor", round.ImpostorName))
	return nil
}

// endRound is the timer callback. Arbitrary time has passed since the round
// started, so it re-validates that the room still exists and that the round
// it was armed for is still the current one before acting.
func (c *Controller) endRound(code model.RoomCode, roundID model.RoundID) {
	c.mu.Lock()
	defer c.mu.Unlock()

	ctx := context.Background()

	room, err := c.storage.GetRoom(ctx, code)
	if err != nil {
		return // room deleted before the timer fired
	}

	if room.Phase != model.PhaseRoundActive || room.CurrentRound == nil || room.CurrentRound.ID != roundID {
		return // stale timer
	}

	round := room.CurrentRound
	room.Phase = model.PhaseRoundEnded
	room.CurrentRound = nil
	room.LastRound = round
	room.UpdatedAt = c.clock.Now()

	if err := c.storage.SaveRoom(ctx, room); err != nil {
		c.logger.Error("failed to save room at round end",
			slog.String("code", string(code)),
			slog.Any("error", err))
		return
	}

	c.notifier.RoundEnded(code, round)

	c.logger.Info("round ended",
		slog.String("code", string(code)),
		slog.String("word", round.Word))
}

// normalizeName trims and upper-cases a display name
func normalizeName(name string) (string, error) {
	name = strings.ToUpper(strings.TrimSpace(name))
	if name == "" {
		return "", model.ErrEmptyName
	}
	return name, nil
}

// Interface for dependency injection
type ControllerInterface interface {
	CreateRoom(ctx context.Context, playerID model.PlayerID, playerName string) (*model.Room, error)
	GetRoom(ctx context.Context, code model.RoomCode) (*model.Room, error)
	JoinRoom(ctx context.Context, code model.RoomCode, playerID model.PlayerID, playerName string) (*model.Room, error)
	StartGame(ctx context.Context, playerID model.PlayerID) error
	NextRound(ctx context.Context, playerID model.PlayerID) error
	BackToLobby(ctx context.Context, playerID model.PlayerID) error
	Leave(ctx context.Context, playerID model.PlayerID) error
}

var _ ControllerInterface = (*Controller)(nil)
