package ws

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/matiasolis/impostor-party/internal/model"
	"github.com/matiasolis/impostor-party/internal/services/room"
	"github.com/matiasolis/impostor-party/internal/testutil"
)

// fakeController scripts controller responses and records calls
type fakeController struct {
	createRoomResult *model.Room
	createRoomErr    error
	joinRoomResult   *model.Room
	joinRoomErr      error
	startGameErr     error
	nextRoundErr     error
	backToLobbyErr   error
	leaveErr         error

	calls []string
}

var _ room.ControllerInterface = (*fakeController)(nil)

func (f *fakeController) CreateRoom(ctx context.Context, playerID model.PlayerID, playerName string) (*model.Room, error) {
	f.calls = append(f.calls, "CreateRoom")
	return f.createRoomResult, f.createRoomErr
}

func (f *fakeController) GetRoom(ctx context.Context, code model.RoomCode) (*model.Room, error) {
	f.calls = append(f.calls, "GetRoom")
	return nil, model.ErrRoomNotFound
}

func (f *fakeController) JoinRoom(ctx context.Context, code model.RoomCode, playerID model.PlayerID, playerName string) (*model.Room, error) {
	f.calls = append(f.calls, "JoinRoom")
	return f.joinRoomResult, f.joinRoomErr
}

func (f *fakeController) StartGame(ctx context.Context, playerID model.PlayerID) error {
	f.calls = append(f.calls, "StartGame")
	return f.startGameErr
}

func (f *fakeController) NextRound(ctx context.Context, playerID model.PlayerID) error {
	f.calls = append(f.calls, "NextRound")
	return f.nextRoundErr
}

func (f *fakeController) BackToLobby(ctx context.Context, playerID model.PlayerID) error {
	f.calls = append(f.calls, "BackToLobby")
	return f.backToLobbyErr
}

func (f *fakeController) Leave(ctx context.Context, playerID model.PlayerID) error {
	f.calls = append(f.calls, "Leave")
	return f.leaveErr
}

type SessionSuite struct {
	suite.Suite
	hub        *Hub
	controller *fakeController
	client     *Client
	session    *Session
	ctx        context.Context
}

func TestSessionSuite(t *testing.T) {
	suite.Run(t, new(SessionSuite))
}

func (s *SessionSuite) SetupTest() {
	logger := testutil.NopLogger()
	s.hub = NewHub(logger)
	s.controller = &fakeController{}
	s.client = NewClient("p1", nil, logger)
	s.hub.Add(s.client)
	s.session = NewSession("p1", s.hub, s.controller, logger)
	s.ctx = context.Background()
}

func (s *SessionSuite) frame(event string, data any) []byte {
	msg, err := Encode(event, data)
	s.Require().NoError(err)
	return msg
}

func (s *SessionSuite) receive() Envelope {
	select {
	case raw := <-s.client.send:
		var env Envelope
		s.Require().NoError(json.Unmarshal(raw, &env))
		return env
	default:
		s.Require().FailNow("no message queued")
		return Envelope{}
	}
}

func (s *SessionSuite) assertNoMessage() {
	select {
	case raw := <-s.client.send:
		s.Require().FailNow("unexpected message", string(raw))
	default:
	}
}

func (s *SessionSuite) TestCreateRoomSendsWelcome() {
	s.controller.createRoomResult = &model.Room{
		Code:     "ABC123",
		Password: "4521",
		AdminID:  "p1",
		Phase:    model.PhaseLobby,
		Players:  []model.Player{{ID: "p1", Name: "ALICE", IsAdmin: true}},
	}

	s.session.HandleMessage(s.ctx, s.frame(EventCreateRoom, CreateRoomRequest{PlayerName: "ALICE"}))

	env := s.receive()
	s.Equal(EventRoomCreated, env.Event)

	var welcome RoomWelcome
	s.Require().NoError(json.Unmarshal(env.Data, &welcome))
	s.Equal("ABC123", welcome.RoomCode)
	s.Equal("4521", welcome.Password)
	s.True(welcome.IsAdmin)
	s.Len(welcome.Players, 1)

	// The creator joins the room's broadcast group
	s.Equal(1, s.hub.RoomSize("ABC123"))
}

func (s *SessionSuite) TestCreateRoomEmptyNameSurfaced() {
	s.controller.createRoomErr = model.ErrEmptyName

	s.session.HandleMessage(s.ctx, s.frame(EventCreateRoom, CreateRoomRequest{}))

	env := s.receive()
	s.Equal(EventRoomError, env.Event)

	var payload RoomError
	s.Require().NoError(json.Unmarshal(env.Data, &payload))
	s.Equal("NAME REQUIRED!", payload.Message)
}

func (s *SessionSuite) TestJoinRoomSendsWelcomeAsNonAdmin() {
	s.controller.joinRoomResult = &model.Room{
		Code:     "ABC123",
		Password: "4521",
		AdminID:  "p0",
		Phase:    model.PhaseLobby,
		Players: []model.Player{
			{ID: "p0", Name: "ALICE", IsAdmin: true},
			{ID: "p1", Name: "BOB"},
		},
	}

	s.session.HandleMessage(s.ctx, s.frame(EventJoinRoom, JoinRoomRequest{RoomCode: "ABC123", PlayerName: "BOB"}))

	env := s.receive()
	s.Equal(EventRoomJoined, env.Event)

	var welcome RoomWelcome
	s.Require().NoError(json.Unmarshal(env.Data, &welcome))
	s.False(welcome.IsAdmin)
	s.Len(welcome.Players, 2)
	s.Equal(1, s.hub.RoomSize("ABC123"))
}

func (s *SessionSuite) TestJoinRoomErrorsSurfaced() {
	cases := []struct {
		err     error
		message string
	}{
		{model.ErrRoomNotFound, "ROOM NOT FOUND!"},
		{model.ErrGameInProgress, "GAME ALREADY IN PROGRESS!"},
		{model.ErrRoomFull, "ROOM IS FULL!"},
		{model.ErrNameTaken, "NAME ALREADY TAKEN!"},
	}

	for _, tc := range cases {
		s.controller.joinRoomErr = tc.err

		s.session.HandleMessage(s.ctx, s.frame(EventJoinRoom, JoinRoomRequest{RoomCode: "ABC123", PlayerName: "BOB"}))

		env := s.receive()
		s.Equal(EventRoomError, env.Event)

		var payload RoomError
		s.Require().NoError(json.Unmarshal(env.Data, &payload))
		s.Equal(tc.message, payload.Message)
	}
}

func (s *SessionSuite) TestStartGameTooFewPlayersSurfaced() {
	s.controller.startGameErr = model.ErrNotEnoughPlayers

	s.session.HandleMessage(s.ctx, s.frame(EventStartGame, nil))

	env := s.receive()
	s.Equal(EventRoomError, env.Event)

	var payload RoomError
	s.Require().NoError(json.Unmarshal(env.Data, &payload))
	s.Equal("NEED AT LEAST 4 PLAYERS!", payload.Message)
}

func (s *SessionSuite) TestNonAdminRequestsSilentlyIgnored() {
	s.controller.startGameErr = model.ErrNotAdmin
	s.controller.nextRoundErr = model.ErrNotAdmin
	s.controller.backToLobbyErr = model.ErrNotAdmin

	s.session.HandleMessage(s.ctx, s.frame(EventStartGame, nil))
	s.session.HandleMessage(s.ctx, s.frame(EventNextRound, nil))
	s.session.HandleMessage(s.ctx, s.frame(EventBackToLobby, nil))

	s.assertNoMessage()
	s.Equal([]string{"StartGame", "NextRound", "BackToLobby"}, s.controller.calls)
}

func (s *SessionSuite) TestWrongPhaseSilentlyIgnored() {
	s.controller.startGameErr = model.ErrWrongPhase

	s.session.HandleMessage(s.ctx, s.frame(EventStartGame, nil))

	s.assertNoMessage()
}

func (s *SessionSuite) TestLeaveRemovesFromBroadcastGroupFirst() {
	s.hub.JoinRoom("p1", "ABC123")

	s.session.HandleMessage(s.ctx, s.frame(EventLeaveRoom, nil))

	s.Equal(0, s.hub.RoomSize("ABC123"))
	s.Equal([]string{"Leave"}, s.controller.calls)
	s.assertNoMessage()
}

func (s *SessionSuite) TestLeaveWhenNotInRoomIsQuiet() {
	s.controller.leaveErr = model.ErrNotInRoom

	s.session.HandleMessage(s.ctx, s.frame(EventLeaveRoom, nil))

	s.assertNoMessage()
}

func (s *SessionSuite) TestDisconnectCleansUp() {
	s.hub.JoinRoom("p1", "ABC123")

	s.session.HandleDisconnect(s.ctx)

	s.Equal(0, s.hub.ClientCount())
	s.Equal(0, s.hub.RoomSize("ABC123"))
	s.Equal([]string{"Leave"}, s.controller.calls)
}

func (s *SessionSuite) TestMalformedFrameIgnored() {
	s.session.HandleMessage(s.ctx, []byte("{not json"))
	s.session.HandleMessage(s.ctx, s.frame("unknownEvent", nil))

	s.assertNoMessage()
	s.Empty(s.controller.calls)
}
