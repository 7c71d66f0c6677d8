package ws

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/matiasolis/impostor-party/internal/model"
	"github.com/matiasolis/impostor-party/internal/testutil"
)

type BroadcasterSuite struct {
	suite.Suite
	hub         *Hub
	broadcaster *Broadcaster
	clients     map[model.PlayerID]*Client
	room        *model.Room
}

func TestBroadcasterSuite(t *testing.T) {
	suite.Run(t, new(BroadcasterSuite))
}

func (s *BroadcasterSuite) SetupTest() {
	logger := testutil.NopLogger()
	s.hub = NewHub(logger)
	s.broadcaster = NewBroadcaster(s.hub, logger)
	s.clients = make(map[model.PlayerID]*Client)

	s.room = &model.Room{
		Code:    "ABC123",
		AdminID: "p1",
		Phase:   model.PhaseLobby,
		Players: []model.Player{
			{ID: "p1", Name: "ALICE", IsAdmin: true},
			{ID: "p2", Name: "BOB"},
			{ID: "p3", Name: "CARL"},
			{ID: "p4", Name: "DAVE"},
		},
	}
	for _, p := range s.room.Players {
		c := NewClient(p.ID, nil, logger)
		s.hub.Add(c)
		s.hub.JoinRoom(p.ID, s.room.Code)
		s.clients[p.ID] = c
	}
}

func (s *BroadcasterSuite) receive(id model.PlayerID) Envelope {
	select {
	case raw := <-s.clients[id].send:
		var env Envelope
		s.Require().NoError(json.Unmarshal(raw, &env))
		return env
	default:
		s.Require().FailNow("no message queued for " + string(id))
		return Envelope{}
	}
}

func (s *BroadcasterSuite) assertNoMessage(id model.PlayerID) {
	select {
	case raw := <-s.clients[id].send:
		s.Require().FailNow("unexpected message for "+string(id), string(raw))
	default:
	}
}

func (s *BroadcasterSuite) TestPlayerJoinedSkipsJoiner() {
	s.broadcaster.PlayerJoined(s.room, "p4")

	s.assertNoMessage("p4")
	for _, id := range []model.PlayerID{"p1", "p2", "p3"} {
		env := s.receive(id)
		s.Equal(EventPlayerJoined, env.Event)

		var payload PlayerList
		s.Require().NoError(json.Unmarshal(env.Data, &payload))
		s.Len(payload.Players, 4)
	}
}

func (s *BroadcasterSuite) TestPlayerLeftSendsUpdatedRoster() {
	s.room.Players = s.room.Players[:3]
	s.broadcaster.PlayerLeft(s.room)

	env := s.receive("p1")
	s.Equal(EventPlayerLeft, env.Event)

	var payload PlayerList
	s.Require().NoError(json.Unmarshal(env.Data, &payload))
	s.Len(payload.Players, 3)
}

func (s *BroadcasterSuite) TestRoundStartedPersonalizesImpostor() {
	round := &model.Round{
		ID:           "round-1",
		Word:         "PIZZA",
		ImpostorID:   "p3",
		ImpostorName: "CARL",
	}

	s.broadcaster.RoundStarted(s.room, round)

	for _, id := range []model.PlayerID{"p1", "p2", "p4"} {
		env := s.receive(id)
		s.Equal(EventGameStarted, env.Event)

		var payload GameStarted
		s.Require().NoError(json.Unmarshal(env.Data, &payload))
		s.Equal("PIZZA", payload.Word)
		s.False(payload.IsImpostor)
	}

	env := s.receive("p3")
	var payload GameStarted
	s.Require().NoError(json.Unmarshal(env.Data, &payload))
	s.True(payload.IsImpostor)
	s.Empty(payload.Word)
}

func (s *BroadcasterSuite) TestRoundEndedRevealsToEveryone() {
	round := &model.Round{Word: "PIZZA", ImpostorID: "p3", ImpostorName: "CARL"}

	s.broadcaster.RoundEnded(s.room.Code, round)

	for _, p := range s.room.Players {
		env := s.receive(p.ID)
		s.Equal(EventRoundEnded, env.Event)

		var payload RoundEnded
		s.Require().NoError(json.Unmarshal(env.Data, &payload))
		s.Equal("PIZZA", payload.Word)
		s.Equal("CARL", payload.Impostor)
	}
}

func (s *BroadcasterSuite) TestReturnedToLobbySendsRoster() {
	s.broadcaster.ReturnedToLobby(s.room)

	for _, p := range s.room.Players {
		env := s.receive(p.ID)
		s.Equal(EventBackToLobby, env.Event)

		var payload PlayerList
		s.Require().NoError(json.Unmarshal(env.Data, &payload))
		s.Len(payload.Players, 4)
	}
}
