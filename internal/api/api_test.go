package api_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/matiasolis/impostor-party/internal/api/response"
	"github.com/matiasolis/impostor-party/internal/factory"
)

type APISuite struct {
	suite.Suite
	app    *factory.TestApp
	server *httptest.Server
}

func TestAPISuite(t *testing.T) {
	suite.Run(t, new(APISuite))
}

func (s *APISuite) SetupTest() {
	s.app = factory.NewForTesting()
	s.server = httptest.NewServer(s.app.Router)
}

func (s *APISuite) TearDownTest() {
	s.server.Close()
}

func (s *APISuite) get(path string) *http.Response {
	resp, err := http.Get(s.server.URL + path)
	s.Require().NoError(err)
	return resp
}

func (s *APISuite) seedRoom(code string) {
	s.app.MockRandom.QueueString(code, "4521")
	_, err := s.app.RoomController.CreateRoom(context.Background(), "conn-1", "ALICE")
	s.Require().NoError(err)
}

func (s *APISuite) TestHealth() {
	resp := s.get("/api/v1/health")
	defer resp.Body.Close()

	s.Equal(http.StatusOK, resp.StatusCode)

	var health response.Health
	s.Require().NoError(json.NewDecoder(resp.Body).Decode(&health))
	s.Equal("ok", health.Status)
}

func (s *APISuite) TestGetRoom() {
	s.seedRoom("ABC123")

	resp := s.get("/api/v1/rooms/abc123")
	defer resp.Body.Close()

	s.Equal(http.StatusOK, resp.StatusCode)
	s.Equal("application/json", resp.Header.Get("Content-Type"))

	var room response.Room
	s.Require().NoError(json.NewDecoder(resp.Body).Decode(&room))
	s.Equal("ABC123", room.Code)
	s.Equal("4521", room.Password)
	s.Equal("lobby", room.Phase)
	s.Equal(1, room.PlayerCount)
	s.Require().Len(room.Players, 1)
	s.Equal("ALICE", room.Players[0].Name)
	s.True(room.Players[0].IsAdmin)
}

func (s *APISuite) TestGetRoomNotFound() {
	resp := s.get("/api/v1/rooms/NOSUCH")
	defer resp.Body.Close()

	s.Equal(http.StatusNotFound, resp.StatusCode)
}

func (s *APISuite) TestGetRoomBadCode() {
	resp := s.get("/api/v1/rooms/TOOLONGCODE")
	defer resp.Body.Close()

	s.Equal(http.StatusBadRequest, resp.StatusCode)
}

func (s *APISuite) TestRoomQR() {
	s.seedRoom("ABC123")

	resp := s.get("/api/v1/rooms/ABC123/qr")
	defer resp.Body.Close()

	s.Equal(http.StatusOK, resp.StatusCode)
	s.Equal("image/png", resp.Header.Get("Content-Type"))
}

func (s *APISuite) TestRoomQRNotFound() {
	resp := s.get("/api/v1/rooms/NOSUCH/qr")
	defer resp.Body.Close()

	s.Equal(http.StatusNotFound, resp.StatusCode)
}
