package handler

import (
	"net/http"
	"strings"

	"github.com/gorilla/mux"
	"github.com/skip2/go-qrcode"

	"github.com/matiasolis/impostor-party/internal/api/apierr"
	"github.com/matiasolis/impostor-party/internal/api/response"
	"github.com/matiasolis/impostor-party/internal/model"
	"github.com/matiasolis/impostor-party/internal/services/room"
)

// qrSize is the pixel size of generated QR codes, mobile-friendly
const qrSize = 320

// RoomHandler serves the read-only HTTP view of rooms
type RoomHandler struct {
	rooms *room.Controller
}

// NewRoomHandler creates a new RoomHandler
func NewRoomHandler(rooms *room.Controller) *RoomHandler {
	return &RoomHandler{rooms: rooms}
}

// Get returns the public lobby snapshot for a room
func (h *RoomHandler) Get(w http.ResponseWriter, r *http.Request) {
	code := mux.Vars(r)["code"]
	if len(code) != room.RoomCodeLength {
		apierr.WriteInvalidRequest(w, "Room code must be 6 characters")
		return
	}

	rm, err := h.rooms.GetRoom(r.Context(), model.RoomCode(strings.ToUpper(code)))
	if err != nil {
		apierr.WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.RoomFromModel(rm))
}

// QR returns a PNG QR code encoding the room's join URL, for passing a phone
// around the table
func (h *RoomHandler) QR(w http.ResponseWriter, r *http.Request) {
	code := strings.ToUpper(mux.Vars(r)["code"])

	rm, err := h.rooms.GetRoom(r.Context(), model.RoomCode(code))
	if err != nil {
		apierr.WriteError(w, err)
		return
	}

	scheme := "http"
	if r.TLS != nil {
		scheme = "https"
	}
	if proto := r.Header.Get("X-Forwarded-Proto"); proto != "" {
		scheme = proto
	}

	url := scheme + "://" + r.Host + "/?join=" + string(rm.Code)

	png, err := qrcode.Encode(url, qrcode.Medium, qrSize)
	if err != nil {
		apierr.WriteError(w, err)
		return
	}

	response.PNG(w, png)
}
