package api

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/matiasolis/impostor-party/internal/api/handler"
	"github.com/matiasolis/impostor-party/internal/api/response"
	"github.com/matiasolis/impostor-party/internal/middleware"
	"github.com/matiasolis/impostor-party/internal/services/room"
)

// RouterConfig holds configuration for the router
type RouterConfig struct {
	Logger         *slog.Logger
	RoomController *room.Controller
	// WSHandler serves the websocket endpoint; wired separately because the
	// upgrade hijacks the connection and bypasses normal middleware
	WSHandler http.Handler
}

// NewRouter creates the router with all routes configured
func NewRouter(cfg RouterConfig) http.Handler {
	r := mux.NewRouter()

	roomHandler := handler.NewRoomHandler(cfg.RoomController)

	loggingMiddleware := middleware.Logging(cfg.Logger)
	recoveryMiddleware := middleware.Recovery(cfg.Logger, middleware.DefaultPanicHandler)

	// Websocket endpoint: recovery only, no response logging wrapper
	r.Handle("/ws", cfg.WSHandler).Methods(http.MethodGet)

	// Plain HTTP API
	api := r.PathPrefix("/api/v1").Subrouter()
	api.Use(recoveryMiddleware)
	api.Use(loggingMiddleware)

	api.HandleFunc("/rooms/{code}", roomHandler.Get).Methods(http.MethodGet)
	api.HandleFunc("/rooms/{code}/qr", roomHandler.QR).Methods(http.MethodGet)
	api.HandleFunc("/health", healthHandler).Methods(http.MethodGet)

	return r
}

func healthHandler(w http.ResponseWriter, r *http.Request) {
	response.JSON(w, http.StatusOK, response.Health{Status: "ok"})
}
