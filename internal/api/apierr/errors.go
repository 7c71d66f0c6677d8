package apierr

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/matiasolis/impostor-party/internal/model"
)

// APIError represents an API error response
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ErrorResponse wraps an APIError
type ErrorResponse struct {
	Error APIError `json:"error"`
}

// Common error codes
const (
	CodeInvalidRequest = "INVALID_REQUEST"
	CodeRoomNotFound   = "ROOM_NOT_FOUND"
	CodeInternalError  = "INTERNAL_ERROR"
)

// WriteError writes an error response to the response writer
func WriteError(w http.ResponseWriter, err error) {
	status, apiError := toAPIError(err)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(ErrorResponse{Error: apiError})
}

func toAPIError(err error) (int, APIError) {
	switch {
	case errors.Is(err, model.ErrRoomNotFound):
		return http.StatusNotFound, APIError{CodeRoomNotFound, "Room not found"}
	default:
		return http.StatusInternalServerError, APIError{CodeInternalError, "Internal server error"}
	}
}

// WriteInvalidRequest writes a 400 with the given message
func WriteInvalidRequest(w http.ResponseWriter, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusBadRequest)
	_ = json.NewEncoder(w).Encode(ErrorResponse{Error: APIError{CodeInvalidRequest, message}})
}
