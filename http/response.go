package http

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/sagarc03/facerelay"
)

// ErrorResponse represents a JSON error response
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// MessageResponse acknowledges a write that returns nothing else.
type MessageResponse struct {
	Message string `json:"message"`
}

type UpdateNameResponse struct {
	UpdateName string `json:"updatename"`
}

type IntervalResponse struct {
	Message  string `json:"message"`
	Interval int    `json:"interval"`
}

type HealthResponse struct {
	Status  string `json:"status"`
	Records int    `json:"records"`
}

// WriteError writes a JSON error response
func WriteError(w http.ResponseWriter, code int, errCode, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(ErrorResponse{
		Error:   errCode,
		Message: message,
	}); err != nil {
		slog.Error("failed to encode error response", "error", err)
	}
}

// HandleError writes appropriate error response based on error type
func HandleError(w http.ResponseWriter, err error) {
	var missing *MissingFieldError
	switch {
	case errors.Is(err, facerelay.ErrNoFile):
		WriteError(w, http.StatusNotFound, "not_found", "No file available")
	case errors.Is(err, facerelay.ErrNotFound):
		WriteError(w, http.StatusNotFound, "not_found", "No data available")
	case errors.Is(err, ErrTooLarge):
		WriteError(w, http.StatusRequestEntityTooLarge, "too_large", "Upload exceeds the size limit")
	case errors.As(err, &missing):
		WriteError(w, http.StatusUnprocessableEntity, "invalid_form", missing.Error())
	case errors.Is(err, ErrInvalidForm):
		slog.Debug("rejected form", "error", err)
		WriteError(w, http.StatusUnprocessableEntity, "invalid_form", "Request body is not a valid form")
	case errors.Is(err, facerelay.ErrInvalidInput):
		WriteError(w, http.StatusBadRequest, "invalid_input", "Invalid file name")
	default:
		slog.Error("request error", "error", err)
		WriteError(w, http.StatusInternalServerError, "internal_error", "Internal Server Error")
	}
}

// WriteJSON writes a JSON response
func WriteJSON(w http.ResponseWriter, code int, data any) error {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	return json.NewEncoder(w).Encode(data)
}
