package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/ternarybob/arbor"
	"github.com/ternarybob/propcast/internal/interfaces"
	"github.com/ternarybob/propcast/internal/services/projection"
)

// maxBodyBytes bounds JSON request bodies
const maxBodyBytes = 1 << 20

// RequireMethod validates that the HTTP request uses the specified method.
// Returns true if the method matches, false otherwise (and writes error response).
func RequireMethod(w http.ResponseWriter, r *http.Request, method string) bool {
	if r.Method != method {
		WriteError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return false
	}
	return true
}

// WriteJSON writes a JSON response with the specified status code and data.
func WriteJSON(w http.ResponseWriter, statusCode int, data interface{}) error {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	return json.NewEncoder(w).Encode(data)
}

// WriteSuccess writes a standard success JSON response.
func WriteSuccess(w http.ResponseWriter, message string) error {
	return WriteJSON(w, http.StatusOK, map[string]string{
		"status":  "success",
		"message": message,
	})
}

// WriteError writes a standard error JSON response.
func WriteError(w http.ResponseWriter, statusCode int, message string) error {
	return WriteJSON(w, statusCode, map[string]string{
		"status": "error",
		"error":  message,
	})
}

// DecodeJSON reads a JSON body, rejecting unknown fields.
// Returns false (and writes a 400) when the body cannot be decoded.
func DecodeJSON(w http.ResponseWriter, r *http.Request, dst interface{}) bool {
	decoder := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(dst); err != nil {
		WriteError(w, http.StatusBadRequest, fmt.Sprintf("Invalid request body: %v", err))
		return false
	}
	return true
}

// WriteServiceError maps service errors to HTTP status codes
func WriteServiceError(w http.ResponseWriter, logger arbor.ILogger, err error, operation string) {
	switch {
	case errors.Is(err, projection.ErrValidation):
		WriteError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, interfaces.ErrCurveNotFound):
		WriteError(w, http.StatusNotFound, err.Error())
	default:
		logger.Error().Err(err).Str("operation", operation).Msg("Request failed")
		WriteError(w, http.StatusInternalServerError, "Internal server error")
	}
}
