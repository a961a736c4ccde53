// Package handler provides HTTP handlers for the Planta API.
package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/planta-io/planta/internal/service"
)

// envelope is the uniform response shape: a success flag plus either the
// payload or an error description.
type envelope struct {
	Success  bool `json:"success"`
	Response any  `json:"response"`
}

// dataEnvelope is the shape used by the single-plant read, kept for
// client compatibility.
type dataEnvelope struct {
	Data    any  `json:"data"`
	Success bool `json:"success"`
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

// writeResponse writes the standard success/response envelope.
func writeResponse(w http.ResponseWriter, status int, payload any) {
	writeJSON(w, status, envelope{Success: true, Response: payload})
}

// writeError writes a failed envelope with a client-safe message.
func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, envelope{Success: false, Response: message})
}

// Fixed client-facing messages. Internal error detail never reaches the
// wire; it is logged server-side and translated here.
const (
	msgNotFound           = "Not found"
	msgPlantNotFound      = "Sorry! Can't find a plant with that name."
	msgCredentialMismatch = "Credentials do not match"
	msgCouldNotProcess    = "Could not process request"
)

// writeServiceError translates a service error into a stable external
// status and message.
func writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, service.ErrPlantNotFound),
		errors.Is(err, service.ErrEventNotFound),
		errors.Is(err, service.ErrUserNotFound):
		writeError(w, http.StatusNotFound, msgNotFound)
	case errors.Is(err, service.ErrInvalidCredentials):
		writeError(w, http.StatusBadRequest, msgCredentialMismatch)
	case errors.Is(err, service.ErrInvalidPassword):
		writeError(w, http.StatusBadRequest, "Password must be at least 8 characters")
	case errors.Is(err, service.ErrUsernameRequired):
		writeError(w, http.StatusBadRequest, "Username is required")
	case errors.Is(err, service.ErrEmailRequired):
		writeError(w, http.StatusBadRequest, "Email is required")
	case errors.Is(err, service.ErrUserAlreadyExists):
		writeError(w, http.StatusBadRequest, "Username is already taken")
	case errors.Is(err, service.ErrPlantNameRequired):
		writeError(w, http.StatusBadRequest, "Could not save the Plant")
	case errors.Is(err, service.ErrEventTitleRequired),
		errors.Is(err, service.ErrEventStartDateInvalid):
		writeError(w, http.StatusBadRequest, "Could not save the Event")
	default:
		writeError(w, http.StatusBadRequest, msgCouldNotProcess)
	}
}

// decodeBody decodes a JSON request body into dst. A false return means
// the 400 has already been written.
func decodeBody(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		writeError(w, http.StatusBadRequest, msgCouldNotProcess)
		return false
	}
	return true
}
