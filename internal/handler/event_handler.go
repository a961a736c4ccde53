package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/planta-io/planta/internal/auth"
	"github.com/planta-io/planta/internal/service"
)

// EventHandler handles calendar event requests.
type EventHandler struct {
	eventService *service.EventService
	logger       zerolog.Logger
}

// NewEventHandler creates a new EventHandler.
func NewEventHandler(eventService *service.EventService, logger zerolog.Logger) *EventHandler {
	return &EventHandler{
		eventService: eventService,
		logger:       logger.With().Str("handler", "event").Logger(),
	}
}

// eventID parses the id path parameter. A false return means the 404
// has already been written.
func eventID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, "eventId"))
	if err != nil {
		writeError(w, http.StatusNotFound, msgNotFound)
		return uuid.Nil, false
	}
	return id, true
}

// List handles GET /calendarevents. Only the caller's events are
// returned.
func (h *EventHandler) List(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.UserFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "Please log in")
		return
	}

	events, err := h.eventService.ListByOwner(r.Context(), user.ID)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeResponse(w, http.StatusOK, events)
}

type createEventRequest struct {
	EventTitle string `json:"eventTitle"`
	StartDate  string `json:"startDate"`
}

// Create handles POST /calendarevents.
func (h *EventHandler) Create(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.UserFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "Please log in")
		return
	}

	var req createEventRequest
	if !decodeBody(w, r, &req) {
		return
	}

	event, err := h.eventService.Create(r.Context(), service.CreateEventInput{
		OwnerID:    user.ID,
		EventTitle: req.EventTitle,
		StartDate:  req.StartDate,
	})
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeResponse(w, http.StatusCreated, event)
}

type setCompletedRequest struct {
	IsCompleted bool `json:"isCompleted"`
}

// SetCompleted handles PATCH /calendarevents/{eventId}/completed.
func (h *EventHandler) SetCompleted(w http.ResponseWriter, r *http.Request) {
	id, ok := eventID(w, r)
	if !ok {
		return
	}

	var req setCompletedRequest
	if !decodeBody(w, r, &req) {
		return
	}

	event, err := h.eventService.SetCompleted(r.Context(), callerID(r), id, req.IsCompleted)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeResponse(w, http.StatusOK, event)
}

// Delete handles DELETE /event/{eventId}. The deleted record is echoed
// back.
func (h *EventHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := eventID(w, r)
	if !ok {
		return
	}

	event, err := h.eventService.Delete(r.Context(), callerID(r), id)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeResponse(w, http.StatusOK, event)
}
