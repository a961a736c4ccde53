package handler

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/planta-io/planta/internal/auth"
	"github.com/planta-io/planta/internal/domain"
	"github.com/planta-io/planta/internal/service"
)

// PlantHandler handles plant CRUD requests.
type PlantHandler struct {
	plantService *service.PlantService
	logger       zerolog.Logger
}

// NewPlantHandler creates a new PlantHandler.
func NewPlantHandler(plantService *service.PlantService, logger zerolog.Logger) *PlantHandler {
	return &PlantHandler{
		plantService: plantService,
		logger:       logger.With().Str("handler", "plant").Logger(),
	}
}

// callerID returns the authenticated user's id, or zero on ungated
// routes.
func callerID(r *http.Request) int64 {
	if user, ok := auth.UserFromContext(r.Context()); ok {
		return user.ID
	}
	return 0
}

// plantID parses the id path parameter. A false return means the 404
// has already been written.
func plantID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, "plantId"))
	if err != nil {
		writeError(w, http.StatusNotFound, msgNotFound)
		return uuid.Nil, false
	}
	return id, true
}

// List handles GET /plants. Only the caller's plants are returned.
func (h *PlantHandler) List(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.UserFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "Please log in")
		return
	}

	plants, err := h.plantService.ListByOwner(r.Context(), user.ID)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeResponse(w, http.StatusOK, plants)
}

// Get handles GET /plant/{plantId}.
func (h *PlantHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := plantID(w, r)
	if !ok {
		return
	}

	plant, err := h.plantService.Get(r.Context(), callerID(r), id)
	if err != nil {
		if errors.Is(err, service.ErrPlantNotFound) {
			writeError(w, http.StatusNotFound, msgPlantNotFound)
			return
		}
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, dataEnvelope{Data: plant, Success: true})
}

type createPlantRequest struct {
	PlantName       string `json:"plantName"`
	TypeOfPlant     string `json:"typeOfPlant"`
	IndoorOrOutdoor string `json:"indoorOrOutdoor"`
	Image           string `json:"image"`
	Information     string `json:"information"`
}

// Create handles POST /plants.
func (h *PlantHandler) Create(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.UserFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "Please log in")
		return
	}

	var req createPlantRequest
	if !decodeBody(w, r, &req) {
		return
	}

	plant, err := h.plantService.Create(r.Context(), service.CreatePlantInput{
		OwnerID:         user.ID,
		PlantName:       req.PlantName,
		TypeOfPlant:     req.TypeOfPlant,
		IndoorOrOutdoor: req.IndoorOrOutdoor,
		Image:           req.Image,
		Information:     req.Information,
	})
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeResponse(w, http.StatusCreated, plant)
}

// Update handles PATCH /plant/{plantId}/updated. Only the whitelisted
// fields change; omitted fields are left alone.
func (h *PlantHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := plantID(w, r)
	if !ok {
		return
	}

	var update domain.PlantUpdate
	if !decodeBody(w, r, &update) {
		return
	}

	plant, err := h.plantService.Update(r.Context(), service.UpdatePlantInput{
		CallerID: callerID(r),
		ID:       id,
		Update:   update,
	})
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeResponse(w, http.StatusOK, plant)
}

// Delete handles DELETE /plant/{plantId}. The deleted record is echoed
// back.
func (h *PlantHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := plantID(w, r)
	if !ok {
		return
	}

	plant, err := h.plantService.Delete(r.Context(), callerID(r), id)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeResponse(w, http.StatusOK, plant)
}
