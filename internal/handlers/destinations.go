package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/cplatt-iso/axiom-admin/internal/models"
	"github.com/cplatt-iso/axiom-admin/internal/services"
)

// DestinationHandler serves the storage destination endpoints.
type DestinationHandler struct {
	destService *services.DestinationService
}

func NewDestinationHandler(destService *services.DestinationService) *DestinationHandler {
	return &DestinationHandler{destService: destService}
}

// Create handles POST /destinations.
func (h *DestinationHandler) Create(w http.ResponseWriter, r *http.Request) {
	var payload models.StorageDestinationCreatePayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeDetail(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	dest, err := h.destService.Create(r.Context(), &payload)
	if err != nil {
		log.Error().Err(err).Msg("Failed to create storage destination")
		writeError(w, err, "Failed to create storage destination")
		return
	}

	writeJSON(w, http.StatusCreated, dest)
}

// List handles GET /destinations.
func (h *DestinationHandler) List(w http.ResponseWriter, r *http.Request) {
	dests, err := h.destService.List(r.Context())
	if err != nil {
		log.Error().Err(err).Msg("Failed to list storage destinations")
		writeError(w, err, "Failed to list storage destinations")
		return
	}

	writeJSON(w, http.StatusOK, dests)
}

// Get handles GET /destinations/{id}.
func (h *DestinationHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeDetail(w, http.StatusBadRequest, "Invalid destination ID")
		return
	}

	dest, err := h.destService.Get(r.Context(), id)
	if err != nil {
		log.Error().Err(err).Str("destination_id", id.String()).Msg("Failed to get storage destination")
		writeError(w, err, "Failed to get storage destination")
		return
	}

	writeJSON(w, http.StatusOK, dest)
}

// Update handles PUT /destinations/{id}.
func (h *DestinationHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeDetail(w, http.StatusBadRequest, "Invalid destination ID")
		return
	}

	var payload models.StorageDestinationUpdatePayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeDetail(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	dest, err := h.destService.Update(r.Context(), id, &payload)
	if err != nil {
		log.Error().Err(err).Str("destination_id", id.String()).Msg("Failed to update storage destination")
		writeError(w, err, "Failed to update storage destination")
		return
	}

	writeJSON(w, http.StatusOK, dest)
}

// Delete handles DELETE /destinations/{id}.
func (h *DestinationHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeDetail(w, http.StatusBadRequest, "Invalid destination ID")
		return
	}

	if err := h.destService.Delete(r.Context(), id); err != nil {
		log.Error().Err(err).Str("destination_id", id.String()).Msg("Failed to delete storage destination")
		writeError(w, err, "Failed to delete storage destination")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
