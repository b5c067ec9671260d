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

// SourceHandler serves the data source endpoints.
type SourceHandler struct {
	sourceService *services.SourceService
}

func NewSourceHandler(sourceService *services.SourceService) *SourceHandler {
	return &SourceHandler{sourceService: sourceService}
}

// Create handles POST /sources.
func (h *SourceHandler) Create(w http.ResponseWriter, r *http.Request) {
	var payload models.DataSourceCreatePayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeDetail(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	source, err := h.sourceService.Create(r.Context(), &payload)
	if err != nil {
		log.Error().Err(err).Msg("Failed to create data source")
		writeError(w, err, "Failed to create data source")
		return
	}

	writeJSON(w, http.StatusCreated, source)
}

// List handles GET /sources.
func (h *SourceHandler) List(w http.ResponseWriter, r *http.Request) {
	sources, err := h.sourceService.List(r.Context())
	if err != nil {
		log.Error().Err(err).Msg("Failed to list data sources")
		writeError(w, err, "Failed to list data sources")
		return
	}

	writeJSON(w, http.StatusOK, sources)
}

// Get handles GET /sources/{id}.
func (h *SourceHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeDetail(w, http.StatusBadRequest, "Invalid source ID")
		return
	}

	source, err := h.sourceService.Get(r.Context(), id)
	if err != nil {
		log.Error().Err(err).Str("source_id", id.String()).Msg("Failed to get data source")
		writeError(w, err, "Failed to get data source")
		return
	}

	writeJSON(w, http.StatusOK, source)
}

// Update handles PUT /sources/{id}.
func (h *SourceHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeDetail(w, http.StatusBadRequest, "Invalid source ID")
		return
	}

	var payload models.DataSourceUpdatePayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeDetail(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	source, err := h.sourceService.Update(r.Context(), id, &payload)
	if err != nil {
		log.Error().Err(err).Str("source_id", id.String()).Msg("Failed to update data source")
		writeError(w, err, "Failed to update data source")
		return
	}

	writeJSON(w, http.StatusOK, source)
}

// Delete handles DELETE /sources/{id}.
func (h *SourceHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeDetail(w, http.StatusBadRequest, "Invalid source ID")
		return
	}

	if err := h.sourceService.Delete(r.Context(), id); err != nil {
		log.Error().Err(err).Str("source_id", id.String()).Msg("Failed to delete data source")
		writeError(w, err, "Failed to delete data source")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// Test handles POST /sources/test, probing an unsaved configuration.
// The response is always 200: a failed probe is a result, not an error.
func (h *SourceHandler) Test(w http.ResponseWriter, r *http.Request) {
	var req models.ConnectionTestRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeDetail(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	status, err := h.sourceService.TestConnection(r.Context(), &req)
	if err != nil {
		log.Warn().Err(err).Str("type", string(req.Type)).Msg("Connection test failed")
		if status == nil {
			status = &models.ConnectionStatus{ErrorMessage: err.Error()}
		}
	}

	writeJSON(w, http.StatusOK, status)
}

// TestSaved handles POST /sources/{id}/test, probing a persisted source and
// recording the outcome on it.
func (h *SourceHandler) TestSaved(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeDetail(w, http.StatusBadRequest, "Invalid source ID")
		return
	}

	status, err := h.sourceService.TestSaved(r.Context(), id)
	if err != nil && status == nil {
		log.Error().Err(err).Str("source_id", id.String()).Msg("Failed to test data source")
		writeError(w, err, "Failed to test data source")
		return
	}

	writeJSON(w, http.StatusOK, status)
}
