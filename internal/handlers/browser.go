package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/cplatt-iso/axiom-admin/internal/adapters"
	"github.com/cplatt-iso/axiom-admin/internal/models"
	"github.com/cplatt-iso/axiom-admin/internal/services"
)

// BrowserHandler serves the data browser endpoints, proxying queries to the
// selected source.
type BrowserHandler struct {
	browserService *services.BrowserService
}

func NewBrowserHandler(browserService *services.BrowserService) *BrowserHandler {
	return &BrowserHandler{browserService: browserService}
}

// FindStudies handles GET /browser/sources/{sourceID}/studies.
func (h *BrowserHandler) FindStudies(w http.ResponseWriter, r *http.Request) {
	sourceID, err := uuid.Parse(chi.URLParam(r, "sourceID"))
	if err != nil {
		writeDetail(w, http.StatusBadRequest, "Invalid source ID")
		return
	}

	query := browserQueryFromRequest(r)

	studies, err := h.browserService.FindStudies(r.Context(), sourceID, query)
	if err != nil {
		h.writeBrowserError(w, err, sourceID, "Failed to query studies")
		return
	}

	writeJSON(w, http.StatusOK, studies)
}

// FindSeries handles GET /browser/sources/{sourceID}/studies/{studyUID}/series.
func (h *BrowserHandler) FindSeries(w http.ResponseWriter, r *http.Request) {
	sourceID, err := uuid.Parse(chi.URLParam(r, "sourceID"))
	if err != nil {
		writeDetail(w, http.StatusBadRequest, "Invalid source ID")
		return
	}
	studyUID := chi.URLParam(r, "studyUID")

	series, err := h.browserService.FindSeries(r.Context(), sourceID, studyUID)
	if err != nil {
		h.writeBrowserError(w, err, sourceID, "Failed to query series")
		return
	}

	writeJSON(w, http.StatusOK, series)
}

// FindInstances handles
// GET /browser/sources/{sourceID}/studies/{studyUID}/series/{seriesUID}/instances.
func (h *BrowserHandler) FindInstances(w http.ResponseWriter, r *http.Request) {
	sourceID, err := uuid.Parse(chi.URLParam(r, "sourceID"))
	if err != nil {
		writeDetail(w, http.StatusBadRequest, "Invalid source ID")
		return
	}
	studyUID := chi.URLParam(r, "studyUID")
	seriesUID := chi.URLParam(r, "seriesUID")

	instances, err := h.browserService.FindInstances(r.Context(), sourceID, studyUID, seriesUID)
	if err != nil {
		h.writeBrowserError(w, err, sourceID, "Failed to query instances")
		return
	}

	writeJSON(w, http.StatusOK, instances)
}

func (h *BrowserHandler) writeBrowserError(w http.ResponseWriter, err error, sourceID uuid.UUID, fallback string) {
	if errors.Is(err, adapters.ErrQueryUnsupported) {
		writeDetail(w, http.StatusNotImplemented, "Source does not support browsing")
		return
	}

	log.Error().Err(err).Str("source_id", sourceID.String()).Msg(fallback)
	writeError(w, err, fallback)
}

func browserQueryFromRequest(r *http.Request) models.BrowserQuery {
	q := r.URL.Query()
	query := models.BrowserQuery{
		PatientID:        q.Get("patient_id"),
		PatientName:      q.Get("patient_name"),
		StudyDate:        q.Get("study_date"),
		AccessionNumber:  q.Get("accession_number"),
		Modality:         q.Get("modality"),
		StudyDescription: q.Get("study_description"),
	}
	if limit, err := strconv.Atoi(q.Get("limit")); err == nil && limit > 0 {
		query.Limit = limit
	}
	if offset, err := strconv.Atoi(q.Get("offset")); err == nil && offset > 0 {
		query.Offset = offset
	}
	return query
}
