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

// RetentionHandler serves the log-retention policy and archival rule
// endpoints.
type RetentionHandler struct {
	retentionService *services.RetentionService
}

func NewRetentionHandler(retentionService *services.RetentionService) *RetentionHandler {
	return &RetentionHandler{retentionService: retentionService}
}

// CreatePolicy handles POST /retention/policies.
func (h *RetentionHandler) CreatePolicy(w http.ResponseWriter, r *http.Request) {
	var payload models.LogRetentionPolicyCreatePayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeDetail(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	policy, err := h.retentionService.CreatePolicy(r.Context(), &payload)
	if err != nil {
		log.Error().Err(err).Msg("Failed to create retention policy")
		writeError(w, err, "Failed to create retention policy")
		return
	}

	writeJSON(w, http.StatusCreated, policy)
}

// ListPolicies handles GET /retention/policies.
func (h *RetentionHandler) ListPolicies(w http.ResponseWriter, r *http.Request) {
	policies, err := h.retentionService.ListPolicies(r.Context())
	if err != nil {
		log.Error().Err(err).Msg("Failed to list retention policies")
		writeError(w, err, "Failed to list retention policies")
		return
	}

	writeJSON(w, http.StatusOK, policies)
}

// GetPolicy handles GET /retention/policies/{id}.
func (h *RetentionHandler) GetPolicy(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeDetail(w, http.StatusBadRequest, "Invalid policy ID")
		return
	}

	policy, err := h.retentionService.GetPolicy(r.Context(), id)
	if err != nil {
		log.Error().Err(err).Str("policy_id", id.String()).Msg("Failed to get retention policy")
		writeError(w, err, "Failed to get retention policy")
		return
	}

	writeJSON(w, http.StatusOK, policy)
}

// UpdatePolicy handles PUT /retention/policies/{id}.
func (h *RetentionHandler) UpdatePolicy(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeDetail(w, http.StatusBadRequest, "Invalid policy ID")
		return
	}

	var payload models.LogRetentionPolicyUpdatePayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeDetail(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	policy, err := h.retentionService.UpdatePolicy(r.Context(), id, &payload)
	if err != nil {
		log.Error().Err(err).Str("policy_id", id.String()).Msg("Failed to update retention policy")
		writeError(w, err, "Failed to update retention policy")
		return
	}

	writeJSON(w, http.StatusOK, policy)
}

// DeletePolicy handles DELETE /retention/policies/{id}.
func (h *RetentionHandler) DeletePolicy(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeDetail(w, http.StatusBadRequest, "Invalid policy ID")
		return
	}

	if err := h.retentionService.DeletePolicy(r.Context(), id); err != nil {
		log.Error().Err(err).Str("policy_id", id.String()).Msg("Failed to delete retention policy")
		writeError(w, err, "Failed to delete retention policy")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// CreateArchivalRule handles POST /retention/archival-rules.
func (h *RetentionHandler) CreateArchivalRule(w http.ResponseWriter, r *http.Request) {
	var payload models.ArchivalRuleCreatePayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeDetail(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	rule, err := h.retentionService.CreateArchivalRule(r.Context(), &payload)
	if err != nil {
		log.Error().Err(err).Msg("Failed to create archival rule")
		writeError(w, err, "Failed to create archival rule")
		return
	}

	writeJSON(w, http.StatusCreated, rule)
}

// ListArchivalRules handles GET /retention/archival-rules.
func (h *RetentionHandler) ListArchivalRules(w http.ResponseWriter, r *http.Request) {
	archival, err := h.retentionService.ListArchivalRules(r.Context())
	if err != nil {
		log.Error().Err(err).Msg("Failed to list archival rules")
		writeError(w, err, "Failed to list archival rules")
		return
	}

	writeJSON(w, http.StatusOK, archival)
}

// GetArchivalRule handles GET /retention/archival-rules/{id}.
func (h *RetentionHandler) GetArchivalRule(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeDetail(w, http.StatusBadRequest, "Invalid archival rule ID")
		return
	}

	rule, err := h.retentionService.GetArchivalRule(r.Context(), id)
	if err != nil {
		log.Error().Err(err).Str("archival_rule_id", id.String()).Msg("Failed to get archival rule")
		writeError(w, err, "Failed to get archival rule")
		return
	}

	writeJSON(w, http.StatusOK, rule)
}

// UpdateArchivalRule handles PUT /retention/archival-rules/{id}.
func (h *RetentionHandler) UpdateArchivalRule(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeDetail(w, http.StatusBadRequest, "Invalid archival rule ID")
		return
	}

	var payload models.ArchivalRuleUpdatePayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeDetail(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	rule, err := h.retentionService.UpdateArchivalRule(r.Context(), id, &payload)
	if err != nil {
		log.Error().Err(err).Str("archival_rule_id", id.String()).Msg("Failed to update archival rule")
		writeError(w, err, "Failed to update archival rule")
		return
	}

	writeJSON(w, http.StatusOK, rule)
}

// DeleteArchivalRule handles DELETE /retention/archival-rules/{id}.
func (h *RetentionHandler) DeleteArchivalRule(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeDetail(w, http.StatusBadRequest, "Invalid archival rule ID")
		return
	}

	if err := h.retentionService.DeleteArchivalRule(r.Context(), id); err != nil {
		log.Error().Err(err).Str("archival_rule_id", id.String()).Msg("Failed to delete archival rule")
		writeError(w, err, "Failed to delete archival rule")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
