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

// RuleHandler serves the ruleset and rule endpoints.
type RuleHandler struct {
	ruleService *services.RuleService
}

func NewRuleHandler(ruleService *services.RuleService) *RuleHandler {
	return &RuleHandler{ruleService: ruleService}
}

// CreateRuleset handles POST /rulesets.
func (h *RuleHandler) CreateRuleset(w http.ResponseWriter, r *http.Request) {
	var payload models.RulesetCreatePayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeDetail(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	rs, err := h.ruleService.CreateRuleset(r.Context(), &payload)
	if err != nil {
		log.Error().Err(err).Msg("Failed to create ruleset")
		writeError(w, err, "Failed to create ruleset")
		return
	}

	writeJSON(w, http.StatusCreated, rs)
}

// ListRulesets handles GET /rulesets.
func (h *RuleHandler) ListRulesets(w http.ResponseWriter, r *http.Request) {
	rulesets, err := h.ruleService.ListRulesets(r.Context())
	if err != nil {
		log.Error().Err(err).Msg("Failed to list rulesets")
		writeError(w, err, "Failed to list rulesets")
		return
	}

	writeJSON(w, http.StatusOK, rulesets)
}

// GetRuleset handles GET /rulesets/{id}.
func (h *RuleHandler) GetRuleset(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeDetail(w, http.StatusBadRequest, "Invalid ruleset ID")
		return
	}

	rs, err := h.ruleService.GetRuleset(r.Context(), id)
	if err != nil {
		log.Error().Err(err).Str("ruleset_id", id.String()).Msg("Failed to get ruleset")
		writeError(w, err, "Failed to get ruleset")
		return
	}

	writeJSON(w, http.StatusOK, rs)
}

// UpdateRuleset handles PUT /rulesets/{id}.
func (h *RuleHandler) UpdateRuleset(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeDetail(w, http.StatusBadRequest, "Invalid ruleset ID")
		return
	}

	var payload models.RulesetUpdatePayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeDetail(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	rs, err := h.ruleService.UpdateRuleset(r.Context(), id, &payload)
	if err != nil {
		log.Error().Err(err).Str("ruleset_id", id.String()).Msg("Failed to update ruleset")
		writeError(w, err, "Failed to update ruleset")
		return
	}

	writeJSON(w, http.StatusOK, rs)
}

// DeleteRuleset handles DELETE /rulesets/{id}.
func (h *RuleHandler) DeleteRuleset(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeDetail(w, http.StatusBadRequest, "Invalid ruleset ID")
		return
	}

	if err := h.ruleService.DeleteRuleset(r.Context(), id); err != nil {
		log.Error().Err(err).Str("ruleset_id", id.String()).Msg("Failed to delete ruleset")
		writeError(w, err, "Failed to delete ruleset")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// CreateRule handles POST /rulesets/{rulesetID}/rules.
func (h *RuleHandler) CreateRule(w http.ResponseWriter, r *http.Request) {
	rulesetID, err := uuid.Parse(chi.URLParam(r, "rulesetID"))
	if err != nil {
		writeDetail(w, http.StatusBadRequest, "Invalid ruleset ID")
		return
	}

	var payload models.RuleCreatePayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeDetail(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	rule, err := h.ruleService.CreateRule(r.Context(), rulesetID, &payload)
	if err != nil {
		log.Error().Err(err).Str("ruleset_id", rulesetID.String()).Msg("Failed to create rule")
		writeError(w, err, "Failed to create rule")
		return
	}

	writeJSON(w, http.StatusCreated, rule)
}

// ListRules handles GET /rulesets/{rulesetID}/rules.
func (h *RuleHandler) ListRules(w http.ResponseWriter, r *http.Request) {
	rulesetID, err := uuid.Parse(chi.URLParam(r, "rulesetID"))
	if err != nil {
		writeDetail(w, http.StatusBadRequest, "Invalid ruleset ID")
		return
	}

	rules, err := h.ruleService.ListRules(r.Context(), rulesetID)
	if err != nil {
		log.Error().Err(err).Str("ruleset_id", rulesetID.String()).Msg("Failed to list rules")
		writeError(w, err, "Failed to list rules")
		return
	}

	writeJSON(w, http.StatusOK, rules)
}

// GetRule handles GET /rules/{id}.
func (h *RuleHandler) GetRule(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeDetail(w, http.StatusBadRequest, "Invalid rule ID")
		return
	}

	rule, err := h.ruleService.GetRule(r.Context(), id)
	if err != nil {
		log.Error().Err(err).Str("rule_id", id.String()).Msg("Failed to get rule")
		writeError(w, err, "Failed to get rule")
		return
	}

	writeJSON(w, http.StatusOK, rule)
}

// UpdateRule handles PUT /rules/{id}.
func (h *RuleHandler) UpdateRule(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeDetail(w, http.StatusBadRequest, "Invalid rule ID")
		return
	}

	var payload models.RuleUpdatePayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeDetail(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	rule, err := h.ruleService.UpdateRule(r.Context(), id, &payload)
	if err != nil {
		log.Error().Err(err).Str("rule_id", id.String()).Msg("Failed to update rule")
		writeError(w, err, "Failed to update rule")
		return
	}

	writeJSON(w, http.StatusOK, rule)
}

// DeleteRule handles DELETE /rules/{id}.
func (h *RuleHandler) DeleteRule(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeDetail(w, http.StatusBadRequest, "Invalid rule ID")
		return
	}

	if err := h.ruleService.DeleteRule(r.Context(), id); err != nil {
		log.Error().Err(err).Str("rule_id", id.String()).Msg("Failed to delete rule")
		writeError(w, err, "Failed to delete rule")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
