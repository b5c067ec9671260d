package rules

import (
	"strings"

	"github.com/google/uuid"

	"github.com/cplatt-iso/axiom-admin/internal/models"
)

// RulesetDraft is the form state of a ruleset under edit.
type RulesetDraft struct {
	ID            uuid.UUID
	Name          string
	Description   string
	Priority      int
	ExecutionMode models.ExecutionMode
	IsActive      bool
}

// NewRulesetDraft returns a create-mode draft with defaults.
func NewRulesetDraft() *RulesetDraft {
	return &RulesetDraft{
		ExecutionMode: models.ExecFirstMatch,
		IsActive:      true,
	}
}

// DraftFromRuleset copies a server-provided ruleset into an edit-mode draft.
func DraftFromRuleset(rs *models.Ruleset) *RulesetDraft {
	d := &RulesetDraft{
		ID:            rs.ID,
		Name:          rs.Name,
		Priority:      rs.Priority,
		ExecutionMode: rs.ExecutionMode,
		IsActive:      rs.IsActive,
	}
	if rs.Description != nil {
		d.Description = *rs.Description
	}
	return d
}

// ValidateRuleset checks the draft's scalar fields.
func ValidateRuleset(d *RulesetDraft) Result {
	var res Result
	if strings.TrimSpace(d.Name) == "" {
		res.Add(FieldName, 0, "Ruleset name is required.")
	}
	switch d.ExecutionMode {
	case models.ExecFirstMatch, models.ExecAllMatches:
	default:
		res.Add(FieldExecutionMode, 0, "Execution mode must be FIRST_MATCH or ALL_MATCHES.")
	}
	return res
}

// WirePayload converts the draft into the create payload.
func (d *RulesetDraft) WirePayload() models.RulesetCreatePayload {
	return models.RulesetCreatePayload{
		Name:          strings.TrimSpace(d.Name),
		Description:   trimToNil(d.Description),
		Priority:      d.Priority,
		ExecutionMode: d.ExecutionMode,
		IsActive:      d.IsActive,
	}
}

// UpdatePayload converts the draft into the update payload with every field
// set.
func (d *RulesetDraft) UpdatePayload() models.RulesetUpdatePayload {
	create := d.WirePayload()
	return models.RulesetUpdatePayload{
		Name:          &create.Name,
		Description:   create.Description,
		Priority:      &create.Priority,
		ExecutionMode: &create.ExecutionMode,
		IsActive:      &create.IsActive,
	}
}
