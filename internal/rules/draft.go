// Package rules implements the rule definition model shared by the admin API
// and the console client: the mutable draft of a rule under edit, the
// validation engine producing field-keyed errors, and the conversion between
// drafts and the wire payloads the backend accepts.
package rules

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/cplatt-iso/axiom-admin/internal/models"
	"github.com/cplatt-iso/axiom-admin/pkg/dicomtag"
)

// RuleDraft is the isolated, mutable form state of one rule. Every open
// editor owns its own draft; edits never touch server-provided objects until
// a validated submit replaces them.
type RuleDraft struct {
	ID        uuid.UUID
	RulesetID uuid.UUID

	Name        string
	Description string
	Priority    int
	IsActive    bool

	MatchCriteria       []models.MatchCriterion
	TagModifications    []TagModificationDraft
	Destinations        []DestinationDraft
	ApplicableSources   []string
	AssociationCriteria []models.AssociationMatchCriterion
}

// TagModificationDraft augments the wire modification with edit-time state.
type TagModificationDraft struct {
	models.TagModification

	// VRTouched marks a deliberate manual VR override. While false, VR is a
	// derived default that tag re-selection may overwrite.
	VRTouched bool
}

// DestinationDraft keeps the destination config in its edited textual form.
// The committed representation is the object parsed from it at submit time;
// no partially-parsed state is held between keystrokes.
type DestinationDraft struct {
	Type       models.DestinationType
	ConfigText string
}

// NewRuleDraft returns a create-mode draft with defaults.
func NewRuleDraft(rulesetID uuid.UUID) *RuleDraft {
	return &RuleDraft{
		RulesetID: rulesetID,
		Priority:  models.DefaultRulePriority,
		IsActive:  true,
	}
}

// DraftFromRule deep-copies a server-provided rule into an edit-mode draft.
// Destination configs are re-serialized to indented JSON text for editing.
func DraftFromRule(r *models.Rule) *RuleDraft {
	d := &RuleDraft{
		ID:        r.ID,
		RulesetID: r.RulesetID,
		Name:      r.Name,
		Priority:  r.Priority,
		IsActive:  r.IsActive,
	}
	if r.Description != nil {
		d.Description = *r.Description
	}

	d.MatchCriteria = append([]models.MatchCriterion(nil), r.MatchCriteria...)
	d.ApplicableSources = append([]string(nil), r.ApplicableSources...)
	d.AssociationCriteria = append([]models.AssociationMatchCriterion(nil), r.AssociationCriteria...)

	for _, m := range r.TagModifications {
		d.TagModifications = append(d.TagModifications, TagModificationDraft{TagModification: m})
	}
	for _, dest := range r.Destinations {
		text, err := json.MarshalIndent(dest.Config, "", "  ")
		if err != nil {
			text = []byte("{}")
		}
		d.Destinations = append(d.Destinations, DestinationDraft{
			Type:       dest.Type,
			ConfigText: string(text),
		})
	}
	return d
}

// --- match criterion editors ---

// AddCriterion appends a default-initialized criterion and returns its index.
func (d *RuleDraft) AddCriterion() int {
	d.MatchCriteria = append(d.MatchCriteria, models.MatchCriterion{Op: models.OpEq})
	return len(d.MatchCriteria) - 1
}

// SetCriterionTag replaces the tag of the criterion at index i.
func (d *RuleDraft) SetCriterionTag(i int, tag string) error {
	if err := d.checkCriterion(i); err != nil {
		return err
	}
	d.MatchCriteria[i].Tag = tag
	return nil
}

// SetCriterionOp replaces the operator at index i. Switching to a no-value
// operator discards the stale value.
func (d *RuleDraft) SetCriterionOp(i int, op models.OperatorKind) error {
	if err := d.checkCriterion(i); err != nil {
		return err
	}
	d.MatchCriteria[i].Op = op
	if op.IsNoValue() {
		d.MatchCriteria[i].Value = ""
	}
	return nil
}

// SetCriterionValue replaces the value at index i.
func (d *RuleDraft) SetCriterionValue(i int, value string) error {
	if err := d.checkCriterion(i); err != nil {
		return err
	}
	d.MatchCriteria[i].Value = value
	return nil
}

// RemoveCriterion deletes the criterion at index i; later entries shift down.
// Callers must re-validate rather than re-key stale errors.
func (d *RuleDraft) RemoveCriterion(i int) error {
	if err := d.checkCriterion(i); err != nil {
		return err
	}
	d.MatchCriteria = append(d.MatchCriteria[:i], d.MatchCriteria[i+1:]...)
	return nil
}

func (d *RuleDraft) checkCriterion(i int) error {
	if i < 0 || i >= len(d.MatchCriteria) {
		return fmt.Errorf("match criterion index %d out of range (%d entries)", i, len(d.MatchCriteria))
	}
	return nil
}

// --- tag modification editors ---

// AddModification appends a default-initialized "set" modification and
// returns its index.
func (d *RuleDraft) AddModification() int {
	d.TagModifications = append(d.TagModifications, TagModificationDraft{
		TagModification: models.TagModification{Action: models.ModActionSet},
	})
	return len(d.TagModifications) - 1
}

// SetModificationTag replaces the tag at index i. While the action is "set"
// and the VR has not been manually overridden, the VR is re-derived from the
// dictionary; clearing the tag clears the derived VR.
func (d *RuleDraft) SetModificationTag(i int, tag string) error {
	if err := d.checkModification(i); err != nil {
		return err
	}
	m := &d.TagModifications[i]
	m.Tag = tag
	if m.Action == models.ModActionSet && !m.VRTouched {
		m.VR = deriveVR(tag)
	}
	return nil
}

// SetModificationAction switches between "set" and "delete". Moving to
// "delete" clears value, VR and any manual VR override in the same call;
// moving away re-derives the VR from the current tag.
func (d *RuleDraft) SetModificationAction(i int, action models.ModificationAction) error {
	if err := d.checkModification(i); err != nil {
		return err
	}
	m := &d.TagModifications[i]
	m.Action = action
	if action == models.ModActionDelete {
		m.Value = ""
		m.VR = ""
		m.VRTouched = false
	} else {
		m.VR = deriveVR(m.Tag)
	}
	return nil
}

// SetModificationValue replaces the value at index i.
func (d *RuleDraft) SetModificationValue(i int, value string) error {
	if err := d.checkModification(i); err != nil {
		return err
	}
	d.TagModifications[i].Value = value
	return nil
}

// SetModificationVR records a manual VR override. An empty VR drops the
// override and falls back to the derived default.
func (d *RuleDraft) SetModificationVR(i int, vr string) error {
	if err := d.checkModification(i); err != nil {
		return err
	}
	m := &d.TagModifications[i]
	if vr == "" {
		m.VRTouched = false
		m.VR = deriveVR(m.Tag)
		return nil
	}
	m.VR = vr
	m.VRTouched = true
	return nil
}

// RemoveModification deletes the modification at index i.
func (d *RuleDraft) RemoveModification(i int) error {
	if err := d.checkModification(i); err != nil {
		return err
	}
	d.TagModifications = append(d.TagModifications[:i], d.TagModifications[i+1:]...)
	return nil
}

func (d *RuleDraft) checkModification(i int) error {
	if i < 0 || i >= len(d.TagModifications) {
		return fmt.Errorf("tag modification index %d out of range (%d entries)", i, len(d.TagModifications))
	}
	return nil
}

func deriveVR(tag string) string {
	if tag == "" {
		return ""
	}
	ref, ok := dicomtag.Lookup(tag)
	if !ok {
		return ""
	}
	return ref.VR
}

// --- destination editors ---

// AddDestination appends a default-initialized destination and returns its
// index.
func (d *RuleDraft) AddDestination() int {
	d.Destinations = append(d.Destinations, DestinationDraft{ConfigText: "{}"})
	return len(d.Destinations) - 1
}

// SetDestinationType replaces the backend type at index i.
func (d *RuleDraft) SetDestinationType(i int, t models.DestinationType) error {
	if err := d.checkDestination(i); err != nil {
		return err
	}
	d.Destinations[i].Type = t
	return nil
}

// SetDestinationConfigText replaces the edited config text at index i.
func (d *RuleDraft) SetDestinationConfigText(i int, text string) error {
	if err := d.checkDestination(i); err != nil {
		return err
	}
	d.Destinations[i].ConfigText = text
	return nil
}

// RemoveDestination deletes the destination at index i.
func (d *RuleDraft) RemoveDestination(i int) error {
	if err := d.checkDestination(i); err != nil {
		return err
	}
	d.Destinations = append(d.Destinations[:i], d.Destinations[i+1:]...)
	return nil
}

func (d *RuleDraft) checkDestination(i int) error {
	if i < 0 || i >= len(d.Destinations) {
		return fmt.Errorf("destination index %d out of range (%d entries)", i, len(d.Destinations))
	}
	return nil
}

// --- association criterion editors ---

// AddAssociationCriterion appends a default-initialized association
// criterion and returns its index.
func (d *RuleDraft) AddAssociationCriterion() int {
	d.AssociationCriteria = append(d.AssociationCriteria, models.AssociationMatchCriterion{
		Parameter: models.ParamCallingAETitle,
		Op:        models.OpEq,
	})
	return len(d.AssociationCriteria) - 1
}

// SetAssociationParameter replaces the parameter at index i. The operator is
// deliberately left alone even when it falls outside the new parameter's
// allowed subset; validation reports that instead of the editor hiding it.
func (d *RuleDraft) SetAssociationParameter(i int, p models.AssociationParameter) error {
	if err := d.checkAssociation(i); err != nil {
		return err
	}
	d.AssociationCriteria[i].Parameter = p
	return nil
}

// SetAssociationOp replaces the operator at index i.
func (d *RuleDraft) SetAssociationOp(i int, op models.OperatorKind) error {
	if err := d.checkAssociation(i); err != nil {
		return err
	}
	d.AssociationCriteria[i].Op = op
	return nil
}

// SetAssociationValue replaces the value at index i.
func (d *RuleDraft) SetAssociationValue(i int, value string) error {
	if err := d.checkAssociation(i); err != nil {
		return err
	}
	d.AssociationCriteria[i].Value = value
	return nil
}

// RemoveAssociationCriterion deletes the association criterion at index i.
func (d *RuleDraft) RemoveAssociationCriterion(i int) error {
	if err := d.checkAssociation(i); err != nil {
		return err
	}
	d.AssociationCriteria = append(d.AssociationCriteria[:i], d.AssociationCriteria[i+1:]...)
	return nil
}

func (d *RuleDraft) checkAssociation(i int) error {
	if i < 0 || i >= len(d.AssociationCriteria) {
		return fmt.Errorf("association criterion index %d out of range (%d entries)", i, len(d.AssociationCriteria))
	}
	return nil
}

// --- serialization adapter ---

// WirePayload converts a validated draft into the create payload. Name and
// description are trimmed and a blank description becomes null, not "".
// Destination config text is parsed here; Validate must have accepted the
// draft first, so a parse failure is reported as an error rather than
// defaulted away.
func (d *RuleDraft) WirePayload() (models.RuleCreatePayload, error) {
	p := models.RuleCreatePayload{
		Name:                strings.TrimSpace(d.Name),
		Description:         trimToNil(d.Description),
		Priority:            d.Priority,
		IsActive:            d.IsActive,
		ApplicableSources:   append([]string(nil), d.ApplicableSources...),
		AssociationCriteria: append([]models.AssociationMatchCriterion(nil), d.AssociationCriteria...),
	}

	p.MatchCriteria = make([]models.MatchCriterion, len(d.MatchCriteria))
	copy(p.MatchCriteria, d.MatchCriteria)

	p.TagModifications = make([]models.TagModification, 0, len(d.TagModifications))
	for _, m := range d.TagModifications {
		p.TagModifications = append(p.TagModifications, m.TagModification)
	}

	p.Destinations = make([]models.Destination, 0, len(d.Destinations))
	for i, dest := range d.Destinations {
		config, err := parseConfigObject(dest.ConfigText)
		if err != nil {
			return models.RuleCreatePayload{}, fmt.Errorf("destination %d config: %w", i, err)
		}
		p.Destinations = append(p.Destinations, models.Destination{
			Type:   dest.Type,
			Config: config,
		})
	}
	return p, nil
}

// UpdatePayload converts a validated draft into the update payload. Every
// field is sent: the form edits the whole rule, not a patch.
func (d *RuleDraft) UpdatePayload() (models.RuleUpdatePayload, error) {
	create, err := d.WirePayload()
	if err != nil {
		return models.RuleUpdatePayload{}, err
	}
	return models.RuleUpdatePayload{
		Name:                &create.Name,
		Description:         create.Description,
		Priority:            &create.Priority,
		IsActive:            &create.IsActive,
		MatchCriteria:       &create.MatchCriteria,
		TagModifications:    &create.TagModifications,
		Destinations:        &create.Destinations,
		ApplicableSources:   &create.ApplicableSources,
		AssociationCriteria: &create.AssociationCriteria,
	}, nil
}

// parseConfigObject parses destination config text and requires the result
// to be a JSON object, not an array, scalar or null.
func parseConfigObject(text string) (models.JSONMap, error) {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return nil, fmt.Errorf("config text is empty")
	}
	var parsed interface{}
	if err := json.Unmarshal([]byte(trimmed), &parsed); err != nil {
		return nil, fmt.Errorf("invalid JSON: %w", err)
	}
	obj, ok := parsed.(map[string]interface{})
	if !ok {
		return nil, fmt.Errorf("config must be a JSON object")
	}
	return models.JSONMap(obj), nil
}

func trimToNil(s string) *string {
	trimmed := strings.TrimSpace(s)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}
