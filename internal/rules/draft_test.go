package rules

import (
	"testing"

	"github.com/google/uuid"

	"github.com/cplatt-iso/axiom-admin/internal/models"
)

func TestDraftVRDerivedFromTag(t *testing.T) {
	d := NewRuleDraft(uuid.New())
	i := d.AddModification()

	if err := d.SetModificationTag(i, "0010,0010"); err != nil {
		t.Fatal(err)
	}
	if got := d.TagModifications[i].VR; got != "PN" {
		t.Errorf("expected derived VR PN, got %q", got)
	}

	// Re-selecting the tag overwrites the derived default.
	if err := d.SetModificationTag(i, "0008,0060"); err != nil {
		t.Fatal(err)
	}
	if got := d.TagModifications[i].VR; got != "CS" {
		t.Errorf("expected derived VR CS, got %q", got)
	}
}

func TestDraftManualVROverrideWins(t *testing.T) {
	d := NewRuleDraft(uuid.New())
	i := d.AddModification()
	d.SetModificationTag(i, "0010,0010")

	if err := d.SetModificationVR(i, "LT"); err != nil {
		t.Fatal(err)
	}
	if !d.TagModifications[i].VRTouched {
		t.Fatal("expected VRTouched after manual override")
	}

	// Tag changes must not clobber a manual override.
	d.SetModificationTag(i, "0008,0060")
	if got := d.TagModifications[i].VR; got != "LT" {
		t.Errorf("override lost on tag change: got %q", got)
	}

	// Clearing the VR drops the override and re-derives.
	if err := d.SetModificationVR(i, ""); err != nil {
		t.Fatal(err)
	}
	if d.TagModifications[i].VRTouched {
		t.Error("expected override cleared")
	}
	if got := d.TagModifications[i].VR; got != "CS" {
		t.Errorf("expected re-derived VR CS, got %q", got)
	}
}

func TestDraftActionTransitionClearsInSameCall(t *testing.T) {
	d := NewRuleDraft(uuid.New())
	i := d.AddModification()
	d.SetModificationTag(i, "0010,0010")
	d.SetModificationValue(i, "ANON")
	d.SetModificationVR(i, "LT")

	if err := d.SetModificationAction(i, models.ModActionDelete); err != nil {
		t.Fatal(err)
	}

	m := d.TagModifications[i]
	if m.Value != "" || m.VR != "" || m.VRTouched {
		t.Errorf("delete transition left stale state: %+v", m)
	}

	// Switching back re-derives the VR from the current tag.
	if err := d.SetModificationAction(i, models.ModActionSet); err != nil {
		t.Fatal(err)
	}
	if got := d.TagModifications[i].VR; got != "PN" {
		t.Errorf("expected re-derived VR PN, got %q", got)
	}
}

func TestDraftCriterionOpSwitchDiscardsValue(t *testing.T) {
	d := NewRuleDraft(uuid.New())
	i := d.AddCriterion()
	d.SetCriterionTag(i, "0010,0020")
	d.SetCriterionValue(i, "PAT001")

	if err := d.SetCriterionOp(i, models.OpExists); err != nil {
		t.Fatal(err)
	}
	if d.MatchCriteria[i].Value != "" {
		t.Error("expected value cleared on switch to exists")
	}
}

func TestDraftRemoveShiftsEntries(t *testing.T) {
	d := NewRuleDraft(uuid.New())
	d.AddCriterion()
	d.AddCriterion()
	d.AddCriterion()
	d.SetCriterionTag(0, "0010,0010")
	d.SetCriterionTag(1, "0010,0020")
	d.SetCriterionTag(2, "0008,0060")

	if err := d.RemoveCriterion(1); err != nil {
		t.Fatal(err)
	}
	if len(d.MatchCriteria) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(d.MatchCriteria))
	}
	if d.MatchCriteria[1].Tag != "0008,0060" {
		t.Errorf("later entry did not shift down: %+v", d.MatchCriteria)
	}

	if err := d.RemoveCriterion(5); err == nil {
		t.Error("expected out-of-range error")
	}
}

func TestDraftEditorsRejectBadIndex(t *testing.T) {
	d := NewRuleDraft(uuid.New())

	if err := d.SetCriterionTag(0, "0010,0010"); err == nil {
		t.Error("expected error for empty criteria list")
	}
	if err := d.SetModificationValue(-1, "x"); err == nil {
		t.Error("expected error for negative index")
	}
	if err := d.SetDestinationType(0, models.DestGCS); err == nil {
		t.Error("expected error for empty destination list")
	}
	if err := d.SetAssociationValue(2, "x"); err == nil {
		t.Error("expected error for empty association list")
	}
}

func TestWirePayloadTrimsAndParses(t *testing.T) {
	d := NewRuleDraft(uuid.New())
	d.Name = "  Route CT  "
	d.Description = "   "
	i := d.AddDestination()
	d.SetDestinationType(i, models.DestGCS)
	d.SetDestinationConfigText(i, `{"bucket": "axiom-archive"}`)

	p, err := d.WirePayload()
	if err != nil {
		t.Fatal(err)
	}
	if p.Name != "Route CT" {
		t.Errorf("name not trimmed: %q", p.Name)
	}
	if p.Description != nil {
		t.Errorf("blank description should be nil, got %q", *p.Description)
	}
	if p.Destinations[0].Config["bucket"] != "axiom-archive" {
		t.Errorf("config not parsed: %+v", p.Destinations[0].Config)
	}
}

func TestWirePayloadRejectsBadConfig(t *testing.T) {
	d := NewRuleDraft(uuid.New())
	d.Name = "r"
	i := d.AddDestination()
	d.SetDestinationConfigText(i, "[]")

	if _, err := d.WirePayload(); err == nil {
		t.Fatal("expected config parse error")
	}
}

func TestDraftRoundTrip(t *testing.T) {
	desc := "route neuro studies"
	rule := &models.Rule{
		ID:          uuid.New(),
		RulesetID:   uuid.New(),
		Name:        "Neuro CT",
		Description: &desc,
		Priority:    10,
		IsActive:    true,
		MatchCriteria: models.MatchCriteriaList{
			{Tag: "0008,0060", Op: models.OpEq, Value: "CT"},
			{Tag: "0008,1030", Op: models.OpContains, Value: "HEAD"},
		},
		TagModifications: models.TagModificationList{
			{Action: models.ModActionSet, Tag: "0010,0010", Value: "ANON", VR: "PN"},
			{Action: models.ModActionDelete, Tag: "0010,0030"},
		},
		Destinations: models.DestinationList{
			{Type: models.DestGCS, Config: models.JSONMap{"bucket": "neuro"}},
		},
		ApplicableSources: models.StringList{"main_pacs"},
		AssociationCriteria: models.AssociationCriteriaList{
			{Parameter: models.ParamSourceIP, Op: models.OpIPInSubnet, Value: "10.1.0.0/16"},
		},
	}

	d := DraftFromRule(rule)
	if res := Validate(d); !res.IsValid() {
		t.Fatalf("round-trip draft invalid: %v", res.PathErrors())
	}

	p, err := d.WirePayload()
	if err != nil {
		t.Fatal(err)
	}

	if p.Name != rule.Name || *p.Description != desc || p.Priority != 10 {
		t.Errorf("scalars diverged: %+v", p)
	}
	if len(p.MatchCriteria) != 2 || p.MatchCriteria[1].Value != "HEAD" {
		t.Errorf("criteria diverged: %+v", p.MatchCriteria)
	}
	if len(p.TagModifications) != 2 || p.TagModifications[0].VR != "PN" {
		t.Errorf("modifications diverged: %+v", p.TagModifications)
	}
	if p.Destinations[0].Config["bucket"] != "neuro" {
		t.Errorf("destination config diverged: %+v", p.Destinations[0].Config)
	}
	if len(p.AssociationCriteria) != 1 || p.AssociationCriteria[0].Op != models.OpIPInSubnet {
		t.Errorf("association criteria diverged: %+v", p.AssociationCriteria)
	}
}

func TestDraftIsIsolatedFromSource(t *testing.T) {
	rule := &models.Rule{
		ID:        uuid.New(),
		RulesetID: uuid.New(),
		Name:      "orig",
		MatchCriteria: models.MatchCriteriaList{
			{Tag: "0008,0060", Op: models.OpEq, Value: "CT"},
		},
	}

	d := DraftFromRule(rule)
	d.SetCriterionValue(0, "MR")
	d.Name = "edited"

	if rule.MatchCriteria[0].Value != "CT" || rule.Name != "orig" {
		t.Errorf("edit leaked into source rule: %+v", rule)
	}
}
