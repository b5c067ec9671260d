package rules

import (
	"testing"

	"github.com/google/uuid"

	"github.com/cplatt-iso/axiom-admin/internal/models"
)

func TestValidateEmptyDraft(t *testing.T) {
	d := &RuleDraft{Name: "  "}

	res := Validate(d)
	if res.IsValid() {
		t.Fatal("expected invalid draft")
	}

	errs := res.PathErrors()
	if len(errs) != 1 {
		t.Fatalf("expected exactly one error, got %v", errs)
	}
	if errs["name"] != "Rule name is required." {
		t.Errorf("unexpected name error: %q", errs["name"])
	}
}

func TestValidateNameOnlyIsValid(t *testing.T) {
	d := NewRuleDraft(uuid.New())
	d.Name = "Forward CTs"

	if res := Validate(d); !res.IsValid() {
		t.Fatalf("expected valid draft with empty lists, got %v", res.PathErrors())
	}
}

func TestValidateCriteria(t *testing.T) {
	tests := []struct {
		name      string
		criterion models.MatchCriterion
		wantPath  string
		wantMsg   string
	}{
		{
			name:      "bad tag format",
			criterion: models.MatchCriterion{Tag: "0010,00zz", Op: models.OpEq, Value: "x"},
			wantPath:  "matchCriteria[0].tag",
			wantMsg:   "Tag must be in GGGG,EEEE format.",
		},
		{
			name:      "hex digits rejected",
			criterion: models.MatchCriterion{Tag: "0010,00A0", Op: models.OpEq, Value: "x"},
			wantPath:  "matchCriteria[0].tag",
			wantMsg:   "Tag must be in GGGG,EEEE format.",
		},
		{
			name:      "missing operator",
			criterion: models.MatchCriterion{Tag: "0010,0020", Value: "x"},
			wantPath:  "matchCriteria[0].op",
			wantMsg:   "Operator is required.",
		},
		{
			name:      "unknown operator",
			criterion: models.MatchCriterion{Tag: "0010,0020", Op: "between", Value: "x"},
			wantPath:  "matchCriteria[0].op",
			wantMsg:   `Unknown operator "between".`,
		},
		{
			name:      "value required",
			criterion: models.MatchCriterion{Tag: "0010,0020", Op: models.OpEq},
			wantPath:  "matchCriteria[0].value",
			wantMsg:   "Value is required for this operator.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := NewRuleDraft(uuid.New())
			d.Name = "r"
			d.MatchCriteria = []models.MatchCriterion{tt.criterion}

			errs := Validate(d).PathErrors()
			if len(errs) != 1 {
				t.Fatalf("expected one error, got %v", errs)
			}
			if errs[tt.wantPath] != tt.wantMsg {
				t.Errorf("want %q at %q, got %v", tt.wantMsg, tt.wantPath, errs)
			}
		})
	}
}

func TestValidateExistsNeedsNoValue(t *testing.T) {
	for _, op := range []models.OperatorKind{models.OpExists, models.OpNotExists} {
		d := NewRuleDraft(uuid.New())
		d.Name = "r"
		d.MatchCriteria = []models.MatchCriterion{{Tag: "0010,0020", Op: op}}

		if res := Validate(d); !res.IsValid() {
			t.Errorf("%s without value should be valid, got %v", op, res.PathErrors())
		}
	}
}

func TestValidateErrorsKeyedByIndex(t *testing.T) {
	d := NewRuleDraft(uuid.New())
	d.Name = "r"
	d.MatchCriteria = []models.MatchCriterion{
		{Tag: "0010,0020", Op: models.OpEq, Value: "ok"},
		{Tag: "bogus", Op: models.OpEq, Value: "ok"},
		{Tag: "0008,0060", Op: models.OpEq}, // missing value
	}

	errs := Validate(d).PathErrors()
	if len(errs) != 2 {
		t.Fatalf("expected two errors, got %v", errs)
	}
	if _, ok := errs["matchCriteria[1].tag"]; !ok {
		t.Errorf("missing error for entry 1 tag: %v", errs)
	}
	if _, ok := errs["matchCriteria[2].value"]; !ok {
		t.Errorf("missing error for entry 2 value: %v", errs)
	}
}

func TestValidateModifications(t *testing.T) {
	d := NewRuleDraft(uuid.New())
	d.Name = "r"
	d.TagModifications = []TagModificationDraft{
		{TagModification: models.TagModification{Action: models.ModActionSet, Tag: "0010,0010"}},
		{TagModification: models.TagModification{Action: models.ModActionDelete, Tag: "0010,0010"}},
	}

	errs := Validate(d).PathErrors()
	if len(errs) != 1 {
		t.Fatalf("expected one error, got %v", errs)
	}
	if errs["tagModifications[0].value"] != "Value is required when setting a tag." {
		t.Errorf("unexpected errors: %v", errs)
	}
}

func TestValidateDestinationConfig(t *testing.T) {
	tests := []struct {
		name    string
		text    string
		wantMsg string
	}{
		{"empty", "   ", "Destination config is required."},
		{"not json", "not json", "Destination config is not valid JSON."},
		{"array", `[1,2]`, "Destination config must be a JSON object."},
		{"null", `null`, "Destination config must be a JSON object."},
		{"object", `{"host":"pacs1"}`, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := NewRuleDraft(uuid.New())
			d.Name = "r"
			d.Destinations = []DestinationDraft{{Type: models.DestDICOMCStore, ConfigText: tt.text}}

			errs := Validate(d).PathErrors()
			if tt.wantMsg == "" {
				if len(errs) != 0 {
					t.Fatalf("expected valid, got %v", errs)
				}
				return
			}
			if len(errs) != 1 || errs["destinations[0].config"] != tt.wantMsg {
				t.Errorf("want %q, got %v", tt.wantMsg, errs)
			}
		})
	}
}

func TestValidateAssociationOperatorSubsets(t *testing.T) {
	tests := []struct {
		name      string
		criterion models.AssociationMatchCriterion
		wantPath  string
	}{
		{
			name: "subnet operator on AE title rejected",
			criterion: models.AssociationMatchCriterion{
				Parameter: models.ParamCallingAETitle,
				Op:        models.OpIPInSubnet,
				Value:     "10.0.0.0/8",
			},
			wantPath: "association_criteria[0].op",
		},
		{
			name: "subnet operator on source IP accepted",
			criterion: models.AssociationMatchCriterion{
				Parameter: models.ParamSourceIP,
				Op:        models.OpIPInSubnet,
				Value:     "10.0.0.0/8",
			},
		},
		{
			name: "contains on source IP rejected",
			criterion: models.AssociationMatchCriterion{
				Parameter: models.ParamSourceIP,
				Op:        models.OpContains,
				Value:     "10.",
			},
			wantPath: "association_criteria[0].op",
		},
		{
			name: "exists not allowed at association level",
			criterion: models.AssociationMatchCriterion{
				Parameter: models.ParamCalledAETitle,
				Op:        models.OpExists,
				Value:     "x",
			},
			wantPath: "association_criteria[0].op",
		},
		{
			name: "missing value",
			criterion: models.AssociationMatchCriterion{
				Parameter: models.ParamCallingAETitle,
				Op:        models.OpEq,
			},
			wantPath: "association_criteria[0].value",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := NewRuleDraft(uuid.New())
			d.Name = "r"
			d.AssociationCriteria = []models.AssociationMatchCriterion{tt.criterion}

			errs := Validate(d).PathErrors()
			if tt.wantPath == "" {
				if len(errs) != 0 {
					t.Fatalf("expected valid, got %v", errs)
				}
				return
			}
			if _, ok := errs[tt.wantPath]; !ok {
				t.Errorf("expected error at %q, got %v", tt.wantPath, errs)
			}
		})
	}
}

func TestValidateCriterionListValues(t *testing.T) {
	d := NewRuleDraft(uuid.New())
	d.Name = "r"
	d.MatchCriteria = []models.MatchCriterion{
		{Tag: "0008,0060", Op: models.OpIn, Value: "CT,,MR"},
	}

	errs := Validate(d).PathErrors()
	if errs["matchCriteria[0].value"] != "List values must be comma-separated without empty entries." {
		t.Errorf("unexpected errors: %v", errs)
	}

	d.MatchCriteria[0].Value = "CT, MR"
	if res := Validate(d); !res.IsValid() {
		t.Errorf("spaced list should be valid, got %v", res.PathErrors())
	}
}

func TestValidateAssociationListValues(t *testing.T) {
	d := NewRuleDraft(uuid.New())
	d.Name = "r"
	d.AssociationCriteria = []models.AssociationMatchCriterion{
		{Parameter: models.ParamCallingAETitle, Op: models.OpIn, Value: "AE1,,AE2"},
	}

	errs := Validate(d).PathErrors()
	if errs["association_criteria[0].value"] != "List values must be comma-separated without empty entries." {
		t.Errorf("unexpected errors: %v", errs)
	}

	d.AssociationCriteria[0].Value = "AE1, AE2"
	if res := Validate(d); !res.IsValid() {
		t.Errorf("spaced list should be valid, got %v", res.PathErrors())
	}
}

func TestValidateAccumulatesAcrossSections(t *testing.T) {
	d := &RuleDraft{
		MatchCriteria:    []models.MatchCriterion{{Tag: "bad", Op: models.OpEq}},
		TagModifications: []TagModificationDraft{{TagModification: models.TagModification{Action: models.ModActionSet, Tag: "also bad"}}},
		Destinations:     []DestinationDraft{{ConfigText: "nope"}},
	}

	errs := Validate(d).PathErrors()
	for _, path := range []string{
		"name",
		"matchCriteria[0].tag",
		"matchCriteria[0].value",
		"tagModifications[0].tag",
		"tagModifications[0].value",
		"destinations[0].type",
		"destinations[0].config",
	} {
		if _, ok := errs[path]; !ok {
			t.Errorf("expected error at %q, got %v", path, errs)
		}
	}
}

func TestValidateRulesetDraft(t *testing.T) {
	d := NewRulesetDraft()
	errs := ValidateRuleset(d).PathErrors()
	if errs["name"] != "Ruleset name is required." {
		t.Errorf("unexpected errors: %v", errs)
	}

	d.Name = "Default"
	d.ExecutionMode = "SOMETIMES"
	errs = ValidateRuleset(d).PathErrors()
	if errs["execution_mode"] != "Execution mode must be FIRST_MATCH or ALL_MATCHES." {
		t.Errorf("unexpected errors: %v", errs)
	}

	d.ExecutionMode = models.ExecAllMatches
	if res := ValidateRuleset(d); !res.IsValid() {
		t.Errorf("expected valid ruleset draft, got %v", res.PathErrors())
	}
}
