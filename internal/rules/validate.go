package rules

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	"github.com/cplatt-iso/axiom-admin/internal/models"
)

// tagPattern is the wire format for criterion and modification tags. The
// backend contract restricts the hex pairs to decimal digits.
var tagPattern = regexp.MustCompile(`^\d{4},\d{4}$`)

// FieldKind identifies which input of the rule form an error belongs to.
type FieldKind int

const (
	FieldName FieldKind = iota
	FieldExecutionMode
	FieldCriterionTag
	FieldCriterionOp
	FieldCriterionValue
	FieldModificationTag
	FieldModificationValue
	FieldDestinationType
	FieldDestinationConfig
	FieldAssociationParameter
	FieldAssociationOp
	FieldAssociationValue
)

// FieldKey addresses one form input. List fields carry the entry's index at
// the time of validation; after a removal the caller re-validates instead of
// sliding stale keys.
type FieldKey struct {
	Kind  FieldKind
	Index int
}

// Path renders the key in the display scheme the console binds error
// messages by. The format is load-bearing: any change breaks per-field error
// display in every client.
func (k FieldKey) Path() string {
	switch k.Kind {
	case FieldName:
		return "name"
	case FieldExecutionMode:
		return "execution_mode"
	case FieldCriterionTag:
		return fmt.Sprintf("matchCriteria[%d].tag", k.Index)
	case FieldCriterionOp:
		return fmt.Sprintf("matchCriteria[%d].op", k.Index)
	case FieldCriterionValue:
		return fmt.Sprintf("matchCriteria[%d].value", k.Index)
	case FieldModificationTag:
		return fmt.Sprintf("tagModifications[%d].tag", k.Index)
	case FieldModificationValue:
		return fmt.Sprintf("tagModifications[%d].value", k.Index)
	case FieldDestinationType:
		return fmt.Sprintf("destinations[%d].type", k.Index)
	case FieldDestinationConfig:
		return fmt.Sprintf("destinations[%d].config", k.Index)
	case FieldAssociationParameter:
		return fmt.Sprintf("association_criteria[%d].parameter", k.Index)
	case FieldAssociationOp:
		return fmt.Sprintf("association_criteria[%d].op", k.Index)
	case FieldAssociationValue:
		return fmt.Sprintf("association_criteria[%d].value", k.Index)
	default:
		return fmt.Sprintf("field[%d]", k.Index)
	}
}

// Result is the outcome of validating a draft.
type Result struct {
	Errors map[FieldKey]string
}

// IsValid reports whether the draft may be submitted.
func (r Result) IsValid() bool {
	return len(r.Errors) == 0
}

// PathErrors renders the error map keyed by display path, for the render
// boundary and for API error bodies.
func (r Result) PathErrors() map[string]string {
	if len(r.Errors) == 0 {
		return nil
	}
	out := make(map[string]string, len(r.Errors))
	for k, msg := range r.Errors {
		out[k.Path()] = msg
	}
	return out
}

// Add records one field error. Exposed so callers validating shapes outside
// this package can report errors in the same keyed form.
func (r *Result) Add(kind FieldKind, index int, msg string) {
	if r.Errors == nil {
		r.Errors = make(map[FieldKey]string)
	}
	r.Errors[FieldKey{Kind: kind, Index: index}] = msg
}

// Validate walks the whole draft and accumulates every error. It is pure and
// total: no network, no early exit, and a bad destination config is a field
// error rather than a failure of validation itself.
func Validate(d *RuleDraft) Result {
	var res Result

	if strings.TrimSpace(d.Name) == "" {
		res.Add(FieldName, 0, "Rule name is required.")
	}

	for i, c := range d.MatchCriteria {
		if !tagPattern.MatchString(c.Tag) {
			res.Add(FieldCriterionTag, i, "Tag must be in GGGG,EEEE format.")
		}
		switch {
		case c.Op == "":
			res.Add(FieldCriterionOp, i, "Operator is required.")
		case !isMatchOperator(c.Op):
			res.Add(FieldCriterionOp, i, fmt.Sprintf("Unknown operator %q.", c.Op))
		case !c.Op.IsNoValue() && strings.TrimSpace(c.Value) == "":
			res.Add(FieldCriterionValue, i, "Value is required for this operator.")
		case c.Op == models.OpIn || c.Op == models.OpNotIn:
			validateListValue(&res, FieldCriterionValue, i, c.Value)
		}
	}

	for i, m := range d.TagModifications {
		if !tagPattern.MatchString(m.Tag) {
			res.Add(FieldModificationTag, i, "Tag must be in GGGG,EEEE format.")
		}
		if m.Action == models.ModActionSet && strings.TrimSpace(m.Value) == "" {
			res.Add(FieldModificationValue, i, "Value is required when setting a tag.")
		}
	}

	for i, dest := range d.Destinations {
		if dest.Type == "" {
			res.Add(FieldDestinationType, i, "Destination type is required.")
		}
		validateConfigText(&res, i, dest.ConfigText)
	}

	for i, a := range d.AssociationCriteria {
		if a.Parameter == "" {
			res.Add(FieldAssociationParameter, i, "Parameter is required.")
		}
		switch {
		case a.Op == "":
			res.Add(FieldAssociationOp, i, "Operator is required.")
		case a.Parameter != "" && !operatorAllowed(a.Parameter, a.Op):
			res.Add(FieldAssociationOp, i,
				fmt.Sprintf("Operator %q is not allowed for parameter %q.", a.Op, a.Parameter))
		}
		if strings.TrimSpace(a.Value) == "" {
			res.Add(FieldAssociationValue, i, "Value is required.")
		} else if a.Op == models.OpIn || a.Op == models.OpNotIn {
			validateListValue(&res, FieldAssociationValue, i, a.Value)
		}
	}

	return res
}

// validateListValue rejects comma-separated values with empty entries.
func validateListValue(res *Result, kind FieldKind, index int, value string) {
	for _, entry := range strings.Split(value, ",") {
		if strings.TrimSpace(entry) == "" {
			res.Add(kind, index, "List values must be comma-separated without empty entries.")
			return
		}
	}
}

func validateConfigText(res *Result, index int, text string) {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		res.Add(FieldDestinationConfig, index, "Destination config is required.")
		return
	}
	var parsed interface{}
	if err := json.Unmarshal([]byte(trimmed), &parsed); err != nil {
		res.Add(FieldDestinationConfig, index, "Destination config is not valid JSON.")
		return
	}
	if _, ok := parsed.(map[string]interface{}); !ok {
		res.Add(FieldDestinationConfig, index, "Destination config must be a JSON object.")
	}
}

func isMatchOperator(op models.OperatorKind) bool {
	for _, known := range models.MatchOperators {
		if op == known {
			return true
		}
	}
	return false
}

func operatorAllowed(p models.AssociationParameter, op models.OperatorKind) bool {
	for _, allowed := range p.AllowedOperators() {
		if op == allowed {
			return true
		}
	}
	return false
}
