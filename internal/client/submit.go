package client

import (
	"context"
	"errors"
	"sync"

	"github.com/google/uuid"

	"github.com/cplatt-iso/axiom-admin/internal/models"
	"github.com/cplatt-iso/axiom-admin/internal/rules"
)

// ErrSubmitInFlight is returned when a submit is attempted while a previous
// one has not finished.
var ErrSubmitInFlight = errors.New("submit already in flight")

// DraftInvalidError is returned when a draft fails local validation. The
// network step never ran.
type DraftInvalidError struct {
	Result rules.Result
}

func (e *DraftInvalidError) Error() string {
	return "draft failed validation"
}

// SubmitGate serializes form submissions: while one submit is running,
// further attempts fail fast instead of double-posting.
type SubmitGate struct {
	mu       sync.Mutex
	inFlight bool
}

// Do runs fn unless a previous call is still running.
func (g *SubmitGate) Do(fn func() error) error {
	g.mu.Lock()
	if g.inFlight {
		g.mu.Unlock()
		return ErrSubmitInFlight
	}
	g.inFlight = true
	g.mu.Unlock()

	defer func() {
		g.mu.Lock()
		g.inFlight = false
		g.mu.Unlock()
	}()

	return fn()
}

// SubmitRuleDraft validates a draft and, only when it is valid, serializes
// and submits it. A draft with an ID updates the existing rule; one without
// creates a new rule under its ruleset.
func (c *Client) SubmitRuleDraft(ctx context.Context, d *rules.RuleDraft) (*models.Rule, error) {
	if res := rules.Validate(d); !res.IsValid() {
		return nil, &DraftInvalidError{Result: res}
	}

	if d.ID == uuid.Nil {
		payload, err := d.WirePayload()
		if err != nil {
			return nil, err
		}
		return c.CreateRule(ctx, d.RulesetID, payload)
	}

	payload, err := d.UpdatePayload()
	if err != nil {
		return nil, err
	}
	return c.UpdateRule(ctx, d.ID, payload)
}

// SubmitRulesetDraft validates and submits a ruleset draft.
func (c *Client) SubmitRulesetDraft(ctx context.Context, d *rules.RulesetDraft) (*models.Ruleset, error) {
	if res := rules.ValidateRuleset(d); !res.IsValid() {
		return nil, &DraftInvalidError{Result: res}
	}

	if d.ID == uuid.Nil {
		return c.CreateRuleset(ctx, d.WirePayload())
	}
	return c.UpdateRuleset(ctx, d.ID, d.UpdatePayload())
}
