package client

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/cplatt-iso/axiom-admin/internal/models"
)

// RuleList owns the rule rows one console screen displays. Deletes are
// optimistic: the row disappears immediately and comes back only if the
// server rejects the delete.
type RuleList struct {
	client    *Client
	rulesetID uuid.UUID

	mu    sync.Mutex
	rules []models.Rule
}

// NewRuleList creates a list bound to one ruleset.
func NewRuleList(c *Client, rulesetID uuid.UUID) *RuleList {
	return &RuleList{client: c, rulesetID: rulesetID}
}

// Load fetches the current rules from the server.
func (l *RuleList) Load(ctx context.Context) error {
	rules, err := l.client.ListRules(ctx, l.rulesetID)
	if err != nil {
		return err
	}

	l.mu.Lock()
	l.rules = rules
	l.mu.Unlock()
	return nil
}

// Rules returns a snapshot of the current rows.
func (l *RuleList) Rules() []models.Rule {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]models.Rule, len(l.rules))
	copy(out, l.rules)
	return out
}

// Delete removes a rule optimistically. The row is taken out of the list
// before the request; if the server rejects the delete, the prior list is
// restored and the error returned.
func (l *RuleList) Delete(ctx context.Context, id uuid.UUID) error {
	l.mu.Lock()
	snapshot := make([]models.Rule, len(l.rules))
	copy(snapshot, l.rules)

	kept := l.rules[:0:len(l.rules)]
	for _, rule := range l.rules {
		if rule.ID != id {
			kept = append(kept, rule)
		}
	}
	l.rules = kept
	l.mu.Unlock()

	if err := l.client.DeleteRule(ctx, id); err != nil {
		l.mu.Lock()
		l.rules = snapshot
		l.mu.Unlock()
		return err
	}
	return nil
}
