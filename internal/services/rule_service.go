package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/cplatt-iso/axiom-admin/internal/metrics"
	"github.com/cplatt-iso/axiom-admin/internal/models"
	"github.com/cplatt-iso/axiom-admin/internal/repository"
	"github.com/cplatt-iso/axiom-admin/internal/rules"
)

// RuleService handles business logic for rulesets and rules.
type RuleService struct {
	rulesetRepo *repository.RulesetRepository
	ruleRepo    *repository.RuleRepository
	auditRepo   *repository.AuditRepository
}

// NewRuleService creates a new rule service
func NewRuleService(
	rulesetRepo *repository.RulesetRepository,
	ruleRepo *repository.RuleRepository,
	auditRepo *repository.AuditRepository,
) *RuleService {
	return &RuleService{
		rulesetRepo: rulesetRepo,
		ruleRepo:    ruleRepo,
		auditRepo:   auditRepo,
	}
}

// audit records a configuration change. Audit failures are logged, never
// surfaced; the change itself already happened.
func (s *RuleService) audit(ctx context.Context, action, resourceType, resourceID string, opErr error) {
	entry := &models.AuditLog{
		Action:       action,
		ResourceType: resourceType,
		ResourceID:   resourceID,
		Status:       "success",
	}
	if opErr != nil {
		entry.Status = "failure"
		entry.ErrorMessage = opErr.Error()
	}
	if err := s.auditRepo.Create(ctx, entry); err != nil {
		log.Warn().Err(err).Str("action", action).Msg("failed to write audit log")
	}
}

// CreateRuleset validates and persists a new ruleset.
func (s *RuleService) CreateRuleset(ctx context.Context, payload *models.RulesetCreatePayload) (*models.Ruleset, error) {
	draft := rules.NewRulesetDraft()
	draft.Name = payload.Name
	if payload.Description != nil {
		draft.Description = *payload.Description
	}
	draft.Priority = payload.Priority
	draft.ExecutionMode = payload.ExecutionMode
	draft.IsActive = payload.IsActive

	if res := rules.ValidateRuleset(draft); !res.IsValid() {
		metrics.ValidationFailures.WithLabelValues("ruleset").Inc()
		return nil, &ValidationError{Result: res}
	}

	wire := draft.WirePayload()
	rs := &models.Ruleset{
		Name:          wire.Name,
		Description:   wire.Description,
		Priority:      wire.Priority,
		ExecutionMode: wire.ExecutionMode,
		IsActive:      wire.IsActive,
	}

	err := s.rulesetRepo.Create(ctx, rs)
	s.audit(ctx, "ruleset.create", "ruleset", rs.ID.String(), err)
	if err != nil {
		return nil, err
	}
	return rs, nil
}

// GetRuleset retrieves a ruleset with its rules.
func (s *RuleService) GetRuleset(ctx context.Context, id uuid.UUID) (*models.Ruleset, error) {
	return s.rulesetRepo.GetByID(ctx, id)
}

// ListRulesets retrieves all rulesets.
func (s *RuleService) ListRulesets(ctx context.Context) ([]models.Ruleset, error) {
	return s.rulesetRepo.List(ctx)
}

// UpdateRuleset applies a partial update to a ruleset and validates the
// merged result before saving.
func (s *RuleService) UpdateRuleset(ctx context.Context, id uuid.UUID, payload *models.RulesetUpdatePayload) (*models.Ruleset, error) {
	rs, err := s.rulesetRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if payload.Name != nil {
		rs.Name = *payload.Name
	}
	if payload.Description != nil {
		rs.Description = payload.Description
	}
	if payload.Priority != nil {
		rs.Priority = *payload.Priority
	}
	if payload.ExecutionMode != nil {
		rs.ExecutionMode = *payload.ExecutionMode
	}
	if payload.IsActive != nil {
		rs.IsActive = *payload.IsActive
	}

	if res := rules.ValidateRuleset(rules.DraftFromRuleset(rs)); !res.IsValid() {
		metrics.ValidationFailures.WithLabelValues("ruleset").Inc()
		return nil, &ValidationError{Result: res}
	}

	err = s.rulesetRepo.Update(ctx, rs)
	s.audit(ctx, "ruleset.update", "ruleset", rs.ID.String(), err)
	if err != nil {
		return nil, err
	}
	return rs, nil
}

// DeleteRuleset deletes a ruleset and its rules.
func (s *RuleService) DeleteRuleset(ctx context.Context, id uuid.UUID) error {
	err := s.rulesetRepo.Delete(ctx, id)
	s.audit(ctx, "ruleset.delete", "ruleset", id.String(), err)
	return err
}

// CreateRule validates and persists a new rule under a ruleset.
func (s *RuleService) CreateRule(ctx context.Context, rulesetID uuid.UUID, payload *models.RuleCreatePayload) (*models.Rule, error) {
	if _, err := s.rulesetRepo.GetByID(ctx, rulesetID); err != nil {
		return nil, fmt.Errorf("ruleset lookup: %w", err)
	}

	rule := ruleFromCreatePayload(rulesetID, payload)

	if res := rules.Validate(rules.DraftFromRule(rule)); !res.IsValid() {
		metrics.ValidationFailures.WithLabelValues("rule").Inc()
		return nil, &ValidationError{Result: res}
	}

	err := s.ruleRepo.Create(ctx, rule)
	s.audit(ctx, "rule.create", "rule", rule.ID.String(), err)
	if err != nil {
		return nil, err
	}
	return rule, nil
}

// GetRule retrieves a rule by ID.
func (s *RuleService) GetRule(ctx context.Context, id uuid.UUID) (*models.Rule, error) {
	return s.ruleRepo.GetByID(ctx, id)
}

// ListRules retrieves the rules of a ruleset ordered by priority.
func (s *RuleService) ListRules(ctx context.Context, rulesetID uuid.UUID) ([]models.Rule, error) {
	return s.ruleRepo.ListByRuleset(ctx, rulesetID)
}

// UpdateRule applies a partial update to a rule and validates the merged
// result before saving.
func (s *RuleService) UpdateRule(ctx context.Context, id uuid.UUID, payload *models.RuleUpdatePayload) (*models.Rule, error) {
	rule, err := s.ruleRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	applyRuleUpdate(rule, payload)

	if res := rules.Validate(rules.DraftFromRule(rule)); !res.IsValid() {
		metrics.ValidationFailures.WithLabelValues("rule").Inc()
		return nil, &ValidationError{Result: res}
	}

	err = s.ruleRepo.Update(ctx, rule)
	s.audit(ctx, "rule.update", "rule", rule.ID.String(), err)
	if err != nil {
		return nil, err
	}
	return rule, nil
}

// DeleteRule deletes a rule.
func (s *RuleService) DeleteRule(ctx context.Context, id uuid.UUID) error {
	err := s.ruleRepo.Delete(ctx, id)
	s.audit(ctx, "rule.delete", "rule", id.String(), err)
	return err
}

func ruleFromCreatePayload(rulesetID uuid.UUID, p *models.RuleCreatePayload) *models.Rule {
	priority := p.Priority
	if priority == 0 {
		priority = models.DefaultRulePriority
	}
	return &models.Rule{
		RulesetID:           rulesetID,
		Name:                p.Name,
		Description:         p.Description,
		Priority:            priority,
		IsActive:            p.IsActive,
		MatchCriteria:       models.MatchCriteriaList(p.MatchCriteria),
		TagModifications:    models.TagModificationList(p.TagModifications),
		Destinations:        models.DestinationList(p.Destinations),
		ApplicableSources:   models.StringList(p.ApplicableSources),
		AssociationCriteria: models.AssociationCriteriaList(p.AssociationCriteria),
	}
}

func applyRuleUpdate(rule *models.Rule, p *models.RuleUpdatePayload) {
	if p.Name != nil {
		rule.Name = *p.Name
	}
	if p.Description != nil {
		rule.Description = p.Description
	}
	if p.Priority != nil {
		rule.Priority = *p.Priority
	}
	if p.IsActive != nil {
		rule.IsActive = *p.IsActive
	}
	if p.MatchCriteria != nil {
		rule.MatchCriteria = models.MatchCriteriaList(*p.MatchCriteria)
	}
	if p.TagModifications != nil {
		rule.TagModifications = models.TagModificationList(*p.TagModifications)
	}
	if p.Destinations != nil {
		rule.Destinations = models.DestinationList(*p.Destinations)
	}
	if p.ApplicableSources != nil {
		rule.ApplicableSources = models.StringList(*p.ApplicableSources)
	}
	if p.AssociationCriteria != nil {
		rule.AssociationCriteria = models.AssociationCriteriaList(*p.AssociationCriteria)
	}
}
