package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/cplatt-iso/axiom-admin/internal/models"
	"github.com/cplatt-iso/axiom-admin/internal/repository"
)

// RetentionService handles business logic for log-retention policies and
// archival rules.
type RetentionService struct {
	retentionRepo *repository.RetentionRepository
	destRepo      *repository.DestinationRepository
	auditRepo     *repository.AuditRepository
}

// NewRetentionService creates a new retention service
func NewRetentionService(
	retentionRepo *repository.RetentionRepository,
	destRepo *repository.DestinationRepository,
	auditRepo *repository.AuditRepository,
) *RetentionService {
	return &RetentionService{
		retentionRepo: retentionRepo,
		destRepo:      destRepo,
		auditRepo:     auditRepo,
	}
}

func (s *RetentionService) audit(ctx context.Context, action, resourceType, resourceID string, opErr error) {
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

// CreatePolicy persists a new log-retention policy.
func (s *RetentionService) CreatePolicy(ctx context.Context, payload *models.LogRetentionPolicyCreatePayload) (*models.LogRetentionPolicy, error) {
	if payload.Name == "" {
		return nil, fmt.Errorf("policy name is required")
	}
	if payload.RetentionDays <= 0 {
		return nil, fmt.Errorf("retention days must be positive")
	}

	policy := &models.LogRetentionPolicy{
		Name:          payload.Name,
		LogLevel:      payload.LogLevel,
		RetentionDays: payload.RetentionDays,
		IsActive:      true,
	}

	err := s.retentionRepo.CreatePolicy(ctx, policy)
	s.audit(ctx, "retention_policy.create", "retention_policy", policy.ID.String(), err)
	if err != nil {
		return nil, err
	}
	return policy, nil
}

// GetPolicy retrieves a log-retention policy by ID.
func (s *RetentionService) GetPolicy(ctx context.Context, id uuid.UUID) (*models.LogRetentionPolicy, error) {
	return s.retentionRepo.GetPolicy(ctx, id)
}

// ListPolicies retrieves all log-retention policies.
func (s *RetentionService) ListPolicies(ctx context.Context) ([]models.LogRetentionPolicy, error) {
	return s.retentionRepo.ListPolicies(ctx)
}

// UpdatePolicy applies a partial update to a log-retention policy.
func (s *RetentionService) UpdatePolicy(ctx context.Context, id uuid.UUID, payload *models.LogRetentionPolicyUpdatePayload) (*models.LogRetentionPolicy, error) {
	policy, err := s.retentionRepo.GetPolicy(ctx, id)
	if err != nil {
		return nil, err
	}

	if payload.Name != nil {
		policy.Name = *payload.Name
	}
	if payload.LogLevel != nil {
		policy.LogLevel = *payload.LogLevel
	}
	if payload.RetentionDays != nil {
		if *payload.RetentionDays <= 0 {
			return nil, fmt.Errorf("retention days must be positive")
		}
		policy.RetentionDays = *payload.RetentionDays
	}
	if payload.IsActive != nil {
		policy.IsActive = *payload.IsActive
	}

	err = s.retentionRepo.UpdatePolicy(ctx, policy)
	s.audit(ctx, "retention_policy.update", "retention_policy", policy.ID.String(), err)
	if err != nil {
		return nil, err
	}
	return policy, nil
}

// DeletePolicy removes a log-retention policy.
func (s *RetentionService) DeletePolicy(ctx context.Context, id uuid.UUID) error {
	err := s.retentionRepo.DeletePolicy(ctx, id)
	s.audit(ctx, "retention_policy.delete", "retention_policy", id.String(), err)
	return err
}

// CreateArchivalRule persists a new archival rule. The referenced storage
// destination must exist.
func (s *RetentionService) CreateArchivalRule(ctx context.Context, payload *models.ArchivalRuleCreatePayload) (*models.ArchivalRule, error) {
	if payload.Name == "" {
		return nil, fmt.Errorf("archival rule name is required")
	}
	if payload.DelayDays < 0 {
		return nil, fmt.Errorf("delay days must not be negative")
	}
	if _, err := s.destRepo.GetByID(ctx, payload.DestinationID); err != nil {
		return nil, fmt.Errorf("destination lookup: %w", err)
	}

	rule := &models.ArchivalRule{
		Name:          payload.Name,
		MatchCriteria: models.MatchCriteriaList(payload.MatchCriteria),
		DestinationID: payload.DestinationID,
		DelayDays:     payload.DelayDays,
		IsActive:      true,
	}

	err := s.retentionRepo.CreateArchivalRule(ctx, rule)
	s.audit(ctx, "archival_rule.create", "archival_rule", rule.ID.String(), err)
	if err != nil {
		return nil, err
	}
	return rule, nil
}

// GetArchivalRule retrieves an archival rule by ID.
func (s *RetentionService) GetArchivalRule(ctx context.Context, id uuid.UUID) (*models.ArchivalRule, error) {
	return s.retentionRepo.GetArchivalRule(ctx, id)
}

// ListArchivalRules retrieves all archival rules.
func (s *RetentionService) ListArchivalRules(ctx context.Context) ([]models.ArchivalRule, error) {
	return s.retentionRepo.ListArchivalRules(ctx)
}

// UpdateArchivalRule applies a partial update to an archival rule.
func (s *RetentionService) UpdateArchivalRule(ctx context.Context, id uuid.UUID, payload *models.ArchivalRuleUpdatePayload) (*models.ArchivalRule, error) {
	rule, err := s.retentionRepo.GetArchivalRule(ctx, id)
	if err != nil {
		return nil, err
	}

	if payload.Name != nil {
		rule.Name = *payload.Name
	}
	if payload.MatchCriteria != nil {
		rule.MatchCriteria = models.MatchCriteriaList(*payload.MatchCriteria)
	}
	if payload.DestinationID != nil {
		if _, err := s.destRepo.GetByID(ctx, *payload.DestinationID); err != nil {
			return nil, fmt.Errorf("destination lookup: %w", err)
		}
		rule.DestinationID = *payload.DestinationID
	}
	if payload.DelayDays != nil {
		if *payload.DelayDays < 0 {
			return nil, fmt.Errorf("delay days must not be negative")
		}
		rule.DelayDays = *payload.DelayDays
	}
	if payload.IsActive != nil {
		rule.IsActive = *payload.IsActive
	}

	err = s.retentionRepo.UpdateArchivalRule(ctx, rule)
	s.audit(ctx, "archival_rule.update", "archival_rule", rule.ID.String(), err)
	if err != nil {
		return nil, err
	}
	return rule, nil
}

// DeleteArchivalRule removes an archival rule.
func (s *RetentionService) DeleteArchivalRule(ctx context.Context, id uuid.UUID) error {
	err := s.retentionRepo.DeleteArchivalRule(ctx, id)
	s.audit(ctx, "archival_rule.delete", "archival_rule", id.String(), err)
	return err
}
