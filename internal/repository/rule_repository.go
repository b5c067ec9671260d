package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/cplatt-iso/axiom-admin/internal/database"
	"github.com/cplatt-iso/axiom-admin/internal/models"
)

// RuleRepository handles rule database operations
type RuleRepository struct{}

// NewRuleRepository creates a new rule repository
func NewRuleRepository() *RuleRepository {
	return &RuleRepository{}
}

// Create creates a new rule
func (r *RuleRepository) Create(ctx context.Context, rule *models.Rule) error {
	if err := database.DB.WithContext(ctx).Create(rule).Error; err != nil {
		return fmt.Errorf("failed to create rule: %w", err)
	}
	return nil
}

// GetByID retrieves a rule by ID
func (r *RuleRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Rule, error) {
	var rule models.Rule
	if err := database.DB.WithContext(ctx).Where("id = ?", id).First(&rule).Error; err != nil {
		return nil, fmt.Errorf("failed to get rule: %w", err)
	}
	return &rule, nil
}

// ListByRuleset retrieves all rules of a ruleset ordered by priority.
func (r *RuleRepository) ListByRuleset(ctx context.Context, rulesetID uuid.UUID) ([]models.Rule, error) {
	var rls []models.Rule
	if err := database.DB.WithContext(ctx).
		Where("ruleset_id = ?", rulesetID).
		Order("priority ASC, created_at ASC").
		Find(&rls).Error; err != nil {
		return nil, fmt.Errorf("failed to list rules: %w", err)
	}
	return rls, nil
}

// Update updates a rule
func (r *RuleRepository) Update(ctx context.Context, rule *models.Rule) error {
	if err := database.DB.WithContext(ctx).Save(rule).Error; err != nil {
		return fmt.Errorf("failed to update rule: %w", err)
	}
	return nil
}

// Delete soft deletes a rule
func (r *RuleRepository) Delete(ctx context.Context, id uuid.UUID) error {
	if err := database.DB.WithContext(ctx).Delete(&models.Rule{}, id).Error; err != nil {
		return fmt.Errorf("failed to delete rule: %w", err)
	}
	return nil
}
