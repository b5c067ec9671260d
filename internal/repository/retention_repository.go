package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/cplatt-iso/axiom-admin/internal/database"
	"github.com/cplatt-iso/axiom-admin/internal/models"
)

// RetentionRepository handles log-retention policy and archival rule
// database operations.
type RetentionRepository struct{}

// NewRetentionRepository creates a new retention repository
func NewRetentionRepository() *RetentionRepository {
	return &RetentionRepository{}
}

// CreatePolicy creates a new log-retention policy
func (r *RetentionRepository) CreatePolicy(ctx context.Context, p *models.LogRetentionPolicy) error {
	if err := database.DB.WithContext(ctx).Create(p).Error; err != nil {
		return fmt.Errorf("failed to create retention policy: %w", err)
	}
	return nil
}

// GetPolicy retrieves a log-retention policy by ID
func (r *RetentionRepository) GetPolicy(ctx context.Context, id uuid.UUID) (*models.LogRetentionPolicy, error) {
	var p models.LogRetentionPolicy
	if err := database.DB.WithContext(ctx).Where("id = ?", id).First(&p).Error; err != nil {
		return nil, fmt.Errorf("failed to get retention policy: %w", err)
	}
	return &p, nil
}

// ListPolicies retrieves all log-retention policies
func (r *RetentionRepository) ListPolicies(ctx context.Context) ([]models.LogRetentionPolicy, error) {
	var policies []models.LogRetentionPolicy
	if err := database.DB.WithContext(ctx).
		Order("created_at ASC").
		Find(&policies).Error; err != nil {
		return nil, fmt.Errorf("failed to list retention policies: %w", err)
	}
	return policies, nil
}

// UpdatePolicy updates a log-retention policy
func (r *RetentionRepository) UpdatePolicy(ctx context.Context, p *models.LogRetentionPolicy) error {
	if err := database.DB.WithContext(ctx).Save(p).Error; err != nil {
		return fmt.Errorf("failed to update retention policy: %w", err)
	}
	return nil
}

// DeletePolicy soft deletes a log-retention policy
func (r *RetentionRepository) DeletePolicy(ctx context.Context, id uuid.UUID) error {
	if err := database.DB.WithContext(ctx).Delete(&models.LogRetentionPolicy{}, id).Error; err != nil {
		return fmt.Errorf("failed to delete retention policy: %w", err)
	}
	return nil
}

// CreateArchivalRule creates a new archival rule
func (r *RetentionRepository) CreateArchivalRule(ctx context.Context, a *models.ArchivalRule) error {
	if err := database.DB.WithContext(ctx).Create(a).Error; err != nil {
		return fmt.Errorf("failed to create archival rule: %w", err)
	}
	return nil
}

// GetArchivalRule retrieves an archival rule by ID
func (r *RetentionRepository) GetArchivalRule(ctx context.Context, id uuid.UUID) (*models.ArchivalRule, error) {
	var a models.ArchivalRule
	if err := database.DB.WithContext(ctx).Where("id = ?", id).First(&a).Error; err != nil {
		return nil, fmt.Errorf("failed to get archival rule: %w", err)
	}
	return &a, nil
}

// ListArchivalRules retrieves all archival rules
func (r *RetentionRepository) ListArchivalRules(ctx context.Context) ([]models.ArchivalRule, error) {
	var archival []models.ArchivalRule
	if err := database.DB.WithContext(ctx).
		Order("created_at ASC").
		Find(&archival).Error; err != nil {
		return nil, fmt.Errorf("failed to list archival rules: %w", err)
	}
	return archival, nil
}

// UpdateArchivalRule updates an archival rule
func (r *RetentionRepository) UpdateArchivalRule(ctx context.Context, a *models.ArchivalRule) error {
	if err := database.DB.WithContext(ctx).Save(a).Error; err != nil {
		return fmt.Errorf("failed to update archival rule: %w", err)
	}
	return nil
}

// DeleteArchivalRule soft deletes an archival rule
func (r *RetentionRepository) DeleteArchivalRule(ctx context.Context, id uuid.UUID) error {
	if err := database.DB.WithContext(ctx).Delete(&models.ArchivalRule{}, id).Error; err != nil {
		return fmt.Errorf("failed to delete archival rule: %w", err)
	}
	return nil
}
