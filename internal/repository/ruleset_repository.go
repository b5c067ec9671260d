package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/cplatt-iso/axiom-admin/internal/database"
	"github.com/cplatt-iso/axiom-admin/internal/models"
)

// RulesetRepository handles ruleset database operations
type RulesetRepository struct{}

// NewRulesetRepository creates a new ruleset repository
func NewRulesetRepository() *RulesetRepository {
	return &RulesetRepository{}
}

// Create creates a new ruleset
func (r *RulesetRepository) Create(ctx context.Context, rs *models.Ruleset) error {
	if err := database.DB.WithContext(ctx).Create(rs).Error; err != nil {
		return fmt.Errorf("failed to create ruleset: %w", err)
	}
	return nil
}

// GetByID retrieves a ruleset by ID, including its rules ordered by priority.
func (r *RulesetRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Ruleset, error) {
	var rs models.Ruleset
	if err := database.DB.WithContext(ctx).
		Preload("Rules", func(db *gorm.DB) *gorm.DB { return db.Order("priority ASC, created_at ASC") }).
		Where("id = ?", id).
		First(&rs).Error; err != nil {
		return nil, fmt.Errorf("failed to get ruleset: %w", err)
	}
	return &rs, nil
}

// List retrieves all rulesets ordered by priority.
func (r *RulesetRepository) List(ctx context.Context) ([]models.Ruleset, error) {
	var rulesets []models.Ruleset
	if err := database.DB.WithContext(ctx).
		Order("priority ASC, created_at ASC").
		Find(&rulesets).Error; err != nil {
		return nil, fmt.Errorf("failed to list rulesets: %w", err)
	}
	return rulesets, nil
}

// Update updates a ruleset
func (r *RulesetRepository) Update(ctx context.Context, rs *models.Ruleset) error {
	if err := database.DB.WithContext(ctx).Save(rs).Error; err != nil {
		return fmt.Errorf("failed to update ruleset: %w", err)
	}
	return nil
}

// Delete soft deletes a ruleset and its rules in one transaction.
func (r *RulesetRepository) Delete(ctx context.Context, id uuid.UUID) error {
	tx := database.DB.WithContext(ctx).Begin()
	defer func() {
		if p := recover(); p != nil {
			tx.Rollback()
		}
	}()

	if err := tx.Where("ruleset_id = ?", id).Delete(&models.Rule{}).Error; err != nil {
		tx.Rollback()
		return fmt.Errorf("failed to delete rules of ruleset: %w", err)
	}

	if err := tx.Delete(&models.Ruleset{}, id).Error; err != nil {
		tx.Rollback()
		return fmt.Errorf("failed to delete ruleset: %w", err)
	}

	return tx.Commit().Error
}
