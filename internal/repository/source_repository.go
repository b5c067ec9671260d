package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/cplatt-iso/axiom-admin/internal/database"
	"github.com/cplatt-iso/axiom-admin/internal/models"
)

// SourceRepository handles data source database operations
type SourceRepository struct{}

// NewSourceRepository creates a new source repository
func NewSourceRepository() *SourceRepository {
	return &SourceRepository{}
}

// Create creates a new data source
func (r *SourceRepository) Create(ctx context.Context, source *models.DataSource) error {
	if err := database.DB.WithContext(ctx).Create(source).Error; err != nil {
		return fmt.Errorf("failed to create data source: %w", err)
	}
	return nil
}

// GetByID retrieves a data source by ID
func (r *SourceRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.DataSource, error) {
	var source models.DataSource
	if err := database.DB.WithContext(ctx).Where("id = ?", id).First(&source).Error; err != nil {
		return nil, fmt.Errorf("failed to get data source: %w", err)
	}
	return &source, nil
}

// GetByName retrieves a data source by its unique name. Rules reference
// sources by name in applicable_sources.
func (r *SourceRepository) GetByName(ctx context.Context, name string) (*models.DataSource, error) {
	var source models.DataSource
	if err := database.DB.WithContext(ctx).Where("name = ?", name).First(&source).Error; err != nil {
		return nil, fmt.Errorf("failed to get data source: %w", err)
	}
	return &source, nil
}

// List retrieves all active data sources, default first.
func (r *SourceRepository) List(ctx context.Context) ([]models.DataSource, error) {
	var sources []models.DataSource
	if err := database.DB.WithContext(ctx).
		Where("is_active = ?", true).
		Order("is_default DESC, created_at ASC").
		Find(&sources).Error; err != nil {
		return nil, fmt.Errorf("failed to list data sources: %w", err)
	}
	return sources, nil
}

// Update updates a data source
func (r *SourceRepository) Update(ctx context.Context, source *models.DataSource) error {
	if err := database.DB.WithContext(ctx).Save(source).Error; err != nil {
		return fmt.Errorf("failed to update data source: %w", err)
	}
	return nil
}

// Delete soft deletes a data source
func (r *SourceRepository) Delete(ctx context.Context, id uuid.UUID) error {
	if err := database.DB.WithContext(ctx).Delete(&models.DataSource{}, id).Error; err != nil {
		return fmt.Errorf("failed to delete data source: %w", err)
	}
	return nil
}

// SetDefault marks one source as the default (and unsets the others).
func (r *SourceRepository) SetDefault(ctx context.Context, id uuid.UUID) error {
	tx := database.DB.WithContext(ctx).Begin()
	defer func() {
		if p := recover(); p != nil {
			tx.Rollback()
		}
	}()

	if err := tx.Model(&models.DataSource{}).
		Where("is_default = ?", true).
		Update("is_default", false).Error; err != nil {
		tx.Rollback()
		return fmt.Errorf("failed to unset default flags: %w", err)
	}

	if id != uuid.Nil {
		if err := tx.Model(&models.DataSource{}).
			Where("id = ?", id).
			Update("is_default", true).Error; err != nil {
			tx.Rollback()
			return fmt.Errorf("failed to set default: %w", err)
		}
	}

	return tx.Commit().Error
}

// UpdateConnectionStatus records the outcome of a connection test.
func (r *SourceRepository) UpdateConnectionStatus(ctx context.Context, id uuid.UUID, status *models.ConnectionStatus) error {
	updates := map[string]interface{}{
		"last_connection_test":   status.LastChecked,
		"last_connection_status": status.IsConnected,
		"last_error":             status.ErrorMessage,
	}

	if err := database.DB.WithContext(ctx).
		Model(&models.DataSource{}).
		Where("id = ?", id).
		Updates(updates).Error; err != nil {
		return fmt.Errorf("failed to update connection status: %w", err)
	}

	return nil
}
