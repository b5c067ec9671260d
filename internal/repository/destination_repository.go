package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/cplatt-iso/axiom-admin/internal/database"
	"github.com/cplatt-iso/axiom-admin/internal/models"
)

// DestinationRepository handles storage destination database operations
type DestinationRepository struct{}

// NewDestinationRepository creates a new destination repository
func NewDestinationRepository() *DestinationRepository {
	return &DestinationRepository{}
}

// Create creates a new storage destination
func (r *DestinationRepository) Create(ctx context.Context, dest *models.StorageDestination) error {
	if err := database.DB.WithContext(ctx).Create(dest).Error; err != nil {
		return fmt.Errorf("failed to create storage destination: %w", err)
	}
	return nil
}

// GetByID retrieves a storage destination by ID
func (r *DestinationRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.StorageDestination, error) {
	var dest models.StorageDestination
	if err := database.DB.WithContext(ctx).Where("id = ?", id).First(&dest).Error; err != nil {
		return nil, fmt.Errorf("failed to get storage destination: %w", err)
	}
	return &dest, nil
}

// List retrieves all storage destinations
func (r *DestinationRepository) List(ctx context.Context) ([]models.StorageDestination, error) {
	var dests []models.StorageDestination
	if err := database.DB.WithContext(ctx).
		Order("created_at ASC").
		Find(&dests).Error; err != nil {
		return nil, fmt.Errorf("failed to list storage destinations: %w", err)
	}
	return dests, nil
}

// Update updates a storage destination
func (r *DestinationRepository) Update(ctx context.Context, dest *models.StorageDestination) error {
	if err := database.DB.WithContext(ctx).Save(dest).Error; err != nil {
		return fmt.Errorf("failed to update storage destination: %w", err)
	}
	return nil
}

// Delete soft deletes a storage destination
func (r *DestinationRepository) Delete(ctx context.Context, id uuid.UUID) error {
	if err := database.DB.WithContext(ctx).Delete(&models.StorageDestination{}, id).Error; err != nil {
		return fmt.Errorf("failed to delete storage destination: %w", err)
	}
	return nil
}
