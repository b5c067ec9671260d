package services

import (
	"context"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/cplatt-iso/axiom-admin/internal/metrics"
	"github.com/cplatt-iso/axiom-admin/internal/models"
	"github.com/cplatt-iso/axiom-admin/internal/repository"
	"github.com/cplatt-iso/axiom-admin/internal/rules"
)

// DestinationService handles business logic for storage destinations.
type DestinationService struct {
	destRepo  *repository.DestinationRepository
	auditRepo *repository.AuditRepository
}

// NewDestinationService creates a new destination service
func NewDestinationService(
	destRepo *repository.DestinationRepository,
	auditRepo *repository.AuditRepository,
) *DestinationService {
	return &DestinationService{
		destRepo:  destRepo,
		auditRepo: auditRepo,
	}
}

func (s *DestinationService) audit(ctx context.Context, action, resourceID string, opErr error) {
	entry := &models.AuditLog{
		Action:       action,
		ResourceType: "destination",
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

// validate checks the scalar fields shared by create and update.
func (s *DestinationService) validate(name string, destType models.DestinationType) error {
	var res rules.Result
	if name == "" {
		res.Add(rules.FieldName, 0, "Destination name is required.")
	}
	if !validDestinationType(destType) {
		res.Add(rules.FieldDestinationType, 0, "Destination type is required.")
	}
	if !res.IsValid() {
		metrics.ValidationFailures.WithLabelValues("destination").Inc()
		return &ValidationError{Result: res}
	}
	return nil
}

// Create persists a new storage destination.
func (s *DestinationService) Create(ctx context.Context, payload *models.StorageDestinationCreatePayload) (*models.StorageDestination, error) {
	if err := s.validate(payload.Name, payload.Type); err != nil {
		return nil, err
	}

	dest := &models.StorageDestination{
		Name:     payload.Name,
		Type:     payload.Type,
		Config:   payload.Config,
		IsActive: true,
	}
	if dest.Config == nil {
		dest.Config = models.JSONMap{}
	}

	err := s.destRepo.Create(ctx, dest)
	s.audit(ctx, "destination.create", dest.ID.String(), err)
	if err != nil {
		return nil, err
	}
	return dest, nil
}

// Get retrieves a storage destination by ID.
func (s *DestinationService) Get(ctx context.Context, id uuid.UUID) (*models.StorageDestination, error) {
	return s.destRepo.GetByID(ctx, id)
}

// List retrieves all storage destinations.
func (s *DestinationService) List(ctx context.Context) ([]models.StorageDestination, error) {
	return s.destRepo.List(ctx)
}

// Update applies a partial update to a storage destination.
func (s *DestinationService) Update(ctx context.Context, id uuid.UUID, payload *models.StorageDestinationUpdatePayload) (*models.StorageDestination, error) {
	dest, err := s.destRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if payload.Name != nil {
		dest.Name = *payload.Name
	}
	if payload.Type != nil {
		dest.Type = *payload.Type
	}
	if payload.Config != nil {
		dest.Config = *payload.Config
	}
	if payload.IsActive != nil {
		dest.IsActive = *payload.IsActive
	}

	if err := s.validate(dest.Name, dest.Type); err != nil {
		return nil, err
	}

	err = s.destRepo.Update(ctx, dest)
	s.audit(ctx, "destination.update", dest.ID.String(), err)
	if err != nil {
		return nil, err
	}
	return dest, nil
}

// Delete removes a storage destination.
func (s *DestinationService) Delete(ctx context.Context, id uuid.UUID) error {
	err := s.destRepo.Delete(ctx, id)
	s.audit(ctx, "destination.delete", id.String(), err)
	return err
}

func validDestinationType(t models.DestinationType) bool {
	for _, known := range models.DestinationTypes {
		if t == known {
			return true
		}
	}
	return false
}
