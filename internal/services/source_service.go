package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/cplatt-iso/axiom-admin/internal/adapters"
	"github.com/cplatt-iso/axiom-admin/internal/cache"
	"github.com/cplatt-iso/axiom-admin/internal/metrics"
	"github.com/cplatt-iso/axiom-admin/internal/models"
	"github.com/cplatt-iso/axiom-admin/internal/repository"
)

// SourceService handles business logic for data sources.
type SourceService struct {
	sourceRepo     *repository.SourceRepository
	auditRepo      *repository.AuditRepository
	adapterFactory *adapters.AdapterFactory
	cache          cache.Cache
}

// NewSourceService creates a new source service
func NewSourceService(
	sourceRepo *repository.SourceRepository,
	auditRepo *repository.AuditRepository,
	adapterFactory *adapters.AdapterFactory,
	cache cache.Cache,
) *SourceService {
	return &SourceService{
		sourceRepo:     sourceRepo,
		auditRepo:      auditRepo,
		adapterFactory: adapterFactory,
		cache:          cache,
	}
}

func (s *SourceService) audit(ctx context.Context, action, resourceID string, opErr error) {
	entry := &models.AuditLog{
		Action:       action,
		ResourceType: "source",
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

// Create persists a new data source.
func (s *SourceService) Create(ctx context.Context, payload *models.DataSourceCreatePayload) (*models.DataSource, error) {
	source := &models.DataSource{
		Name:           payload.Name,
		Type:           payload.Type,
		Endpoint:       payload.Endpoint,
		Port:           payload.Port,
		CallingAETitle: payload.CallingAETitle,
		RemoteAETitle:  payload.RemoteAETitle,
		Username:       payload.Username,
		AuthConfig:     payload.AuthConfig,
		IsActive:       true,
		IsDefault:      payload.IsDefault,
	}

	// TODO: encrypt credentials at rest once the KMS integration lands
	if payload.Password != "" {
		source.PasswordHash = payload.Password
	}
	if payload.APIKey != "" {
		source.APIKey = payload.APIKey
	}

	if payload.IsDefault {
		if err := s.sourceRepo.SetDefault(ctx, uuid.Nil); err != nil {
			return nil, fmt.Errorf("failed to unset default flags: %w", err)
		}
	}

	err := s.sourceRepo.Create(ctx, source)
	s.audit(ctx, "source.create", source.ID.String(), err)
	if err != nil {
		return nil, err
	}
	return source, nil
}

// Get retrieves a data source by ID.
func (s *SourceService) Get(ctx context.Context, id uuid.UUID) (*models.DataSource, error) {
	return s.sourceRepo.GetByID(ctx, id)
}

// List retrieves all active data sources.
func (s *SourceService) List(ctx context.Context) ([]models.DataSource, error) {
	return s.sourceRepo.List(ctx)
}

// Update applies a partial update to a data source. The cached adapter and
// any cached browser results for the source are invalidated.
func (s *SourceService) Update(ctx context.Context, id uuid.UUID, payload *models.DataSourceUpdatePayload) (*models.DataSource, error) {
	source, err := s.sourceRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	applySourceUpdate(source, payload)

	if payload.IsDefault != nil && *payload.IsDefault && !source.IsDefault {
		if err := s.sourceRepo.SetDefault(ctx, uuid.Nil); err != nil {
			return nil, fmt.Errorf("failed to unset default flags: %w", err)
		}
		source.IsDefault = true
	}

	err = s.sourceRepo.Update(ctx, source)
	s.audit(ctx, "source.update", source.ID.String(), err)
	if err != nil {
		return nil, err
	}

	s.invalidate(ctx, id)
	return source, nil
}

// Delete removes a data source and its cached state.
func (s *SourceService) Delete(ctx context.Context, id uuid.UUID) error {
	err := s.sourceRepo.Delete(ctx, id)
	s.audit(ctx, "source.delete", id.String(), err)
	if err != nil {
		return err
	}

	s.invalidate(ctx, id)
	return nil
}

// invalidate drops the cached adapter and browser entries for a source.
func (s *SourceService) invalidate(ctx context.Context, id uuid.UUID) {
	if err := s.adapterFactory.RemoveAdapter(id); err != nil {
		log.Warn().Err(err).Str("source_id", id.String()).Msg("failed to drop cached adapter")
	}
	if err := s.cache.Clear(ctx, cache.SourcePattern(id.String())); err != nil {
		log.Warn().Err(err).Str("source_id", id.String()).Msg("failed to clear browser cache")
	}
}

// TestConnection tests connectivity for an unsaved configuration.
func (s *SourceService) TestConnection(ctx context.Context, req *models.ConnectionTestRequest) (*models.ConnectionStatus, error) {
	source := models.DataSource{
		Type:           req.Type,
		Endpoint:       req.Endpoint,
		Port:           req.Port,
		CallingAETitle: req.CallingAETitle,
		RemoteAETitle:  req.RemoteAETitle,
		Username:       req.Username,
		PasswordHash:   req.Password,
		APIKey:         req.APIKey,
	}

	adapter, err := adapters.New(source)
	if err != nil {
		return nil, fmt.Errorf("failed to create adapter: %w", err)
	}
	defer adapter.Close()

	status, err := adapter.TestConnection(ctx)
	outcome := "success"
	if err != nil || (status != nil && !status.IsConnected) {
		outcome = "failure"
	}
	metrics.ConnectionTests.WithLabelValues(string(req.Type), outcome).Inc()

	return status, err
}

// TestSaved tests a persisted source and records the outcome on it.
func (s *SourceService) TestSaved(ctx context.Context, id uuid.UUID) (*models.ConnectionStatus, error) {
	source, err := s.sourceRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	adapter, err := s.adapterFactory.GetAdapter(*source)
	if err != nil {
		return nil, err
	}

	status, testErr := adapter.TestConnection(ctx)
	outcome := "success"
	if testErr != nil || (status != nil && !status.IsConnected) {
		outcome = "failure"
	}
	metrics.ConnectionTests.WithLabelValues(string(source.Type), outcome).Inc()

	if status != nil {
		if err := s.sourceRepo.UpdateConnectionStatus(ctx, id, status); err != nil {
			log.Warn().Err(err).Str("source_id", id.String()).Msg("failed to record connection status")
		}
	}

	return status, testErr
}

func applySourceUpdate(source *models.DataSource, p *models.DataSourceUpdatePayload) {
	if p.Name != nil {
		source.Name = *p.Name
	}
	if p.Type != nil {
		source.Type = *p.Type
	}
	if p.Endpoint != nil {
		source.Endpoint = *p.Endpoint
	}
	if p.Port != nil {
		source.Port = *p.Port
	}
	if p.CallingAETitle != nil {
		source.CallingAETitle = *p.CallingAETitle
	}
	if p.RemoteAETitle != nil {
		source.RemoteAETitle = *p.RemoteAETitle
	}
	if p.Username != nil {
		source.Username = *p.Username
	}
	if p.Password != nil {
		source.PasswordHash = *p.Password
	}
	if p.APIKey != nil {
		source.APIKey = *p.APIKey
	}
	if p.AuthConfig != nil {
		source.AuthConfig = *p.AuthConfig
	}
	if p.IsActive != nil {
		source.IsActive = *p.IsActive
	}
}
