package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/cplatt-iso/axiom-admin/internal/adapters"
	"github.com/cplatt-iso/axiom-admin/internal/cache"
	"github.com/cplatt-iso/axiom-admin/internal/metrics"
	"github.com/cplatt-iso/axiom-admin/internal/models"
	"github.com/cplatt-iso/axiom-admin/internal/repository"
)

// browserCacheTTL keeps browser results fresh enough for paging back and
// forth without hammering the source.
const browserCacheTTL = 2 * time.Minute

// BrowserService proxies data-browser queries through source adapters with
// a short-lived cache in front.
type BrowserService struct {
	sourceRepo     *repository.SourceRepository
	adapterFactory *adapters.AdapterFactory
	cache          cache.Cache
}

// NewBrowserService creates a new browser service
func NewBrowserService(
	sourceRepo *repository.SourceRepository,
	adapterFactory *adapters.AdapterFactory,
	cache cache.Cache,
) *BrowserService {
	return &BrowserService{
		sourceRepo:     sourceRepo,
		adapterFactory: adapterFactory,
		cache:          cache,
	}
}

// adapter resolves the cached adapter for a source ID.
func (s *BrowserService) adapter(ctx context.Context, sourceID uuid.UUID) (adapters.SourceAdapter, error) {
	source, err := s.sourceRepo.GetByID(ctx, sourceID)
	if err != nil {
		return nil, fmt.Errorf("failed to get data source: %w", err)
	}

	adapter, err := s.adapterFactory.GetAdapter(*source)
	if err != nil {
		return nil, fmt.Errorf("failed to get adapter: %w", err)
	}

	return adapter, nil
}

// FindStudies queries a source for studies, serving repeats from cache.
func (s *BrowserService) FindStudies(ctx context.Context, sourceID uuid.UUID, query models.BrowserQuery) ([]models.Study, error) {
	key, err := s.queryKey(sourceID, "studies", query)
	if err != nil {
		return nil, err
	}

	var studies []models.Study
	if s.fromCache(ctx, key, &studies) {
		return studies, nil
	}

	adapter, err := s.adapter(ctx, sourceID)
	if err != nil {
		return nil, err
	}

	studies, err = adapter.FindStudies(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to find studies: %w", err)
	}

	s.toCache(ctx, key, studies)
	return studies, nil
}

// FindSeries queries a source for the series of a study.
func (s *BrowserService) FindSeries(ctx context.Context, sourceID uuid.UUID, studyUID string) ([]models.Series, error) {
	key := cache.BrowserKey(sourceID.String(), "series", studyUID)

	var series []models.Series
	if s.fromCache(ctx, key, &series) {
		return series, nil
	}

	adapter, err := s.adapter(ctx, sourceID)
	if err != nil {
		return nil, err
	}

	series, err = adapter.FindSeries(ctx, studyUID)
	if err != nil {
		return nil, fmt.Errorf("failed to find series: %w", err)
	}

	s.toCache(ctx, key, series)
	return series, nil
}

// FindInstances queries a source for the instances of a series.
func (s *BrowserService) FindInstances(ctx context.Context, sourceID uuid.UUID, studyUID, seriesUID string) ([]models.Instance, error) {
	key := cache.BrowserKey(sourceID.String(), "instances", studyUID+"/"+seriesUID)

	var instances []models.Instance
	if s.fromCache(ctx, key, &instances) {
		return instances, nil
	}

	adapter, err := s.adapter(ctx, sourceID)
	if err != nil {
		return nil, err
	}

	instances, err = adapter.FindInstances(ctx, studyUID, seriesUID)
	if err != nil {
		return nil, fmt.Errorf("failed to find instances: %w", err)
	}

	s.toCache(ctx, key, instances)
	return instances, nil
}

func (s *BrowserService) queryKey(sourceID uuid.UUID, level string, query models.BrowserQuery) (string, error) {
	raw, err := json.Marshal(query)
	if err != nil {
		return "", fmt.Errorf("failed to encode query: %w", err)
	}
	return cache.BrowserKey(sourceID.String(), level, string(raw)), nil
}

// fromCache loads a cached result into out. Decode failures count as misses
// so a poisoned entry never breaks the query path.
func (s *BrowserService) fromCache(ctx context.Context, key string, out interface{}) bool {
	data, err := s.cache.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, cache.ErrCacheMiss) {
			log.Warn().Err(err).Str("key", key).Msg("browser cache read failed")
		}
		metrics.BrowserCacheMisses.Inc()
		return false
	}

	if err := json.Unmarshal(data, out); err != nil {
		log.Warn().Err(err).Str("key", key).Msg("browser cache entry corrupt")
		metrics.BrowserCacheMisses.Inc()
		return false
	}

	metrics.BrowserCacheHits.Inc()
	return true
}

func (s *BrowserService) toCache(ctx context.Context, key string, v interface{}) {
	data, err := json.Marshal(v)
	if err != nil {
		return
	}
	if err := s.cache.Set(ctx, key, data, browserCacheTTL); err != nil {
		log.Warn().Err(err).Str("key", key).Msg("browser cache write failed")
	}
}
