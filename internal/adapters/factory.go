package adapters

import (
	"fmt"
	"sync"

	"github.com/google/uuid"

	"github.com/cplatt-iso/axiom-admin/internal/models"
)

// AdapterFactory caches one adapter per data source so the browser does not
// re-dial on every query.
type AdapterFactory struct {
	mu       sync.RWMutex
	adapters map[uuid.UUID]SourceAdapter // keyed by source ID
}

// NewAdapterFactory creates a new adapter factory
func NewAdapterFactory() *AdapterFactory {
	return &AdapterFactory{
		adapters: make(map[uuid.UUID]SourceAdapter),
	}
}

// New builds an adapter for a source without caching it. Used for
// connection tests on unsaved configurations.
func New(source models.DataSource) (SourceAdapter, error) {
	switch source.Type {
	case models.SourceDICOMWeb, models.SourceGoogleHealthcare:
		return NewDICOMWebAdapter(source)
	case models.SourceDIMSE:
		return NewDIMSEAdapter(source)
	default:
		return nil, fmt.Errorf("unsupported source type: %s", source.Type)
	}
}

// GetAdapter gets or creates the cached adapter for a source.
func (f *AdapterFactory) GetAdapter(source models.DataSource) (SourceAdapter, error) {
	f.mu.RLock()
	adapter, exists := f.adapters[source.ID]
	f.mu.RUnlock()

	if exists {
		return adapter, nil
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	// Double-check after acquiring write lock
	if adapter, exists := f.adapters[source.ID]; exists {
		return adapter, nil
	}

	adapter, err := New(source)
	if err != nil {
		return nil, fmt.Errorf("failed to create adapter: %w", err)
	}

	f.adapters[source.ID] = adapter
	return adapter, nil
}

// RemoveAdapter drops and closes the cached adapter for a source, forcing a
// rebuild after its configuration changes.
func (f *AdapterFactory) RemoveAdapter(sourceID uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	adapter, exists := f.adapters[sourceID]
	if !exists {
		return nil
	}

	if err := adapter.Close(); err != nil {
		return fmt.Errorf("failed to close adapter: %w", err)
	}

	delete(f.adapters, sourceID)
	return nil
}

// CloseAll closes all adapters
func (f *AdapterFactory) CloseAll() error {
	f.mu.Lock()
	defer f.mu.Unlock()

	var errs []error
	for sourceID, adapter := range f.adapters {
		if err := adapter.Close(); err != nil {
			errs = append(errs, fmt.Errorf("failed to close adapter for source %s: %w", sourceID, err))
		}
		delete(f.adapters, sourceID)
	}

	if len(errs) > 0 {
		return fmt.Errorf("encountered %d errors while closing adapters", len(errs))
	}

	return nil
}
