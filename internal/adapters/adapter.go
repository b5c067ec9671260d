package adapters

import (
	"context"

	"github.com/cplatt-iso/axiom-admin/internal/models"
)

// SourceAdapter is the query surface the data browser uses against one
// configured data source.
type SourceAdapter interface {
	// Query operations
	FindStudies(ctx context.Context, query models.BrowserQuery) ([]models.Study, error)
	FindSeries(ctx context.Context, studyUID string) ([]models.Series, error)
	FindInstances(ctx context.Context, studyUID, seriesUID string) ([]models.Instance, error)

	// Connection management
	TestConnection(ctx context.Context) (*models.ConnectionStatus, error)
	Close() error

	// Adapter info
	Type() models.SourceType
	Capabilities() []string
}

// BaseAdapter provides common functionality for all adapters
type BaseAdapter struct {
	source models.DataSource
}

func (b *BaseAdapter) Type() models.SourceType {
	return b.source.Type
}

func (b *BaseAdapter) Source() models.DataSource {
	return b.source
}
