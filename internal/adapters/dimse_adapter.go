package adapters

import (
	"context"
	"fmt"
	"time"

	"github.com/cplatt-iso/axiom-admin/internal/models"
	"github.com/cplatt-iso/axiom-admin/pkg/dimse"
)

// DIMSEAdapter implements SourceAdapter for classic DIMSE peers. The admin
// service only verifies these sources with C-ECHO; the data browser requires
// a DICOMweb-capable source.
type DIMSEAdapter struct {
	BaseAdapter
	pool *dimse.ConnectionPool
}

// ErrQueryUnsupported is returned for browse operations on DIMSE sources.
var ErrQueryUnsupported = fmt.Errorf("data browser queries are not supported on DIMSE sources")

// NewDIMSEAdapter creates a new DIMSE adapter
func NewDIMSEAdapter(source models.DataSource) (*DIMSEAdapter, error) {
	pool := dimse.NewConnectionPool(dimse.PoolConfig{
		AssociationConfig: dimse.AssociationConfig{
			Host:       source.Endpoint,
			Port:       source.Port,
			CallingAET: source.CallingAETitle,
			CalledAET:  source.RemoteAETitle,
			Timeout:    15 * time.Second,
		},
		MaxPoolSize: 2,
		MaxIdleTime: 2 * time.Minute,
	})

	return &DIMSEAdapter{
		BaseAdapter: BaseAdapter{source: source},
		pool:        pool,
	}, nil
}

func (d *DIMSEAdapter) Capabilities() []string {
	return []string{"C-ECHO"}
}

func (d *DIMSEAdapter) FindStudies(ctx context.Context, query models.BrowserQuery) ([]models.Study, error) {
	return nil, ErrQueryUnsupported
}

func (d *DIMSEAdapter) FindSeries(ctx context.Context, studyUID string) ([]models.Series, error) {
	return nil, ErrQueryUnsupported
}

func (d *DIMSEAdapter) FindInstances(ctx context.Context, studyUID, seriesUID string) ([]models.Instance, error) {
	return nil, ErrQueryUnsupported
}

// TestConnection verifies the peer with a C-ECHO.
func (d *DIMSEAdapter) TestConnection(ctx context.Context) (*models.ConnectionStatus, error) {
	start := time.Now()
	status := &models.ConnectionStatus{
		LastChecked: start,
	}

	assoc, err := d.pool.Get(ctx)
	if err == nil {
		err = assoc.CEcho(ctx)
		d.pool.Put(assoc)
	}

	status.ResponseTime = time.Since(start).Milliseconds()

	if err != nil {
		status.IsConnected = false
		status.ErrorMessage = err.Error()
		return status, err
	}

	status.IsConnected = true
	status.Capabilities = d.Capabilities()
	return status, nil
}

// Close closes the adapter
func (d *DIMSEAdapter) Close() error {
	return d.pool.Close()
}
