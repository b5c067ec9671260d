// Integration tests against a live DIMSE peer (e.g. a local Orthanc on
// port 4242). They are skipped unless DIMSE_TEST_HOST is set.
package dimse_test

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/cplatt-iso/axiom-admin/pkg/dimse"
)

func testConfig(t *testing.T) dimse.AssociationConfig {
	host := os.Getenv("DIMSE_TEST_HOST")
	if host == "" {
		t.Skip("DIMSE_TEST_HOST not set")
	}
	return dimse.AssociationConfig{
		Host:       host,
		Port:       4242,
		CallingAET: "AXIOM_ADMIN",
		CalledAET:  "ORTHANC",
		Timeout:    10 * time.Second,
	}
}

func TestCEcho(t *testing.T) {
	assoc := dimse.NewAssociation(testConfig(t))
	defer assoc.Close()

	if err := assoc.CEcho(context.Background()); err != nil {
		t.Fatalf("C-ECHO failed: %v", err)
	}
}

func TestConnectionPool(t *testing.T) {
	pool := dimse.NewConnectionPool(dimse.PoolConfig{
		AssociationConfig: testConfig(t),
		MaxPoolSize:       3,
		MaxIdleTime:       1 * time.Minute,
	})
	defer pool.Close()

	ctx := context.Background()

	conn, err := pool.Get(ctx)
	if err != nil {
		t.Fatalf("failed to get connection: %v", err)
	}

	if err := conn.CEcho(ctx); err != nil {
		t.Fatalf("C-ECHO failed: %v", err)
	}

	pool.Put(conn)

	stats := pool.Stats()
	if stats.TotalConnections != 1 {
		t.Errorf("expected 1 connection in pool, got %d", stats.TotalConnections)
	}
}
