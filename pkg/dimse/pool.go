package dimse

import (
	"context"
	"fmt"
	"sync"
	"time"
)

// ConnectionPool manages a pool of DICOM associations
type ConnectionPool struct {
	config        AssociationConfig
	maxSize       int
	maxIdleTime   time.Duration
	connections   []*Association
	mu            sync.Mutex
	cleanupTicker *time.Ticker
	done          chan struct{}
}

// PoolConfig holds configuration for connection pool
type PoolConfig struct {
	AssociationConfig
	MaxPoolSize int
	MaxIdleTime time.Duration
}

// NewConnectionPool creates a new connection pool
func NewConnectionPool(config PoolConfig) *ConnectionPool {
	if config.MaxPoolSize == 0 {
		config.MaxPoolSize = 5
	}
	if config.MaxIdleTime == 0 {
		config.MaxIdleTime = 5 * time.Minute
	}

	pool := &ConnectionPool{
		config:        config.AssociationConfig,
		maxSize:       config.MaxPoolSize,
		maxIdleTime:   config.MaxIdleTime,
		connections:   make([]*Association, 0, config.MaxPoolSize),
		cleanupTicker: time.NewTicker(1 * time.Minute),
		done:          make(chan struct{}),
	}

	go pool.cleanup()

	return pool
}

// Get retrieves an idle association from the pool or dials a new one.
func (p *ConnectionPool) Get(ctx context.Context) (*Association, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	for i, conn := range p.connections {
		if conn.IsConnected() {
			p.connections = append(p.connections[:i], p.connections[i+1:]...)
			return conn, nil
		}
	}

	if len(p.connections) < p.maxSize {
		conn := NewAssociation(p.config)
		if err := conn.Connect(ctx); err != nil {
			return nil, fmt.Errorf("failed to create new association: %w", err)
		}
		return conn, nil
	}

	return nil, fmt.Errorf("association pool exhausted")
}

// Put returns an association to the pool.
func (p *ConnectionPool) Put(conn *Association) {
	p.mu.Lock()
	defer p.mu.Unlock()

	// Only healthy associations go back; the pool never exceeds maxSize.
	if !conn.IsConnected() || len(p.connections) >= p.maxSize {
		conn.Close()
		return
	}

	p.connections = append(p.connections, conn)
}

// Close closes all associations and stops the pool
func (p *ConnectionPool) Close() error {
	close(p.done)
	p.cleanupTicker.Stop()

	p.mu.Lock()
	defer p.mu.Unlock()

	var errs []error
	for _, conn := range p.connections {
		if err := conn.Close(); err != nil {
			errs = append(errs, err)
		}
	}

	p.connections = nil

	if len(errs) > 0 {
		return fmt.Errorf("encountered %d errors while closing pool", len(errs))
	}

	return nil
}

// cleanup periodically removes idle associations
func (p *ConnectionPool) cleanup() {
	for {
		select {
		case <-p.cleanupTicker.C:
			p.removeIdle()
		case <-p.done:
			return
		}
	}
}

func (p *ConnectionPool) removeIdle() {
	p.mu.Lock()
	defer p.mu.Unlock()

	now := time.Now()
	active := make([]*Association, 0, len(p.connections))

	for _, conn := range p.connections {
		if now.Sub(conn.LastUsed()) > p.maxIdleTime || !conn.IsConnected() {
			conn.Close()
			continue
		}
		active = append(active, conn)
	}

	p.connections = active
}

// Stats returns pool statistics
func (p *ConnectionPool) Stats() PoolStats {
	p.mu.Lock()
	defer p.mu.Unlock()

	return PoolStats{
		TotalConnections: len(p.connections),
		MaxSize:          p.maxSize,
	}
}

// PoolStats holds pool statistics
type PoolStats struct {
	TotalConnections int
	MaxSize          int
}
