package realtime

import (
	"sync"

	"github.com/hashicorp/go-hclog"
)

// Registry tracks named connections. Closing a connection does not remove
// it, so closed entries remain visible through Get and List.
type Registry struct {
	mu     sync.Mutex
	conns  []*Connection
	logger hclog.Logger
}

// NewRegistry returns an empty registry.
func NewRegistry(logger hclog.Logger) *Registry {
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	return &Registry{logger: logger.Named("registry")}
}

// Add appends conn.
func (r *Registry) Add(conn *Connection) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.conns = append(r.conns, conn)
}

// Get returns the first connection added under name, or nil.
func (r *Registry) Get(name string) *Connection {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, c := range r.conns {
		if c.Name == name {
			return c
		}
	}
	return nil
}

// Close closes the first connection named name. An unknown name is logged
// and otherwise ignored.
func (r *Registry) Close(name string) {
	conn := r.Get(name)
	if conn == nil {
		r.logger.Warn("connection not found", "name", name)
		return
	}

	closed, err := conn.shutdown()
	if err != nil {
		r.logger.Debug("error closing connection", "name", name, "error", err)
	}
	if !closed {
		r.logger.Debug("connection already closed", "name", name, "id", conn.ID)
		return
	}
	r.logger.Info("connection closed", "name", name, "id", conn.ID)
}

// List returns a snapshot of all connections in insertion order.
func (r *Registry) List() []*Connection {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*Connection, len(r.conns))
	copy(out, r.conns)
	return out
}
