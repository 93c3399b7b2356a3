package storage

import (
	"context"

	"github.com/hashicorp/go-hclog"
)

// Adapter is a best-effort view over a Backend.
type Adapter struct {
	backend Backend
	logger  hclog.Logger
}

// NewAdapter wraps backend. backend may be nil.
func NewAdapter(backend Backend, logger hclog.Logger) *Adapter {
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	return &Adapter{
		backend: backend,
		logger:  logger.Named("storage"),
	}
}

// Available reports whether a backend is configured.
func (a *Adapter) Available() bool {
	return a != nil && a.backend != nil
}

// Get returns the value stored under key, or false if it is absent or could
// not be read.
func (a *Adapter) Get(ctx context.Context, key string) (string, bool) {
	if !a.Available() {
		return "", false
	}

	value, ok, err := a.backend.Get(ctx, key)
	if err != nil {
		a.logger.Warn("error reading from storage", "key", key, "error", err)
		return "", false
	}
	return value, ok
}

// Set stores value under key. Failures are logged and dropped.
func (a *Adapter) Set(ctx context.Context, key, value string) {
	if !a.Available() {
		return
	}

	if err := a.backend.Set(ctx, key, value); err != nil {
		a.logger.Warn("error writing to storage", "key", key, "error", err)
	}
}
