package storage

import (
	"context"
	"fmt"
)

// Keys under which the client persists its session.
const (
	TokenKey = "cocobase-token"
	UserKey  = "cocobase-user"
)

// Backend is a string key/value store.
type Backend interface {
	// Name returns the backend identifier used in logs.
	Name() string

	// Get returns the value stored under key. ok is false when the key is
	// absent.
	Get(ctx context.Context, key string) (value string, ok bool, err error)

	// Set stores value under key, replacing any previous value.
	Set(ctx context.Context, key, value string) error
}

// BackendError describes a failed backend operation.
type BackendError struct {
	Backend   string // Backend name (e.g., "file", "redis")
	Operation string // "get" or "set"
	Key       string
	Err       error
}

func (e *BackendError) Error() string {
	return fmt.Sprintf("%s backend %s %q: %v", e.Backend, e.Operation, e.Key, e.Err)
}

func (e *BackendError) Unwrap() error {
	return e.Err
}

func newBackendError(backend, operation, key string, err error) *BackendError {
	return &BackendError{
		Backend:   backend,
		Operation: operation,
		Key:       key,
		Err:       err,
	}
}
