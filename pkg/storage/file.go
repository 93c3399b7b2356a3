package storage

import (
	"context"
	"errors"
	"io/fs"
	"net/url"
	"path/filepath"

	"github.com/spf13/afero"
)

// FileBackend stores each key as a file in a directory of an afero
// filesystem. File names are the path-escaped keys.
type FileBackend struct {
	fs  afero.Fs
	dir string
}

// NewFileBackend returns a backend rooted at dir on fs. The directory is
// created on first write.
func NewFileBackend(fs afero.Fs, dir string) *FileBackend {
	return &FileBackend{fs: fs, dir: dir}
}

// NewMemoryBackend returns a FileBackend on an in-memory filesystem.
func NewMemoryBackend() *FileBackend {
	return NewFileBackend(afero.NewMemMapFs(), "/")
}

// Name returns the backend name
func (b *FileBackend) Name() string {
	return "file"
}

func (b *FileBackend) path(key string) string {
	return filepath.Join(b.dir, url.PathEscape(key))
}

// Get reads the file for key.
func (b *FileBackend) Get(ctx context.Context, key string) (string, bool, error) {
	data, err := afero.ReadFile(b.fs, b.path(key))
	if errors.Is(err, fs.ErrNotExist) {
		return "", false, nil
	}
	if err != nil {
		return "", false, newBackendError(b.Name(), "get", key, err)
	}
	return string(data), true, nil
}

// Set writes the file for key with owner-only permissions.
func (b *FileBackend) Set(ctx context.Context, key, value string) error {
	if err := b.fs.MkdirAll(b.dir, 0o700); err != nil {
		return newBackendError(b.Name(), "set", key, err)
	}
	if err := afero.WriteFile(b.fs, b.path(key), []byte(value), 0o600); err != nil {
		return newBackendError(b.Name(), "set", key, err)
	}
	return nil
}
