// Package storage provides best-effort persistence of client session state.
//
// The Adapter wraps a Backend and never returns errors: read failures look
// like missing keys and write failures are dropped, both logged at warn
// level. A nil Backend models a host without persistent storage, where every
// read misses and every write is a no-op.
//
// Backends:
//   - FileBackend: one file per key on an afero filesystem (NewMemoryBackend
//     uses an in-memory filesystem)
//   - RedisBackend: keys under a prefix in Redis
//   - SQLBackend: a storage_entries table through gorm (sqlite or postgres)
//
// Open builds a backend from a BackendConfig, typically decoded from the CLI
// configuration file.
package storage
