package storage

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupSQLBackend(t *testing.T) *SQLBackend {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	backend, err := NewSQLBackend(db)
	require.NoError(t, err)
	t.Cleanup(func() { _ = backend.Close() })

	return backend
}

func TestSQLBackend(t *testing.T) {
	ctx := context.Background()
	backend := setupSQLBackend(t)

	assert.Equal(t, "sql", backend.Name())

	value, ok, err := backend.Get(ctx, TokenKey)
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Empty(t, value)

	require.NoError(t, backend.Set(ctx, TokenKey, "first"))
	value, ok, err = backend.Get(ctx, TokenKey)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "first", value)

	require.NoError(t, backend.Set(ctx, TokenKey, "second"))
	value, ok, err = backend.Get(ctx, TokenKey)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "second", value)

	var count int64
	require.NoError(t, backend.db.Model(&Entry{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestOpenSQL_UnsupportedDriver(t *testing.T) {
	_, err := OpenSQL("mysql", "dsn", nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported SQL driver")
}

func TestOpen(t *testing.T) {
	tests := []struct {
		name     string
		cfg      BackendConfig
		wantNil  bool
		wantName string
		wantErr  string
	}{
		{name: "empty", cfg: BackendConfig{}, wantNil: true},
		{name: "none", cfg: BackendConfig{Backend: BackendNone}, wantNil: true},
		{name: "memory", cfg: BackendConfig{Backend: BackendMemory}, wantName: "file"},
		{name: "file", cfg: BackendConfig{Backend: BackendFile, Path: t.TempDir()}, wantName: "file"},
		{name: "redis", cfg: BackendConfig{Backend: BackendRedis, RedisAddr: "localhost:6379"}, wantName: "redis"},
		{name: "redis without addr", cfg: BackendConfig{Backend: BackendRedis}, wantErr: "redis_addr is required"},
		{name: "sqlite", cfg: BackendConfig{Backend: BackendSQLite, DSN: ":memory:"}, wantName: "sql"},
		{name: "postgres without dsn", cfg: BackendConfig{Backend: BackendPostgres}, wantErr: "dsn is required"},
		{name: "unknown", cfg: BackendConfig{Backend: "etcd"}, wantErr: "unknown storage backend"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			backend, err := Open(tt.cfg, nil)
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}
			require.NoError(t, err)
			if tt.wantNil {
				assert.Nil(t, backend)
				return
			}
			require.NotNil(t, backend)
			assert.Equal(t, tt.wantName, backend.Name())
		})
	}
}
