package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/hashicorp/go-hclog"
	"github.com/hashicorp/go-multierror"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cocobase/cocobase-go/pkg/cocobase"
	"github.com/cocobase/cocobase-go/pkg/storage"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.hcl")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadFile(t *testing.T) {
	t.Setenv("TEST_COCOBASE_KEY", "from-env")

	path := writeConfig(t, `
base_url     = "http://localhost:8080"
api_key      = env("TEST_COCOBASE_KEY")
timeout      = "5s"
log_level    = "debug"
user_refresh = "blocking"

storage {
  backend    = "redis"
  redis_addr = "localhost:6379"
  key_prefix = "app:"
}
`)

	cfg, err := LoadFile(path)
	require.NoError(t, err)
	require.NoError(t, cfg.Validate())

	assert.Equal(t, "http://localhost:8080", cfg.BaseURL)
	assert.Equal(t, "from-env", cfg.APIKey)
	assert.Equal(t, hclog.Debug, cfg.Level())
	require.NotNil(t, cfg.Storage)
	assert.Equal(t, storage.BackendRedis, cfg.Storage.Backend)
	assert.Equal(t, "localhost:6379", cfg.Storage.RedisAddr)
	assert.Equal(t, "app:", cfg.Storage.KeyPrefix)

	clientCfg, err := cfg.ClientConfig(nil, hclog.NewNullLogger())
	require.NoError(t, err)
	assert.Equal(t, 5*time.Second, clientCfg.Timeout)
	assert.Equal(t, cocobase.RefreshBlocking, clientCfg.UserRefresh)
	assert.Equal(t, "from-env", clientCfg.APIKey)
}

func TestLoadFile_Defaults(t *testing.T) {
	t.Setenv(EnvBaseURL, "")
	t.Setenv(EnvAPIKey, "")

	cfg, err := LoadFile(writeConfig(t, ``))
	require.NoError(t, err)
	require.NoError(t, cfg.Validate())

	assert.Equal(t, cocobase.DefaultBaseURL, cfg.BaseURL)
	assert.Empty(t, cfg.APIKey)
	assert.Equal(t, "30s", cfg.Timeout)
	assert.Equal(t, "warn", cfg.LogLevel)
	assert.Equal(t, "background", cfg.UserRefresh)
	require.NotNil(t, cfg.Storage)
	assert.Equal(t, storage.BackendFile, cfg.Storage.Backend)
}

func TestLoadFile_EnvFallback(t *testing.T) {
	t.Setenv(EnvAPIKey, "env-key")
	t.Setenv(EnvBaseURL, "https://self-hosted.example.com")

	cfg, err := LoadFile(writeConfig(t, `api_key = env("TEST_COCOBASE_UNSET", "")`))
	require.NoError(t, err)

	assert.Equal(t, "env-key", cfg.APIKey)
	assert.Equal(t, "https://self-hosted.example.com", cfg.BaseURL)
}

func TestLoadFile_Errors(t *testing.T) {
	_, err := LoadFile("")
	assert.ErrorContains(t, err, "configuration file path is required")

	_, err = LoadFile(filepath.Join(t.TempDir(), "missing.hcl"))
	assert.ErrorContains(t, err, "configuration file not found")

	_, err = LoadFile(writeConfig(t, `unknown_field = true`))
	assert.ErrorContains(t, err, "failed to parse configuration file")
}

func TestLoad_MissingDefaultFile(t *testing.T) {
	t.Setenv(EnvConfigFile, filepath.Join(t.TempDir(), "nope.hcl"))
	t.Setenv(EnvAPIKey, "k")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "k", cfg.APIKey)
	assert.Equal(t, cocobase.DefaultBaseURL, cfg.BaseURL)

	_, err = Load(filepath.Join(t.TempDir(), "explicit.hcl"))
	assert.Error(t, err)
}

func TestParse_EnvFunction(t *testing.T) {
	t.Setenv("TEST_COCOBASE_SET", "value")

	tests := []struct {
		name string
		src  string
		want string
	}{
		{name: "set", src: `api_key = env("TEST_COCOBASE_SET")`, want: "value"},
		{name: "set ignores fallback", src: `api_key = env("TEST_COCOBASE_SET", "other")`, want: "value"},
		{name: "unset with fallback", src: `api_key = env("TEST_COCOBASE_MISSING", "fallback")`, want: "fallback"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := Parse("config.hcl", []byte(tt.src))
			require.NoError(t, err)
			assert.Equal(t, tt.want, cfg.APIKey)
		})
	}

	_, err := Parse("config.hcl", []byte(`api_key = env("A", "b", "c")`))
	assert.Error(t, err)
}

func TestValidate_AggregatesErrors(t *testing.T) {
	cfg := &Config{
		BaseURL:     "ftp://example.com",
		Timeout:     "soon",
		LogLevel:    "loud",
		UserRefresh: "eventually",
		Storage:     &storage.BackendConfig{Backend: "etcd"},
	}

	err := cfg.Validate()
	require.Error(t, err)

	var merr *multierror.Error
	require.ErrorAs(t, err, &merr)
	assert.Len(t, merr.Errors, 5)
	assert.Contains(t, err.Error(), "base_url must use http or https scheme")
	assert.Contains(t, err.Error(), "invalid timeout")
	assert.Contains(t, err.Error(), "invalid log_level")
	assert.Contains(t, err.Error(), "invalid user refresh mode")
	assert.Contains(t, err.Error(), "unknown storage backend")
}

func TestTimeoutDuration(t *testing.T) {
	cfg := &Config{Timeout: "-1s"}
	_, err := cfg.TimeoutDuration()
	assert.ErrorContains(t, err, "timeout must be non-negative")

	cfg.Timeout = ""
	d, err := cfg.TimeoutDuration()
	require.NoError(t, err)
	assert.Zero(t, d)
}
