package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/hashicorp/go-hclog"
	"github.com/hashicorp/go-multierror"
	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/hclsimple"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/function"

	"github.com/cocobase/cocobase-go/pkg/cocobase"
	"github.com/cocobase/cocobase-go/pkg/storage"
)

// Environment variables consulted when the file leaves a value unset.
const (
	EnvBaseURL    = "COCOBASE_BASE_URL"
	EnvAPIKey     = "COCOBASE_API_KEY"
	EnvConfigFile = "COCOBASE_CONFIG"
)

// Config is the CLI configuration.
//
// Example configuration (HCL):
//
//	base_url     = "https://futurebase.fly.dev"
//	api_key      = env("COCOBASE_API_KEY")
//	timeout      = "30s"
//	log_level    = "info"
//	user_refresh = "background"
//
//	storage {
//	  backend = "file"
//	  path    = "/home/me/.cocobase"
//	}
type Config struct {
	// BaseURL is the backend root. Default: cocobase.DefaultBaseURL
	BaseURL string `hcl:"base_url,optional"`

	// APIKey is sent with every request.
	APIKey string `hcl:"api_key,optional"`

	// Timeout bounds each HTTP request, as a Go duration string.
	// Default: "30s"
	Timeout string `hcl:"timeout,optional"`

	// LogLevel is one of trace, debug, info, warn, error, off.
	// Default: "warn"
	LogLevel string `hcl:"log_level,optional"`

	// UserRefresh is "background" or "blocking". Default: "background"
	UserRefresh string `hcl:"user_refresh,optional"`

	// Storage selects where the session is persisted.
	// Default: file backend under ~/.cocobase
	Storage *storage.BackendConfig `hcl:"storage,block"`
}

// Default returns the configuration used when no file exists.
func Default() *Config {
	cfg := &Config{}
	cfg.setDefaults()
	return cfg
}

// DefaultPath returns the config file location: $COCOBASE_CONFIG, or
// ~/.cocobase/config.hcl.
func DefaultPath() string {
	if p := os.Getenv(EnvConfigFile); p != "" {
		return p
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "config.hcl"
	}
	return filepath.Join(home, ".cocobase", "config.hcl")
}

// LoadFile decodes an HCL or JSON configuration file, chosen by extension,
// then applies environment overrides and defaults.
func LoadFile(filename string) (*Config, error) {
	if filename == "" {
		return nil, fmt.Errorf("configuration file path is required")
	}

	if _, err := os.Stat(filename); os.IsNotExist(err) {
		return nil, fmt.Errorf("configuration file not found: %s", filename)
	}

	var cfg Config
	if err := hclsimple.DecodeFile(filename, evalContext(), &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse configuration file: %w", err)
	}

	cfg.applyEnv()
	cfg.setDefaults()
	return &cfg, nil
}

// Parse decodes configuration source. filename is only used to choose the
// syntax and in error messages.
func Parse(filename string, src []byte) (*Config, error) {
	var cfg Config
	if err := hclsimple.Decode(filename, src, evalContext(), &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse configuration: %w", err)
	}

	cfg.applyEnv()
	cfg.setDefaults()
	return &cfg, nil
}

// Load reads filename if it exists. A missing file at the default path is
// not an error: the defaults plus environment are used instead.
func Load(filename string) (*Config, error) {
	explicit := filename != ""
	if !explicit {
		filename = DefaultPath()
	}

	if _, err := os.Stat(filename); errors.Is(err, os.ErrNotExist) && !explicit {
		cfg := &Config{}
		cfg.applyEnv()
		cfg.setDefaults()
		return cfg, nil
	}

	return LoadFile(filename)
}

func (c *Config) applyEnv() {
	if c.BaseURL == "" {
		c.BaseURL = os.Getenv(EnvBaseURL)
	}
	if c.APIKey == "" {
		c.APIKey = os.Getenv(EnvAPIKey)
	}
}

func (c *Config) setDefaults() {
	if c.BaseURL == "" {
		c.BaseURL = cocobase.DefaultBaseURL
	}
	if c.Timeout == "" {
		c.Timeout = "30s"
	}
	if c.LogLevel == "" {
		c.LogLevel = "warn"
	}
	if c.UserRefresh == "" {
		c.UserRefresh = cocobase.RefreshBackground.String()
	}
	if c.Storage == nil {
		c.Storage = &storage.BackendConfig{Backend: storage.BackendFile}
	}
}

// Validate checks every field and reports all problems at once.
func (c *Config) Validate() error {
	var result *multierror.Error

	if u, err := url.Parse(c.BaseURL); err != nil {
		result = multierror.Append(result, fmt.Errorf("invalid base_url: %w", err))
	} else if u.Scheme != "http" && u.Scheme != "https" {
		result = multierror.Append(result, fmt.Errorf("base_url must use http or https scheme, got: %q", u.Scheme))
	}

	if _, err := c.TimeoutDuration(); err != nil {
		result = multierror.Append(result, err)
	}

	if hclog.LevelFromString(c.LogLevel) == hclog.NoLevel {
		result = multierror.Append(result, fmt.Errorf("invalid log_level: %q", c.LogLevel))
	}

	if _, err := cocobase.ParseUserRefreshMode(c.UserRefresh); err != nil {
		result = multierror.Append(result, err)
	}

	if c.Storage != nil {
		switch c.Storage.Backend {
		case "", storage.BackendNone, storage.BackendMemory, storage.BackendFile,
			storage.BackendRedis, storage.BackendSQLite, storage.BackendPostgres:
		default:
			result = multierror.Append(result, fmt.Errorf("unknown storage backend: %q", c.Storage.Backend))
		}
	}

	return result.ErrorOrNil()
}

// TimeoutDuration parses Timeout.
func (c *Config) TimeoutDuration() (time.Duration, error) {
	if c.Timeout == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(c.Timeout)
	if err != nil {
		return 0, fmt.Errorf("invalid timeout: %w", err)
	}
	if d < 0 {
		return 0, fmt.Errorf("timeout must be non-negative, got: %v", d)
	}
	return d, nil
}

// Level returns the configured log level.
func (c *Config) Level() hclog.Level {
	return hclog.LevelFromString(strings.TrimSpace(c.LogLevel))
}

// ClientConfig converts c into a client configuration using backend for
// session storage.
func (c *Config) ClientConfig(backend storage.Backend, logger hclog.Logger) (*cocobase.Config, error) {
	timeout, err := c.TimeoutDuration()
	if err != nil {
		return nil, err
	}
	refresh, err := cocobase.ParseUserRefreshMode(c.UserRefresh)
	if err != nil {
		return nil, err
	}

	return &cocobase.Config{
		BaseURL:     c.BaseURL,
		APIKey:      c.APIKey,
		Timeout:     timeout,
		Storage:     backend,
		Logger:      logger,
		UserRefresh: refresh,
	}, nil
}

func evalContext() *hcl.EvalContext {
	return &hcl.EvalContext{
		Functions: map[string]function.Function{
			"env": envFunc,
		},
	}
}

// envFunc implements env(name) and env(name, fallback).
var envFunc = function.New(&function.Spec{
	Params: []function.Parameter{
		{Name: "name", Type: cty.String},
	},
	VarParam: &function.Parameter{
		Name: "fallback",
		Type: cty.String,
	},
	Type: function.StaticReturnType(cty.String),
	Impl: func(args []cty.Value, retType cty.Type) (cty.Value, error) {
		if len(args) > 2 {
			return cty.NilVal, fmt.Errorf("env takes at most one fallback value")
		}
		if v, ok := os.LookupEnv(args[0].AsString()); ok {
			return cty.StringVal(v), nil
		}
		if len(args) == 2 {
			return args[1], nil
		}
		return cty.StringVal(""), nil
	},
})
