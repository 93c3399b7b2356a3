package cocobase

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"sync"

	"github.com/hashicorp/go-hclog"

	"github.com/cocobase/cocobase-go/pkg/models"
	"github.com/cocobase/cocobase-go/pkg/realtime"
	"github.com/cocobase/cocobase-go/pkg/storage"
)

// Client talks to one Cocobase backend. It holds at most one bearer token
// and one cached user; the latest successful auth call wins. A Client is
// safe for concurrent use.
type Client struct {
	baseURL     string
	apiKey      string
	httpClient  *http.Client
	storage     *storage.Adapter
	logger      hclog.Logger
	userRefresh UserRefreshMode
	registry    *realtime.Registry
	watcher     *realtime.Watcher

	mu    sync.RWMutex
	token string
	user  *models.AppUser

	refreshes sync.WaitGroup
}

// New creates a client from cfg. A nil cfg uses DefaultConfig.
func New(cfg *Config) (*Client, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	cfgCopy := *cfg
	cfg = &cfgCopy
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	logger := cfg.Logger
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	logger = logger.Named("cocobase")

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = cfg.NewHTTPClient()
	}

	registry := cfg.Registry
	if registry == nil {
		registry = realtime.NewRegistry(logger)
	}

	baseURL := strings.TrimSuffix(cfg.BaseURL, "/")

	return &Client{
		baseURL:     baseURL,
		apiKey:      cfg.APIKey,
		httpClient:  httpClient,
		storage:     storage.NewAdapter(cfg.Storage, logger),
		logger:      logger,
		userRefresh: cfg.UserRefresh,
		registry:    registry,
		watcher: realtime.NewWatcher(realtime.WatcherConfig{
			BaseURL:  baseURL,
			APIKey:   cfg.APIKey,
			Dialer:   cfg.Dialer,
			Registry: registry,
			Logger:   logger,
		}),
	}, nil
}

// BaseURL returns the backend root without a trailing slash.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Token returns the current bearer token, or "" if there is none.
func (c *Client) Token() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.token
}

// User returns the cached user, or nil.
func (c *Client) User() *models.AppUser {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.user
}

// SetToken sets the bearer token and persists it.
func (c *Client) SetToken(ctx context.Context, token string) {
	c.mu.Lock()
	c.token = token
	c.mu.Unlock()

	c.storage.Set(ctx, storage.TokenKey, token)
}

// setUser caches user and persists it as JSON.
func (c *Client) setUser(ctx context.Context, user *models.AppUser) {
	c.mu.Lock()
	c.user = user
	c.mu.Unlock()

	b, err := json.Marshal(user)
	if err != nil {
		c.logger.Warn("error encoding user for storage", "error", err)
		return
	}
	c.storage.Set(ctx, storage.UserKey, string(b))
}

// Registry returns the registry tracking this client's realtime
// connections.
func (c *Client) Registry() *realtime.Registry {
	return c.registry
}

// WaitForBackgroundRefresh blocks until every user refresh started in the
// background by Register or InitAuth has finished.
func (c *Client) WaitForBackgroundRefresh() {
	c.refreshes.Wait()
}

// refreshUser fetches the current user according to the configured mode.
// In background mode it never returns an error.
func (c *Client) refreshUser(ctx context.Context) error {
	if c.userRefresh == RefreshBlocking {
		_, err := c.GetCurrentUser(ctx)
		return err
	}

	ctx = context.WithoutCancel(ctx)
	c.refreshes.Add(1)
	go func() {
		defer c.refreshes.Done()
		if _, err := c.GetCurrentUser(ctx); err != nil {
			c.logger.Warn("background user refresh failed", "error", err)
		}
	}()
	return nil
}
