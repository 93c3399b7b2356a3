package base

import (
	"context"
	"fmt"
	"io"

	"github.com/cocobase/cocobase-go/internal/config"
	"github.com/cocobase/cocobase-go/pkg/cocobase"
	"github.com/cocobase/cocobase-go/pkg/storage"
)

// ClientFlags are shared by commands that talk to the backend.
type ClientFlags struct {
	Config string
	Format string
}

// AddClientFlags registers -config and -format on f.
func AddClientFlags(f *FlagSet, flags *ClientFlags) {
	f.StringVar(
		&flags.Config, "config", "",
		"Path to the configuration file. Defaults to $COCOBASE_CONFIG or ~/.cocobase/config.hcl.",
	)
	f.StringVar(
		&flags.Format, "format", "json",
		"Output format: json or yaml.",
	)
}

// Session is a client restored from the configured storage.
type Session struct {
	Client *cocobase.Client
	Config *config.Config

	closer io.Closer
}

// Close releases the storage backend.
func (s *Session) Close() {
	if s.closer != nil {
		_ = s.closer.Close()
	}
}

// OpenSession loads configuration from configPath, opens the session
// storage and restores any saved login.
func (c *Command) OpenSession(ctx context.Context, configPath string) (*Session, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	logger := c.Log
	logger.SetLevel(cfg.Level())

	backend, err := storage.Open(*cfg.Storage, logger)
	if err != nil {
		return nil, fmt.Errorf("error opening session storage: %w", err)
	}

	sess := &Session{Config: cfg}
	if closer, ok := backend.(io.Closer); ok {
		sess.closer = closer
	}

	clientCfg, err := cfg.ClientConfig(backend, logger)
	if err != nil {
		sess.Close()
		return nil, err
	}
	// Commands exit right after printing, so the user must be fetched
	// before returning.
	clientCfg.UserRefresh = cocobase.RefreshBlocking

	client, err := cocobase.New(clientCfg)
	if err != nil {
		sess.Close()
		return nil, err
	}
	sess.Client = client

	if err := client.InitAuth(ctx); err != nil {
		logger.Warn("error restoring session", "error", err)
	}

	return sess, nil
}
