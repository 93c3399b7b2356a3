package cocobase

import (
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/gorilla/websocket"
	"github.com/hashicorp/go-hclog"

	"github.com/cocobase/cocobase-go/pkg/realtime"
	"github.com/cocobase/cocobase-go/pkg/storage"
)

// DefaultBaseURL is the hosted Cocobase backend.
const DefaultBaseURL = "https://futurebase.fly.dev"

// UserRefreshMode controls how Register and InitAuth fetch the current user.
type UserRefreshMode int

const (
	// RefreshBackground fetches the user in a goroutine and returns without
	// waiting. Failures are logged.
	RefreshBackground UserRefreshMode = iota

	// RefreshBlocking fetches the user before returning and reports
	// failures to the caller.
	RefreshBlocking
)

func (m UserRefreshMode) String() string {
	switch m {
	case RefreshBackground:
		return "background"
	case RefreshBlocking:
		return "blocking"
	default:
		return fmt.Sprintf("UserRefreshMode(%d)", int(m))
	}
}

// ParseUserRefreshMode parses "background" or "blocking". An empty string
// selects RefreshBackground.
func ParseUserRefreshMode(s string) (UserRefreshMode, error) {
	switch strings.ToLower(s) {
	case "", "background":
		return RefreshBackground, nil
	case "blocking":
		return RefreshBlocking, nil
	default:
		return 0, fmt.Errorf("invalid user refresh mode %q: must be background or blocking", s)
	}
}

// Config contains configuration for the Cocobase client.
type Config struct {
	// BaseURL is the backend root. A trailing slash is ignored.
	// Default: DefaultBaseURL
	BaseURL string

	// APIKey is sent as x-api-key on every request and as the first frame
	// of every realtime connection. Optional.
	APIKey string

	// Timeout bounds each HTTP request. Zero means no client-side timeout;
	// use the request context for deadlines.
	Timeout time.Duration

	// HTTPClient overrides the client built from Timeout.
	HTTPClient *http.Client

	// Storage persists the token and user between sessions. nil disables
	// persistence.
	Storage storage.Backend

	// Logger receives client logs. Default: null logger
	Logger hclog.Logger

	// UserRefresh selects how Register and InitAuth fetch the user.
	// Default: RefreshBackground
	UserRefresh UserRefreshMode

	// Dialer overrides the websocket dialer used by WatchCollection.
	Dialer *websocket.Dialer

	// Registry tracks realtime connections. Default: a new registry per
	// client
	Registry *realtime.Registry
}

// DefaultConfig returns a Config pointing at the hosted backend.
func DefaultConfig() *Config {
	return &Config{
		BaseURL:     DefaultBaseURL,
		UserRefresh: RefreshBackground,
	}
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.BaseURL, validation.Required, validation.By(httpURL)),
		validation.Field(&c.Timeout, validation.Min(time.Duration(0))),
		validation.Field(&c.UserRefresh, validation.In(RefreshBackground, RefreshBlocking)),
	)
}

func httpURL(value interface{}) error {
	s, _ := value.(string)
	parsedURL, err := url.Parse(s)
	if err != nil {
		return fmt.Errorf("invalid URL: %w", err)
	}
	if parsedURL.Scheme != "http" && parsedURL.Scheme != "https" {
		return errors.New("must use http or https scheme")
	}
	if parsedURL.Host == "" {
		return errors.New("must include a host")
	}
	return nil
}

// NewHTTPClient creates the HTTP client used when HTTPClient is not set.
func (c *Config) NewHTTPClient() *http.Client {
	transport := &http.Transport{
		Proxy:               http.ProxyFromEnvironment,
		MaxIdleConns:        100,
		MaxIdleConnsPerHost: 10,
		IdleConnTimeout:     90 * time.Second,
	}

	return &http.Client{
		Timeout:   c.Timeout,
		Transport: transport,
	}
}
