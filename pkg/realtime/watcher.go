package realtime

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/hashicorp/go-hclog"
)

// Options configures a single subscription.
type Options struct {
	// Name registers the connection under this name.
	// Default: "watch-{collection}"
	Name string

	// OnOpen is called after the socket is open and the API key was sent.
	OnOpen func()

	// OnError is called when the dial or a read fails. It is not called for
	// failures caused by Close.
	OnError func(error)
}

// WatcherConfig holds the settings shared by all subscriptions of a client.
type WatcherConfig struct {
	// BaseURL is the HTTP base URL of the backend. The websocket URL is
	// derived by replacing its leading "http" with "ws".
	BaseURL string

	// APIKey is sent as the first frame of every connection.
	APIKey string

	// Dialer overrides websocket.DefaultDialer.
	Dialer *websocket.Dialer

	// Registry receives every new connection. Optional.
	Registry *Registry

	Logger hclog.Logger
}

// Watcher opens realtime subscriptions.
type Watcher struct {
	baseURL  string
	apiKey   string
	dialer   *websocket.Dialer
	registry *Registry
	logger   hclog.Logger
}

// NewWatcher creates a Watcher from cfg.
func NewWatcher(cfg WatcherConfig) *Watcher {
	dialer := cfg.Dialer
	if dialer == nil {
		dialer = websocket.DefaultDialer
	}
	logger := cfg.Logger
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	return &Watcher{
		baseURL:  strings.TrimSuffix(cfg.BaseURL, "/"),
		apiKey:   cfg.APIKey,
		dialer:   dialer,
		registry: cfg.Registry,
		logger:   logger.Named("realtime"),
	}
}

// SocketURL returns the websocket URL for collection.
func (w *Watcher) SocketURL(collection string) string {
	return strings.Replace(w.baseURL, "http", "ws", 1) +
		"/realtime/collections/" + url.PathEscape(collection)
}

// Watch subscribes to changes in collection and returns immediately. The
// dial and the read loop run in a background goroutine; handler is called
// once per event in arrival order. Cancelling ctx has the same effect as
// closing the returned connection.
func (w *Watcher) Watch(ctx context.Context, collection string, handler Handler, opts Options) *Connection {
	name := opts.Name
	if name == "" {
		name = fmt.Sprintf("watch-%s", collection)
	}

	connCtx, cancel := context.WithCancel(ctx)
	conn := newConnection(uuid.NewString(), name, collection, cancel)
	if w.registry != nil {
		w.registry.Add(conn)
	}

	go w.run(connCtx, conn, handler, opts)
	return conn
}

func (w *Watcher) run(ctx context.Context, conn *Connection, handler Handler, opts Options) {
	defer close(conn.done)
	defer conn.Close()

	logger := w.logger.With("name", conn.Name, "id", conn.ID, "collection", conn.Collection)
	socketURL := w.SocketURL(conn.Collection)

	ws, resp, err := w.dialer.DialContext(ctx, socketURL, nil)
	if resp != nil && resp.Body != nil {
		_ = resp.Body.Close()
	}
	if err != nil {
		if conn.Closed() || ctx.Err() != nil {
			return
		}
		logger.Error("error connecting to realtime endpoint", "url", socketURL, "error", err)
		w.reportError(opts, fmt.Errorf("failed to connect to %s: %w", socketURL, err))
		return
	}

	if !conn.attach(ws) {
		_ = ws.Close()
		return
	}

	// Unblock the read loop when the context ends.
	go func() {
		<-ctx.Done()
		_ = conn.Close()
	}()

	auth, err := json.Marshal(map[string]string{"api_key": w.apiKey})
	if err != nil {
		w.reportError(opts, fmt.Errorf("failed to encode auth frame: %w", err))
		return
	}
	if err := ws.WriteMessage(websocket.TextMessage, auth); err != nil {
		if !conn.Closed() {
			logger.Error("error sending auth frame", "error", err)
			w.reportError(opts, fmt.Errorf("failed to send auth frame: %w", err))
		}
		return
	}

	logger.Info("websocket connection opened")
	if opts.OnOpen != nil {
		opts.OnOpen()
	}

	for {
		_, msg, err := ws.ReadMessage()
		if err != nil {
			w.handleReadError(logger, conn, opts, err)
			return
		}

		event, docErr, err := parseEvent(msg)
		if err != nil {
			logger.Warn("skipping undecodable event", "error", err)
			continue
		}
		if docErr != nil {
			logger.Debug("delivering event with partial document", "event", event.Event, "error", docErr)
		}
		if handler != nil {
			handler(event)
		}
	}
}

func (w *Watcher) handleReadError(logger hclog.Logger, conn *Connection, opts Options, err error) {
	if conn.Closed() {
		logger.Debug("websocket connection closed")
		return
	}

	var closeErr *websocket.CloseError
	if errors.As(err, &closeErr) &&
		(closeErr.Code == websocket.CloseNormalClosure || closeErr.Code == websocket.CloseGoingAway) {
		logger.Info("websocket connection closed by server", "code", closeErr.Code)
		return
	}

	logger.Error("error reading from websocket", "error", err)
	w.reportError(opts, fmt.Errorf("realtime connection failed: %w", err))
}

func (w *Watcher) reportError(opts Options, err error) {
	if opts.OnError != nil {
		opts.OnError(err)
	}
}
