package cocobase

import (
	"context"

	"github.com/cocobase/cocobase-go/pkg/realtime"
)

// WatchCollection subscribes to changes in collection and returns the new
// connection without waiting for the socket to open. The connection is
// added to the client's registry under opts.Name, or "watch-{collection}".
func (c *Client) WatchCollection(ctx context.Context, collection string, handler realtime.Handler, opts realtime.Options) *realtime.Connection {
	return c.watcher.Watch(ctx, collection, handler, opts)
}

// CloseConnection closes the first registered connection called name. An
// unknown name is logged and ignored.
func (c *Client) CloseConnection(name string) {
	c.registry.Close(name)
}
