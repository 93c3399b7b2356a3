package realtime

import (
	"context"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

const closeWriteWait = time.Second

// Connection is a realtime subscription to one collection.
type Connection struct {
	// Name identifies the connection in a Registry. Names are not unique.
	Name string

	// ID is unique per connection.
	ID string

	// Collection is the watched collection.
	Collection string

	mu     sync.Mutex
	conn   *websocket.Conn
	cancel context.CancelFunc
	closed bool
	done   chan struct{}
}

func newConnection(id, name, collection string, cancel context.CancelFunc) *Connection {
	return &Connection{
		Name:       name,
		ID:         id,
		Collection: collection,
		cancel:     cancel,
		done:       make(chan struct{}),
	}
}

// Close closes the socket if it is open and marks the connection closed. A
// dial still in progress is abandoned. Calling Close more than once is a
// no-op.
func (c *Connection) Close() error {
	_, err := c.shutdown()
	return err
}

// shutdown is Close that also reports whether this call did the closing.
func (c *Connection) shutdown() (bool, error) {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return false, nil
	}
	c.closed = true
	conn := c.conn
	c.mu.Unlock()

	c.cancel()
	if conn == nil {
		return true, nil
	}

	_ = conn.WriteControl(
		websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
		time.Now().Add(closeWriteWait),
	)
	return true, conn.Close()
}

// Closed reports whether the connection has been closed. A connection
// whose read loop has ended counts as closed.
func (c *Connection) Closed() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.closed
}

// Done is closed when the connection stops delivering events, either
// because the dial failed, the server went away or Close was called.
func (c *Connection) Done() <-chan struct{} {
	return c.done
}

// attach stores the dialed socket. It returns false if the connection was
// closed while dialing, in which case the caller owns conn and must close
// it.
func (c *Connection) attach(conn *websocket.Conn) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return false
	}
	c.conn = conn
	return true
}
