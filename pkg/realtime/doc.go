// Package realtime subscribes to collection change events over a websocket.
//
// A Watcher dials /realtime/collections/{collection} on the backend, sends
// the API key as the first frame and delivers every decoded event to a
// callback until the connection is closed. Connections are tracked by name
// in a Registry so they can be closed later.
//
// There is no reconnect: a dropped connection stays dropped.
package realtime
