// Package realtime delivers best-effort events to live subscribers. The
// transactional core depends only on the Broadcaster capability; delivery
// failures are swallowed and never reach the caller.
package realtime

// Broadcaster publishes an event with a payload to a named room. Publish
// never returns an error: a broadcast failure must not fail the operation
// that triggered it.
type Broadcaster interface {
	Publish(room, event string, payload interface{})
}

// NopBroadcaster discards all events.
type NopBroadcaster struct{}

func (NopBroadcaster) Publish(room, event string, payload interface{}) {}
