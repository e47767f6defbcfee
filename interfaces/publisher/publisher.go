// Package publisher defines the fan-out interface through which accepted
// events reach live subscriptions.
package publisher

import (
	"okra.dev/encoders/event"
	"okra.dev/protocol/ws"
)

// I delivers accepted events to whatever consumers the implementation
// manages. Implementations must be safe for concurrent use.
type I interface {
	// Deliver hands an accepted event to the publisher. It must not block
	// on slow consumers. The origin connection, when not nil, is excluded
	// from delivery; the publisher already has its OK.
	Deliver(ev *event.E, origin *ws.Listener)
	// Type identifies the publisher for logging.
	Type() string
}
