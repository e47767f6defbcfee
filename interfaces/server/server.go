// Package server defines what the websocket protocol layer needs from the
// relay application, keeping the two free of an import cycle.
package server

import (
	"net/http"

	"okra.dev/encoders/event"
	"okra.dev/encoders/filters"
	"okra.dev/interfaces/publisher"
	"okra.dev/interfaces/store"
	"okra.dev/protocol/ws"
	"okra.dev/utils/context"
)

// I is the application facade handed to each websocket session.
type I interface {
	// Context is the server's root context; sessions end when it does.
	Context() context.T
	// Storage returns the event store.
	Storage() store.I
	// Publisher returns the live-subscription fan-out.
	Publisher() publisher.I
	// AuthRequired reports whether sessions must authenticate before
	// publishing or subscribing.
	AuthRequired() bool
	// Authorized reports whether the given pubkey may publish here. With an
	// empty allow list every valid pubkey is authorized.
	Authorized(pubkey []byte) bool
	// AcceptEvent decides whether a verified event submission from the
	// given authed pubkey may be stored and broadcast.
	AcceptEvent(c context.T, ev *event.E, remote string, authedPubkey []byte) (accept bool, notice string)
	// AddEvent stores the event per its kind's storage policy and hands it
	// to the publisher, excluding the origin connection from delivery.
	// Duplicates report accepted without being rewritten.
	AddEvent(c context.T, ev *event.E, origin *ws.Listener) (accepted bool, err error)
	// AcceptReq decides whether a subscription request may be registered.
	AcceptReq(c context.T, hr *http.Request, ff *filters.T, authedPubkey []byte) (allowed bool, notice string)
	// ServiceURL is the canonical websocket URL of this relay as seen by
	// the client making the given request, used to validate auth events.
	ServiceURL(req *http.Request) string
}
