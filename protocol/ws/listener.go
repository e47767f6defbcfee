// Package ws implements the relay side of a nostr websocket with its
// authentication state.
package ws

import (
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/fasthttp/websocket"

	"okra.dev/app/relay/helpers"
	"okra.dev/encoders/event"
	"okra.dev/protocol/auth"
	"okra.dev/utils/atomic"
)

// WriteWait bounds how long a single socket write may stall on a slow
// client before it fails.
const WriteWait = 10 * time.Second

// MailboxSize bounds the live events queued for one connection. Overflow
// drops the event for this connection only.
const MailboxSize = 64

// Listener is one client connection. Writes are serialized through a mutex;
// the auth fields are atomics because the publisher goroutine reads them
// while the session goroutine updates them. Live deliveries go through the
// mailbox rather than writing the socket directly, so the broadcaster never
// blocks on a stalled client.
type Listener struct {
	mutex         sync.Mutex
	Conn          *websocket.Conn
	Request       *http.Request
	remote        atomic.String
	authedPubkey  atomic.Bytes
	authRequested atomic.Bool
	isAuthed      atomic.Bool
	challenge     atomic.Bytes
	pendingEvent  *event.E
	mailbox       chan []byte
}

// NewListener wraps an upgraded connection. When authRequired is set a fresh
// challenge is generated immediately so it can be sent before any traffic.
func NewListener(
	conn *websocket.Conn, req *http.Request, authRequired bool,
) (ws *Listener) {
	ws = &Listener{
		Conn:    conn,
		Request: req,
		mailbox: make(chan []byte, MailboxSize),
	}
	ws.setRemoteFromReq(req)
	if authRequired {
		ws.SetChallenge(auth.GenerateChallenge())
	}
	return
}

func (ws *Listener) setRemoteFromReq(r *http.Request) {
	rr := helpers.GetRemoteFromReq(r)
	if rr == "" {
		// no forwarding headers, the peer is the client itself
		rr = ws.Conn.NetConn().RemoteAddr().String()
	}
	ws.remote.Store(rr)
}

// Write sends a text message to the client.
func (ws *Listener) Write(p []byte) (n int, err error) {
	ws.mutex.Lock()
	defer ws.mutex.Unlock()
	_ = ws.Conn.SetWriteDeadline(time.Now().Add(WriteWait))
	err = ws.Conn.WriteMessage(websocket.TextMessage, p)
	if err != nil {
		n = len(p)
		if strings.Contains(err.Error(), "close sent") {
			ws.Close()
			err = nil
			return
		}
	}
	return
}

// WriteMessage sends a message with an explicit websocket message type, used
// by the pinger.
func (ws *Listener) WriteMessage(t int, b []byte) error {
	ws.mutex.Lock()
	defer ws.mutex.Unlock()
	_ = ws.Conn.SetWriteDeadline(time.Now().Add(WriteWait))
	return ws.Conn.WriteMessage(t, b)
}

// QueueLive offers a live event frame to the connection's mailbox without
// blocking. It reports false when the mailbox is full or absent and the
// frame was dropped.
func (ws *Listener) QueueLive(p []byte) bool {
	if ws.mailbox == nil {
		return false
	}
	select {
	case ws.mailbox <- p:
		return true
	default:
		return false
	}
}

// Mailbox is the queue of live event frames awaiting the session's writer.
func (ws *Listener) Mailbox() <-chan []byte { return ws.mailbox }

// RealRemote returns the client address, honouring forwarding headers.
func (ws *Listener) RealRemote() string { return ws.remote.Load() }

// Req returns the http.Request that opened the connection.
func (ws *Listener) Req() *http.Request { return ws.Request }

// Close closes the underlying connection.
func (ws *Listener) Close() (err error) { return ws.Conn.Close() }

// IsAuthed reports whether the client has completed authentication.
func (ws *Listener) IsAuthed() bool { return ws.isAuthed.Load() }

// AuthedPubkey returns the authenticated pubkey, or nil.
func (ws *Listener) AuthedPubkey() []byte { return ws.authedPubkey.Load() }

// SetAuthedPubkey records a successful authentication.
func (ws *Listener) SetAuthedPubkey(b []byte) {
	ws.isAuthed.Store(true)
	ws.authedPubkey.Store(b)
}

// Challenge returns the current auth challenge.
func (ws *Listener) Challenge() []byte { return ws.challenge.Load() }

// SetChallenge replaces the auth challenge.
func (ws *Listener) SetChallenge(b []byte) { ws.challenge.Store(b) }

// AuthRequested reports whether an AUTH challenge has been sent to the
// client.
func (ws *Listener) AuthRequested() bool { return ws.authRequested.Load() }

// RequestAuth records that a challenge has been sent.
func (ws *Listener) RequestAuth() { ws.authRequested.Store(true) }

// SetPendingEvent parks an event submitted before authentication so it can
// be processed once the client authenticates.
func (ws *Listener) SetPendingEvent(ev *event.E) { ws.pendingEvent = ev }

// GetPendingEvent returns and clears the parked event.
func (ws *Listener) GetPendingEvent() (ev *event.E) {
	ev = ws.pendingEvent
	ws.pendingEvent = nil
	return
}
