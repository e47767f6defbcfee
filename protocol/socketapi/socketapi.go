// Package socketapi is the websocket face of the relay: it upgrades
// connections, runs the per-session read loop and dispatches the protocol
// messages.
package socketapi

import (
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/fasthttp/websocket"

	"okra.dev/app/relay/helpers"
	"okra.dev/encoders/envelopes/authenvelope"
	"okra.dev/interfaces/server"
	"okra.dev/protocol/ws"
	"okra.dev/utils/chk"
	"okra.dev/utils/context"
	"okra.dev/utils/log"
	"okra.dev/utils/units"
)

const (
	DefaultWriteWait      = 10 * time.Second
	DefaultPongWait       = 60 * time.Second
	DefaultFirstPingWait  = 30 * time.Second
	DefaultPingWait       = 50 * time.Second
	DefaultMaxMessageSize = 1 * units.Mb
)

// A is one websocket session: its context, its connection, the server it
// serves and the subscription registry shared by all sessions. handlerMu
// holds the mailbox writer off the socket while a frame handler runs, so a
// REQ replay reaches its EOSE before any queued live event is written.
type A struct {
	Ctx context.T
	*ws.Listener
	server.I
	Subs      *S
	handlerMu sync.Mutex
}

// Serve upgrades the request and runs the session until the client goes
// away or the server shuts down. Messages are handled synchronously so the
// responses to each frame appear in the order the frames arrived.
func (a *A) Serve(w http.ResponseWriter, r *http.Request, s server.I) {
	var err error
	var cancel context.F
	a.Ctx, cancel = context.Cancel(s.Context())
	var conn *websocket.Conn
	conn, err = Upgrader.Upgrade(w, r, nil)
	if chk.E(err) {
		log.E.F("failed to upgrade websocket: %v", err)
		return
	}
	a.Listener = ws.NewListener(conn, r, a.I.AuthRequired())
	defer func() {
		cancel()
		a.Subs.RemoveListener(a.Listener)
		chk.E(a.Listener.Close())
	}()
	conn.SetReadLimit(DefaultMaxMessageSize)
	chk.E(conn.SetReadDeadline(time.Now().Add(DefaultPongWait)))
	conn.SetPongHandler(
		func(string) error {
			chk.E(conn.SetReadDeadline(time.Now().Add(DefaultPongWait)))
			return nil
		},
	)
	if a.I.AuthRequired() {
		log.T.F("requesting auth from client at %s", a.Listener.RealRemote())
		a.Listener.RequestAuth()
		challenge := authenvelope.NewChallenge(a.Listener.Challenge())
		if _, err = a.Listener.Write(challenge.Marshal(nil)); chk.E(err) {
			return
		}
	}
	go a.Pinger(a.Ctx, cancel)
	go a.deliverLive(a.Ctx)
	var message []byte
	var typ int
	for {
		select {
		case <-a.Ctx.Done():
			return
		default:
		}
		if typ, message, err = conn.ReadMessage(); err != nil {
			if strings.Contains(
				err.Error(), "use of closed network connection",
			) {
				return
			}
			if websocket.IsUnexpectedCloseError(
				err,
				websocket.CloseNormalClosure,
				websocket.CloseGoingAway,
				websocket.CloseNoStatusReceived,
				websocket.CloseAbnormalClosure,
			) {
				log.W.F(
					"unexpected close error from %s: %v",
					helpers.GetRemoteFromReq(r), err,
				)
			}
			return
		}
		if typ == websocket.PingMessage {
			chk.E(a.Listener.WriteMessage(websocket.PongMessage, nil))
			continue
		}
		a.handlerMu.Lock()
		a.HandleMessage(message)
		a.handlerMu.Unlock()
	}
}

// deliverLive drains the session mailbox onto the socket. It takes the
// handler lock per frame, so live events queued while a handler is running
// are written only after that handler's own replies.
func (a *A) deliverLive(c context.T) {
	for {
		select {
		case <-c.Done():
			return
		case b := <-a.Listener.Mailbox():
			a.handlerMu.Lock()
			_, err := a.Listener.Write(b)
			a.handlerMu.Unlock()
			if err != nil {
				log.T.F("live write to %s failed: %v", a.RealRemote(), err)
			}
		}
	}
}

// send writes a marshaled envelope to the client.
func (a *A) send(b []byte) (err error) {
	_, err = a.Listener.Write(b)
	return
}
