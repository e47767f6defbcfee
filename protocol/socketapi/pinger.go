package socketapi

import (
	"time"

	"github.com/fasthttp/websocket"

	"okra.dev/utils/context"
	"okra.dev/utils/log"
)

// Pinger keeps the connection alive: the first ping goes out after
// DefaultFirstPingWait, later ones every DefaultPingWait, each inside the
// client's pong deadline. A failed write ends the session.
func (a *A) Pinger(ctx context.T, cancel context.F) {
	timer := time.NewTimer(DefaultFirstPingWait)
	defer func() {
		cancel()
		timer.Stop()
		_ = a.Listener.Close()
	}()
	var err error
	for {
		select {
		case <-timer.C:
			err = a.Listener.Conn.WriteControl(
				websocket.PingMessage, nil,
				time.Now().Add(DefaultWriteWait),
			)
			if err != nil {
				log.D.F(
					"error writing ping to %s: %v; closing websocket",
					a.Listener.RealRemote(), err,
				)
				return
			}
			timer.Reset(DefaultPingWait)
		case <-ctx.Done():
			return
		}
	}
}
