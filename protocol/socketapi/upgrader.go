package socketapi

import (
	"net/http"

	"github.com/fasthttp/websocket"
)

// Upgrader upgrades HTTP requests to websocket connections. Origin checks
// are permissive, as is usual for nostr relays.
var Upgrader = &websocket.Upgrader{
	ReadBufferSize:  4096,
	WriteBufferSize: 4096,
	CheckOrigin:     func(r *http.Request) bool { return true },
}
