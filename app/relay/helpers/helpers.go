// Package helpers holds small request utilities shared by the HTTP and
// websocket layers.
package helpers

import (
	"net/http"
	"strings"
)

// GetRemoteFromReq retrieves the originating client address from a request,
// honouring the RFC 7239 Forwarded header first, then X-Forwarded-For, then
// the socket peer.
func GetRemoteFromReq(r *http.Request) (rr string) {
	forwarded := r.Header.Get("Forwarded")
	if forwarded != "" {
		// Forwarded: by=<id>;for=<id>;host=<host>;proto=<http|https>
		parts := strings.Split(forwarded, ";")
		for _, part := range parts {
			part = strings.TrimSpace(part)
			if strings.HasPrefix(part, "for=") {
				forValue := strings.TrimPrefix(part, "for=")
				forValue = strings.Trim(forValue, "\"")
				// IPv6 addresses come enclosed in square brackets
				forValue = strings.Trim(forValue, "[]")
				return forValue
			}
		}
	}
	rem := r.Header.Get("X-Forwarded-For")
	if rem == "" {
		rr = r.RemoteAddr
	} else {
		splitted := strings.Split(rem, " ")
		if len(splitted) == 1 {
			rr = splitted[0]
		}
		if len(splitted) == 2 {
			rr = splitted[1]
		}
	}
	return
}
