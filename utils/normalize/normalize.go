// Package normalize renders the machine-readable prefixes that NIP-01 and
// NIP-42 define for OK and CLOSED reason strings.
package normalize

import (
	"fmt"
	"strings"
)

// R is a reason prefix such as "invalid" or "blocked".
type R string

const (
	AuthRequired R = "auth-required"
	PoW          R = "pow"
	Duplicate    R = "duplicate"
	Blocked      R = "blocked"
	RateLimited  R = "rate-limited"
	Invalid      R = "invalid"
	Error        R = "error"
	Unsupported  R = "unsupported"
	Restricted   R = "restricted"
)

// F formats a reason message with the prefix of the R, avoiding doubling the
// prefix when the message already carries one.
func (r R) F(format string, a ...any) (b []byte) {
	msg := fmt.Sprintf(format, a...)
	if strings.HasPrefix(msg, string(r)+": ") {
		return []byte(msg)
	}
	return []byte(string(r) + ": " + msg)
}

// URL normalizes a relay URL: adds a wss:// scheme when missing, lowercases
// the scheme and host, and trims a trailing slash.
func URL(u string) string {
	u = strings.TrimSpace(u)
	if u == "" {
		return u
	}
	if !strings.Contains(u, "://") {
		u = "wss://" + u
	}
	if i := strings.Index(u, "://"); i >= 0 {
		u = strings.ToLower(u[:i+3]) + u[i+3:]
	}
	return strings.TrimSuffix(u, "/")
}
