// Package okenvelope implements the OK message: the relay's acknowledgement
// of an EVENT submission.
package okenvelope

import (
	"okra.dev/encoders/envelopes"
	"okra.dev/encoders/hex"
	"okra.dev/encoders/text"
)

// L is the label of this envelope.
const L = "OK"

// T is an OK message. EventId is the raw binary id of the event being
// acknowledged; Reason is empty on acceptance or a machine-readable prefixed
// string on rejection.
type T struct {
	EventId []byte
	OK      bool
	Reason  []byte
}

// NewFrom creates an OK message.
func NewFrom(id []byte, ok bool, reason []byte) *T {
	return &T{EventId: id, OK: ok, Reason: reason}
}

// Marshal appends the complete envelope to dst.
func (o *T) Marshal(dst []byte) []byte {
	return envelopes.Marshal(dst, L, func(dst []byte) []byte {
		dst = text.AppendQuote(dst, o.EventId, hex.EncAppend)
		dst = append(dst, ',')
		if o.OK {
			dst = append(dst, "true"...)
		} else {
			dst = append(dst, "false"...)
		}
		dst = append(dst, ',')
		dst = text.AppendQuote(dst, o.Reason, text.NostrEscape)
		return dst
	})
}
