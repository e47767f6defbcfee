// Package noticeenvelope implements the NOTICE message: a human-readable
// string the relay sends outside the scope of any one request.
package noticeenvelope

import (
	"okra.dev/encoders/envelopes"
	"okra.dev/encoders/text"
)

// L is the label of this envelope.
const L = "NOTICE"

// T is a NOTICE message.
type T struct {
	Message []byte
}

// NewFrom creates a NOTICE with the given message.
func NewFrom(msg []byte) *T { return &T{Message: msg} }

// Marshal appends the complete envelope to dst.
func (n *T) Marshal(dst []byte) []byte {
	return envelopes.Marshal(dst, L, func(dst []byte) []byte {
		return text.AppendQuote(dst, n.Message, text.NostrEscape)
	})
}
