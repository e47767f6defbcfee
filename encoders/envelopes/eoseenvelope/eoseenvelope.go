// Package eoseenvelope implements the EOSE message that marks the end of the
// stored-event replay for a subscription.
package eoseenvelope

import (
	"okra.dev/encoders/envelopes"
	"okra.dev/encoders/text"
)

// L is the label of this envelope.
const L = "EOSE"

// T is an EOSE message.
type T struct {
	Subscription []byte
}

// NewFrom creates an EOSE for the given subscription.
func NewFrom(sub []byte) *T { return &T{Subscription: sub} }

// Marshal appends the complete envelope to dst.
func (e *T) Marshal(dst []byte) []byte {
	return envelopes.Marshal(dst, L, func(dst []byte) []byte {
		return text.AppendQuote(dst, e.Subscription, text.NostrEscape)
	})
}
