// Package authenvelope implements the AUTH message in both directions: the
// relay's challenge and the client's signed response event.
package authenvelope

import (
	"encoding/json"

	"okra.dev/encoders/envelopes"
	"okra.dev/encoders/event"
	"okra.dev/encoders/text"
	"okra.dev/utils/errorf"
)

// L is the label of this envelope.
const L = "AUTH"

// Challenge is a relay-to-client AUTH carrying the challenge string the
// client must echo in its response event.
type Challenge struct {
	Challenge []byte
}

// NewChallenge creates a Challenge envelope.
func NewChallenge(c []byte) *Challenge { return &Challenge{Challenge: c} }

// Marshal appends the complete envelope to dst.
func (c *Challenge) Marshal(dst []byte) []byte {
	return envelopes.Marshal(dst, L, func(dst []byte) []byte {
		return text.AppendQuote(dst, c.Challenge, text.NostrEscape)
	})
}

// Response is a client-to-relay AUTH carrying the signed authentication
// event.
type Response struct {
	E *event.E
}

// NewResponse creates an empty Response ready to unmarshal into.
func NewResponse() *Response { return &Response{E: event.New()} }

// Unmarshal decodes the array elements that follow the label.
func (r *Response) Unmarshal(rest []json.RawMessage) (err error) {
	if len(rest) != 1 {
		return errorf.D("AUTH requires 1 element, got %d", len(rest))
	}
	return r.E.Unmarshal(rest[0])
}
