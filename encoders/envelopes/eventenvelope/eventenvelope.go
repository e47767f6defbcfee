// Package eventenvelope implements the EVENT message in both directions: a
// client submitting an event, and the relay delivering one to a subscription.
package eventenvelope

import (
	"encoding/json"

	"okra.dev/encoders/envelopes"
	"okra.dev/encoders/event"
	"okra.dev/encoders/text"
	"okra.dev/utils/errorf"
)

// L is the label of this envelope.
const L = "EVENT"

// Submission is a client-to-relay EVENT: just the event object.
type Submission struct {
	E *event.E
}

// NewSubmission creates an empty Submission ready to unmarshal into.
func NewSubmission() *Submission { return &Submission{E: event.New()} }

// Unmarshal decodes the array elements that follow the label.
func (s *Submission) Unmarshal(rest []json.RawMessage) (err error) {
	if len(rest) != 1 {
		return errorf.D("EVENT requires 1 element, got %d", len(rest))
	}
	return s.E.Unmarshal(rest[0])
}

// Result is a relay-to-client EVENT: subscription id followed by the event.
type Result struct {
	Subscription []byte
	E            *event.E
}

// NewResult creates a Result for the given subscription and event.
func NewResult(sub []byte, ev *event.E) *Result {
	return &Result{Subscription: sub, E: ev}
}

// Marshal appends the complete envelope to dst.
func (r *Result) Marshal(dst []byte) []byte {
	return envelopes.Marshal(dst, L, func(dst []byte) []byte {
		dst = text.AppendQuote(dst, r.Subscription, text.NostrEscape)
		dst = append(dst, ',')
		dst = r.E.Marshal(dst)
		return dst
	})
}
