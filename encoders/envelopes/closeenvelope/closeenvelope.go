// Package closeenvelope implements the CLOSE message that cancels a
// subscription.
package closeenvelope

import (
	"encoding/json"

	"okra.dev/utils/errorf"
)

// L is the label of this envelope.
const L = "CLOSE"

// T is a parsed CLOSE.
type T struct {
	Subscription []byte
}

// New creates an empty T ready to unmarshal into.
func New() *T { return &T{} }

// Unmarshal decodes the array elements that follow the label.
func (c *T) Unmarshal(rest []json.RawMessage) (err error) {
	if len(rest) != 1 {
		return errorf.D("CLOSE requires 1 element, got %d", len(rest))
	}
	var sub string
	if err = json.Unmarshal(rest[0], &sub); err != nil {
		return errorf.D("CLOSE subscription id is not a string")
	}
	c.Subscription = []byte(sub)
	return nil
}
