// Package envelopes provides the framing shared by all nostr wire messages:
// a JSON array whose first element is an uppercase label string.
package envelopes

import (
	"encoding/json"

	"okra.dev/encoders/text"
	"okra.dev/utils/errorf"
)

// Marshal appends a complete envelope to dst: the label, then whatever the
// callback writes after the comma, then the closing bracket.
func Marshal(dst []byte, label string, fn func(dst []byte) []byte) []byte {
	dst = append(dst, '[')
	dst = text.AppendQuote(dst, []byte(label), text.NostrEscape)
	dst = append(dst, ',')
	dst = fn(dst)
	dst = append(dst, ']')
	return dst
}

// Identify splits an inbound frame into its label and the remaining array
// elements. A frame that is not a JSON array with a leading string is an
// error.
func Identify(b []byte) (label string, rest []json.RawMessage, err error) {
	var elems []json.RawMessage
	if err = json.Unmarshal(b, &elems); err != nil {
		err = errorf.D("not a JSON array: %s", err.Error())
		return
	}
	if len(elems) < 1 {
		err = errorf.D("empty message array")
		return
	}
	if err = json.Unmarshal(elems[0], &label); err != nil {
		err = errorf.D("message label is not a string")
		return
	}
	rest = elems[1:]
	return
}
