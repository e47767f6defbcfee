// Package eventid wraps the 32 byte SHA256 event identifier.
package eventid

import (
	"okra.dev/encoders/hex"
	"okra.dev/utils/errorf"
)

// Len is the length of an event id in bytes.
const Len = 32

// T is an event identifier.
type T struct {
	b []byte
}

// NewWith wraps existing id bytes without validation.
func NewWith(b []byte) *T { return &T{b: b} }

// NewFromBytes validates the length and wraps the id bytes.
func NewFromBytes(b []byte) (t *T, err error) {
	if len(b) != Len {
		err = errorf.E("event id must be %d bytes, got %d", Len, len(b))
		return
	}
	t = &T{b: b}
	return
}

// Bytes returns the raw id bytes.
func (t *T) Bytes() []byte {
	if t == nil {
		return nil
	}
	return t.b
}

// String returns the id as lowercase hex.
func (t *T) String() string { return hex.Enc(t.Bytes()) }
