// Package atomic adds a Bytes type to the go.uber.org/atomic collection and
// re-exports the wrappers the relay uses for per-connection state.
package atomic

import (
	uatomic "go.uber.org/atomic"
)

type (
	// Bool is go.uber.org/atomic.Bool.
	Bool = uatomic.Bool
	// String is go.uber.org/atomic.String.
	String = uatomic.String
	// Int64 is go.uber.org/atomic.Int64.
	Int64 = uatomic.Int64
)

// Bytes is an atomically replaceable byte slice. The stored slice must be
// treated as immutable by all readers.
type Bytes struct {
	v uatomic.Value
}

// Load returns the stored slice, or nil when nothing has been stored.
func (b *Bytes) Load() []byte {
	if v := b.v.Load(); v != nil {
		return v.([]byte)
	}
	return nil
}

// Store replaces the stored slice.
func (b *Bytes) Store(p []byte) {
	if p == nil {
		p = []byte{}
	}
	b.v.Store(p)
}
