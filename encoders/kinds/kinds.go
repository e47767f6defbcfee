// Package kinds is a list of kind.T used by filters.
package kinds

import (
	"okra.dev/encoders/kind"
)

// T is a list of kinds.
type T struct {
	K []*kind.T
}

// New creates a kinds list from the given kinds.
func New(ks ...*kind.T) *T { return &T{K: ks} }

// NewWithCap creates an empty kinds list with capacity for c entries.
func NewWithCap(c int) *T { return &T{K: make([]*kind.T, 0, c)} }

// Len returns the number of kinds in the list.
func (k *T) Len() int {
	if k == nil {
		return 0
	}
	return len(k.K)
}

// Contains reports whether the list includes the given kind code.
func (k *T) Contains(code uint16) bool {
	if k == nil {
		return false
	}
	for _, x := range k.K {
		if x.K == code {
			return true
		}
	}
	return false
}

// Marshal appends the JSON array of kind numbers to dst.
func (k *T) Marshal(dst []byte) []byte {
	dst = append(dst, '[')
	for i, x := range k.K {
		if i > 0 {
			dst = append(dst, ',')
		}
		dst = x.Marshal(dst)
	}
	dst = append(dst, ']')
	return dst
}

// ToUint16 returns the kind codes as a plain slice.
func (k *T) ToUint16() (out []uint16) {
	if k == nil {
		return
	}
	for _, x := range k.K {
		out = append(out, x.K)
	}
	return
}
