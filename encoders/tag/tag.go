// Package tag implements the basic element of the tag list of an event: an
// ordered list of strings whose first element is the tag name.
package tag

import (
	"okra.dev/encoders/text"
	"okra.dev/utils"
)

// T is a single tag.
type T struct {
	Field [][]byte
}

// New creates a tag from string or byte slice fields.
func New[V string | []byte](fields ...V) *T {
	t := &T{}
	for _, f := range fields {
		t.Field = append(t.Field, []byte(f))
	}
	return t
}

// NewWithCap creates an empty tag with capacity for c fields.
func NewWithCap(c int) *T { return &T{Field: make([][]byte, 0, c)} }

// FromStrings creates a tag from a slice of strings.
func FromStrings(fields []string) *T {
	t := &T{}
	for _, f := range fields {
		t.Field = append(t.Field, []byte(f))
	}
	return t
}

// Len returns the number of fields in the tag.
func (t *T) Len() int {
	if t == nil {
		return 0
	}
	return len(t.Field)
}

// B returns the i-th field, or nil when absent.
func (t *T) B(i int) []byte {
	if t == nil || i >= len(t.Field) {
		return nil
	}
	return t.Field[i]
}

// Key returns the tag name (first field).
func (t *T) Key() []byte { return t.B(0) }

// Value returns the tag value (second field).
func (t *T) Value() []byte { return t.B(1) }

// Append adds fields to the tag.
func (t *T) Append(fields ...[]byte) *T {
	t.Field = append(t.Field, fields...)
	return t
}

// Contains reports whether any field of the tag equals v.
func (t *T) Contains(v []byte) bool {
	if t == nil {
		return false
	}
	for _, f := range t.Field {
		if utils.FastEqual(f, v) {
			return true
		}
	}
	return false
}

// StartsWith reports whether the tag's leading fields equal all fields of the
// prefix tag. A nil field in the prefix matches any value at that position.
func (t *T) StartsWith(prefix *T) bool {
	if t == nil || prefix == nil || t.Len() < prefix.Len() {
		return false
	}
	for i, f := range prefix.Field {
		if f == nil {
			continue
		}
		if !utils.FastEqual(t.Field[i], f) {
			return false
		}
	}
	return true
}

// ToStringSlice renders the tag fields as strings.
func (t *T) ToStringSlice() (out []string) {
	if t == nil {
		return
	}
	for _, f := range t.Field {
		out = append(out, string(f))
	}
	return
}

// Marshal appends the JSON array rendering of the tag to dst, applying the
// canonical escaping rules to every field.
func (t *T) Marshal(dst []byte) []byte {
	dst = append(dst, '[')
	for i, f := range t.Field {
		if i > 0 {
			dst = append(dst, ',')
		}
		dst = text.AppendQuote(dst, f, text.NostrEscape)
	}
	dst = append(dst, ']')
	return dst
}
