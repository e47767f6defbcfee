// Package tags implements the tag list of an event.
package tags

import (
	"okra.dev/encoders/tag"
)

// T is an ordered list of tags.
type T struct {
	List []*tag.T
}

// New creates a tag list from the given tags.
func New(ts ...*tag.T) *T { return &T{List: ts} }

// FromStringsSlice converts a slice of string slices into a tag list.
func FromStringsSlice(s [][]string) *T {
	t := &T{}
	for _, fields := range s {
		t.List = append(t.List, tag.FromStrings(fields))
	}
	return t
}

// Len returns the number of tags in the list.
func (t *T) Len() int {
	if t == nil {
		return 0
	}
	return len(t.List)
}

// AppendTags adds tags to the list.
func (t *T) AppendTags(ts ...*tag.T) *T {
	t.List = append(t.List, ts...)
	return t
}

// GetFirst returns the first tag whose leading fields match the prefix, or
// nil when there is none.
func (t *T) GetFirst(prefix *tag.T) *tag.T {
	if t == nil {
		return nil
	}
	for _, x := range t.List {
		if x.StartsWith(prefix) {
			return x
		}
	}
	return nil
}

// GetAll returns every tag whose leading fields match the prefix.
func (t *T) GetAll(prefix *tag.T) (out []*tag.T) {
	if t == nil {
		return
	}
	for _, x := range t.List {
		if x.StartsWith(prefix) {
			out = append(out, x)
		}
	}
	return
}

// ToSliceOfTags returns the underlying tag slice.
func (t *T) ToSliceOfTags() []*tag.T {
	if t == nil {
		return nil
	}
	return t.List
}

// ToStringsSlice renders the list as a slice of string slices. The result is
// never nil so it marshals as [] rather than null.
func (t *T) ToStringsSlice() (out [][]string) {
	out = [][]string{}
	if t == nil {
		return
	}
	for _, x := range t.List {
		fields := x.ToStringSlice()
		if fields == nil {
			fields = []string{}
		}
		out = append(out, fields)
	}
	return
}

// Marshal appends the JSON array-of-arrays rendering of the list to dst.
func (t *T) Marshal(dst []byte) []byte {
	dst = append(dst, '[')
	if t != nil {
		for i, x := range t.List {
			if i > 0 {
				dst = append(dst, ',')
			}
			dst = x.Marshal(dst)
		}
	}
	dst = append(dst, ']')
	return dst
}
