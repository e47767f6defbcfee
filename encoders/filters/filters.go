// Package filters is the list of filter.F carried by a REQ: an event matches
// the subscription when it matches any one of the filters.
package filters

import (
	"okra.dev/encoders/event"
	"okra.dev/encoders/filter"
)

// T is a list of filters.
type T struct {
	F []*filter.F
}

// New creates a filter list from the given filters.
func New(fs ...*filter.F) *T { return &T{F: fs} }

// Len returns the number of filters in the list.
func (f *T) Len() int {
	if f == nil {
		return 0
	}
	return len(f.F)
}

// Match reports whether the event matches at least one filter in the list.
func (f *T) Match(ev *event.E) bool {
	if f == nil {
		return false
	}
	for _, x := range f.F {
		if x.Matches(ev) {
			return true
		}
	}
	return false
}

// HasAuthors reports whether every filter in the list constrains the author
// pubkey. An empty list trivially satisfies this.
func (f *T) HasAuthors() bool {
	if f == nil {
		return true
	}
	for _, x := range f.F {
		if !x.HasAuthors() {
			return false
		}
	}
	return true
}

// Authors returns the union of the author pubkeys named by all filters.
func (f *T) Authors() (out [][]byte) {
	if f == nil {
		return
	}
	for _, x := range f.F {
		if x.Authors == nil {
			continue
		}
		out = append(out, x.Authors.Field...)
	}
	return
}

// Marshal appends the JSON encodings of the filters, comma separated, to
// dst. This is the tail of a REQ envelope after the subscription id.
func (f *T) Marshal(dst []byte) []byte {
	for i, x := range f.F {
		if i > 0 {
			dst = append(dst, ',')
		}
		dst = x.Marshal(dst)
	}
	return dst
}
