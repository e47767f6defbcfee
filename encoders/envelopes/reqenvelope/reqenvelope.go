// Package reqenvelope implements the REQ message: a subscription id followed
// by one or more filters.
package reqenvelope

import (
	"encoding/json"

	"okra.dev/encoders/filter"
	"okra.dev/encoders/filters"
	"okra.dev/utils/errorf"
)

// L is the label of this envelope.
const L = "REQ"

// T is a parsed REQ.
type T struct {
	Subscription []byte
	Filters      *filters.T
}

// New creates an empty T ready to unmarshal into.
func New() *T { return &T{Filters: filters.New()} }

// Unmarshal decodes the array elements that follow the label.
func (r *T) Unmarshal(rest []json.RawMessage) (err error) {
	if len(rest) < 2 {
		return errorf.D("REQ requires at least 2 elements, got %d", len(rest))
	}
	var sub string
	if err = json.Unmarshal(rest[0], &sub); err != nil {
		return errorf.D("REQ subscription id is not a string")
	}
	if len(sub) == 0 {
		return errorf.D("REQ subscription id is empty")
	}
	r.Subscription = []byte(sub)
	for _, raw := range rest[1:] {
		f := filter.New()
		if err = f.Unmarshal(raw); err != nil {
			return
		}
		r.Filters.F = append(r.Filters.F, f)
	}
	return nil
}
