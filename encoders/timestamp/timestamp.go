// Package timestamp wraps the unix second timestamps carried in the
// created_at field of events and the since/until fields of filters.
package timestamp

import (
	"strconv"
	"time"
)

// T is a unix timestamp in seconds.
type T struct {
	V int64
}

// New creates a timestamp from a unix seconds value.
func New(v int64) *T { return &T{V: v} }

// Now returns the current time as a timestamp.
func Now() *T { return &T{V: time.Now().Unix()} }

// FromUnix is an alias of New matching the importing style of callers that
// already have a unix int64.
func FromUnix(v int64) *T { return &T{V: v} }

// I64 returns the timestamp as int64 unix seconds.
func (t *T) I64() int64 {
	if t == nil {
		return 0
	}
	return t.V
}

// Int returns the timestamp as an int.
func (t *T) Int() int { return int(t.I64()) }

// Time converts the timestamp to a time.Time.
func (t *T) Time() time.Time { return time.Unix(t.I64(), 0) }

// Marshal appends the decimal rendering, with no fractional part, to dst.
func (t *T) Marshal(dst []byte) []byte {
	return strconv.AppendInt(dst, t.I64(), 10)
}
