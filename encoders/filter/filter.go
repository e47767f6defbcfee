// Package filter implements the nostr subscription filter: the criteria a
// client supplies in a REQ to select which events it wants.
package filter

import (
	"bytes"
	"encoding/json"

	"okra.dev/encoders/event"
	"okra.dev/encoders/hex"
	"okra.dev/encoders/kind"
	"okra.dev/encoders/kinds"
	"okra.dev/encoders/tag"
	"okra.dev/encoders/tags"
	"okra.dev/encoders/text"
	"okra.dev/encoders/timestamp"
	"okra.dev/utils/errorf"
)

// F is a subscription filter. Every non-nil field must match for an event to
// pass; values within a field are alternatives. Ids and Authors hold raw
// binary (decoded from hex), Tags holds one tag per queried tag name whose
// first field is the "#x" key and remaining fields are the accepted values.
type F struct {
	Ids     *tag.T
	Kinds   *kinds.T
	Authors *tag.T
	Tags    *tags.T
	Since   *timestamp.T
	Until   *timestamp.T
	Limit   *uint
}

// New creates a new empty filter with initialised but zero length lists.
func New() (f *F) {
	return &F{
		Ids:     tag.NewWithCap(8),
		Kinds:   kinds.NewWithCap(8),
		Authors: tag.NewWithCap(8),
		Tags:    tags.New(),
	}
}

// HasAuthors reports whether the filter constrains the author pubkey.
func (f *F) HasAuthors() bool {
	return f.Authors != nil && f.Authors.Len() > 0
}

// Matches reports whether the event satisfies every constraint of the
// filter. The Limit field is not consulted; it only bounds stored query
// results.
func (f *F) Matches(ev *event.E) bool {
	if ev == nil {
		return false
	}
	if f.Ids != nil && f.Ids.Len() > 0 && !f.Ids.Contains(ev.Id) {
		return false
	}
	if f.Kinds != nil && f.Kinds.Len() > 0 && !f.Kinds.Contains(ev.Kind.K) {
		return false
	}
	if f.Authors != nil && f.Authors.Len() > 0 && !f.Authors.Contains(ev.Pubkey) {
		return false
	}
	if f.Tags != nil {
		for _, tf := range f.Tags.ToSliceOfTags() {
			if !matchTag(tf, ev.Tags) {
				return false
			}
		}
	}
	if f.Since != nil && ev.CreatedAt.I64() < f.Since.I64() {
		return false
	}
	if f.Until != nil && ev.CreatedAt.I64() > f.Until.I64() {
		return false
	}
	return true
}

// matchTag reports whether any tag of the event has the name of the filter
// tag (its "#x" key with the # stripped) and a value equal to one of the
// filter tag's values.
func matchTag(tf *tag.T, evTags *tags.T) bool {
	if tf.Len() < 2 {
		// a tag query with no values matches nothing
		return false
	}
	name := tf.Key()
	if len(name) > 0 && name[0] == '#' {
		name = name[1:]
	}
	if evTags == nil {
		return false
	}
	for _, et := range evTags.ToSliceOfTags() {
		if et.Len() < 2 || !bytes.Equal(et.Key(), name) {
			continue
		}
		for _, want := range tf.Field[1:] {
			if bytes.Equal(et.Value(), want) {
				return true
			}
		}
	}
	return false
}

var (
	fIds     = []byte("ids")
	fKinds   = []byte("kinds")
	fAuthors = []byte("authors")
	fSince   = []byte("since")
	fUntil   = []byte("until")
	fLimit   = []byte("limit")
)

// Marshal appends the JSON encoding of the filter to dst. Only non-nil,
// non-empty fields are emitted.
func (f *F) Marshal(dst []byte) (b []byte) {
	dst = append(dst, '{')
	first := true
	comma := func() {
		if !first {
			dst = append(dst, ',')
		}
		first = false
	}
	if f.Ids != nil && f.Ids.Len() > 0 {
		comma()
		dst = text.JSONKey(dst, fIds)
		dst = marshalHexList(dst, f.Ids)
	}
	if f.Kinds != nil && f.Kinds.Len() > 0 {
		comma()
		dst = text.JSONKey(dst, fKinds)
		dst = f.Kinds.Marshal(dst)
	}
	if f.Authors != nil && f.Authors.Len() > 0 {
		comma()
		dst = text.JSONKey(dst, fAuthors)
		dst = marshalHexList(dst, f.Authors)
	}
	if f.Tags != nil {
		for _, tf := range f.Tags.ToSliceOfTags() {
			if tf.Len() < 1 {
				continue
			}
			comma()
			dst = text.JSONKey(dst, tf.Key())
			dst = append(dst, '[')
			for i, v := range tf.Field[1:] {
				if i > 0 {
					dst = append(dst, ',')
				}
				dst = text.AppendQuote(dst, v, text.NostrEscape)
			}
			dst = append(dst, ']')
		}
	}
	if f.Since != nil {
		comma()
		dst = text.JSONKey(dst, fSince)
		dst = f.Since.Marshal(dst)
	}
	if f.Until != nil {
		comma()
		dst = text.JSONKey(dst, fUntil)
		dst = f.Until.Marshal(dst)
	}
	if f.Limit != nil {
		comma()
		dst = text.JSONKey(dst, fLimit)
		dst = appendUint(dst, *f.Limit)
	}
	dst = append(dst, '}')
	b = dst
	return
}

func marshalHexList(dst []byte, t *tag.T) []byte {
	dst = append(dst, '[')
	for i, v := range t.Field {
		if i > 0 {
			dst = append(dst, ',')
		}
		dst = text.AppendQuote(dst, v, hex.EncAppend)
	}
	dst = append(dst, ']')
	return dst
}

func appendUint(dst []byte, u uint) []byte {
	if u == 0 {
		return append(dst, '0')
	}
	var buf [20]byte
	i := len(buf)
	for u > 0 {
		i--
		buf[i] = byte('0' + u%10)
		u /= 10
	}
	return append(dst, buf[i:]...)
}

// Unmarshal decodes a filter object. Unknown keys other than single-letter
// "#x" tag queries are rejected, hex lists must decode to 32 byte values,
// and kinds must lie in [0,65535].
func (f *F) Unmarshal(b []byte) (err error) {
	var raw map[string]json.RawMessage
	if err = json.Unmarshal(b, &raw); err != nil {
		return errorf.D("malformed filter: %s", err.Error())
	}
	*f = *New()
	for k, v := range raw {
		switch k {
		case "ids":
			if err = decodeHexList(f.Ids, v, "ids"); err != nil {
				return
			}
		case "authors":
			if err = decodeHexList(f.Authors, v, "authors"); err != nil {
				return
			}
		case "kinds":
			var ks []int64
			if err = json.Unmarshal(v, &ks); err != nil {
				return errorf.D("malformed filter field: kinds")
			}
			for _, n := range ks {
				if n < 0 || n > 65535 {
					return errorf.D("malformed filter field: kind %d out of range", n)
				}
				f.Kinds.K = append(f.Kinds.K, kind.New(uint16(n)))
			}
		case "since":
			var n int64
			if err = json.Unmarshal(v, &n); err != nil {
				return errorf.D("malformed filter field: since")
			}
			f.Since = timestamp.New(n)
		case "until":
			var n int64
			if err = json.Unmarshal(v, &n); err != nil {
				return errorf.D("malformed filter field: until")
			}
			f.Until = timestamp.New(n)
		case "limit":
			var n int64
			if err = json.Unmarshal(v, &n); err != nil || n < 0 {
				return errorf.D("malformed filter field: limit")
			}
			u := uint(n)
			f.Limit = &u
		default:
			if len(k) == 2 && k[0] == '#' {
				var vals []string
				if err = json.Unmarshal(v, &vals); err != nil {
					return errorf.D("malformed filter field: %s", k)
				}
				tf := tag.New(k)
				for _, s := range vals {
					tf = tf.Append([]byte(s))
				}
				f.Tags.AppendTags(tf)
				continue
			}
			return errorf.D("unknown filter field: %s", k)
		}
	}
	return nil
}

func decodeHexList(dst *tag.T, v json.RawMessage, name string) (err error) {
	var vals []string
	if err = json.Unmarshal(v, &vals); err != nil {
		return errorf.D("malformed filter field: %s", name)
	}
	for _, s := range vals {
		var h []byte
		if h, err = hex.Dec(s); err != nil || len(h) != 32 {
			return errorf.D("malformed filter field: %s value %q", name, s)
		}
		dst.Field = append(dst.Field, h)
	}
	return nil
}
