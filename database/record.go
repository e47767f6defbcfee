package database

import (
	"github.com/vmihailenco/msgpack/v5"

	"okra.dev/encoders/event"
	"okra.dev/encoders/kind"
	"okra.dev/encoders/tags"
	"okra.dev/encoders/timestamp"
	"okra.dev/utils/chk"
)

// record is the stored form of an event.
type record struct {
	Id        []byte     `msgpack:"i"`
	Pubkey    []byte     `msgpack:"p"`
	CreatedAt int64      `msgpack:"c"`
	Kind      uint16     `msgpack:"k"`
	Tags      [][]string `msgpack:"t"`
	Content   []byte     `msgpack:"n"`
	Sig       []byte     `msgpack:"s"`
}

func encodeEvent(ev *event.E) (b []byte, err error) {
	r := &record{
		Id:        ev.Id,
		Pubkey:    ev.Pubkey,
		CreatedAt: ev.CreatedAt.I64(),
		Kind:      ev.Kind.K,
		Tags:      ev.Tags.ToStringsSlice(),
		Content:   ev.Content,
		Sig:       ev.Sig,
	}
	if b, err = msgpack.Marshal(r); chk.E(err) {
		return
	}
	return
}

func decodeEvent(b []byte) (ev *event.E, err error) {
	r := &record{}
	if err = msgpack.Unmarshal(b, r); chk.E(err) {
		return
	}
	ev = &event.E{
		Id:        r.Id,
		Pubkey:    r.Pubkey,
		CreatedAt: timestamp.New(r.CreatedAt),
		Kind:      kind.New(r.Kind),
		Tags:      tags.FromStringsSlice(r.Tags),
		Content:   r.Content,
		Sig:       r.Sig,
	}
	return
}
