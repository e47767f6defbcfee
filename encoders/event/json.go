package event

import (
	"encoding/json"

	"okra.dev/crypto/p256k"
	"okra.dev/crypto/sha256"
	"okra.dev/encoders/hex"
	"okra.dev/encoders/tags"
	"okra.dev/encoders/text"
	"okra.dev/encoders/timestamp"
	"okra.dev/encoders/kind"
	"okra.dev/utils/errorf"
)

var (
	jId        = []byte("id")
	jPubkey    = []byte("pubkey")
	jCreatedAt = []byte("created_at")
	jKind      = []byte("kind")
	jTags      = []byte("tags")
	jContent   = []byte("content")
	jSig       = []byte("sig")
)

// Marshal appends the wire-format JSON object of the event to dst, using the
// same escaping rules as the canonical encoding so that what the relay emits
// is byte-for-byte re-verifiable by clients.
func (ev *E) Marshal(dst []byte) (b []byte) {
	dst = append(dst, '{')
	dst = text.JSONKey(dst, jId)
	dst = text.AppendQuote(dst, ev.Id, hex.EncAppend)
	dst = append(dst, ',')
	dst = text.JSONKey(dst, jPubkey)
	dst = text.AppendQuote(dst, ev.Pubkey, hex.EncAppend)
	dst = append(dst, ',')
	dst = text.JSONKey(dst, jCreatedAt)
	dst = ev.CreatedAt.Marshal(dst)
	dst = append(dst, ',')
	dst = text.JSONKey(dst, jKind)
	dst = ev.Kind.Marshal(dst)
	dst = append(dst, ',')
	dst = text.JSONKey(dst, jTags)
	dst = ev.Tags.Marshal(dst)
	dst = append(dst, ',')
	dst = text.JSONKey(dst, jContent)
	dst = text.AppendQuote(dst, ev.Content, text.NostrEscape)
	dst = append(dst, ',')
	dst = text.JSONKey(dst, jSig)
	dst = text.AppendQuote(dst, ev.Sig, hex.EncAppend)
	dst = append(dst, '}')
	b = dst
	return
}

// shadow is the decode target for inbound events. Pointer fields distinguish
// a missing key from a present zero value.
type shadow struct {
	Id        *string     `json:"id"`
	Pubkey    *string     `json:"pubkey"`
	CreatedAt *int64      `json:"created_at"`
	Kind      *int64      `json:"kind"`
	Tags      *[][]string `json:"tags"`
	Content   *string     `json:"content"`
	Sig       *string     `json:"sig"`
}

// Unmarshal decodes a wire-format event object into the receiver. All seven
// fields are required; a missing field, a type mismatch, an out of range
// kind, or a hex field of the wrong length is an error.
func (ev *E) Unmarshal(b []byte) (err error) {
	var sh shadow
	if err = json.Unmarshal(b, &sh); err != nil {
		err = errorf.D("malformed event: %s", err.Error())
		return
	}
	switch {
	case sh.Id == nil:
		return errorf.D("missing field: id")
	case sh.Pubkey == nil:
		return errorf.D("missing field: pubkey")
	case sh.CreatedAt == nil:
		return errorf.D("missing field: created_at")
	case sh.Kind == nil:
		return errorf.D("missing field: kind")
	case sh.Tags == nil:
		return errorf.D("missing field: tags")
	case sh.Content == nil:
		return errorf.D("missing field: content")
	case sh.Sig == nil:
		return errorf.D("missing field: sig")
	}
	if ev.Id, err = hex.Dec(*sh.Id); err != nil {
		return errorf.D("malformed field: id")
	}
	if len(ev.Id) != sha256.Size {
		return errorf.D(
			"malformed field: id requires %d bytes, got %d",
			sha256.Size, len(ev.Id),
		)
	}
	if ev.Pubkey, err = hex.Dec(*sh.Pubkey); err != nil {
		return errorf.D("malformed field: pubkey")
	}
	if len(ev.Pubkey) != p256k.PubKeyLen {
		return errorf.D(
			"malformed field: pubkey requires %d bytes, got %d",
			p256k.PubKeyLen, len(ev.Pubkey),
		)
	}
	if *sh.Kind < 0 || *sh.Kind > 65535 {
		return errorf.D("malformed field: kind %d out of range", *sh.Kind)
	}
	ev.Kind = kind.New(uint16(*sh.Kind))
	ev.CreatedAt = timestamp.New(*sh.CreatedAt)
	ev.Tags = tags.FromStringsSlice(*sh.Tags)
	ev.Content = []byte(*sh.Content)
	if ev.Sig, err = hex.Dec(*sh.Sig); err != nil {
		return errorf.D("malformed field: sig")
	}
	if len(ev.Sig) != p256k.SigLen {
		return errorf.D(
			"malformed field: sig requires %d bytes, got %d",
			p256k.SigLen, len(ev.Sig),
		)
	}
	return
}
