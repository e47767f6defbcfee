// Package event provides the codec for nostr events: the wire format (with
// id and signature), the canonical form that is hashed to generate the id,
// and helpers for signing and verification.
package event

import (
	"okra.dev/crypto/p256k"
	"okra.dev/encoders/eventid"
	"okra.dev/encoders/hex"
	"okra.dev/encoders/kind"
	"okra.dev/encoders/tag"
	"okra.dev/encoders/tags"
	"okra.dev/encoders/timestamp"
	"okra.dev/interfaces/signer"
	"okra.dev/utils/chk"
)

// E is the primary datatype of nostr, in the form that the relay operates on
// internally: fixed-size fields are raw binary.
type E struct {

	// Id is the SHA256 hash of the canonical encoding of the event.
	Id []byte

	// Pubkey is the x-only public key of the event creator.
	Pubkey []byte

	// CreatedAt is the unix timestamp of the event according to the event
	// creator (never trust a timestamp!).
	CreatedAt *timestamp.T

	// Kind is the protocol code for the type of event. See kind.T.
	Kind *kind.T

	// Tags is a list of tags: lists of strings whose first element is the
	// tag name.
	Tags *tags.T

	// Content is an arbitrary string, usually conforming to a convention
	// associated with the Kind.
	Content []byte

	// Sig is the schnorr signature on the Id hash.
	Sig []byte
}

// New makes a new empty event.E.
func New() (ev *E) { return &E{} }

// S is a slice of events that sorts in reverse chronological order, breaking
// created_at ties by lexicographically descending id.
type S []*E

// Len returns the number of events.
func (ev S) Len() int { return len(ev) }

// Less reports whether element i sorts before element j: newer first, then
// greater id first.
func (ev S) Less(i, j int) bool {
	if ev[i].CreatedAt.I64() != ev[j].CreatedAt.I64() {
		return ev[i].CreatedAt.I64() > ev[j].CreatedAt.I64()
	}
	return string(ev[i].Id) > string(ev[j].Id)
}

// Swap exchanges two elements.
func (ev S) Swap(i, j int) { ev[i], ev[j] = ev[j], ev[i] }

// C is a channel that carries events.
type C chan *E

// Serialize renders the event as minified JSON.
func (ev *E) Serialize() (b []byte) { return ev.Marshal(nil) }

// EventId returns the event id as an eventid.T.
func (ev *E) EventId() (eid *eventid.T) { return eventid.NewWith(ev.Id) }

// IdString returns the event id as lowercase hex.
func (ev *E) IdString() (s string) { return hex.Enc(ev.Id) }

// PubKeyString returns the author pubkey as lowercase hex.
func (ev *E) PubKeyString() (s string) { return hex.Enc(ev.Pubkey) }

// DTag returns the value of the first "d" tag, or an empty slice when the
// event has none. This is the discriminator of parameterized replaceable
// events.
func (ev *E) DTag() (d []byte) {
	t := ev.Tags.GetFirst(tag.New("d"))
	if t == nil {
		return []byte{}
	}
	v := t.Value()
	if v == nil {
		return []byte{}
	}
	return v
}

// Sign populates Pubkey, Id and Sig from the given signer. The caller sets
// CreatedAt, Kind, Tags and Content beforehand.
func (ev *E) Sign(keys signer.I) (err error) {
	ev.Pubkey = keys.Pub()
	ev.Id = ev.GetIDBytes()
	if ev.Sig, err = keys.Sign(ev.Id); chk.E(err) {
		return
	}
	return
}

// Verify reports whether Sig is a valid schnorr signature on Id under
// Pubkey. It does not check that Id matches the canonical hash; callers
// needing that check compare against GetIDBytes first.
func (ev *E) Verify() (valid bool, err error) {
	keys := p256k.Signer{}
	if err = keys.InitPub(ev.Pubkey); err != nil {
		return
	}
	if valid, err = keys.Verify(ev.Id, ev.Sig); err != nil {
		return
	}
	return
}
