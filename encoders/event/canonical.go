package event

import (
	"okra.dev/crypto/sha256"
	"okra.dev/encoders/hex"
	"okra.dev/encoders/text"
)

// ToCanonical appends the canonical form of the event to dst: the JSON array
//
//	[0,<pubkey>,<created_at>,<kind>,<tags>,<content>]
//
// with no insignificant whitespace, integers without a decimal point, and
// strings escaped per the NIP-01 rules in the text package. The SHA256 of
// this byte sequence is the event id.
func (ev *E) ToCanonical(dst []byte) (b []byte) {
	dst = append(dst, '[', '0', ',')
	dst = text.AppendQuote(dst, ev.Pubkey, hex.EncAppend)
	dst = append(dst, ',')
	dst = ev.CreatedAt.Marshal(dst)
	dst = append(dst, ',')
	dst = ev.Kind.Marshal(dst)
	dst = append(dst, ',')
	dst = ev.Tags.Marshal(dst)
	dst = append(dst, ',')
	dst = text.AppendQuote(dst, ev.Content, text.NostrEscape)
	dst = append(dst, ']')
	b = dst
	return
}

// GetIDBytes computes the event id from the canonical encoding.
func (ev *E) GetIDBytes() (id []byte) {
	return sha256.Hash(ev.ToCanonical(nil))
}
