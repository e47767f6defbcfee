package database

import (
	"encoding/binary"

	"okra.dev/crypto/sha256"
)

// Key prefixes. Every index terminates in the 8 byte big-endian serial of
// the event it refers to, except the replaceable pointers which store the
// serial as their value so they can be overwritten in place.
var (
	seqKey    = []byte("EVENTS")
	prefixEv  = []byte("ev") // ev + serial -> event record
	prefixId  = []byte("id") // id + event id -> serial
	prefixPub = []byte("pc") // pc + pubkey + ^created_at + serial -> nil
	prefixRk  = []byte("rk") // rk + pubkey + kind -> serial
	prefixPr  = []byte("pr") // pr + pubkey + kind + sha256(d tag) -> serial
)

func serBytes(ser uint64) (b []byte) {
	b = make([]byte, 8)
	binary.BigEndian.PutUint64(b, ser)
	return
}

func serFromBytes(b []byte) (ser uint64) { return binary.BigEndian.Uint64(b) }

func evKey(ser uint64) (k []byte) {
	k = make([]byte, 0, 2+8)
	k = append(k, prefixEv...)
	k = append(k, serBytes(ser)...)
	return
}

func idKey(id []byte) (k []byte) {
	k = make([]byte, 0, 2+32)
	k = append(k, prefixId...)
	k = append(k, id...)
	return
}

// pubPrefix is the common prefix of all author index keys for one pubkey.
func pubPrefix(pubkey []byte) (k []byte) {
	k = make([]byte, 0, 2+32)
	k = append(k, prefixPub...)
	k = append(k, pubkey...)
	return
}

// invCreatedAt encodes a signed timestamp so byte order is the reverse of
// numeric order: flip the sign bit to make the unsigned image monotone over
// the full signed range, then complement. Negative timestamps therefore sort
// after every positive one, not first.
func invCreatedAt(createdAt int64) uint64 {
	return ^(uint64(createdAt) ^ (1 << 63))
}

func createdAtFromInv(inv uint64) int64 {
	return int64((^inv) ^ (1 << 63))
}

// pubKey indexes an event under its author. The timestamp is inverted so an
// ascending iteration yields newest first.
func pubKey(pubkey []byte, createdAt int64, ser uint64) (k []byte) {
	k = make([]byte, 0, 2+32+8+8)
	k = append(k, prefixPub...)
	k = append(k, pubkey...)
	var inv [8]byte
	binary.BigEndian.PutUint64(inv[:], invCreatedAt(createdAt))
	k = append(k, inv[:]...)
	k = append(k, serBytes(ser)...)
	return
}

// pubKeyParts recovers the created_at timestamp from an author index key.
func pubKeyParts(k []byte) (createdAt int64, ser uint64) {
	base := len(prefixPub) + 32
	createdAt = createdAtFromInv(binary.BigEndian.Uint64(k[base : base+8]))
	ser = binary.BigEndian.Uint64(k[base+8 : base+16])
	return
}

func rkKey(pubkey []byte, kind uint16) (k []byte) {
	k = make([]byte, 0, 2+32+2)
	k = append(k, prefixRk...)
	k = append(k, pubkey...)
	var kb [2]byte
	binary.BigEndian.PutUint16(kb[:], kind)
	k = append(k, kb[:]...)
	return
}

func prKey(pubkey []byte, kind uint16, dTag []byte) (k []byte) {
	k = make([]byte, 0, 2+32+2+sha256.Size)
	k = append(k, prefixPr...)
	k = append(k, pubkey...)
	var kb [2]byte
	binary.BigEndian.PutUint16(kb[:], kind)
	k = append(k, kb[:]...)
	k = append(k, sha256.Hash(dTag)...)
	return
}
