// Package hex is a thin wrapper over the SIMD accelerated
// github.com/templexxx/xhex codec, with append-style variants used by the
// event and envelope marshalers.
package hex

import (
	"github.com/templexxx/xhex"
)

// Enc encodes a byte slice as a lowercase hex string.
func Enc(b []byte) (s string) {
	dst := make([]byte, len(b)*2)
	xhex.Encode(dst, b)
	return string(dst)
}

// EncAppend appends the lowercase hex encoding of src to dst.
func EncAppend(dst, src []byte) (b []byte) {
	l := len(dst)
	dst = append(dst, make([]byte, len(src)*2)...)
	xhex.Encode(dst[l:], src)
	return dst
}

// Dec decodes a hex string into a fresh byte slice.
func Dec(s string) (b []byte, err error) {
	return DecAppend(nil, []byte(s))
}

// DecAppend decodes hex src and appends the raw bytes to dst.
func DecAppend(dst, src []byte) (b []byte, err error) {
	l := len(dst)
	dst = append(dst, make([]byte, len(src)/2)...)
	if err = xhex.Decode(dst[l:], src); err != nil {
		return
	}
	b = dst
	return
}

// DecBytes decodes hex src into the provided destination, which must be
// exactly half the length of src.
func DecBytes(dst, src []byte) (err error) {
	return xhex.Decode(dst, src)
}
