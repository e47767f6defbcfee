// Package text implements the NIP-01 JSON string escaping rules used for the
// canonical event encoding: escape double quote, backslash and control
// characters below 0x20, pass UTF-8 through unescaped, and never escape the
// forward slash.
package text

import (
	"okra.dev/utils/errorf"
)

const hexDigits = "0123456789abcdef"

// NostrEscape appends src to dst, escaping it per the canonical encoding
// rules. The result is the exact byte sequence hashed for the event id.
func NostrEscape(dst, src []byte) []byte {
	for _, c := range src {
		switch {
		case c == '"':
			dst = append(dst, '\\', '"')
		case c == '\\':
			dst = append(dst, '\\', '\\')
		case c == '\n':
			dst = append(dst, '\\', 'n')
		case c == '\r':
			dst = append(dst, '\\', 'r')
		case c == '\t':
			dst = append(dst, '\\', 't')
		case c == '\b':
			dst = append(dst, '\\', 'b')
		case c == '\f':
			dst = append(dst, '\\', 'f')
		case c < 0x20:
			dst = append(
				dst, '\\', 'u', '0', '0',
				hexDigits[c>>4], hexDigits[c&0xf],
			)
		default:
			dst = append(dst, c)
		}
	}
	return dst
}

// JSONKey appends a quoted object key and its colon to dst.
func JSONKey(dst, key []byte) []byte {
	dst = append(dst, '"')
	dst = append(dst, key...)
	dst = append(dst, '"', ':')
	return dst
}

// AppendQuote appends src to dst wrapped in double quotes, transformed by the
// provided encoder (hex.EncAppend for binary fields, NostrEscape for text).
func AppendQuote(dst, src []byte, enc func(dst, src []byte) []byte) []byte {
	dst = append(dst, '"')
	dst = enc(dst, src)
	dst = append(dst, '"')
	return dst
}

// AppendHexFromBinary appends the quoted hex rendering of a binary field.
func AppendHexFromBinary(dst, src []byte) []byte {
	return AppendQuote(dst, src, func(d, s []byte) []byte {
		return hexAppend(d, s)
	})
}

func hexAppend(dst, src []byte) []byte {
	for _, b := range src {
		dst = append(dst, hexDigits[b>>4], hexDigits[b&0xf])
	}
	return dst
}

// Unescape reverses NostrEscape (and general JSON escapes) in src, appending
// the raw bytes to dst. \uXXXX escapes are decoded as UTF-8; surrogate pairs
// are combined.
func Unescape(dst, src []byte) (b []byte, err error) {
	for i := 0; i < len(src); i++ {
		c := src[i]
		if c != '\\' {
			dst = append(dst, c)
			continue
		}
		i++
		if i >= len(src) {
			err = errorf.E("truncated escape sequence")
			return
		}
		switch src[i] {
		case '"':
			dst = append(dst, '"')
		case '\\':
			dst = append(dst, '\\')
		case '/':
			dst = append(dst, '/')
		case 'n':
			dst = append(dst, '\n')
		case 'r':
			dst = append(dst, '\r')
		case 't':
			dst = append(dst, '\t')
		case 'b':
			dst = append(dst, '\b')
		case 'f':
			dst = append(dst, '\f')
		case 'u':
			if i+4 >= len(src) {
				err = errorf.E("truncated unicode escape")
				return
			}
			var r rune
			for j := 1; j <= 4; j++ {
				var n byte
				if n, err = hexNibble(src[i+j]); err != nil {
					return
				}
				r = r<<4 | rune(n)
			}
			i += 4
			// high surrogate followed by a low surrogate
			if r >= 0xd800 && r < 0xdc00 && i+6 < len(src) &&
				src[i+1] == '\\' && src[i+2] == 'u' {
				var r2 rune
				ok := true
				for j := 3; j <= 6; j++ {
					var n byte
					if n, err = hexNibble(src[i+j]); err != nil {
						err = nil
						ok = false
						break
					}
					r2 = r2<<4 | rune(n)
				}
				if ok && r2 >= 0xdc00 && r2 < 0xe000 {
					r = 0x10000 + (r-0xd800)<<10 + (r2 - 0xdc00)
					i += 6
				}
			}
			dst = appendRune(dst, r)
		default:
			err = errorf.E("invalid escape '\\%c'", src[i])
			return
		}
	}
	b = dst
	return
}

func hexNibble(c byte) (n byte, err error) {
	switch {
	case c >= '0' && c <= '9':
		n = c - '0'
	case c >= 'a' && c <= 'f':
		n = c - 'a' + 10
	case c >= 'A' && c <= 'F':
		n = c - 'A' + 10
	default:
		err = errorf.E("invalid hex digit '%c'", c)
	}
	return
}

func appendRune(dst []byte, r rune) []byte {
	return append(dst, string(r)...)
}
