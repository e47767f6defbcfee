// Package sha256 selects the SIMD accelerated implementation for event id
// hashing while keeping the standard library names.
package sha256

import (
	"github.com/minio/sha256-simd"
)

// Size is the length of a SHA256 digest in bytes.
const Size = sha256.Size

// Sum256 hashes b and returns the digest.
func Sum256(b []byte) [Size]byte { return sha256.Sum256(b) }

// Hash hashes b and returns the digest as a slice.
func Hash(b []byte) []byte {
	h := sha256.Sum256(b)
	return h[:]
}

// New returns a new hash.Hash computing SHA256.
var New = sha256.New
